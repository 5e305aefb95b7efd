package main

import (
	"os"

	"github.com/rustyeddy/careerloans/cmd/careerloans/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
