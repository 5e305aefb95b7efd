//go:build blackbox

package blackbox

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var loansBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "careerloans-blackbox-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	loansBin = filepath.Join(tmp, "careerloans")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", loansBin, "./cmd/careerloans")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.Command(loansBin, args...)
	cmd.Env = append(os.Environ(), "CAREERLOANS_CONFIG=", "CAREERLOANS_LOG_LEVEL=error")
	cmd.Dir = t.TempDir()
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}
