package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/sim"
	"github.com/rustyeddy/careerloans/store"
)

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "Show the loans in the saved game",
	Long: `Load the saved game from the configured store and print its active
loans as Org-mode entries.

Example:
  careerloans loans --config careerloans.yaml`,
	Args: cobra.NoArgs,
	RunE: runLoans,
}

func init() {
	rootCmd.AddCommand(loansCmd)
}

func runLoans(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	logger, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	root, err := st.Load(context.Background())
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved game.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	engine := sim.NewEngine(cfg, logger)
	if err := engine.Load(root); err != nil {
		return fmt.Errorf("restore game: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "* Game at UT %.0f (funds %.0f, reputation %.0f)\n\n", engine.UT(), engine.Funds(), engine.Reputation())
	fmt.Fprint(out, journal.FormatLoansOrg(engine.Loans()))
	printSummary(out, engine.Summary(), engine.Funds())
	return nil
}
