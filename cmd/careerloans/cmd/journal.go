package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the payment journal",
	Long: `Query and display journal records from the SQLite database.

Subcommands:
  payments - Installments recorded for a loan
  events   - Lifecycle events of a loan

Examples:
  careerloans journal payments 01HZX3...
  careerloans journal events 01HZX3... --db ./careerloans.sqlite`,
}

var journalPaymentsCmd = &cobra.Command{
	Use:   "payments <loan-id>",
	Short: "List installments of a loan",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalPayments,
}

var journalEventsCmd = &cobra.Command{
	Use:   "events <loan-id>",
	Short: "List lifecycle events of a loan",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalEvents,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalPaymentsCmd)
	journalCmd.AddCommand(journalEventsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default journal.db_path from config)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig("")
		if err != nil {
			return nil, err
		}
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no journal database: pass --db or use a sqlite journal in the config")
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalPayments(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListPayments(args[0])
	if err != nil {
		return fmt.Errorf("query payments: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No payments for %s\n", args[0])
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatPaymentsOrg(recs))
	return nil
}

func runJournalEvents(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	evs, err := j.ListEvents(args[0])
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, e := range evs {
		fmt.Fprintf(out, "- [UT %.0f] %s %.2f %s\n", e.UT, e.Kind, e.Amount, e.Detail)
	}
	return nil
}
