package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/internal/id"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/ledger"
	"github.com/rustyeddy/careerloans/metrics"
	"github.com/rustyeddy/careerloans/sim"
	"github.com/rustyeddy/careerloans/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted game from a config file",
	Long: `Run the step script in simulation.steps: take loans, warp the clock,
change reputation and funds, pay loans off. Installments are journaled and the
final game is saved to the configured store.

Example:
  careerloans run -f careerloans.yaml --report run.org`,
	RunE: runRun,
}

var (
	runConfigPath string
	runReportPath string
	runMetrics    bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "file", "f", "", "path to config file (YAML, TOML or JSON)")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "write an Org-mode run report here")
	runCmd.Flags().BoolVar(&runMetrics, "metrics", false, "print collected metrics when the run ends")
}

func runRun(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}
	logger, err := setupLogger(cfg)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close journal: %w", cerr)
		}
	}()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := sim.NewEngine(cfg, logger, ledger.WithJournal(j), ledger.WithMetrics(m))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running %d steps (funds %.0f, reputation %.0f)\n",
		len(cfg.Simulation.Steps), engine.Funds(), engine.Reputation())

	rep, err := engine.RunScript(ctx, cfg.Simulation.Steps)
	if err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	rep.Preset = "default"
	if runConfigPath != "" {
		rep.Preset = runConfigPath
	}

	root := store.NewNode("SAVE")
	engine.Save(root)
	if err := st.Save(ctx, root); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	logger.Info("game saved", "store", orNone(cfg.Store.Type), "run", rep.RunID)

	printSummary(out, engine.Summary(), engine.Funds())

	fmt.Fprintf(out, "\nFinal Results:\n")
	fmt.Fprintf(out, "  Loans: %d taken, %d closed, %d rejected\n", rep.Originated, rep.Retired, rep.Rejected)
	fmt.Fprintf(out, "  Installments: %d (%d short, %.0f unpaid)\n", rep.Installments, rep.ShortPays, rep.ShortfallLost)
	fmt.Fprintf(out, "  Funds: %.0f -> %.0f\n", rep.StartFunds, rep.EndFunds)
	for _, n := range rep.Notes {
		fmt.Fprintf(out, "  - %s\n", n)
	}

	if runReportPath != "" {
		if err := rep.WriteOrg(runReportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "\nReport saved to: %s\n", runReportPath)
	}

	if runMetrics {
		if err := printMetrics(out, reg); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(out io.Writer, s ledger.Summary, funds float64) {
	fmt.Fprintf(out, "\nAvailable Funds: %.0f\n", funds)
	if len(s.Loans) == 0 {
		fmt.Fprintln(out, "No active loans.")
		return
	}
	fmt.Fprintln(out, "Active Loans:")
	for _, v := range s.Loans {
		payoff := ""
		if v.CanPayOff {
			payoff = "  [can pay off]"
		}
		fmt.Fprintf(out, "  ID: %s   APR %.2f%%   %d/%d paid\n", id.Short(v.ID), v.APR*100, v.PaymentsMade, v.TermMonths)
		fmt.Fprintf(out, "    Monthly: %.0f   Remaining: %.0f%s\n", v.MonthlyPayment, v.Remaining, payoff)
		fmt.Fprintf(out, "    Months left: %d   Next payment in ~%.1f days\n", v.MonthsLeft, v.NextPaymentIn)
	}
	fmt.Fprintf(out, "Total monthly outgoing: %.0f\n", s.TotalMonthly)
	fmt.Fprintf(out, "Total remaining debt: %.0f\n", s.TotalRemaining)
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	fmt.Fprintln(out, "\nMetrics:")
	for _, f := range families {
		for _, m := range f.GetMetric() {
			labels := ""
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			value := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			}
			fmt.Fprintf(out, "  %s%s %g\n", f.GetName(), labels, value)
		}
	}
	return nil
}
