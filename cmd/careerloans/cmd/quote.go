package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/amort"
	"github.com/rustyeddy/careerloans/ledger"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a loan for a reputation score",
	Long: `Show the caps, APR and monthly payment a borrower would get.

Example:
  careerloans quote --amount 120000 --term 12 --reputation 250 --schedule`,
	RunE: runQuote,
}

var (
	quoteAmount     float64
	quoteTerm       int
	quoteReputation float64
	quoteSchedule   bool
)

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().Float64Var(&quoteAmount, "amount", 100_000, "principal to borrow")
	quoteCmd.Flags().IntVar(&quoteTerm, "term", 24, "term in months")
	quoteCmd.Flags().Float64Var(&quoteReputation, "reputation", 0, "borrower reputation (0..1000)")
	quoteCmd.Flags().BoolVar(&quoteSchedule, "schedule", false, "print the amortization table")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	q := ledger.New(cfg).Quote(quoteAmount, quoteTerm, quoteReputation)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reputation %.0f: tier %d, APR %.2f%%\n", quoteReputation, q.Caps.Tier, q.Caps.APR*100)
	fmt.Fprintf(out, "  Loans allowed: %d/%d used\n", q.LoansUsed, q.Caps.MaxLoans)
	fmt.Fprintf(out, "  Max new loan amount: %.0f\n", q.Caps.MaxPrincipal)
	fmt.Fprintf(out, "  Amount: %.0f over %d months (%.2f years)\n", q.Amount, q.TermMonths, float64(q.TermMonths)/12)
	fmt.Fprintf(out, "  Estimated monthly payment: %.0f\n", q.MonthlyPayment)
	fmt.Fprintf(out, "  Total interest: %.2f\n", q.TotalInterest)

	if !q.CanTake {
		for _, v := range q.Violations {
			fmt.Fprintf(out, "  ✗ %s: %s\n", v.Code, v.Msg)
		}
	}

	if quoteSchedule && q.TermMonths >= 1 && q.Amount > 0 {
		sched := amort.Schedule(q.Amount, q.Caps.APR, q.TermMonths, amort.RoundPayment(q.MonthlyPayment))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| # | Payment | Interest | Principal | Balance |")
		fmt.Fprintln(out, "|---+---------+----------+-----------+---------|")
		for _, in := range sched {
			fmt.Fprintf(out, "| %d | %.2f | %.2f | %.2f | %.2f |\n", in.Period, in.Payment, in.Interest, in.Principal, in.Balance)
		}
	}
	return nil
}
