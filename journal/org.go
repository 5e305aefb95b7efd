package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/careerloans/internal/id"
	"github.com/rustyeddy/careerloans/loan"
)

// FormatLoanOrg renders a loan as an Org-mode block. Structured facts go in a
// PROPERTIES drawer; installments, when given, become a table.
func FormatLoanOrg(l *loan.Loan, payments []PaymentRecord) string {
	heading := fmt.Sprintf("** Loan: %.0f @ %.2f%% (%s)", l.Principal, l.APR*100, id.Short(l.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", l.ID))
	b.WriteString(fmt.Sprintf(":PRINCIPAL: %.2f\n", l.Principal))
	b.WriteString(fmt.Sprintf(":APR: %.4f\n", l.APR))
	b.WriteString(fmt.Sprintf(":TERM_MONTHS: %d\n", l.TermMonths))
	b.WriteString(fmt.Sprintf(":MONTHLY_PAYMENT: %.0f\n", l.MonthlyPayment))
	b.WriteString(fmt.Sprintf(":PAYMENTS_MADE: %d\n", l.PaymentsMade))
	b.WriteString(fmt.Sprintf(":REMAINING: %.2f\n", l.Balance()))
	b.WriteString(fmt.Sprintf(":START_UT: %.0f\n", l.StartUT))
	b.WriteString(fmt.Sprintf(":NEXT_PAYMENT_UT: %.0f\n", l.NextPaymentUT))
	b.WriteString(":END:\n")

	if len(payments) > 0 {
		b.WriteString("\n*** Installments\n")
		b.WriteString(FormatPaymentsOrg(payments))
	}

	return b.String()
}

// FormatPaymentsOrg renders installments as an Org table.
func FormatPaymentsOrg(payments []PaymentRecord) string {
	var b strings.Builder
	b.WriteString("| # | Due UT | Paid | Interest | Principal | Shortfall | Remaining |\n")
	b.WriteString("|---+--------+------+----------+-----------+-----------+-----------|\n")
	for _, p := range payments {
		b.WriteString(fmt.Sprintf("| %d | %.0f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			p.Number, p.DueUT, p.Paid, p.Interest, p.Principal, p.Shortfall, p.Remaining))
	}
	return b.String()
}

// FormatLoansOrg renders multiple loans separated by blank lines.
func FormatLoansOrg(loans []*loan.Loan) string {
	var b strings.Builder
	for i, l := range loans {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatLoanOrg(l, nil))
	}
	return b.String()
}
