// Package loan defines a single amortizing debt record and its flat
// named-field persistence contract.
package loan

import (
	"github.com/rustyeddy/careerloans/amort"
)

// Epsilon is the balance at or below which a loan counts as repaid.
const Epsilon = 0.01

// Loan is one amortizing obligation. Times are simulation-clock seconds.
//
// MonthlyPayment is fixed at origination and never recomputed. Remaining is
// a cache of the last processed balance; Balance() is authoritative.
type Loan struct {
	ID             string
	Principal      float64
	APR            float64
	TermMonths     int
	MonthlyPayment float64
	PaymentsMade   int
	Remaining      float64
	StartUT        float64
	NextPaymentUT  float64
}

// Balance recomputes the outstanding balance from the loan terms and the
// number of installments made.
func (l *Loan) Balance() float64 {
	return amort.RemainingBalance(l.Principal, l.APR, l.PaymentsMade, l.MonthlyPayment)
}

// MonthsLeft is the number of scheduled installments not yet processed.
func (l *Loan) MonthsLeft() int {
	return max(0, l.TermMonths-l.PaymentsMade)
}

// Due reports whether an installment is owed at now.
func (l *Loan) Due(now float64) bool {
	return l.PaymentsMade < l.TermMonths && now >= l.NextPaymentUT
}

// Done reports whether the loan has reached its term or been paid down.
func (l *Loan) Done() bool {
	return l.PaymentsMade >= l.TermMonths || l.Remaining <= Epsilon
}

// Clone returns a copy safe to hand to callers outside the ledger.
func (l *Loan) Clone() *Loan {
	c := *l
	return &c
}
