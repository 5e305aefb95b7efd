package ledger

import (
	"math"

	"github.com/rustyeddy/careerloans/amort"
	"github.com/rustyeddy/careerloans/credit"
)

// Quote is what the borrower would get for a request right now.
type Quote struct {
	Caps      credit.Caps
	LoansUsed int

	Amount         float64 // after clamping to the tier cap
	TermMonths     int     // after clamping to the term cap
	MonthlyPayment float64 // unrounded estimate
	TotalInterest  float64

	CanTake    bool
	Violations []credit.Violation
}

// Quote evaluates a prospective loan without writing it. The APR comes from
// reputation.
func (l *Ledger) Quote(amount float64, termMonths int, reputation float64) Quote {
	caps := credit.CapsFor(reputation, l.cfg)
	d := credit.Evaluate(caps, len(l.loans), l.cfg.Loans.MaxTermMonths, credit.Request{
		Amount:     amount,
		APR:        caps.APR,
		TermMonths: termMonths,
	})

	q := Quote{
		Caps:       caps,
		LoansUsed:  len(l.loans),
		Amount:     d.Amount,
		TermMonths: d.TermMonths,
		CanTake:    d.Allowed,
		Violations: d.Violations,
	}
	if q.TermMonths >= 1 && q.Amount > 0 {
		q.MonthlyPayment = amort.MonthlyPayment(q.Amount, caps.APR, q.TermMonths)
		sched := amort.Schedule(q.Amount, caps.APR, q.TermMonths, amort.RoundPayment(q.MonthlyPayment))
		q.TotalInterest = amort.TotalInterest(sched)
	}
	return q
}

// LoanView is one row of the ledger as the host displays it.
type LoanView struct {
	ID             string
	APR            float64
	PaymentsMade   int
	TermMonths     int
	MonthlyPayment float64
	Remaining      float64 // closed-form balance
	MonthsLeft     int
	NextPaymentIn  float64 // simulation days
	CanPayOff      bool
}

// Summary is the ledger as the host displays it, with totals.
type Summary struct {
	Loans          []LoanView
	TotalMonthly   float64
	TotalRemaining float64
}

// Summary reports every active loan as of now. funds may be nil, in which
// case nothing can be paid off.
func (l *Ledger) Summary(now float64, funds Funds) Summary {
	available := 0.0
	if funds != nil {
		available = funds.Balance()
	}

	var s Summary
	for _, ln := range l.loans {
		remaining := ln.Balance()
		next := 0.0
		if l.day > 0 {
			next = math.Max(0, (ln.NextPaymentUT-now)/l.day)
		}

		s.Loans = append(s.Loans, LoanView{
			ID:             ln.ID,
			APR:            ln.APR,
			PaymentsMade:   ln.PaymentsMade,
			TermMonths:     ln.TermMonths,
			MonthlyPayment: ln.MonthlyPayment,
			Remaining:      remaining,
			MonthsLeft:     ln.MonthsLeft(),
			NextPaymentIn:  next,
			CanPayOff:      remaining > 0.01 && available >= remaining,
		})
		s.TotalMonthly += ln.MonthlyPayment
		s.TotalRemaining += remaining
	}
	return s
}
