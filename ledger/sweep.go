package ledger

import (
	"math"

	"github.com/rustyeddy/careerloans/amort"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/metrics"
)

// Installment is one processed payment cycle of a loan.
type Installment struct {
	LoanID    string
	Number    int     // 1-based
	Time      float64 // clock value of the sweep
	Due       float64 // when the installment fell due
	Scheduled float64
	Paid      float64
	Interest  float64
	Principal float64 // principal actually retired
	Shortfall float64
	Remaining float64
}

// AdvanceTime processes every installment that has fallen due by now and
// retires loans that reached their term or were paid down. Calls that come
// sooner than the configured check interval after the previous sweep do
// nothing. A clock jump of several months is caught up one installment at a
// time, oldest first.
//
// When funds cannot cover an installment, whatever is available is taken and
// the missing amount is not retired from principal. The installment still
// counts and the due date still moves on; there is no arrears or penalty.
// A negative balance pays nothing and is never credited back to funds.
func (l *Ledger) AdvanceTime(now float64, funds Funds) []Installment {
	if now < l.lastCheck+l.interval {
		return nil
	}
	l.lastCheck = now

	var processed []Installment
	kept := l.loans[:0]
	for _, ln := range l.loans {
		for ln.Due(now) {
			processed = append(processed, l.collect(ln, now, funds))
		}

		if ln.Done() {
			reason := metrics.RetiredTerm
			if ln.Remaining <= loan.Epsilon {
				reason = metrics.RetiredPaid
			}
			l.retired(ln, now, reason, 0)
			continue
		}
		kept = append(kept, ln)
	}
	for i := len(kept); i < len(l.loans); i++ {
		l.loans[i] = nil
	}
	l.loans = kept
	l.metrics.SetActive(len(l.loans))

	return processed
}

func (l *Ledger) collect(ln *loan.Loan, now float64, funds Funds) Installment {
	balance := ln.Balance()
	interest := balance * amort.MonthlyRate(ln.APR)
	principal := math.Max(0, ln.MonthlyPayment-interest)

	scheduled := ln.MonthlyPayment
	paid := scheduled
	if available := funds.Balance(); available < scheduled {
		paid = math.Max(0, available)
		principal = math.Max(0, principal-(scheduled-paid))
	}
	funds.Add(-paid)

	dueUT := ln.NextPaymentUT
	ln.PaymentsMade++
	ln.Remaining = math.Max(0, balance-principal)
	ln.NextPaymentUT += l.month

	in := Installment{
		LoanID:    ln.ID,
		Number:    ln.PaymentsMade,
		Time:      now,
		Due:       dueUT,
		Scheduled: scheduled,
		Paid:      paid,
		Interest:  interest,
		Principal: principal,
		Shortfall: scheduled - paid,
		Remaining: ln.Remaining,
	}

	if in.Shortfall > 0 {
		l.log.Warn("installment short",
			"loan", ln.ID, "number", in.Number, "scheduled", scheduled, "paid", paid, "shortfall", in.Shortfall)
	} else {
		l.log.Debug("installment paid",
			"loan", ln.ID, "number", in.Number, "paid", paid, "remaining", in.Remaining)
	}

	l.metrics.ObserveInstallment(in.Shortfall)
	l.recordPayment(journal.PaymentRecord{
		LoanID:    in.LoanID,
		Number:    in.Number,
		DueUT:     in.Due,
		PaidUT:    in.Time,
		Scheduled: in.Scheduled,
		Paid:      in.Paid,
		Interest:  in.Interest,
		Principal: in.Principal,
		Shortfall: in.Shortfall,
		Remaining: in.Remaining,
	})

	return in
}

// retired reports a loan leaving the active set. amount is what the borrower
// paid to close it early, zero otherwise.
func (l *Ledger) retired(ln *loan.Loan, now float64, reason string, amount float64) {
	kind := journal.EventRetired
	if reason == metrics.RetiredPayoff {
		kind = journal.EventPaidOff
	}

	l.log.Info("loan retired",
		"loan", ln.ID, "reason", reason, "payments", ln.PaymentsMade, "term", ln.TermMonths)
	l.metrics.ObserveRetired(reason)
	l.recordEvent(journal.LoanEvent{
		LoanID: ln.ID,
		UT:     now,
		Kind:   kind,
		Amount: amount,
		Detail: reason,
	})
}
