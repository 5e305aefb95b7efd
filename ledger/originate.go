package ledger

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/careerloans/amort"
	"github.com/rustyeddy/careerloans/credit"
	"github.com/rustyeddy/careerloans/internal/id"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/metrics"
)

// Reason says why an operation was rejected.
type Reason string

const (
	ReasonInvalidInput      Reason = "invalid_input"
	ReasonCapacityExceeded  Reason = "capacity_exceeded"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonNotFound          Reason = "not_found"
)

// Result is the outcome of Originate or PayOff. A rejected operation changed
// nothing.
type Result struct {
	OK     bool
	Reason Reason
	Detail string

	Loan   *loan.Loan // copy of the loan written or closed
	Amount float64    // credited on origination, withdrawn on payoff
}

// Request asks for a new loan. APR is the rate offered to the borrower,
// normally credit.APRFor(Reputation).
type Request struct {
	Amount     float64
	TermMonths int
	APR        float64
	Reputation float64
	Now        float64
}

// Originate writes a new loan and credits its principal to funds. The amount
// is clamped to the borrower's tier cap and the term to the configured
// maximum. Malformed input is rejected before the loan count is considered.
func (l *Ledger) Originate(req Request, funds Funds) Result {
	caps := credit.CapsFor(req.Reputation, l.cfg)
	d := credit.Evaluate(caps, len(l.loans), l.cfg.Loans.MaxTermMonths, credit.Request{
		Amount:     req.Amount,
		APR:        req.APR,
		TermMonths: req.TermMonths,
	})

	if !d.Allowed {
		reason := ReasonCapacityExceeded
		if d.Has(credit.CodeInvalidAmount) || d.Has(credit.CodeInvalidTerm) || d.Has(credit.CodeInvalidAPR) {
			reason = ReasonInvalidInput
		}
		return l.reject(journal.EventRejected, "", req.Now, reason, violationText(d.Violations))
	}

	pmt := amort.RoundPayment(amort.MonthlyPayment(d.Amount, req.APR, d.TermMonths))
	ln := &loan.Loan{
		ID:             id.New(),
		Principal:      d.Amount,
		APR:            req.APR,
		TermMonths:     d.TermMonths,
		MonthlyPayment: pmt,
		Remaining:      d.Amount,
		StartUT:        req.Now,
		NextPaymentUT:  req.Now + l.month,
	}
	l.loans = append(l.loans, ln)
	funds.Add(d.Amount)

	l.log.Info("loan originated",
		"loan", ln.ID, "principal", ln.Principal, "apr", ln.APR, "term", ln.TermMonths,
		"payment", ln.MonthlyPayment, "tier", caps.Tier)
	l.metrics.ObserveOriginated(ln.Principal)
	l.metrics.SetActive(len(l.loans))
	l.recordEvent(journal.LoanEvent{
		LoanID: ln.ID,
		UT:     req.Now,
		Kind:   journal.EventOriginated,
		Amount: ln.Principal,
		Detail: fmt.Sprintf("apr=%.4f term=%d payment=%.0f tier=%d", ln.APR, ln.TermMonths, ln.MonthlyPayment, caps.Tier),
	})

	return Result{OK: true, Loan: ln.Clone(), Amount: d.Amount}
}

// PayOff closes a loan early by withdrawing its outstanding balance. It
// either pays the whole balance or does nothing. A loan whose balance is
// already negligible is closed without touching funds.
func (l *Ledger) PayOff(loanID string, now float64, funds Funds) Result {
	i := l.index(loanID)
	if i < 0 {
		return l.reject(journal.EventPayoffRejected, loanID, now, ReasonNotFound,
			fmt.Sprintf("no active loan %q", loanID))
	}

	ln := l.loans[i]
	remaining := ln.Balance()

	if remaining <= loan.Epsilon {
		l.remove(i)
		l.retired(ln, now, metrics.RetiredPaid, 0)
		return Result{OK: true, Loan: ln.Clone()}
	}

	if available := funds.Balance(); available < remaining {
		return l.reject(journal.EventPayoffRejected, loanID, now, ReasonInsufficientFunds,
			fmt.Sprintf("payoff needs %.2f, funds %.2f", remaining, available))
	}

	funds.Add(-remaining)
	l.remove(i)
	l.retired(ln, now, metrics.RetiredPayoff, remaining)

	return Result{OK: true, Loan: ln.Clone(), Amount: remaining}
}

func (l *Ledger) remove(i int) {
	copy(l.loans[i:], l.loans[i+1:])
	l.loans[len(l.loans)-1] = nil
	l.loans = l.loans[:len(l.loans)-1]
	l.metrics.SetActive(len(l.loans))
}

func (l *Ledger) reject(kind, loanID string, now float64, reason Reason, detail string) Result {
	l.log.Info("request rejected", "kind", kind, "loan", loanID, "reason", reason, "detail", detail)
	l.metrics.ObserveRejection(string(reason))
	l.recordEvent(journal.LoanEvent{
		LoanID: loanID,
		UT:     now,
		Kind:   kind,
		Detail: string(reason) + ": " + detail,
	})
	return Result{Reason: reason, Detail: detail}
}

func violationText(vs []credit.Violation) string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Code+" "+v.Msg)
	}
	return strings.Join(msgs, "; ")
}
