// journal/journal.go
package journal

import "errors"

// ErrNotFound is returned by queries that match nothing.
var ErrNotFound = errors.New("not found")

// Event kinds.
const (
	EventOriginated     = "originated"
	EventRetired        = "retired"
	EventPaidOff        = "paid_off"
	EventRejected       = "rejected"
	EventPayoffRejected = "payoff_rejected"
	EventRepaired       = "repaired"
)

// PaymentRecord is one processed installment. Times are simulation seconds.
type PaymentRecord struct {
	LoanID    string
	Number    int     // 1-based installment number
	DueUT     float64 // when the installment fell due
	PaidUT    float64 // clock value of the sweep that processed it
	Scheduled float64 // fixed monthly payment
	Paid      float64 // what the funds pool actually gave
	Interest  float64
	Principal float64 // principal actually retired
	Shortfall float64
	Remaining float64
}

// LoanEvent is a lifecycle change of a loan.
type LoanEvent struct {
	LoanID string
	UT     float64
	Kind   string
	Amount float64
	Detail string
}

type Journal interface {
	RecordPayment(PaymentRecord) error
	RecordEvent(LoanEvent) error
	Close() error
}

// Discard is a Journal that drops everything.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordPayment(PaymentRecord) error { return nil }
func (discard) RecordEvent(LoanEvent) error       { return nil }
func (discard) Close() error                      { return nil }
