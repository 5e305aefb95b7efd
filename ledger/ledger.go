// Package ledger owns the active loans of one game. It runs the payment
// sweep as the simulation clock moves, writes new loans against the credit
// policy and settles early payoffs.
//
// The ledger is not safe for concurrent use; the host drives it from a
// single tick.
package ledger

import (
	"log/slog"

	"github.com/rustyeddy/careerloans/config"
	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/metrics"
)

// Funds is the host's money pool. Add takes a negative delta to withdraw.
type Funds interface {
	Balance() float64
	Add(delta float64)
}

// Option configures a Ledger built by New.
type Option func(*Ledger)

// WithJournal records installments and lifecycle events to j.
func WithJournal(j journal.Journal) Option {
	return func(l *Ledger) {
		if j != nil {
			l.journal = j
		}
	}
}

// WithLogger sends ledger logs to log instead of discarding them.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMetrics reports ledger activity to m. A nil m records nothing.
func WithMetrics(m *metrics.Ledger) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// Ledger is the set of active loans of one game.
type Ledger struct {
	cfg      *config.Config
	month    float64
	day      float64
	interval float64

	loans     []*loan.Loan
	lastCheck float64

	journal journal.Journal
	log     *slog.Logger
	metrics *metrics.Ledger
}

// New returns an empty ledger reading its caps and calendar from cfg. The
// config is treated as a read-only, already clamped snapshot.
func New(cfg *config.Config, opts ...Option) *Ledger {
	if cfg == nil {
		cfg = config.Default()
	}

	l := &Ledger{
		cfg:      cfg,
		month:    cfg.Simulation.MonthSeconds(),
		day:      cfg.Simulation.DaySeconds,
		interval: cfg.Simulation.CheckInterval,
		journal:  journal.Discard,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("component", "ledger")
	return l
}

// Config returns the snapshot the ledger was built with.
func (l *Ledger) Config() *config.Config { return l.cfg }

// Len is the number of active loans.
func (l *Ledger) Len() int { return len(l.loans) }

// Loans returns copies of the active loans in origination order.
func (l *Ledger) Loans() []*loan.Loan {
	out := make([]*loan.Loan, 0, len(l.loans))
	for _, ln := range l.loans {
		out = append(out, ln.Clone())
	}
	return out
}

// Get returns a copy of the loan with the given id.
func (l *Ledger) Get(id string) (*loan.Loan, bool) {
	if i := l.index(id); i >= 0 {
		return l.loans[i].Clone(), true
	}
	return nil, false
}

func (l *Ledger) index(id string) int {
	for i, ln := range l.loans {
		if ln.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) recordPayment(rec journal.PaymentRecord) {
	if err := l.journal.RecordPayment(rec); err != nil {
		l.log.Warn("journal payment failed", "loan", rec.LoanID, "number", rec.Number, "err", err)
	}
}

func (l *Ledger) recordEvent(ev journal.LoanEvent) {
	if err := l.journal.RecordEvent(ev); err != nil {
		l.log.Warn("journal event failed", "loan", ev.LoanID, "kind", ev.Kind, "err", err)
	}
}
