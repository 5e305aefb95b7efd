package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/careerloans/config"
	"github.com/rustyeddy/careerloans/journal"
)

type fakeFunds struct {
	balance float64
	adds    []float64
}

func (f *fakeFunds) Balance() float64 { return f.balance }

func (f *fakeFunds) Add(delta float64) {
	f.adds = append(f.adds, delta)
	f.balance += delta
}

type fakeJournal struct {
	payments []journal.PaymentRecord
	events   []journal.LoanEvent
}

func (j *fakeJournal) RecordPayment(p journal.PaymentRecord) error {
	j.payments = append(j.payments, p)
	return nil
}

func (j *fakeJournal) RecordEvent(e journal.LoanEvent) error {
	j.events = append(j.events, e)
	return nil
}

func (j *fakeJournal) Close() error { return nil }

func (j *fakeJournal) kinds() []string {
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Kind)
	}
	return out
}

const month = 30 * 6 * 3600.0

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Simulation.Steps = nil
	return cfg
}

// take originates a loan at reputation 1000 and fails the test if it is
// rejected.
func take(t *testing.T, l *Ledger, funds Funds, amount, apr float64, term int, now float64) Result {
	t.Helper()

	res := l.Originate(Request{
		Amount:     amount,
		TermMonths: term,
		APR:        apr,
		Reputation: 1000,
		Now:        now,
	}, funds)
	require.True(t, res.OK, "originate rejected: %s %s", res.Reason, res.Detail)
	return res
}
