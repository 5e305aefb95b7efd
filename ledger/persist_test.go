package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
	"github.com/rustyeddy/careerloans/store"
)

// savedTree builds a scenario node holding one loan per field map.
func savedTree(loans ...map[string]string) *store.Node {
	root := store.NewNode("LOAN_SCENARIO")
	for _, fields := range loans {
		n := root.AddNode(NodeLoan)
		for _, name := range loan.FieldNames {
			if v, ok := fields[name]; ok {
				n.AddValue(name, v)
			}
		}
	}
	return root
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{}
	take(t, l, funds, 120000, 0.12, 12, 0)
	take(t, l, funds, 3333.33, 0.0731, 7, 12.5)
	funds.Add(1e6)
	l.AdvanceTime(month, funds)

	root := store.NewNode("LOAN_SCENARIO")
	root.AddValue("keep", "me")
	l.Save(root)
	require.Len(t, root.GetNodes(NodeLoan), 2)

	// saving again replaces rather than appends
	l.Save(root)
	require.Len(t, root.GetNodes(NodeLoan), 2)
	assert.True(t, root.HasValue("keep"))

	j := &fakeJournal{}
	restored := New(testConfig(), WithJournal(j))
	restored.Load(root)

	assert.Equal(t, l.Loans(), restored.Loans())
	assert.Empty(t, j.events, "nothing repaired")
}

func TestLoadRepairsFields(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	l := New(testConfig(), WithJournal(j))
	l.Load(savedTree(map[string]string{
		loan.FieldID:             "not-an-id",
		loan.FieldPrincipal:      "1000",
		loan.FieldAPR:            "NaN",
		loan.FieldTermMonths:     "12",
		loan.FieldMonthlyPayment: "84",
		loan.FieldPaymentsMade:   "3",
	}))

	loans := l.Loans()
	require.Len(t, loans, 1)
	ln := loans[0]

	assert.NotEqual(t, "not-an-id", ln.ID)
	assert.NotEmpty(t, ln.ID)
	assert.Equal(t, 1000.0, ln.Principal)
	assert.Zero(t, ln.APR)
	assert.Equal(t, 3, ln.PaymentsMade)

	require.Len(t, j.events, 1)
	assert.Equal(t, journal.EventRepaired, j.events[0].Kind)
	assert.Contains(t, j.events[0].Detail, loan.FieldID)
	assert.Contains(t, j.events[0].Detail, loan.FieldAPR)
	assert.Contains(t, j.events[0].Detail, loan.FieldNextPaymentUT)
}

func TestLoadRegeneratesDuplicateIDs(t *testing.T) {
	t.Parallel()

	fields := map[string]string{
		loan.FieldID:             "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		loan.FieldPrincipal:      "1000",
		loan.FieldAPR:            "0.1",
		loan.FieldTermMonths:     "12",
		loan.FieldMonthlyPayment: "88",
		loan.FieldPaymentsMade:   "0",
		loan.FieldRemaining:      "1000",
		loan.FieldStartUT:        "0",
		loan.FieldNextPaymentUT:  "648000",
	}

	j := &fakeJournal{}
	l := New(testConfig(), WithJournal(j))
	l.Load(savedTree(fields, fields))

	loans := l.Loans()
	require.Len(t, loans, 2)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", loans[0].ID)
	assert.NotEqual(t, loans[0].ID, loans[1].ID)
	require.Len(t, j.events, 1)
	assert.Equal(t, loans[1].ID, j.events[0].LoanID)
}

func TestLoadReplacesLoansAndResetsDebounce(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{balance: 1e6}
	take(t, l, funds, 1000, 0.1, 12, 0)
	l.AdvanceTime(10*month, funds)

	l.Load(store.NewNode("LOAN_SCENARIO"))
	assert.Equal(t, 0, l.Len())

	// a save from earlier in the game: the clock is behind the last sweep
	take(t, l, funds, 1000, 0.1, 12, 0)
	assert.Len(t, l.AdvanceTime(month, funds), 1)
}
