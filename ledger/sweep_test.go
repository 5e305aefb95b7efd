package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/careerloans/journal"
	"github.com/rustyeddy/careerloans/loan"
)

func TestAdvanceTimeFullAmortization(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	l := New(testConfig(), WithJournal(j))
	funds := &fakeFunds{}

	res := take(t, l, funds, 120000, 0.12, 12, 0)
	assert.Equal(t, 10662.0, res.Loan.MonthlyPayment)
	assert.Equal(t, 120000.0, funds.balance)

	funds.Add(1e6)
	start := funds.balance

	var last Installment
	for k := 1; k <= 12; k++ {
		if k < 12 {
			require.Equal(t, 1, l.Len(), "month %d", k)
		}
		paid := l.AdvanceTime(float64(k)*month, funds)
		require.Len(t, paid, 1, "month %d", k)
		last = paid[0]
		assert.Equal(t, k, last.Number)
		assert.Zero(t, last.Shortfall)
	}

	assert.Equal(t, 0, l.Len(), "loan retired after final installment")
	assert.LessOrEqual(t, last.Remaining, loan.Epsilon)
	assert.InDelta(t, start-12*10662, funds.balance, 1e-6)

	require.Len(t, j.payments, 12)
	assert.Equal(t, []string{journal.EventOriginated, journal.EventRetired}, j.kinds())
	assert.Equal(t, "paid", j.events[1].Detail)
}

func TestAdvanceTimeFirstInstallmentSplit(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{}
	take(t, l, funds, 120000, 0.12, 12, 0)

	paid := l.AdvanceTime(month, funds)
	require.Len(t, paid, 1)

	in := paid[0]
	assert.InDelta(t, 1200, in.Interest, 1e-6)
	assert.InDelta(t, 9462, in.Principal, 1e-6)
	assert.InDelta(t, 110538, in.Remaining, 1e-6)
	assert.Equal(t, month, in.Due)
	assert.Equal(t, month, in.Time)
	assert.Equal(t, 10662.0, in.Paid)
}

func TestAdvanceTimeIsIdempotent(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{balance: 1e6}
	take(t, l, funds, 120000, 0.12, 12, 0)

	now := 2*month + 100
	first := l.AdvanceTime(now, funds)
	require.Len(t, first, 2)
	before := l.Loans()
	balance := funds.balance

	assert.Empty(t, l.AdvanceTime(now, funds))
	assert.Empty(t, l.AdvanceTime(now+1, funds), "inside the check interval")
	assert.Equal(t, before, l.Loans())
	assert.Equal(t, balance, funds.balance)
}

func TestAdvanceTimeZeroIntervalStillIdempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Simulation.CheckInterval = 0
	l := New(cfg)
	funds := &fakeFunds{balance: 1e6}
	take(t, l, funds, 5000, 0.05, 6, 0)

	require.Len(t, l.AdvanceTime(month, funds), 1)
	before := l.Loans()
	assert.Empty(t, l.AdvanceTime(month, funds))
	assert.Equal(t, before, l.Loans())
}

func TestAdvanceTimeDebounce(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{balance: 1e6}
	take(t, l, funds, 5000, 0.05, 6, 0)

	// Nothing is due yet and the first check window has not passed.
	assert.Empty(t, l.AdvanceTime(4, funds))

	// A sweep at month-1 moves lastCheck; month itself is 1s later, inside
	// the 5s interval, so the installment waits for the next sweep.
	assert.Empty(t, l.AdvanceTime(month-1, funds))
	assert.Empty(t, l.AdvanceTime(month, funds))
	assert.Len(t, l.AdvanceTime(month+4, funds), 1)
}

func TestAdvanceTimeCatchUpMatchesMonthlySteps(t *testing.T) {
	t.Parallel()

	const k = 7

	jumped := New(testConfig())
	jumpFunds := &fakeFunds{}
	take(t, jumped, jumpFunds, 2_000_000, 0.09, 24, 0)
	jumpFunds.Add(1e8)

	stepped := New(testConfig())
	stepFunds := &fakeFunds{}
	take(t, stepped, stepFunds, 2_000_000, 0.09, 24, 0)
	stepFunds.Add(1e8)

	paid := jumped.AdvanceTime(k*month, jumpFunds)
	require.Len(t, paid, k)
	for i, in := range paid {
		assert.Equal(t, i+1, in.Number, "installments processed oldest first")
		assert.Equal(t, float64(i+1)*month, in.Due)
	}

	for i := 1; i <= k; i++ {
		require.Len(t, stepped.AdvanceTime(float64(i)*month, stepFunds), 1)
	}

	a := jumped.Loans()[0]
	b := stepped.Loans()[0]
	assert.Equal(t, b.PaymentsMade, a.PaymentsMade)
	assert.Equal(t, b.Remaining, a.Remaining)
	assert.Equal(t, b.NextPaymentUT, a.NextPaymentUT)
	assert.Equal(t, stepFunds.balance, jumpFunds.balance)
	assert.Equal(t, float64(k+1)*month, a.NextPaymentUT)
}

func TestAdvanceTimeTermOneEvicted(t *testing.T) {
	t.Parallel()

	for _, apr := range []float64{0, 0.07, 1} {
		l := New(testConfig())
		funds := &fakeFunds{}
		take(t, l, funds, 1000, apr, 1, 0)

		paid := l.AdvanceTime(month, funds)
		require.Len(t, paid, 1)
		assert.Equal(t, 0, l.Len(), "apr %v", apr)
	}
}

func TestAdvanceTimeShortfallWithNoFunds(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	l := New(testConfig(), WithJournal(j))
	funds := &fakeFunds{}

	res := take(t, l, funds, 12000, 0, 12, 0)
	require.Equal(t, 1000.0, res.Loan.MonthlyPayment)
	funds.Add(-funds.balance)

	paid := l.AdvanceTime(month, funds)
	require.Len(t, paid, 1)

	in := paid[0]
	assert.Equal(t, 0.0, in.Paid)
	assert.Equal(t, 1000.0, in.Shortfall)
	assert.Equal(t, 0.0, in.Principal)

	got, ok := l.Get(res.Loan.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.PaymentsMade)
	assert.Equal(t, 2*month, got.NextPaymentUT)
	assert.Equal(t, 12000.0, got.Remaining, "nothing retired")
	assert.Greater(t, got.Remaining, 11000.0, "a full payment would have left 11000")
	assert.Equal(t, 0.0, funds.balance)

	require.Len(t, j.payments, 1)
	assert.Equal(t, 1000.0, j.payments[0].Shortfall)
}

func TestAdvanceTimePartialPayment(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{}
	res := take(t, l, funds, 12000, 0, 12, 0)
	funds.Add(400 - funds.balance)

	paid := l.AdvanceTime(month, funds)
	require.Len(t, paid, 1)
	assert.Equal(t, 400.0, paid[0].Paid)
	assert.Equal(t, 600.0, paid[0].Shortfall)
	assert.Equal(t, 0.0, funds.balance)

	got, _ := l.Get(res.Loan.ID)
	assert.Equal(t, 11600.0, got.Remaining)
}

func TestAdvanceTimeNegativeFundsNotCredited(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{}
	take(t, l, funds, 12000, 0, 12, 0)
	funds.Add(-funds.balance - 50)

	paid := l.AdvanceTime(month, funds)
	require.Len(t, paid, 1)
	assert.Equal(t, 0.0, paid[0].Paid)
	assert.Equal(t, -50.0, funds.balance)
}

func TestAdvanceTimeRetiresDoneLoadedLoan(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	l := New(testConfig(), WithJournal(j))
	l.Load(savedTree(map[string]string{
		loan.FieldID:             "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		loan.FieldPrincipal:      "1000",
		loan.FieldAPR:            "0",
		loan.FieldTermMonths:     "2",
		loan.FieldMonthlyPayment: "500",
		loan.FieldPaymentsMade:   "2",
		loan.FieldRemaining:      "0",
		loan.FieldStartUT:        "0",
		loan.FieldNextPaymentUT:  "0",
	}))
	require.Equal(t, 1, l.Len())

	assert.Empty(t, l.AdvanceTime(10, &fakeFunds{}))
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, []string{journal.EventRetired}, j.kinds())
}

func TestAdvanceTimeLoansIndependent(t *testing.T) {
	t.Parallel()

	l := New(testConfig())
	funds := &fakeFunds{}
	short := take(t, l, funds, 1000, 0, 1, 0)
	long := take(t, l, funds, 1000, 0, 3, month/2)
	funds.Add(1e6)

	paid := l.AdvanceTime(month, funds)
	require.Len(t, paid, 1)
	assert.Equal(t, short.Loan.ID, paid[0].LoanID)

	paid = l.AdvanceTime(2*month, funds)
	require.Len(t, paid, 1)
	assert.Equal(t, long.Loan.ID, paid[0].LoanID)
	assert.Equal(t, 1, l.Len())
}
