package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPayments(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, n := range []int{3, 1, 2} {
		require.NoError(t, j.RecordPayment(samplePayment("A", n)))
	}
	require.NoError(t, j.RecordPayment(samplePayment("B", 1)))

	got, err := j.ListPayments("A")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, "A", p.LoanID)
		assert.Equal(t, i+1, p.Number)
	}

	none, err := j.ListPayments("nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPaymentsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for n := 1; n <= 5; n++ {
		require.NoError(t, j.RecordPayment(samplePayment("A", n)))
	}

	got, err := j.ListPaymentsBetween(2*648000, 4*648000)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Number)
	assert.Equal(t, 3, got[1].Number)
}

func TestLastPayment(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.LastPayment("A")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, j.RecordPayment(samplePayment("A", 1)))
	require.NoError(t, j.RecordPayment(samplePayment("A", 2)))

	last, err := j.LastPayment("A")
	require.NoError(t, err)
	assert.Equal(t, 2, last.Number)
}

func TestListEvents(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, j.RecordEvent(LoanEvent{LoanID: "A", UT: 10, Kind: EventOriginated, Amount: 1000}))
	require.NoError(t, j.RecordEvent(LoanEvent{LoanID: "B", UT: 11, Kind: EventOriginated, Amount: 5}))
	require.NoError(t, j.RecordEvent(LoanEvent{LoanID: "A", UT: 99, Kind: EventRetired, Detail: "term"}))

	got, err := j.ListEvents("A")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, EventOriginated, got[0].Kind)
	assert.Equal(t, 1000.0, got[0].Amount)
	assert.Equal(t, EventRetired, got[1].Kind)
	assert.Equal(t, "term", got[1].Detail)
}
