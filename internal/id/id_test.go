package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndParses(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		v := New()
		require.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true

		got, ok := Parse(v)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"garbage", "not-an-id", "", false},
		{"zero guid", "00000000-0000-0000-0000-000000000000", "", false},
		{"zero ulid", "00000000000000000000000000", "", false},
		{"guid", "3F2504E0-4F89-11D3-9A0C-0305E82C3301", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", true},
		{"ulid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", "01ARZ3NDEKTSV4RRFFQ69G5FAV", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Short("short"))
	assert.Equal(t, "01ARZ3ND", Short("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
}
