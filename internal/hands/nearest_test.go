package hands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, spec string) Set {
	t.Helper()
	set, err := ParseRange(spec)
	require.NoError(t, err)
	return set
}

func TestClosestInRange(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		spec  string
		want  string
	}{
		{"same high card and suitedness", "T5o", "22+, A2s+, ATo+, K9s+, KJo+, Q9s+, QJo, J9s+, JTo, T8s+, T9o, 98s, 87s", "T9o"},
		{"boundary just above", "95o", "96o+", "96o"},
		{"suited falls back when lonely", "72o", "T9s", "T9s"},
		{"closest offsuit ace", "A9o", "ATo+", "ATo"},
		{"suited category", "A4s", "A5s+", "A5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestInRange(MustParseHand(tt.hand), mustRange(t, tt.spec))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestClosestInRangePairs(t *testing.T) {
	// A pair looks for the nearest pair in range.
	got := ClosestInRange(MustParseHand("66"), mustRange(t, "99+, AJs+"))
	require.NotNil(t, got)
	assert.Equal(t, "99", got.String())

	// No pairs in range: fall back to non-pair candidates.
	got = ClosestInRange(MustParseHand("66"), mustRange(t, "AJs+"))
	require.NotNil(t, got)

	// Range of only pairs offers nothing for a non-pair hand.
	assert.Nil(t, ClosestInRange(MustParseHand("T5o"), mustRange(t, "22+")))
}

func TestClosestInRangeEmpty(t *testing.T) {
	assert.Nil(t, ClosestInRange(MustParseHand("AKs"), Set{}))
}

func TestBottomOfCategory(t *testing.T) {
	tests := []struct {
		name string
		hand string
		spec string
		want string
	}{
		{"suited aces", "A9s", "A5s+", "A5s"},
		{"higher suited ace", "AJs", "A5s+", "A5s"},
		{"offsuit aces", "AQo", "ATo+", "ATo"},
		{"pairs bottom out", "QQ", "55+", "55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BottomOfCategory(MustParseHand(tt.hand), mustRange(t, tt.spec))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBottomOfCategoryMissing(t *testing.T) {
	// No suited aces in range, so the category has no bottom.
	assert.Nil(t, BottomOfCategory(MustParseHand("A9s"), mustRange(t, "ATo+")))

	// No pairs in range.
	assert.Nil(t, BottomOfCategory(MustParseHand("QQ"), mustRange(t, "ATo+")))
}
