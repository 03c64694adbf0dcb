package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)

	for range 100 {
		require.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
		require.Equal(t, a.UpperAlpha(8), b.UpperAlpha(8))
		require.Equal(t, a.Float64Range(-1, 1), b.Float64Range(-1, 1))
	}
}

func TestRandom_ZeroSeedIsDerived(t *testing.T) {
	r := New(0)
	assert.NotZero(t, r.Seed())
}

func TestRandom_IntRangeInclusive(t *testing.T) {
	r := New(7)
	seen := map[int]bool{}

	for range 2000 {
		v := r.IntRange(2, 6)
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 6)
		seen[v] = true
	}

	assert.Len(t, seen, 5)
}

func TestRandom_Int64RangeFullSpan(t *testing.T) {
	r := New(1)
	for range 100 {
		_ = r.Int64Range(-1<<63, 1<<63-1)
	}

	assert.Equal(t, int64(5), r.Int64Range(5, 5))
	assert.Equal(t, int64(5), r.Int64Range(5, 1))
}

func TestRandom_DiceRoll(t *testing.T) {
	r := New(3)
	hits := 0

	for range 6000 {
		if r.DiceRoll(true) {
			hits++
		}

		require.False(t, r.DiceRoll(false))
	}

	assert.InDelta(t, 1000, hits, 200)
}

func TestRandom_Strings(t *testing.T) {
	r := New(9)

	s := r.UpperAlpha(12)
	assert.Len(t, s, 12)
	assert.Regexp(t, "^[A-Z]+$", s)
	assert.Empty(t, r.AlphaNumeric(0))
}
