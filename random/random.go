// Package random provides the request-scoped deterministic source of randomness.
//
// Every draw made while populating one root value goes through a single Random,
// so the same seed reproduces the same output as long as draws happen in the
// same order.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
)

const (
	upperAlpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphaNum   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Random is not safe for concurrent use. One instance belongs to one request.
type Random struct {
	seed uint64
	rnd  *rand.Rand
}

// New creates a Random for the given seed. A zero seed is replaced
// by a seed derived once from the system entropy source.
func New(seed uint64) *Random {
	if seed == 0 {
		seed = DeriveSeed()
	}

	return &Random{
		seed: seed,
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// DeriveSeed returns a non-zero seed from the system entropy source.
func DeriveSeed() uint64 {
	var buf [8]byte
	for {
		_, _ = crand.Read(buf[:])
		if seed := binary.LittleEndian.Uint64(buf[:]); seed != 0 {
			return seed
		}
	}
}

// Seed returns the effective seed.
func (r *Random) Seed() uint64 {
	return r.seed
}

// IntRange returns a value in [min, max], both inclusive.
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}

	return min + r.rnd.IntN(max-min+1)
}

// Int64Range returns a value in [min, max], both inclusive.
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}

	span := uint64(max - min)
	if span == math.MaxUint64 {
		return int64(r.rnd.Uint64())
	}

	return min + int64(r.rnd.Uint64N(span+1))
}

// Uint64Range returns a value in [min, max], both inclusive.
func (r *Random) Uint64Range(min, max uint64) uint64 {
	if min >= max {
		return min
	}

	span := max - min
	if span == math.MaxUint64 {
		return r.rnd.Uint64()
	}

	return min + r.rnd.Uint64N(span+1)
}

// Float64Range returns a value in [min, max).
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}

	return min + r.rnd.Float64()*(max-min)
}

// Bool returns true or false with equal probability.
func (r *Random) Bool() bool {
	return r.rnd.IntN(2) == 1
}

// DiceRoll returns true with a one in six chance, and always false
// when the outcome is not allowed.
func (r *Random) DiceRoll(allowed bool) bool {
	if !allowed {
		return false
	}

	return r.rnd.IntN(6) == 0
}

// UpperAlpha returns a string of upper-case letters of the given length.
func (r *Random) UpperAlpha(length int) string {
	return r.fromAlphabet(upperAlpha, length)
}

// AlphaNumeric returns a string of letters and digits of the given length.
func (r *Random) AlphaNumeric(length int) string {
	return r.fromAlphabet(alphaNum, length)
}

// OneOf returns a random index in [0, n).
func (r *Random) OneOf(n int) int {
	if n <= 1 {
		return 0
	}

	return r.rnd.IntN(n)
}

// Shuffle shuffles n elements using swap.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}

func (r *Random) fromAlphabet(alphabet string, length int) string {
	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[r.rnd.IntN(len(alphabet))]
	}

	return string(buf)
}
