package utils

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// Clamp limits value to [lo, hi]. An inverted range yields hi.
func Clamp[T number](value, lo, hi T) T {
	return min(max(value, lo), hi)
}

// RaiseMax raises max to min when the range is inverted and reports whether it did.
func RaiseMax[T number](min T, max *T) bool {
	if min <= *max {
		return false
	}

	*max = min

	return true
}
