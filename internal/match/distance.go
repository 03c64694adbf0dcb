package match

import (
	"strings"
	"unicode"
)

// Levenshtein returns the number of single rune insertions, deletions or
// substitutions turning a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// two rows over the shorter string
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores a against b in [0, 1], 1 for equal strings.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Fold drops case and separators, so "customer_id", "CustomerID" and
// "customerId" compare equal.
func Fold(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
