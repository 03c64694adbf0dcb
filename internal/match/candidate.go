package match

import (
	"cmp"
	"slices"
)

// SuggestThreshold is the minimum similarity for a name to be suggested.
const SuggestThreshold = 0.5

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against target, best first. Equal scores
// are ordered by name.
func Rank(target string, names []string) []Candidate {
	folded := Fold(target)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		out = append(out, Candidate{Name: name, Score: Similarity(folded, Fold(name))})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to n known names close enough to target.
func Suggest(target string, names []string, n int) []string {
	var out []string
	for _, c := range Rank(target, names) {
		if c.Score < SuggestThreshold || len(out) == n {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
