// Package fuzzy ranks near-miss candidates for parse error suggestions.
// The argot error constructors use it to fill the Suggestion field on
// unknown-option and unknown-command errors.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher finds the closest candidate within a maximum edit distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given maximum edit distance.
// Inputs shorter than two characters are never matched; a one-letter typo
// is as likely to be a different name entirely.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// Best returns the closest candidate to input, or "" when nothing is within
// the maximum distance. Matching is case-insensitive; an exact match is not
// a suggestion. Ties resolve to the longer common prefix, then candidate
// order, so results are deterministic for a fixed candidate slice.
func (m *Matcher) Best(input string, candidates []string) string {
	if len(input) < m.minLength {
		return ""
	}
	lowered := strings.ToLower(input)

	best := ""
	bestDistance := m.maxDistance + 1
	bestPrefix := -1
	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		if c == lowered {
			continue
		}
		d := m.distance(lowered, c)
		if d > m.maxDistance {
			continue
		}
		p := commonPrefixLength(lowered, c)
		if d < bestDistance || (d == bestDistance && p > bestPrefix) {
			best = candidate
			bestDistance = d
			bestPrefix = p
		}
	}
	return best
}

// BestOf is Best over a sorted copy of candidates, for callers whose
// candidate order is not deterministic (map keys).
func (m *Matcher) BestOf(input string, candidates []string) string {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)
	return m.Best(input, sorted)
}

// distance is the Levenshtein edit distance, computed with two rows and an
// early exit once every cell in a row exceeds the maximum.
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if diff := len(a) - len(b); diff > m.maxDistance || -diff > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			cur[j] = minThree(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func commonPrefixLength(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func minThree(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
