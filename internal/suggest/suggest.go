// Package suggest provides "did you mean" matching for mistyped config keys,
// sort columns, and course names using Levenshtein distance.
package suggest

import (
	"slices"
	"strings"
)

const maxSuggestions = 3

// levenshtein calculates the edit distance between two strings, counting
// runes so that Japanese course names compare by character.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(
				prev[j]+1,      // deletion
				cur[j-1]+1,     // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Closest returns up to three candidates similar to unknown, best first.
// Matching ignores case and leading dashes.
func Closest(unknown string, candidates []string) []string {
	norm := func(s string) string { return strings.ToLower(strings.TrimLeft(s, "-")) }
	unknown = norm(unknown)

	type scored struct {
		value string
		dist  int
	}
	var matches []scored
	limit := max(2, len([]rune(unknown))/2)
	for _, c := range candidates {
		n := norm(c)
		d := levenshtein(unknown, n)
		if strings.Contains(n, unknown) && unknown != "" {
			d = min(d, 1)
		}
		if d <= limit {
			matches = append(matches, scored{c, d})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int { return a.dist - b.dist })

	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].value)
	}
	return out
}

// Hint formats suggestions as a trailing hint, or "" when there are none
func Hint(unknown string, candidates []string) string {
	s := Closest(unknown, candidates)
	if len(s) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(s, ", ") + "?"
}
