package engine

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// suggestionThreshold is the minimum similarity for a configured role to be
// offered as a "did you mean" hint. One typo in a six-letter role scores 0.83.
const suggestionThreshold = 0.75

// closestRole returns the configured role most similar to role, if any
// clears suggestionThreshold. Ties go to the alphabetically first role so
// the hint is stable between runs.
func closestRole(role string, configured sets.Set[string]) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, candidate := range sets.List(configured) {
		if score := similarity(role, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// similarity is 1 - editDistance/maxLen over runes: 1.0 for identical
// strings, 0.0 for strings sharing nothing.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn a into b, keeping only two rows of the table.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			sub := prev[i-1]
			if ra[i-1] != rb[j-1] {
				sub++
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}
