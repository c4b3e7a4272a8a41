package search

import (
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// maxSuggestDistance is the largest edit distance a category suggestion may have.
const maxSuggestDistance = 2

// SuggestCategory returns the closest catalog category to category when no
// record carries category itself. ok is false when category is known, empty,
// or nothing is close enough. Ties go to the category seen first.
func SuggestCategory(records []*models.SupportRecord, category string) (suggestion string, ok bool) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	seen := make(map[string]bool)
	for _, r := range records {
		c := strings.ToLower(r.CategoryOrDefault())
		if c == category {
			return "", false
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		if d := levenshtein(category, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// levenshtein counts single-rune insertions, deletions and substitutions
// needed to turn a into b.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
