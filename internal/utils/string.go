package utils

import (
	"context"
)

// FindClosestString returns the candidate with the smallest edit distance to s.
// Candidates with more than maxDifferences differences are ignored.
func FindClosestString(ctx context.Context, candidates []string, s string, maxDifferences int) (closest string, distance int, found bool) {
	distance = -1

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		d := levenshtein(candidate, s)
		if d > maxDifferences {
			continue
		}

		if !found || d < distance {
			closest = candidate
			distance = d
			found = true
		}
	}
	return
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			above := row[j]
			row[j] = Min(Min(row[j]+1, row[j-1]+1), diag+cost)
			diag = above
		}
	}
	return row[len(rb)]
}
