// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest picks the closest known name for a mistyped one.
package suggest

// MaxDistance is the largest edit distance Closest accepts.
const MaxDistance = 3

// Closest returns the candidate nearest to input by edit distance, or ""
// when none is within MaxDistance. Ties go to the earlier candidate.
func Closest(input string, candidates []string) string {
	bestName := ""
	bestDistance := MaxDistance + 1
	for _, candidate := range candidates {
		if distance := Distance(input, candidate); distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// Distance computes the Levenshtein edit distance between two strings.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// One row of the matrix, sized by the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous, current = current, previous
	}

	return previous[len(a)]
}
