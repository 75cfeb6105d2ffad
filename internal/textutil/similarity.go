package textutil

import "math"

// Similarity scores how alike two name strings are, in [0, 1]. The score is
// case-insensitive and tolerant of separator differences: both inputs are
// normalized before comparison. It blends a token-frequency cosine score with
// a normalized edit-distance ratio and keeps the higher of the two, so that
// both token reordering and small in-token typos degrade the score gently.
//
// Two empty strings score 1.0; empty against non-empty scores 0.0.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" && nb == "" {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	cosine := CosineSimilarity(NewFingerprint(na), NewFingerprint(nb))
	edit := editRatio(na, nb)
	return math.Max(cosine, edit)
}

func editRatio(a, b string) float64 {
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	distance := levenshteinDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// levenshteinDistance calculates the edit distance between two strings using
// the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
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
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
