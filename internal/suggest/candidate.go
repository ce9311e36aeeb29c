package suggest

import "sort"

// Thresholds used by Closest.
const (
	// DefaultMinScore is the lowest score a key needs to be suggested.
	DefaultMinScore = 0.5
	// DefaultLimit caps the number of suggestions.
	DefaultLimit = 3
)

// Candidate is an existing key scored against the key that was asked for.
type Candidate struct {
	Key   string
	Score float64 // similarity of the normalized keys, 0-1
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every key against want and returns them best first.
func Rank(want string, keys []string) CandidateList {
	norm := NormalizeKey(want)

	candidates := make(CandidateList, 0, len(keys))
	for _, k := range keys {
		candidates = append(candidates, Candidate{Key: k, Score: Similarity(norm, NormalizeKey(k))})
	}

	sort.Sort(candidates)

	return candidates
}

// Closest returns up to limit keys whose score reaches DefaultMinScore,
// best first. A limit of zero or less means DefaultLimit.
func Closest(want string, keys []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := Rank(want, keys).AboveThreshold(DefaultMinScore).Top(limit)

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Key
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by key for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	return c[i].Key < c[j].Key
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}
