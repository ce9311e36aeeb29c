// Package suggest ranks existing keys by their similarity to a key that was
// not found, for "did you mean" hints.
//
// Key functions:
//   - NormalizeKey: folds case and separators before comparing keys
//   - Levenshtein: computes edit distance between strings
//   - Rank: scores and orders candidate keys
//   - Closest: returns the best few candidate keys above a threshold
package suggest
