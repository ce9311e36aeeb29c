// Package diagnostic collects structured findings about the documents a
// command reads: duplicate or unusable keys reported while decoding, and
// missing paths together with "did you mean" suggestions.
package diagnostic
