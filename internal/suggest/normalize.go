package suggest

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a key for fuzzy comparison: CamelCase boundaries and
// separators (_ - . and space) are dropped and the result is lower-cased, so
// "listenPort", "listen_port" and "Listen-Port" all become "listenport".
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// Tokenize splits a key into lower-case words at separators and CamelCase
// boundaries.
//   - "listenPort" -> ["listen", "port"]
//   - "HTTPServer" -> ["http", "server"]
//   - "db_max-conns" -> ["db", "max", "conns"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether a new word starts at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "listenPort": split before 'P'
	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "HTTPServer": split before 'S'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
