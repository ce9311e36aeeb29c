// Package pathexpr converts between key paths and their textual form,
// e.g. "server.http.port" <-> ["server", "http", "port"].
//
// A backslash escapes the separator or a backslash inside a key:
// `a\.b.c` is ["a.b", "c"]. Empty keys cannot be written.
package pathexpr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultSeparator separates keys unless a caller chooses another one.
const DefaultSeparator = "."

var (
	ErrEmptyPath      = errors.New("empty path")
	ErrEmptySegment   = errors.New("empty segment")
	ErrDanglingEscape = errors.New("dangling escape")
)

// Parse parses a path written with DefaultSeparator.
func Parse(path string) ([]string, error) {
	return ParseSep(path, DefaultSeparator)
}

// ParseSep parses a path whose keys are separated by sep.
func ParseSep(path, sep string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if sep == "" {
		return []string{path}, nil
	}

	var (
		keys    []string
		current strings.Builder
	)

	flush := func() error {
		if current.Len() == 0 {
			return fmt.Errorf("invalid path %q: %w", path, ErrEmptySegment)
		}

		keys = append(keys, current.String())
		current.Reset()

		return nil
	}

	for i := 0; i < len(path); {
		switch {
		case path[i] == '\\':
			rest := path[i+1:]
			if rest == "" {
				return nil, fmt.Errorf("invalid path %q: %w", path, ErrDanglingEscape)
			}

			if strings.HasPrefix(rest, sep) {
				current.WriteString(sep)
				i += 1 + len(sep)

				continue
			}

			r, size := utf8.DecodeRuneInString(rest)
			current.WriteRune(r)
			i += 1 + size
		case strings.HasPrefix(path[i:], sep):
			if err := flush(); err != nil {
				return nil, err
			}

			i += len(sep)
		default:
			current.WriteByte(path[i])
			i++
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return keys, nil
}

// ParseAll parses several paths written with sep.
func ParseAll(paths []string, sep string) ([][]string, error) {
	result := make([][]string, 0, len(paths))

	for _, p := range paths {
		keys, err := ParseSep(p, sep)
		if err != nil {
			return nil, err
		}

		result = append(result, keys)
	}

	return result, nil
}

// Format joins keys with DefaultSeparator, escaping where needed.
func Format(keys []string) string {
	return FormatSep(keys, DefaultSeparator)
}

// FormatSep joins keys with sep. The output parses back to keys with ParseSep
// as long as no key is empty.
func FormatSep(keys []string, sep string) string {
	var b strings.Builder

	for i, k := range keys {
		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(escape(k, sep))
	}

	return b.String()
}

func escape(key, sep string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	if sep == "" {
		return key
	}

	return strings.ReplaceAll(key, sep, `\`+sep)
}
