package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for a file extension or format name that is
// neither YAML nor JSON.
var ErrUnknownFormat = errors.New("unknown document format")

// Format is a document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name as accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name: "yaml", "yml" or "json", in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatOf picks the format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	return ParseFormat(ext)
}
