package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mapkit/internal/diagnostic"
	"mapkit/internal/pathexpr"
	"mapkit/omap"
)

// ErrRootNotMapping is returned for a document whose top-level value is not
// a mapping.
var ErrRootNotMapping = errors.New("document root is not a mapping")

// Document is a decoded file.
type Document struct {
	// Source names where the document came from, e.g. a file path or "-".
	Source string
	Format Format
	Root   *omap.Map
}

// LoadFile reads the document at path, choosing the format from its
// extension. diags may be nil.
func LoadFile(path string, diags *diagnostic.Diagnostics) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return Parse(data, path, format, diags)
}

// Load reads a whole document from r.
func Load(r io.Reader, source string, format Format, diags *diagnostic.Diagnostics) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", source, err)
	}

	return Parse(data, source, format, diags)
}

// Parse decodes data. An empty document decodes to an empty mapping.
// Decoder warnings are added to diags when it is not nil.
func Parse(data []byte, source string, format Format, diags *diagnostic.Diagnostics) (*Document, error) {
	var (
		root *omap.Map
		err  error
	)

	switch format {
	case FormatYAML:
		root, err = parseYAML(data, source, diags)
	case FormatJSON:
		root, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document %s: %w", format, source, err)
	}

	if diags != nil && len(bytes.TrimSpace(data)) == 0 {
		diags.AddInfo(diagnostic.CodeEmptyDocument, "document is empty", source, "")
	}

	return &Document{Source: source, Format: format, Root: root}, nil
}

func parseYAML(data []byte, source string, diags *diagnostic.Diagnostics) (*omap.Map, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	dec := omap.NodeDecoder{Warn: func(w omap.Warning) {
		if diags == nil {
			return
		}

		code := diagnostic.CodeDuplicateKey
		if w.Kind == omap.WarnSkippedKey {
			code = diagnostic.CodeIgnoredKey
		}

		diags.AddWarning(code, fmt.Sprintf("line %d: %s", w.Line, w.Message), source, pathexpr.Format(w.Path))
	}}

	v, err := dec.Decode(&node)
	if err != nil {
		return nil, err
	}

	return asRoot(v)
}

func parseJSON(data []byte) (*omap.Map, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return omap.New(), nil
	}

	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, errors.New("invalid JSON")
		}

		return nil, ErrRootNotMapping
	}

	m := omap.New()
	if err := m.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}

	return m, nil
}

func asRoot(v any) (*omap.Map, error) {
	switch t := v.(type) {
	case nil:
		return omap.New(), nil
	case *omap.Map:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrRootNotMapping, v)
	}
}

// ParseValue decodes a single YAML value such as "8080", "true", "[a, b]" or
// "{k: v}". Mappings become *omap.Map. An empty string is the empty string.
func ParseValue(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return s, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return nil, fmt.Errorf("failed to parse value %q: %w", s, err)
	}

	return omap.NodeDecoder{}.Decode(&node)
}
