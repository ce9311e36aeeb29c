package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mapkit/omap"
)

// DefaultIndent is the indentation width used when none is configured.
const DefaultIndent = 2

// Marshal encodes m in format, indenting nested levels by indent spaces.
// A nil m is encoded as an empty mapping. The output ends with a newline.
func Marshal(m *omap.Map, format Format, indent int) ([]byte, error) {
	if m == nil {
		m = omap.New()
	}

	return MarshalValue(m, format, indent)
}

// MarshalValue encodes any value, such as a sub-tree or a slice picked out
// of a document, the way Marshal encodes a whole document.
func MarshalValue(v any, format Format, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)

		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// WriteFile writes doc.Root to path in doc.Format.
func WriteFile(doc *Document, path string, indent int) error {
	data, err := Marshal(doc.Root, doc.Format, indent)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}

	return nil
}
