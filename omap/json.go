package omap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MarshalJSON encodes the map as a JSON object in iteration order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}

		vb, err := json.Marshal(e.value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.key, err)
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. Nested objects
// become *Map, arrays []any, integral numbers int64 and other numbers float64.
// A repeated key keeps its first position and takes the last value.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok != json.Delim('{') {
		return fmt.Errorf("omap: expected JSON object, got %v", tok)
	}

	*m = Map{}

	if err := decodeObject(dec, m); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("omap: trailing data after JSON object")
	}

	return nil
}

func decodeObject(dec *json.Decoder, m *Map) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("omap: expected object key, got %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		m.Set(key, value)
	}

	// closing '}'
	_, err := dec.Token()

	return err
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			nested := New()
			if err := decodeObject(dec, nested); err != nil {
				return nil, err
			}

			return nested, nil
		case '[':
			list := []any{}

			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				list = append(list, item)
			}

			// closing ']'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return list, nil
		default:
			return nil, fmt.Errorf("omap: unexpected delimiter %v", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}

		return t.Float64()
	default:
		// string, bool, nil
		return t, nil
	}
}
