package omap

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler, emitting a mapping node in iteration order.
func (m *Map) MarshalYAML() (any, error) {
	if m == nil {
		return nil, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range m.entries {
		var kn, vn yaml.Node

		if err := kn.Encode(e.key); err != nil {
			return nil, err
		}

		if err := vn.Encode(e.value); err != nil {
			return nil, fmt.Errorf("key %q: %w", e.key, err)
		}

		node.Content = append(node.Content, &kn, &vn)
	}

	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The node must be a mapping;
// see NodeDecoder for how nested values are converted.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := NodeDecoder{}.Decode(node)
	if err != nil {
		return err
	}

	decoded, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("omap: expected YAML mapping, got %v", node.Kind)
	}

	*m = *decoded

	return nil
}

// NodeDecoder converts yaml.Node trees into ordered values: mappings become
// *Map, sequences []any and scalars their natural Go type. Aliases are
// expanded into fresh values and "<<" merge keys are applied, with keys
// written explicitly in the mapping taking precedence.
type NodeDecoder struct {
	// Warn receives non-fatal findings. It may be nil.
	Warn func(Warning)
}

// WarningKind classifies a Warning.
type WarningKind int

const (
	// WarnDuplicateKey: a key is written twice in one mapping; the last value wins.
	WarnDuplicateKey WarningKind = iota
	// WarnSkippedKey: a mapping key is not a scalar and its entry was dropped.
	WarnSkippedKey
)

// Warning is a non-fatal finding of a NodeDecoder.
type Warning struct {
	Kind WarningKind
	// Path locates the entry; for a skipped key it is the enclosing mapping.
	Path    []string
	Line    int
	Message string
}

// Decode converts n. A document node is unwrapped; an empty document decodes to nil.
//
// Alias expansion is bounded: a document whose decoded size is dominated by
// expanded aliases fails with ErrExcessiveAliasing, and an alias that refers
// to a node containing it fails with ErrRecursiveAlias.
func (d NodeDecoder) Decode(n *yaml.Node) (any, error) {
	st := &nodeDecoder{NodeDecoder: d, expanding: make(map[*yaml.Node]bool)}

	return st.decode(n, nil)
}

func (d NodeDecoder) warn(kind WarningKind, path []string, line int, format string, args ...any) {
	if d.Warn != nil {
		d.Warn(Warning{Kind: kind, Path: slices.Clone(path), Line: line, Message: fmt.Sprintf(format, args...)})
	}
}

// Same thresholds as yaml.v3 applies when it expands aliases itself.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

// allowedAliasRatio returns the share of decoded nodes that may come from
// alias expansion after decodeCount nodes.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= aliasRatioRangeLow:
		return 0.99
	case decodeCount >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decodeCount-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// nodeDecoder carries the state of one Decode call.
type nodeDecoder struct {
	NodeDecoder

	decodeCount int
	aliasCount  int
	aliasDepth  int
	// anchors whose expansion is in progress
	expanding map[*yaml.Node]bool
}

func (d *nodeDecoder) count() error {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}

	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return ErrExcessiveAliasing
	}

	return nil
}

// expand decodes the anchored node an alias refers to.
func (d *nodeDecoder) expand(alias *yaml.Node, decode func(anchored *yaml.Node) error) error {
	target := alias.Alias
	if target == nil {
		return errors.New("omap: alias without anchor")
	}

	if d.expanding[target] {
		return fmt.Errorf("%w: anchor %q at line %d", ErrRecursiveAlias, alias.Value, alias.Line)
	}

	d.expanding[target] = true
	d.aliasDepth++

	err := decode(target)

	d.aliasDepth--
	delete(d.expanding, target)

	return err
}

func (d *nodeDecoder) decode(n *yaml.Node, path []string) (any, error) {
	if n == nil {
		return nil, nil
	}

	if err := d.count(); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}

		return d.decode(n.Content[0], path)
	case yaml.AliasNode:
		var v any

		err := d.expand(n, func(anchored *yaml.Node) error {
			var err error
			v, err = d.decode(anchored, path)

			return err
		})

		return v, err
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))

		for i, item := range n.Content {
			v, err := d.decode(item, append(path, fmt.Sprint(i)))
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil
	case yaml.MappingNode:
		return d.decodeMapping(n, path)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("omap: unsupported YAML node kind %v at line %d", n.Kind, n.Line)
	}
}

func (d *nodeDecoder) decodeMapping(n *yaml.Node, path []string) (*Map, error) {
	m := NewWithCapacity(len(n.Content) / 2)
	explicit := make(map[string]bool, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.ScalarNode && k.ShortTag() != "!!merge" {
			explicit[k.Value] = true
		}
	}

	seen := make(map[string]bool, len(explicit))

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]

		if k.ShortTag() == "!!merge" {
			if err := d.applyMerge(m, vn, explicit, path); err != nil {
				return nil, err
			}

			continue
		}

		if k.Kind != yaml.ScalarNode {
			d.warn(WarnSkippedKey, path, k.Line, "non-scalar key skipped")
			continue
		}

		if seen[k.Value] {
			d.warn(WarnDuplicateKey, append(path, k.Value), k.Line, "duplicate key %q, last value wins", k.Value)
		}

		seen[k.Value] = true

		v, err := d.decode(vn, append(path, k.Value))
		if err != nil {
			return nil, err
		}

		m.Set(k.Value, v)
	}

	return m, nil
}

// applyMerge copies entries of the mapping(s) referenced by a "<<" key that
// are neither written explicitly nor already merged from an earlier source.
func (d *nodeDecoder) applyMerge(m *Map, vn *yaml.Node, explicit map[string]bool, path []string) error {
	if vn.Kind == yaml.AliasNode {
		return d.expand(vn, func(anchored *yaml.Node) error {
			return d.mergeFrom(m, anchored, explicit, path)
		})
	}

	return d.mergeFrom(m, vn, explicit, path)
}

func (d *nodeDecoder) mergeFrom(m *Map, src *yaml.Node, explicit map[string]bool, path []string) error {
	sources := []*yaml.Node{src}
	if src.Kind == yaml.SequenceNode {
		sources = src.Content
	}

	for _, s := range sources {
		v, err := d.decode(s, path)
		if err != nil {
			return err
		}

		merged, ok := v.(*Map)
		if !ok {
			return fmt.Errorf("omap: line %d: merge key value must be a mapping", s.Line)
		}

		for key, value := range merged.All() {
			if explicit[key] || m.Has(key) {
				continue
			}

			m.Set(key, value)
		}
	}

	return nil
}
