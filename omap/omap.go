package omap

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Map is an ordered mapping from string keys to arbitrary values.
// Iteration order is insertion order. The zero value is an empty map ready to use.
//
// Map is not safe for concurrent mutation.
type Map struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	key   string
	value any
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// NewWithCapacity returns an empty Map with room for n entries.
func NewWithCapacity(n int) *Map {
	return &Map{
		entries: make([]entry, 0, n),
		index:   make(map[string]int, n),
	}
}

// Of builds a Map from alternating keys and values:
//
//	omap.Of("a", 1, "b", omap.Of("c", 2))
//
// It panics when the argument count is odd or a key is not a string.
func Of(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("omap.Of: odd number of arguments")
	}

	m := NewWithCapacity(len(kv) / 2)

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("omap.Of: key at position %d is %T, not string", i, kv[i]))
		}

		m.Set(key, kv[i+1])
	}

	return m
}

// Len returns the number of entries. A nil Map has length zero.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i].value, true
}

// Value returns the value stored under key, or nil.
func (m *Map) Value(key string) any {
	v, _ := m.Get(key)
	return v
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[key]; ok {
		m.entries[i].value = value
		return
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, value: value})
}

// Delete removes key and reports whether it was present.
// The relative order of the remaining entries is kept.
func (m *Map) Delete(key string) bool {
	if m == nil || m.index == nil {
		return false
	}

	i, ok := m.index[key]
	if !ok {
		return false
	}

	m.entries = slices.Delete(m.entries, i, i+1)
	delete(m.index, key)

	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].key] = j
	}

	return true
}

// At returns the i-th entry in iteration order. It panics when i is out of range.
func (m *Map) At(i int) (string, any) {
	e := m.entries[i]
	return e.key, e.value
}

// Keys returns a copy of the keys in iteration order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}

	return keys
}

// Values returns a copy of the values in iteration order.
func (m *Map) Values() []any {
	values := make([]any, 0, m.Len())
	for _, v := range m.All() {
		values = append(values, v)
	}

	return values
}

// All iterates over the entries in insertion order.
// Entries appended during iteration are visited; deleting entries
// during iteration gives unspecified results.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}

		for i := 0; i < len(m.entries); i++ {
			if !yield(m.entries[i].key, m.entries[i].value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy: nested values are shared.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	out := NewWithCapacity(len(m.entries))
	for _, e := range m.entries {
		out.Set(e.key, e.value)
	}

	return out
}

// Equal reports whether m and other hold the same keys in the same order
// with structurally equal values. Nested *Map and []any values are compared
// recursively; anything else is compared with reflect.DeepEqual.
// A nil Map equals an empty one.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	for i := 0; i < m.Len(); i++ {
		ka, va := m.At(i)
		kb, vb := other.At(i)

		if ka != kb || !equalValues(va, vb) {
			return false
		}
	}

	return true
}

func equalValues(a, b any) bool {
	switch ta := a.(type) {
	case *Map:
		tb, ok := b.(*Map)
		if !ok {
			return false
		}

		if ta == tb {
			return true
		}

		return ta.Equal(tb)
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}

		for i := range ta {
			if !equalValues(ta[i], tb[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// String renders the map as compact JSON. Values that cannot be encoded
// are reported inline instead of failing.
func (m *Map) String() string {
	b, err := m.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("omap.Map(%d entries, %v)", m.Len(), err)
	}

	return string(b)
}
