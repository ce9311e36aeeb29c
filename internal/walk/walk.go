// Package walk implements the depth-first traversal shared by merge,
// flatten and deep iteration.
//
// The walk keeps its own frame stack instead of recursing, so nesting depth
// is bounded by memory rather than by goroutine stack size, and a container
// that is already being walked is detected and reported instead of entered.
package walk

import (
	"strconv"

	"mapkit/omap"
)

// Mode selects which container values the walk enters.
type Mode uint8

const (
	DescendPlain  Mode = 1 << iota // enter non-nil *omap.Map values
	DescendSlices                  // enter []any values; keys are decimal indices

	DescendAll = DescendPlain | DescendSlices // enter every container
)

// Action tells the walk how to proceed after a visit.
type Action int

const (
	Continue     Action = iota // enter Value when Step.Descend is set, then go on
	SkipChildren               // do not enter Value
	SkipSiblings               // do not enter Value, abandon the rest of the current container
	Stop                       // end the walk
)

// Step describes one visited entry.
type Step struct {
	// Path is the key path from the root to this entry, Key included.
	// The slice is reused between visits; copy it to keep it.
	Path []string
	// Key of the entry within its container.
	Key string
	// Value of the entry.
	Value any
	// Container holding the entry: a *omap.Map or a []any.
	Container any
	// Depth of the container, the root being 0.
	Depth int
	// Descend is set when the walk will enter Value after a Continue.
	Descend bool
	// Cycle is set when Value is a container currently being walked.
	// Such a value is never entered.
	Cycle bool
}

// Visitor is called once per entry in pre-order.
type Visitor func(step *Step) Action

// Walk visits every entry reachable from root in pre-order depth-first
// order, following each container's iteration order. root must be a non-nil
// *omap.Map, or a []any when mode includes DescendSlices; otherwise nothing
// is visited.
//
// Mutating a container while it is being walked gives unspecified results.
func Walk(root any, mode Mode, visit Visitor) {
	w := walker{mode: mode | DescendPlain, onStack: make(map[ident]struct{})}

	f, ok := w.open(root)
	if !ok {
		return
	}

	w.mode = mode
	w.push(f)

	for len(w.stack) > 0 {
		depth := len(w.stack) - 1
		top := &w.stack[depth]

		key, value, ok := top.next()
		if !ok {
			w.pop()
			continue
		}

		w.path = append(w.path[:depth], key)

		step := Step{
			Path:      w.path,
			Key:       key,
			Value:     value,
			Container: top.container(),
			Depth:     depth,
		}

		child, descend := w.open(value)
		if descend && w.active(child) {
			step.Cycle = true
			descend = false
		}

		step.Descend = descend

		switch visit(&step) {
		case Stop:
			return
		case SkipChildren:
			continue
		case SkipSiblings:
			w.pop()
			continue
		}

		if descend {
			w.push(child)
		}
	}
}

// ident identifies a container by the address of its storage. A slice is
// identified by its first element and its length, so a shorter view of the
// same array is a different container.
type ident struct {
	m *omap.Map
	s *any
	n int
}

type frame struct {
	m   *omap.Map
	s   []any
	pos int
	id  ident
}

func (f *frame) next() (string, any, bool) {
	if f.m != nil {
		if f.pos >= f.m.Len() {
			return "", nil, false
		}

		k, v := f.m.At(f.pos)
		f.pos++

		return k, v, true
	}

	if f.pos >= len(f.s) {
		return "", nil, false
	}

	k, v := strconv.Itoa(f.pos), f.s[f.pos]
	f.pos++

	return k, v, true
}

func (f *frame) container() any {
	if f.m != nil {
		return f.m
	}

	return f.s
}

type walker struct {
	mode    Mode
	stack   []frame
	path    []string
	onStack map[ident]struct{}
}

func (w *walker) open(v any) (frame, bool) {
	switch t := v.(type) {
	case *omap.Map:
		if t == nil || w.mode&DescendPlain == 0 {
			return frame{}, false
		}

		return frame{m: t, id: ident{m: t}}, true
	case []any:
		if w.mode&DescendSlices == 0 {
			return frame{}, false
		}

		f := frame{s: t}
		if len(t) > 0 {
			f.id = ident{s: &t[0], n: len(t)}
		}

		return f, true
	default:
		return frame{}, false
	}
}

func (w *walker) active(f frame) bool {
	if f.id == (ident{}) {
		return false
	}

	_, ok := w.onStack[f.id]

	return ok
}

func (w *walker) push(f frame) {
	if f.id != (ident{}) {
		w.onStack[f.id] = struct{}{}
	}

	w.stack = append(w.stack, f)
}

func (w *walker) pop() {
	f := w.stack[len(w.stack)-1]
	if f.id != (ident{}) {
		delete(w.onStack, f.id)
	}

	w.stack = w.stack[:len(w.stack)-1]
}
