package omap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExcessiveAliasing reports a YAML document whose aliases expand far
	// beyond its own size.
	ErrExcessiveAliasing = errors.New("omap: document contains excessive aliasing")
	// ErrRecursiveAlias reports a YAML alias to a node that contains it.
	ErrRecursiveAlias = errors.New("omap: alias refers to a node containing it")
)

// ArgumentError reports an argument whose shape an operation cannot use.
type ArgumentError struct {
	// Op is the operation that rejected the argument, e.g. "make".
	Op string
	// Arg names the rejected parameter.
	Arg string
	// Value is the rejected argument.
	Value any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s argument of type %T", e.Op, e.Arg, e.Value)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
