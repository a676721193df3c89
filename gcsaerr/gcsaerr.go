// Package gcsaerr classifies the fatal and assertion errors raised during
// GCSA construction.
package gcsaerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of the four error categories a construction error
// belongs to.
type Kind int

const (
	// InputIntegrity covers malformed tokenization, non-numeric or
	// out-of-range offsets, kmer length > 16, or characters outside the
	// alphabet.
	InputIntegrity Kind = iota
	// IO covers file open/read failures.
	IO
	// Capacity covers a path-node order that would exceed PathNode.LabelLength.
	Capacity
	// Invariant covers programmer errors: min_lcp/max_lcp called on
	// overlapping or mis-ordered path nodes.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case InputIntegrity:
		return "input-integrity"
	case IO:
		return "io"
	case Capacity:
		return "capacity"
	case Invariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind, preserving a pkg/errors
// stack trace so %+v on the top-level error prints the full chain.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.cause) }
func (e *Error) Unwrap() error { return e.cause }

// Wrap builds a new *Error of the given kind from a plain error, attaching
// a stack trace at the call site.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.WithStack(err)}
}

// Wrapf builds a new *Error of the given kind from a format string,
// attaching a stack trace at the call site.
func Wrapf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Is reports whether err is a gcsaerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
