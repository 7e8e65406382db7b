// Package walkerr encodes the exploration core's error-kind taxonomy
// (spec §7) as a small tagged-variant wrapper instead of distinct error
// types, so call sites can switch on Kind and every wrapped error remains
// errors.Is/errors.As-compatible with its cause.
package walkerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags one of the six error categories the core distinguishes.
type Kind int

const (
	// Transient covers OCR-returned-nothing, failed alert dismissal, and
	// input-synthesis errors. Policy: surface a paused(reason) step result;
	// the driver may retry next tick.
	Transient Kind = iota
	// BudgetExhausted covers depth, screen-count, or wall-clock cap reached.
	// Policy: one-time transition to finished, emit bundle.
	BudgetExhausted
	// OutOfBounds covers a coordinate outside the window. Policy: reject,
	// no retry.
	OutOfBounds
	// Structural covers a backtrack landing on neither the expected parent
	// nor a known node. Policy: retry once, then accept expected parent.
	Structural
	// Configuration covers an explicitly named but unknown strategy.
	// Policy: fall back to the detector's default.
	Configuration
	// UnreachableTarget covers destructive text, frontier-depth overflow, or
	// a skip-list match. Policy: silent skip.
	UnreachableTarget
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case BudgetExhausted:
		return "budget_exhausted"
	case OutOfBounds:
		return "out_of_bounds"
	case Structural:
		return "structural"
	case Configuration:
		return "configuration"
	case UnreachableTarget:
		return "unreachable_target"
	default:
		return "unknown"
	}
}

// Error is the wrapper threaded through the core. It is never fatal by
// itself (spec §7: "Nothing except a panic in external infrastructure is
// considered fatal") — callers decide what to do with Kind.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap captures cause with a stack trace (via pkg/errors) the moment it
// crosses a boundary call, tagging it with kind. Used for the Transient and
// Structural kinds, which originate from external collaborators.
func Wrap(kind Kind, cause error, message string) *Error {
	if cause == nil {
		return New(kind, message)
	}
	return &Error{Kind: kind, Message: message, cause: errors.WithStack(cause)}
}

// Is reports whether err is a *Error of the given kind, unwrapping as
// needed so errors.Is(err, walkerr.Transient) style checks aren't required.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if we, ok := err.(*Error); ok {
			e = we
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
