// Package errors provides structured error handling for rosa.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSelector indicates a selector or element reference that does not
	// resolve to an element of the document.
	KindSelector
	// KindParams indicates invalid animation parameters.
	KindParams
	// KindConfig indicates an invalid scene or configuration file.
	KindConfig
	// KindRender indicates a failure writing or rendering output.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSelector:
		return "selector"
	case KindParams:
		return "params"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ErrNoMatch is wrapped by selector errors when a valid selector matches
// nothing in the document.
var ErrNoMatch = stderrors.New("no element matches")

// Error represents a structured error in rosa.
type Error struct {
	// Op is the operation that failed (e.g., "dom.Query").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Selector is the offending selector, if applicable.
	Selector string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("%s [%s] selector=%q: %v", e.Op, e.Kind, e.Selector, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.FrameLoop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParamError describes a single rejected animation parameter.
type ParamError struct {
	// Field is the parameter name (e.g., "ease" or "translateX").
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains the rejection.
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// ErrorHandler receives errors reported by rosa.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
