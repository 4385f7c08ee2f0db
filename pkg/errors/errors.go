// Package errors provides structured error handling for the chart engine.
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
	// KindPrecondition indicates a caller contract violation, such as a
	// non-increasing x series passed to extreme-point reduction. These are
	// never recovered internally.
	KindPrecondition
	// KindConfig indicates an invalid chart configuration file.
	KindConfig
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
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

// Sentinel errors wrapped by [ChartError]. Test with errors.Is.
var (
	ErrNotIncreasing     = stderrors.New("x values must be strictly increasing")
	ErrLengthMismatch    = stderrors.New("x and y series have different lengths")
	ErrNilController     = stderrors.New("animation controller is nil")
	ErrInvalidController = stderrors.New("controller must be an integer or a list of booleans")
	ErrNilPaint          = stderrors.New("shape has no paint function")
	ErrDuplicateShape    = stderrors.New("duplicate shape id in group")
	ErrUnknownEasing     = stderrors.New("unknown easing function")
	ErrUnknownGroup      = stderrors.New("no group registered under key")
	ErrUnknownShape      = stderrors.New("no shape registered under id")
	ErrUnsupportedScope  = stderrors.New("unsupported calendar scope")
	ErrUnsupportedSchema = stderrors.New("unsupported config schema version")
)

// ChartError represents a structured error raised by the engine.
type ChartError struct {
	// Op is the operation that failed (e.g., "spline.ReduceExtremes").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Key is the shape group key, if applicable.
	Key string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ChartError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] group=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// Precondition returns a KindPrecondition error for op wrapping err.
func Precondition(op string, err error) *ChartError {
	return &ChartError{Op: op, Kind: KindPrecondition, Err: err}
}

// Preconditionf is like Precondition but wraps err with a formatted detail.
func Preconditionf(op string, err error, format string, args ...any) *ChartError {
	return &ChartError{
		Op:   op,
		Kind: KindPrecondition,
		Err:  fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
	}
}

// Config returns a KindConfig error for op wrapping err.
func Config(op string, err error) *ChartError {
	return &ChartError{Op: op, Kind: KindConfig, Err: err}
}

// IsKind reports whether err is a ChartError of the given kind anywhere in
// its chain.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ChartError
	if stderrors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// Is reports whether any error in err's chain matches target. It mirrors
// the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scheduler.paint").
	Op string
	// Key is the shape group key, if applicable.
	Key string
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

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ChartError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
