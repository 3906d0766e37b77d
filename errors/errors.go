// Package errors provides standardized error handling patterns for StreamBlocks
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping and classification across the
// block library.
package errors

import (
	"errors"
	"fmt"
)

// Kind represents the classification of errors for handling purposes
type Kind int

const (
	// KindInvalidArgument represents errors due to unsupported data types or
	// malformed configuration passed at construction or setter time
	KindInvalidArgument Kind = iota
	// KindRange represents an index or channel parameter outside its valid domain
	KindRange
	// KindNotImplemented represents a method deliberately unsupported for a
	// given mode or configuration path
	KindNotImplemented
	// KindInternal represents a violated internal invariant; a programming
	// error, not a recoverable user error
	KindInternal
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindRange:
		return "range"
	case KindNotImplemented:
		return "not implemented"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Block construction and configuration errors
	ErrUnsupportedDType = errors.New("unsupported data type")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNotConnected     = errors.New("port not connected")

	// Lifecycle errors
	ErrAlreadyStarted = errors.New("block already started")
	ErrNotStarted     = errors.New("block not started")

	// Port protocol errors
	ErrOverConsume = errors.New("consume exceeds available elements")
	ErrOverProduce = errors.New("produce exceeds output capacity")
)

// ClassifiedError wraps an error with its classification and the
// component/operation context where it occurred.
type ClassifiedError struct {
	Kind      Kind
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// KindOf returns the classification of an error, or KindInternal for
// unclassified errors.
func KindOf(err error) Kind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// IsInvalidArgument checks if an error is an invalid-argument error
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind == KindInvalidArgument
	}
	return errors.Is(err, ErrUnsupportedDType) || errors.Is(err, ErrInvalidConfig)
}

// IsRange checks if an error is a range error
func IsRange(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind == KindRange
	}
	return false
}

// IsNotImplemented checks if an error is a not-implemented error
func IsNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind == KindNotImplemented
	}
	return false
}

// IsInternal checks if an error signals a violated internal invariant
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind == KindInternal
	}
	return false
}

// newClassified creates a new classified error.
// This is an internal helper - use the kind-specific constructors instead.
func newClassified(kind Kind, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Kind:      kind,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvalidArgument wraps an error as an invalid-argument error with context
func WrapInvalidArgument(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(KindInvalidArgument, wrappedErr, component, method, wrappedErr.Error())
}

// InvalidArgumentf creates an invalid-argument error from a format string
func InvalidArgumentf(component, method, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	msg := fmt.Sprintf("%s.%s: %s", component, method, err.Error())
	return newClassified(KindInvalidArgument, err, component, method, msg)
}

// Rangef creates a range error from a format string
func Rangef(component, method, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	msg := fmt.Sprintf("%s.%s: %s", component, method, err.Error())
	return newClassified(KindRange, err, component, method, msg)
}

// NotImplementedf creates a not-implemented error from a format string
func NotImplementedf(component, method, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	msg := fmt.Sprintf("%s.%s: %s", component, method, err.Error())
	return newClassified(KindNotImplemented, err, component, method, msg)
}

// Internalf creates an internal invariant-violation error from a format string
func Internalf(component, method, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	msg := fmt.Sprintf("%s.%s: %s", component, method, err.Error())
	return newClassified(KindInternal, err, component, method, msg)
}

// Is reports whether any error in err's tree matches target.
// Re-exported so callers do not need to import both error packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// Re-exported so callers do not need to import both error packages.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
// Re-exported so callers do not need to import both error packages.
func New(text string) error {
	return errors.New(text)
}
