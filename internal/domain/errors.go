package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of them.
var (
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrState            = errors.New("invalid state")
)

// Error carries a human readable message on top of its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, format string, args ...any) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func Validationf(format string, args ...any) error {
	return NewError(ErrValidation, format, args...)
}

func Conflictf(format string, args ...any) error {
	return NewError(ErrConflict, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return NewError(ErrNotFound, format, args...)
}

func Statef(format string, args ...any) error {
	return NewError(ErrState, format, args...)
}

// KindOf returns the stable kind name of err, or "INTERNAL" when err does not wrap a known kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED"
	case errors.Is(err, ErrState):
		return "STATE_ERROR"
	default:
		return "INTERNAL"
	}
}
