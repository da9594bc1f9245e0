package pmErrors

import (
	"github.com/pkg/errors"
)

// This package defines errors that carry an additional data payload in a way that is compatible with error wrapping.
//
// Errors are treated as immutable objects: adding data to an error always creates a new error that wraps the old one.
// Our error wrappers are always returned as interfaces, never as a concrete (pointer) type, so a nil error is never
// mistaken for a non-nil interface holding a nil pointer.

const ErrorPrefix = "pseudomersenne / errors: "

// ErrorWithData is an error that additionally carries a payload of type T.
//
// Note that the payload is obtained by GetData. For errors that wrap an ErrorWithData[T], use the free function [GetData],
// which traverses the error chain.
type ErrorWithData[T any] interface {
	error
	Unwrap() error // may return nil
	GetData() T
}

type errorWithData[T any] struct {
	inner   error
	message string
	data    T
}

func (e *errorWithData[T]) Error() string {
	if e.message != "" || e.inner == nil {
		return e.message
	}
	return e.inner.Error()
}

func (e *errorWithData[T]) Unwrap() error {
	return e.inner
}

func (e *errorWithData[T]) GetData() T {
	return e.data
}

// NewErrorWithData creates a new error wrapping inner (which may be nil) with the given message and payload.
// If message is empty, the message of inner is used.
func NewErrorWithData[T any](inner error, message string, data T) ErrorWithData[T] {
	if inner == nil && message == "" {
		panic(ErrorPrefix + "called NewErrorWithData with neither an error to wrap nor an error message")
	}
	return &errorWithData[T]{inner: inner, message: message, data: data}
}

// AddDataToError wraps err into an error with the same message that additionally carries data.
//
// AddDataToError(nil, ...) returns nil.
func AddDataToError[T any](err error, data T) ErrorWithData[T] {
	if err == nil {
		return nil
	}
	return &errorWithData[T]{inner: err, data: data}
}

// GetData obtains the payload of type T from the first error in err's chain that carries one.
// ok is false if no error in the chain carries a payload of type T.
func GetData[T any](err error) (data T, ok bool) {
	var target ErrorWithData[T]
	if errors.As(err, &target) {
		return target.GetData(), true
	}
	return
}

// HasData reports whether some error in err's chain carries a payload of type T.
func HasData[T any](err error) bool {
	_, ok := GetData[T](err)
	return ok
}
