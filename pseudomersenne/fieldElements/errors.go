package fieldElements

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/pmErrors"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file collects all errors that can be returned by functions in this package.
//
// IMPORTANT: We often return errors wrapping some error given here. Never compare errors for equality. Use [errors.Is]

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "pseudomersenne / field elements: "

// ErrUnknownField is wrapped by the error returned by [Builtin] for unknown names.
var ErrUnknownField = errors.New(ErrorPrefix + "unknown field")

// ErrDivisionByZero is wrapped by errors from batch inversion.
var ErrDivisionByZero = errors.New(ErrorPrefix + "division by zero")

// These are the errors that can occur during deserialization and conversion.
var (
	ErrInvalidBufferLength          = errors.New(ErrorPrefix + "buffer length does not match the packed size of field elements")
	ErrExcessBits                   = errors.New(ErrorPrefix + "bits above the bit length of the modulus are set")
	ErrNonNormalizedDeserialization = errors.New(ErrorPrefix + "during deserialization, the read number was not the minimal representative modulo p")
	ErrInvalidString                = errors.New(ErrorPrefix + "string is not a valid number")
)

// MultiInversionErrorData is the struct type that holds the additional information
// if a multi-inversion of field elements goes wrong due to division by zero.
type MultiInversionErrorData struct {
	ZeroIndices         []int
	NumberOfZeroIndices int
}

// MultiInversionError is an error carrying MultiInversionErrorData. It is used to indicate errors in multi-inversion algorithms.
type MultiInversionError = pmErrors.ErrorWithData[MultiInversionErrorData]

// generateMultiDivisionByZeroError creates an error indicating which of the provided field elements were zero.
// It returns nil if none of them is zero.
func generateMultiDivisionByZeroError(fieldElements []*Element, prefixForError string) MultiInversionError {
	var errorData MultiInversionErrorData
	for i, fe := range fieldElements {
		if fe.IsZero() {
			errorData.ZeroIndices = append(errorData.ZeroIndices, i)
		}
	}
	errorData.NumberOfZeroIndices = len(errorData.ZeroIndices)
	if errorData.NumberOfZeroIndices == 0 {
		return nil
	}

	var errorString string
	switch {
	case errorData.NumberOfZeroIndices == 1:
		errorString = fmt.Sprintf("%v\nThe %v'th argument (counting from 0) was the only one that was zero.", prefixForError, errorData.ZeroIndices[0])
	case errorData.NumberOfZeroIndices < 10:
		errorString = fmt.Sprintf("%v\nThere were %v many arguments that were zero: Those were given at indices (starting from 0) %v.", prefixForError, errorData.NumberOfZeroIndices, errorData.ZeroIndices)
	default:
		errorString = fmt.Sprintf("%v\nThere were %v many arguments that were zero. The first ten were at indices (starting from 0) %v", prefixForError, errorData.NumberOfZeroIndices, errorData.ZeroIndices[0:10])
	}
	return pmErrors.NewErrorWithData(ErrDivisionByZero, errorString, errorData)
}
