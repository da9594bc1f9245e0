package fieldElements

import (
	"go.uber.org/zap"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/exponents"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

var logger = zap.NewNop()

// SetLogger sets the logger used when constructing fields. This also sets the logger of the exponents package.
// Passing nil disables logging. Arithmetic on field elements never logs.
//
// SetLogger must not be called concurrently with NewField or the first use of a builtin field.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Named("fieldElements")
	exponents.SetLogger(l)
}
