package utils

import (
	"io"

	"github.com/pkg/errors"
)

// UnexpectedEOF maps an error wrapping io.EOF to one wrapping io.ErrUnexpectedEOF and returns all other errors unchanged.
//
// Readers of fixed-size data return io.EOF only if nothing at all could be read. Composite decoders use this
// once the first part has been read successfully. The returned error does not wrap io.EOF any more.
func UnexpectedEOF(err error, context string) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	if context == "" {
		return io.ErrUnexpectedEOF
	}
	return errors.WithMessage(io.ErrUnexpectedEOF, context)
}
