package testutils

import (
	"bytes"

	"github.com/pkg/errors"
)

// FaultyBuffer is an [io.Reader] and [io.Writer] backed by a [bytes.Buffer] that fails with a designated error
// after faultThreshold many bytes have been read resp. written (separate counters).
//
// This is used to test error handling of (de)serialization. Use [NewFaultyBuffer] to create one;
// the zero value has no designated error and panics on use.
type FaultyBuffer struct {
	designatedErr  error
	faultThreshold int
	buf            bytes.Buffer
	alreadyRead    int
	alreadyWritten int
	failed         bool
}

// NewFaultyBuffer creates a FaultyBuffer with the given threshold and non-nil designated error.
//
// Note that content for reading must be provided by [FaultyBuffer.SetContent], since writing it would hit the threshold.
func NewFaultyBuffer(faultThreshold int, designatedErr error) *FaultyBuffer {
	if designatedErr == nil {
		panic("pseudomersenne / testutils: NewFaultyBuffer called with nil designated error")
	}
	return &FaultyBuffer{designatedErr: designatedErr, faultThreshold: faultThreshold}
}

func (fb *FaultyBuffer) check() {
	if fb.designatedErr == nil {
		panic("pseudomersenne / testutils: FaultyBuffer without designated error")
	}
}

// transfer runs op on at most the number of bytes that remain until the threshold and returns the designated error if it was cut short.
func (fb *FaultyBuffer) transfer(p []byte, done *int, op func([]byte) (int, error)) (n int, err error) {
	fb.check()
	if len(p) == 0 {
		return 0, nil
	}
	if fb.failed && *done >= fb.faultThreshold {
		return 0, errors.Wrap(fb.designatedErr, "repeated call to already faulty buffer")
	}
	allowed := len(p)
	fault := false
	if *done+allowed > fb.faultThreshold {
		allowed = fb.faultThreshold - *done
		fault = true
	}
	n, err = op(p[:allowed])
	*done += n
	if err != nil {
		return
	}
	if fault {
		fb.failed = true
		err = fb.designatedErr
	}
	return
}

// Read satisfies [io.Reader].
func (fb *FaultyBuffer) Read(p []byte) (int, error) {
	return fb.transfer(p, &fb.alreadyRead, fb.buf.Read)
}

// Write satisfies [io.Writer].
func (fb *FaultyBuffer) Write(p []byte) (int, error) {
	return fb.transfer(p, &fb.alreadyWritten, fb.buf.Write)
}

// Reset clears the buffer and both counters. The designated error is kept.
func (fb *FaultyBuffer) Reset() {
	fb.check()
	fb.buf.Reset()
	fb.alreadyRead = 0
	fb.alreadyWritten = 0
	fb.failed = false
}

// SetContent resets the buffer and sets its content for reading. content may be longer than the fault threshold.
func (fb *FaultyBuffer) SetContent(content []byte) {
	fb.Reset()
	fb.buf.Write(content)
}

// Bytes returns the unread portion of the buffer, i.e. what was written so far.
func (fb *FaultyBuffer) Bytes() []byte {
	fb.check()
	return fb.buf.Bytes()
}
