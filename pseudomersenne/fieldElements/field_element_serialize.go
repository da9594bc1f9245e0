package fieldElements

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/GottfriedHerold/PseudoMersenne/internal/utils"
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/pmErrors"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains the code used for serializing field elements.
//
// The serialized form of a field element is its canonical representative in [0, p), written as PackedBytes() = ceil(n/8)
// bytes in little-endian order. Bits of the last byte above bit position n are always zero.

// packDigits writes normalized digits d into buf, which has length packed bytes.
// Digits straddling byte boundaries are split at the bit level.
func (l *digitLayout) packDigits(buf []byte, d *digitVector) {
	w := int(l.w)
	for j := range buf {
		pos := 8 * j
		i, offset := pos/w, pos%w
		b := d[i] >> uint(offset)
		if offset+8 > w && i+1 < l.k {
			b |= d[i+1] << uint(w-offset)
		}
		buf[j] = byte(b)
	}
}

// unpackDigits reads digits from buf. The top digit is masked to hw bits; the caller must check for excess bits separately.
func (l *digitLayout) unpackDigits(d *digitVector, buf []byte) {
	w := int(l.w)
	*d = digitVector{}
	for i := 0; i < l.k; i++ {
		width := w
		if i == l.k-1 {
			width = int(l.hw)
		}
		start := i * w
		var v uint64
		for b := start / 8; b <= (start+width-1)/8 && b < len(buf); b++ {
			shift := 8*b - start
			if shift < 0 {
				v |= uint64(buf[b]) >> uint(-shift)
			} else {
				v |= uint64(buf[b]) << uint(shift)
			}
		}
		d[i] = v & (1<<uint(width) - 1)
	}
}

// hasExcessBits reports whether buf has bits set at positions >= n.
func (f *Field) hasExcessBits(buf []byte) bool {
	n := f.params.NumBits
	used := n % 8
	if used == 0 {
		return false
	}
	return buf[len(buf)-1]>>used != 0
}

// NormalizedPack writes z into buf, which must have length exactly z.Field().PackedBytes().
//
// NormalizedPack assumes that z is normalized (see [Element.Normalize]); otherwise the output is meaningless.
// It returns an error wrapping ErrInvalidBufferLength if buf has the wrong length.
func (z *Element) NormalizedPack(buf []byte) error {
	f := z.mustField()
	if len(buf) != f.PackedBytes() {
		return errors.Wrapf(ErrInvalidBufferLength, "got buffer of length %d, need %d for field %v", len(buf), f.PackedBytes(), f.Name())
	}
	f.layout.packDigits(buf, &z.digits)
	return nil
}

// Pack writes z into buf, which must have length exactly z.Field().PackedBytes(). z itself is not modified.
//
// It returns an error wrapping ErrInvalidBufferLength if buf has the wrong length.
func (z *Element) Pack(buf []byte) error {
	normalized := *z
	normalized.digits = z.normalized()
	return normalized.NormalizedPack(buf)
}

// Bytes returns the packed form of z as a newly allocated slice.
func (z *Element) Bytes() []byte {
	buf := make([]byte, z.mustField().PackedBytes())
	if err := z.Pack(buf); err != nil {
		panic(ErrorPrefix + "internal error: packing into buffer of correct length failed: " + err.Error())
	}
	return buf
}

// Unpack sets z from the packed form in buf. z must already belong to a field, which determines the expected length.
//
// Possible errors:
//   - ErrInvalidBufferLength if len(buf) != PackedBytes(); z is untouched.
//   - ErrExcessBits if bits above the bit length of p are set; z is untouched.
//   - ErrNonNormalizedDeserialization if the number is in [p, 2^n); z is set to the number reduced modulo p.
func (z *Element) Unpack(buf []byte) error {
	f := z.mustField()
	if len(buf) != f.PackedBytes() {
		return errors.Wrapf(ErrInvalidBufferLength, "got buffer of length %d, need %d for field %v", len(buf), f.PackedBytes(), f.Name())
	}
	if f.hasExcessBits(buf) {
		return errors.Wrapf(ErrExcessBits, "field %v has %d bits", f.Name(), f.NumBits())
	}
	var read, reduced digitVector
	f.layout.unpackDigits(&read, buf)
	f.layout.normalizeDigits(&reduced, &read)
	z.digits = reduced
	if f.layout.equalNormalized(&read, &reduced) != 1 {
		return errors.WithStack(ErrNonNormalizedDeserialization)
	}
	return nil
}

// FromBytes returns the field element with packed form buf. Errors are as for [Element.Unpack].
// For ErrNonNormalizedDeserialization, the returned element is the reduced value.
func (f *Field) FromBytes(buf []byte) (Element, error) {
	z := f.newElement()
	err := z.Unpack(buf)
	return z, err
}

// Serialize writes the packed form of z to output, i.e. exactly PackedBytes() bytes.
//
// On success, err is nil and bytesWritten == PackedBytes(). On io errors, the returned error wraps the error of output
// and carries a [pmErrors.WriteErrorData] whose BytesWritten equals the returned bytesWritten.
func (z *Element) Serialize(output io.Writer) (bytesWritten int, err pmErrors.SerializationError) {
	buf := z.Bytes()
	bytesWritten, errPlain := output.Write(buf)
	if errPlain == nil && bytesWritten != len(buf) {
		errPlain = io.ErrShortWrite
	}
	err = pmErrors.AddDataToError(errPlain, pmErrors.NewIntermediateWriteErrorData(bytesWritten, len(buf)))
	return
}

// Deserialize reads exactly PackedBytes() bytes from input and sets z from them. z must already belong to a field.
//
// Errors are as for [Element.Unpack], plus io errors from input; in particular, io.ErrUnexpectedEOF if the input ended after a partial read
// and io.EOF if input was empty. All returned errors carry a [pmErrors.ReadErrorData].
// On any error other than ErrNonNormalizedDeserialization, z is untouched.
func (z *Element) Deserialize(input io.Reader) (bytesRead int, err pmErrors.DeserializationError) {
	f := z.mustField()
	buf := make([]byte, f.PackedBytes())
	bytesRead, errPlain := io.ReadFull(input, buf)
	if errPlain != nil {
		err = pmErrors.AddDataToError(errPlain, pmErrors.NewIntermediateReadErrorData(bytesRead, len(buf), buf[:bytesRead]))
		return
	}
	if errPlain = z.Unpack(buf); errPlain != nil {
		err = pmErrors.AddDataToError(errPlain, pmErrors.ReadErrorData{BytesRead: bytesRead, ActuallyRead: buf})
	}
	return
}

// FromReader reads a field element from input. Errors are as for [Element.Deserialize].
func (f *Field) FromReader(input io.Reader) (Element, error) {
	z := f.newElement()
	if _, err := z.Deserialize(input); err != nil {
		return z, err
	}
	return z, nil
}

// SerializeSlice writes all elements of xs to output, one after another.
// On error, bytesWritten is the total number of bytes written, including those of earlier elements.
func SerializeSlice(output io.Writer, xs []Element) (bytesWritten int, err pmErrors.SerializationError) {
	for i := range xs {
		var n int
		n, err = xs[i].Serialize(output)
		bytesWritten += n
		if err != nil {
			data, _ := pmErrors.GetData[pmErrors.WriteErrorData](err)
			data.BytesWritten = bytesWritten
			data.PartialWrite = bytesWritten != 0
			err = pmErrors.NewErrorWithData(err, "", data)
			return
		}
	}
	return
}

// DeserializeSlice reads len(dst) elements from input into dst. Every element of dst must already belong to a field.
//
// An io.EOF after the first element is reported as io.ErrUnexpectedEOF, since the input ended in the middle of the slice.
// Elements after the failing one are untouched.
func DeserializeSlice(input io.Reader, dst []Element) (bytesRead int, err pmErrors.DeserializationError) {
	for i := range dst {
		var n int
		n, err = dst[i].Deserialize(input)
		bytesRead += n
		if err != nil {
			data, _ := pmErrors.GetData[pmErrors.ReadErrorData](err)
			data.BytesRead = bytesRead
			data.PartialRead = bytesRead != 0
			var errPlain error = err
			if i > 0 {
				errPlain = utils.UnexpectedEOF(errPlain, fmt.Sprintf("input ended at element %d of %d", i, len(dst)))
			}
			err = pmErrors.NewErrorWithData(errPlain, "", data)
			return
		}
	}
	return
}
