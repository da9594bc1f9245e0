package fieldElements

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains conversions between field elements and *big.Int, machine integers and strings.
// Conversions happen at the API boundary and are not constant-time.

// ErrCannotRepresentFieldElement is wrapped by the errors of ToUint64 and ToInt64.
var ErrCannotRepresentFieldElement = errors.New(ErrorPrefix + "field element not representable by the given data type")

// SetBigInt sets z = x mod p. x may be negative or larger than p. x itself is not modified.
func (z *Element) SetBigInt(x *big.Int) {
	f := z.mustField()
	reduced := new(big.Int).Mod(x, f.modulus)
	z.digits = f.layout.fromBigInt(reduced)
}

// ToBigInt returns the value of z as a newly allocated *big.Int in [0, p).
func (z *Element) ToBigInt() *big.Int {
	d := z.normalized()
	return z.field.layout.toBigInt(&d)
}

// FromBigInt returns the field element x mod p.
func (f *Field) FromBigInt(x *big.Int) Element {
	z := f.newElement()
	z.SetBigInt(x)
	return z
}

// SetString sets z to the number described by s, modulo p.
//
// s is parsed like big.Int's SetString with base 0: decimal by default, hex with 0x prefix (as well as 0b and 0o prefixes);
// a leading minus sign is allowed. On failure, z is untouched and the returned error wraps ErrInvalidString.
func (z *Element) SetString(s string) error {
	z.mustField()
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return errors.Wrapf(ErrInvalidString, "cannot parse %q", s)
	}
	z.SetBigInt(x)
	return nil
}

// FromString returns the field element described by s. See [Element.SetString].
func (f *Field) FromString(s string) (Element, error) {
	z := f.newElement()
	err := z.SetString(s)
	return z, err
}

// InitFieldElementFromString returns the field element described by s and panics on failure.
//
// This is meant to initialize package-level variables from constant literals.
func (f *Field) InitFieldElementFromString(s string) Element {
	z, err := f.FromString(s)
	if err != nil {
		panic(err)
	}
	return z
}

// ToUint64 returns z as a uint64, viewed as an integer in [0, p).
// If this is not possible, it returns an error wrapping ErrCannotRepresentFieldElement.
func (z *Element) ToUint64() (uint64, error) {
	x := z.ToBigInt()
	if !x.IsUint64() {
		return 0, errors.Wrapf(ErrCannotRepresentFieldElement, "%v does not fit into a uint64", z)
	}
	return x.Uint64(), nil
}

// ToInt64 returns z as an int64, viewing z as an integer in (-p/2, p/2) (see [Element.Sign]).
// If this is not possible, it returns an error wrapping ErrCannotRepresentFieldElement.
func (z *Element) ToInt64() (int64, error) {
	x := z.ToBigInt()
	if z.Sign() != 0 {
		x.Sub(x, z.field.modulus)
	}
	if !x.IsInt64() {
		return 0, errors.Wrapf(ErrCannotRepresentFieldElement, "%v does not fit into an int64", z)
	}
	return x.Int64(), nil
}

// String returns the canonical representative of z as a lowercase hex string, most significant byte first,
// with two hex digits per byte of the packed form.
func (z Element) String() string {
	if z.field == nil {
		return "<uninitialized field element>"
	}
	buf := z.Bytes()
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return hex.EncodeToString(buf)
}

// Format implements [fmt.Formatter]. The verbs %v, %s and %x give the hex string of [Element.String] (with a 0x prefix for %#x),
// %X gives uppercase hex and %d gives decimal.
func (z Element) Format(s fmt.State, ch rune) {
	switch ch {
	case 'v', 's':
		io.WriteString(s, z.String())
	case 'x':
		if s.Flag('#') {
			io.WriteString(s, "0x")
		}
		io.WriteString(s, z.String())
	case 'X':
		if s.Flag('#') {
			io.WriteString(s, "0X")
		}
		io.WriteString(s, strings.ToUpper(z.String()))
	case 'd':
		if z.field == nil {
			io.WriteString(s, z.String())
			return
		}
		z.ToBigInt().Format(s, 'd')
	default:
		fmt.Fprintf(s, "%%!%c(fieldElements.Element=%s)", ch, z.String())
	}
}

// RandomUnsafe returns a uniformly random field element using rnd.
//
// This is NOT cryptographically secure and only meant for tests and benchmarks.
func (f *Field) RandomUnsafe(rnd *rand.Rand) Element {
	z := f.newElement()
	z.digits = f.layout.fromBigInt(new(big.Int).Rand(rnd, f.modulus))
	return z
}
