package common

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/GottfriedHerold/PseudoMersenne/internal/utils"
)

// This file contains the description of pseudo-Mersenne prime fields p = 2^NumBits - C
// in terms of the redundant digit representation used by the fieldElements package.
//
// A field element is stored as Digits many uint64 words. The words 0..Digits-2 hold DigitBits many value bits each,
// the top word holds HighDigitBits = NumBits - (Digits-1)*DigitBits value bits. The remaining high bits of each word
// are reserved for carries that have not been propagated yet.
// For multiplication, each digit is split into two half-digits of MulDigitBits = DigitBits/2 bits, chosen such that
// every column sum of half-digit products fits into a uint64.

const ErrorPrefix = "pseudomersenne / field parameters: "

// MaxDigits is the maximal number of uint64 words of a field element supported by the fieldElements package.
// All field elements use a fixed-size array of this length internally.
const MaxDigits = 12

// Limits on the window size used for compiling exponentiation chains.
const (
	MaxChainWindow     = 5
	DefaultChainWindow = 4
)

// Limits on DigitBits. The lower bound ensures that the product of a field element with a 32-bit integer
// overflows into at most one additional digit.
const (
	minDigitBits = 40
	maxDigitBits = 60
)

// ErrInvalidFieldParameters is wrapped by all errors returned by [FieldParameters.Validate].
var ErrInvalidFieldParameters = errors.New(ErrorPrefix + "invalid field parameters")

// FieldParameters describes a pseudo-Mersenne prime field 2^NumBits - C together with its digit layout.
//
// The struct tags allow reading field descriptions from configuration files.
type FieldParameters struct {
	Name         string `yaml:"name" mapstructure:"name"`
	NumBits      uint   `yaml:"bits" mapstructure:"bits"`
	C            uint64 `yaml:"c" mapstructure:"c"`
	Digits       int    `yaml:"digits" mapstructure:"digits"`
	DigitBits    uint   `yaml:"digitBits" mapstructure:"digitBits"`
	MulDigitBits uint   `yaml:"mulDigitBits" mapstructure:"mulDigitBits"`
	ChainWindow  uint   `yaml:"chainWindow,omitempty" mapstructure:"chainWindow"` // window size for exponentiation chains. 0 means DefaultChainWindow
}

// The parameters of the fields that come with the library.
var (
	E130Parameters = FieldParameters{Name: "E-130", NumBits: 130, C: 5, Digits: 3, DigitBits: 58, MulDigitBits: 29}
	M221Parameters = FieldParameters{Name: "M-221", NumBits: 221, C: 3, Digits: 4, DigitBits: 58, MulDigitBits: 29}
	// Curve25519Parameters describes 2^255-19
	Curve25519Parameters = FieldParameters{Name: "Curve25519", NumBits: 255, C: 19, Digits: 5, DigitBits: 56, MulDigitBits: 28}
	Curve41417Parameters = FieldParameters{Name: "Curve41417", NumBits: 414, C: 17, Digits: 8, DigitBits: 56, MulDigitBits: 28}
	M511Parameters       = FieldParameters{Name: "M-511", NumBits: 511, C: 187, Digits: 10, DigitBits: 54, MulDigitBits: 27}
	E521Parameters       = FieldParameters{Name: "E-521", NumBits: 521, C: 1, Digits: 10, DigitBits: 54, MulDigitBits: 27}
)

// BuiltinFieldParameters returns (a copy of) the list of all builtin field descriptions, ordered by size.
func BuiltinFieldParameters() []FieldParameters {
	return []FieldParameters{E130Parameters, M221Parameters, Curve25519Parameters, Curve41417Parameters, M511Parameters, E521Parameters}
}

// HighDigitBits returns the number of value bits in the most significant digit.
//
// The result is meaningless if p does not satisfy NumBits > (Digits-1) * DigitBits.
func (p *FieldParameters) HighDigitBits() uint {
	return p.NumBits - uint(p.Digits-1)*p.DigitBits
}

// PackedBytes returns the length of the serialization of a field element, i.e. ceil(NumBits/8).
func (p *FieldParameters) PackedBytes() int {
	return utils.CeilDiv(int(p.NumBits), 8)
}

// Window returns the window size that is used to compile exponentiation chains.
func (p *FieldParameters) Window() uint {
	if p.ChainWindow == 0 {
		return DefaultChainWindow
	}
	return p.ChainWindow
}

// Modulus returns the prime 2^NumBits - C as a newly allocated *big.Int.
func (p *FieldParameters) Modulus() *big.Int {
	return utils.PseudoMersenne(p.NumBits, p.C)
}

// Is3Mod4 reports whether the modulus is 3 mod 4. Otherwise, for valid parameters, it is 5 mod 8.
func (p *FieldParameters) Is3Mod4() bool {
	// 2^NumBits == 0 mod 8 for NumBits >= 3.
	return (-p.C)&3 == 3
}

// String gives a short human-readable description.
func (p FieldParameters) String() string {
	return fmt.Sprintf("%s (2^%d-%d, %d digits of %d bits, top digit %d bits)", p.Name, p.NumBits, p.C, p.Digits, p.DigitBits, p.HighDigitBits())
}

// Validate checks that the parameters describe a supported field.
//
// Apart from the obvious consistency checks, this ensures that none of the intermediate values of the
// digit arithmetic in fieldElements can overflow a uint64 and that the modulus is a prime p with
// p == 3 mod 4 or p == 5 mod 8 (these are the cases where we have closed formulas for square roots).
// The returned error wraps [ErrInvalidFieldParameters].
func (p *FieldParameters) Validate() error {
	if p.Name == "" {
		return errors.Wrap(ErrInvalidFieldParameters, "field has no name")
	}
	if p.Digits < 2 || p.Digits > MaxDigits {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: number of digits %v is not in [2, %v]", p.Name, p.Digits, MaxDigits)
	}
	if p.DigitBits < minDigitBits || p.DigitBits > maxDigitBits {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: digit width %v is not in [%v, %v]", p.Name, p.DigitBits, minDigitBits, maxDigitBits)
	}
	if p.MulDigitBits*2 != p.DigitBits {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: multiplication digit width %v must be half of the digit width %v", p.Name, p.MulDigitBits, p.DigitBits)
	}
	if p.NumBits <= uint(p.Digits-1)*p.DigitBits {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: %v bits fit into fewer than %v digits", p.Name, p.NumBits, p.Digits)
	}
	if hw := p.HighDigitBits(); hw+2 > p.DigitBits {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: top digit has %v bits, which leaves no room for carries relative to digit width %v", p.Name, hw, p.DigitBits)
	}
	if p.C == 0 || p.C >= 1<<16 {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: c = %v is not in [1, 2^16)", p.Name, p.C)
	}
	// l + c * h in the reduction step must stay below 2^62.
	if uint(bits.Len64(p.C+1))+p.DigitBits > 62 {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: c = %v is too large for digit width %v", p.Name, p.C, p.DigitBits)
	}
	// column sums of 2*Digits half-digit products must fit into a uint64 including the incoming carry.
	if uint(bits.Len(uint(2*p.Digits)))+2*p.MulDigitBits > 63 {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: %v digits of width %v overflow the multiplication columns", p.Name, p.Digits, p.DigitBits)
	}
	if p.ChainWindow > MaxChainWindow {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: chain window %v exceeds %v", p.Name, p.ChainWindow, MaxChainWindow)
	}
	if !p.Is3Mod4() && (-p.C)&7 != 5 {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: 2^%v-%v is 1 mod 8, which is not supported", p.Name, p.NumBits, p.C)
	}
	if !p.Modulus().ProbablyPrime(20) {
		return errors.Wrapf(ErrInvalidFieldParameters, "field %v: 2^%v-%v is not prime", p.Name, p.NumBits, p.C)
	}
	return nil
}
