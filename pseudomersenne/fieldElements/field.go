package fieldElements

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/exponents"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// Field describes a pseudo-Mersenne prime field GF(p), p = 2^n - c, together with all precomputed data that
// arithmetic on its elements needs: the digit layout, compiled exponentiation chains and square root correction coefficients.
//
// Fields are immutable after construction and may be shared freely between goroutines.
// Elements of different *Field values must not be mixed, even if the parameters agree.
type Field struct {
	params    common.FieldParameters
	layout    digitLayout
	modulus   *big.Int
	exponents *exponents.FieldExponents

	one  digitVector
	mone digitVector

	// for p == 5 mod 8: sqrtCoeffM1 = 2^((p-1)/4) is a square root of -1 and invSqrtCoeffM1 = -sqrtCoeffM1. Unused otherwise.
	sqrtCoeffM1    digitVector
	invSqrtCoeffM1 digitVector
}

// NewField creates a new field from the given parameters. The parameters are validated first.
//
// Returned errors wrap common.ErrInvalidFieldParameters for invalid parameters.
func NewField(params common.FieldParameters) (*Field, error) {
	if err := params.Validate(); err != nil {
		logger.Warn("rejected field parameters", zap.String("field", params.Name), zap.Error(err))
		return nil, err
	}
	exps, err := exponents.ForField(&params)
	if err != nil {
		return nil, errors.WithMessage(err, ErrorPrefix+"could not compile exponentiation chains")
	}
	f := &Field{params: params, layout: newDigitLayout(&params), modulus: params.Modulus(), exponents: exps}
	f.one[0] = 1
	f.mone = f.layout.fromBigInt(new(big.Int).Sub(f.modulus, big.NewInt(1)))

	if !params.Is3Mod4() {
		// 2 is a quadratic non-residue for p == 5 mod 8, so 2^((p-1)/4) has order 4.
		var two digitVector
		two[0] = 2
		var s Scratchpad
		s.exp(&f.layout, &f.sqrtCoeffM1, &two, exps.Quartic)
		f.layout.normalizeDigits(&f.sqrtCoeffM1, &f.sqrtCoeffM1)
		f.layout.negDigits(&f.invSqrtCoeffM1, &f.sqrtCoeffM1)
		f.layout.normalizeDigits(&f.invSqrtCoeffM1, &f.invSqrtCoeffM1)

		var square digitVector
		f.layout.squareDigits(&square, &f.sqrtCoeffM1)
		f.layout.normalizeDigits(&square, &square)
		if f.layout.equalNormalized(&square, &f.mone) != 1 {
			panic(ErrorPrefix + "internal error: square root of -1 derived for field " + params.Name + " does not square to -1")
		}
	}

	logger.Debug("constructed field",
		zap.String("field", params.Name),
		zap.Uint("bits", params.NumBits),
		zap.Uint64("c", params.C),
		zap.Int("digits", params.Digits),
		zap.Uint("digitBits", params.DigitBits),
		zap.Uint("highDigitBits", params.HighDigitBits()),
		zap.Int("inverseSquarings", exps.Inverse.Squarings()),
		zap.Int("inverseMultiplications", exps.Inverse.Multiplications()),
	)
	return f, nil
}

// mustNewField is used for the builtin fields, whose parameters are known to be valid.
func mustNewField(params common.FieldParameters) *Field {
	f, err := NewField(params)
	if err != nil {
		panic(fmt.Sprintf(ErrorPrefix+"builtin field %v could not be constructed: %v", params.Name, err))
	}
	return f
}

// The builtin fields are constructed on first use.
var (
	builtinE130       = sync.OnceValue(func() *Field { return mustNewField(common.E130Parameters) })
	builtinM221       = sync.OnceValue(func() *Field { return mustNewField(common.M221Parameters) })
	builtinCurve25519 = sync.OnceValue(func() *Field { return mustNewField(common.Curve25519Parameters) })
	builtinCurve41417 = sync.OnceValue(func() *Field { return mustNewField(common.Curve41417Parameters) })
	builtinM511       = sync.OnceValue(func() *Field { return mustNewField(common.M511Parameters) })
	builtinE521       = sync.OnceValue(func() *Field { return mustNewField(common.E521Parameters) })
)

// E130M5 returns the field modulo 2^130 - 5 (used by Poly1305).
func E130M5() *Field { return builtinE130() }

// M221 returns the field modulo 2^221 - 3.
func M221() *Field { return builtinM221() }

// Curve25519 returns the field modulo 2^255 - 19.
func Curve25519() *Field { return builtinCurve25519() }

// Curve41417 returns the field modulo 2^414 - 17.
func Curve41417() *Field { return builtinCurve41417() }

// M511 returns the field modulo 2^511 - 187.
func M511() *Field { return builtinM511() }

// E521 returns the field modulo 2^521 - 1.
func E521() *Field { return builtinE521() }

var builtinsByName = map[string]func() *Field{
	common.E130Parameters.Name:       E130M5,
	common.M221Parameters.Name:       M221,
	common.Curve25519Parameters.Name: Curve25519,
	common.Curve41417Parameters.Name: Curve41417,
	common.M511Parameters.Name:       M511,
	common.E521Parameters.Name:       E521,
}

// BuiltinNames returns the names of all builtin fields, ordered by size.
func BuiltinNames() []string {
	params := common.BuiltinFieldParameters()
	ret := make([]string, len(params))
	for i := range params {
		ret[i] = params[i].Name
	}
	return ret
}

// Builtin returns the builtin field with the given name. The returned error wraps ErrUnknownField if there is none.
func Builtin(name string) (*Field, error) {
	get, ok := builtinsByName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownField, "no builtin field named %q; known fields are %v", name, BuiltinNames())
	}
	return get(), nil
}

// BuiltinFields returns all builtin fields, ordered by size.
func BuiltinFields() []*Field {
	names := BuiltinNames()
	ret := make([]*Field, len(names))
	for i, name := range names {
		ret[i] = builtinsByName[name]()
	}
	return ret
}

// Name returns the name of the field.
func (f *Field) Name() string { return f.params.Name }

// Parameters returns (a copy of) the parameters the field was constructed with.
func (f *Field) Parameters() common.FieldParameters { return f.params }

// Modulus returns a copy of the prime p.
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.modulus) }

// NumBits returns n, the bit length of p.
func (f *Field) NumBits() int { return int(f.params.NumBits) }

// PackedBytes returns the length of serialized field elements.
func (f *Field) PackedBytes() int { return f.params.PackedBytes() }

// Is3Mod4 reports whether p == 3 mod 4. Otherwise p == 5 mod 8.
func (f *Field) Is3Mod4() bool { return f.exponents.Is3Mod4 }

// Exponents returns the compiled exponentiation chains of the field.
func (f *Field) Exponents() *exponents.FieldExponents { return f.exponents }

// String returns a short description of the field.
func (f *Field) String() string { return f.params.String() }
