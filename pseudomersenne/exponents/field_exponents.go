package exponents

import (
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
)

// FieldExponents holds the compiled chains for all derived operations of a field 2^n - c.
//
// For p == 3 mod 4:
//
//	SqrtHelper = (p-3)/4; then Sqrt(a) = a * a^SqrtHelper, InvSqrt(a) = a^SqrtHelper
//
// For p == 5 mod 8:
//
//	SqrtHelper = (p-5)/8; then r = a * a^SqrtHelper is a square root of a up to a factor that is a 4th root of unity.
//	InvSqrt = (7p-11)/8; then a^InvSqrt is an inverse square root up to a 4th root of unity.
//	Quartic = (p-1)/4; a^Quartic is the quartic residue symbol.
//
// Quartic and InvSqrt are nil for p == 3 mod 4.
type FieldExponents struct {
	FieldName  string
	Is3Mod4    bool
	Inverse    *Chain // p - 2
	Legendre   *Chain // (p - 1) / 2
	SqrtHelper *Chain
	Quartic    *Chain
	InvSqrt    *Chain
}

// Exponent values as functions of the modulus p.

// InverseExponent returns p - 2.
func InverseExponent(p *big.Int) *big.Int {
	return new(big.Int).Sub(p, big.NewInt(2))
}

// LegendreExponent returns (p - 1) / 2.
func LegendreExponent(p *big.Int) *big.Int {
	ret := new(big.Int).Sub(p, big.NewInt(1))
	return ret.Rsh(ret, 1)
}

// QuarticExponent returns (p - 1) / 4.
func QuarticExponent(p *big.Int) *big.Int {
	ret := new(big.Int).Sub(p, big.NewInt(1))
	return ret.Rsh(ret, 2)
}

// SqrtHelperExponent returns (p - 3) / 4 for p == 3 mod 4 and (p - 5) / 8 otherwise.
func SqrtHelperExponent(p *big.Int) *big.Int {
	ret := new(big.Int)
	if p.Bit(1) == 1 {
		ret.Sub(p, big.NewInt(3))
		return ret.Rsh(ret, 2)
	}
	ret.Sub(p, big.NewInt(5))
	return ret.Rsh(ret, 3)
}

// InvSqrtExponent returns (7p - 11) / 8. This is only meaningful for p == 5 mod 8.
func InvSqrtExponent(p *big.Int) *big.Int {
	ret := new(big.Int).Mul(p, big.NewInt(7))
	ret.Sub(ret, big.NewInt(11))
	return ret.Rsh(ret, 3)
}

// ForField compiles all chains needed for the field described by params.
//
// params must have been validated before.
func ForField(params *common.FieldParameters) (*FieldExponents, error) {
	p := params.Modulus()
	window := params.Window()
	ret := FieldExponents{FieldName: params.Name, Is3Mod4: params.Is3Mod4()}

	type target struct {
		dst      **Chain
		name     string
		exponent *big.Int
	}
	targets := []target{
		{&ret.Inverse, "inverse", InverseExponent(p)},
		{&ret.Legendre, "legendre", LegendreExponent(p)},
		{&ret.SqrtHelper, "sqrt helper", SqrtHelperExponent(p)},
	}
	if !ret.Is3Mod4 {
		targets = append(targets,
			target{&ret.Quartic, "quartic", QuarticExponent(p)},
			target{&ret.InvSqrt, "inverse sqrt", InvSqrtExponent(p)},
		)
	}
	for _, t := range targets {
		chain, err := Compile(params.Name+" "+t.name, t.exponent, window)
		if err != nil {
			logger.Warn("failed to compile exponentiation chain", zap.String("field", params.Name), zap.String("chain", t.name), zap.Error(err))
			return nil, errors.WithMessagef(err, "field %v", params.Name)
		}
		logger.Debug("compiled exponentiation chain",
			zap.String("field", params.Name),
			zap.String("chain", t.name),
			zap.Uint("window", window),
			zap.Int("tableSize", chain.TableSize()),
			zap.Int("squarings", chain.Squarings()),
			zap.Int("multiplications", chain.Multiplications()),
		)
		*t.dst = chain
	}
	return &ret, nil
}

// All returns all non-nil chains.
func (fe *FieldExponents) All() []*Chain {
	ret := make([]*Chain, 0, 5)
	for _, c := range []*Chain{fe.Inverse, fe.Legendre, fe.SqrtHelper, fe.Quartic, fe.InvSqrt} {
		if c != nil {
			ret = append(ret, c)
		}
	}
	return ret
}

// MaxTableSize returns the largest table size of all chains.
func (fe *FieldExponents) MaxTableSize() (ret int) {
	for _, c := range fe.All() {
		if c.TableSize() > ret {
			ret = c.TableSize()
		}
	}
	return
}
