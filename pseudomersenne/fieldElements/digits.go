package fieldElements

import (
	"math/big"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains the additive part of the arithmetic kernel on digit vectors.
//
// A digitVector holds k = layout.k digits d[0], ..., d[k-1] (the remaining entries are unused and kept at zero),
// representing the integer
//
//	d[0] + d[1] * 2^w + ... + d[k-2] * 2^((k-2)w) + int64(d[k-1]) * 2^((k-1)w)
//
// where the top digit is interpreted as a signed 64-bit number. This integer is congruent to the field element modulo p.
//
// Kernel functions maintain the following ("lazy") invariant on their outputs:
//   - d[0], ..., d[k-2] are in [0, 2^w)
//   - the top digit d[k-1], interpreted as int64, has absolute value at most 2^(hw+1).
//
// Bits of the top digit above position hw are a signed carry that has not been reduced yet.
// Since 2^n == c mod p, such a carry is reinjected into d[0] after multiplication by c.
// A digitVector is normalized if, in addition, the top digit is in [0, 2^hw) and the represented integer is in [0, p).
//
// All kernel functions are branch-free in the values of the digits, allow their output to alias any input and only write to their output.
// They always write all MaxDigits entries of their output, so an output that previously held digits of a field with
// more digits ends up with zeros in the unused entries.

type digitVector [common.MaxDigits]uint64

// wideVector holds the 2k digits of a product before reduction.
type wideVector [2 * common.MaxDigits]uint64

// digitLayout holds all constants derived from the field parameters that the kernel needs.
type digitLayout struct {
	k          int    // number of digits
	w          uint   // bits per digit
	hw         uint   // bits of the top digit
	m          uint   // bits per half-digit used in multiplication
	c          uint64 // p = 2^n - c
	mask       uint64 // 2^w - 1
	hmask      uint64 // 2^hw - 1
	mmask      uint64 // 2^m - 1
	p          digitVector
	halfPPlusC digitVector // (p-1)/2 + c
}

func newDigitLayout(params *common.FieldParameters) (l digitLayout) {
	l.k = params.Digits
	l.w = params.DigitBits
	l.hw = params.HighDigitBits()
	l.m = params.MulDigitBits
	l.c = params.C
	l.mask = 1<<l.w - 1
	l.hmask = 1<<l.hw - 1
	l.mmask = 1<<l.m - 1

	modulus := params.Modulus()
	l.p = l.fromBigInt(modulus)
	half := new(big.Int).Sub(modulus, big.NewInt(1))
	half.Rsh(half, 1)
	half.Add(half, new(big.Int).SetUint64(l.c))
	l.halfPPlusC = l.fromBigInt(half)
	return
}

// fromBigInt converts a non-negative x < 2^n into normalized digits.
func (l *digitLayout) fromBigInt(x *big.Int) (d digitVector) {
	var rest, digit big.Int
	rest.Set(x)
	mask := new(big.Int).SetUint64(l.mask)
	for i := 0; i < l.k; i++ {
		digit.And(&rest, mask)
		d[i] = digit.Uint64()
		rest.Rsh(&rest, l.w)
	}
	return
}

// toBigInt converts normalized digits to a big.Int.
func (l *digitLayout) toBigInt(d *digitVector) *big.Int {
	ret := new(big.Int)
	var digit big.Int
	for i := l.k - 1; i >= 0; i-- {
		ret.Lsh(ret, l.w)
		digit.SetUint64(d[i])
		ret.Or(ret, &digit)
	}
	return ret
}

// topCarry returns the signed carry stored above the nominal width of the top digit.
func (l *digitLayout) topCarry(d *digitVector) int64 {
	return int64(d[l.k-1]) >> l.hw
}

// ripple propagates the signed carries of d[0..k-2] upwards into the top digit, which is left unmasked.
func (l *digitLayout) ripple(d *digitVector) {
	for i := 0; i < l.k-1; i++ {
		carry := uint64(int64(d[i]) >> l.w)
		d[i] &= l.mask
		d[i+1] += carry
	}
}

// fold reduces the carry of the top digit by reinjecting it into d[0], multiplied by c.
// The result satisfies the lazy invariant with a top digit in [-1, 2^hw].
func (l *digitLayout) fold(d *digitVector) {
	carry := l.topCarry(d)
	d[l.k-1] &= l.hmask
	d[0] += l.c * uint64(carry)
	l.ripple(d)
}

// addDigits sets out = a + b.
func (l *digitLayout) addDigits(out, a, b *digitVector) {
	var r digitVector
	k := l.k
	aTop, bTop := a[k-1], b[k-1]
	carryIn := (int64(aTop) >> l.hw) + (int64(bTop) >> l.hw)
	acc := a[0] + b[0] + l.c*uint64(carryIn)
	for i := 1; i < k-1; i++ {
		r[i-1] = acc & l.mask
		acc = uint64(int64(acc)>>l.w) + a[i] + b[i]
	}
	r[k-2] = acc & l.mask
	r[k-1] = uint64(int64(acc)>>l.w) + (aTop & l.hmask) + (bTop & l.hmask)
	*out = r
}

// subDigits sets out = a - b. The result may be "lazy negative", i.e. have a negative top digit.
func (l *digitLayout) subDigits(out, a, b *digitVector) {
	var r digitVector
	k := l.k
	aTop, bTop := a[k-1], b[k-1]
	carryIn := (int64(aTop) >> l.hw) - (int64(bTop) >> l.hw)
	acc := a[0] - b[0] + l.c*uint64(carryIn)
	for i := 1; i < k-1; i++ {
		r[i-1] = acc & l.mask
		acc = uint64(int64(acc)>>l.w) + a[i] - b[i]
	}
	r[k-2] = acc & l.mask
	r[k-1] = uint64(int64(acc)>>l.w) + (aTop & l.hmask) - (bTop & l.hmask)
	*out = r
}

// addSmallDigits sets out = a + s.
func (l *digitLayout) addSmallDigits(out, a *digitVector, s int32) {
	*out = *a
	l.fold(out)
	out[0] += uint64(int64(s))
	l.ripple(out)
}

// negDigits sets out = -a.
func (l *digitLayout) negDigits(out, a *digitVector) {
	var zero digitVector
	l.subDigits(out, &zero, a)
}

// prepare sets out to a representation of a with all digits non-negative.
// Each of d[0..k-2] is in [0, 2^w) and the top digit is in [0, 2^(hw+1)).
func (l *digitLayout) prepare(out, a *digitVector) {
	*out = *a
	l.fold(out)
	negative := uint64(int64(out[l.k-1]) >> 63)
	for i := 0; i < l.k; i++ {
		out[i] += l.p[i] & negative
	}
	l.ripple(out)
}

// normalizeDigits sets out to the unique representation of a with value in [0, p).
func (l *digitLayout) normalizeDigits(out, a *digitVector) {
	var d, plusC digitVector
	l.prepare(&d, a)
	// d is in [0, 2^n + small); d >= p iff d + c >= 2^n, which shows up as a carry of 0 or 1 above the top digit.
	plusC = d
	plusC[0] += l.c
	l.ripple(&plusC)
	subtractP := -uint64(l.topCarry(&plusC))
	for i := 0; i < l.k; i++ {
		d[i] -= l.p[i] & subtractP
	}
	l.ripple(&d)
	*out = d
}

// isZeroNormalized returns 1 if the normalized a is zero and 0 otherwise.
func (l *digitLayout) isZeroNormalized(a *digitVector) uint64 {
	var acc uint64
	for i := 0; i < l.k; i++ {
		acc |= a[i]
	}
	// acc < 2^63, so acc - 1 has its top bit set iff acc == 0
	return (acc - 1) >> 63
}

// equalNormalized returns 1 if the normalized a and b are equal and 0 otherwise.
func (l *digitLayout) equalNormalized(a, b *digitVector) uint64 {
	var acc uint64
	for i := 0; i < l.k; i++ {
		acc |= a[i] ^ b[i]
	}
	return (acc - 1) >> 63
}

// signNormalized returns 0 if the normalized a is in [0, (p-1)/2] and 1 otherwise.
func (l *digitLayout) signNormalized(a *digitVector) uint64 {
	var sum digitVector
	for i := 0; i < l.k; i++ {
		sum[i] = a[i] + l.halfPPlusC[i]
	}
	l.ripple(&sum)
	return uint64(l.topCarry(&sum))
}

// selectDigits sets out = a if bit == 1 and out = b if bit == 0.
func (l *digitLayout) selectDigits(out, a, b *digitVector, bit uint64) {
	var r digitVector
	mask := -(bit & 1)
	for i := 0; i < l.k; i++ {
		r[i] = (a[i] & mask) | (b[i] &^ mask)
	}
	*out = r
}
