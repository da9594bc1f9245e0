package fieldElements

import "github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains the multiplicative part of the arithmetic kernel.
//
// For multiplication, every digit of a prepared (non-negative) input is split into two half-digits of m = w/2 bits,
// giving 2k half-digits. Schoolbook multiplication of the half-digits gives 4k-1 columns; each column sum (plus the
// incoming carry) fits into a uint64 by the choice of parameters. After carry propagation in radix 2^m, pairs of columns
// are recombined into 2k digits of w bits (a wideVector).
//
// The wideVector D represents a number X < 2^(2n+2). Reduction writes X = L + 2^n * H with L < 2^n and uses 2^n == c mod p,
// so X == L + c * H. Both L and H are read off D digit-wise without shifting the whole number.

// columnVector holds the column sums of a half-digit product.
type columnVector [4 * common.MaxDigits]uint64

// halfDigits splits the prepared digits of a into 2k half-digits.
func (l *digitLayout) halfDigits(out *wideVector, a *digitVector) {
	for i := 0; i < l.k; i++ {
		out[2*i] = a[i] & l.mmask
		out[2*i+1] = a[i] >> l.m
	}
}

// recombine converts 4k columns of m bits (after carry propagation) into 2k digits of w bits.
func (l *digitLayout) recombine(out *wideVector, columns *columnVector) {
	for i := 0; i < 2*l.k; i++ {
		out[i] = columns[2*i] | columns[2*i+1]<<l.m
	}
}

// reduceWide sets out to a digitVector congruent to the number represented by D, satisfying the lazy invariant.
func (l *digitLayout) reduceWide(out *digitVector, D *wideVector) {
	k, w, hw := l.k, l.w, l.hw
	var y digitVector
	copy(y[:k], D[:k])
	y[k-1] &= l.hmask // y is now L

	var acc uint64
	for j := 0; j < k; j++ {
		// j'th digit of H, i.e. bits [n + j*w, n + (j+1)*w) of X
		h := (D[k-1+j] >> hw) | ((D[k+j] << (w - hw)) & l.mask)
		acc += y[j] + l.c*h
		if j < k-1 {
			y[j] = acc & l.mask
			acc >>= w
		} else {
			y[j] = acc
		}
	}
	l.fold(&y)
	*out = y
}

// mulDigits sets out = a * b.
func (l *digitLayout) mulDigits(out, a, b *digitVector) {
	var x, y digitVector
	l.prepare(&x, a)
	l.prepare(&y, b)
	var hx, hy wideVector
	l.halfDigits(&hx, &x)
	l.halfDigits(&hy, &y)

	K := 2 * l.k
	var columns columnVector
	var carry uint64
	for t := 0; t < 2*K-1; t++ {
		lo := 0
		if t >= K {
			lo = t - K + 1
		}
		hi := t
		if hi > K-1 {
			hi = K - 1
		}
		col := carry
		for i := lo; i <= hi; i++ {
			col += hx[i] * hy[t-i]
		}
		columns[t] = col & l.mmask
		carry = col >> l.m
	}
	columns[2*K-1] = carry

	var D wideVector
	l.recombine(&D, &columns)
	l.reduceWide(out, &D)
}

// squareDigits sets out = a * a. Every cross product is computed once and doubled.
func (l *digitLayout) squareDigits(out, a *digitVector) {
	var x digitVector
	l.prepare(&x, a)
	var hx wideVector
	l.halfDigits(&hx, &x)

	K := 2 * l.k
	var columns columnVector
	var carry uint64
	for t := 0; t < 2*K-1; t++ {
		lo := 0
		if t >= K {
			lo = t - K + 1
		}
		var cross uint64
		for i := lo; i < t-i; i++ {
			cross += hx[i] * hx[t-i]
		}
		col := carry + 2*cross
		if t%2 == 0 {
			col += hx[t/2] * hx[t/2]
		}
		columns[t] = col & l.mmask
		carry = col >> l.m
	}
	columns[2*K-1] = carry

	var D wideVector
	l.recombine(&D, &columns)
	l.reduceWide(out, &D)
}

// mulSmallDigits sets out = a * s for a machine word s < 2^32.
func (l *digitLayout) mulSmallDigits(out, a *digitVector, s uint32) {
	var x digitVector
	l.prepare(&x, a)
	var hx wideVector
	l.halfDigits(&hx, &x)

	K := 2 * l.k
	var columns columnVector
	var carry uint64
	for t := 0; t < K; t++ {
		col := hx[t]*uint64(s) + carry
		columns[t] = col & l.mmask
		carry = col >> l.m
	}
	columns[K] = carry

	var D wideVector
	l.recombine(&D, &columns)
	l.reduceWide(out, &D)
}
