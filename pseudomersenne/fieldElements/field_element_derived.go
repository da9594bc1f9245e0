package fieldElements

import "github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/exponents"

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains the operations that are computed by exponentiation with one of the precompiled chains of the field:
// inversion, square roots, inverse square roots and Legendre symbols.
//
// None of these ever return an error or branch on the value of the input. For inputs where the result is mathematically
// undefined (inverse of 0, square root of a non-square), the output element is some well-defined but meaningless value.
// Square roots return the Legendre symbol of the input alongside, so the caller can check afterwards.

// symbol maps the result r of an exponentiation whose value is known to be in {0, 1, -1} (or some other value) to an int.
// 1 maps to 1, p-1 maps to -1, everything else maps to 0.
func (f *Field) symbol(r *digitVector) int {
	var d digitVector
	f.layout.normalizeDigits(&d, r)
	isOne := f.layout.equalNormalized(&d, &f.one)
	isMinusOne := f.layout.equalNormalized(&d, &f.mone)
	return int(isOne) - int(isMinusOne)
}

// isOneDigits returns 1 if r represents the field element 1 and 0 otherwise.
func (f *Field) isOneDigits(r *digitVector) uint64 {
	var d digitVector
	f.layout.normalizeDigits(&d, r)
	return f.layout.equalNormalized(&d, &f.one)
}

// run sets out = x^e, where e is the exponent of the chain.
func (s *Scratchpad) run(f *Field, out, x *digitVector, chain *exponents.Chain) {
	s.exp(&f.layout, out, x, chain)
}

// Inv sets z = 1/x. For x == 0, sets z = 0.
func (s *Scratchpad) Inv(z, x *Element) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterInv)
	s.run(f, &z.digits, &x.digits, f.exponents.Inverse)
	z.field = f
}

// Divide sets z = x/y. For y == 0, sets z = 0.
func (s *Scratchpad) Divide(z, x, y *Element) {
	f := sameField(x, y)
	var inv digitVector
	incrementCallCounter(f, CallCounterInv)
	s.run(f, &inv, &y.digits, f.exponents.Inverse)
	incrementCallCounter(f, CallCounterMul)
	f.layout.mulDigits(&z.digits, &x.digits, &inv)
	z.field = f
}

// Sqrt sets z to a square root of x and returns the Legendre symbol of x.
//
// If the returned value is -1, x has no square root and the value of z is meaningless.
// The returned square root is not guaranteed to have any particular sign.
func (s *Scratchpad) Sqrt(z, x *Element) (legendre int) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterSqrt)
	l := &f.layout
	a := x.digits
	var t, r, q digitVector
	s.run(f, &t, &a, f.exponents.SqrtHelper)
	l.mulDigits(&r, &a, &t) // a^((p+1)/4) resp. a^((p+3)/8)
	l.mulDigits(&q, &r, &t) // a^((p-1)/2) resp. a^((p-1)/4)
	if f.exponents.Is3Mod4 {
		legendre = f.symbol(&q)
		z.digits = r
	} else {
		// r^2 == q * a, where q is a 4th root of unity if a is a square, so either 1 or -1.
		// For q == -1, multiply r with a square root of -1.
		var coeff, leg digitVector
		l.selectDigits(&coeff, &f.one, &f.sqrtCoeffM1, f.isOneDigits(&q))
		l.squareDigits(&leg, &q)
		legendre = f.symbol(&leg)
		l.mulDigits(&z.digits, &r, &coeff)
	}
	z.field = f
	return
}

// InvSqrt sets z to a square root of 1/x and returns the Legendre symbol of x.
//
// If the returned value is not 1, x has no inverse square root and the value of z is meaningless.
func (s *Scratchpad) InvSqrt(z, x *Element) (legendre int) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterInvSqrt)
	l := &f.layout
	a := x.digits
	var u, q, leg digitVector
	if f.exponents.Is3Mod4 {
		// u = a^((p-3)/4), u^2 * a = a^((p-1)/2)
		s.run(f, &u, &a, f.exponents.SqrtHelper)
		l.squareDigits(&q, &u)
		l.mulDigits(&leg, &q, &a)
		legendre = f.symbol(&leg)
		z.digits = u
	} else {
		// u = a^((7p-11)/8), u^2 * a = a^(7(p-1)/4), which is 1 or -1 for a square a.
		s.run(f, &u, &a, f.exponents.InvSqrt)
		l.squareDigits(&q, &u)
		l.mulDigits(&q, &q, &a)
		var coeff digitVector
		l.selectDigits(&coeff, &f.one, &f.invSqrtCoeffM1, f.isOneDigits(&q))
		l.squareDigits(&leg, &q)
		legendre = f.symbol(&leg)
		l.mulDigits(&z.digits, &u, &coeff)
	}
	z.field = f
	return
}

// Legendre returns the Legendre symbol of x: 1 for non-zero squares, -1 for non-squares and 0 for x == 0.
func (s *Scratchpad) Legendre(x *Element) int {
	f := x.mustField()
	incrementCallCounter(f, CallCounterLegendre)
	var r digitVector
	s.run(f, &r, &x.digits, f.exponents.Legendre)
	return f.symbol(&r)
}

// LegendreQuartic returns 1 if x is a non-zero 4th power, -1 if x is a square but not a 4th power and 0 otherwise
// (i.e. for non-squares and for x == 0).
//
// LegendreQuartic panics for fields with p == 3 mod 4, where every square is a 4th power.
func (s *Scratchpad) LegendreQuartic(x *Element) int {
	f := x.mustField()
	if f.exponents.Quartic == nil {
		panic(ErrorPrefix + "LegendreQuartic called for field " + f.Name() + ", which has p == 3 mod 4")
	}
	incrementCallCounter(f, CallCounterLegendreQuartic)
	var r digitVector
	s.run(f, &r, &x.digits, f.exponents.Quartic)
	return f.symbol(&r)
}

/*
	Convenience methods on *Element that use a temporary Scratchpad.
*/

// Inv sets z = 1/x. For x == 0, sets z = 0.
func (z *Element) Inv(x *Element) {
	var s Scratchpad
	s.Inv(z, x)
}

// InvEq sets z = 1/z. For z == 0, z remains 0.
func (z *Element) InvEq() {
	z.Inv(z)
}

// Divide sets z = x/y. For y == 0, sets z = 0.
func (z *Element) Divide(x, y *Element) {
	var s Scratchpad
	s.Divide(z, x, y)
}

// DivideEq sets z = z/y. For y == 0, sets z = 0.
func (z *Element) DivideEq(y *Element) {
	z.Divide(z, y)
}

// Sqrt sets z to a square root of x and returns the Legendre symbol of x. See [Scratchpad.Sqrt].
func (z *Element) Sqrt(x *Element) int {
	var s Scratchpad
	return s.Sqrt(z, x)
}

// InvSqrt sets z to a square root of 1/x and returns the Legendre symbol of x. See [Scratchpad.InvSqrt].
func (z *Element) InvSqrt(x *Element) int {
	var s Scratchpad
	return s.InvSqrt(z, x)
}

// Legendre returns the Legendre symbol of z. See [Scratchpad.Legendre].
func (z *Element) Legendre() int {
	var s Scratchpad
	return s.Legendre(z)
}

// LegendreQuartic returns the quartic residue symbol of z. See [Scratchpad.LegendreQuartic].
func (z *Element) LegendreQuartic() int {
	var s Scratchpad
	return s.LegendreQuartic(z)
}
