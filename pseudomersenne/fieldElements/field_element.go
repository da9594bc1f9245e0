// Package fieldElements implements arithmetic in pseudo-Mersenne prime fields GF(p) with p = 2^n - c.
//
// A [Field] holds everything that is specific to one prime. The builtin fields are available via [E130M5], [M221],
// [Curve25519], [Curve41417], [M511] and [E521]; other pseudo-Mersenne primes can be used via [NewField].
//
// Field elements are of type [Element], which is a plain value that contains a pointer to its field and the digits
// of a redundant representation. Arithmetic follows the usual convention of math/big: z.Mul(&x, &y) sets z = x*y.
// Arguments may alias. The receiver of an operation with field element arguments takes the field of the arguments;
// mixing elements of different fields panics. The zero value of Element belongs to no field and can only be used as
// a receiver of such operations.
//
// Internally, elements are stored as a fixed number of uint64 digits, where carries are propagated lazily.
// All arithmetic is branch-free in the values of the field elements. Inversion, square roots and Legendre symbols are
// computed by exponentiation with fixed, precompiled chains. Conversions to bool (e.g. IsEqual) and to int
// (e.g. Legendre) happen only at the API boundary.
//
// Field elements are not safe for concurrent mutation. Fields are immutable and may be shared.
package fieldElements

// Element is an element of a pseudo-Mersenne prime field.
//
// Copying an Element by assignment creates an independent copy.
type Element struct {
	field  *Field
	digits digitVector
}

func (f *Field) newElement() Element {
	return Element{field: f}
}

// Zero returns the field element 0.
func (f *Field) Zero() Element {
	return f.newElement()
}

// One returns the field element 1.
func (f *Field) One() Element {
	z := f.newElement()
	z.digits = f.one
	return z
}

// MinusOne returns the field element -1.
func (f *Field) MinusOne() Element {
	z := f.newElement()
	z.digits = f.mone
	return z
}

// FromInt64 returns the field element x mod p.
func (f *Field) FromInt64(x int64) Element {
	z := f.newElement()
	z.SetInt64(x)
	return z
}

// FromUint64 returns the field element x mod p.
func (f *Field) FromUint64(x uint64) Element {
	z := f.newElement()
	z.SetUint64(x)
	return z
}

// Field returns the field of z. This is nil for the zero value of Element.
func (z *Element) Field() *Field {
	return z.field
}

// mustField returns the field of z and panics if z has none.
func (z *Element) mustField() *Field {
	if z.field == nil {
		panic(ErrorPrefix + "field element was not initialized with a field")
	}
	return z.field
}

// sameField returns the common field of x and y and panics if they differ.
func sameField(x, y *Element) *Field {
	f := x.mustField()
	if y.mustField() != f {
		panic(ErrorPrefix + "mixing elements of fields " + f.Name() + " and " + y.field.Name())
	}
	return f
}

// SetZero sets z = 0.
func (z *Element) SetZero() {
	z.mustField()
	z.digits = digitVector{}
}

// SetOne sets z = 1.
func (z *Element) SetOne() {
	z.digits = z.mustField().one
}

// SetMinusOne sets z = -1.
func (z *Element) SetMinusOne() {
	z.digits = z.mustField().mone
}

// SetUint64 sets z = x mod p.
func (z *Element) SetUint64(x uint64) {
	f := z.mustField()
	z.digits = digitVector{}
	z.digits[0] = x & f.layout.mask
	z.digits[1] = x >> f.layout.w
	f.layout.fold(&z.digits)
}

// SetInt64 sets z = x mod p. x may be negative.
func (z *Element) SetInt64(x int64) {
	f := z.mustField()
	// x = sign * |x|, computed without branching on x.
	signMask := uint64(x >> 63)
	abs := (uint64(x) ^ signMask) - signMask
	var positive, negative digitVector
	positive[0] = abs & f.layout.mask
	positive[1] = abs >> f.layout.w
	f.layout.fold(&positive)
	f.layout.negDigits(&negative, &positive)
	f.layout.selectDigits(&z.digits, &negative, &positive, signMask&1)
}

// Set sets z = x.
func (z *Element) Set(x *Element) {
	*z = *x
}

// Clone returns a copy of z.
func (z *Element) Clone() Element {
	return *z
}

// Normalize changes the internal representation of z to the canonical one. The value of z is unchanged.
//
// All operations that depend on the representation (e.g. serialization) normalize internally, so users rarely need this.
func (z *Element) Normalize() {
	f := z.mustField()
	incrementCallCounter(f, CallCounterNormalize)
	f.layout.normalizeDigits(&z.digits, &z.digits)
}

// normalized returns the normalized digits of z without modifying z.
func (z *Element) normalized() (d digitVector) {
	f := z.mustField()
	f.layout.normalizeDigits(&d, &z.digits)
	return
}

// Add sets z = x + y.
func (z *Element) Add(x, y *Element) {
	f := sameField(x, y)
	incrementCallCounter(f, CallCounterAdd)
	f.layout.addDigits(&z.digits, &x.digits, &y.digits)
	z.field = f
}

// Sub sets z = x - y.
func (z *Element) Sub(x, y *Element) {
	f := sameField(x, y)
	incrementCallCounter(f, CallCounterSub)
	f.layout.subDigits(&z.digits, &x.digits, &y.digits)
	z.field = f
}

// Mul sets z = x * y.
func (z *Element) Mul(x, y *Element) {
	f := sameField(x, y)
	incrementCallCounter(f, CallCounterMul)
	f.layout.mulDigits(&z.digits, &x.digits, &y.digits)
	z.field = f
}

// Square sets z = x * x.
func (z *Element) Square(x *Element) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterSquare)
	f.layout.squareDigits(&z.digits, &x.digits)
	z.field = f
}

// Neg sets z = -x.
func (z *Element) Neg(x *Element) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterNeg)
	f.layout.negDigits(&z.digits, &x.digits)
	z.field = f
}

// Double sets z = 2 * x.
func (z *Element) Double(x *Element) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterDouble)
	f.layout.addDigits(&z.digits, &x.digits, &x.digits)
	z.field = f
}

// MulInt sets z = x * y for a small integer y. This is faster than Mul.
func (z *Element) MulInt(x *Element, y uint32) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterMulInt)
	f.layout.mulSmallDigits(&z.digits, &x.digits, y)
	z.field = f
}

// AddInt sets z = x + y for a small integer y.
func (z *Element) AddInt(x *Element, y int32) {
	f := x.mustField()
	incrementCallCounter(f, CallCounterAddInt)
	f.layout.addSmallDigits(&z.digits, &x.digits, y)
	z.field = f
}

// AddEq sets z += y.
func (z *Element) AddEq(y *Element) { z.Add(z, y) }

// SubEq sets z -= y.
func (z *Element) SubEq(y *Element) { z.Sub(z, y) }

// MulEq sets z *= y.
func (z *Element) MulEq(y *Element) { z.Mul(z, y) }

// SquareEq sets z = z * z.
func (z *Element) SquareEq() { z.Square(z) }

// NegEq sets z = -z.
func (z *Element) NegEq() { z.Neg(z) }

// DoubleEq sets z = 2 * z.
func (z *Element) DoubleEq() { z.Double(z) }

// IsZero checks whether z == 0.
func (z *Element) IsZero() bool {
	d := z.normalized()
	return z.field.layout.isZeroNormalized(&d) == 1
}

// IsOne checks whether z == 1.
func (z *Element) IsOne() bool {
	d := z.normalized()
	return z.field.layout.equalNormalized(&d, &z.field.one) == 1
}

// IsEqual checks whether z == x as field elements. The internal representations may differ.
func (z *Element) IsEqual(x *Element) bool {
	f := sameField(z, x)
	var a, b digitVector
	f.layout.normalizeDigits(&a, &z.digits)
	f.layout.normalizeDigits(&b, &x.digits)
	return f.layout.equalNormalized(&a, &b) == 1
}

// NormalizedEquals checks whether z == x, assuming both are normalized (see [Element.Normalize]).
// The result is meaningless otherwise.
func (z *Element) NormalizedEquals(x *Element) bool {
	f := sameField(z, x)
	return f.layout.equalNormalized(&z.digits, &x.digits) == 1
}

// Sign returns 0 if z, viewed as an integer in [0, p), is in [0, (p-1)/2] and 1 otherwise.
func (z *Element) Sign() int {
	d := z.normalized()
	return int(z.field.layout.signNormalized(&d))
}

// SignNormalized is like [Element.Sign], but assumes that z is normalized.
func (z *Element) SignNormalized() int {
	return int(z.mustField().layout.signNormalized(&z.digits))
}

// Abs sets z = x if x.Sign() == 0 and z = -x otherwise.
func (z *Element) Abs(x *Element) {
	f := x.mustField()
	var d, negated digitVector
	f.layout.normalizeDigits(&d, &x.digits)
	f.layout.negDigits(&negated, &d)
	f.layout.normalizeDigits(&negated, &negated)
	f.layout.selectDigits(&z.digits, &negated, &d, f.layout.signNormalized(&d))
	z.field = f
}

// Bit returns bit number i of z, viewed as an integer in [0, p). i must be in [0, n).
func (z *Element) Bit(i int) uint {
	d := z.normalized()
	return z.field.layout.bit(&d, i)
}

// BitNormalized is like [Element.Bit], but assumes that z is normalized.
func (z *Element) BitNormalized(i int) uint {
	return z.mustField().layout.bit(&z.digits, i)
}

func (l *digitLayout) bit(d *digitVector, i int) uint {
	n := (l.k-1)*int(l.w) + int(l.hw)
	if i < 0 || i >= n {
		panic(ErrorPrefix + "bit index out of range")
	}
	return uint(d[i/int(l.w)]>>(uint(i)%l.w)) & 1
}

// Mask sets z = x if bit == 1 and z = 0 if bit == 0. Only the lowest bit of bit is used.
//
// Together with [Element.Or], this allows branch-free selection.
func (z *Element) Mask(x *Element, bit uint64) {
	f := x.mustField()
	mask := -(bit & 1)
	var d digitVector
	for i := 0; i < f.layout.k; i++ {
		d[i] = x.digits[i] & mask
	}
	z.digits = d
	z.field = f
}

// Or sets z to the digit-wise OR of x and y. This is only meaningful if one of x and y was obtained as the zero output of [Element.Mask].
func (z *Element) Or(x, y *Element) {
	f := sameField(x, y)
	var d digitVector
	for i := 0; i < f.layout.k; i++ {
		d[i] = x.digits[i] | y.digits[i]
	}
	z.digits = d
	z.field = f
}

// Select sets z = x if cond == 1 and z = y if cond == 0, without branching on cond. Only the lowest bit of cond is used.
func (z *Element) Select(cond uint64, x, y *Element) {
	f := sameField(x, y)
	f.layout.selectDigits(&z.digits, &x.digits, &y.digits, cond)
	z.field = f
}

// CondSwap swaps x and y if cond == 1 and does nothing if cond == 0, without branching on cond.
func CondSwap(x, y *Element, cond uint64) {
	f := sameField(x, y)
	mask := -(cond & 1)
	for i := 0; i < f.layout.k; i++ {
		t := (x.digits[i] ^ y.digits[i]) & mask
		x.digits[i] ^= t
		y.digits[i] ^= t
	}
}
