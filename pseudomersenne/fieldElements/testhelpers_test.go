package fieldElements

import (
	"math/big"
	"math/rand"
	"testing"
)

// forAllFields runs fun as a subtest for every builtin field.
func forAllFields(t *testing.T, fun func(t *testing.T, f *Field)) {
	for _, f := range BuiltinFields() {
		f := f
		t.Run(f.Name(), func(t *testing.T) {
			fun(t, f)
		})
	}
}

// lazyValue returns the integer represented by the digits of d, including unreduced carries of the top digit.
func lazyValue(l *digitLayout, d *digitVector) *big.Int {
	ret := big.NewInt(int64(d[l.k-1]))
	for i := l.k - 2; i >= 0; i-- {
		ret.Lsh(ret, l.w)
		ret.Add(ret, new(big.Int).SetUint64(d[i]))
	}
	return ret
}

// satisfiesLazyInvariant checks the digit bounds that every kernel function guarantees for its output.
func satisfiesLazyInvariant(l *digitLayout, d *digitVector) bool {
	for i := 0; i < l.k-1; i++ {
		if d[i] > l.mask {
			return false
		}
	}
	for i := l.k; i < len(d); i++ {
		if d[i] != 0 {
			return false
		}
	}
	top := int64(d[l.k-1])
	bound := int64(1) << (l.hw + 1)
	return -bound <= top && top <= bound
}

// withLazyRepresentation returns x with a non-canonical representation of the same value:
// variant 0 keeps the normalized digits, variant 1 adds p, variant 2 subtracts p.
func withLazyRepresentation(x *Element, variant int) Element {
	f := x.mustField()
	ret := *x
	ret.digits = x.normalized()
	switch variant {
	case 1:
		for i := 0; i < f.layout.k; i++ {
			ret.digits[i] += f.layout.p[i]
		}
	case 2:
		for i := 0; i < f.layout.k; i++ {
			ret.digits[i] -= f.layout.p[i]
		}
	}
	f.layout.ripple(&ret.digits)
	return ret
}

// sampleElements returns num field elements, starting with some special values followed by random ones.
// About a third of the returned elements have a lazy representation.
func sampleElements(f *Field, seed int64, num int) []Element {
	rnd := rand.New(rand.NewSource(seed))
	special := []Element{f.Zero(), f.One(), f.MinusOne(), f.FromInt64(2), f.FromInt64(-2), f.FromUint64(1 << 63)}
	modulus := f.Modulus()
	halfP := new(big.Int).Rsh(modulus, 1)
	special = append(special, f.FromBigInt(halfP), f.FromBigInt(new(big.Int).Add(halfP, big.NewInt(1))))
	ret := make([]Element, 0, num)
	for i := 0; i < num; i++ {
		var x Element
		if i < len(special) {
			x = special[i]
		} else {
			x = f.RandomUnsafe(rnd)
		}
		ret = append(ret, withLazyRepresentation(&x, i%3))
	}
	return ret
}
