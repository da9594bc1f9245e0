package fieldElements

import (
	"math"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/PseudoMersenne/internal/testutils"
)

func TestConstants(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		zero, one, mone := f.Zero(), f.One(), f.MinusOne()
		testutils.FatalUnless(t, zero.IsZero(), "0 != 0")
		testutils.FatalUnless(t, one.IsOne(), "1 != 1")
		testutils.FatalUnless(t, !one.IsZero(), "1 == 0")
		testutils.FatalUnless(t, !zero.IsOne(), "0 == 1")

		var sum, neg, prod Element
		sum.Add(&zero, &one)
		assert.True(t, sum.IsEqual(&one), "0 + 1 != 1")
		neg.Neg(&one)
		assert.True(t, neg.IsEqual(&mone), "-(1) != -1")
		prod.Mul(&one, &mone)
		assert.True(t, prod.IsEqual(&mone), "1 * (-1) != -1")

		expected := new(big.Int).Sub(f.Modulus(), big.NewInt(1))
		assert.Equal(t, 0, mone.ToBigInt().Cmp(expected))
	})
}

func TestE130PowerOfTwo(t *testing.T) {
	f := E130M5()
	a := f.FromUint64(2)
	for i := 0; i < 4; i++ {
		a.SquareEq()
	}
	a.Normalize()
	v, err := a.ToUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(65536), v)
	assert.Equal(t, uint64(65536), a.digits[0])
	assert.Zero(t, a.digits[1])
	assert.Zero(t, a.digits[2])
}

func TestArithmeticAgainstBigInt(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		p := f.Modulus()
		xs := sampleElements(f, 1, 40)
		reduce := func(x *big.Int) *big.Int { return x.Mod(x, p) }
		for i := range xs {
			x := &xs[i]
			xInt := x.ToBigInt()
			for j := range xs {
				y := &xs[j]
				yInt := y.ToBigInt()
				var z Element

				z.Add(x, y)
				require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Add(xInt, yInt))), "Add")
				z.Sub(x, y)
				require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Sub(xInt, yInt))), "Sub")
				z.Mul(x, y)
				require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Mul(xInt, yInt))), "Mul")
			}
			var z Element
			z.Square(x)
			require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Mul(xInt, xInt))), "Square")
			z.Neg(x)
			require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Neg(xInt))), "Neg")
			z.Double(x)
			require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Lsh(xInt, 1))), "Double")
			for _, s := range []uint32{0, 1, 2, 5, 1 << 20, math.MaxUint32} {
				z.MulInt(x, s)
				require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Mul(xInt, big.NewInt(int64(s))))), "MulInt %v", s)
			}
			for _, s := range []int32{0, 1, -1, 19, math.MaxInt32, math.MinInt32} {
				z.AddInt(x, s)
				require.Equal(t, 0, z.ToBigInt().Cmp(reduce(new(big.Int).Add(xInt, big.NewInt(int64(s))))), "AddInt %v", s)
			}
		}
	})
}

// TestArithmeticAgainstUint256 uses holiman/uint256 as an independent oracle for all fields that fit into 256 bits.
func TestArithmeticAgainstUint256(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		if f.NumBits() > 256 {
			t.Skip("field does not fit into 256 bits")
		}
		m, overflow := uint256.FromBig(f.Modulus())
		require.False(t, overflow)
		toU256 := func(x *Element) *uint256.Int {
			u, overflow := uint256.FromBig(x.ToBigInt())
			require.False(t, overflow)
			return u
		}
		xs := sampleElements(f, 2, 30)
		for i := range xs {
			for j := range xs {
				x, y := &xs[i], &xs[j]
				xU, yU := toU256(x), toU256(y)
				var z Element
				z.Mul(x, y)
				assert.True(t, toU256(&z).Eq(new(uint256.Int).MulMod(xU, yU, m)), "Mul")
				z.Add(x, y)
				assert.True(t, toU256(&z).Eq(new(uint256.Int).AddMod(xU, yU, m)), "Add")
				z.Sub(x, y)
				minusY := new(uint256.Int).Sub(m, yU)
				assert.True(t, toU256(&z).Eq(new(uint256.Int).AddMod(xU, minusY, m)), "Sub")
			}
		}
	})
}

func TestAdditiveInverse(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		xs := sampleElements(f, 3, 30)
		for i := range xs {
			for j := range xs {
				var z Element
				z.Add(&xs[i], &xs[j])
				z.SubEq(&xs[i])
				testutils.FatalUnless(t, z.IsEqual(&xs[j]), "(a + b) - a != b")
			}
		}
	})
}

func TestSquareIsMul(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		for _, x := range sampleElements(f, 4, 100) {
			var sq, prod Element
			sq.Square(&x)
			clone := x.Clone()
			prod.Mul(&clone, &x)
			testutils.FatalUnless(t, sq.IsEqual(&prod), "a^2 != a * a")
		}
	})
}

func TestAliasing(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		xs := sampleElements(f, 5, 20)
		for i := range xs {
			x := xs[i]
			y := xs[(i+1)%len(xs)]
			var expected Element

			expected.Add(&x, &y)
			z := x
			z.AddEq(&y)
			assert.True(t, z.IsEqual(&expected), "AddEq")

			expected.Sub(&x, &y)
			z = x
			z.SubEq(&y)
			assert.True(t, z.IsEqual(&expected), "SubEq")

			expected.Mul(&x, &y)
			z = x
			z.MulEq(&y)
			assert.True(t, z.IsEqual(&expected), "MulEq")

			expected.Mul(&x, &x)
			z = x
			z.Mul(&z, &z)
			assert.True(t, z.IsEqual(&expected), "Mul with full aliasing")
			z = x
			z.SquareEq()
			assert.True(t, z.IsEqual(&expected), "SquareEq")

			expected.Add(&x, &x)
			z = x
			z.DoubleEq()
			assert.True(t, z.IsEqual(&expected), "DoubleEq")

			expected.Sub(&y, &x)
			z = x
			z.Sub(&y, &z)
			assert.True(t, z.IsEqual(&expected), "Sub with aliased second argument")

			expected.Neg(&x)
			z = x
			z.NegEq()
			assert.True(t, z.IsEqual(&expected), "NegEq")
		}
	})
}

func TestSetIntegers(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		p := f.Modulus()
		for _, v := range []int64{0, 1, -1, 2, -2, 1 << 40, -(1 << 40), math.MaxInt64, math.MinInt64} {
			x := f.FromInt64(v)
			require.True(t, satisfiesLazyInvariant(&f.layout, &x.digits))
			expected := new(big.Int).Mod(big.NewInt(v), p)
			assert.Equal(t, 0, x.ToBigInt().Cmp(expected), "SetInt64(%v)", v)
			back, err := x.ToInt64()
			require.NoError(t, err)
			assert.Equal(t, v, back)
		}
		for _, v := range []uint64{0, 1, 1 << 63, math.MaxUint64} {
			x := f.FromUint64(v)
			require.True(t, satisfiesLazyInvariant(&f.layout, &x.digits))
			expected := new(big.Int).SetUint64(v)
			assert.Equal(t, 0, x.ToBigInt().Cmp(expected), "SetUint64(%v)", v)
			back, err := x.ToUint64()
			require.NoError(t, err)
			assert.Equal(t, v, back)
		}
		var x Element = f.Zero()
		x.SetOne()
		assert.True(t, x.IsOne())
		x.SetMinusOne()
		assert.Equal(t, -1, mustInt64(t, &x))
		x.SetZero()
		assert.True(t, x.IsZero())

		large := f.FromBigInt(new(big.Int).Lsh(big.NewInt(1), 100))
		_, err := large.ToUint64()
		assert.ErrorIs(t, err, ErrCannotRepresentFieldElement)
		_, err = large.ToInt64()
		assert.ErrorIs(t, err, ErrCannotRepresentFieldElement)
	})
}

func mustInt64(t *testing.T, x *Element) int {
	v, err := x.ToInt64()
	require.NoError(t, err)
	return int(v)
}

func TestSignAndAbs(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		half := new(big.Int).Rsh(f.Modulus(), 1)
		for _, x := range sampleElements(f, 6, 100) {
			expectedSign := 0
			if x.ToBigInt().Cmp(half) > 0 {
				expectedSign = 1
			}
			require.Equal(t, expectedSign, x.Sign())
			normalized := x
			normalized.Normalize()
			require.Equal(t, expectedSign, normalized.SignNormalized())

			var abs Element
			abs.Abs(&x)
			if x.Sign() == 0 {
				assert.True(t, abs.IsEqual(&x))
			} else {
				mone := f.MinusOne()
				var negated Element
				negated.Mul(&x, &mone)
				assert.True(t, abs.IsEqual(&negated))
			}
			assert.Equal(t, 0, abs.Sign())
		}
		one, mone := f.One(), f.MinusOne()
		assert.Equal(t, 0, one.Sign())
		assert.Equal(t, 1, mone.Sign())
	})
}

func TestNormalizedEqualsAndEquality(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		for _, x := range sampleElements(f, 7, 30) {
			for variant := 0; variant < 3; variant++ {
				y := withLazyRepresentation(&x, variant)
				assert.True(t, x.IsEqual(&y))
				xn, yn := x, y
				xn.Normalize()
				yn.Normalize()
				assert.True(t, xn.NormalizedEquals(&yn))
				assert.Equal(t, xn.digits, yn.digits)
			}
			var y Element
			y.AddInt(&x, 1)
			assert.False(t, x.IsEqual(&y))
		}
	})
}

func TestBits(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		for _, x := range sampleElements(f, 8, 20) {
			xInt := x.ToBigInt()
			normalized := x
			normalized.Normalize()
			for i := 0; i < f.NumBits(); i++ {
				require.Equal(t, xInt.Bit(i), x.Bit(i))
				require.Equal(t, xInt.Bit(i), normalized.BitNormalized(i))
			}
		}
		x := f.One()
		assert.True(t, testutils.CheckPanic(func() { x.Bit(-1) }))
		assert.True(t, testutils.CheckPanic(func() { x.Bit(f.NumBits()) }))
	})
}

func TestBranchFreeSelection(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		xs := sampleElements(f, 9, 10)
		for i := range xs {
			x, y := xs[i], xs[(i+3)%len(xs)]
			var masked, other, or Element
			masked.Mask(&x, 1)
			assert.True(t, masked.IsEqual(&x))
			masked.Mask(&x, 0)
			assert.True(t, masked.IsZero())

			// z = bit ? x : y via Mask and Or
			for _, bit := range []uint64{0, 1} {
				masked.Mask(&x, bit)
				other.Mask(&y, 1-bit)
				or.Or(&masked, &other)
				var sel Element
				sel.Select(bit, &x, &y)
				if bit == 1 {
					assert.True(t, or.IsEqual(&x))
					assert.True(t, sel.IsEqual(&x))
				} else {
					assert.True(t, or.IsEqual(&y))
					assert.True(t, sel.IsEqual(&y))
				}
			}

			a, b := x, y
			CondSwap(&a, &b, 0)
			assert.True(t, a.IsEqual(&x) && b.IsEqual(&y))
			CondSwap(&a, &b, 1)
			assert.True(t, a.IsEqual(&y) && b.IsEqual(&x))
		}
	})
}

// Receivers may be reused across fields. Digits beyond those of the new field must be cleared, so that
// == on Element values agrees with IsEqual for normalized values.
func TestReceiverFromLargerField(t *testing.T) {
	small := E130M5()
	seven, three, four := small.FromInt64(7), small.FromInt64(3), small.FromInt64(4)
	zero, one := small.Zero(), small.One()
	ops := map[string]func(z *Element){
		"Mask":   func(z *Element) { z.Mask(&seven, 1) },
		"Or":     func(z *Element) { z.Or(&seven, &zero) },
		"Add":    func(z *Element) { z.Add(&three, &four) },
		"Sub":    func(z *Element) { z.Sub(&seven, &zero) },
		"Double": func(z *Element) { z.Double(&seven); z.Sub(z, &seven) },
		"Neg":    func(z *Element) { z.Neg(&seven); z.NegEq() },
		"Select": func(z *Element) { z.Select(0, &zero, &seven) },
		"Mul":    func(z *Element) { z.Mul(&seven, &one) },
		"AddInt": func(z *Element) { z.AddInt(&zero, 7) },
	}
	for name, op := range ops {
		z := E521().FromBigInt(new(big.Int).Sub(E521().Modulus(), big.NewInt(2)))
		op(&z)
		require.Same(t, small, z.Field(), name)
		assert.True(t, satisfiesLazyInvariant(&small.layout, &z.digits), name)
		assert.True(t, z.IsEqual(&seven), name)
		z.Normalize()
		assert.True(t, z == seven, name)
	}
}

func TestMixingFieldsPanics(t *testing.T) {
	x := E130M5().One()
	y := Curve25519().One()
	var z Element
	assert.True(t, testutils.CheckPanic(z.Add, &x, &y))
	assert.True(t, testutils.CheckPanic(z.Mul, &x, &y))
	assert.True(t, testutils.CheckPanic(x.IsEqual, &y))
	assert.True(t, testutils.CheckPanic(CondSwap, &x, &y, uint64(1)))

	var uninitialized Element
	assert.Nil(t, uninitialized.Field())
	assert.True(t, testutils.CheckPanic(uninitialized.SetOne))
	assert.True(t, testutils.CheckPanic(z.Square, &uninitialized))
	assert.Equal(t, "<uninitialized field element>", uninitialized.String())

	// receivers take the field of the arguments
	z.Add(&x, &x)
	assert.Same(t, E130M5(), z.Field())
}

func TestCopySemantics(t *testing.T) {
	f := M221()
	x := f.FromInt64(12345)
	y := x
	y.AddInt(&y, 1)
	assert.Equal(t, int64(12345), int64(mustInt64(t, &x)))
	clone := x.Clone()
	clone.NegEq()
	assert.Equal(t, 12345, mustInt64(t, &x))
	var z Element
	z.Set(&x)
	assert.True(t, z.IsEqual(&x))
	assert.Same(t, f, z.Field())
}
