package fieldElements

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/PseudoMersenne/internal/testutils"
	"github.com/GottfriedHerold/PseudoMersenne/internal/utils"
)

func nonZeroSamples(f *Field, seed int64, num int) []Element {
	rnd := rand.New(rand.NewSource(seed))
	ret := make([]Element, num)
	for i := range ret {
		for ret[i] = f.RandomUnsafe(rnd); ret[i].IsZero(); ret[i] = f.RandomUnsafe(rnd) {
		}
	}
	return ret
}

func TestMultiInvert(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		const MAXSIZE = 20
		require.Nil(t, MultiInvertEq())
		require.Nil(t, MultiInvertEqSlice(nil))
		nums := nonZeroSamples(f, 87, MAXSIZE)
		inverses := make([]Element, MAXSIZE)
		for i := range nums {
			inverses[i].Inv(&nums[i])
		}
		for size := 0; size < MAXSIZE; size++ {
			numsCopy := append([]Element(nil), nums...)
			err := MultiInvertEqSlice(numsCopy[:size])
			require.Nil(t, err)
			for i := 0; i < size; i++ {
				testutils.FatalUnless(t, numsCopy[i].IsEqual(&inverses[i]), "multi-inversion differs from individual inversion")
			}

			numsCopy = append([]Element(nil), nums...)
			ptrs := make([]*Element, size)
			for i := range ptrs {
				ptrs[i] = &numsCopy[i]
			}
			require.Nil(t, MultiInvertEq(ptrs...))
			for i := 0; i < size; i++ {
				testutils.FatalUnless(t, numsCopy[i].IsEqual(&inverses[i]), "multi-inversion differs from individual inversion")
			}
		}
	})
}

func TestMultiInvertZeros(t *testing.T) {
	f := Curve25519()
	zero := f.Zero()
	err := MultiInvertEq(&zero)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	assert.Equal(t, MultiInversionErrorData{ZeroIndices: []int{0}, NumberOfZeroIndices: 1}, err.GetData())
	assert.True(t, zero.IsZero())

	nums := nonZeroSamples(f, 88, 15)
	nums[3].SetZero()
	nums[11].SetZero()
	saved := append([]Element(nil), nums...)
	err = MultiInvertEqSlice(nums)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	data := err.GetData()
	assert.Equal(t, 2, data.NumberOfZeroIndices)
	assert.True(t, utils.CompareSlices(data.ZeroIndices, []int{3, 11}))
	for i := range nums {
		assert.True(t, nums[i].IsEqual(&saved[i]), "args must be unmodified on error")
	}

	many := make([]Element, 12)
	for i := range many {
		many[i] = f.Zero()
	}
	err = MultiInvertEqSlice(many)
	require.NotNil(t, err)
	assert.Equal(t, 12, err.GetData().NumberOfZeroIndices)
	assert.Contains(t, err.Error(), "The first ten")

	zeroIndices := MultiInvertEqSliceSkipZeros(nums)
	assert.Equal(t, []int{3, 11}, zeroIndices)
	for i := range nums {
		if i == 3 || i == 11 {
			assert.True(t, nums[i].IsZero())
			continue
		}
		var prod Element
		prod.Mul(&nums[i], &saved[i])
		assert.True(t, prod.IsOne())
	}

	ones := []Element{f.One(), f.FromInt64(2)}
	assert.Nil(t, MultiInvertEqSkipZeros(&ones[0], &ones[1]))
	half := f.FromInt64(2)
	half.InvEq()
	assert.True(t, ones[1].IsEqual(&half))
}

func TestProductsAndSums(t *testing.T) {
	forAllFields(t, func(t *testing.T, f *Field) {
		xs := sampleElements(f, 89, 10)
		var expectedProd, expectedSum Element
		expectedProd = f.One()
		expectedSum = f.Zero()
		ptrs := make([]*Element, len(xs))
		for i := range xs {
			expectedProd.MulEq(&xs[i])
			expectedSum.AddEq(&xs[i])
			ptrs[i] = &xs[i]
		}
		var z Element
		z.MultiplySlice(xs)
		assert.True(t, z.IsEqual(&expectedProd))
		z.MultiplyMany(ptrs...)
		assert.True(t, z.IsEqual(&expectedProd))
		z.SummationSlice(xs)
		assert.True(t, z.IsEqual(&expectedSum))
		z.SummationMany(ptrs...)
		assert.True(t, z.IsEqual(&expectedSum))

		// receiver aliasing a factor
		aliased := append([]Element(nil), xs...)
		aliased[0].MultiplySlice(aliased)
		assert.True(t, aliased[0].IsEqual(&expectedProd))

		empty := f.FromInt64(5)
		empty.MultiplySlice(nil)
		assert.True(t, empty.IsOne())
		empty.SummationMany()
		assert.True(t, empty.IsZero())
	})
}
