//go:build callcounters

package fieldElements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GottfriedHerold/PseudoMersenne/internal/callcounters"
)

func TestCallCounters(t *testing.T) {
	callcounters.ResetAllCounters()
	f := M221()
	x, y := f.FromInt64(3), f.FromInt64(5)
	var z Element
	z.Mul(&x, &y)
	z.Mul(&z, &y)
	z.Add(&x, &y)
	z.Inv(&x)
	z.Neg(&x)
	z.Double(&z)
	z.AddInt(&z, 2)

	assert.Equal(t, 2, CallCounterMul.Count(f.Name()))
	assert.Equal(t, 1, CallCounterAdd.Count(f.Name()))
	assert.Equal(t, 1, CallCounterInv.Count(f.Name()))
	assert.Equal(t, 1, CallCounterExpensive.Count(f.Name()))
	assert.Equal(t, 1, CallCounterNeg.Count(f.Name()))
	assert.Equal(t, 1, CallCounterDouble.Count(f.Name()))
	assert.Equal(t, 1, CallCounterAddInt.Count(f.Name()))
	assert.Equal(t, 7, CallCounterFieldOps.Count(f.Name()))
	assert.Zero(t, CallCounterMul.Count(Curve25519().Name()))
}
