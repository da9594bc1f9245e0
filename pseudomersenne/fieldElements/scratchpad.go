package fieldElements

import (
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/exponents"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// Scratchpad holds the temporaries needed by exponentiation-based operations
// (inversion, square roots, Legendre symbols): the table of odd powers and the running accumulator.
//
// The zero value is ready to use and a Scratchpad can be used with any field. It is not safe for concurrent use;
// give every goroutine its own Scratchpad. The methods on *Element that need a Scratchpad use a temporary one on the stack,
// so a Scratchpad only needs to be managed explicitly to reuse it across many calls.
type Scratchpad struct {
	table [1 << (common.MaxChainWindow - 1)]digitVector
	acc   digitVector
	tmp   digitVector
}

// exp sets out = x^e, where e is the exponent of the given chain. The sequence of operations depends only on the chain.
func (s *Scratchpad) exp(l *digitLayout, out, x *digitVector, chain *exponents.Chain) {
	tableSize := chain.TableSize()
	s.table[0] = *x
	if tableSize > 1 {
		l.squareDigits(&s.tmp, x)
		for j := 1; j < tableSize; j++ {
			l.mulDigits(&s.table[j], &s.table[j-1], &s.tmp)
		}
	}
	s.acc = s.table[chain.Start()]
	for _, step := range chain.Steps() {
		for i := 0; i < step.Squarings; i++ {
			l.squareDigits(&s.acc, &s.acc)
		}
		if step.Multiplier != exponents.NoMultiplication {
			l.mulDigits(&s.acc, &s.acc, &s.table[step.Multiplier])
		}
	}
	*out = s.acc
}

// Clear overwrites all temporaries with zeros.
func (s *Scratchpad) Clear() {
	*s = Scratchpad{}
}
