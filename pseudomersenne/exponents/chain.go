package exponents

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/mmcloughlin/addchain"
	"github.com/mmcloughlin/addchain/alg"
	"github.com/pkg/errors"

	"github.com/GottfriedHerold/PseudoMersenne/pseudomersenne/common"
)

// This file contains a compiler that turns a fixed exponent into a static list of
// "square s times, then multiply by a precomputed odd power" steps.
//
// The compiled chain is then evaluated by the field element code without ever looking at the bits of the exponent at runtime.
// We use a left-to-right sliding window method: The table contains x^1, x^3, x^5, ..., x^(2*TableSize-1).
// Alongside the compact step list, we build the corresponding [addchain.Program], which serves both as a
// correctness check (its evaluation must end in the exponent) and to count the operations.

const ErrorPrefix = "pseudomersenne / exponents: "

var (
	ErrInvalidExponent = errors.New(ErrorPrefix + "exponent must be positive")
	ErrInvalidWindow   = errors.New(ErrorPrefix + "invalid window size")
)

// NoMultiplication is used as [Step.Multiplier] for a trailing step that only squares.
const NoMultiplication = -1

// Step is a single step of a compiled exponentiation chain:
// The accumulator is squared Squarings many times and then multiplied by table entry Multiplier (i.e. by x^(2*Multiplier+1)),
// unless Multiplier == NoMultiplication.
type Step struct {
	Squarings  int
	Multiplier int
}

// Chain is a compiled exponentiation chain for a fixed exponent.
//
// Chains are immutable after creation and may be shared between goroutines.
type Chain struct {
	name      string
	exponent  *big.Int
	window    uint
	start     int
	steps     []Step
	tableSize int
	program   addchain.Program
}

// Compile compiles the exponent e into a chain using a sliding window of the given size.
// The name is only used for error messages, logging and String().
//
// e must be positive and window must be in [1, common.MaxChainWindow].
func Compile(name string, e *big.Int, window uint) (*Chain, error) {
	if e == nil || e.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidExponent, "chain %v: got %v", name, e)
	}
	if window == 0 || window > common.MaxChainWindow {
		return nil, errors.Wrapf(ErrInvalidWindow, "chain %v: window %v is not in [1, %v]", name, window, common.MaxChainWindow)
	}

	c := Chain{name: name, exponent: new(big.Int).Set(e), window: window, start: -1}

	// Process the bits from the most significant one downwards. Every window starts and ends with a 1 bit.
	pendingSquarings := 0
	for i := e.BitLen() - 1; i >= 0; {
		if e.Bit(i) == 0 {
			pendingSquarings++
			i--
			continue
		}
		low := i - int(window) + 1
		if low < 0 {
			low = 0
		}
		for e.Bit(low) == 0 {
			low++
		}
		var windowValue uint
		for j := i; j >= low; j-- {
			windowValue = windowValue<<1 | e.Bit(j)
		}
		index := int(windowValue >> 1)
		if c.start < 0 {
			c.start = index
		} else {
			c.steps = append(c.steps, Step{Squarings: pendingSquarings + i - low + 1, Multiplier: index})
		}
		if index+1 > c.tableSize {
			c.tableSize = index + 1
		}
		pendingSquarings = 0
		i = low - 1
	}
	if pendingSquarings > 0 {
		c.steps = append(c.steps, Step{Squarings: pendingSquarings, Multiplier: NoMultiplication})
	}

	if err := c.buildProgram(); err != nil {
		return nil, errors.Wrapf(err, ErrorPrefix+"internal error while building program for chain %v", name)
	}
	if end := c.program.Evaluate().End(); end.Cmp(e) != 0 {
		panic(fmt.Sprintf(ErrorPrefix+"compiled chain %v evaluates to %v instead of %v", name, end, e))
	}
	return &c, nil
}

// buildProgram records the operations of c as an addchain.Program.
// Index 0 of the program corresponds to x itself.
func (c *Chain) buildProgram() (err error) {
	var program addchain.Program
	table := make([]int, c.tableSize)
	if c.tableSize > 1 {
		var square int
		if square, err = program.Double(0); err != nil {
			return
		}
		for j := 1; j < c.tableSize; j++ {
			if table[j], err = program.Add(table[j-1], square); err != nil {
				return
			}
		}
	}
	acc := table[c.start]
	for _, step := range c.steps {
		if acc, err = program.Shift(acc, uint(step.Squarings)); err != nil {
			return
		}
		if step.Multiplier != NoMultiplication {
			if acc, err = program.Add(acc, table[step.Multiplier]); err != nil {
				return
			}
		}
	}
	c.program = program
	return nil
}

// Name returns the name the chain was compiled with.
func (c *Chain) Name() string { return c.name }

// Exponent returns a copy of the exponent.
func (c *Chain) Exponent() *big.Int { return new(big.Int).Set(c.exponent) }

// Window returns the window size used for compilation.
func (c *Chain) Window() uint { return c.window }

// Start is the index of the table entry that the accumulator is initialized with.
func (c *Chain) Start() int { return c.start }

// Steps returns the list of steps. The caller must not modify the returned slice.
func (c *Chain) Steps() []Step { return c.steps }

// TableSize is the number of odd powers x^1, x^3, ... that need to be precomputed.
func (c *Chain) TableSize() int { return c.tableSize }

// Program returns a copy of the chain as an addchain.Program.
func (c *Chain) Program() addchain.Program {
	return append(addchain.Program(nil), c.program...)
}

// Squarings returns the total number of squarings, including table precomputation.
func (c *Chain) Squarings() int {
	return c.program.Doubles()
}

// Multiplications returns the total number of (non-squaring) multiplications, including table precomputation.
func (c *Chain) Multiplications() int {
	return c.program.Adds()
}

// Evaluate computes x^e mod modulus by following the steps of the chain, using big.Int arithmetic.
//
// This is meant for testing and diagnostics.
func (c *Chain) Evaluate(x *big.Int, modulus *big.Int) *big.Int {
	table := make([]big.Int, c.tableSize)
	table[0].Mod(x, modulus)
	if c.tableSize > 1 {
		var square big.Int
		square.Mul(&table[0], &table[0])
		square.Mod(&square, modulus)
		for j := 1; j < c.tableSize; j++ {
			table[j].Mul(&table[j-1], &square)
			table[j].Mod(&table[j], modulus)
		}
	}
	acc := new(big.Int).Set(&table[c.start])
	for _, step := range c.steps {
		for i := 0; i < step.Squarings; i++ {
			acc.Mul(acc, acc)
			acc.Mod(acc, modulus)
		}
		if step.Multiplier != NoMultiplication {
			acc.Mul(acc, &table[step.Multiplier])
			acc.Mod(acc, modulus)
		}
	}
	return acc
}

// String gives a compact description of the chain, e.g. "inverse: x^5 [5S*x^3] [2S] (table 2, 8S+2M)"
func (c *Chain) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: x^%v", c.name, 2*c.start+1)
	for _, step := range c.steps {
		if step.Multiplier == NoMultiplication {
			fmt.Fprintf(&b, " [%vS]", step.Squarings)
		} else {
			fmt.Fprintf(&b, " [%vS*x^%v]", step.Squarings, 2*step.Multiplier+1)
		}
	}
	fmt.Fprintf(&b, " (table %v, %vS+%vM)", c.tableSize, c.Squarings(), c.Multiplications())
	return b.String()
}

// SlidingWindow exposes the chain compiler as an [alg.ChainAlgorithm], so it can be compared against the search algorithms of the addchain module.
type SlidingWindow struct {
	Window uint
}

var _ alg.ChainAlgorithm = SlidingWindow{}

// FindChain returns the addition chain that Compile produces for target.
//
// Values computed more than once by the compiled program (e.g. x^2 is both the table step and possibly a shift result)
// appear only once, and the chain is sorted, as required by [addchain.Chain.Program].
// Every entry is a sum of two smaller entries, so sorting keeps the chain valid.
func (s SlidingWindow) FindChain(target *big.Int) (addchain.Chain, error) {
	c, err := Compile(s.String(), target, s.Window)
	if err != nil {
		return nil, err
	}
	values := c.program.Evaluate()
	sort.Slice(values, func(i, j int) bool { return values[i].Cmp(values[j]) < 0 })
	ret := values[:1]
	for _, v := range values[1:] {
		if v.Cmp(ret[len(ret)-1]) != 0 {
			ret = append(ret, v)
		}
	}
	return ret, nil
}

func (s SlidingWindow) String() string {
	return fmt.Sprintf("sliding_window(%d)", s.Window)
}
