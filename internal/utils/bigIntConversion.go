package utils

import (
	"fmt"
	"math/big"
)

const ErrorPrefix = "pseudomersenne / internal / utils: "

// InitIntFromString initializes a *big.Int from a string literal.
// It understands exactly the formats of big.Int's SetString with base 0, i.e. the input may be decimal or prefixed hex, octal or binary.
// Underscores are allowed as digit separators in prefixed form.
//
// This function panics on failure, which is appropriate for its use case:
// It is supposed to be used to initialize package-level variables from constant literals.
func InitIntFromString(input string) *big.Int {
	t, success := new(big.Int).SetString(input, 0)
	if !success {
		panic(fmt.Errorf(ErrorPrefix+"String %v used to initialize big.Int was not recognized as a valid number", input))
	}
	return t
}

// PseudoMersenne returns 2^n - c as a new *big.Int.
func PseudoMersenne(n uint, c uint64) *big.Int {
	ret := new(big.Int).Lsh(big.NewInt(1), n)
	return ret.Sub(ret, new(big.Int).SetUint64(c))
}

// CeilDiv returns ceil(a/b) for b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
