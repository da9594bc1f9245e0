package fieldElements

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains field element operations that can operate on multiple field elements.
//
// For empty inputs, the receiver keeps its field and must therefore already belong to one.

// MultiplySlice sets the receiver to the product of all the given elements.
//
// An empty product results in 1. Use MultiplyMany for a variadic version.
func (z *Element) MultiplySlice(factors []Element) {
	if len(factors) == 0 {
		z.SetOne()
		return
	}
	// z may alias a factor, so we accumulate in a temporary.
	result := factors[0]
	for i := 1; i < len(factors); i++ {
		result.MulEq(&factors[i])
	}
	*z = result
}

// MultiplyMany sets the receiver to the product of the factors.
//
// An empty product results in 1. Use MultiplySlice if the factors are stored in a slice.
func (z *Element) MultiplyMany(factors ...*Element) {
	if len(factors) == 0 {
		z.SetOne()
		return
	}
	result := *factors[0]
	for i := 1; i < len(factors); i++ {
		result.MulEq(factors[i])
	}
	*z = result
}

// SummationSlice sets the receiver to the sum of the summands.
//
// An empty sum results in 0. Use SummationMany for a variadic version.
func (z *Element) SummationSlice(summands []Element) {
	if len(summands) == 0 {
		z.SetZero()
		return
	}
	result := summands[0]
	for i := 1; i < len(summands); i++ {
		result.AddEq(&summands[i])
	}
	*z = result
}

// SummationMany sets the receiver to the sum of the summands.
//
// An empty sum results in 0. Use SummationSlice if the summands are stored in a slice.
func (z *Element) SummationMany(summands ...*Element) {
	if len(summands) == 0 {
		z.SetZero()
		return
	}
	result := *summands[0]
	for i := 1; i < len(summands); i++ {
		result.AddEq(summands[i])
	}
	*z = result
}

// MultiInvertEq replaces every argument by its multiplicative inverse, using a single field inversion.
// If any arguments are zero, it returns a MultiInversionError wrapping ErrDivisionByZero without modifying any of the args.
// The error's data tells which and how many args were zero.
//
// Use MultiInvertEqSlice if the arguments are contained in a slice. The behaviour is unspecified if args alias.
func MultiInvertEq(args ...*Element) MultiInversionError {
	L := len(args)
	if L == 0 {
		return nil
	}
	if L == 1 {
		if args[0].IsZero() {
			return generateMultiDivisionByZeroError(args, ErrorPrefix+"division by zero when calling MultiInvertEq on single element")
		}
		args[0].InvEq()
		return nil
	}

	// Montgomery's trick: with P_i = args[0] * ... * args[i], we have
	// 1/args[i] = P_{i-1} / P_i and 1/P_{i-1} = args[i] / P_i. So inverting P_{L-1} is enough.
	productOfFirstN := make([]Element, L-1)
	// productOfFirstN[i] == args[0] * ... * args[i+1]
	productOfFirstN[0].Mul(args[0], args[1])
	for i := 1; i < L-1; i++ {
		productOfFirstN[i].Mul(&productOfFirstN[i-1], args[i+1])
	}

	if productOfFirstN[L-2].IsZero() {
		return generateMultiDivisionByZeroError(args, ErrorPrefix+"division by zero when calling MultiInvertEq")
	}

	var temp1, temp2 Element
	temp1.Inv(&productOfFirstN[L-2])
	for i := L - 1; i >= 2; i-- {
		// temp1 == 1 / (args[0] * ... * args[i])
		temp2.Mul(&temp1, args[i])
		args[i].Mul(&temp1, &productOfFirstN[i-2])
		temp1 = temp2
	}
	// temp1 == 1 / (args[0] * args[1])
	temp2.Mul(&temp1, args[0])
	args[0].Mul(&temp1, args[1])
	*args[1] = temp2
	return nil
}

// MultiInvertEqSlice replaces every element in args by its multiplicative inverse. See [MultiInvertEq].
func MultiInvertEqSlice(args []Element) MultiInversionError {
	ptrs := make([]*Element, len(args))
	for i := range args {
		ptrs[i] = &args[i]
	}
	return MultiInvertEq(ptrs...)
}

// MultiInvertEqSkipZeros replaces every non-zero argument by its multiplicative inverse; zero arguments are unmodified.
//
// The returned zeroIndices is nil if none of the args were zero. Otherwise, it lists the 0-based indices of the zero args.
func MultiInvertEqSkipZeros(args ...*Element) (zeroIndices []int) {
	nonZero := make([]*Element, 0, len(args))
	for i, arg := range args {
		if arg.IsZero() {
			zeroIndices = append(zeroIndices, i)
			continue
		}
		nonZero = append(nonZero, arg)
	}
	if err := MultiInvertEq(nonZero...); err != nil {
		panic(ErrorPrefix + "internal error: division by zero, even though zero field elements were skipped")
	}
	return
}

// MultiInvertEqSliceSkipZeros is like [MultiInvertEqSkipZeros] for elements contained in a slice.
func MultiInvertEqSliceSkipZeros(args []Element) (zeroIndices []int) {
	ptrs := make([]*Element, len(args))
	for i := range args {
		ptrs[i] = &args[i]
	}
	return MultiInvertEqSkipZeros(ptrs...)
}
