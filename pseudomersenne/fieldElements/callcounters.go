package fieldElements

import "github.com/GottfriedHerold/PseudoMersenne/internal/callcounters"

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// Ids of the call counters for field operations. The counters are only active if the package is built with -tags=callcounters,
// see callcounters_active.go and callcounters_inactive.go.
var (
	CallCounterFieldOps        callcounters.Id = "FieldOps"
	CallCounterAdd             callcounters.Id = "Add"
	CallCounterSub             callcounters.Id = "Sub"
	CallCounterMul             callcounters.Id = "Mul"
	CallCounterSquare          callcounters.Id = "Square"
	CallCounterMulInt          callcounters.Id = "MulInt"
	CallCounterAddInt          callcounters.Id = "AddInt"
	CallCounterNeg             callcounters.Id = "Neg"
	CallCounterDouble          callcounters.Id = "Double"
	CallCounterNormalize       callcounters.Id = "Normalize"
	CallCounterExpensive       callcounters.Id = "Expensive"
	CallCounterInv             callcounters.Id = "Inv"
	CallCounterSqrt            callcounters.Id = "Sqrt"
	CallCounterInvSqrt         callcounters.Id = "InvSqrt"
	CallCounterLegendre        callcounters.Id = "Legendre"
	CallCounterLegendreQuartic callcounters.Id = "LegendreQuartic"
)
