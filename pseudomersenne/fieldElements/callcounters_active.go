//go:build callcounters

package fieldElements

import (
	"testing"

	"github.com/GottfriedHerold/PseudoMersenne/internal/callcounters"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file is only compiled with -tags=callcounters, otherwise callcounters_inactive.go is used.

// CallCountersActive is a constant whose value depends on build flags;
// it is true if call counters are active, which means we count the number of calls to field operations.
const CallCountersActive = true

func init() {
	callcounters.CreateCallCounter(CallCounterFieldOps, "Field operations", "")
	for _, id := range []callcounters.Id{CallCounterAdd, CallCounterSub, CallCounterMul, CallCounterSquare, CallCounterMulInt, CallCounterAddInt, CallCounterNeg, CallCounterDouble, CallCounterNormalize} {
		callcounters.CreateCallCounter(id, "", CallCounterFieldOps)
	}
	callcounters.CreateCallCounter(CallCounterExpensive, "Exponentiations", CallCounterFieldOps)
	for _, id := range []callcounters.Id{CallCounterInv, CallCounterSqrt, CallCounterInvSqrt, CallCounterLegendre, CallCounterLegendreQuartic} {
		callcounters.CreateCallCounter(id, "", CallCounterExpensive)
	}
}

func incrementCallCounter(f *Field, id callcounters.Id) {
	id.Increment(f.params.Name)
}

// BenchmarkWithCallCounters stops the benchmark timing and includes call counters in the report as custom metrics.
func BenchmarkWithCallCounters(b *testing.B) {
	b.StopTimer()
	for _, item := range callcounters.Report(true, false) {
		b.ReportMetric(float64(item.Calls)/float64(b.N), item.Field+"/"+item.Tag+"/op")
	}
}
