//go:build !callcounters

package fieldElements

import (
	"testing"

	"github.com/GottfriedHerold/PseudoMersenne/internal/callcounters"
)

// This file is part of the fieldElements package. See the documentation of field_element.go for general remarks.

// This file contains no-op versions of the call counter functions, so counting has no runtime impact unless
// the package is built with -tags=callcounters.

// CallCountersActive is a constant whose value depends on build flags;
// it is true if call counters are active, which means we count the number of calls to field operations.
const CallCountersActive = false

func incrementCallCounter(*Field, callcounters.Id) {}

// BenchmarkWithCallCounters stops the benchmark timing and includes call counters in the report as custom metrics.
// It is a no-op if call counters are inactive.
func BenchmarkWithCallCounters(b *testing.B) {}
