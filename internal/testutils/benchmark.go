package testutils

import (
	"sync"
	"testing"
)

var dump struct {
	m sync.Mutex
	x any
}

// MakeVariableEscape(b, &x) registers a cleanup function that stores &x in a global variable.
// This prevents the compiler from optimizing away the writes to x that a benchmark is meant to measure.
func MakeVariableEscape[T any](b *testing.B, arg *T) {
	b.Cleanup(func() {
		dump.m.Lock()
		dump.x = arg
		dump.m.Unlock()
	})
}
