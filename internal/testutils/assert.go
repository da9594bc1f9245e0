package testutils

import (
	"runtime/debug"
	"testing"
)

// This package contains helpers that are used by tests of multiple packages.
// It must only import the standard library and third-party packages, never our own packages.

// Assert(condition) panics if condition is false; Assert(condition, err) panics with err if condition is false.
func Assert(condition bool, err ...any) {
	if len(err) > 1 {
		panic("pseudomersenne / testutils: Assert can only handle 1 extra error argument")
	}
	if !condition {
		if len(err) == 0 {
			panic("pseudomersenne / testutils: assertion failure")
		}
		panic(err[0])
	}
}

// FatalUnless calls t.Fatalf(formatstring, args...) unless condition holds. It also prints the stack trace, which
// makes it easier to locate failures inside loops over fields and samples.
func FatalUnless(t testing.TB, condition bool, formatstring string, args ...any) {
	t.Helper()
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}
