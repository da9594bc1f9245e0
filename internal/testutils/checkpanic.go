package testutils

import (
	"fmt"
	"reflect"
	"strings"
)

// CheckPanic runs fun(args...), recovers any panic and reports whether a panic occurred.
//
// Panics that originate from the reflect package (i.e. from calling CheckPanic with arguments that do not match fun)
// are re-raised, so that misuse of CheckPanic in a test does not look like an expected panic.
func CheckPanic(fun any, args ...any) (didPanic bool) {
	didPanic, _ = CheckPanicValue(fun, args...)
	return
}

// CheckPanicValue is like [CheckPanic], but also returns the argument that was passed to panic.
func CheckPanicValue(fun any, args ...any) (didPanic bool, panicValue any) {
	funValue := reflect.ValueOf(fun)
	if funValue.Kind() != reflect.Func {
		panic("pseudomersenne / testutils: first argument of CheckPanic must be a function")
	}
	argValues := make([]reflect.Value, len(args))
	for i, arg := range args {
		argValues[i] = reflect.ValueOf(arg)
	}
	didPanic = true
	defer func() {
		panicValue = recover()
		if !didPanic {
			return
		}
		var message string
		switch v := panicValue.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		case fmt.Stringer:
			message = v.String()
		}
		// reflect's panic messages start with the package name.
		if strings.HasPrefix(message, "reflect") {
			panic(panicValue)
		}
	}()
	funValue.Call(argValues)
	didPanic = false
	return
}
