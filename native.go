// native.go
//
// Natives surfaced in the global scope:
//  1. clock() -> Number   seconds elapsed since the interpreter started
//  2. str(v) -> String    canonical rendering of any value
//
// Conventions:
//   - Natives take pre-evaluated arguments, already checked for arity by the
//     call protocol; each impl only validates argument kinds.
//   - Hard failures return a *RuntimeError like any script-level error.
package tok

import (
	"time"
)

// RegisterNative installs a host function into the global scope.
func (ip *Interpreter) RegisterNative(name string, nargs int, impl func(*Interpreter, []Value) (Value, error)) {
	ip.Globals.Define(name, NativeVal(&Native{Name: name, NArgs: nargs, Impl: impl}))
}

func registerGlobals(ip *Interpreter) {
	// clock() -> Number
	// Seconds since the interpreter started, fractional.
	ip.RegisterNative("clock", 0, func(ip *Interpreter, _ []Value) (Value, error) {
		return Num(time.Since(ip.start).Seconds()), nil
	})

	// str(v) -> String
	// The same rendering print uses.
	ip.RegisterNative("str", 1, func(_ *Interpreter, args []Value) (Value, error) {
		return Str(Stringify(args[0])), nil
	})
}
