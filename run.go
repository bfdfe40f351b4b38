// run.go — the front door tying the pipeline together.
//
// A Runner owns one Interpreter and feeds it programs through the full
// scan/parse/resolve chain. Static diagnostics abort before any statement
// runs, so an input either starts executing with a fully annotated tree or
// not at all. Globals persist across calls, which is what the REPL and
// embedding hosts want.
package tok

// Runner drives source text through the whole pipeline against a persistent
// global scope.
type Runner struct {
	ip *Interpreter
}

// NewRunner returns a runner with a fresh interpreter behind it.
func NewRunner() *Runner {
	return &Runner{ip: NewInterpreter()}
}

// Interpreter exposes the underlying interpreter, e.g. to redirect output or
// install extra natives before running.
func (r *Runner) Interpreter() *Interpreter { return r.ip }

// Run executes src. Scan, parse, and resolve errors come back as a DiagList
// without anything having executed; a runtime error is a single
// *RuntimeError and earlier statements keep their effects.
func (r *Runner) Run(src string) error {
	program, err := ParseSource(src)
	if err != nil {
		return err
	}
	if err := NewResolver().Resolve(program); err != nil {
		return err
	}
	return r.ip.Interpret(program)
}

// Check runs the static half of the pipeline only. The REPL uses it to
// decide whether an input needs more lines before being worth executing.
func Check(src string) error {
	program, err := ParseSource(src)
	if err != nil {
		return err
	}
	return NewResolver().Resolve(program)
}

// ExitCode maps an error from Run to the conventional process exit code:
// 65 for static (usage) errors, 70 for runtime failures, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if _, ok := err.(*RuntimeError); ok {
		return 70
	}
	return 65
}
