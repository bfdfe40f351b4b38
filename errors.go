// errors.go — user-facing error types and caret-snippet rendering.
//
// Every diagnostic the pipeline produces is a (line, message) pair wrapped in
// one of four concrete kinds:
//
//   - *LexError     — bad input bytes, from the scanner.
//   - *ParseError   — malformed token sequence, from the parser.
//   - *ResolveError — static misuse (self-referential initializer, stray
//     return/this/super, a class inheriting itself), from the resolver.
//   - *RuntimeError — evaluation failure carrying the offending token.
//
// The scanner, parser, and resolver collect every diagnostic they find in a
// single pass; DiagList aggregates them into one error value so a caller sees
// all of them at once. Runtime errors are fatal to the run and always occur
// alone.
//
// WrapErrorWithSource upgrades any of the above into a multi-line snippet
// with a caret under the offending column:
//
//	PARSE ERROR at 3:14: expect ')' after expression
//
//	   2 | var x = 1;
//	   3 | print (x + 1;
//	     |              ^
//	   4 | x = 2;
//
// Errors of other types pass through unchanged. Output is plain text; the CLI
// decides about color.
package tok

import (
	"fmt"
	"strings"
)

type LexError struct {
	Line int
	Col  int
	Msg  string

	// AtEOF is set when the error is running out of input, e.g. an
	// unterminated string. The REPL uses it to keep reading lines.
	AtEOF bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

type ParseError struct {
	Line int
	Col  int
	Msg  string

	// AtEOF is set when the offending token was end of input.
	AtEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

type ResolveError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("RESOLVE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// RuntimeError aborts the in-progress run. Tok identifies the source position
// blamed for the failure.
type RuntimeError struct {
	Tok Token
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Tok.Line, e.Tok.Col+1, e.Msg)
}

// DiagList aggregates the diagnostics of one scan/parse/resolve pass.
type DiagList []error

func (d DiagList) Error() string {
	msgs := make([]string, len(d))
	for i, e := range d {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// IsIncomplete reports whether err only complains about input ending too
// early, meaning more lines could still turn the text into a valid program.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.AtEOF
	case *ParseError:
		return e.AtEOF
	case DiagList:
		if len(e) == 0 {
			return false
		}
		for _, inner := range e {
			if !IsIncomplete(inner) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

/* ===========================
   Caret-snippet rendering
   =========================== */

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src. It recognizes the pipeline's error kinds (including a
// DiagList of them) and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	case *ResolveError:
		return fmt.Errorf("%s", snippet(src, "RESOLVE ERROR", e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", e.Tok.Line, e.Tok.Col+1, e.Msg))
	case DiagList:
		parts := make([]string, len(e))
		for i, inner := range e {
			parts[i] = WrapErrorWithSource(inner, src).Error()
		}
		return fmt.Errorf("%s", strings.Join(parts, "\n"))
	default:
		return err
	}
}

// snippet builds a Python-like excerpt with a header and a caret. It shows at
// most one previous and one next line when available. Coordinates are treated
// as 1-based and clamped to the source bounds.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
