package tok

import (
	"strings"
	"testing"
)

// parseProgram parses src, failing the test on any diagnostic.
func parseProgram(t *testing.T, src string) []Stmt {
	t.Helper()
	program, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return program
}

// wantTree parses a single statement and compares its prefix rendering.
func wantTree(t *testing.T, src, want string) {
	t.Helper()
	program := parseProgram(t, src)
	if len(program) != 1 {
		t.Fatalf("want 1 statement, got %d for %q", len(program), src)
	}
	if got := FormatStmt(program[0]); got != want {
		t.Fatalf("tree mismatch for %q\nwant: %s\ngot:  %s", src, want, got)
	}
}

func wantParseErr(t *testing.T, src, substr string) {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("want parse error containing %q for %q, got success", substr, src)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Fatalf("want error containing %q, got %q", substr, err.Error())
	}
}

// --- precedence and associativity ------------------------------------------

func Test_Parser_Precedence_MulOverAdd(t *testing.T) {
	wantTree(t, "1 + 2 * 3;", "(expr (+ 1 (* 2 3)))")
	wantTree(t, "1 * 2 + 3;", "(expr (+ (* 1 2) 3))")
}

func Test_Parser_Associativity_LeftFold(t *testing.T) {
	wantTree(t, "1 - 2 - 3;", "(expr (- (- 1 2) 3))")
	wantTree(t, "8 / 4 / 2;", "(expr (/ (/ 8 4) 2))")
}

func Test_Parser_Unary_BindsTighterThanBinary(t *testing.T) {
	wantTree(t, "-1 * 2;", "(expr (* (- 1) 2))")
	wantTree(t, "!!true;", "(expr (! (! true)))")
	wantTree(t, "-(-1);", "(expr (- (group (- 1))))")
}

func Test_Parser_Comparison_Under_Equality(t *testing.T) {
	wantTree(t, "1 < 2 == true;", "(expr (== (< 1 2) true))")
	wantTree(t, "1 >= 2 != 3 <= 4;", "(expr (!= (>= 1 2) (<= 3 4)))")
}

func Test_Parser_Logical_OrLoosestAndTighter(t *testing.T) {
	wantTree(t, "a or b and c;", "(expr (or a (and b c)))")
	wantTree(t, "a and b or c;", "(expr (or (and a b) c))")
}

func Test_Parser_Assignment_RightAssociative(t *testing.T) {
	wantTree(t, "a = b = 1;", "(expr (= a (= b 1)))")
	wantTree(t, "a = 1 or 2;", "(expr (= a (or 1 2)))")
}

func Test_Parser_Grouping(t *testing.T) {
	wantTree(t, "(1 + 2) * 3;", "(expr (* (group (+ 1 2)) 3))")
}

func Test_Parser_Literals(t *testing.T) {
	wantTree(t, `"hi";`, `(expr "hi")`)
	wantTree(t, "nil;", "(expr nil)")
	wantTree(t, "true;", "(expr true)")
	wantTree(t, "1.5;", "(expr 1.5)")
}

// --- calls and property access ---------------------------------------------

func Test_Parser_CallChains_LeftToRight(t *testing.T) {
	wantTree(t, "f(1)(2);", "(expr (call (call f 1) 2))")
	wantTree(t, "f();", "(expr (call f))")
	wantTree(t, "f(a, b, c);", "(expr (call f a b c))")
}

func Test_Parser_PropertyAccess_And_MixedChains(t *testing.T) {
	wantTree(t, "a.b.c;", "(expr (. (. a b) c))")
	wantTree(t, "a.b(1).c;", "(expr (. (call (. a b) 1) c))")
}

func Test_Parser_AssignmentTargets(t *testing.T) {
	wantTree(t, "a.b = 1;", "(expr (=. a b 1))")
	wantTree(t, "a.b.c = 1;", "(expr (=. (. a b) c 1))")
	wantParseErr(t, "1 = 2;", "invalid assignment target")
	wantParseErr(t, "a + b = 1;", "invalid assignment target")
	wantParseErr(t, "f() = 1;", "invalid assignment target")
}

// --- statements ------------------------------------------------------------

func Test_Parser_VarDecl(t *testing.T) {
	wantTree(t, "var a;", "(var a)")
	wantTree(t, "var a = 1 + 2;", "(var a (+ 1 2))")
}

func Test_Parser_Block_Nested(t *testing.T) {
	wantTree(t, "{ var a = 1; { print a; } }", "(block (var a 1) (block (print a)))")
}

func Test_Parser_If_DanglingElse_BindsNearest(t *testing.T) {
	wantTree(t, "if (a) if (b) print 1; else print 2;",
		"(if a (if b (print 1) (print 2)))")
}

func Test_Parser_While(t *testing.T) {
	wantTree(t, "while (a) print a;", "(while a (print a))")
}

func Test_Parser_For_DesugarsToWhile(t *testing.T) {
	wantTree(t, "for (var i = 0; i < 3; i = i + 1) print i;",
		"(block (var i 0) (while (< i 3) (block (print i) (expr (= i (+ i 1))))))")
	wantTree(t, "for (;;) print 1;", "(while true (print 1))")
	wantTree(t, "for (; a;) print 1;", "(while a (print 1))")
	wantTree(t, "for (i = 0; ; i = i + 1) print i;",
		"(block (expr (= i 0)) (while true (block (print i) (expr (= i (+ i 1))))))")
}

func Test_Parser_FunDecl(t *testing.T) {
	wantTree(t, "fun f(a, b) { return a + b; }",
		"(fun f (a b) (return (+ a b)))")
	wantTree(t, "fun f() { return; }", "(fun f () (return))")
}

func Test_Parser_ClassDecl(t *testing.T) {
	wantTree(t, "class A {}", "(class A)")
	wantTree(t, "class B < A { go() { print 1; } }",
		"(class B <A (method go () (print 1)))")
	wantTree(t, "class C { init(x) { this.x = x; } }",
		"(class C (method init (x) (expr (=. this x x))))")
}

func Test_Parser_Super_RequiresDotMethod(t *testing.T) {
	wantTree(t, "class B < A { go() { super.go(); } }",
		"(class B <A (method go () (expr (call (super go)))))")
	wantParseErr(t, "class B < A { go() { super; } }", "expect '.' after 'super'")
	wantParseErr(t, "class B < A { go() { super.; } }", "expect superclass method name")
}

// --- diagnostics and recovery ----------------------------------------------

func Test_Parser_MissingSemicolon(t *testing.T) {
	wantParseErr(t, "print 1", "expect ';' after value")
	wantParseErr(t, "var a = 1", "expect ';' after variable declaration")
}

func Test_Parser_ExpectExpression_NamesTheToken(t *testing.T) {
	wantParseErr(t, "print ;", "expect expression")
	wantParseErr(t, "1 + ;", "expect expression")
}

func Test_Parser_Synchronize_CollectsMultipleErrors(t *testing.T) {
	_, err := ParseSource("var = 1;\nprint ;\nvar ok = 3;")
	if err == nil {
		t.Fatal("want parse errors, got none")
	}
	diags, ok := err.(DiagList)
	if !ok || len(diags) != 2 {
		t.Fatalf("want 2 diagnostics after recovery, got %v", err)
	}
}

func Test_Parser_Synchronize_PartialProgramSurvives(t *testing.T) {
	program, err := ParseSource("print ;\nprint 2;")
	if err == nil {
		t.Fatal("want a parse error")
	}
	if len(program) != 1 || FormatStmt(program[0]) != "(print 2)" {
		t.Fatalf("want the good statement to survive, got %v", program)
	}
}

func Test_Parser_ArgumentLimit(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	src := "f(" + strings.Join(args, ", ") + ");"
	wantParseErr(t, src, "can't have more than 255 arguments")
}

func Test_Parser_ParamLimit(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = "p" + strings.Repeat("x", i%3) // names need not be unique for the count
	}
	src := "fun f(" + strings.Join(params, ", ") + ") {}"
	wantParseErr(t, src, "can't have more than 255 parameters")
}

func Test_Parser_IncompleteInput_Detection(t *testing.T) {
	for _, src := range []string{"fun f() {", "print (1 +", "{ var a = 1;", "class A {"} {
		_, err := ParseSource(src)
		if err == nil {
			t.Fatalf("want error for %q", src)
		}
		if !IsIncomplete(err) {
			t.Fatalf("%q should read as incomplete, got %v", src, err)
		}
	}
	if _, err := ParseSource("print );"); IsIncomplete(err) {
		t.Fatalf("a mid-stream error is not incomplete input")
	}
}
