package tok

import "testing"

func Test_Stringify_Numbers_DropIntegralFraction(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-3, "-3"},
		{3.5, "3.5"},
		{0.25, "0.25"},
		{1234567, "1.234567e+06"},
		{1e7, "1e+07"},
		{1e21, "1e+21"},
	}
	for _, c := range cases {
		if got := Stringify(Num(c.in)); got != c.want {
			t.Fatalf("Stringify(%v): want %q, got %q", c.in, c.want, got)
		}
	}
}

func Test_Stringify_PrimitivesAndNil(t *testing.T) {
	if got := Stringify(Nil); got != "nil" {
		t.Fatalf("nil: got %q", got)
	}
	if got := Stringify(Bool(true)); got != "true" {
		t.Fatalf("true: got %q", got)
	}
	if got := Stringify(Bool(false)); got != "false" {
		t.Fatalf("false: got %q", got)
	}
	// strings render raw, no quotes
	if got := Stringify(Str("hi")); got != "hi" {
		t.Fatalf("string: got %q", got)
	}
}

func Test_Stringify_CallablesAndObjects(t *testing.T) {
	fn := &Fun{Decl: &FunStmt{Name: Token{Type: ID, Lexeme: "f"}}}
	if got := Stringify(FunVal(fn)); got != "<fn f>" {
		t.Fatalf("fn: got %q", got)
	}
	if got := Stringify(NativeVal(&Native{Name: "clock"})); got != "<native fn>" {
		t.Fatalf("native: got %q", got)
	}
	c := &Class{Name: "Box"}
	if got := Stringify(ClassVal(c)); got != "Box" {
		t.Fatalf("class: got %q", got)
	}
	if got := Stringify(InstanceVal(NewInstance(c))); got != "Box instance" {
		t.Fatalf("instance: got %q", got)
	}
}

func Test_FormatExpr_QuotesStringLiterals(t *testing.T) {
	program := parseProgram(t, `print "a b";`)
	if got := FormatStmt(program[0]); got != `(print "a b")` {
		t.Fatalf("got %q", got)
	}
}
