package tok

import (
	"strings"
	"testing"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewScanner(src).Scan()
	if err != nil {
		t.Fatalf("scan error for %q: %v", src, err)
	}
	return toks
}

func wantTypes(t *testing.T, toks []Token, types ...TokenType) {
	t.Helper()
	if len(toks) != len(types) {
		t.Fatalf("want %d tokens, got %d: %v", len(types), len(toks), toks)
	}
	for i, tt := range types {
		if toks[i].Type != tt {
			t.Fatalf("token %d: want type %d, got %d (%q)", i, tt, toks[i].Type, toks[i].Lexeme)
		}
	}
}

func Test_Scanner_EmptySource_YieldsEOF(t *testing.T) {
	wantTypes(t, scanAll(t, ""), EOF)
	wantTypes(t, scanAll(t, "   \n\t  "), EOF)
}

func Test_Scanner_Punctuation_And_Operators(t *testing.T) {
	toks := scanAll(t, "(){},.;+-*/")
	wantTypes(t, toks, LPAREN, RPAREN, LBRACE, RBRACE, COMMA, DOT, SEMICOLON, PLUS, MINUS, STAR, SLASH, EOF)
}

func Test_Scanner_TwoCharOperators_MaximalMunch(t *testing.T) {
	toks := scanAll(t, "= == ! != < <= > >=")
	wantTypes(t, toks, ASSIGN, EQ, BANG, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ, EOF)
	// adjacent without spaces munches the same way
	toks = scanAll(t, "===")
	wantTypes(t, toks, EQ, ASSIGN, EOF)
}

func Test_Scanner_Numbers(t *testing.T) {
	toks := scanAll(t, "12 12.5 0.25")
	wantTypes(t, toks, NUMBER, NUMBER, NUMBER, EOF)
	if toks[0].Literal.(float64) != 12 || toks[1].Literal.(float64) != 12.5 || toks[2].Literal.(float64) != 0.25 {
		t.Fatalf("number literals wrong: %v", toks)
	}
}

func Test_Scanner_Number_TrailingDot_IsDotToken(t *testing.T) {
	// "12." is NUMBER then DOT, never a fractional number
	toks := scanAll(t, "12.foo")
	wantTypes(t, toks, NUMBER, DOT, ID, EOF)
	if toks[0].Literal.(float64) != 12 {
		t.Fatalf("want 12, got %v", toks[0].Literal)
	}
}

func Test_Scanner_Strings_MultilineNoEscapes(t *testing.T) {
	toks := scanAll(t, "\"hello\nworld\"")
	wantTypes(t, toks, STRING, EOF)
	if toks[0].Literal.(string) != "hello\nworld" {
		t.Fatalf("want raw multiline content, got %q", toks[0].Literal)
	}
	// backslash is an ordinary character
	toks = scanAll(t, `"a\nb"`)
	if toks[0].Literal.(string) != `a\nb` {
		t.Fatalf("escapes must not decode, got %q", toks[0].Literal)
	}
}

func Test_Scanner_UnterminatedString(t *testing.T) {
	_, err := NewScanner(`"never closed`).Scan()
	if err == nil || !strings.Contains(err.Error(), "unterminated string") {
		t.Fatalf("want unterminated string error, got %v", err)
	}
	if !IsIncomplete(err) {
		t.Fatalf("unterminated string should read as incomplete input")
	}
}

func Test_Scanner_KeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll(t, "class classy var x if iffy")
	wantTypes(t, toks, CLASS, ID, VAR, ID, IF, ID, EOF)
}

func Test_Scanner_LineComments_SkipToNewline(t *testing.T) {
	toks := scanAll(t, "1 // the rest is ignored ;;;\n2")
	wantTypes(t, toks, NUMBER, NUMBER, EOF)
	if toks[1].Line != 2 {
		t.Fatalf("token after comment should be on line 2, got %d", toks[1].Line)
	}
}

func Test_Scanner_Positions(t *testing.T) {
	toks := scanAll(t, "ab\n  cd")
	if toks[0].Line != 1 || toks[0].Col != 0 {
		t.Fatalf("ab: want 1:0, got %d:%d", toks[0].Line, toks[0].Col)
	}
	if toks[1].Line != 2 || toks[1].Col != 2 {
		t.Fatalf("cd: want 2:2, got %d:%d", toks[1].Line, toks[1].Col)
	}
}

func Test_Scanner_BadCharacter_ReportedAndRecovered(t *testing.T) {
	toks, err := NewScanner("1 @ # 2").Scan()
	if err == nil {
		t.Fatal("want lexical errors, got none")
	}
	diags, ok := err.(DiagList)
	if !ok || len(diags) != 2 {
		t.Fatalf("want 2 diagnostics, got %v", err)
	}
	// scanning continued past the bad bytes
	wantTypes(t, toks, NUMBER, NUMBER, EOF)
}
