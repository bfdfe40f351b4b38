// scanner.go — hand-written scanner for Tok source.
//
// The scanner turns a source string into the ordered token sequence consumed
// by the parser. Tokens carry their raw lexeme, a decoded literal for NUMBER
// and STRING, and the 1-based line / 0-based column of their first byte.
// Scanning never stops at the first bad character: lexical errors are
// collected and the scan continues on the next byte, so one pass surfaces
// every problem in the input. The returned token slice is always terminated
// by an EOF token, even when errors were collected.
package tok

import (
	"fmt"
	"strconv"
)

// keywords map
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"fun":    FUN,
	"for":    FOR,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Scanner scans a Tok source string into tokens.
type Scanner struct {
	src    string
	start  int // start index of current lexeme
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token
	errs   DiagList

	// position of the current lexeme's first byte
	tokStartLine int
	tokStartCol  int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan tokenizes the entire source. The returned slice always ends with an
// EOF token. When lexical errors occurred, the returned error is a DiagList
// holding one *LexError per offending position.
func (s *Scanner) Scan() ([]Token, error) {
	for !s.isAtEnd() {
		s.start = s.cur
		s.tokStartLine = s.line
		s.tokStartCol = s.col
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Line: s.line, Col: s.col})
	if len(s.errs) > 0 {
		return s.tokens, s.errs
	}
	return s.tokens, nil
}

func (s *Scanner) isAtEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

func (s *Scanner) advance() byte {
	ch := s.src[s.cur]
	s.cur++
	if ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return ch
}

// match consumes the next byte iff it equals want.
func (s *Scanner) match(want byte) bool {
	if s.isAtEnd() || s.src[s.cur] != want {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) add(tt TokenType, lit interface{}) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.src[s.start:s.cur],
		Literal: lit,
		Line:    s.tokStartLine,
		Col:     s.tokStartCol,
	})
}

func (s *Scanner) err(msg string) {
	s.errs = append(s.errs, &LexError{Line: s.tokStartLine, Col: s.tokStartCol, Msg: msg})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (s *Scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case ' ', '\r', '\t', '\n':
		// whitespace; line counting happens in advance
	case '(':
		s.add(LPAREN, nil)
	case ')':
		s.add(RPAREN, nil)
	case '{':
		s.add(LBRACE, nil)
	case '}':
		s.add(RBRACE, nil)
	case ',':
		s.add(COMMA, nil)
	case '.':
		s.add(DOT, nil)
	case ';':
		s.add(SEMICOLON, nil)
	case '+':
		s.add(PLUS, nil)
	case '-':
		s.add(MINUS, nil)
	case '*':
		s.add(STAR, nil)
	case '/':
		if s.match('/') {
			for !s.isAtEnd() && s.peek() != '\n' {
				s.advance()
			}
		} else {
			s.add(SLASH, nil)
		}
	case '!':
		if s.match('=') {
			s.add(NEQ, nil)
		} else {
			s.add(BANG, nil)
		}
	case '=':
		if s.match('=') {
			s.add(EQ, nil)
		} else {
			s.add(ASSIGN, nil)
		}
	case '<':
		if s.match('=') {
			s.add(LESS_EQ, nil)
		} else {
			s.add(LESS, nil)
		}
	case '>':
		if s.match('=') {
			s.add(GREATER_EQ, nil)
		} else {
			s.add(GREATER, nil)
		}
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.err(fmt.Sprintf("unexpected character %q", ch))
		}
	}
}

// scanString reads a double-quoted string literal. Strings may span lines;
// there are no escape sequences.
func (s *Scanner) scanString() {
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}
	if s.isAtEnd() {
		s.errs = append(s.errs, &LexError{Line: s.tokStartLine, Col: s.tokStartCol, Msg: "unterminated string", AtEOF: true})
		return
	}
	s.advance() // closing quote
	s.add(STRING, s.src[s.start+1:s.cur-1])
}

// scanNumber reads digits with an optional fractional part. All numbers are
// float64 at runtime.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lex := s.src[s.start:s.cur]
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		s.err("invalid number literal")
		return
	}
	s.add(NUMBER, v)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNum(s.peek()) {
		s.advance()
	}
	lex := s.src[s.start:s.cur]
	if tt, ok := keywords[lex]; ok {
		s.add(tt, nil)
		return
	}
	s.add(ID, nil)
}
