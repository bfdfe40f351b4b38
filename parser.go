// parser.go — recursive-descent parser for Tok.
//
// The parser consumes the scanner's token sequence and builds statement and
// expression nodes using one method per grammar rule:
//
//	program      -> declaration* EOF ;
//	declaration  -> classDecl | funDecl | varDecl | statement ;
//	classDecl    -> "class" IDENTIFIER ( "<" IDENTIFIER )?
//	                "{" function* "}" ;
//	funDecl      -> "fun" function ;
//	function     -> IDENTIFIER "(" parameters? ")" block ;
//	varDecl      -> "var" IDENTIFIER ( "=" expression )? ";" ;
//	statement    -> exprStmt | forStmt | ifStmt | printStmt | returnStmt
//	                | whileStmt | block ;
//	expression   -> assignment ;
//	assignment   -> ( call "." )? IDENTIFIER "=" assignment | logic_or ;
//	logic_or     -> logic_and ( "or" logic_and )* ;
//	logic_and    -> equality ( "and" equality )* ;
//	equality     -> comparison ( ( "!=" | "==" ) comparison )* ;
//	comparison   -> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
//	term         -> factor ( ( "-" | "+" ) factor )* ;
//	factor       -> unary ( ( "/" | "*" ) unary )* ;
//	unary        -> ( "!" | "-" ) unary | call ;
//	call         -> primary ( "(" arguments? ")" | "." IDENTIFIER )* ;
//	primary      -> NUMBER | STRING | "true" | "false" | "nil" | "this"
//	                | "super" "." IDENTIFIER | "(" expression ")" | IDENTIFIER ;
//
// Binary and logical levels are left-associative and built by iterative
// left-folds. "for" is desugared here into an equivalent while loop, so the
// resolver and evaluator never see it.
//
// Error recovery: a malformed statement is reported and then discarded by
// synchronize(), which skips tokens until a statement boundary (past a ";" or
// at a keyword that can start a declaration). Parsing resumes there, so a
// single pass surfaces every independent syntax error. Parse() returns the
// statements that did parse together with a DiagList of everything reported.
package tok

import "fmt"

// Parser parses a token sequence into statements.
type Parser struct {
	toks []Token
	i    int // next token to consume
	errs DiagList
}

// NewParser creates a parser over toks, which must be EOF-terminated.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// ParseSource scans and parses src in one step. Lexical and syntax errors are
// merged into a single DiagList; partial results are still returned so tools
// can inspect what did parse.
func ParseSource(src string) ([]Stmt, error) {
	toks, lexErr := NewScanner(src).Scan()
	program, parseErr := NewParser(toks).Parse()

	var all DiagList
	if lexErr != nil {
		all = append(all, lexErr.(DiagList)...)
	}
	if parseErr != nil {
		all = append(all, parseErr.(DiagList)...)
	}
	if len(all) > 0 {
		return program, all
	}
	return program, nil
}

// Parse parses the whole token sequence. On syntax errors it returns the
// successfully parsed statements and a DiagList of every error found.
func (p *Parser) Parse() ([]Stmt, error) {
	var program []Stmt
	for !p.atEnd() {
		if st := p.declaration(); st != nil {
			program = append(program, st)
		}
	}
	if len(p.errs) > 0 {
		return program, p.errs
	}
	return program, nil
}

/* ---------- token basics ---------- */

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) prev() Token { return p.toks[p.i-1] }

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tts ...TokenType) bool {
	for _, tt := range tts {
		if p.check(tt) {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of type tt or fails with a parse error at the
// current token.
func (p *Parser) need(tt TokenType, msg string) (Token, error) {
	if p.match(tt) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

// errAt builds a parse error pointing at tok without recording it; the
// declaration loop records it when the error reaches a statement boundary.
func (p *Parser) errAt(tok Token, msg string) error {
	if tok.Type == EOF {
		msg = msg + " (at end of input)"
	}
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, AtEOF: tok.Type == EOF}
}

// report records a non-fatal diagnostic and keeps parsing.
func (p *Parser) report(tok Token, msg string) {
	p.errs = append(p.errs, &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, AtEOF: tok.Type == EOF})
}

// synchronize discards tokens until the likely start of the next statement:
// just past a ";" or in front of a keyword that begins a declaration.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.prevIs(SEMICOLON) {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.i++
	}
}

func (p *Parser) prevIs(tt TokenType) bool {
	return p.i > 0 && p.toks[p.i-1].Type == tt
}

/* ---------- declarations & statements ---------- */

func (p *Parser) declaration() Stmt {
	var st Stmt
	var err error
	switch {
	case p.match(CLASS):
		st, err = p.classDecl()
	case p.match(FUN):
		st, err = p.function("function")
	case p.match(VAR):
		st, err = p.varDecl()
	default:
		st, err = p.statement()
	}
	if err != nil {
		p.errs = append(p.errs, err)
		p.synchronize()
		return nil
	}
	return st
}

func (p *Parser) classDecl() (Stmt, error) {
	name, err := p.need(ID, "expect class name")
	if err != nil {
		return nil, err
	}

	var super *Variable
	if p.match(LESS) {
		sName, err := p.need(ID, "expect superclass name")
		if err != nil {
			return nil, err
		}
		super = &Variable{Name: sName, Hops: hopsGlobal}
	}

	if _, err := p.need(LBRACE, "expect '{' before class body"); err != nil {
		return nil, err
	}
	var methods []*FunStmt
	for !p.check(RBRACE) && !p.atEnd() {
		m, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m.(*FunStmt))
	}
	if _, err := p.need(RBRACE, "expect '}' after class body"); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name, Superclass: super, Methods: methods}, nil
}

func (p *Parser) function(kind string) (Stmt, error) {
	name, err := p.need(ID, "expect "+kind+" name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expect '(' after "+kind+" name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RPAREN) {
		for {
			if len(params) >= 255 {
				p.report(p.peek(), "can't have more than 255 parameters")
			}
			param, err := p.need(ID, "expect parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expect ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, "expect '{' before "+kind+" body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDecl() (Stmt, error) {
	name, err := p.need(ID, "expect variable name")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expect ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(FOR):
		return p.forStmt()
	case p.match(IF):
		return p.ifStmt()
	case p.match(PRINT):
		return p.printStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(LBRACE):
		list, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{List: list}, nil
	}
	return p.exprStmt()
}

// forStmt desugars "for (init; cond; incr) body" into an initializer plus a
// while loop, wrapped in a block so the initializer's variable stays scoped
// to the loop.
func (p *Parser) forStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expect '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expect ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RPAREN) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RPAREN, "expect ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{List: []Stmt{body, &ExprStmt{E: incr}}}
	}
	if cond == nil {
		cond = &Literal{Value: true}
	}
	body = &WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &BlockStmt{List: []Stmt{init, body}}
	}
	return body, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expect '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expect ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) printStmt() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expect ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{E: e}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	keyword := p.prev()
	var value Expr
	var err error
	if !p.check(SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expect ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expect '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expect ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) block() ([]Stmt, error) {
	var list []Stmt
	for !p.check(RBRACE) && !p.atEnd() {
		if st := p.declaration(); st != nil {
			list = append(list, st)
		}
	}
	if _, err := p.need(RBRACE, "expect '}' after block"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expect ';' after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{E: e}, nil
}

/* ---------- expressions ---------- */

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment validates its target after parsing the value: only a plain
// variable or a property access may appear left of "=". Anything else is
// reported here, at parse time, and the left expression is kept so parsing
// continues.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(ASSIGN) {
		equals := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value, Hops: hopsGlobal}, nil
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		p.report(equals, "invalid assignment target")
	}
	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(NEQ, EQ) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(GREATER, GREATER_EQ, LESS, LESS_EQ) {
		op := p.prev()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(MINUS, PLUS) {
		op := p.prev()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(SLASH, STAR) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LPAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(DOT):
			name, err := p.need(ID, "expect property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &Get{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RPAREN) {
		for {
			if len(args) >= 255 {
				p.report(p.peek(), "can't have more than 255 arguments")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.need(RPAREN, "expect ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE):
		return &Literal{Value: false}, nil
	case p.match(TRUE):
		return &Literal{Value: true}, nil
	case p.match(NIL):
		return &Literal{Value: nil}, nil
	case p.match(NUMBER, STRING):
		return &Literal{Value: p.prev().Literal}, nil
	case p.match(THIS):
		return &This{Keyword: p.prev(), Hops: hopsGlobal}, nil
	case p.match(SUPER):
		keyword := p.prev()
		if _, err := p.need(DOT, "expect '.' after 'super'"); err != nil {
			return nil, err
		}
		method, err := p.need(ID, "expect superclass method name")
		if err != nil {
			return nil, err
		}
		return &Super{Keyword: keyword, Method: method, Hops: hopsGlobal}, nil
	case p.match(ID):
		return &Variable{Name: p.prev(), Hops: hopsGlobal}, nil
	case p.match(LPAREN):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expect ')' after expression"); err != nil {
			return nil, err
		}
		return &Grouping{Inner: inner}, nil
	}
	return nil, p.errAt(p.peek(), fmt.Sprintf("expect expression, got %s", p.peek()))
}
