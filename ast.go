// ast.go — syntax tree for Tok.
//
// Expressions and statements are two sealed sums: one struct per grammar
// production, discriminated by exhaustive type switches in the resolver and
// the interpreter. Nodes are immutable after parsing except for the Hops
// annotation slots, which the resolver fills in before execution.
package tok

// hopsGlobal marks a variable-like reference that was not found in any
// enclosing lexical scope and must be looked up by name in the globals.
const hopsGlobal = -1

// Expr is the expression sum. Implementations: *Literal, *Grouping, *Unary,
// *Binary, *Logical, *Variable, *Assign, *Call, *Get, *Set, *This, *Super.
type Expr interface{ exprNode() }

// Stmt is the statement sum. Implementations: *ExprStmt, *PrintStmt,
// *VarStmt, *BlockStmt, *IfStmt, *WhileStmt, *FunStmt, *ReturnStmt,
// *ClassStmt.
type Stmt interface{ stmtNode() }

/* ---------- expressions ---------- */

// Literal holds a number (float64), string, bool, or nil.
type Literal struct {
	Value interface{}
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Op      Token // "!" or "-"
	Operand Expr
}

type Binary struct {
	Op          Token
	Left, Right Expr
}

// Logical is "and"/"or"; unlike Binary the right operand may never evaluate.
type Logical struct {
	Op          Token
	Left, Right Expr
}

type Variable struct {
	Name Token
	Hops int // filled by the resolver; hopsGlobal until then
}

type Assign struct {
	Name  Token
	Value Expr
	Hops  int
}

type Call struct {
	Callee Expr
	Paren  Token // closing ")", blamed for call-site errors
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   Token
}

type Set struct {
	Object Expr
	Name   Token
	Value  Expr
}

type This struct {
	Keyword Token
	Hops    int
}

type Super struct {
	Keyword Token
	Method  Token
	Hops    int
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

/* ---------- statements ---------- */

type ExprStmt struct {
	E Expr
}

type PrintStmt struct {
	E Expr
}

// VarStmt declares a variable; Init may be nil (the variable starts as nil).
type VarStmt struct {
	Name Token
	Init Expr
}

type BlockStmt struct {
	List []Stmt
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type FunStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt carries the "return" token for diagnostics; Value may be nil.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

// ClassStmt's Superclass is a *Variable so the resolver can annotate it and
// the evaluator can resolve it like any other reference; nil when the class
// has no superclass.
type ClassStmt struct {
	Name       Token
	Superclass *Variable
	Methods    []*FunStmt
}

func (*ExprStmt) stmtNode()   {}
func (*PrintStmt) stmtNode()  {}
func (*VarStmt) stmtNode()    {}
func (*BlockStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*FunStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*ClassStmt) stmtNode()  {}
