// printer.go — canonical rendering of values and syntax trees.
package tok

import (
	"fmt"
	"strconv"
	"strings"
)

// Stringify renders a value the way the print statement shows it. Numbers
// drop an integral trailing ".0"; strings come out raw, without quotes.
func Stringify(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTFun:
		return "<fn " + v.Data.(*Fun).Decl.Name.Lexeme + ">"
	case VTNative:
		return "<native fn>"
	case VTClass:
		return v.Data.(*Class).Name
	case VTInstance:
		return v.Data.(*Instance).Class.Name + " instance"
	}
	return "nil"
}

// FormatExpr renders an expression as a parenthesized prefix form, making
// the parser's grouping decisions visible. Literals render via Stringify so
// the two notations agree on atoms.
func FormatExpr(e Expr) string {
	switch x := e.(type) {
	case *Literal:
		if s, ok := x.Value.(string); ok {
			return strconv.Quote(s)
		}
		return Stringify(literalValue(x.Value))
	case *Grouping:
		return sexpr("group", FormatExpr(x.Inner))
	case *Unary:
		return sexpr(x.Op.Lexeme, FormatExpr(x.Operand))
	case *Binary:
		return sexpr(x.Op.Lexeme, FormatExpr(x.Left), FormatExpr(x.Right))
	case *Logical:
		return sexpr(x.Op.Lexeme, FormatExpr(x.Left), FormatExpr(x.Right))
	case *Variable:
		return x.Name.Lexeme
	case *Assign:
		return sexpr("=", x.Name.Lexeme, FormatExpr(x.Value))
	case *Call:
		parts := []string{"call", FormatExpr(x.Callee)}
		for _, a := range x.Args {
			parts = append(parts, FormatExpr(a))
		}
		return sexpr(parts...)
	case *Get:
		return sexpr(".", FormatExpr(x.Object), x.Name.Lexeme)
	case *Set:
		return sexpr("=.", FormatExpr(x.Object), x.Name.Lexeme, FormatExpr(x.Value))
	case *This:
		return "this"
	case *Super:
		return sexpr("super", x.Method.Lexeme)
	}
	return "?"
}

// FormatStmt renders a statement in the same prefix notation.
func FormatStmt(st Stmt) string {
	switch s := st.(type) {
	case *ExprStmt:
		return sexpr("expr", FormatExpr(s.E))
	case *PrintStmt:
		return sexpr("print", FormatExpr(s.E))
	case *VarStmt:
		if s.Init == nil {
			return sexpr("var", s.Name.Lexeme)
		}
		return sexpr("var", s.Name.Lexeme, FormatExpr(s.Init))
	case *BlockStmt:
		parts := []string{"block"}
		for _, inner := range s.List {
			parts = append(parts, FormatStmt(inner))
		}
		return sexpr(parts...)
	case *IfStmt:
		if s.Else == nil {
			return sexpr("if", FormatExpr(s.Cond), FormatStmt(s.Then))
		}
		return sexpr("if", FormatExpr(s.Cond), FormatStmt(s.Then), FormatStmt(s.Else))
	case *WhileStmt:
		return sexpr("while", FormatExpr(s.Cond), FormatStmt(s.Body))
	case *FunStmt:
		return formatFun("fun", s)
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return sexpr("return", FormatExpr(s.Value))
	case *ClassStmt:
		parts := []string{"class", s.Name.Lexeme}
		if s.Superclass != nil {
			parts = append(parts, "<"+s.Superclass.Name.Lexeme)
		}
		for _, m := range s.Methods {
			parts = append(parts, formatFun("method", m))
		}
		return sexpr(parts...)
	}
	return "?"
}

func formatFun(kind string, f *FunStmt) string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	parts := []string{kind, f.Name.Lexeme, "(" + strings.Join(names, " ") + ")"}
	for _, st := range f.Body {
		parts = append(parts, FormatStmt(st))
	}
	return sexpr(parts...)
}

func sexpr(parts ...string) string {
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}
