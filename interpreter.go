// interpreter.go — the tree-walking evaluator for Tok.
//
// OVERVIEW
// --------
// The Interpreter executes a resolved program: statement execution is one
// exhaustive type switch (exec), expression evaluation another (eval), and
// the host call stack mirrors the tree's nesting. Scoping is the Env chain
// from env.go; resolved references address their frame by the hop count the
// resolver stored on the node, unresolved ones go by name to the globals.
//
// Control flow is explicit in the signatures:
//
//   - Statements return (control, error). A control with returning set is
//     the Return signal: it unwinds ordinary statement sequencing until a
//     Callable's Call consumes it at the function boundary. It can never
//     escape to top level because the resolver rejects stray returns.
//   - Expressions return (Value, error). The only error kind produced here
//     is *RuntimeError, carrying the token blamed for the failure. There is
//     no panic-based signaling anywhere in the evaluator.
//
// The call protocol (Fun.Call) parents the new frame at the function's
// captured closure, never at the caller's environment; that single choice is
// what makes scoping lexical rather than dynamic. Class calls allocate an
// instance and delegate to a bound "init" when the class chain has one; the
// call's result is always the fresh instance, whatever init returns.
//
// A RuntimeError aborts the in-progress Interpret run and is reported once
// by the driver. The interpreter itself stays usable afterwards, which is
// what lets the REPL keep its globals across failed inputs.
package tok

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Interpreter evaluates resolved programs over a persistent global scope.
type Interpreter struct {
	// Globals is the outermost frame, pre-seeded with the native functions
	// and shared by every run of this interpreter.
	Globals *Env

	stdout io.Writer
	start  time.Time
}

// NewInterpreter returns an interpreter with the standard globals installed,
// printing to stdout.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		Globals: NewEnv(nil),
		stdout:  os.Stdout,
		start:   time.Now(),
	}
	registerGlobals(ip)
	return ip
}

// SetOutput redirects print output (tests, embedding hosts).
func (ip *Interpreter) SetOutput(w io.Writer) { ip.stdout = w }

// Interpret executes the top-level statements in order. The first runtime
// error aborts the run and is returned; earlier statements keep whatever
// effects they had.
func (ip *Interpreter) Interpret(program []Stmt) error {
	for _, st := range program {
		if _, err := ip.exec(st, ip.Globals); err != nil {
			return err
		}
	}
	return nil
}

// control describes how a statement finished: normally, or unwinding a
// return value toward the nearest enclosing call boundary.
type control struct {
	returning bool
	value     Value
}

func rtErr(tok Token, format string, args ...interface{}) error {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

/* ---------- statements ---------- */

func (ip *Interpreter) exec(st Stmt, env *Env) (control, error) {
	switch s := st.(type) {
	case *ExprStmt:
		_, err := ip.eval(s.E, env)
		return control{}, err

	case *PrintStmt:
		v, err := ip.eval(s.E, env)
		if err != nil {
			return control{}, err
		}
		fmt.Fprintln(ip.stdout, Stringify(v))
		return control{}, nil

	case *VarStmt:
		v := Nil
		if s.Init != nil {
			var err error
			v, err = ip.eval(s.Init, env)
			if err != nil {
				return control{}, err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return control{}, nil

	case *BlockStmt:
		return ip.execBlock(s.List, NewEnv(env))

	case *IfStmt:
		cond, err := ip.eval(s.Cond, env)
		if err != nil {
			return control{}, err
		}
		if truthy(cond) {
			return ip.exec(s.Then, env)
		}
		if s.Else != nil {
			return ip.exec(s.Else, env)
		}
		return control{}, nil

	case *WhileStmt:
		for {
			cond, err := ip.eval(s.Cond, env)
			if err != nil {
				return control{}, err
			}
			if !truthy(cond) {
				return control{}, nil
			}
			ctl, err := ip.exec(s.Body, env)
			if err != nil || ctl.returning {
				return ctl, err
			}
		}

	case *FunStmt:
		// The closure is the environment in effect right now; defining the
		// function into that same environment enables self-recursion and
		// mutual visibility among siblings.
		env.Define(s.Name.Lexeme, FunVal(&Fun{Decl: s, Closure: env}))
		return control{}, nil

	case *ReturnStmt:
		v := Nil
		if s.Value != nil {
			var err error
			v, err = ip.eval(s.Value, env)
			if err != nil {
				return control{}, err
			}
		}
		return control{returning: true, value: v}, nil

	case *ClassStmt:
		return ip.execClassDecl(s, env)
	}
	return control{}, nil
}

// execBlock runs the statements inside env, stopping early on error or on a
// Return signal, which it passes upward untouched.
func (ip *Interpreter) execBlock(list []Stmt, env *Env) (control, error) {
	for _, st := range list {
		ctl, err := ip.exec(st, env)
		if err != nil || ctl.returning {
			return ctl, err
		}
	}
	return control{}, nil
}

func (ip *Interpreter) execClassDecl(s *ClassStmt, env *Env) (control, error) {
	var superclass *Class
	if s.Superclass != nil {
		sv, err := ip.eval(s.Superclass, env)
		if err != nil {
			return control{}, err
		}
		if sv.Tag != VTClass {
			return control{}, rtErr(s.Superclass.Name, "superclass must be a class")
		}
		superclass = sv.Data.(*Class)
	}

	env.Define(s.Name.Lexeme, Nil)

	// When there is a superclass, the methods close over an extra frame
	// holding "super"; its position mirrors the synthetic scope the
	// resolver counted hops through.
	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnv(env)
		methodEnv.Define("super", ClassVal(superclass))
	}

	methods := make(map[string]*Fun, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Fun{
			Decl:    m,
			Closure: methodEnv,
			IsInit:  m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Define(s.Name.Lexeme, ClassVal(class))
	return control{}, nil
}

/* ---------- expressions ---------- */

func (ip *Interpreter) eval(e Expr, env *Env) (Value, error) {
	switch x := e.(type) {
	case *Literal:
		return literalValue(x.Value), nil

	case *Grouping:
		return ip.eval(x.Inner, env)

	case *Unary:
		return ip.evalUnary(x, env)

	case *Binary:
		return ip.evalBinary(x, env)

	case *Logical:
		left, err := ip.eval(x.Left, env)
		if err != nil {
			return Nil, err
		}
		// Short circuit: the result is whichever operand decided it.
		if x.Op.Type == OR {
			if truthy(left) {
				return left, nil
			}
		} else {
			if !truthy(left) {
				return left, nil
			}
		}
		return ip.eval(x.Right, env)

	case *Variable:
		return ip.lookupVariable(x.Name, x.Hops, env)

	case *Assign:
		v, err := ip.eval(x.Value, env)
		if err != nil {
			return Nil, err
		}
		if x.Hops != hopsGlobal {
			if !env.AssignAt(x.Hops, x.Name.Lexeme, v) {
				return Nil, rtErr(x.Name, "undefined variable '%s'", x.Name.Lexeme)
			}
		} else if !ip.Globals.Assign(x.Name.Lexeme, v) {
			return Nil, rtErr(x.Name, "undefined variable '%s'", x.Name.Lexeme)
		}
		return v, nil

	case *Call:
		return ip.evalCall(x, env)

	case *Get:
		obj, err := ip.eval(x.Object, env)
		if err != nil {
			return Nil, err
		}
		if obj.Tag != VTInstance {
			return Nil, rtErr(x.Name, "only instances have properties")
		}
		inst := obj.Data.(*Instance)
		if v, ok := inst.Fields[x.Name.Lexeme]; ok {
			return v, nil
		}
		if m := inst.Class.FindMethod(x.Name.Lexeme); m != nil {
			return FunVal(m.Bind(inst)), nil
		}
		return Nil, rtErr(x.Name, "undefined property '%s'", x.Name.Lexeme)

	case *Set:
		obj, err := ip.eval(x.Object, env)
		if err != nil {
			return Nil, err
		}
		if obj.Tag != VTInstance {
			return Nil, rtErr(x.Name, "only instances have fields")
		}
		v, err := ip.eval(x.Value, env)
		if err != nil {
			return Nil, err
		}
		// Fields shadow methods: the write always lands in the field table.
		obj.Data.(*Instance).Fields[x.Name.Lexeme] = v
		return v, nil

	case *This:
		return ip.lookupVariable(x.Keyword, x.Hops, env)

	case *Super:
		return ip.evalSuper(x, env)
	}
	return Nil, nil
}

func literalValue(v interface{}) Value {
	switch lit := v.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(lit)
	case float64:
		return Num(lit)
	case string:
		return Str(lit)
	}
	return Nil
}

func (ip *Interpreter) lookupVariable(name Token, hops int, env *Env) (Value, error) {
	if hops != hopsGlobal {
		if v, ok := env.GetAt(hops, name.Lexeme); ok {
			return v, nil
		}
	} else if v, ok := ip.Globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return Nil, rtErr(name, "undefined variable '%s'", name.Lexeme)
}

func (ip *Interpreter) evalUnary(x *Unary, env *Env) (Value, error) {
	operand, err := ip.eval(x.Operand, env)
	if err != nil {
		return Nil, err
	}
	switch x.Op.Type {
	case MINUS:
		if operand.Tag != VTNum {
			return Nil, rtErr(x.Op, "operand of '-' must be a number")
		}
		return Num(-operand.Data.(float64)), nil
	case BANG:
		return Bool(!truthy(operand)), nil
	}
	return Nil, nil
}

func (ip *Interpreter) evalBinary(x *Binary, env *Env) (Value, error) {
	left, err := ip.eval(x.Left, env)
	if err != nil {
		return Nil, err
	}
	right, err := ip.eval(x.Right, env)
	if err != nil {
		return Nil, err
	}

	switch x.Op.Type {
	case PLUS:
		if left.Tag == VTNum && right.Tag == VTNum {
			return Num(left.Data.(float64) + right.Data.(float64)), nil
		}
		if left.Tag == VTStr && right.Tag == VTStr {
			return Str(left.Data.(string) + right.Data.(string)), nil
		}
		return Nil, rtErr(x.Op, "operands must be two numbers or two strings")
	case EQ:
		return Bool(equalValues(left, right)), nil
	case NEQ:
		return Bool(!equalValues(left, right)), nil
	}

	// Remaining operators are numeric only.
	if left.Tag != VTNum || right.Tag != VTNum {
		return Nil, rtErr(x.Op, "operands of '%s' must be numbers", x.Op.Lexeme)
	}
	a := left.Data.(float64)
	b := right.Data.(float64)
	switch x.Op.Type {
	case MINUS:
		return Num(a - b), nil
	case STAR:
		return Num(a * b), nil
	case SLASH:
		return Num(a / b), nil
	case GREATER:
		return Bool(a > b), nil
	case GREATER_EQ:
		return Bool(a >= b), nil
	case LESS:
		return Bool(a < b), nil
	case LESS_EQ:
		return Bool(a <= b), nil
	}
	return Nil, nil
}

func (ip *Interpreter) evalCall(x *Call, env *Env) (Value, error) {
	callee, err := ip.eval(x.Callee, env)
	if err != nil {
		return Nil, err
	}

	args := make([]Value, 0, len(x.Args))
	for _, argExpr := range x.Args {
		arg, err := ip.eval(argExpr, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, arg)
	}

	fn, ok := asCallable(callee)
	if !ok {
		return Nil, rtErr(x.Paren, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return Nil, rtErr(x.Paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(ip, args)
}

// evalSuper resolves the superclass frame by the annotated hop count; the
// receiver lives one frame closer, in the "this" frame method binding made.
func (ip *Interpreter) evalSuper(x *Super, env *Env) (Value, error) {
	sv, ok := env.GetAt(x.Hops, "super")
	if !ok {
		return Nil, rtErr(x.Keyword, "undefined variable 'super'")
	}
	superclass := sv.Data.(*Class)

	tv, _ := env.GetAt(x.Hops-1, "this")
	inst := tv.Data.(*Instance)

	method := superclass.FindMethod(x.Method.Lexeme)
	if method == nil {
		return Nil, rtErr(x.Method, "undefined property '%s'", x.Method.Lexeme)
	}
	return FunVal(method.Bind(inst)), nil
}

/* ---------- call protocol ---------- */

// Call runs the function body in a fresh frame parented at the captured
// closure, with parameters bound to the arguments. A Return signal unwinding
// to this boundary supplies the result; falling off the end yields nil. For
// init methods the result is always the bound instance.
func (f *Fun) Call(ip *Interpreter, args []Value) (Value, error) {
	env := NewEnv(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	ctl, err := ip.execBlock(f.Decl.Body, env)
	if err != nil {
		return Nil, err
	}

	if f.IsInit {
		// Bound init: "this" sits in the closure frame made by Bind.
		v, _ := f.Closure.GetAt(0, "this")
		return v, nil
	}
	if ctl.returning {
		return ctl.value, nil
	}
	return Nil, nil
}

// Call on a class instantiates it: allocate, then delegate to a bound init
// when the class chain defines one. The instance is the result even when
// init returned early.
func (c *Class) Call(ip *Interpreter, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(ip, args); err != nil {
			return Nil, err
		}
	}
	return InstanceVal(inst), nil
}
