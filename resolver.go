// resolver.go — static scope resolution for Tok.
//
// The resolver walks the parsed program once, left to right, mirroring the
// lexical nesting with a stack of scopes. For every variable-like reference
// (Variable, Assign, This, Super) it records the hop count: how many
// enclosing environments the evaluator must skip at run time to reach the
// binding. Names not found in any local scope keep the hopsGlobal sentinel
// and are looked up by name in the globals. Re-resolving the same tree
// always produces the same hop counts.
//
// A scope entry is first marked declared (false) and only after its
// initializer resolves marked defined (true); reading a name in its own
// initializer is therefore detectable and rejected. Class bodies inject two
// synthetic scopes visible to every method: one holding "super" (only when a
// superclass exists) and, inside it, one holding "this". That gives both
// keywords fixed hop counts handled by the ordinary mechanism, mirrored
// exactly by the frames the evaluator builds at class declaration and method
// binding time.
//
// The resolver also validates static rules: return outside a function,
// this/super outside a class, super in a class without a superclass, and a
// class inheriting from itself. Nothing is
// executed; the resolver only annotates and reports. All findings of one
// pass are returned together as a DiagList.
package tok

type funKind int

const (
	fkNone funKind = iota
	fkFunction
	fkMethod
)

type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

// Resolver annotates hop counts and validates static rules.
type Resolver struct {
	scopes   []map[string]bool // name -> defined (false while declared only)
	curFun   funKind
	curClass classKind
	errs     DiagList
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve annotates the whole program. On static errors it returns a
// DiagList; the annotations made before each error are still in place.
func (r *Resolver) Resolve(program []Stmt) error {
	for _, st := range program {
		r.resolveStmt(st)
	}
	if len(r.errs) > 0 {
		return r.errs
	}
	return nil
}

func (r *Resolver) err(tok Token, msg string) {
	r.errs = append(r.errs, &ResolveError{Line: tok.Line, Col: tok.Col, Msg: msg})
}

/* ---------- scope stack ---------- */

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks the name visible but not yet usable in this scope.
// Redeclaring a name in the same scope is permitted and overwrites, matching
// Env.Define.
func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// hopsFor walks the scope stack innermost-out and returns the hop count for
// name, or hopsGlobal when no local scope declares it.
func (r *Resolver) hopsFor(name string) int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			return len(r.scopes) - 1 - i
		}
	}
	return hopsGlobal
}

/* ---------- statements ---------- */

func (r *Resolver) resolveStmt(st Stmt) {
	switch s := st.(type) {
	case *ExprStmt:
		r.resolveExpr(s.E)
	case *PrintStmt:
		r.resolveExpr(s.E)
	case *VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *BlockStmt:
		r.beginScope()
		for _, inner := range s.List {
			r.resolveStmt(inner)
		}
		r.endScope()
	case *IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *FunStmt:
		// Defined before the body resolves, so the function can recurse.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fkFunction)
	case *ReturnStmt:
		if r.curFun == fkNone {
			r.err(s.Keyword, "can't return from top-level code")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveFunction(fn *FunStmt, kind funKind) {
	enclosing := r.curFun
	r.curFun = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, st := range fn.Body {
		r.resolveStmt(st)
	}
	r.endScope()

	r.curFun = enclosing
}

func (r *Resolver) resolveClass(s *ClassStmt) {
	enclosing := r.curClass
	r.curClass = ckClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.err(s.Superclass.Name, "a class can't inherit from itself")
		}
		r.curClass = ckSubclass
		r.resolveExpr(s.Superclass)

		// Synthetic scope holding "super", shared by all methods; matches
		// the frame the evaluator builds around method closures.
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	// Synthetic scope holding "this"; matches the per-binding frame.
	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		r.resolveFunction(m, fkMethod)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.curClass = enclosing
}

/* ---------- expressions ---------- */

func (r *Resolver) resolveExpr(e Expr) {
	switch x := e.(type) {
	case *Literal:
		// nothing to resolve
	case *Grouping:
		r.resolveExpr(x.Inner)
	case *Unary:
		r.resolveExpr(x.Operand)
	case *Binary:
		r.resolveExpr(x.Left)
		r.resolveExpr(x.Right)
	case *Logical:
		r.resolveExpr(x.Left)
		r.resolveExpr(x.Right)
	case *Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][x.Name.Lexeme]; declared && !defined {
				r.err(x.Name, "can't read local variable in its own initializer")
			}
		}
		x.Hops = r.hopsFor(x.Name.Lexeme)
	case *Assign:
		r.resolveExpr(x.Value)
		x.Hops = r.hopsFor(x.Name.Lexeme)
	case *Call:
		r.resolveExpr(x.Callee)
		for _, arg := range x.Args {
			r.resolveExpr(arg)
		}
	case *Get:
		r.resolveExpr(x.Object)
	case *Set:
		r.resolveExpr(x.Object)
		r.resolveExpr(x.Value)
	case *This:
		if r.curClass == ckNone {
			r.err(x.Keyword, "can't use 'this' outside of a class")
			return
		}
		x.Hops = r.hopsFor("this")
	case *Super:
		switch r.curClass {
		case ckNone:
			r.err(x.Keyword, "can't use 'super' outside of a class")
			return
		case ckClass:
			r.err(x.Keyword, "can't use 'super' in a class with no superclass")
			return
		}
		x.Hops = r.hopsFor("super")
	}
}
