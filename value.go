// value.go — runtime value model for Tok.
//
// Value is a tagged sum covering every runtime kind: nil, booleans, numbers
// (float64), strings, and the callable/object kinds (user functions, native
// functions, classes, instances). The tag determines which Go type lives in
// Data. Helpers here also define the two language-wide value judgments:
// truthiness (only nil and false are falsy) and equality (value kinds by
// value, object kinds by identity).
package tok

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil      ValueTag = iota // no payload
	VTBool                     // bool
	VTNum                      // float64
	VTStr                      // string
	VTFun                      // *Fun
	VTNative                   // *Native
	VTClass                    // *Class
	VTInstance                 // *Instance
)

// Value is the universal runtime carrier used by the interpreter.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

func Bool(b bool) Value             { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value           { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value            { return Value{Tag: VTStr, Data: s} }
func FunVal(f *Fun) Value           { return Value{Tag: VTFun, Data: f} }
func NativeVal(n *Native) Value     { return Value{Tag: VTNative, Data: n} }
func ClassVal(c *Class) Value       { return Value{Tag: VTClass, Data: c} }
func InstanceVal(i *Instance) Value { return Value{Tag: VTInstance, Data: i} }

// truthy implements the conditional-context rule: nil and false are falsy,
// every other value (including 0 and "") is truthy.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// equalValues implements "==": nil equals only nil, different kinds are never
// equal, primitives compare by value, functions/classes/instances by identity.
func equalValues(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		// pointer identity
		return a.Data == b.Data
	}
}

/* ---------- callables ---------- */

// Callable is the capability shared by everything that may appear left of a
// call's parentheses. Call receives fully evaluated arguments; the arity
// check happens at the call site so the error can blame the closing paren.
type Callable interface {
	Arity() int
	Call(ip *Interpreter, args []Value) (Value, error)
}

// asCallable extracts the Callable behind a Value, if any.
func asCallable(v Value) (Callable, bool) {
	switch v.Tag {
	case VTFun:
		return v.Data.(*Fun), true
	case VTNative:
		return v.Data.(*Native), true
	case VTClass:
		return v.Data.(*Class), true
	}
	return nil, false
}

// Fun is a user function or method: its declaration plus the environment
// captured at declaration time. Methods are the same representation; binding
// to an instance happens per call via Bind.
type Fun struct {
	Decl    *FunStmt
	Closure *Env
	IsInit  bool // "init" methods always yield the instance
}

func (f *Fun) Arity() int { return len(f.Decl.Params) }

// Bind wraps the method in a one-binding frame holding "this", parented at
// the method's own declaration closure. Each bound method gets a private
// frame, so two instances never share a "this".
func (f *Fun) Bind(inst *Instance) *Fun {
	env := NewEnv(f.Closure)
	env.Define("this", InstanceVal(inst))
	return &Fun{Decl: f.Decl, Closure: env, IsInit: f.IsInit}
}

// Native is a host-implemented callable installed in the globals.
type Native struct {
	Name  string
	NArgs int
	Impl  func(ip *Interpreter, args []Value) (Value, error)
}

func (n *Native) Arity() int { return n.NArgs }

func (n *Native) Call(ip *Interpreter, args []Value) (Value, error) {
	return n.Impl(ip, args)
}

// Class is a runtime class value: calling it instantiates it. The superclass
// reference is by value, fixed when the class declaration was evaluated.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Fun
}

// FindMethod searches the method-resolution chain: this class, then its
// superclass, and so on.
func (c *Class) FindMethod(name string) *Fun {
	for k := c; k != nil; k = k.Superclass {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity of a class call is the arity of its init method, if any.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Instance is an object: a class reference plus a mutable field table,
// populated lazily by set expressions.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value)}
}
