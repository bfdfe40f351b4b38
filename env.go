// env.go — the runtime environment chain.
//
// An Env is one lexical frame: a name→value table plus a parent link. Frames
// are created on entering a block, function call, or method binding and are
// released by the host garbage collector once nothing reachable (including
// closures) refers to them. Resolved references address their frame by hop
// count; unresolved references go by name to the outermost frame.
package tok

// Env is a scope frame in the lexical chain.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame with the given parent (nil for the globals).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this frame, unconditionally. Redeclaring an existing
// name overwrites it.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// ancestor walks exactly hops parent links.
func (e *Env) ancestor(hops int) *Env {
	env := e
	for i := 0; i < hops; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the frame exactly hops links up. The second result
// is false when the name is absent there.
func (e *Env) GetAt(hops int, name string) (Value, bool) {
	v, ok := e.ancestor(hops).table[name]
	return v, ok
}

// AssignAt overwrites name in the frame exactly hops links up. Unlike Define
// the name must already exist; AssignAt reports false otherwise.
func (e *Env) AssignAt(hops int, name string, v Value) bool {
	env := e.ancestor(hops)
	if _, ok := env.table[name]; !ok {
		return false
	}
	env.table[name] = v
	return true
}

// Get reads name from this frame only (used on the globals frame).
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.table[name]
	return v, ok
}

// Assign overwrites name in this frame only; the name must already exist.
func (e *Env) Assign(name string, v Value) bool {
	if _, ok := e.table[name]; !ok {
		return false
	}
	e.table[name] = v
	return true
}
