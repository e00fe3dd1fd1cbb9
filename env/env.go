// Package env implements the interpreter's flat variable environment.
// Unlike a parent-linked scope chain, a luasand Environment is a single
// flat map per call frame: entering a function shallow-copies the entire
// caller environment and overlays parameter bindings, rather than
// chaining a new child scope onto the caller. This is a deliberate
// departure from lexical closures, matching the call-frame semantics the
// language specifies: a function's writes to pre-existing variables are
// local to its frame and invisible on return, and newly declared
// variables never leak out.
package env

import "github.com/luasand/luasand/object"

// Environment is a flat name-to-value mapping used for variable
// resolution within a single call frame.
type Environment struct {
	vars map[string]object.Value
}

// New creates an empty Environment.
func New() *Environment {
	return &Environment{vars: make(map[string]object.Value)}
}

// Lookup resolves name in this environment. Returns ok=false if the name
// is not bound — the caller (the evaluator) turns that into a
// VariableNotDeclared error; there is no implicit global creation.
func (e *Environment) Lookup(name string) (object.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Declare binds name to value in this environment, overwriting any
// existing binding (re-declaration is allowed and simply replaces).
func (e *Environment) Declare(name string, value object.Value) {
	e.vars[name] = value
}

// Assign updates an already-declared binding. Returns false if name is
// not yet bound, so the evaluator can raise VariableNotDeclared.
func (e *Environment) Assign(name string, value object.Value) bool {
	if _, ok := e.vars[name]; !ok {
		return false
	}
	e.vars[name] = value
	return true
}

// Copy returns a shallow copy of this environment: a new map with the
// same name-to-value bindings. Used on function call entry so the
// callee's mutations and declarations never escape to the caller.
func (e *Environment) Copy() object.Environment {
	cp := New()
	for k, v := range e.vars {
		cp.vars[k] = v
	}
	return cp
}

// Underlying exposes the raw map for callers (the evaluator) that need to
// overlay parameter bindings directly after a Copy.
func (e *Environment) Underlying() map[string]object.Value { return e.vars }
