package object

import "fmt"

// Library is a named, immutable-from-script aggregate of attribute values
// and callable methods, the only thing a MethodChain/MethodCall can
// resolve against. Hosts construct Libraries and pass them to New; the
// interpreter itself ships a fixed set (string, table, math, os, io,
// coroutine, package) built the same way.
type Library struct {
	Name       string
	Attributes map[string]Value
	Methods    map[string]*Native
}

// NewLibrary builds an empty Library ready to have attributes/methods
// added to it.
func NewLibrary(name string) *Library {
	return &Library{Name: name, Attributes: make(map[string]Value), Methods: make(map[string]*Native)}
}

func (l *Library) Kind() Kind     { return KindLibrary }
func (l *Library) String() string { return fmt.Sprintf("library: %s", l.Name) }

// Resolve looks up name first among attributes, then among methods, per
// the MethodChain resolution order.
func (l *Library) Resolve(name string) (Value, bool) {
	if v, ok := l.Attributes[name]; ok {
		return v, true
	}
	if m, ok := l.Methods[name]; ok {
		return m, true
	}
	return nil, false
}

// AddMethod registers fn as the method name, wrapped in a Native named
// "<library>.<name>". Paired with Blocked, it advertises a name (as
// os/io/coroutine/package do) while keeping the operation unavailable.
func (l *Library) AddMethod(name string, fn NativeFunc) {
	l.Methods[name] = &Native{Name: l.Name + "." + name, Fn: fn}
}

// Blocked returns a NativeFunc that always reports a permission error,
// identifying itself by library and method name.
func Blocked(library, method string) NativeFunc {
	return func(args []Value) (Value, error) {
		return nil, &PermissionError{Library: library, Method: method}
	}
}

// PermissionError is returned when a script calls a library method that
// the host has blocked (e.g. os.execute, every io method).
type PermissionError struct {
	Library string
	Method  string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s.%s is not available to scripts", e.Library, e.Method)
}
