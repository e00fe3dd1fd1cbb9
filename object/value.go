// Package object defines the runtime value universe of the language: the
// tagged union Nil/Boolean/Integer/Float/String/Table/Function/Native/
// Library, plus the Library/NativeFunc host-embedding contracts.
package object

import "fmt"

// Kind identifies the runtime type of a Value.
type Kind string

const (
	KindNil      Kind = "nil"
	KindBoolean  Kind = "boolean"
	KindInteger  Kind = "number"
	KindFloat    Kind = "number"
	KindString   Kind = "string"
	KindTable    Kind = "table"
	KindFunction Kind = "function"
	KindNative   Kind = "function"
	KindLibrary  Kind = "userdata"
)

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// Truthy applies the language's truthiness rule: nil and false are falsy,
// everything else is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case *Nil, nil:
		return false
	case *Boolean:
		return t.Value
	default:
		return true
	}
}

// Nil is the absence of a value.
type Nil struct{}

func (*Nil) Kind() Kind      { return KindNil }
func (*Nil) String() string  { return "nil" }

// Boolean wraps a Go bool.
type Boolean struct{ Value bool }

func (b *Boolean) Kind() Kind     { return KindBoolean }
func (b *Boolean) String() string { return fmt.Sprintf("%t", b.Value) }

// Integer wraps a 64-bit signed integer.
type Integer struct{ Value int64 }

func (i *Integer) Kind() Kind     { return KindInteger }
func (i *Integer) String() string { return fmt.Sprintf("%d", i.Value) }

// Float wraps a 64-bit floating point number.
type Float struct{ Value float64 }

func (f *Float) Kind() Kind     { return KindFloat }
func (f *Float) String() string { return formatFloat(f.Value) }

func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// String wraps a Go string.
type String struct{ Value string }

func (s *String) Kind() Kind     { return KindString }
func (s *String) String() string { return s.Value }

// Equal implements the `==`/`~=` value-equality rule: same kind and same
// underlying value. Tables and functions compare by identity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *Integer:
		switch y := b.(type) {
		case *Integer:
			return x.Value == y.Value
		case *Float:
			return float64(x.Value) == y.Value
		}
		return false
	case *Float:
		switch y := b.(type) {
		case *Float:
			return x.Value == y.Value
		case *Integer:
			return x.Value == float64(y.Value)
		}
		return false
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Table:
		y, ok := b.(*Table)
		return ok && x == y
	default:
		return a == b
	}
}
