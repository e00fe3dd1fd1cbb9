package object

import (
	"fmt"
	"strings"
)

// Entry is one (key, value) pair in a Table, in insertion order.
type Entry struct {
	Key   Value
	Value Value
}

// Table is the language's sole composite data structure: an ordered
// sequence of entries tagged array or dictionary at construction. Array
// tables use 1-based integer keys and insertion order; dictionary tables
// use string keys.
type Table struct {
	Entries []Entry
	IsArray bool
}

// NewArrayTable builds an empty array-typed table.
func NewArrayTable() *Table { return &Table{IsArray: true} }

// NewDictTable builds an empty dictionary-typed table.
func NewDictTable() *Table { return &Table{IsArray: false} }

func (t *Table) Kind() Kind { return KindTable }

func (t *Table) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range t.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		if t.IsArray {
			b.WriteString(e.Value.String())
		} else {
			fmt.Fprintf(&b, "%s = %s", e.Key.String(), e.Value.String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Append adds a value to an array table under the next 1-based integer
// key. Callers must ensure IsArray is true.
func (t *Table) Append(v Value) {
	idx := int64(len(t.Entries) + 1)
	t.Entries = append(t.Entries, Entry{Key: &Integer{Value: idx}, Value: v})
}

// SetField adds or overwrites a dictionary entry under a string key.
// Callers must ensure IsArray is false.
func (t *Table) SetField(name string, v Value) {
	for i := range t.Entries {
		if s, ok := t.Entries[i].Key.(*String); ok && s.Value == name {
			t.Entries[i].Value = v
			return
		}
	}
	t.Entries = append(t.Entries, Entry{Key: &String{Value: name}, Value: v})
}

// GetField looks up a dictionary entry by string key.
func (t *Table) GetField(name string) (Value, bool) {
	for _, e := range t.Entries {
		if s, ok := e.Key.(*String); ok && s.Value == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Get performs an indexed lookup against a table. It fails with a type
// error if the key's category does not match the table's IsArray flag.
func (t *Table) Get(key Value) (Value, error) {
	switch k := key.(type) {
	case *Integer:
		if !t.IsArray {
			return nil, fmt.Errorf("cannot index dictionary table with an integer key")
		}
		for _, e := range t.Entries {
			if ik, ok := e.Key.(*Integer); ok && ik.Value == k.Value {
				return e.Value, nil
			}
		}
		return &Nil{}, nil
	case *String:
		if t.IsArray {
			return nil, fmt.Errorf("cannot index array table with a string key")
		}
		if v, ok := t.GetField(k.Value); ok {
			return v, nil
		}
		return &Nil{}, nil
	default:
		return nil, fmt.Errorf("table key must be an integer or a string")
	}
}

// Set performs an indexed assignment against a table, subject to the
// same key/flag agreement that Get enforces.
func (t *Table) Set(key Value, value Value) error {
	switch k := key.(type) {
	case *Integer:
		if !t.IsArray {
			return fmt.Errorf("cannot index dictionary table with an integer key")
		}
		for i, e := range t.Entries {
			if ik, ok := e.Key.(*Integer); ok && ik.Value == k.Value {
				t.Entries[i].Value = value
				return nil
			}
		}
		t.Entries = append(t.Entries, Entry{Key: &Integer{Value: k.Value}, Value: value})
		return nil
	case *String:
		if t.IsArray {
			return fmt.Errorf("cannot index array table with a string key")
		}
		t.SetField(k.Value, value)
		return nil
	default:
		return fmt.Errorf("table key must be an integer or a string")
	}
}

// Length returns the count of entries with a non-nil key, per the
// language's `#` operator over arrays.
func (t *Table) Length() int {
	n := 0
	for _, e := range t.Entries {
		if _, isNil := e.Key.(*Nil); !isNil && e.Key != nil {
			n++
		}
	}
	return n
}
