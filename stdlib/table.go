package stdlib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luasand/luasand/object"
)

func asTable(fn string, args []object.Value, i int) (*object.Table, error) {
	if i >= len(args) {
		return nil, argError(fn, i+1, len(args))
	}
	t, ok := args[i].(*object.Table)
	if !ok {
		return nil, fmt.Errorf("%s argument %d must be a table, got %s", fn, i+1, args[i].Kind())
	}
	return t, nil
}

// TableLibrary builds the `table` library: insert, remove, sort,
// concat. Grounded on the teacher's objects/objects.go Array operations,
// generalized to the unified array/dict Table.
func TableLibrary() *object.Library {
	lib := object.NewLibrary("table")
	lib.AddMethod("insert", tableInsert)
	lib.AddMethod("remove", tableRemove)
	lib.AddMethod("sort", tableSort)
	lib.AddMethod("concat", tableConcat)
	return lib
}

func tableInsert(args []object.Value) (object.Value, error) {
	t, err := asTable("table.insert", args, 0)
	if err != nil {
		return nil, err
	}
	if !t.IsArray {
		return nil, fmt.Errorf("table.insert requires an array table")
	}
	if len(args) == 2 {
		t.Append(args[1])
		return &object.Nil{}, nil
	}
	if len(args) == 3 {
		pos, err := asInteger("table.insert", args, 1)
		if err != nil {
			return nil, err
		}
		value := args[2]
		idx := int(pos) - 1
		if idx < 0 || idx > len(t.Entries) {
			return nil, fmt.Errorf("table.insert position %d out of range", pos)
		}
		t.Entries = append(t.Entries, object.Entry{})
		copy(t.Entries[idx+1:], t.Entries[idx:])
		t.Entries[idx] = object.Entry{Key: &object.Integer{Value: pos}, Value: value}
		renumber(t)
		return &object.Nil{}, nil
	}
	return nil, argError("table.insert", 2, len(args))
}

func tableRemove(args []object.Value) (object.Value, error) {
	t, err := asTable("table.remove", args, 0)
	if err != nil {
		return nil, err
	}
	if !t.IsArray {
		return nil, fmt.Errorf("table.remove requires an array table")
	}
	if len(t.Entries) == 0 {
		return &object.Nil{}, nil
	}
	pos := int64(len(t.Entries))
	if len(args) > 1 {
		pos, err = asInteger("table.remove", args, 1)
		if err != nil {
			return nil, err
		}
	}
	idx := int(pos) - 1
	if idx < 0 || idx >= len(t.Entries) {
		return &object.Nil{}, nil
	}
	removed := t.Entries[idx].Value
	t.Entries = append(t.Entries[:idx], t.Entries[idx+1:]...)
	renumber(t)
	return removed, nil
}

func renumber(t *object.Table) {
	for i := range t.Entries {
		t.Entries[i].Key = &object.Integer{Value: int64(i + 1)}
	}
}

func tableSort(args []object.Value) (object.Value, error) {
	t, err := asTable("table.sort", args, 0)
	if err != nil {
		return nil, err
	}
	if !t.IsArray {
		return nil, fmt.Errorf("table.sort requires an array table")
	}
	var sortErr error
	sort.SliceStable(t.Entries, func(i, j int) bool {
		less, err := lessValue(t.Entries[i].Value, t.Entries[j].Value)
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	renumber(t)
	return &object.Nil{}, nil
}

func lessValue(a, b object.Value) (bool, error) {
	switch x := a.(type) {
	case *object.String:
		y, ok := b.(*object.String)
		if !ok {
			return false, fmt.Errorf("table.sort: cannot compare string with %s", b.Kind())
		}
		return x.Value < y.Value, nil
	default:
		af, aok := asNumber(a)
		bf, bok := asNumber(b)
		if !aok || !bok {
			return false, fmt.Errorf("table.sort: cannot compare %s with %s", a.Kind(), b.Kind())
		}
		return af < bf, nil
	}
}

func tableConcat(args []object.Value) (object.Value, error) {
	t, err := asTable("table.concat", args, 0)
	if err != nil {
		return nil, err
	}
	if !t.IsArray {
		return nil, fmt.Errorf("table.concat requires an array table")
	}
	sep := ""
	if len(args) > 1 {
		sep, err = asString("table.concat", args, 1)
		if err != nil {
			return nil, err
		}
	}
	parts := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		parts[i] = e.Value.String()
	}
	return &object.String{Value: strings.Join(parts, sep)}, nil
}
