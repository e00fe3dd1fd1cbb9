package eval

import (
	"strconv"

	"github.com/luasand/luasand/object"
)

// ScriptError is the error surfaced by the `error` native and caught by
// pcall/xpcall; its message is whatever the script passed in, stringified.
type ScriptError struct{ Message string }

func (e *ScriptError) Error() string { return e.Message }

// installGlobals binds the always-present natives (ipairs, pairs,
// assert, error, next, select, type, tonumber, tostring, rawget,
// rawset, setmetatable, getmetatable, pcall, xpcall, print, require)
// into the current environment.
func (e *Evaluator) installGlobals() {
	natives := map[string]object.NativeFunc{
		"ipairs":       e.nativeIpairs,
		"pairs":        e.nativePairs,
		"assert":       e.nativeAssert,
		"error":        e.nativeError,
		"next":         e.nativeNext,
		"select":       e.nativeSelect,
		"type":         e.nativeType,
		"tonumber":     e.nativeTonumber,
		"tostring":     e.nativeTostring,
		"rawget":       e.nativeRawget,
		"rawset":       e.nativeRawset,
		"setmetatable": e.nativeSetmetatable,
		"getmetatable": e.nativeGetmetatable,
		"pcall":        e.nativePcall,
		"xpcall":       e.nativeXpcall,
		"print":        e.nativePrint,
		"require":      e.nativeRequire,
	}
	for name, fn := range natives {
		e.current.Declare(name, &object.Native{Name: name, Fn: fn})
	}
}

func arg(args []object.Value, i int) object.Value {
	if i < len(args) {
		return args[i]
	}
	return &object.Nil{}
}

func pair(a, b object.Value) *object.Table {
	t := object.NewArrayTable()
	t.Append(a)
	t.Append(b)
	return t
}

func (e *Evaluator) nativePrint(args []object.Value) (object.Value, error) {
	for i, a := range args {
		if i > 0 {
			e.logs.WriteString(" ")
		}
		e.logs.WriteString(e.tostring(a))
	}
	e.logs.WriteString("\n")
	return &object.Nil{}, nil
}

// nativeIpairs requires an array table and produces a sequence (an
// array table of {i, v} pair tables) for a generic for to walk.
func (e *Evaluator) nativeIpairs(args []object.Value) (object.Value, error) {
	t, ok := arg(args, 0).(*object.Table)
	if !ok || !t.IsArray {
		return nil, &InvalidOperation{Message: "ipairs requires an array table"}
	}
	seq := object.NewArrayTable()
	for i, entry := range t.Entries {
		seq.Append(pair(&object.Integer{Value: int64(i + 1)}, entry.Value))
	}
	return seq, nil
}

// nativePairs requires a dictionary table and produces a sequence of
// {k, v} pair tables in insertion order.
func (e *Evaluator) nativePairs(args []object.Value) (object.Value, error) {
	t, ok := arg(args, 0).(*object.Table)
	if !ok || t.IsArray {
		return nil, &InvalidOperation{Message: "pairs requires a dictionary table"}
	}
	seq := object.NewArrayTable()
	for _, entry := range t.Entries {
		seq.Append(pair(entry.Key, entry.Value))
	}
	return seq, nil
}

func (e *Evaluator) nativeAssert(args []object.Value) (object.Value, error) {
	v := arg(args, 0)
	if object.Truthy(v) {
		return v, nil
	}
	msg := "assertion failed!"
	if len(args) > 1 {
		msg = e.tostring(args[1])
	}
	return nil, &ScriptError{Message: msg}
}

func (e *Evaluator) nativeError(args []object.Value) (object.Value, error) {
	return nil, &ScriptError{Message: e.tostring(arg(args, 0))}
}

// nativeNext returns the entry following key in insertion order, or the
// first entry when key is nil/absent; nil when exhausted.
func (e *Evaluator) nativeNext(args []object.Value) (object.Value, error) {
	t, ok := arg(args, 0).(*object.Table)
	if !ok {
		return nil, &InvalidOperation{Message: "next requires a table"}
	}
	key := arg(args, 1)
	if len(t.Entries) == 0 {
		return &object.Nil{}, nil
	}
	if _, isNil := key.(*object.Nil); isNil {
		return pair(t.Entries[0].Key, t.Entries[0].Value), nil
	}
	for i, entry := range t.Entries {
		if object.Equal(entry.Key, key) {
			if i+1 < len(t.Entries) {
				return pair(t.Entries[i+1].Key, t.Entries[i+1].Value), nil
			}
			return &object.Nil{}, nil
		}
	}
	return &object.Nil{}, nil
}

func (e *Evaluator) nativeSelect(args []object.Value) (object.Value, error) {
	sel := arg(args, 0)
	if s, ok := sel.(*object.String); ok && s.Value == "#" {
		return &object.Integer{Value: int64(len(args) - 1)}, nil
	}
	n, ok := arg(args, 0).(*object.Integer)
	if !ok || n.Value < 1 || int(n.Value) >= len(args) {
		return &object.Nil{}, nil
	}
	return args[n.Value], nil
}

func (e *Evaluator) nativeType(args []object.Value) (object.Value, error) {
	return &object.String{Value: string(arg(args, 0).Kind())}, nil
}

func (e *Evaluator) nativeTonumber(args []object.Value) (object.Value, error) {
	v := arg(args, 0)
	switch t := v.(type) {
	case *object.Integer, *object.Float:
		return v, nil
	case *object.String:
		if i, err := strconv.ParseInt(t.Value, 10, 64); err == nil {
			return &object.Integer{Value: i}, nil
		}
		if f, err := strconv.ParseFloat(t.Value, 64); err == nil {
			return &object.Float{Value: f}, nil
		}
		return &object.Nil{}, nil
	default:
		return &object.Nil{}, nil
	}
}

func (e *Evaluator) nativeTostring(args []object.Value) (object.Value, error) {
	return &object.String{Value: e.tostring(arg(args, 0))}, nil
}

func (e *Evaluator) nativeRawget(args []object.Value) (object.Value, error) {
	t, ok := arg(args, 0).(*object.Table)
	if !ok {
		return nil, &InvalidOperation{Message: "rawget requires a table"}
	}
	v, err := t.Get(arg(args, 1))
	if err != nil {
		return nil, &InvalidOperation{Message: err.Error()}
	}
	return v, nil
}

func (e *Evaluator) nativeRawset(args []object.Value) (object.Value, error) {
	t, ok := arg(args, 0).(*object.Table)
	if !ok {
		return nil, &InvalidOperation{Message: "rawset requires a table"}
	}
	if err := t.Set(arg(args, 1), arg(args, 2)); err != nil {
		return nil, &InvalidOperation{Message: err.Error()}
	}
	return t, nil
}

// setmetatable/getmetatable are present per the always-available global
// list but metatables are out of scope (no operator overloading, per
// the purpose statement's Non-goals); they are no-ops that hand the
// table back unchanged / report no metatable.
func (e *Evaluator) nativeSetmetatable(args []object.Value) (object.Value, error) {
	return arg(args, 0), nil
}

func (e *Evaluator) nativeGetmetatable(args []object.Value) (object.Value, error) {
	return &object.Nil{}, nil
}

func (e *Evaluator) nativePcall(args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return nil, &InvalidOperation{Message: "pcall requires a function argument"}
	}
	result, err := e.callValue(args[0], args[1:])
	if err != nil {
		return pair(&object.Boolean{Value: false}, &object.String{Value: e.tostring(errorValue(err))}), nil
	}
	return pair(&object.Boolean{Value: true}, result), nil
}

// nativeXpcall is pcall plus a message handler invoked with the error
// message on failure; its result becomes the second element.
func (e *Evaluator) nativeXpcall(args []object.Value) (object.Value, error) {
	if len(args) < 2 {
		return nil, &InvalidOperation{Message: "xpcall requires a function and a message handler"}
	}
	result, err := e.callValue(args[0], args[2:])
	if err != nil {
		msg := &object.String{Value: e.tostring(errorValue(err))}
		handled, handlerErr := e.callValue(args[1], []object.Value{msg})
		if handlerErr != nil {
			handled = msg
		}
		return pair(&object.Boolean{Value: false}, handled), nil
	}
	return pair(&object.Boolean{Value: true}, result), nil
}

func errorValue(err error) object.Value {
	return &object.String{Value: err.Error()}
}

func (e *Evaluator) nativeRequire(args []object.Value) (object.Value, error) {
	s, ok := arg(args, 0).(*object.String)
	if !ok {
		return nil, &InvalidOperation{Message: "require expects a library name"}
	}
	if _, bound := e.current.Lookup(s.Value); bound {
		return nil, &ImportError{Name: s.Value}
	}
	lib, ok := e.registered[s.Value]
	if !ok {
		return nil, &ImportError{Name: s.Value}
	}
	e.current.Declare(s.Value, lib)
	return lib, nil
}
