// Package stdlib builds the fixed set of host Library values the
// evaluator installs at construction: string, table, math, os, io,
// coroutine, and package. Each mirrors spec.md §4.4's allowlist; in os,
// io, coroutine and package, a fixed list of names outside it is wired
// as Library methods that always return object.PermissionError via
// object.Blocked. Names on neither list are simply absent.
package stdlib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luasand/luasand/object"
)

func argError(fn string, want, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", fn, want, got)
}

func asString(fn string, args []object.Value, i int) (string, error) {
	if i >= len(args) {
		return "", argError(fn, i+1, len(args))
	}
	s, ok := args[i].(*object.String)
	if !ok {
		return "", fmt.Errorf("%s argument %d must be a string, got %s", fn, i+1, args[i].Kind())
	}
	return s.Value, nil
}

func asInteger(fn string, args []object.Value, i int) (int64, error) {
	if i >= len(args) {
		return 0, argError(fn, i+1, len(args))
	}
	n, ok := args[i].(*object.Integer)
	if !ok {
		return 0, fmt.Errorf("%s argument %d must be an integer, got %s", fn, i+1, args[i].Kind())
	}
	return n.Value, nil
}

// StringLibrary builds the `string` library: byte, char, find, format,
// gmatch, gsub, len, lower, match, rep, reverse, sub, upper. Grounded on
// the teacher's std/strings.go (case conversion, reverse, substring) and
// std/regex.go (find/match/gsub via Go's regexp package).
func StringLibrary() *object.Library {
	lib := object.NewLibrary("string")
	lib.AddMethod("byte", stringByte)
	lib.AddMethod("char", stringChar)
	lib.AddMethod("find", stringFind)
	lib.AddMethod("format", stringFormat)
	lib.AddMethod("gmatch", stringGmatch)
	lib.AddMethod("gsub", stringGsub)
	lib.AddMethod("len", stringLen)
	lib.AddMethod("lower", stringLower)
	lib.AddMethod("match", stringMatch)
	lib.AddMethod("rep", stringRep)
	lib.AddMethod("reverse", stringReverse)
	lib.AddMethod("sub", stringSub)
	lib.AddMethod("upper", stringUpper)
	return lib
}

func stringByte(args []object.Value) (object.Value, error) {
	s, err := asString("string.byte", args, 0)
	if err != nil {
		return nil, err
	}
	idx := int64(1)
	if len(args) > 1 {
		idx, err = asInteger("string.byte", args, 1)
		if err != nil {
			return nil, err
		}
	}
	if idx < 1 || int(idx) > len(s) {
		return &object.Nil{}, nil
	}
	return &object.Integer{Value: int64(s[idx-1])}, nil
}

func stringChar(args []object.Value) (object.Value, error) {
	var b strings.Builder
	for i := range args {
		n, err := asInteger("string.char", args, i)
		if err != nil {
			return nil, err
		}
		b.WriteByte(byte(n))
	}
	return &object.String{Value: b.String()}, nil
}

func stringLen(args []object.Value) (object.Value, error) {
	s, err := asString("string.len", args, 0)
	if err != nil {
		return nil, err
	}
	return &object.Integer{Value: int64(len(s))}, nil
}

func stringLower(args []object.Value) (object.Value, error) {
	s, err := asString("string.lower", args, 0)
	if err != nil {
		return nil, err
	}
	return &object.String{Value: strings.ToLower(s)}, nil
}

func stringUpper(args []object.Value) (object.Value, error) {
	s, err := asString("string.upper", args, 0)
	if err != nil {
		return nil, err
	}
	return &object.String{Value: strings.ToUpper(s)}, nil
}

func stringReverse(args []object.Value) (object.Value, error) {
	s, err := asString("string.reverse", args, 0)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return &object.String{Value: string(runes)}, nil
}

func stringRep(args []object.Value) (object.Value, error) {
	s, err := asString("string.rep", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := asInteger("string.rep", args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	return &object.String{Value: strings.Repeat(s, int(n))}, nil
}

// stringSub mirrors Lua's 1-based, negative-index-from-end substring:
// sub(s, i, j) with j defaulting to the string's length.
func stringSub(args []object.Value) (object.Value, error) {
	s, err := asString("string.sub", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := asInteger("string.sub", args, 1)
	if err != nil {
		return nil, err
	}
	j := int64(len(s))
	if len(args) > 2 {
		j, err = asInteger("string.sub", args, 2)
		if err != nil {
			return nil, err
		}
	}
	n := int64(len(s))
	if i < 0 {
		i = n + i + 1
	}
	if j < 0 {
		j = n + j + 1
	}
	if i < 1 {
		i = 1
	}
	if j > n {
		j = n
	}
	if i > j {
		return &object.String{Value: ""}, nil
	}
	return &object.String{Value: s[i-1 : j]}, nil
}

// stringFormat implements a small %s/%d/%f/%q subset over Go's fmt,
// grounded on the teacher's std/format.go.
func stringFormat(args []object.Value) (object.Value, error) {
	format, err := asString("string.format", args, 0)
	if err != nil {
		return nil, err
	}
	rest := args[1:]
	var out strings.Builder
	argIdx := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			out.WriteByte(format[i])
			continue
		}
		verb := format[i+1]
		i++
		if verb == '%' {
			out.WriteByte('%')
			continue
		}
		if argIdx >= len(rest) {
			return nil, fmt.Errorf("string.format: not enough arguments for format %q", format)
		}
		v := rest[argIdx]
		argIdx++
		switch verb {
		case 's':
			out.WriteString(v.String())
		case 'q':
			out.WriteString(strconv.Quote(v.String()))
		case 'd':
			n, ok := v.(*object.Integer)
			if !ok {
				return nil, fmt.Errorf("string.format: %%d argument must be an integer")
			}
			fmt.Fprintf(&out, "%d", n.Value)
		case 'f':
			f, ok := asNumber(v)
			if !ok {
				return nil, fmt.Errorf("string.format: %%f argument must be a number")
			}
			fmt.Fprintf(&out, "%f", f)
		default:
			return nil, fmt.Errorf("string.format: unsupported verb %%%c", verb)
		}
	}
	return &object.String{Value: out.String()}, nil
}

func asNumber(v object.Value) (float64, bool) {
	switch t := v.(type) {
	case *object.Integer:
		return float64(t.Value), true
	case *object.Float:
		return t.Value, true
	default:
		return 0, false
	}
}

func stringFind(args []object.Value) (object.Value, error) {
	s, err := asString("string.find", args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := asString("string.find", args, 1)
	if err != nil {
		return nil, err
	}
	re, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return &object.Nil{}, nil
	}
	result := object.NewArrayTable()
	result.Append(&object.Integer{Value: int64(loc[0] + 1)})
	result.Append(&object.Integer{Value: int64(loc[1])})
	return result, nil
}

func stringMatch(args []object.Value) (object.Value, error) {
	s, err := asString("string.match", args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := asString("string.match", args, 1)
	if err != nil {
		return nil, err
	}
	re, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	m := re.FindString(s)
	if m == "" && !re.MatchString(s) {
		return &object.Nil{}, nil
	}
	return &object.String{Value: m}, nil
}

// stringGmatch returns an array table of every non-overlapping match, to
// be walked with a generic `for` through ipairs (the for statement itself
// only accepts a sequence of pair tables). luasand has no first-class iterator
// value, so unlike Lua's gmatch (which returns a stateful iterator
// function) this eagerly materializes all matches.
func stringGmatch(args []object.Value) (object.Value, error) {
	s, err := asString("string.gmatch", args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := asString("string.gmatch", args, 1)
	if err != nil {
		return nil, err
	}
	re, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(s, -1)
	result := object.NewArrayTable()
	for _, m := range matches {
		result.Append(&object.String{Value: m})
	}
	return result, nil
}

func stringGsub(args []object.Value) (object.Value, error) {
	s, err := asString("string.gsub", args, 0)
	if err != nil {
		return nil, err
	}
	pattern, err := asString("string.gsub", args, 1)
	if err != nil {
		return nil, err
	}
	repl, err := asString("string.gsub", args, 2)
	if err != nil {
		return nil, err
	}
	re, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	n := -1
	if len(args) > 3 {
		count, err := asInteger("string.gsub", args, 3)
		if err != nil {
			return nil, err
		}
		n = int(count)
	}
	replaced := 0
	out := re.ReplaceAllStringFunc(s, func(m string) string {
		if n >= 0 && replaced >= n {
			return m
		}
		replaced++
		return repl
	})
	result := object.NewArrayTable()
	result.Append(&object.String{Value: out})
	result.Append(&object.Integer{Value: int64(replaced)})
	return result, nil
}
