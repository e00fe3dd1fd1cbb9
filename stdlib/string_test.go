package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luasand/luasand/object"
)

func call(t *testing.T, lib *object.Library, method string, args ...object.Value) object.Value {
	t.Helper()
	fn, ok := lib.Methods[method]
	require.True(t, ok, "method %s not found on %s", method, lib.Name)
	v, err := fn.Call(args)
	require.NoError(t, err)
	return v
}

func TestStringUpperLower(t *testing.T) {
	lib := StringLibrary()
	require.Equal(t, "HELLO", call(t, lib, "upper", &object.String{Value: "hello"}).String())
	require.Equal(t, "hello", call(t, lib, "lower", &object.String{Value: "HELLO"}).String())
}

func TestStringSubNegativeIndex(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "sub", &object.String{Value: "hello world"}, &object.Integer{Value: -5})
	require.Equal(t, "world", v.String())
}

func TestStringRep(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "rep", &object.String{Value: "ab"}, &object.Integer{Value: 3})
	require.Equal(t, "ababab", v.String())
}

func TestStringFindReturnsOneBasedRange(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "find", &object.String{Value: "hello world"}, &object.String{Value: "world"})
	table, ok := v.(*object.Table)
	require.True(t, ok)
	require.Equal(t, int64(7), table.Entries[0].Value.(*object.Integer).Value)
	require.Equal(t, int64(11), table.Entries[1].Value.(*object.Integer).Value)
}

func TestStringFindNoMatchReturnsNil(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "find", &object.String{Value: "hello"}, &object.String{Value: "xyz"})
	require.Equal(t, object.KindNil, v.Kind())
}

func TestStringGsubCountsReplacements(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "gsub", &object.String{Value: "a.b.c"}, &object.String{Value: "%."}, &object.String{Value: "-"})
	result := v.(*object.Table)
	require.Equal(t, "a-b-c", result.Entries[0].Value.String())
	require.Equal(t, int64(2), result.Entries[1].Value.(*object.Integer).Value)
}

func TestStringFormat(t *testing.T) {
	lib := StringLibrary()
	v := call(t, lib, "format",
		&object.String{Value: "%s scored %d"},
		&object.String{Value: "alice"},
		&object.Integer{Value: 9})
	require.Equal(t, "alice scored 9", v.String())
}

func TestPatternRejectsBalancedMatch(t *testing.T) {
	_, err := translatePattern("%b()")
	require.Error(t, err)
}

func TestPatternTranslatesClasses(t *testing.T) {
	re, err := translatePattern("%d+")
	require.NoError(t, err)
	require.True(t, re.MatchString("42"))
	require.False(t, re.MatchString("abc"))
}
