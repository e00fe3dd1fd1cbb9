package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luasand/luasand/ast"
)

func TestParseLocalDeclaration(t *testing.T) {
	root, err := Parse(`local x = 1 + 2 * 3`)
	require.NoError(t, err)
	require.Len(t, root.Body, 1)
	decl, ok := root.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	bin, ok := decl.Initializer.(*ast.BinaryOperation)
	require.True(t, ok)
	require.Equal(t, ast.BinPlus, bin.Operator)
}

func TestParsePrecedenceLeftAssociative(t *testing.T) {
	// 2 ^ 3 ^ 2 should parse left-associative: (2^3)^2, per the language's
	// table (a deliberate departure from Lua's right-associative ^).
	root, err := Parse(`local x = 2 ^ 3 ^ 2`)
	require.NoError(t, err)
	decl := root.Body[0].(*ast.VariableDeclaration)
	outer := decl.Initializer.(*ast.BinaryOperation)
	require.Equal(t, ast.BinPow, outer.Operator)
	inner, ok := outer.Left.(*ast.BinaryOperation)
	require.True(t, ok, "expected left-associative grouping, got right-associative")
	require.Equal(t, ast.BinPow, inner.Operator)
}

func TestParseMultipleAssignmentRejected(t *testing.T) {
	_, err := Parse(`local a, b = 1, 2`)
	require.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	require.True(t, ok)
	require.Equal(t, "MultipleAssignmentUnsupported", synErr.Message)
}

func TestParseIfElseIfElse(t *testing.T) {
	root, err := Parse(`
if x == 1 then
  return 1
elseif x == 2 then
  return 2
elseif x == 3 then
  return 3
else
  return 0
end
`)
	require.NoError(t, err)
	ifStmt, ok := root.Body[0].(*ast.IfStatement)
	require.True(t, ok)
	require.Len(t, ifStmt.ElseIfs, 2)
	require.Len(t, ifStmt.ElseBlock, 1)
}

func TestParseNumericFor(t *testing.T) {
	root, err := Parse(`
for i = 1, 10, 2 do
  print(i)
end
`)
	require.NoError(t, err)
	forStmt, ok := root.Body[0].(*ast.ForStatement)
	require.True(t, ok)
	require.Equal(t, []string{"i"}, forStmt.VarNames)
	require.NotNil(t, forStmt.Start)
	require.NotNil(t, forStmt.End)
	require.NotNil(t, forStmt.Step)
	require.Nil(t, forStmt.ExprList)
}

func TestParseGenericFor(t *testing.T) {
	root, err := Parse(`
for k, v in pairs(t) do
  print(k, v)
end
`)
	require.NoError(t, err)
	forStmt, ok := root.Body[0].(*ast.ForStatement)
	require.True(t, ok)
	require.Equal(t, []string{"k", "v"}, forStmt.VarNames)
	require.NotNil(t, forStmt.ExprList)
	require.Nil(t, forStmt.Start)
}

func TestParseWhileLoop(t *testing.T) {
	root, err := Parse(`
while i < 10 do
  i = i + 1
end
`)
	require.NoError(t, err)
	_, ok := root.Body[0].(*ast.WhileStatement)
	require.True(t, ok)
}

func TestParseFunctionDeclaration(t *testing.T) {
	root, err := Parse(`
function add(a, b)
  return a + b
end
`)
	require.NoError(t, err)
	fn, ok := root.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Equal(t, []string{"a", "b"}, fn.Params)
}

func TestParseMethodChainAndCall(t *testing.T) {
	root, err := Parse(`string.upper("hi")`)
	require.NoError(t, err)
	call, ok := root.Body[0].(*ast.MethodCall)
	require.True(t, ok)
	require.Equal(t, "upper", call.Name)
	obj, ok := call.Parent.(*ast.Object)
	require.True(t, ok)
	require.Equal(t, "string", obj.Name)
}

func TestParseNestedMethodChain(t *testing.T) {
	root, err := Parse(`local x = t.a.b`)
	require.NoError(t, err)
	decl := root.Body[0].(*ast.VariableDeclaration)
	outer, ok := decl.Initializer.(*ast.MethodChain)
	require.True(t, ok)
	require.Equal(t, "b", outer.Name)
	inner, ok := outer.Parent.(*ast.MethodChain)
	require.True(t, ok)
	require.Equal(t, "a", inner.Name)
}

func TestParseIndexedAssignment(t *testing.T) {
	root, err := Parse(`t[1] = "x"`)
	require.NoError(t, err)
	assign, ok := root.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	require.Equal(t, "t", assign.Name)
	require.NotNil(t, assign.Index)
}

func TestParseTableConstructorArray(t *testing.T) {
	root, err := Parse(`local t = {1, 2, 3}`)
	require.NoError(t, err)
	decl := root.Body[0].(*ast.VariableDeclaration)
	tbl, ok := decl.Initializer.(*ast.Table)
	require.True(t, ok)
	require.True(t, tbl.IsArray)
	require.Len(t, tbl.Entries, 3)
}

func TestParseTableConstructorDict(t *testing.T) {
	root, err := Parse(`local t = {x = 1, y = 2}`)
	require.NoError(t, err)
	decl := root.Body[0].(*ast.VariableDeclaration)
	tbl, ok := decl.Initializer.(*ast.Table)
	require.True(t, ok)
	require.False(t, tbl.IsArray)
	require.Len(t, tbl.Entries, 2)
}

func TestParseUnaryOperators(t *testing.T) {
	root, err := Parse(`local x = -1`)
	require.NoError(t, err)
	decl := root.Body[0].(*ast.VariableDeclaration)
	un, ok := decl.Initializer.(*ast.UnaryOperation)
	require.True(t, ok)
	require.Equal(t, ast.UnaryMinus, un.Operator)
}

func TestParseSyntaxErrorHasLineAndContext(t *testing.T) {
	_, err := Parse("local x = \nif then end")
	require.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	require.True(t, ok)
	require.Greater(t, synErr.Line, 0)
}

func TestParseFunctionCallAsStatement(t *testing.T) {
	root, err := Parse(`print("hello")`)
	require.NoError(t, err)
	call, ok := root.Body[0].(*ast.FunctionCall)
	require.True(t, ok)
	require.Equal(t, "print", call.Name)
	require.Len(t, call.Arguments, 1)
}
