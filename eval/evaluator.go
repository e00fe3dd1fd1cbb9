// Package eval implements the tree-walking evaluator: it walks an
// ast.Root with a Go type switch (eval_<Variant>-shaped methods, no
// visitor interface) over a flat per-call-frame Environment, wrapping
// every runtime error in a ChainedException as it unwinds.
package eval

import (
	"fmt"
	"strings"

	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/env"
	"github.com/luasand/luasand/object"
)

// Evaluator owns one interpreter instance's full runtime state: the
// active environment, the saved-environment stack used for function
// calls, the captured log buffer, the pending-return/break signals, and
// the registered libraries. It is not reentrant — callers must not
// evaluate concurrently on the same instance.
type Evaluator struct {
	current *env.Environment
	stack   []*env.Environment

	logs strings.Builder

	returning   bool
	returnValue object.Value
	breaking    bool

	stdlib     map[string]*object.Library
	registered map[string]*object.Library

	source string
	lines  []string

	tableIDs    map[*object.Table]int
	nextTableID int
}

// New builds an Evaluator with the fixed host libraries installed and
// libraries made available to require().
func New(stdlib map[string]*object.Library, libraries ...*object.Library) *Evaluator {
	e := &Evaluator{
		stdlib:     stdlib,
		registered: make(map[string]*object.Library),
		tableIDs:   make(map[*object.Table]int),
	}
	for _, lib := range libraries {
		e.registered[lib.Name] = lib
	}
	e.ResetEnvironment()
	return e
}

// ResetEnvironment reinstalls the fixed libraries and always-present
// globals into a fresh environment, dropping any user definitions.
func (e *Evaluator) ResetEnvironment() {
	e.current = env.New()
	for name, lib := range e.stdlib {
		e.current.Declare(name, lib)
	}
	e.installGlobals()
}

// Reset clears captured logs and reinstalls the environment.
func (e *Evaluator) Reset() {
	e.ClearLogs()
	e.ResetEnvironment()
}

// Logs returns the accumulated captured print output.
func (e *Evaluator) Logs() string { return e.logs.String() }

// ClearLogs empties the captured log buffer.
func (e *Evaluator) ClearLogs() { e.logs.Reset() }

// Run parses-and-evaluates nothing itself; it evaluates an already
// parsed program, retaining source for error context.
func (e *Evaluator) Run(root *ast.Root, source string) (object.Value, error) {
	e.source = source
	e.lines = strings.Split(source, "\n")
	e.returning = false
	e.breaking = false
	e.returnValue = nil

	var last object.Value = &object.Nil{}
	for _, stmt := range root.Body {
		v, err := e.eval(stmt)
		if err != nil {
			return nil, err
		}
		last = v
		if e.returning {
			return e.returnValue, nil
		}
	}
	return last, nil
}

func (e *Evaluator) sourceLine(line int) string {
	if line-1 >= 0 && line-1 < len(e.lines) {
		return strings.TrimSpace(e.lines[line-1])
	}
	return ""
}

// wrap turns a plain error into a ChainedException tagged with node's
// line and kind, unless it is already a ChainedException — those
// propagate unchanged so the innermost context is preserved.
func (e *Evaluator) wrap(err error, node ast.Node) error {
	if err == nil {
		return nil
	}
	if already, ok := err.(*ChainedException); ok {
		return already
	}
	return &ChainedException{
		Message:    err.Error(),
		Line:       node.Line(),
		NodeKind:   nodeKind(node),
		SourceLine: e.sourceLine(node.Line()),
		Cause:      err,
	}
}

func nodeKind(node ast.Node) string {
	switch node.(type) {
	case *ast.Root:
		return "Root"
	case *ast.Literal:
		return "Literal"
	case *ast.Table:
		return "Table"
	case *ast.VariableDeclaration:
		return "VariableDeclaration"
	case *ast.VariableAssignment:
		return "VariableAssignment"
	case *ast.VariableReference:
		return "VariableReference"
	case *ast.UnaryOperation:
		return "UnaryOperation"
	case *ast.BinaryOperation:
		return "BinaryOperation"
	case *ast.TernaryOperation:
		return "TernaryOperation"
	case *ast.IfStatement:
		return "IfStatement"
	case *ast.ForStatement:
		return "ForStatement"
	case *ast.WhileStatement:
		return "WhileStatement"
	case *ast.BreakStatement:
		return "BreakStatement"
	case *ast.FunctionDeclaration:
		return "FunctionDeclaration"
	case *ast.FunctionCall:
		return "FunctionCall"
	case *ast.ReturnStatement:
		return "ReturnStatement"
	case *ast.Object:
		return "Object"
	case *ast.MethodChain:
		return "MethodChain"
	case *ast.MethodCall:
		return "MethodCall"
	default:
		return fmt.Sprintf("%T", node)
	}
}

// eval is the single dispatch point: it type-switches on the concrete
// AST node and delegates to the matching eval_<Variant> method, wrapping
// any error that escapes with this node's context.
func (e *Evaluator) eval(node ast.Node) (object.Value, error) {
	var v object.Value
	var err error

	switch n := node.(type) {
	case *ast.Literal:
		v, err = e.evalLiteral(n)
	case *ast.Table:
		v, err = e.evalTable(n)
	case *ast.VariableDeclaration:
		v, err = e.evalVariableDeclaration(n)
	case *ast.VariableAssignment:
		v, err = e.evalVariableAssignment(n)
	case *ast.VariableReference:
		v, err = e.evalVariableReference(n)
	case *ast.UnaryOperation:
		v, err = e.evalUnaryOperation(n)
	case *ast.BinaryOperation:
		v, err = e.evalBinaryOperation(n)
	case *ast.IfStatement:
		v, err = e.evalIfStatement(n)
	case *ast.ForStatement:
		v, err = e.evalForStatement(n)
	case *ast.WhileStatement:
		v, err = e.evalWhileStatement(n)
	case *ast.BreakStatement:
		e.breaking = true
		v, err = &object.Nil{}, nil
	case *ast.FunctionDeclaration:
		v, err = e.evalFunctionDeclaration(n)
	case *ast.FunctionCall:
		v, err = e.evalFunctionCall(n)
	case *ast.ReturnStatement:
		v, err = e.evalReturnStatement(n)
	case *ast.Object:
		v, err = e.evalObject(n)
	case *ast.MethodChain:
		v, err = e.evalMethodChain(n)
	case *ast.MethodCall:
		v, err = e.evalMethodCall(n)
	default:
		err = &InvalidOperation{Message: fmt.Sprintf("cannot evaluate node of type %T", node)}
	}

	if err != nil {
		return nil, e.wrap(err, node)
	}
	return v, nil
}

// execBlock runs stmts in order, stopping early (without error) if a
// return or break signal is raised by a nested statement.
func (e *Evaluator) execBlock(stmts []ast.Node) error {
	for _, stmt := range stmts {
		if _, err := e.eval(stmt); err != nil {
			return err
		}
		if e.returning || e.breaking {
			return nil
		}
	}
	return nil
}

// tostring renders any Value the way the `tostring` global and `print`
// do: most kinds via their own String(), tables via a per-Evaluator
// stable identity tag rather than a raw pointer.
func (e *Evaluator) tostring(v object.Value) string {
	if t, ok := v.(*object.Table); ok {
		id, ok := e.tableIDs[t]
		if !ok {
			e.nextTableID++
			id = e.nextTableID
			e.tableIDs[t] = id
		}
		return fmt.Sprintf("table: 0x%04x", id)
	}
	return v.String()
}
