package eval

import (
	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/env"
	"github.com/luasand/luasand/object"
)

// evalFunctionDeclaration binds name to a closure over params/body in
// the current environment; the declaration doubles as the callable
// value (FunctionDeclaration AST node -> object.Function conversion
// happens once, here, rather than on every call). A function literal
// parsed in expression position (e.g. the callback argument to pcall)
// carries an empty Name and is returned without being bound anywhere.
func (e *Evaluator) evalFunctionDeclaration(n *ast.FunctionDeclaration) (object.Value, error) {
	fn := &object.Function{
		Name:     n.Name,
		Params:   n.Params,
		Body:     n.Body,
		Captured: e.current.Copy(),
	}
	if n.Name != "" {
		e.current.Declare(n.Name, fn)
	}
	return fn, nil
}

func (e *Evaluator) evalFunctionCall(n *ast.FunctionCall) (object.Value, error) {
	value, ok := e.current.Lookup(n.Name)
	if !ok {
		return nil, &FunctionNotDeclared{Name: n.Name}
	}
	switch fn := value.(type) {
	case *object.Native:
		args, err := e.evalArgs(n.Arguments)
		if err != nil {
			return nil, err
		}
		return fn.Call(args)
	case *object.Function:
		return e.callFunction(fn, n.Arguments, n.Name)
	default:
		return nil, &InvalidOperation{Message: "'" + n.Name + "' is not callable"}
	}
}

func (e *Evaluator) evalArgs(argExprs []ast.Node) ([]object.Value, error) {
	args := make([]object.Value, len(argExprs))
	for i, a := range argExprs {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// callFunction implements the call-frame swap described in §5: the
// caller's *current* environment (not the function's declaration-time
// snapshot) is shallow-copied and overlaid with parameter bindings, the
// caller's environment is pushed, and it is restored on the way out
// regardless of how the call ends.
func (e *Evaluator) callFunction(fn *object.Function, argExprs []ast.Node, name string) (object.Value, error) {
	args, err := e.evalArgs(argExprs)
	if err != nil {
		return nil, err
	}
	if len(args) != len(fn.Params) {
		return nil, &FunctionArgumentError{Name: name, Expected: len(fn.Params), Got: len(args)}
	}
	return e.callValue(fn, args)
}

func (e *Evaluator) evalReturnStatement(n *ast.ReturnStatement) (object.Value, error) {
	var value object.Value = &object.Nil{}
	if n.Value != nil {
		v, err := e.eval(n.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	e.returnValue = value
	e.returning = true
	return value, nil
}

// callValue invokes any callable Value (Native or Function) with
// already-evaluated arguments; used by pcall/xpcall, which receive a
// function value rather than a bare identifier.
func (e *Evaluator) callValue(fn object.Value, args []object.Value) (object.Value, error) {
	switch f := fn.(type) {
	case *object.Native:
		return f.Call(args)
	case *object.Function:
		if len(args) != len(f.Params) {
			return nil, &FunctionArgumentError{Name: f.Name, Expected: len(f.Params), Got: len(args)}
		}
		body, _ := f.Body.([]ast.Node)
		caller := e.current
		e.stack = append(e.stack, caller)
		callEnv := caller.Copy().(*env.Environment)
		for i, p := range f.Params {
			callEnv.Declare(p, args[i])
		}
		e.current = callEnv

		prevReturning, prevReturnValue, prevBreaking := e.returning, e.returnValue, e.breaking
		e.returning, e.returnValue, e.breaking = false, nil, false

		execErr := e.execBlock(body)
		result := e.returnValue
		if result == nil {
			result = &object.Nil{}
		}

		e.current = e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.returning, e.returnValue, e.breaking = prevReturning, prevReturnValue, prevBreaking

		if execErr != nil {
			return nil, execErr
		}
		return result, nil
	default:
		return nil, &InvalidOperation{Message: "value is not callable"}
	}
}
