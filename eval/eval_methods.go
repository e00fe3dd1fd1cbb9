package eval

import (
	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

// evalObject resolves the head of a method chain: a bare name expected
// to be bound to a Library.
func (e *Evaluator) evalObject(n *ast.Object) (object.Value, error) {
	value, ok := e.current.Lookup(n.Name)
	if !ok {
		return nil, &FunctionNotDeclared{Name: n.Name}
	}
	return value, nil
}

// evalMethodChain resolves name against its parent library's attributes
// first, then its methods, without calling it.
func (e *Evaluator) evalMethodChain(n *ast.MethodChain) (object.Value, error) {
	parent, err := e.eval(n.Parent)
	if err != nil {
		return nil, err
	}
	lib, ok := parent.(*object.Library)
	if !ok {
		return nil, &InvalidOperation{Message: "cannot access a member of a non-library value"}
	}
	value, ok := lib.Resolve(n.Name)
	if !ok {
		return nil, &FunctionNotDeclared{Name: n.Name}
	}
	return value, nil
}

func (e *Evaluator) evalMethodCall(n *ast.MethodCall) (object.Value, error) {
	parent, err := e.eval(n.Parent)
	if err != nil {
		return nil, err
	}
	lib, ok := parent.(*object.Library)
	if !ok {
		return nil, &InvalidOperation{Message: "cannot call a member of a non-library value"}
	}
	method, ok := lib.Methods[n.Name]
	if !ok {
		if _, isAttr := lib.Attributes[n.Name]; isAttr {
			return nil, &InvalidOperation{Message: lib.Name + "." + n.Name + " is not callable"}
		}
		return nil, &FunctionNotDeclared{Name: n.Name}
	}
	args, err := e.evalArgs(n.Arguments)
	if err != nil {
		return nil, err
	}
	return method.Call(args)
}
