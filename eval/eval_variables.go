package eval

import (
	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

// evalVariableDeclaration installs name (and, for a pcall/xpcall
// destructuring form, ExtraNames) in the current environment.
// Re-declaration simply overwrites.
func (e *Evaluator) evalVariableDeclaration(n *ast.VariableDeclaration) (object.Value, error) {
	value, err := e.eval(n.Initializer)
	if err != nil {
		return nil, err
	}
	if len(n.ExtraNames) == 0 {
		e.current.Declare(n.Name, value)
		return value, nil
	}

	names := append([]string{n.Name}, n.ExtraNames...)
	if table, ok := value.(*object.Table); ok {
		for i, name := range names {
			if i < len(table.Entries) {
				e.current.Declare(name, table.Entries[i].Value)
			} else {
				e.current.Declare(name, &object.Nil{})
			}
		}
	} else {
		e.current.Declare(names[0], value)
		for _, name := range names[1:] {
			e.current.Declare(name, &object.Nil{})
		}
	}
	return value, nil
}

func (e *Evaluator) evalVariableAssignment(n *ast.VariableAssignment) (object.Value, error) {
	value, err := e.eval(n.Value)
	if err != nil {
		return nil, err
	}
	if n.Index == nil {
		if !e.current.Assign(n.Name, value) {
			return nil, &VariableNotDeclared{Name: n.Name}
		}
		return value, nil
	}

	existing, ok := e.current.Lookup(n.Name)
	if !ok {
		return nil, &VariableNotDeclared{Name: n.Name}
	}
	table, ok := existing.(*object.Table)
	if !ok {
		return nil, &InvalidOperation{Message: "cannot index a non-table value"}
	}
	index, err := e.eval(n.Index)
	if err != nil {
		return nil, err
	}
	if err := table.Set(index, value); err != nil {
		return nil, &InvalidOperation{Message: err.Error()}
	}
	return value, nil
}

func (e *Evaluator) evalVariableReference(n *ast.VariableReference) (object.Value, error) {
	value, ok := e.current.Lookup(n.Name)
	if !ok {
		return nil, &VariableNotDeclared{Name: n.Name}
	}
	if n.Index == nil {
		return value, nil
	}
	table, ok := value.(*object.Table)
	if !ok {
		return nil, &InvalidOperation{Message: "cannot index a non-table value"}
	}
	index, err := e.eval(n.Index)
	if err != nil {
		return nil, err
	}
	result, err := table.Get(index)
	if err != nil {
		return nil, &InvalidOperation{Message: err.Error()}
	}
	return result, nil
}
