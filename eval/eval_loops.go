package eval

import (
	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

const maxLoopIterations = 65536

func (e *Evaluator) evalForStatement(n *ast.ForStatement) (object.Value, error) {
	if n.ExprList != nil {
		return e.evalGenericFor(n)
	}
	return e.evalNumericFor(n)
}

func (e *Evaluator) evalNumericFor(n *ast.ForStatement) (object.Value, error) {
	startV, err := e.eval(n.Start)
	if err != nil {
		return nil, err
	}
	endV, err := e.eval(n.End)
	if err != nil {
		return nil, err
	}
	var stepV object.Value = &object.Integer{Value: 1}
	if n.Step != nil {
		stepV, err = e.eval(n.Step)
		if err != nil {
			return nil, err
		}
	}

	sf, sok := asFloat(startV)
	ef, eok := asFloat(endV)
	pf, pok := asFloat(stepV)
	if !sok || !eok || !pok {
		return nil, &InvalidOperation{Message: "numeric for requires numeric start/end/step"}
	}
	if pf == 0 {
		return nil, &InvalidOperation{Message: "numeric for step must not be zero"}
	}
	_, startIsInt := startV.(*object.Integer)
	_, endIsInt := endV.(*object.Integer)
	_, stepIsInt := stepV.(*object.Integer)
	useInt := startIsInt && endIsInt && stepIsInt

	iterations := 0
	i := sf
	for {
		if pf > 0 {
			if i > ef {
				break
			}
		} else {
			if i < ef {
				break
			}
		}
		iterations++
		if iterations > maxLoopIterations {
			return nil, &MaximumLoopError{}
		}

		var loopVal object.Value
		if useInt {
			loopVal = &object.Integer{Value: int64(i)}
		} else {
			loopVal = &object.Float{Value: i}
		}
		e.current.Declare(n.VarNames[0], loopVal)

		if err := e.execBlock(n.Body); err != nil {
			return nil, err
		}
		if e.returning {
			return &object.Nil{}, nil
		}
		if e.breaking {
			e.breaking = false
			break
		}
		i += pf
	}
	return &object.Nil{}, nil
}

// evalGenericFor iterates a sequence produced by a native like pairs/
// ipairs: an array table whose entries are themselves 2-element pair
// tables, binding VarNames[0]/[1] from each pair in turn.
func (e *Evaluator) evalGenericFor(n *ast.ForStatement) (object.Value, error) {
	seq, err := e.eval(n.ExprList)
	if err != nil {
		return nil, err
	}
	table, ok := seq.(*object.Table)
	if !ok || !table.IsArray {
		return nil, &InvalidOperation{Message: "generic for requires an iterable sequence"}
	}

	iterations := 0
	for _, entry := range table.Entries {
		iterations++
		if iterations > maxLoopIterations {
			return nil, &MaximumLoopError{}
		}
		pair, ok := entry.Value.(*object.Table)
		if !ok {
			return nil, &InvalidOperation{Message: "generic for sequence must yield pair values"}
		}
		if len(n.VarNames) > 0 {
			var v0 object.Value = &object.Nil{}
			if len(pair.Entries) > 0 {
				v0 = pair.Entries[0].Value
			}
			e.current.Declare(n.VarNames[0], v0)
		}
		if len(n.VarNames) > 1 {
			var v1 object.Value = &object.Nil{}
			if len(pair.Entries) > 1 {
				v1 = pair.Entries[1].Value
			}
			e.current.Declare(n.VarNames[1], v1)
		}

		if err := e.execBlock(n.Body); err != nil {
			return nil, err
		}
		if e.returning {
			return &object.Nil{}, nil
		}
		if e.breaking {
			e.breaking = false
			break
		}
	}
	return &object.Nil{}, nil
}

func (e *Evaluator) evalWhileStatement(n *ast.WhileStatement) (object.Value, error) {
	iterations := 0
	for {
		cond, err := e.eval(n.Condition)
		if err != nil {
			return nil, err
		}
		if !object.Truthy(cond) {
			break
		}
		iterations++
		if iterations > maxLoopIterations {
			return nil, &MaximumLoopError{}
		}
		if err := e.execBlock(n.Body); err != nil {
			return nil, err
		}
		if e.returning {
			return &object.Nil{}, nil
		}
		if e.breaking {
			e.breaking = false
			break
		}
	}
	return &object.Nil{}, nil
}
