package eval

import (
	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

// evalIfStatement walks the elseif list in order between the then-block
// and the else-block; the first truthy condition runs and the rest are
// never evaluated.
func (e *Evaluator) evalIfStatement(n *ast.IfStatement) (object.Value, error) {
	cond, err := e.eval(n.Condition)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		return &object.Nil{}, e.execBlock(n.ThenBlock)
	}

	for _, branch := range n.ElseIfs {
		c, err := e.eval(branch.Condition)
		if err != nil {
			return nil, err
		}
		if object.Truthy(c) {
			return &object.Nil{}, e.execBlock(branch.Block)
		}
	}

	if n.ElseBlock != nil {
		return &object.Nil{}, e.execBlock(n.ElseBlock)
	}
	return &object.Nil{}, nil
}
