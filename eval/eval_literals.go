package eval

import (
	"fmt"

	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

func (e *Evaluator) evalLiteral(n *ast.Literal) (object.Value, error) {
	switch n.Kind {
	case ast.LiteralInteger:
		return &object.Integer{Value: n.Value.(int64)}, nil
	case ast.LiteralFloat:
		return &object.Float{Value: n.Value.(float64)}, nil
	case ast.LiteralString:
		return &object.String{Value: n.Value.(string)}, nil
	case ast.LiteralBoolean:
		return &object.Boolean{Value: n.Value.(bool)}, nil
	case ast.LiteralNil:
		return &object.Nil{}, nil
	default:
		return nil, &InvalidOperation{Message: fmt.Sprintf("unknown literal kind %q", n.Kind)}
	}
}

// evalTable evaluates a table constructor's entries in declaration
// order. Array-table keys are INTEGER literals assigned by the parser;
// dictionary-table keys are STRING literals holding the field's textual
// name — both already guaranteed by the parser, so no further key
// validation happens here.
func (e *Evaluator) evalTable(n *ast.Table) (object.Value, error) {
	t := &object.Table{IsArray: n.IsArray}
	for _, entry := range n.Entries {
		value, err := e.eval(entry.Value)
		if err != nil {
			return nil, err
		}
		if n.IsArray {
			keyLit := entry.Key.(*ast.Literal)
			t.Entries = append(t.Entries, object.Entry{
				Key:   &object.Integer{Value: keyLit.Value.(int64)},
				Value: value,
			})
		} else {
			keyLit := entry.Key.(*ast.Literal)
			t.Entries = append(t.Entries, object.Entry{
				Key:   &object.String{Value: keyLit.Value.(string)},
				Value: value,
			})
		}
	}
	return t, nil
}
