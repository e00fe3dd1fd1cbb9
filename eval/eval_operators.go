package eval

import (
	"fmt"
	"math"

	"github.com/luasand/luasand/ast"
	"github.com/luasand/luasand/object"
)

func (e *Evaluator) evalUnaryOperation(n *ast.UnaryOperation) (object.Value, error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.UnaryMinus:
		switch v := operand.(type) {
		case *object.Integer:
			return &object.Integer{Value: -v.Value}, nil
		case *object.Float:
			return &object.Float{Value: -v.Value}, nil
		default:
			return nil, &InvalidOperation{Message: fmt.Sprintf("cannot negate a %s", operand.Kind())}
		}
	case ast.UnaryNot:
		return &object.Boolean{Value: !object.Truthy(operand)}, nil
	case ast.UnaryHash:
		switch v := operand.(type) {
		case *object.String:
			return &object.Integer{Value: int64(len(v.Value))}, nil
		case *object.Table:
			return &object.Integer{Value: int64(v.Length())}, nil
		default:
			return nil, &InvalidOperation{Message: fmt.Sprintf("cannot take length of a %s", operand.Kind())}
		}
	default:
		return nil, &InvalidOperation{Message: fmt.Sprintf("unknown unary operator %q", n.Operator)}
	}
}

func (e *Evaluator) evalBinaryOperation(n *ast.BinaryOperation) (object.Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case ast.BinAnd:
		if !object.Truthy(left) {
			return left, nil
		}
		return right, nil
	case ast.BinOr:
		if object.Truthy(left) {
			return left, nil
		}
		return right, nil
	case ast.BinEqual:
		return &object.Boolean{Value: object.Equal(left, right)}, nil
	case ast.BinNEqual:
		return &object.Boolean{Value: !object.Equal(left, right)}, nil
	case ast.BinConcat:
		return &object.String{Value: e.tostring(left) + e.tostring(right)}, nil
	case ast.BinLT, ast.BinGT, ast.BinLE, ast.BinGE:
		return e.evalComparison(n.Operator, left, right)
	case ast.BinPlus, ast.BinMinus, ast.BinMul, ast.BinDiv, ast.BinMod, ast.BinPow:
		return e.evalArithmetic(n.Operator, left, right)
	default:
		return nil, &InvalidOperation{Message: fmt.Sprintf("unknown binary operator %q", n.Operator)}
	}
}

func (e *Evaluator) evalComparison(op ast.BinaryOperator, left, right object.Value) (object.Value, error) {
	if ls, ok := left.(*object.String); ok {
		rs, ok := right.(*object.String)
		if !ok {
			return nil, &InvalidOperation{Message: "cannot compare string with non-string"}
		}
		return &object.Boolean{Value: compareOrdered(op, ls.Value < rs.Value, ls.Value == rs.Value, ls.Value > rs.Value)}, nil
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, &InvalidOperation{Message: fmt.Sprintf("cannot compare %s with %s", left.Kind(), right.Kind())}
	}
	return &object.Boolean{Value: compareOrdered(op, lf < rf, lf == rf, lf > rf)}, nil
}

func compareOrdered(op ast.BinaryOperator, lt, eq, gt bool) bool {
	switch op {
	case ast.BinLT:
		return lt
	case ast.BinGT:
		return gt
	case ast.BinLE:
		return lt || eq
	case ast.BinGE:
		return gt || eq
	default:
		return false
	}
}

func (e *Evaluator) evalArithmetic(op ast.BinaryOperator, left, right object.Value) (object.Value, error) {
	li, lIsInt := left.(*object.Integer)
	ri, rIsInt := right.(*object.Integer)
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, &InvalidOperation{Message: fmt.Sprintf("cannot apply %s to %s and %s", op, left.Kind(), right.Kind())}
	}

	if op == ast.BinDiv {
		return &object.Float{Value: lf / rf}, nil
	}
	if op == ast.BinPow {
		return &object.Float{Value: math.Pow(lf, rf)}, nil
	}

	if lIsInt && rIsInt {
		switch op {
		case ast.BinPlus:
			return &object.Integer{Value: li.Value + ri.Value}, nil
		case ast.BinMinus:
			return &object.Integer{Value: li.Value - ri.Value}, nil
		case ast.BinMul:
			return &object.Integer{Value: li.Value * ri.Value}, nil
		case ast.BinMod:
			if ri.Value == 0 {
				return nil, &InvalidOperation{Message: "modulo by zero"}
			}
			return &object.Integer{Value: li.Value % ri.Value}, nil
		}
	}

	switch op {
	case ast.BinPlus:
		return &object.Float{Value: lf + rf}, nil
	case ast.BinMinus:
		return &object.Float{Value: lf - rf}, nil
	case ast.BinMul:
		return &object.Float{Value: lf * rf}, nil
	case ast.BinMod:
		return &object.Float{Value: math.Mod(lf, rf)}, nil
	}
	return nil, &InvalidOperation{Message: fmt.Sprintf("unsupported arithmetic operator %q", op)}
}

func asFloat(v object.Value) (float64, bool) {
	switch t := v.(type) {
	case *object.Integer:
		return float64(t.Value), true
	case *object.Float:
		return t.Value, true
	default:
		return 0, false
	}
}
