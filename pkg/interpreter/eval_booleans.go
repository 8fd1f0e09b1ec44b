package interpreter

import (
	"cmp"
	"fmt"

	"minilang/interpreter-go/pkg/ast"
	"minilang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateBoolean(node ast.BooleanExpression, env *runtime.Environment) (bool, error) {
	switch n := node.(type) {
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.Comparison:
		return i.evaluateComparison(n, env)
	case *ast.ValueTest:
		val, err := i.evaluateExpression(n.Expr, env)
		if err != nil {
			return false, err
		}
		b, ok := val.(runtime.BoolValue)
		if !ok {
			return false, &TypeError{
				Message: fmt.Sprintf("expected bool, got %s", val.Kind()),
				Pos:     startOf(n),
			}
		}
		return b.Val, nil
	case *ast.NotExpression:
		b, err := i.evaluateBoolean(n.Operand, env)
		if err != nil {
			return false, err
		}
		return !b, nil
	case *ast.LogicalChain:
		return i.evaluateLogical(n, env)
	case nil:
		return false, fmt.Errorf("missing boolean expression")
	default:
		return false, fmt.Errorf("unsupported boolean expression type: %s", n.NodeType())
	}
}

// evaluateLogical stops at the first operand that decides the result.
func (i *Interpreter) evaluateLogical(chain *ast.LogicalChain, env *runtime.Environment) (bool, error) {
	decisive := chain.Operator == ast.LogicalOr
	for _, operand := range chain.Operands {
		b, err := i.evaluateBoolean(operand, env)
		if err != nil {
			return false, err
		}
		if b == decisive {
			return decisive, nil
		}
	}
	return !decisive, nil
}

func (i *Interpreter) evaluateComparison(expr *ast.Comparison, env *runtime.Environment) (bool, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return false, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return false, err
	}
	lb, lBool := left.(runtime.BoolValue)
	rb, rBool := right.(runtime.BoolValue)
	switch {
	case lBool && rBool:
		switch expr.Operator {
		case "==":
			return lb.Val == rb.Val, nil
		case "!=":
			return lb.Val != rb.Val, nil
		}
	case isNumericValue(left) && isNumericValue(right):
		li, lInt := left.(runtime.IntValue)
		ri, rInt := right.(runtime.IntValue)
		if lInt && rInt {
			return comparisonOp(expr.Operator, cmp.Compare(li.Val, ri.Val)), nil
		}
		return compareFloats(expr.Operator, numericToFloat(left), numericToFloat(right)), nil
	}
	return false, &TypeError{
		Message: fmt.Sprintf("cannot compare %s %s %s", left.Kind(), expr.Operator, right.Kind()),
		Pos:     startOf(expr),
	}
}

// compareFloats uses the float operators directly so NaN compares unequal to
// everything.
func compareFloats(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	default:
		return false
	}
}

func comparisonOp(op string, order int) bool {
	switch op {
	case "<":
		return order < 0
	case "<=":
		return order <= 0
	case ">":
		return order > 0
	case ">=":
		return order >= 0
	case "==":
		return order == 0
	case "!=":
		return order != 0
	default:
		return false
	}
}
