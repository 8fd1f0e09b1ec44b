package ast

// Inspect walks the tree rooted at node in depth-first order, calling visit
// on each node. Children are skipped when visit returns false.
func Inspect(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			Inspect(stmt, visit)
		}
	case *Block:
		for _, stmt := range n.Body {
			Inspect(stmt, visit)
		}
	case *DeclareStatement:
		for _, id := range n.Names {
			Inspect(id, visit)
		}
	case *AssignStatement:
		Inspect(n.Target, visit)
		Inspect(n.Value, visit)
	case *IfStatement:
		Inspect(n.Condition, visit)
		Inspect(n.Then, visit)
		if n.Else != nil {
			Inspect(n.Else, visit)
		}
	case *WhileStatement:
		Inspect(n.Condition, visit)
		Inspect(n.Body, visit)
	case *ParenthesizedExpression:
		Inspect(n.Inner, visit)
	case *ArithmeticChain:
		Inspect(n.Head, visit)
		for _, link := range n.Tail {
			Inspect(link.Operand, visit)
		}
	case *Comparison:
		Inspect(n.Left, visit)
		Inspect(n.Right, visit)
	case *ValueTest:
		Inspect(n.Expr, visit)
	case *NotExpression:
		Inspect(n.Operand, visit)
	case *LogicalChain:
		for _, operand := range n.Operands {
			Inspect(operand, visit)
		}
	}
}
