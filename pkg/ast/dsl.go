package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value, "")
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value, "")
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Paren(inner Expression) *ParenthesizedExpression {
	return NewParenthesizedExpression(inner)
}

// Chain builds a left-to-right chain from alternating operands and operators:
// Chain(a, "-", b, "-", c) is (a - b) - c.
func Chain(head Expression, rest ...any) *ArithmeticChain {
	if len(rest)%2 != 0 {
		panic("ast.Chain expects operator/operand pairs")
	}
	tail := make([]ChainLink, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		op, ok := rest[i].(string)
		if !ok {
			panic("ast.Chain operator must be a string")
		}
		operand, ok := rest[i+1].(Expression)
		if !ok {
			panic("ast.Chain operand must be an Expression")
		}
		tail = append(tail, ChainLink{Operator: op, Operand: operand})
	}
	return NewArithmeticChain(head, tail)
}

// Bin is a two-operand chain.
func Bin(op string, left, right Expression) *ArithmeticChain {
	return NewArithmeticChain(left, []ChainLink{{Operator: op, Operand: right}})
}

// Boolean helpers.

func Cmp(op string, left, right Expression) *Comparison {
	return NewComparison(op, left, right)
}

func Test(expr Expression) *ValueTest {
	return NewValueTest(expr)
}

func Not(operand BooleanExpression) *NotExpression {
	return NewNotExpression(operand)
}

func And(operands ...BooleanExpression) *LogicalChain {
	return NewLogicalChain(LogicalAnd, operands)
}

func Or(operands ...BooleanExpression) *LogicalChain {
	return NewLogicalChain(LogicalOr, operands)
}

// Statement helpers.

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func Decl(typeName string, names ...string) *DeclareStatement {
	ids := make([]*Identifier, 0, len(names))
	for _, name := range names {
		ids = append(ids, ID(name))
	}
	return NewDeclareStatement(typeName, ids)
}

func Assign(name string, value Expression) *AssignStatement {
	return NewAssignStatement(ID(name), value)
}

func IfThen(cond BooleanExpression, then *Block) *IfStatement {
	return NewIfStatement(cond, then, nil)
}

func IfElse(cond BooleanExpression, then, els *Block) *IfStatement {
	return NewIfStatement(cond, then, els)
}

func While(cond BooleanExpression, body *Block) *WhileStatement {
	return NewWhileStatement(cond, body)
}
