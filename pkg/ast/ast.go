package ast

type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeBlock                   NodeType = "Block"
	NodeDeclareStatement        NodeType = "DeclareStatement"
	NodeAssignStatement         NodeType = "AssignStatement"
	NodeIfStatement             NodeType = "IfStatement"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeIdentifier              NodeType = "Identifier"
	NodeIntegerLiteral          NodeType = "IntegerLiteral"
	NodeFloatLiteral            NodeType = "FloatLiteral"
	NodeBooleanLiteral          NodeType = "BooleanLiteral"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
	NodeArithmeticChain         NodeType = "ArithmeticChain"
	NodeComparison              NodeType = "Comparison"
	NodeValueTest               NodeType = "ValueTest"
	NodeNotExpression           NodeType = "NotExpression"
	NodeLogicalChain            NodeType = "LogicalChain"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (n *nodeImpl) setSpan(span Span) { n.Loc = span }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expression is any node that denotes a value.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// BooleanExpression is an expression that appears in guard position.
type BooleanExpression interface {
	Expression
	booleanNode()
}

type booleanMarker struct{}

func (booleanMarker) booleanNode() {}

// Program is the top-level statement list.

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Statements

type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

type DeclareStatement struct {
	nodeImpl
	statementMarker

	TypeName string        `json:"typeName"`
	Names    []*Identifier `json:"names"`
}

func NewDeclareStatement(typeName string, names []*Identifier) *DeclareStatement {
	return &DeclareStatement{nodeImpl: newNodeImpl(NodeDeclareStatement), TypeName: typeName, Names: names}
}

type AssignStatement struct {
	nodeImpl
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignStatement(target *Identifier, value Expression) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Target: target, Value: value}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition BooleanExpression `json:"condition"`
	Then      *Block            `json:"then"`
	Else      *Block            `json:"else,omitempty"`
}

func NewIfStatement(condition BooleanExpression, then *Block, els *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition BooleanExpression `json:"condition"`
	Body      *Block            `json:"body"`
}

func NewWhileStatement(condition BooleanExpression, body *Block) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// Arithmetic expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64  `json:"value"`
	Raw   string `json:"raw,omitempty"`
}

func NewIntegerLiteral(value int64, raw string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value, Raw: raw}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
	Raw   string  `json:"raw,omitempty"`
}

func NewFloatLiteral(value float64, raw string) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value, Raw: raw}
}

type ParenthesizedExpression struct {
	nodeImpl
	expressionMarker

	Inner Expression `json:"inner"`
}

func NewParenthesizedExpression(inner Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{nodeImpl: newNodeImpl(NodeParenthesizedExpression), Inner: inner}
}

// ChainLink is one (operator, operand) step of a chain.
type ChainLink struct {
	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

// ArithmeticChain holds operands of a single precedence level in source
// order. Evaluation folds Tail into Head from left to right.
type ArithmeticChain struct {
	nodeImpl
	expressionMarker

	Head Expression  `json:"head"`
	Tail []ChainLink `json:"tail"`
}

func NewArithmeticChain(head Expression, tail []ChainLink) *ArithmeticChain {
	return &ArithmeticChain{nodeImpl: newNodeImpl(NodeArithmeticChain), Head: head, Tail: tail}
}

// Boolean expressions

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	booleanMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type Comparison struct {
	nodeImpl
	expressionMarker
	booleanMarker

	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewComparison(operator string, left, right Expression) *Comparison {
	return &Comparison{nodeImpl: newNodeImpl(NodeComparison), Left: left, Operator: operator, Right: right}
}

// ValueTest uses an arithmetic expression in boolean position; the value it
// produces must be a bool.
type ValueTest struct {
	nodeImpl
	expressionMarker
	booleanMarker

	Expr Expression `json:"expr"`
}

func NewValueTest(expr Expression) *ValueTest {
	return &ValueTest{nodeImpl: newNodeImpl(NodeValueTest), Expr: expr}
}

type NotExpression struct {
	nodeImpl
	expressionMarker
	booleanMarker

	Operand BooleanExpression `json:"operand"`
}

func NewNotExpression(operand BooleanExpression) *NotExpression {
	return &NotExpression{nodeImpl: newNodeImpl(NodeNotExpression), Operand: operand}
}

type LogicalOperator string

const (
	LogicalOr  LogicalOperator = "||"
	LogicalAnd LogicalOperator = "&&"
)

// LogicalChain joins two or more operands with the same operator.
type LogicalChain struct {
	nodeImpl
	expressionMarker
	booleanMarker

	Operator LogicalOperator     `json:"operator"`
	Operands []BooleanExpression `json:"operands"`
}

func NewLogicalChain(operator LogicalOperator, operands []BooleanExpression) *LogicalChain {
	return &LogicalChain{nodeImpl: newNodeImpl(NodeLogicalChain), Operator: operator, Operands: operands}
}
