package compiler

import (
	"fmt"
	"strconv"
)

// NodeKind tags every AST node.
type NodeKind int

const (
	NodeExpression NodeKind = iota
	NodeParenthesizedExpression
	NodeNumber
	NodeIdentifier
	NodeString
	NodeVariable
	NodeVariableList
	NodeFunction
	NodeBody
	NodeReturn
	NodeIf
	NodeElse
	NodeWhile
	NodeDoWhile
	NodeFor
	NodeBreak
	NodeContinue
	NodeSwitch
	NodeCase
	NodeDefault
	NodeGoto
	NodeUnary
	NodeTernary
	NodeLabel
	NodeStruct
	NodeUnion
	NodeBracket
	NodeCast
	NodeBlank
)

var nodeKindNames = [...]string{
	NodeExpression:              "expression",
	NodeParenthesizedExpression: "parentheses",
	NodeNumber:                  "number",
	NodeIdentifier:              "identifier",
	NodeString:                  "string",
	NodeVariable:                "variable",
	NodeVariableList:            "variable_list",
	NodeFunction:                "function",
	NodeBody:                    "body",
	NodeReturn:                  "return",
	NodeIf:                      "if",
	NodeElse:                    "else",
	NodeWhile:                   "while",
	NodeDoWhile:                 "do_while",
	NodeFor:                     "for",
	NodeBreak:                   "break",
	NodeContinue:                "continue",
	NodeSwitch:                  "switch",
	NodeCase:                    "case",
	NodeDefault:                 "default",
	NodeGoto:                    "goto",
	NodeUnary:                   "unary",
	NodeTernary:                 "ternary",
	NodeLabel:                   "label",
	NodeStruct:                  "struct",
	NodeUnion:                   "union",
	NodeBracket:                 "bracket",
	NodeCast:                    "cast",
	NodeBlank:                   "blank",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// expressionable reports whether a node of this kind can be an operand.
func (k NodeKind) expressionable() bool {
	switch k {
	case NodeNumber, NodeIdentifier, NodeString, NodeExpression,
		NodeParenthesizedExpression, NodeUnary, NodeTernary:
		return true
	}
	return false
}

// NodeFlag is a bit set of node properties.
type NodeFlag int

const (
	// FlagInsideExpression marks an operand of an enclosing expression.
	FlagInsideExpression NodeFlag = 1 << iota
)

// Binding links a node to the body and function that contain it. Both are
// navigation aids only: the tree never owns a node through them.
type Binding struct {
	Body     Node
	Function Node
}

// Node is implemented by every AST element.
type Node interface {
	Kind() NodeKind
	Pos() Pos
	Flags() NodeFlag
	String() string
	header() *nodeHeader
}

// nodeHeader is embedded in every concrete node.
type nodeHeader struct {
	Position Pos
	flags    NodeFlag
	Binding  Binding
}

func (h *nodeHeader) Pos() Pos            { return h.Position }
func (h *nodeHeader) Flags() NodeFlag     { return h.flags }
func (h *nodeHeader) header() *nodeHeader { return h }

func setFlag(n Node, f NodeFlag) { n.header().flags |= f }

// ExpressionNode is a binary operation: Left Op Right.
//
//	a * b
//	^ ^ ^
//	| | Right
//	| Op
//	Left
//
// Calls and subscripts are expressions too, with Op "()" or "[]" and a
// ParenthesesNode or BracketNode on the right.
type ExpressionNode struct {
	nodeHeader
	Left  Node
	Right Node
	Op    string
}

func (*ExpressionNode) Kind() NodeKind { return NodeExpression }
func (e *ExpressionNode) String() string {
	if e.Op == "()" || e.Op == "[]" {
		return fmt.Sprintf("%s%s", e.Left, e.Right)
	}
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// ParenthesesNode is a parenthesised expression, or the argument list of a
// call. Inner is nil for "()".
type ParenthesesNode struct {
	nodeHeader
	Inner Node
}

func (*ParenthesesNode) Kind() NodeKind { return NodeParenthesizedExpression }
func (p *ParenthesesNode) String() string {
	if p.Inner == nil {
		return "()"
	}
	return fmt.Sprintf("(%s)", p.Inner)
}

// BracketNode is the subscript of an index expression.
type BracketNode struct {
	nodeHeader
	Inner Node
}

func (*BracketNode) Kind() NodeKind   { return NodeBracket }
func (b *BracketNode) String() string { return fmt.Sprintf("[%s]", b.Inner) }

// NumberNode is a numeric or character constant.
type NumberNode struct {
	nodeHeader
	Value Number
}

func (*NumberNode) Kind() NodeKind   { return NodeNumber }
func (n *NumberNode) String() string { return n.Value.String() }

// IdentifierNode is a bare name.
type IdentifierNode struct {
	nodeHeader
	Name string
}

func (*IdentifierNode) Kind() NodeKind   { return NodeIdentifier }
func (i *IdentifierNode) String() string { return i.Name }

// StringNode is a string literal.
type StringNode struct {
	nodeHeader
	Value string
}

func (*StringNode) Kind() NodeKind   { return NodeString }
func (s *StringNode) String() string { return strconv.Quote(s.Value) }

// UnaryNode is a prefix (!x, ~x, ++x, --x) or postfix (x++, x--) operation.
type UnaryNode struct {
	nodeHeader
	Op      string
	Operand Node
	Postfix bool
}

func (*UnaryNode) Kind() NodeKind { return NodeUnary }
func (u *UnaryNode) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s%s)", u.Operand, u.Op)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

// TernaryNode holds the two branches of cond ? True : False. The condition
// is the left operand of the enclosing "?" expression.
type TernaryNode struct {
	nodeHeader
	True  Node
	False Node
}

func (*TernaryNode) Kind() NodeKind   { return NodeTernary }
func (t *TernaryNode) String() string { return fmt.Sprintf("%s : %s", t.True, t.False) }

// Equal reports whether a and b are structurally identical trees.
// Positions, flags and bindings are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *ExpressionNode:
		y := b.(*ExpressionNode)
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *ParenthesesNode:
		return Equal(x.Inner, b.(*ParenthesesNode).Inner)
	case *BracketNode:
		return Equal(x.Inner, b.(*BracketNode).Inner)
	case *NumberNode:
		return x.Value == b.(*NumberNode).Value
	case *IdentifierNode:
		return x.Name == b.(*IdentifierNode).Name
	case *StringNode:
		return x.Value == b.(*StringNode).Value
	case *UnaryNode:
		y := b.(*UnaryNode)
		return x.Op == y.Op && x.Postfix == y.Postfix && Equal(x.Operand, y.Operand)
	case *TernaryNode:
		y := b.(*TernaryNode)
		return Equal(x.True, y.True) && Equal(x.False, y.False)
	}
	return false
}
