package compiler

import "fmt"

// Walk visits node and its descendants in pre-order. Returning false from
// fn skips the children of the node just visited.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *ExpressionNode:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ParenthesesNode:
		Walk(n.Inner, fn)
	case *BracketNode:
		Walk(n.Inner, fn)
	case *UnaryNode:
		Walk(n.Operand, fn)
	case *TernaryNode:
		Walk(n.True, fn)
		Walk(n.False, fn)
	case *NumberNode, *IdentifierNode, *StringNode:
		// leaves
	}
}

// Calls returns the names of the functions called directly by name inside node.
func Calls(node Node) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(node, func(n Node) bool {
		if e, ok := n.(*ExpressionNode); ok && e.Op == "()" {
			if id, ok := e.Left.(*IdentifierNode); ok && !seen[id.Name] {
				seen[id.Name] = true
				names = append(names, id.Name)
			}
		}
		return true
	})
	return names
}

// Evaluate computes the value of a constant integer expression using C
// semantics on 64-bit signed integers. Comparisons and logical operators
// yield 0 or 1.
func Evaluate(node Node) (int64, error) {
	switch n := node.(type) {
	case *NumberNode:
		if !n.Value.IsInteger() {
			return 0, fmt.Errorf("%w: floating constant %s", ErrNotConstant, n.Value)
		}
		return int64(n.Value.Int), nil
	case *ParenthesesNode:
		if n.Inner == nil {
			return 0, fmt.Errorf("%w: empty parentheses", ErrNotConstant)
		}
		return Evaluate(n.Inner)
	case *UnaryNode:
		return evalUnary(n)
	case *ExpressionNode:
		return evalExpression(n)
	case nil:
		return 0, fmt.Errorf("%w: missing operand", ErrNotConstant)
	}
	return 0, fmt.Errorf("%w: %s %s", ErrNotConstant, node.Kind(), node)
}

func evalUnary(n *UnaryNode) (int64, error) {
	v, err := Evaluate(n.Operand)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case "!":
		return boolInt(v == 0), nil
	case "~":
		return ^v, nil
	}
	return 0, fmt.Errorf("%w: %q modifies its operand", ErrNotConstant, n.Op)
}

func evalExpression(n *ExpressionNode) (int64, error) {
	switch n.Op {
	case "?":
		t, ok := n.Right.(*TernaryNode)
		if !ok {
			return 0, internalErrorf("conditional without branches")
		}
		cond, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return Evaluate(t.True)
		}
		return Evaluate(t.False)
	case "&&", "||":
		l, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		if n.Op == "&&" && l == 0 {
			return 0, nil
		}
		if n.Op == "||" && l != 0 {
			return 1, nil
		}
		r, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		return boolInt(r != 0), nil
	}

	l, err := Evaluate(n.Left)
	if err != nil {
		return 0, err
	}
	r, err := Evaluate(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ",":
		return r, nil
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/", "%":
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrNotConstant)
		}
		if n.Op == "/" {
			return l / r, nil
		}
		return l % r, nil
	case "<<":
		return l << uint64(r&63), nil
	case ">>":
		return l >> uint64(r&63), nil
	case "&":
		return l & r, nil
	case "|":
		return l | r, nil
	case "^":
		return l ^ r, nil
	case "==":
		return boolInt(l == r), nil
	case "!=":
		return boolInt(l != r), nil
	case "<":
		return boolInt(l < r), nil
	case "<=":
		return boolInt(l <= r), nil
	case ">":
		return boolInt(l > r), nil
	case ">=":
		return boolInt(l >= r), nil
	}
	return 0, fmt.Errorf("%w: operator %q", ErrNotConstant, n.Op)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
