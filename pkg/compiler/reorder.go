package compiler

// reorder fixes the precedence of a freshly built expression. The engine
// nests everything after an operator into its right operand, so when the
// node's own operator should have been applied first the tree is rotated
// left and both halves are checked again.
//
// Running reorder on a tree it already produced changes nothing.
//
// After a rotation the right half is checked recursively, while the new
// left half is followed in a loop: a long left-to-right chain such as
// 1 + 1 + ... + 1 rotates all the way down its left spine.
func (p *Parser) reorder(node *ExpressionNode) error {
	for {
		right, ok := node.Right.(*ExpressionNode)
		if !ok {
			return nil
		}

		shift, err := leftOpHasPriority(node.Op, right.Op)
		if err != nil {
			return internalError(err)
		}
		if !shift {
			return nil
		}

		p.shiftChildrenLeft(node, right)

		if r, ok := node.Right.(*ExpressionNode); ok {
			if err := p.reorder(r); err != nil {
				return err
			}
		}
		left, ok := node.Left.(*ExpressionNode)
		if !ok {
			return nil
		}
		node = left
	}
}

// shiftChildrenLeft rotates node in place:
//
//	    A             C
//	   / \           / \
//	  B   C    =>   A   E
//	     / \       / \
//	    D   E     B   D
//
//	    *               +
//	   / \             / \
//	  50  +     =>    *   120
//	     / \         / \
//	    20  120     50  20
//
// The right child's node is reused as the new left child.
func (p *Parser) shiftChildrenLeft(node, right *ExpressionNode) {
	a, b, c, d, e := node.Op, node.Left, right.Op, right.Left, right.Right

	right.Left, right.Right, right.Op = b, d, a
	right.Position = b.Pos()
	setFlag(right, FlagInsideExpression)

	node.Left, node.Right, node.Op = right, e, c
}
