package compiler

// NodeStack is the parser's working memory: operands are pushed as they are
// recognised and popped when an enclosing node takes ownership of them.
type NodeStack struct {
	nodes []Node
}

func (s *NodeStack) Push(n Node) {
	s.nodes = append(s.nodes, n)
}

// Pop removes and returns the top node.
func (s *NodeStack) Pop() (Node, error) {
	n := len(s.nodes)
	if n == 0 {
		return nil, ErrEmptyStack
	}
	top := s.nodes[n-1]
	s.nodes[n-1] = nil
	s.nodes = s.nodes[:n-1]
	return top, nil
}

// Peek returns the top node without removing it.
func (s *NodeStack) Peek() (Node, error) {
	if len(s.nodes) == 0 {
		return nil, ErrEmptyStack
	}
	return s.nodes[len(s.nodes)-1], nil
}

// PeekOrNil returns the top node, or nil when the stack is empty.
func (s *NodeStack) PeekOrNil() Node {
	n, _ := s.Peek()
	return n
}

// PeekExpressionableOrNil returns the top node only if it can be an operand.
func (s *NodeStack) PeekExpressionableOrNil() Node {
	n := s.PeekOrNil()
	if n == nil || !n.Kind().expressionable() {
		return nil
	}
	return n
}

func (s *NodeStack) Len() int { return len(s.nodes) }
