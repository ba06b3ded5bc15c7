package compiler

// The expression engine builds trees bottom-up on the node stack. Each
// binary operator takes everything to its right as its right operand, so
// the first tree built for "a * b + c" is a * (b + c); reorder then rotates
// it into (a * b) + c before the node is pushed.

// parseExpressionable parses operands and operators until the expression ends.
func (p *Parser) parseExpressionable(h History) error {
	for {
		done, err := p.parseExpressionableSingle(h)
		if err != nil || done {
			return err
		}
	}
}

// parseExpressionableSingle handles the next token of an expression. It
// reports done when the token cannot continue the current expression.
func (p *Parser) parseExpressionableSingle(h History) (done bool, err error) {
	tok := p.peek()
	if tok == nil {
		return true, nil
	}

	switch tok.Kind {
	case NUMBER, IDENTIFIER, STRING:
		// Two operands in a row: the first expression is complete.
		if p.leftOperand(h) != nil {
			return true, nil
		}
		return false, p.parseSingleTokenToNode()
	case OPERATOR:
		// An operator looser than the floor belongs to the enclosing expression.
		if power, ok := operatorPower[tok.Value]; ok && h.endsAt(power) && p.leftOperand(h) != nil {
			return true, nil
		}
		return false, p.parseExp(h)
	}
	return true, nil
}

// parseSingleTokenToNode turns the next token into a leaf node.
func (p *Parser) parseSingleTokenToNode() error {
	tok := p.next()
	var node Node
	switch tok.Kind {
	case NUMBER:
		node = &NumberNode{nodeHeader: nodeHeader{Position: tok.Pos}, Value: tok.Num}
	case IDENTIFIER:
		node = &IdentifierNode{nodeHeader: nodeHeader{Position: tok.Pos}, Name: tok.Value}
	case STRING:
		node = &StringNode{nodeHeader: nodeHeader{Position: tok.Pos}, Value: tok.Value}
	default:
		return p.diag.Errorf(tok.Pos, ErrUnexpectedToken, "%s %q is not a single token that can be converted to a node", tok.Kind, tok.Value)
	}
	p.stack.Push(node)
	return nil
}

// leftOperand returns the operand already parsed for the current expression.
func (p *Parser) leftOperand(h History) Node {
	if p.stack.Len() <= h.base {
		return nil
	}
	return p.stack.PeekExpressionableOrNil()
}

// pop removes the top of the node stack. An empty stack here is a parser bug.
func (p *Parser) pop() (Node, error) {
	n, err := p.stack.Pop()
	if err != nil {
		return nil, internalError(err)
	}
	return n, nil
}

// parseExp handles an operator token.
func (p *Parser) parseExp(h History) error {
	opTok := p.peek()
	op := opTok.Value

	left := p.leftOperand(h)
	if left == nil {
		switch op {
		case "(":
			return p.parseParentheses(h)
		case "!", "~", "++", "--":
			return p.parsePrefixUnary(h)
		}
		return p.diag.Errorf(opTok.Pos, ErrMissingOperand, "operator %q has no left operand", op)
	}

	switch op {
	case "(":
		return p.parseCall(h)
	case "[":
		return p.parseIndex(h)
	case "++", "--":
		return p.parsePostfix()
	case "!", "~":
		return p.diag.Errorf(opTok.Pos, ErrUnexpectedToken, "unary operator %q cannot follow an operand", op)
	case "?":
		return p.parseTernary(h)
	}
	return p.parseExpNormal(h)
}

// parseExpNormal builds left op right, where right is the rest of the expression.
func (p *Parser) parseExpNormal(h History) error {
	opTok := p.next()
	op := opTok.Value

	left, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(left, FlagInsideExpression)

	right, err := p.parseOperand(h.down(h.Flags, p.stack.Len()), opTok)
	if err != nil {
		return err
	}

	exp := p.makeExpNode(left, right, op)
	if err := p.reorder(exp); err != nil {
		return err
	}
	p.stack.Push(exp)
	return nil
}

// parseOperand parses a full sub-expression and pops it off the stack.
func (p *Parser) parseOperand(h History, after *Token) (Node, error) {
	if err := p.parseExpressionable(h); err != nil {
		return nil, err
	}
	if p.stack.Len() <= h.base {
		pos := after.Pos
		if next := p.peek(); next != nil {
			pos = next.Pos
		}
		if h.has(HistoryInsideTernary) {
			return nil, p.diag.Errorf(pos, ErrMissingOperand, "conditional branch after %q is empty", after.Value)
		}
		return nil, p.diag.Errorf(pos, ErrMissingOperand, "expected an operand after %q", after.Value)
	}
	n, err := p.pop()
	if err != nil {
		return nil, err
	}
	setFlag(n, FlagInsideExpression)
	return n, nil
}

func (p *Parser) makeExpNode(left, right Node, op string) *ExpressionNode {
	return &ExpressionNode{
		nodeHeader: nodeHeader{Position: left.Pos()},
		Left:       left,
		Right:      right,
		Op:         op,
	}
}

// expectSymbol consumes the symbol s or fails.
func (p *Parser) expectSymbol(s string, open *Token) error {
	tok := p.peek()
	if !tok.Is(SYMBOL, s) {
		if tok == nil {
			return p.diag.Errorf(p.lastPos(), ErrUnexpectedToken, "expected %q to match %q, got end of input", s, open.Value)
		}
		return p.diag.Errorf(tok.Pos, ErrUnexpectedToken, "expected %q to match %q, got %q", s, open.Value, tok.Value)
	}
	p.next()
	return nil
}

// parseGroup parses the contents of a bracket pair opened by open and
// returns them, or nil when the pair is empty. The brackets lift any
// operator floor of the surrounding expression.
func (p *Parser) parseGroup(h History, open *Token, closing string) (Node, error) {
	base := p.stack.Len()
	if err := p.parseExpressionable(historyBegin(h.Flags, base)); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(closing, open); err != nil {
		return nil, err
	}
	if p.stack.Len() == base {
		return nil, nil
	}
	inner, err := p.pop()
	if err != nil {
		return nil, err
	}
	setFlag(inner, FlagInsideExpression)
	return inner, nil
}

// parseParentheses handles "(" with no left operand: a grouped expression.
func (p *Parser) parseParentheses(h History) error {
	open := p.next()
	inner, err := p.parseGroup(h, open, ")")
	if err != nil {
		return err
	}
	if inner == nil {
		return p.diag.Errorf(open.Pos, ErrMissingOperand, "empty parentheses")
	}
	p.stack.Push(&ParenthesesNode{nodeHeader: nodeHeader{Position: open.Pos}, Inner: inner})
	return nil
}

// parseCall handles callee(args). The arguments form one expression,
// joined by the comma operator.
func (p *Parser) parseCall(h History) error {
	open := p.next()
	callee, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(callee, FlagInsideExpression)
	args, err := p.parseGroup(h, open, ")")
	if err != nil {
		return err
	}
	group := &ParenthesesNode{nodeHeader: nodeHeader{Position: open.Pos, flags: FlagInsideExpression}, Inner: args}
	p.stack.Push(p.makeExpNode(callee, group, "()"))
	return nil
}

// parseIndex handles base[index].
func (p *Parser) parseIndex(h History) error {
	open := p.next()
	base, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(base, FlagInsideExpression)
	index, err := p.parseGroup(h, open, "]")
	if err != nil {
		return err
	}
	if index == nil {
		return p.diag.Errorf(open.Pos, ErrMissingOperand, "empty subscript")
	}
	bracket := &BracketNode{nodeHeader: nodeHeader{Position: open.Pos, flags: FlagInsideExpression}, Inner: index}
	p.stack.Push(p.makeExpNode(base, bracket, "[]"))
	return nil
}

// parsePostfix handles operand++ and operand--.
func (p *Parser) parsePostfix() error {
	opTok := p.next()
	operand, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(operand, FlagInsideExpression)
	p.stack.Push(&UnaryNode{
		nodeHeader: nodeHeader{Position: operand.Pos()},
		Op:         opTok.Value,
		Operand:    operand,
		Postfix:    true,
	})
	return nil
}

// parsePrefixUnary handles !x, ~x, ++x and --x. The operand is a single
// primary together with its postfix suffixes, so !a[1] is !(a[1]).
func (p *Parser) parsePrefixUnary(h History) error {
	opTok := p.next()
	base := p.stack.Len()
	if err := p.parseUnaryOperand(h.down(h.Flags, base), opTok); err != nil {
		return err
	}
	operand, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(operand, FlagInsideExpression)
	p.stack.Push(&UnaryNode{nodeHeader: nodeHeader{Position: opTok.Pos}, Op: opTok.Value, Operand: operand})
	return nil
}

// parseUnaryOperand pushes the operand of a prefix operator.
func (p *Parser) parseUnaryOperand(h History, opTok *Token) error {
	tok := p.peek()
	switch {
	case tok == nil:
		return p.diag.Errorf(opTok.Pos, ErrMissingOperand, "operator %q has no operand", opTok.Value)
	case tok.Kind == NUMBER || tok.Kind == IDENTIFIER || tok.Kind == STRING:
		if err := p.parseSingleTokenToNode(); err != nil {
			return err
		}
	case tok.Is(OPERATOR, "("):
		if err := p.parseParentheses(h); err != nil {
			return err
		}
	case tok.Is(OPERATOR, "!"), tok.Is(OPERATOR, "~"), tok.Is(OPERATOR, "++"), tok.Is(OPERATOR, "--"):
		if err := p.parsePrefixUnary(h); err != nil {
			return err
		}
		return nil
	default:
		return p.diag.Errorf(tok.Pos, ErrMissingOperand, "operator %q has no operand", opTok.Value)
	}

	for {
		next := p.peek()
		var err error
		switch {
		case next.Is(OPERATOR, "("):
			err = p.parseCall(h)
		case next.Is(OPERATOR, "["):
			err = p.parseIndex(h)
		case next.Is(OPERATOR, "++"), next.Is(OPERATOR, "--"):
			err = p.parsePostfix()
		case next.Is(OPERATOR, "."), next.Is(OPERATOR, "->"):
			err = p.parseMember()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// parseMember handles operand.name and operand->name inside a unary operand.
func (p *Parser) parseMember() error {
	opTok := p.next()
	left, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(left, FlagInsideExpression)
	name := p.peek()
	if name == nil || name.Kind != IDENTIFIER {
		return p.diag.Errorf(opTok.Pos, ErrUnexpectedToken, "expected a member name after %q", opTok.Value)
	}
	if err := p.parseSingleTokenToNode(); err != nil {
		return err
	}
	right, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(right, FlagInsideExpression)
	p.stack.Push(p.makeExpNode(left, right, opTok.Value))
	return nil
}

// parseTernary handles cond ? a : b. The result is the expression
// cond "?" Ternary(a, b), which reorder treats like any binary node.
// The middle operand runs to the ':'; the last one stops before any
// operator looser than '?', so "c ? a : b, d" leaves ", d" outside.
func (p *Parser) parseTernary(h History) error {
	opTok := p.next()
	cond, err := p.pop()
	if err != nil {
		return err
	}
	setFlag(cond, FlagInsideExpression)

	branch := h.Flags | HistoryInsideTernary
	whenTrue, err := p.parseOperand(h.down(branch, p.stack.Len()).bounded(0), opTok)
	if err != nil {
		return err
	}
	colon := p.peek()
	if !colon.Is(SYMBOL, ":") {
		pos := p.lastPos()
		if colon != nil {
			pos = colon.Pos
		}
		return p.diag.Errorf(pos, ErrUnexpectedToken, "expected ':' in conditional expression")
	}
	p.next()
	whenFalse, err := p.parseOperand(h.down(branch, p.stack.Len()).bounded(operatorPower["?"]), colon)
	if err != nil {
		return err
	}

	ternary := &TernaryNode{
		nodeHeader: nodeHeader{Position: opTok.Pos, flags: FlagInsideExpression},
		True:       whenTrue,
		False:      whenFalse,
	}
	exp := p.makeExpNode(cond, ternary, "?")
	if err := p.reorder(exp); err != nil {
		return err
	}
	p.stack.Push(exp)
	return nil
}
