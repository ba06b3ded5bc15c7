package compiler

// Parser turns the token slice produced by Lex into a sequence of top-level
// AST nodes. All parser state lives here, so independent compilations never
// share anything.
//
// Grammar handled by the expression engine:
//
//	program    = (expression | ";")*
//	expression = operand (binop expression)*          -- precedence fixed by reorder
//	operand    = NUMBER | IDENTIFIER | STRING | "(" expression ")"
//	           | ("!" | "~" | "++" | "--") unary
//	           | operand ("(" expression? ")" | "[" expression "]" | "++" | "--")
//	ternary    = operand "?" expression ":" expression
type Parser struct {
	tokens []Token
	pos    int // index of the next token to consume
	stack  NodeStack
	last   *Token // last token consumed
	diag   *Diagnostics
}

func NewParser(tokens []Token, diag *Diagnostics) *Parser {
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &Parser{tokens: tokens, diag: diag}
}

// skipSeparators moves past newlines, comments and line continuations.
func (p *Parser) skipSeparators() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].isSeparator() {
		p.pos++
	}
}

// peek returns the next meaningful token without consuming it, or nil at
// end of input.
func (p *Parser) peek() *Token {
	p.skipSeparators()
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// next consumes and returns the next meaningful token. Callers peek first,
// so next is never called at end of input.
func (p *Parser) next() *Token {
	tok := p.peek()
	if tok != nil {
		p.pos++
		p.last = tok
	}
	return tok
}

// lastPos is the best position for an error at end of input.
func (p *Parser) lastPos() Pos {
	if p.last != nil {
		return p.last.Pos
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1].Pos
	}
	return Pos{}
}

// parseNext parses one top-level construct. A lone ';' yields no node;
// done is set once the input is exhausted.
func (p *Parser) parseNext() (node Node, done bool, err error) {
	tok := p.peek()
	if tok == nil {
		return nil, true, nil
	}

	switch tok.Kind {
	case NUMBER, IDENTIFIER, STRING, OPERATOR:
		base := p.stack.Len()
		if err := p.parseExpressionable(historyBegin(0, base)); err != nil {
			return nil, false, err
		}
		if p.stack.Len() != base+1 {
			return nil, false, internalErrorf("expression left %d nodes on the stack", p.stack.Len()-base)
		}
		n, err := p.pop()
		return n, false, err
	case SYMBOL:
		if tok.Value == ";" {
			p.next()
			return nil, false, nil
		}
	}
	return nil, false, p.diag.Errorf(tok.Pos, ErrUnexpectedToken, "unsupported %s %q", tok.Kind, tok.Value)
}

// Parse builds the top-level nodes of a compilation unit. The first error
// ends parsing.
func (p *Parser) Parse() ([]Node, error) {
	var tree []Node
	for {
		node, done, err := p.parseNext()
		if err != nil {
			return nil, err
		}
		if done {
			return tree, nil
		}
		if node != nil {
			tree = append(tree, node)
		}
	}
}

// Parse parses tokens into top-level nodes.
func Parse(tokens []Token, diag *Diagnostics) ([]Node, error) {
	return NewParser(tokens, diag).Parse()
}

// ParseString lexes and parses an in-memory source.
func ParseString(src, name string) ([]Node, error) {
	diag := NewDiagnostics()
	tokens, err := Lex(NewStringSource(src, name), diag)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, diag)
}
