package compiler

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// keywords is the fixed set of reserved words.
var keywords = map[string]bool{
	"unsigned": true, "signed": true, "char": true, "short": true, "int": true,
	"long": true, "float": true, "double": true, "void": true, "struct": true,
	"union": true, "enum": true, "static": true, "extern": true, "const": true,
	"volatile": true, "restrict": true, "auto": true, "register": true,
	"typedef": true, "sizeof": true, "return": true, "if": true, "else": true,
	"while": true, "for": true, "do": true, "break": true, "continue": true,
	"switch": true, "case": true, "default": true, "goto": true,
	"include": true, "__ignore_typecheck": true,
}

// operators lists every operator spelling the lexer can produce.
var operators = []string{
	"+", "-", "*", "/", "%", "=",
	"+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "|=", "^=",
	"==", "!=", "<", "<=", ">", ">=", "<<", ">>",
	"&&", "||", "&", "|", "^", "!", "~", "++", "--",
	"->", ".", ",", "?", "(", "[",
}

const (
	operatorStart = "+-*/%<>=!~&|^?.,(["
	symbolChars   = "{}:;#\\)]"
)

var validOperators = func() map[string]bool {
	m := make(map[string]bool, len(operators))
	for _, op := range operators {
		m[op] = true
	}
	return m
}()

func isOperatorPrefix(s string) bool {
	for _, op := range operators {
		if strings.HasPrefix(op, s) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// parenFrame captures the raw text between a '(' and its matching ')'.
type parenFrame struct {
	first int // index of the first token after '('
	text  []byte
}

// lexer holds all mutable state for a single scanning pass.
type lexer struct {
	src        Source
	diag       *Diagnostics
	tokens     []Token
	whitespace bool
	parens     []parenFrame
}

// Lex tokenises src. Reaching the end of input is not an error; any lexical
// error aborts the pass and no tokens are returned.
func Lex(src Source, diag *Diagnostics) ([]Token, error) {
	if diag == nil {
		diag = NewDiagnostics()
	}
	l := &lexer{src: src, diag: diag}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// LexString tokenises an in-memory source named name.
func LexString(src, name string) ([]Token, error) {
	return Lex(NewStringSource(src, name), nil)
}

// next consumes one byte, recording it in every open parenthesis frame.
func (l *lexer) next() (byte, error) {
	c, err := l.src.Next()
	if err != nil {
		return 0, err
	}
	for i := range l.parens {
		l.parens[i].text = append(l.parens[i].text, c)
	}
	return c, nil
}

func (l *lexer) pushBack(c byte) {
	l.src.PushBack(c)
	for i := range l.parens {
		if n := len(l.parens[i].text); n > 0 {
			l.parens[i].text = l.parens[i].text[:n-1]
		}
	}
}

// peekIs reports whether the next byte is c.
func (l *lexer) peekIs(c byte) bool {
	p, err := l.src.Peek()
	return err == nil && p == c
}

func (l *lexer) emit(tok Token) {
	tok.Whitespace = l.whitespace
	l.whitespace = false
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) run() error {
	for {
		c, err := l.src.Peek()
		if errors.Is(err, ErrEndOfInput) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := l.scan(c); err != nil {
			return err
		}
	}
}

// scan classifies the token starting with c and consumes it.
func (l *lexer) scan(c byte) error {
	pos := l.src.Pos()
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
		l.next()
		l.whitespace = true
		return nil
	case c == '\n':
		l.next()
		l.emit(Token{Kind: NEWLINE, Value: "\n", Pos: pos})
		return nil
	case isDigit(c):
		return l.scanNumber(pos)
	case isIdentStart(c):
		return l.scanIdent(pos)
	case c == '"':
		return l.scanString(pos)
	case c == '\'':
		return l.scanChar(pos)
	case c == '/':
		l.next()
		if l.peekIs('/') || l.peekIs('*') {
			return l.scanComment(pos)
		}
		l.pushBack('/')
		return l.scanOperator(pos)
	case strings.IndexByte(operatorStart, c) >= 0:
		return l.scanOperator(pos)
	case strings.IndexByte(symbolChars, c) >= 0:
		l.next()
		l.emit(Token{Kind: SYMBOL, Value: string(c), Pos: pos})
		if c == ')' {
			l.closeParen()
		}
		return nil
	default:
		return l.diag.Errorf(pos, ErrUnexpectedChar, "unexpected character %q", c)
	}
}

// scanOperator greedily matches the longest known operator spelling.
func (l *lexer) scanOperator(pos Pos) error {
	c, err := l.next()
	if err != nil {
		return err
	}
	op := []byte{c}
	for {
		p, err := l.src.Peek()
		if err != nil || !isOperatorPrefix(string(append(op, p))) {
			break
		}
		l.next()
		op = append(op, p)
	}
	for len(op) > 1 && !validOperators[string(op)] {
		l.pushBack(op[len(op)-1])
		op = op[:len(op)-1]
	}

	l.emit(Token{Kind: OPERATOR, Value: string(op), Pos: pos})
	if op[0] == '(' {
		l.parens = append(l.parens, parenFrame{first: len(l.tokens)})
	}
	return nil
}

// closeParen attaches the text of the innermost open pair to the tokens it
// encloses. An unmatched ')' is left for the parser to reject.
func (l *lexer) closeParen() {
	n := len(l.parens)
	if n == 0 {
		return
	}
	frame := l.parens[n-1]
	l.parens = l.parens[:n-1]

	text := string(frame.text[:len(frame.text)-1]) // drop the ')'
	for i := frame.first; i < len(l.tokens)-1; i++ {
		if l.tokens[i].BetweenBrackets == "" {
			l.tokens[i].BetweenBrackets = text
		}
	}
}

func (l *lexer) scanIdent(pos Pos) error {
	var b strings.Builder
	for {
		c, err := l.src.Peek()
		if err != nil || !isIdentChar(c) {
			break
		}
		l.next()
		b.WriteByte(c)
	}
	word := b.String()
	kind := IDENTIFIER
	if keywords[word] {
		kind = KEYWORD
	}
	l.emit(Token{Kind: kind, Value: word, Pos: pos})
	return nil
}

// readWhile consumes bytes matching ok and returns them.
func (l *lexer) readWhile(ok func(byte) bool) string {
	var b strings.Builder
	for {
		c, err := l.src.Peek()
		if err != nil || !ok(c) {
			return b.String()
		}
		l.next()
		b.WriteByte(c)
	}
}

// scanNumber reads decimal, hex (0x) and binary (0b) integers, fractional
// constants, and the L / f suffixes that select the number kind.
func (l *lexer) scanNumber(pos Pos) error {
	var raw strings.Builder
	base := 10
	var digits string

	first, _ := l.next()
	raw.WriteByte(first)
	if first == '0' && (l.peekIs('x') || l.peekIs('X') || l.peekIs('b') || l.peekIs('B')) {
		prefix, _ := l.next()
		raw.WriteByte(prefix)
		if prefix == 'x' || prefix == 'X' {
			base = 16
			digits = l.readWhile(isHexDigit)
		} else {
			base = 2
			digits = l.readWhile(func(c byte) bool { return c == '0' || c == '1' })
		}
		if digits == "" {
			return l.diag.Errorf(pos, ErrUnexpectedChar, "numeric constant %q has no digits", raw.String())
		}
		raw.WriteString(digits)
	} else {
		digits = string(first) + l.readWhile(isDigit)
		raw.WriteString(digits[1:])
	}

	num := Number{Kind: NumberNormal}
	if base == 10 && l.peekIs('.') {
		l.next()
		frac := l.readWhile(isDigit)
		raw.WriteString("." + frac)
		num.Kind = NumberDouble
		if l.peekIs('f') || l.peekIs('F') {
			c, _ := l.next()
			raw.WriteByte(c)
			num.Kind = NumberFloat
		}
		f, err := strconv.ParseFloat(digits+"."+frac+"0", 64)
		if err != nil {
			return l.diag.Errorf(pos, ErrNumberOverflow, "floating constant %q out of range", raw.String())
		}
		num.Float = f
	} else {
		for l.peekIs('l') || l.peekIs('L') || l.peekIs('u') || l.peekIs('U') {
			c, _ := l.next()
			raw.WriteByte(c)
			if c == 'l' || c == 'L' {
				num.Kind = NumberLong
			}
		}
		v, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return l.diag.Errorf(pos, ErrNumberOverflow, "integer constant %q does not fit in 64 bits", raw.String())
		}
		num.Int = v
		if num.Kind == NumberNormal && v > math.MaxUint32 {
			l.diag.Warningf(pos, "integer constant %q does not fit in 32 bits, treated as long", raw.String())
			num.Kind = NumberLong
		}
	}

	if c, err := l.src.Peek(); err == nil && isIdentChar(c) {
		return l.diag.Errorf(pos, ErrUnexpectedChar, "invalid suffix %q on numeric constant %q", c, raw.String())
	}
	l.emit(Token{Kind: NUMBER, Value: raw.String(), Num: num, Pos: pos})
	return nil
}

// escape decodes the character after a backslash. Unknown escapes produce
// a warning and stand for the character itself.
func (l *lexer) escape(pos Pos, c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '"', '\'':
		return c
	}
	l.diag.Warningf(pos, "unknown escape sequence \\%c", c)
	return c
}

func (l *lexer) scanString(pos Pos) error {
	l.next() // opening "
	var b strings.Builder
	for {
		c, err := l.next()
		if errors.Is(err, ErrEndOfInput) {
			return l.diag.Errorf(pos, ErrUnterminatedString, "unterminated string literal")
		}
		if err != nil {
			return err
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			escPos := l.src.Pos()
			e, err := l.next()
			if errors.Is(err, ErrEndOfInput) {
				return l.diag.Errorf(pos, ErrUnterminatedString, "unterminated string literal")
			}
			if err != nil {
				return err
			}
			c = l.escape(escPos, e)
		}
		b.WriteByte(c)
	}
	l.emit(Token{Kind: STRING, Value: b.String(), Pos: pos})
	return nil
}

// scanChar turns a character constant such as 'a' into a NUMBER token.
func (l *lexer) scanChar(pos Pos) error {
	l.next() // opening '
	c, err := l.next()
	if errors.Is(err, ErrEndOfInput) {
		return l.diag.Errorf(pos, ErrUnterminatedString, "unterminated character constant")
	}
	if err != nil {
		return err
	}
	raw := []byte{'\'', c}
	if c == '\\' {
		escPos := l.src.Pos()
		e, err := l.next()
		if errors.Is(err, ErrEndOfInput) {
			return l.diag.Errorf(pos, ErrUnterminatedString, "unterminated character constant")
		}
		if err != nil {
			return err
		}
		raw = append(raw, e)
		c = l.escape(escPos, e)
	}
	end, err := l.next()
	if errors.Is(err, ErrEndOfInput) {
		return l.diag.Errorf(pos, ErrUnterminatedString, "unterminated character constant")
	}
	if err != nil {
		return err
	}
	if end != '\'' {
		return l.diag.Errorf(pos, ErrUnexpectedChar, "character constant must hold exactly one character")
	}
	raw = append(raw, '\'')
	l.emit(Token{Kind: NUMBER, Value: string(raw), Num: Number{Kind: NumberNormal, Int: uint64(c)}, Pos: pos})
	return nil
}

// scanComment reads a // or /* */ comment. The leading '/' is already consumed.
func (l *lexer) scanComment(pos Pos) error {
	style, _ := l.next()
	var b strings.Builder
	if style == '/' {
		b.WriteString(l.readWhile(func(c byte) bool { return c != '\n' }))
		l.emit(Token{Kind: COMMENT, Value: b.String(), Pos: pos})
		return nil
	}

	for {
		c, err := l.next()
		if errors.Is(err, ErrEndOfInput) {
			return l.diag.Errorf(pos, ErrUnterminatedComment, "unterminated block comment")
		}
		if err != nil {
			return err
		}
		if c == '*' && l.peekIs('/') {
			l.next()
			break
		}
		b.WriteByte(c)
	}
	l.emit(Token{Kind: COMMENT, Value: b.String(), Pos: pos})
	return nil
}
