package compiler

import "fmt"

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	IDENTIFIER TokenKind = iota // variable / function name
	KEYWORD                     // reserved word, e.g. "while"
	OPERATOR                    // "+", "<<=", "(", ...
	SYMBOL                      // one of { } : ; # \ ) ]
	NUMBER                      // numeric or character constant
	STRING                      // string literal "..."
	COMMENT                     // "// ..." or "/* ... */"
	NEWLINE                     // a single '\n'
)

var tokenKindNames = [...]string{
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	OPERATOR:   "OPERATOR",
	SYMBOL:     "SYMBOL",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	COMMENT:    "COMMENT",
	NEWLINE:    "NEWLINE",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// NumberKind selects how a NUMBER token's value is to be read.
type NumberKind int

const (
	NumberNormal NumberKind = iota // fits 32 bits, no suffix
	NumberLong                     // L suffix, or too wide for 32 bits
	NumberFloat                    // fractional with f suffix
	NumberDouble                   // fractional, no suffix
)

var numberKindNames = [...]string{
	NumberNormal: "normal",
	NumberLong:   "long",
	NumberFloat:  "float",
	NumberDouble: "double",
}

func (k NumberKind) String() string {
	if int(k) >= 0 && int(k) < len(numberKindNames) {
		return numberKindNames[k]
	}
	return fmt.Sprintf("NumberKind(%d)", int(k))
}

// Number is the payload of a NUMBER token.
// Int is meaningful for Normal and Long, Float for Float and Double.
type Number struct {
	Kind  NumberKind
	Int   uint64
	Float float64
}

// IsInteger reports whether the number carries an integer value.
func (n Number) IsInteger() bool {
	return n.Kind == NumberNormal || n.Kind == NumberLong
}

func (n Number) String() string {
	switch n.Kind {
	case NumberLong:
		return fmt.Sprintf("%dL", n.Int)
	case NumberFloat:
		return fmt.Sprintf("%gf", n.Float)
	case NumberDouble:
		return fmt.Sprintf("%g", n.Float)
	default:
		return fmt.Sprintf("%d", n.Int)
	}
}

// Token is a single lexical unit produced by the lexer.
//
//	x = (a + b)
//	     ^ Token{Kind: IDENTIFIER, Value: "a", Whitespace: false, BetweenBrackets: "a + b"}
type Token struct {
	Kind  TokenKind
	Value string // identifier/keyword/operator/symbol/string/comment text
	Num   Number // set when Kind == NUMBER
	Pos   Pos

	// Whitespace is true when whitespace separates this token from the previous one.
	Whitespace bool
	// BetweenBrackets holds the raw text of the innermost (...) pair around the token.
	BetweenBrackets string
}

// Is reports whether the token has the given kind and spelling.
func (t *Token) Is(kind TokenKind, value string) bool {
	return t != nil && t.Kind == kind && t.Value == value
}

// isSeparator reports whether the parser should skip the token entirely.
func (t *Token) isSeparator() bool {
	return t.Kind == NEWLINE || t.Kind == COMMENT || t.Is(SYMBOL, "\\")
}

func (t Token) String() string {
	text := t.Value
	if t.Kind == NUMBER {
		text = t.Num.String()
	}
	return fmt.Sprintf("%-10s %-14q  line %d col %d", t.Kind, text, t.Pos.Line, t.Pos.Col)
}
