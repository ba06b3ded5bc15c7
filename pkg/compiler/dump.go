package compiler

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type tokenDoc struct {
	Kind       string `yaml:"kind"`
	Value      string `yaml:"value"`
	Number     string `yaml:"number,omitempty"`
	Line       int    `yaml:"line"`
	Col        int    `yaml:"col"`
	Whitespace bool   `yaml:"whitespace,omitempty"`
	Brackets   string `yaml:"between_brackets,omitempty"`
}

type nodeDoc struct {
	Kind    string   `yaml:"kind"`
	Op      string   `yaml:"op,omitempty"`
	Value   string   `yaml:"value,omitempty"`
	Postfix bool     `yaml:"postfix,omitempty"`
	Line    int      `yaml:"line"`
	Col     int      `yaml:"col"`
	Left    *nodeDoc `yaml:"left,omitempty"`
	Right   *nodeDoc `yaml:"right,omitempty"`
	Inner   *nodeDoc `yaml:"inner,omitempty"`
	Operand *nodeDoc `yaml:"operand,omitempty"`
	True    *nodeDoc `yaml:"true,omitempty"`
	False   *nodeDoc `yaml:"false,omitempty"`
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// DumpTokens writes tokens as a YAML sequence.
func DumpTokens(w io.Writer, tokens []Token) error {
	docs := make([]tokenDoc, 0, len(tokens))
	for _, t := range tokens {
		d := tokenDoc{
			Kind:       t.Kind.String(),
			Value:      t.Value,
			Line:       t.Pos.Line,
			Col:        t.Pos.Col,
			Whitespace: t.Whitespace,
			Brackets:   t.BetweenBrackets,
		}
		if t.Kind == NUMBER {
			d.Number = t.Num.Kind.String()
		}
		docs = append(docs, d)
	}
	return encodeYAML(w, docs)
}

// DumpTree writes the top-level nodes as a YAML sequence of trees.
func DumpTree(w io.Writer, nodes []Node) error {
	docs := make([]*nodeDoc, 0, len(nodes))
	for _, n := range nodes {
		docs = append(docs, toDoc(n))
	}
	return encodeYAML(w, docs)
}

func toDoc(node Node) *nodeDoc {
	if node == nil {
		return nil
	}
	d := &nodeDoc{Kind: node.Kind().String(), Line: node.Pos().Line, Col: node.Pos().Col}
	switch n := node.(type) {
	case *ExpressionNode:
		d.Op = n.Op
		d.Left = toDoc(n.Left)
		d.Right = toDoc(n.Right)
	case *ParenthesesNode:
		d.Inner = toDoc(n.Inner)
	case *BracketNode:
		d.Inner = toDoc(n.Inner)
	case *UnaryNode:
		d.Op = n.Op
		d.Postfix = n.Postfix
		d.Operand = toDoc(n.Operand)
	case *TernaryNode:
		d.True = toDoc(n.True)
		d.False = toDoc(n.False)
	case *NumberNode:
		d.Value = n.Value.String()
	case *IdentifierNode:
		d.Value = n.Name
	case *StringNode:
		d.Value = n.Value
	}
	return d
}

// FormatTree renders node as an indented outline, one node per line.
func FormatTree(node Node) string {
	var b strings.Builder
	formatNode(&b, node, "", 0)
	return b.String()
}

func formatNode(b *strings.Builder, node Node, label string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label + ": ")
	}
	if node == nil {
		b.WriteString("<empty>\n")
		return
	}

	switch n := node.(type) {
	case *ExpressionNode:
		fmt.Fprintf(b, "%s %s\n", n.Kind(), n.Op)
		formatNode(b, n.Left, "left", depth+1)
		formatNode(b, n.Right, "right", depth+1)
	case *ParenthesesNode:
		fmt.Fprintf(b, "%s\n", n.Kind())
		formatNode(b, n.Inner, "", depth+1)
	case *BracketNode:
		fmt.Fprintf(b, "%s\n", n.Kind())
		formatNode(b, n.Inner, "", depth+1)
	case *UnaryNode:
		fix := "prefix"
		if n.Postfix {
			fix = "postfix"
		}
		fmt.Fprintf(b, "%s %s %s\n", n.Kind(), fix, n.Op)
		formatNode(b, n.Operand, "", depth+1)
	case *TernaryNode:
		fmt.Fprintf(b, "%s\n", n.Kind())
		formatNode(b, n.True, "true", depth+1)
		formatNode(b, n.False, "false", depth+1)
	default:
		fmt.Fprintf(b, "%s %s\n", n.Kind(), n)
	}
}
