package compiler

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDumpTokens(t *testing.T) {
	tokens, err := LexString("f(1L)", "d.c")
	if err != nil {
		t.Fatalf("LexString() error = %v", err)
	}
	var buf bytes.Buffer
	if err := DumpTokens(&buf, tokens); err != nil {
		t.Fatalf("DumpTokens() error = %v", err)
	}

	var docs []tokenDoc
	if err := yaml.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if len(docs) != 4 {
		t.Fatalf("expected 4 token documents, got %d", len(docs))
	}
	num := docs[2]
	if num.Kind != "NUMBER" || num.Number != "long" || num.Col != 3 || num.Brackets != "1L" {
		t.Errorf("unexpected number document %+v", num)
	}
}

func TestDumpTree(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpTree(&buf, mustParse(t, "a + b * 2; !c")); err != nil {
		t.Fatalf("DumpTree() error = %v", err)
	}

	var docs []*nodeDoc
	if err := yaml.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 trees, got %d", len(docs))
	}
	root := docs[0]
	if root.Kind != "expression" || root.Op != "+" || root.Left.Value != "a" || root.Right.Op != "*" {
		t.Errorf("unexpected tree %+v", root)
	}
	if docs[1].Kind != "unary" || docs[1].Operand == nil || docs[1].Operand.Value != "c" {
		t.Errorf("unexpected unary tree %+v", docs[1])
	}
}

func TestFormatTree(t *testing.T) {
	got := FormatTree(mustParse(t, "x = c ? f(1) : 2")[0])
	expected := `expression =
  left: identifier x
  right: expression ?
    left: identifier c
    right: ternary
      true: expression ()
        left: identifier f
        right: parentheses
          number 1
      false: number 2
`
	if got != expected {
		t.Errorf("\nExpected:\n%s\nGot:\n%s", expected, got)
	}
}
