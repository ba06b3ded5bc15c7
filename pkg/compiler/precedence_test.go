package compiler

import (
	"errors"
	"testing"
)

func TestPrecedenceTable_CoversLexerOperators(t *testing.T) {
	for _, op := range operators {
		if _, _, err := precedenceOf(op); err != nil {
			t.Errorf("operator %q produced by the lexer is missing from the table", op)
		}
	}
}

func TestPrecedenceTable_NoDuplicates(t *testing.T) {
	seen := make(map[string]int)
	for i, group := range PrecedenceTable() {
		for _, op := range group.Operators {
			if prev, ok := seen[op]; ok {
				t.Errorf("operator %q appears in groups %d and %d", op, prev, i)
			}
			seen[op] = i
		}
	}
}

func TestLeftOpHasPriority(t *testing.T) {
	tests := []struct {
		left, right string
		expected    bool
	}{
		{"*", "+", true},
		{"+", "*", false},
		{"+", "+", true},
		{"-", "+", true},
		{"/", "%", true},
		{"=", "=", false},
		{"+=", "=", false},
		{"=", ",", true},
		{",", "=", false},
		{"?", "?", false},
		{"+", "?", true},
		{"=", "?", false},
		{"&&", "||", true},
		{"||", "&&", false},
		{"==", "&", true},
		{"<<", "<", true},
		{".", "()", true},
		{"*", "[]", false},
	}
	for _, tt := range tests {
		t.Run(tt.left+" "+tt.right, func(t *testing.T) {
			got, err := leftOpHasPriority(tt.left, tt.right)
			if err != nil {
				t.Fatalf("leftOpHasPriority() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("leftOpHasPriority(%q, %q) = %v, want %v", tt.left, tt.right, got, tt.expected)
			}
		})
	}
}

func TestLeftOpHasPriority_Unknown(t *testing.T) {
	for _, pair := range [][2]string{{"@", "+"}, {"+", "**"}} {
		if _, err := leftOpHasPriority(pair[0], pair[1]); !errors.Is(err, ErrUnknownOperator) {
			t.Errorf("leftOpHasPriority(%q, %q) error = %v, want ErrUnknownOperator", pair[0], pair[1], err)
		}
	}
}

func TestPrecedenceTable_Copy(t *testing.T) {
	table := PrecedenceTable()
	table[0] = OperatorGroup{}
	if _, _, err := precedenceOf(","); err != nil {
		t.Error("modifying the returned table must not change the parser's table")
	}
}
