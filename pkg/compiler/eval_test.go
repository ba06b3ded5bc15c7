package compiler

import (
	"errors"
	"reflect"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"2 + 3 * 4", 14},
		{"2 * 3 + 4", 10},
		{"2 + 3 + 4", 9},
		{"10 - 4 - 3", 3},
		{"100 / 10 / 5", 2},
		{"17 % 5", 2},
		{"(1 + 2) * 3", 9},
		{"1 << 4 | 3", 19},
		{"0xF0 & 0x3C ^ 1", 0x31},
		{"~0", -1},
		{"!5", 0},
		{"!0 + 1", 2},
		{"3 < 4 == 1", 1},
		{"5 >= 6", 0},
		{"1 && 0 || 1", 1},
		{"0 && 1 / 0", 0},
		{"1 || 1 / 0", 1},
		{"1 ? 2 : 3", 2},
		{"0 ? 2 : 1 ? 4 : 5", 4},
		{"1 + 1 ? 7 : 8", 7},
		{"(1, 2)", 2},
		{"1 ? 2 : 3, 4", 4},
		{"0 ? 1 : 2, 3 ? 5 : 6", 5},
		{"'A' + 1", 66},
		{"10L * 3", 30},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes := mustParse(t, tt.input)
			got, err := Evaluate(nodes[0])
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Evaluate(%s) = %d, want %d", nodes[0], got, tt.expected)
			}
		})
	}
}

func TestEvaluate_NotConstant(t *testing.T) {
	for _, src := range []string{"x + 1", "f(2)", "a[0]", `"s"`, "1.5 + 1", "1 / 0", "4 % 0", "i++", "a = 1"} {
		t.Run(src, func(t *testing.T) {
			_, err := Evaluate(mustParse(t, src)[0])
			if !errors.Is(err, ErrNotConstant) {
				t.Errorf("Evaluate(%q) error = %v, want ErrNotConstant", src, err)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	var visited []string
	Walk(mustParse(t, "a + f(b) * !c")[0], func(n Node) bool {
		visited = append(visited, n.Kind().String())
		return true
	})
	expected := []string{
		"expression", "identifier", "expression", "expression", "identifier",
		"parentheses", "identifier", "unary", "identifier",
	}
	if !reflect.DeepEqual(visited, expected) {
		t.Errorf("\nExpected: %v\nGot:      %v", expected, visited)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	count := 0
	Walk(mustParse(t, "(a + b) * c")[0], func(n Node) bool {
		count++
		return n.Kind() != NodeParenthesizedExpression
	})
	// *, (), c
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestCalls(t *testing.T) {
	got := Calls(mustParse(t, "f(g(1), x) + h() + f(2) + s.m(3)")[0])
	expected := []string{"f", "g", "h"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Calls() = %v, want %v", got, expected)
	}
}
