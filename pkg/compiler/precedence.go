package compiler

import "fmt"

// Associativity decides how operators of equal precedence group.
type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

func (a Associativity) String() string {
	if a == RightToLeft {
		return "right-to-left"
	}
	return "left-to-right"
}

// OperatorGroup is a set of operators sharing one precedence level.
type OperatorGroup struct {
	Operators     []string
	Associativity Associativity
}

// precedenceTable is ordered from the loosest binding group to the tightest;
// a group's index is its binding power.
var precedenceTable = []OperatorGroup{
	{Operators: []string{","}, Associativity: LeftToRight},
	{Operators: []string{"=", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "|=", "^="}, Associativity: RightToLeft},
	{Operators: []string{"?"}, Associativity: RightToLeft},
	{Operators: []string{"||"}, Associativity: LeftToRight},
	{Operators: []string{"&&"}, Associativity: LeftToRight},
	{Operators: []string{"|"}, Associativity: LeftToRight},
	{Operators: []string{"^"}, Associativity: LeftToRight},
	{Operators: []string{"&"}, Associativity: LeftToRight},
	{Operators: []string{"==", "!="}, Associativity: LeftToRight},
	{Operators: []string{"<", "<=", ">", ">="}, Associativity: LeftToRight},
	{Operators: []string{"<<", ">>"}, Associativity: LeftToRight},
	{Operators: []string{"+", "-"}, Associativity: LeftToRight},
	{Operators: []string{"*", "/", "%"}, Associativity: LeftToRight},
	{Operators: []string{"!", "~", "++", "--"}, Associativity: RightToLeft},
	{Operators: []string{"(", "[", "()", "[]", ".", "->"}, Associativity: LeftToRight},
}

// PrecedenceTable returns a copy of the operator groups, loosest first.
func PrecedenceTable() []OperatorGroup {
	out := make([]OperatorGroup, len(precedenceTable))
	copy(out, precedenceTable)
	return out
}

// operatorPower maps each operator to its group index in precedenceTable.
var operatorPower = func() map[string]int {
	m := make(map[string]int)
	for i, group := range precedenceTable {
		for _, op := range group.Operators {
			m[op] = i
		}
	}
	return m
}()

// precedenceOf returns the binding power of op and its group.
func precedenceOf(op string) (int, *OperatorGroup, error) {
	i, ok := operatorPower[op]
	if !ok {
		return -1, nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	return i, &precedenceTable[i], nil
}

// leftOpHasPriority reports whether, in "x left y right z", left must be
// applied before right. It does when left binds tighter, or when both bind
// equally tight in a left-to-right group.
func leftOpHasPriority(left, right string) (bool, error) {
	pl, group, err := precedenceOf(left)
	if err != nil {
		return false, err
	}
	pr, _, err := precedenceOf(right)
	if err != nil {
		return false, err
	}
	if pl == pr {
		return group.Associativity == LeftToRight, nil
	}
	return pl > pr, nil
}
