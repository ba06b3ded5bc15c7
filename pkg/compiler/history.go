package compiler

// HistoryFlag records what the parser is in the middle of.
type HistoryFlag int

const (
	HistoryInsideTernary HistoryFlag = 1 << iota
)

// History is the context threaded down through recursive parse calls. It is
// passed by value, so a callee can never change its caller's copy.
type History struct {
	Flags HistoryFlag
	// base is the node stack depth at which the current expression begins.
	// Nodes below it belong to an enclosing construct.
	base int
	// floor is the loosest binding power an operator may have and still
	// continue the current expression. Looser operators end it and are
	// left to the enclosing expression.
	floor int
}

func historyBegin(flags HistoryFlag, base int) History {
	return History{Flags: flags, base: base}
}

// down derives the context for a nested expression starting at stack depth
// base. The operator floor carries over.
func (h History) down(flags HistoryFlag, base int) History {
	h.Flags = flags
	h.base = base
	return h
}

// bounded returns a copy whose expression ends at any operator looser than power.
func (h History) bounded(power int) History {
	h.floor = power
	return h
}

func (h History) has(f HistoryFlag) bool { return h.Flags&f != 0 }

// endsAt reports whether an operator of the given power ends the expression.
func (h History) endsAt(power int) bool { return power < h.floor }
