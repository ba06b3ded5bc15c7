package compiler

import "fmt"

// Pos is a source location. Lines and columns are 1-based.
type Pos struct {
	Line     int
	Col      int
	Filename string
}

func newPos(filename string) Pos {
	return Pos{Line: 1, Col: 1, Filename: filename}
}

// advance moves the position past c.
func (p *Pos) advance(c byte) {
	if c == '\n' {
		p.Line++
		p.Col = 1
		return
	}
	p.Col++
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d in file %s", p.Line, p.Col, p.Filename)
}
