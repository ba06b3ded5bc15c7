package compiler

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Source is the character stream the lexer reads from. Implementations must
// behave identically so the lexer never needs to know where bytes come from.
type Source interface {
	// Next consumes one byte and advances the position.
	// It returns ErrEndOfInput once the stream is exhausted.
	Next() (byte, error)
	// Peek returns the next byte without consuming it.
	Peek() (byte, error)
	// PushBack makes c the next byte returned by Next or Peek.
	PushBack(c byte)
	// Pos is the position of the next byte.
	Pos() Pos
}

// charSource implements Source over any io.ByteReader.
type charSource struct {
	rd      io.ByteReader
	pending []byte // pushed-back bytes, top of stack is the last element
	pos     Pos
	// prev is a ring of the positions before the last consumed bytes, for
	// PushBack. head is the next slot to write and n the number held.
	prev [maxRewind]Pos
	head int
	n    int
}

// maxRewind bounds how many consumed positions are remembered.
const maxRewind = 64

func newCharSource(rd io.ByteReader, name string) *charSource {
	return &charSource{rd: rd, pos: newPos(name)}
}

// NewStringSource returns a Source reading from an in-memory string.
func NewStringSource(src, name string) Source {
	return newCharSource(strings.NewReader(src), name)
}

// NewFileSource returns a Source reading from r, reporting positions in name.
func NewFileSource(r io.Reader, name string) Source {
	return newCharSource(bufio.NewReader(r), name)
}

// OpenFileSource opens path and returns a Source over its contents.
// The returned close function releases the file.
func OpenFileSource(path string) (Source, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return newCharSource(bufio.NewReader(f), path), f.Close, nil
}

func (s *charSource) read() (byte, error) {
	if n := len(s.pending); n > 0 {
		c := s.pending[n-1]
		s.pending = s.pending[:n-1]
		return c, nil
	}
	c, err := s.rd.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrEndOfInput
	}
	return c, err
}

func (s *charSource) Next() (byte, error) {
	c, err := s.read()
	if err != nil {
		return 0, err
	}
	s.prev[s.head] = s.pos
	s.head = (s.head + 1) % maxRewind
	if s.n < maxRewind {
		s.n++
	}
	s.pos.advance(c)
	return c, nil
}

func (s *charSource) Peek() (byte, error) {
	c, err := s.read()
	if err != nil {
		return 0, err
	}
	s.pending = append(s.pending, c)
	return c, nil
}

func (s *charSource) PushBack(c byte) {
	s.pending = append(s.pending, c)
	if s.n > 0 {
		s.head = (s.head + maxRewind - 1) % maxRewind
		s.pos = s.prev[s.head]
		s.n--
	}
}

func (s *charSource) Pos() Pos { return s.pos }
