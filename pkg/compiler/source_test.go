package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSource_Backends(t *testing.T) {
	const text = "ab\nc"
	path := filepath.Join(t.TempDir(), "src.c")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	file, closeFile, err := OpenFileSource(path)
	if err != nil {
		t.Fatalf("OpenFileSource() error = %v", err)
	}
	defer closeFile()

	sources := map[string]Source{
		"string": NewStringSource(text, path),
		"reader": NewFileSource(strings.NewReader(text), path),
		"file":   file,
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			var got []byte
			var lines []int
			for {
				c, err := src.Next()
				if errors.Is(err, ErrEndOfInput) {
					break
				}
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				got = append(got, c)
				lines = append(lines, src.Pos().Line)
			}
			if string(got) != text {
				t.Errorf("read %q, want %q", got, text)
			}
			if want := []int{1, 1, 2, 2}; !equalInts(lines, want) {
				t.Errorf("lines after each byte = %v, want %v", lines, want)
			}
			if _, err := src.Peek(); !errors.Is(err, ErrEndOfInput) {
				t.Errorf("Peek() at end = %v, want ErrEndOfInput", err)
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSource_PeekAndPushBack(t *testing.T) {
	src := NewStringSource("x\ny", "p.c")

	c, _ := src.Peek()
	if c != 'x' || src.Pos().Col != 1 {
		t.Fatalf("Peek() = %q at col %d, want 'x' at col 1", c, src.Pos().Col)
	}

	src.Next() // x
	nl, _ := src.Next()
	if nl != '\n' || src.Pos() != (Pos{Line: 2, Col: 1, Filename: "p.c"}) {
		t.Fatalf("after newline Pos = %+v", src.Pos())
	}

	src.PushBack(nl)
	src.PushBack('x')
	if src.Pos() != (Pos{Line: 1, Col: 1, Filename: "p.c"}) {
		t.Errorf("PushBack should restore the position, got %+v", src.Pos())
	}
	for _, want := range []byte("x\ny") {
		got, err := src.Next()
		if err != nil || got != want {
			t.Fatalf("Next() = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := src.Next(); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("Next() at end = %v, want ErrEndOfInput", err)
	}
}

func TestOpenFileSource_Missing(t *testing.T) {
	if _, _, err := OpenFileSource(filepath.Join(t.TempDir(), "missing.c")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSource_PushBackAfterLongInput(t *testing.T) {
	src := NewStringSource(strings.Repeat("a", 100), "long.c")
	for i := 0; i < 100; i++ {
		if _, err := src.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
	if src.Pos().Col != 101 {
		t.Fatalf("Pos().Col = %d, want 101", src.Pos().Col)
	}

	for i := 0; i < 3; i++ {
		src.PushBack('a')
	}
	if src.Pos().Col != 98 {
		t.Errorf("after 3 push-backs Pos().Col = %d, want 98", src.Pos().Col)
	}
	for i := 0; i < 3; i++ {
		src.Next()
	}
	if src.Pos().Col != 101 {
		t.Errorf("after re-reading Pos().Col = %d, want 101", src.Pos().Col)
	}

	// Only the last maxRewind positions are remembered.
	for i := 0; i < maxRewind+6; i++ {
		src.PushBack('a')
	}
	if want := 101 - maxRewind; src.Pos().Col != want {
		t.Errorf("after rewinding past the limit Pos().Col = %d, want %d", src.Pos().Col, want)
	}
}
