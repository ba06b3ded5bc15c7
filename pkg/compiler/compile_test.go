package compiler

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func quietOptions(buf *bytes.Buffer) Options {
	return Options{
		Logger:      slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Diagnostics: &Diagnostics{Stderr: buf},
	}
}

func TestCompile(t *testing.T) {
	var logs bytes.Buffer
	cp, err := Compile("a = 1 + 2;\nb = a * 3;", "unit.c", quietOptions(&logs))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if cp.ID == uuid.Nil {
		t.Error("compile process should have an ID")
	}
	if len(cp.Tree) != 2 {
		t.Errorf("expected 2 top-level nodes, got %d", len(cp.Tree))
	}
	if len(cp.Tokens) == 0 {
		t.Error("tokens should be kept on the compile process")
	}
	if !strings.Contains(logs.String(), "parsing done") || !strings.Contains(logs.String(), cp.ID.String()) {
		t.Errorf("expected debug logs tagged with the unit ID, got:\n%s", logs.String())
	}
}

func TestCompile_Independent(t *testing.T) {
	var logs bytes.Buffer
	first, err := Compile("1 + 2", "a.c", quietOptions(&logs))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compile("3 * 4; 5", "b.c", quietOptions(&logs))
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("each compilation needs its own ID")
	}
	if len(first.Tree) != 1 || len(second.Tree) != 2 {
		t.Errorf("trees leaked between compilations: %d and %d nodes", len(first.Tree), len(second.Tree))
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ok.c")
	out := filepath.Join(dir, "ok.o")
	if err := os.WriteFile(in, []byte("x = (1 + 2) * 3;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	status, cp, err := CompileFile(in, out, quietOptions(&logs))
	if err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	if status != StatusCompiledOK {
		t.Errorf("status = %v, want %v", status, StatusCompiledOK)
	}
	if !filepath.IsAbs(cp.InputPath) {
		t.Errorf("InputPath %q should be absolute", cp.InputPath)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file should exist: %v", err)
	}
}

func TestCompileFile_FailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.c")
	out := filepath.Join(dir, "bad.o")
	if err := os.WriteFile(in, []byte("x = 1;\ny = + 3;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	status, _, err := CompileFile(in, out, quietOptions(&logs))
	if status != StatusFailedWithErrors {
		t.Errorf("status = %v, want %v", status, StatusFailedWithErrors)
	}
	if !errors.Is(err, ErrMissingOperand) {
		t.Errorf("error = %v, want ErrMissingOperand", err)
	}
	var d *Diagnostic
	if errors.As(err, &d) && d.Pos.Line != 2 {
		t.Errorf("error reported on line %d, want 2", d.Pos.Line)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file should be removed on failure, stat error = %v", err)
	}
}

func TestCompileFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	status, _, err := CompileFile(filepath.Join(dir, "nope.c"), filepath.Join(dir, "nope.o"), quietOptions(&logs))
	if err == nil || status != StatusFailedWithErrors {
		t.Errorf("CompileFile() = %v, %v; want failure", status, err)
	}
}

func TestGenerate_RejectsNilRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, []Node{num(1), nil}); !errors.Is(err, ErrInternal) {
		t.Errorf("Generate() error = %v, want ErrInternal", err)
	}
	if err := Generate(&buf, []Node{num(1)}); err != nil {
		t.Errorf("Generate() error = %v", err)
	}
}
