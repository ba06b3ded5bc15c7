package compiler

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"ccfront/pkg/utils"
)

// Status is the outcome of compiling one file.
type Status int

const (
	StatusCompiledOK Status = iota
	StatusFailedWithErrors
)

func (s Status) String() string {
	if s == StatusCompiledOK {
		return "compiled ok"
	}
	return "failed with errors"
}

// Options configures a compilation.
type Options struct {
	Flags       int
	Logger      *slog.Logger // defaults to slog.Default()
	Diagnostics *Diagnostics // defaults to NewDiagnostics()
}

// CompileProcess is the state of one compilation unit. Nothing in it is
// shared with other units.
type CompileProcess struct {
	ID         uuid.UUID
	Flags      int
	InputPath  string
	OutputPath string
	Tokens     []Token
	Tree       []Node
	Diag       *Diagnostics

	log *slog.Logger
}

func newCompileProcess(input, output string, opts Options) *CompileProcess {
	cp := &CompileProcess{
		ID:         uuid.New(),
		Flags:      opts.Flags,
		InputPath:  input,
		OutputPath: output,
		Diag:       opts.Diagnostics,
		log:        opts.Logger,
	}
	if cp.Diag == nil {
		cp.Diag = NewDiagnostics()
	}
	if cp.log == nil {
		cp.log = slog.Default()
	}
	cp.log = cp.log.With("unit", cp.ID.String(), "file", input)
	return cp
}

// run lexes and parses src, then hands the tree to the code generator.
func (cp *CompileProcess) run(src Source, out io.Writer) error {
	tokens, err := Lex(src, cp.Diag)
	if err != nil {
		cp.log.Error("lexical analysis failed", "err", err)
		return err
	}
	cp.Tokens = tokens
	cp.log.Debug("lexical analysis done", "tokens", len(tokens))

	tree, err := Parse(tokens, cp.Diag)
	if err != nil {
		cp.log.Error("parsing failed", "err", err)
		return err
	}
	cp.Tree = tree

	nodes := 0
	for _, root := range tree {
		Walk(root, func(Node) bool { nodes++; return true })
	}
	cp.log.Debug("parsing done", "roots", len(tree), "nodes", nodes, "warnings", len(cp.Diag.Warnings()))

	if err := Generate(out, tree); err != nil {
		cp.log.Error("code generation failed", "err", err)
		return err
	}
	return nil
}

// Compile runs the front end over an in-memory source.
func Compile(src, name string, opts Options) (*CompileProcess, error) {
	cp := newCompileProcess(name, "", opts)
	if err := cp.run(NewStringSource(src, name), io.Discard); err != nil {
		return cp, err
	}
	return cp, nil
}

// CompileFile compiles inPath into outPath. On failure the output file is
// removed, since partial output is never valid.
func CompileFile(inPath, outPath string, opts Options) (Status, *CompileProcess, error) {
	fullPath, _, err := utils.GetPathInfo(inPath)
	if err != nil {
		return StatusFailedWithErrors, nil, err
	}
	cp := newCompileProcess(fullPath, outPath, opts)

	src, closeInput, err := OpenFileSource(fullPath)
	if err != nil {
		cp.log.Error("cannot open input", "err", err)
		return StatusFailedWithErrors, cp, err
	}
	defer closeInput()

	out, err := os.Create(outPath)
	if err != nil {
		cp.log.Error("cannot create output", "path", outPath, "err", err)
		return StatusFailedWithErrors, cp, err
	}

	runErr := cp.run(src, out)
	closeErr := out.Close()
	if err := errors.Join(runErr, closeErr); err != nil {
		os.Remove(outPath)
		return StatusFailedWithErrors, cp, err
	}
	cp.log.Info("compiled", "output", outPath)
	return StatusCompiledOK, cp, nil
}
