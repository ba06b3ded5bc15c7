package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors. Every fatal diagnostic wraps exactly one of these so that
// callers can classify failures with errors.Is.
var (
	ErrEndOfInput          = errors.New("end of input")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrUnexpectedChar      = errors.New("unexpected character")
	ErrNumberOverflow      = errors.New("number out of range")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrMissingOperand      = errors.New("missing operand")
	ErrEmptyStack          = errors.New("node stack is empty")
	ErrUnknownOperator     = errors.New("operator not in precedence table")
	ErrInternal            = errors.New("internal compiler error")
	ErrNotConstant         = errors.New("expression is not constant")
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a message tied to a source position.
type Diagnostic struct {
	Pos      Pos
	Severity Severity
	Msg      string
	Err      error // sentinel for errors, nil for warnings
}

// Error renders "<message> on line L, col C in file F".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s on %s", d.Msg, d.Pos)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// Diagnostics collects warnings for one compilation unit and builds the
// fatal errors that abort it.
type Diagnostics struct {
	// OnWarning is called for every warning as it is reported.
	// When nil, warnings are printed to Stderr.
	OnWarning func(*Diagnostic)
	// Stderr receives warnings when OnWarning is nil. Defaults to os.Stderr.
	Stderr io.Writer

	warnings []*Diagnostic
}

// NewDiagnostics returns a Diagnostics that prints warnings to stderr.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{Stderr: os.Stderr}
}

// Errorf builds a fatal diagnostic wrapping sentinel. The caller must
// return it; compilation stops at the first one.
func (d *Diagnostics) Errorf(pos Pos, sentinel error, format string, args ...any) error {
	return &Diagnostic{
		Pos:      pos,
		Severity: SeverityError,
		Msg:      fmt.Sprintf(format, args...),
		Err:      sentinel,
	}
}

// Warningf records a warning. Warnings never abort compilation.
func (d *Diagnostics) Warningf(pos Pos, format string, args ...any) {
	w := &Diagnostic{Pos: pos, Severity: SeverityWarning, Msg: fmt.Sprintf(format, args...)}
	d.warnings = append(d.warnings, w)
	if d.OnWarning != nil {
		d.OnWarning(w)
		return
	}
	out := d.Stderr
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, w.Error())
}

// Warnings returns the warnings reported so far.
func (d *Diagnostics) Warnings() []*Diagnostic {
	return d.warnings
}

// internalErrorf reports a broken invariant inside the front end.
func internalErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

// internalError marks err as a broken invariant, keeping its own sentinel.
func internalError(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
