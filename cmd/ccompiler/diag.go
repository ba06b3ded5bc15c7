package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"ccfront/pkg/compiler"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	posStyle     = lipgloss.NewStyle().Faint(true)
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func paint(s lipgloss.Style, text string) string {
	if !cfg.Diagnostics.Color {
		return text
	}
	return s.Render(text)
}

// renderDiagnostic formats d as "<severity>: <message> on line L, col C in
// file F", followed by the enclosing parenthesised text when a token at the
// same position carries one.
func renderDiagnostic(d *compiler.Diagnostic, tokens []compiler.Token) string {
	style := errorStyle
	if d.Severity == compiler.SeverityWarning {
		style = warningStyle
	}
	out := fmt.Sprintf("%s %s %s",
		paint(style, d.Severity.String()+":"),
		d.Msg,
		paint(posStyle, "on "+d.Pos.String()))

	if cfg.Diagnostics.ShowBrackets {
		for _, tok := range tokens {
			if tok.Pos == d.Pos && tok.BetweenBrackets != "" {
				out += "\n  " + paint(contextStyle, "in ("+tok.BetweenBrackets+")")
				break
			}
		}
	}
	return out
}

// reportError prints err, styling it when it is a diagnostic.
func reportError(err error, tokens []compiler.Token) {
	var d *compiler.Diagnostic
	if errors.As(err, &d) {
		fmt.Fprintln(os.Stderr, renderDiagnostic(d, tokens))
		return
	}
	fmt.Fprintln(os.Stderr, paint(errorStyle, "error:"), err)
}

// errReported marks an error that has already been printed.
var errReported = errors.New("compilation failed")

func printError(err error) {
	if errors.Is(err, errReported) {
		return
	}
	reportError(err, nil)
}
