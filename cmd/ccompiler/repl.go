package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"ccfront/pkg/compiler"
)

const replBanner = `ccompiler expression shell
Type an expression to see its tree or value. :tokens <src> lexes, :quit exits.`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive expression shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runRepl(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func historyPath() string {
	p := cfg.Repl.HistoryFile
	if filepath.IsAbs(p) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p)
}

func runRepl(w io.Writer) {
	fmt.Fprintln(w, replBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(cfg.Repl.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(w)
			return
		}
		if err != nil {
			reportError(err, nil)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if quit := handleReplLine(w, line); quit {
			return
		}
	}
}

// handleReplLine runs one line of input and reports whether the shell
// should exit.
func handleReplLine(w io.Writer, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == ":quit" || trimmed == ":q":
		return true
	case strings.HasPrefix(trimmed, ":tokens"):
		src := strings.TrimSpace(strings.TrimPrefix(trimmed, ":tokens"))
		tokens, err := compiler.Lex(compiler.NewStringSource(src, "<repl>"), newDiagnostics())
		if err != nil {
			reportError(err, nil)
			return false
		}
		for _, tok := range tokens {
			fmt.Fprintln(w, tok)
		}
	case strings.HasPrefix(trimmed, ":"):
		fmt.Fprintln(w, "unknown command. Type :quit to exit.")
	default:
		_ = evalSource(w, line, "<repl>", true)
	}
	return false
}
