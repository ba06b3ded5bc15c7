package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ccfront/pkg/compiler"
	"ccfront/pkg/config"
)

var (
	cfgFile string
	verbose bool
	exprSrc string

	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "ccompiler",
	Short: "Front end of a small C compiler",
	Long: `ccompiler tokenizes C source and parses its expressions into a
precedence-correct abstract syntax tree.

Commands:
  compile  - run the front end over a file and write the (stub) output
  tokens   - print the token stream
  ast      - print the parse tree
  eval     - evaluate constant integer expressions
  repl     - interactive expression shell`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = newLogger(os.Stderr, cfg.General)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./ccfront.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger(w io.Writer, g config.GeneralConfig) *slog.Logger {
	level := g.Level()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if g.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newDiagnostics returns a sink that renders warnings as they are reported.
func newDiagnostics() *compiler.Diagnostics {
	d := compiler.NewDiagnostics()
	d.OnWarning = func(w *compiler.Diagnostic) {
		fmt.Fprintln(os.Stderr, renderDiagnostic(w, nil))
	}
	return d
}

// readSource returns the source selected by the -e flag, a file argument,
// or stdin when the argument is "-".
func readSource(args []string) (src, name string, err error) {
	if exprSrc != "" {
		return exprSrc, "<expr>", nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("no input: pass a file, '-' for stdin, or -e <source>")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read error: %w", err)
	}
	return string(data), args[0], nil
}
