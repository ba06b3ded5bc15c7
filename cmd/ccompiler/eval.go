package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ccfront/pkg/compiler"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate constant integer expressions",
	Example: `  ccompiler eval '2 + 3 * 4'
  ccompiler eval '1 << 4 | 3; 7 % 4'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := evalSource(cmd.OutOrStdout(), strings.Join(args, " "), "<eval>", false); err != nil {
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

// evalSource parses src and prints each top-level expression with its value.
// Expressions that are not integer constants print their tree instead when
// showTree is set. Errors are reported before being returned.
func evalSource(w io.Writer, src, name string, showTree bool) error {
	cp, err := compiler.Compile(src, name, compiler.Options{
		Logger:      logger,
		Diagnostics: newDiagnostics(),
	})
	if err != nil {
		reportError(err, cp.Tokens)
		return err
	}

	for _, root := range cp.Tree {
		v, err := compiler.Evaluate(root)
		switch {
		case err == nil:
			fmt.Fprintf(w, "%s = %d\n", root, v)
		case errors.Is(err, compiler.ErrNotConstant) && showTree:
			fmt.Fprint(w, compiler.FormatTree(root))
			if calls := compiler.Calls(root); len(calls) > 0 {
				fmt.Fprintf(w, "calls: %s\n", strings.Join(calls, ", "))
			}
		default:
			fmt.Fprintf(w, "%s: %v\n", root, err)
		}
	}
	return nil
}
