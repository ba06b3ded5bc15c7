package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccfront/pkg/compiler"
	"ccfront/pkg/utils"
)

var outputPath string

var compileCmd = &cobra.Command{
	Use:   "compile <input.c>",
	Short: "Compile a C source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		out := outputPath
		if out == "" {
			out = utils.OutputPath(in, cfg.Compiler.OutputSuffix)
		}

		status, cp, err := compiler.CompileFile(in, out, compiler.Options{
			Flags:       cfg.Compiler.Flags,
			Logger:      logger,
			Diagnostics: newDiagnostics(),
		})
		if err != nil {
			var tokens []compiler.Token
			if cp != nil {
				tokens = cp.Tokens
			}
			reportError(err, tokens)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", in, status)
			return errReported
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", in, status, out)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: input with the configured suffix)")
	rootCmd.AddCommand(compileCmd)
}
