package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccfront/pkg/compiler"
)

var dumpFormat string

func format() string {
	if dumpFormat != "" {
		return dumpFormat
	}
	return cfg.Dump.Format
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, name, err := readSource(args)
		if err != nil {
			return err
		}
		tokens, err := compiler.Lex(compiler.NewStringSource(src, name), newDiagnostics())
		if err != nil {
			reportError(err, nil)
			return errReported
		}

		w := cmd.OutOrStdout()
		if format() == "yaml" {
			return compiler.DumpTokens(w, tokens)
		}
		for _, tok := range tokens {
			fmt.Fprintln(w, tok)
		}
		return nil
	},
}

var astCmd = &cobra.Command{
	Use:   "ast [file|-]",
	Short: "Print the parse tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, name, err := readSource(args)
		if err != nil {
			return err
		}
		cp, err := compiler.Compile(src, name, compiler.Options{
			Logger:      logger,
			Diagnostics: newDiagnostics(),
		})
		if err != nil {
			reportError(err, cp.Tokens)
			return errReported
		}

		w := cmd.OutOrStdout()
		if format() == "yaml" {
			return compiler.DumpTree(w, cp.Tree)
		}
		for _, root := range cp.Tree {
			fmt.Fprintf(w, "%s\n%s", root, compiler.FormatTree(root))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{tokensCmd, astCmd} {
		c.Flags().StringVarP(&exprSrc, "expr", "e", "", "source text to use instead of a file")
		c.Flags().StringVarP(&dumpFormat, "format", "f", "", "output format: text or yaml (default from config)")
		rootCmd.AddCommand(c)
	}
}
