// Package compiler provides the front end of a small C compiler: a
// tokenizer and an expression parser that fixes operator precedence by
// rotating the trees it builds.
//
// Pipeline: C source → Source → Lex → Parse → Generate (stub)
package compiler
