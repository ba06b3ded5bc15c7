package compiler

import "io"

// Generate is the code generation stage. It checks that every root of the
// parsed tree is present and emits nothing to w.
func Generate(w io.Writer, tree []Node) error {
	for i, root := range tree {
		if root == nil {
			return internalErrorf("top-level node %d is nil", i)
		}
	}
	return nil
}
