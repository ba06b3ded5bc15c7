package utils

import (
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to an absolute, cleaned path and the
// directory containing it.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// OutputPath derives an output file name from input by swapping its
// extension for suffix, e.g. ("src/main.c", ".o") -> "src/main.o".
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return base + suffix
}
