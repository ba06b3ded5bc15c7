package utils

import (
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("testdata/../main.c")
	if err != nil {
		t.Fatalf("GetPathInfo() error = %v", err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("full path %q is not absolute", full)
	}
	if filepath.Base(full) != "main.c" {
		t.Errorf("full path %q was not cleaned", full)
	}
	if filepath.Dir(full) != dir {
		t.Errorf("parent dir = %q, want %q", dir, filepath.Dir(full))
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"main.c", ".o", "main.o"},
		{"src/main.c", "asm", "src/main.asm"},
		{"noext", ".o", "noext.o"},
		{"dir.v2/file", ".out", "dir.v2/file.out"},
		{"main.c", "", "main"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}
