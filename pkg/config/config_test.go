package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.General.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.General.LogLevel)
	}
	if cfg.Compiler.OutputSuffix != ".o" {
		t.Errorf("OutputSuffix = %q, want .o", cfg.Compiler.OutputSuffix)
	}
	if !cfg.Diagnostics.Color || !cfg.Diagnostics.ShowBrackets {
		t.Errorf("diagnostics defaults = %+v, want color and brackets on", cfg.Diagnostics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[general]
log_level = "debug"
log_format = "json"

[compiler]
output_suffix = ".asm"

[diagnostics]
color = false

[dump]
format = "yaml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.General.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.General.Level())
	}
	if cfg.General.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.General.LogFormat)
	}
	if cfg.Compiler.OutputSuffix != ".asm" {
		t.Errorf("OutputSuffix = %q, want .asm", cfg.Compiler.OutputSuffix)
	}
	if cfg.Diagnostics.Color {
		t.Error("Color should be overridden to false")
	}
	if !cfg.Diagnostics.ShowBrackets {
		t.Error("ShowBrackets should keep its default")
	}
	if cfg.Dump.Format != "yaml" {
		t.Errorf("Dump.Format = %q, want yaml", cfg.Dump.Format)
	}
	if cfg.Repl.Prompt != "cc> " {
		t.Errorf("Repl.Prompt = %q, want default", cfg.Repl.Prompt)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[general\nlog_level = "},
		{"bad level", "[general]\nlog_level = \"loud\""},
		{"bad log format", "[general]\nlog_format = \"xml\""},
		{"bad dump format", "[dump]\nformat = \"json\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing explicit path should fail")
	}
}

func TestLoad_EnvPath(t *testing.T) {
	path := writeConfig(t, "[repl]\nprompt = \">> \"")
	t.Setenv("CCFRONT_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Repl.Prompt != ">> " {
		t.Errorf("Prompt = %q, want >> ", cfg.Repl.Prompt)
	}
}
