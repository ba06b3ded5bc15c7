package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the complete compiler configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Compiler    CompilerConfig    `toml:"compiler"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Dump        DumpConfig        `toml:"dump"`
	Repl        ReplConfig        `toml:"repl"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // text or json
}

// CompilerConfig holds settings for the compile command
type CompilerConfig struct {
	OutputSuffix string `toml:"output_suffix"`
	Flags        int    `toml:"flags"`
}

// DiagnosticsConfig controls how errors and warnings are printed
type DiagnosticsConfig struct {
	Color        bool `toml:"color"`
	ShowBrackets bool `toml:"show_brackets"`
}

// DumpConfig controls the tokens and ast commands
type DumpConfig struct {
	Format string `toml:"format"` // text or yaml
}

// ReplConfig holds interactive shell settings
type ReplConfig struct {
	HistoryFile string `toml:"history_file"`
	Prompt      string `toml:"prompt"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Diagnostics: DiagnosticsConfig{Color: true, ShowBrackets: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads the TOML file at path. An empty path searches the default
// locations; when none exists the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findDefault()
		if path == "" {
			return Default(), nil
		}
	}
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefault() string {
	if p := os.Getenv("CCFRONT_CONFIG"); p != "" {
		return p
	}
	candidates := []string{
		"./ccfront.toml",
		filepath.Join(os.Getenv("HOME"), ".config/ccfront/config.toml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}
	if c.Compiler.OutputSuffix == "" {
		c.Compiler.OutputSuffix = ".o"
	}
	if c.Dump.Format == "" {
		c.Dump.Format = "text"
	}
	if c.Repl.HistoryFile == "" {
		c.Repl.HistoryFile = ".ccfront_history"
	}
	if c.Repl.Prompt == "" {
		c.Repl.Prompt = "cc> "
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.General.LogLevel); err != nil {
		return err
	}
	switch c.General.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want text or json", c.General.LogFormat)
	}
	switch c.Dump.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid dump format %q: want text or yaml", c.Dump.Format)
	}
	return nil
}

// Level returns the configured log level.
func (g GeneralConfig) Level() slog.Level {
	lvl, err := parseLevel(g.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log_level %q", s)
}
