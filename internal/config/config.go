// Package config loads paste.toml, the per-project defaults for expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"paste/internal/diag"
	"paste/internal/paste"
	"paste/internal/trace"
)

// FileName is the name looked up by Find.
const FileName = "paste.toml"

type Config struct {
	// Path of the file the config was read from; empty for defaults.
	Path   string            `toml:"-"`
	Expand ExpandConfig      `toml:"expand"`
	Vars   map[string]string `toml:"vars"`
	Output OutputConfig      `toml:"output"`
	Trace  TraceConfig       `toml:"trace"`
}

type ExpandConfig struct {
	MaxDepth      int      `toml:"max_depth"`
	DocAttributes bool     `toml:"doc_attributes"`
	Macros        []string `toml:"macros"`
}

type OutputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// Default returns the configuration used when no paste.toml exists.
func Default() *Config {
	return &Config{
		Expand: ExpandConfig{MaxDepth: paste.DefaultMaxDepth, DocAttributes: true},
		Vars:   map[string]string{},
		Output: OutputConfig{Color: "auto", MaxDiagnostics: 100},
		Trace:  TraceConfig{Level: "off", Output: "-", Mode: "stream"},
	}
}

// Error is a CFG4001 validation failure.
type Error struct {
	Path string
	Key  string
	Msg  string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s: %s", diag.CfgInvalidValue.ID(), e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s: [%s] %s", diag.CfgInvalidValue.ID(), e.Path, e.Key, e.Msg)
}

// Find walks up from startDir to locate paste.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest paste.toml above startDir, or Default when
// there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads and validates path. Keys missing from the file keep their
// defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, &Error{Path: path, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	if err := cfg.validate(meta); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(meta toml.MetaData) error {
	fail := func(key, format string, args ...any) error {
		return &Error{Path: c.Path, Key: key, Msg: fmt.Sprintf(format, args...)}
	}
	if meta.IsDefined("expand", "max_depth") && c.Expand.MaxDepth <= 0 {
		return fail("expand", "max_depth must be positive, got %d", c.Expand.MaxDepth)
	}
	for _, m := range c.Expand.Macros {
		if !paste.IsIdentifier(m) {
			return fail("expand", "macros: %q is not an identifier", m)
		}
	}
	for name := range c.Vars {
		if !paste.IsIdentifier(name) {
			return fail("vars", "%q is not an identifier", name)
		}
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fail("output", "color must be auto, on or off, got %q", c.Output.Color)
	}
	if meta.IsDefined("output", "max_diagnostics") && c.Output.MaxDiagnostics <= 0 {
		return fail("output", "max_diagnostics must be positive, got %d", c.Output.MaxDiagnostics)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fail("trace", "%v", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fail("trace", "%v", err)
	}
	return nil
}

// PasteOptions returns engine options for this config.
func (c *Config) PasteOptions() paste.Options {
	return paste.Options{
		MaxDepth:      c.Expand.MaxDepth,
		DocAttributes: c.Expand.DocAttributes,
	}
}
