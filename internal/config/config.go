// Package config loads scopekit.toml, the optional per-project settings
// file. Command-line flags override whatever it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"scopekit/internal/trace"
)

// FileName is the settings file looked up by Find.
const FileName = "scopekit.toml"

type Config struct {
	Diagnostics Diagnostics `toml:"diagnostics"`
	Parse       Parse       `toml:"parse"`
	Trace       Trace       `toml:"trace"`
}

type Diagnostics struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"` // auto | on | off
}

type Parse struct {
	Jobs int    `toml:"jobs"` // 0 = GOMAXPROCS
	Ext  string `toml:"ext"`  // source file extension for directory runs
}

type Trace struct {
	Level  string `toml:"level"`
	Output string `toml:"output"` // "-" or empty means stderr
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Diagnostics: Diagnostics{Max: 100, Color: "auto"},
		Parse:       Parse{Ext: ".sk"},
		Trace:       Trace{Level: "off", Output: "-"},
	}
}

// Find walks up from startDir looking for scopekit.toml.
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
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path over the defaults. Unknown keys are errors so that
// typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover combines Find and Load. When no file exists it returns the
// defaults and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func (c Config) Validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative, got %d", c.Diagnostics.Max)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[diagnostics].color must be auto, on or off, got %q", c.Diagnostics.Color)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("[parse].jobs must not be negative, got %d", c.Parse.Jobs)
	}
	if !strings.HasPrefix(c.Parse.Ext, ".") {
		return fmt.Errorf("[parse].ext must start with '.', got %q", c.Parse.Ext)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	return nil
}

// TraceLevel is the parsed [trace].level. Validate has already vetted it.
func (c Config) TraceLevel() trace.Level {
	lvl, _ := trace.ParseLevel(c.Trace.Level)
	return lvl
}
