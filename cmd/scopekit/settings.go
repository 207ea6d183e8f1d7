package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scopekit/internal/config"
	"scopekit/internal/driver"
)

// settings is scopekit.toml overlaid with the flags the user actually set.
type settings struct {
	cfg        config.Config
	configPath string
	quiet      bool
	timings    bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()

	explicit, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var s settings
	if explicit != "" {
		s.cfg, err = config.Load(explicit)
		s.configPath = explicit
	} else {
		s.cfg, s.configPath, err = config.Discover(".")
	}
	if err != nil {
		return settings{}, err
	}

	if err := overrideString(flags, "color", &s.cfg.Diagnostics.Color); err != nil {
		return settings{}, err
	}
	if err := overrideInt(flags, "max-diagnostics", &s.cfg.Diagnostics.Max); err != nil {
		return settings{}, err
	}
	if err := overrideInt(flags, "jobs", &s.cfg.Parse.Jobs); err != nil {
		return settings{}, err
	}
	if err := overrideString(flags, "trace", &s.cfg.Trace.Level); err != nil {
		return settings{}, err
	}
	if err := overrideString(flags, "trace-output", &s.cfg.Trace.Output); err != nil {
		return settings{}, err
	}
	if err := s.cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return settings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return settings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func overrideString(flags *pflag.FlagSet, name string, dst *string) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

// useColor decides colouring for output written to f.
func (s settings) useColor(f *os.File) bool {
	switch s.cfg.Diagnostics.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func (s settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		Jobs:           s.cfg.Parse.Jobs,
		Ext:            s.cfg.Parse.Ext,
	}
}
