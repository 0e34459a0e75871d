package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"paste/internal/config"
	"paste/internal/diagfmt"
	"paste/internal/driver"
)

// settings is the merged view of paste.toml and the command line.
type settings struct {
	cfg            *config.Config
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

var current *settings

func loadSettings(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return err
	}

	s := &settings{cfg: cfg, maxDiagnostics: cfg.Output.MaxDiagnostics}

	colorMode := cfg.Output.Color
	if flags.Changed("color") {
		colorMode, _ = flags.GetString("color")
	}
	switch strings.ToLower(colorMode) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "", "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}
	color.NoColor = !s.color

	if flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	current = s
	return nil
}

// expandFlags are shared by expand and check.
type expandFlags struct {
	vars     []string
	maxDepth int
	jobs     int
	ui       string
}

func (f *expandFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "bind $name inside invocations (name=value, repeatable)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting of groups and spans (0: use config)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().StringVar(&f.ui, "ui", "auto", "progress UI (auto|on|off)")
}

// driverOptions merges config values with flags; flags win.
func (f *expandFlags) driverOptions(s *settings) (driver.Options, error) {
	opts := driver.Options{
		Paste:          s.cfg.PasteOptions(),
		Macros:         s.cfg.Expand.Macros,
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	}
	if f.maxDepth > 0 {
		opts.Paste.MaxDepth = f.maxDepth
	}

	values := make(map[string]string, len(s.cfg.Vars))
	for k, v := range s.cfg.Vars {
		values[k] = v
	}
	overrides, err := driver.ParseVarFlags(f.vars)
	if err != nil {
		return opts, err
	}
	for k, v := range overrides {
		values[k] = v
	}
	vars, err := driver.CompileVars(values)
	if err != nil {
		return opts, err
	}
	opts.Vars = vars
	return opts, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: s.color, Context: 2, ShowNotes: true}
}
