package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pnconvert/internal/alias"
	"github.com/lox/pnconvert/internal/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `default:"pnconvert.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool             `help:"Disable colored output"`
}

// load reads the config file and applies the global overrides.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Converter.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, g.logger(cfg.Converter.LogLevel), nil
}

func (g *Globals) logger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// aliases merges, in increasing priority, the config file aliases, the
// alias file and the given overrides.
func aliases(cfg *config.Config, overrides map[string]string) (map[string]string, error) {
	var fromFile map[string]string
	if cfg.Converter.AliasFile != "" {
		var err error
		if fromFile, err = alias.Load(cfg.Converter.AliasFile); err != nil {
			return nil, err
		}
	}
	return alias.Merge(cfg.AliasMap(), fromFile, overrides), nil
}
