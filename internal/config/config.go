// Package config loads converter settings from an optional HCL file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pnconvert/internal/money"
)

// EnvPrefix prefixes every environment override, e.g. PNCONVERT_HERO.
const EnvPrefix = "PNCONVERT_"

// Config represents the complete converter configuration
type Config struct {
	Converter *ConverterSettings `hcl:"converter,block"`
	Aliases   []AliasConfig      `hcl:"alias,block"`
}

// ConverterSettings contains conversion defaults
type ConverterSettings struct {
	Hero      string `hcl:"hero,optional" env:"HERO"`
	Currency  string `hcl:"currency,optional" env:"CURRENCY"`
	Timezone  string `hcl:"timezone,optional" env:"TIMEZONE"`
	OutputDir string `hcl:"output_dir,optional" env:"OUTPUT_DIR"`
	LogLevel  string `hcl:"log_level,optional" env:"LOG_LEVEL"`
	Workers   int    `hcl:"workers,optional" env:"WORKERS"`
	AliasFile string `hcl:"alias_file,optional" env:"ALIAS_FILE"`
}

// AliasConfig maps a composite "name @ id" key to a display name
type AliasConfig struct {
	Key  string `hcl:"key,label"`
	Name string `hcl:"name"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Converter: &ConverterSettings{
			Currency: "USD",
			Timezone: "ET",
			LogLevel: "info",
			Workers:  4,
		},
	}
}

// Load reads filename if it exists, fills in defaults and then applies
// environment overrides.
func Load(filename string) (*Config, error) {
	cfg, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg.Converter, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

func loadFile(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default().Converter
	if cfg.Converter == nil {
		cfg.Converter = defaults
		return &cfg, nil
	}
	if cfg.Converter.Currency == "" {
		cfg.Converter.Currency = defaults.Currency
	}
	if cfg.Converter.Timezone == "" {
		cfg.Converter.Timezone = defaults.Timezone
	}
	if cfg.Converter.LogLevel == "" {
		cfg.Converter.LogLevel = defaults.LogLevel
	}
	if cfg.Converter.Workers == 0 {
		cfg.Converter.Workers = defaults.Workers
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := money.Symbol(c.Converter.Currency); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Converter.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Converter.LogLevel)
	}

	if c.Converter.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	seen := make(map[string]bool)
	for _, a := range c.Aliases {
		if a.Name == "" {
			return fmt.Errorf("alias %q has an empty name", a.Key)
		}
		if seen[a.Key] {
			return fmt.Errorf("alias %q defined twice", a.Key)
		}
		seen[a.Key] = true
	}
	return nil
}

// AliasMap returns the configured aliases keyed by composite player key
func (c *Config) AliasMap() map[string]string {
	m := make(map[string]string, len(c.Aliases))
	for _, a := range c.Aliases {
		m[a.Key] = a.Name
	}
	return m
}
