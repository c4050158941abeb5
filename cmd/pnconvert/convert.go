package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pnconvert/internal/alias"
	"github.com/lox/pnconvert/internal/config"
	"github.com/lox/pnconvert/internal/convert"
	"github.com/lox/pnconvert/internal/pokernow"
	"github.com/lox/pnconvert/internal/pokerstars"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// ConversionFlags are shared by commands that write hand histories.
type ConversionFlags struct {
	Hero      string   `short:"H" help:"Hero name, alias or \"name @ id\" key (overrides config)"`
	Alias     []string `short:"a" sep:"none" placeholder:"KEY=ALIAS" help:"Display alias for a player, repeatable"`
	Currency  string   `short:"c" help:"Currency code (overrides config)"`
	Timezone  string   `help:"Timezone label for hand times (overrides config)"`
	OutputDir string   `short:"o" type:"path" help:"Directory for converted files, defaults to next to each log"`
	Workers   int      `short:"w" help:"Files converted in parallel (overrides config)"`
}

// apply layers the flags over the loaded configuration.
func (f ConversionFlags) apply(cfg *config.Config) error {
	c := cfg.Converter
	if f.Hero != "" {
		c.Hero = f.Hero
	}
	if f.Currency != "" {
		c.Currency = strings.ToUpper(f.Currency)
	}
	if f.Timezone != "" {
		c.Timezone = f.Timezone
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.Workers != 0 {
		c.Workers = f.Workers
	}
	return cfg.Validate()
}

// parseAliasFlags turns KEY=ALIAS pairs into a map. The key is split at
// the last '=' since names may contain one.
func parseAliasFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		i := strings.LastIndex(p, "=")
		if i <= 0 || i == len(p)-1 {
			return nil, fmt.Errorf("invalid alias %q, want KEY=ALIAS", p)
		}
		key := strings.TrimSpace(p[:i])
		if _, _, ok := pokernow.SplitKey(key); !ok {
			return nil, fmt.Errorf("invalid alias key %q, want \"name @ id\"", key)
		}
		out[key] = strings.TrimSpace(p[i+1:])
	}
	return out, nil
}

// converterOptions builds conversion options from config and flags.
func (f ConversionFlags) converterOptions(cfg *config.Config, logger *log.Logger) (convert.Options, error) {
	if err := f.apply(cfg); err != nil {
		return convert.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	overrides, err := parseAliasFlags(f.Alias)
	if err != nil {
		return convert.Options{}, err
	}
	merged, err := aliases(cfg, overrides)
	if err != nil {
		return convert.Options{}, err
	}
	c := cfg.Converter
	return convert.Options{
		Hero:      c.Hero,
		Aliases:   merged,
		Currency:  c.Currency,
		Timezone:  c.Timezone,
		OutputDir: c.OutputDir,
		Workers:   c.Workers,
		Logger:    logger,
	}, nil
}

// ConvertCmd converts one or more logs or directories of logs.
type ConvertCmd struct {
	ConversionFlags

	Paths       []string `arg:"" name:"path" type:"path" help:"PokerNow log files or directories"`
	Interactive bool     `short:"i" help:"Prompt for player aliases before converting"`
	Report      string   `type:"path" help:"Write a JSON line per converted file to this path"`
	Stdout      bool     `help:"Print hand histories to stdout instead of writing files"`
}

func (cmd *ConvertCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	opts, err := cmd.converterOptions(cfg, logger)
	if err != nil {
		return err
	}

	files, err := convert.Discover(cmd.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no PokerNow logs found")
	}

	if cmd.Interactive {
		answers, err := promptAliases(files, opts, logger)
		if err != nil {
			return err
		}
		if cfg.Converter.AliasFile != "" && len(answers) > 0 {
			if err := alias.Save(cfg.Converter.AliasFile, answers); err != nil {
				return err
			}
		}
		opts.Aliases = alias.Merge(opts.Aliases, answers)
	}

	if cmd.Report != "" {
		f, err := os.Create(cmd.Report)
		if err != nil {
			return fmt.Errorf("open report: %w", err)
		}
		defer f.Close()
		opts.Reporter = convert.NewReporter(f, nil)
	}
	if cmd.Stdout {
		opts.Writer = pokerstars.NewStreamHistoryWriter(os.Stdout)
	}

	ctx := setupSignalHandler(logger)
	results, err := convert.New(opts).Run(ctx, files)
	if err != nil {
		return err
	}

	failed := convert.Failed(results)
	if !cmd.Stdout {
		printSummary(results)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(results))
	}
	return nil
}

// promptAliases asks for aliases for every player in files, one log at a
// time. Players already answered are not asked again.
func promptAliases(files []string, opts convert.Options, logger *log.Logger) (map[string]string, error) {
	answers := make(map[string]string)
	asked := make(map[string]bool)
	for _, path := range files {
		game, err := convert.ParseFile(path, pokernow.Options{
			Currency: opts.Currency,
			Timezone: opts.Timezone,
			Logger:   logger,
		})
		if err != nil {
			logger.Warn("skipping alias prompt", "path", path, "err", err)
			continue
		}
		var groups []alias.Group
		for _, grp := range alias.GroupByID(game) {
			if !asked[grp.ID] {
				asked[grp.ID] = true
				groups = append(groups, grp)
			}
		}
		got, err := alias.Prompt(groups, alias.Merge(opts.Aliases, answers))
		for k, v := range got {
			answers[k] = v
		}
		if err != nil {
			return nil, err
		}
	}
	return answers, nil
}

func printSummary(results []convert.Result) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s %s\n  %s\n", errorStyle.Render("✗"), r.Path, labelStyle.Render(r.Err.Error()))
			continue
		}
		fmt.Printf("%s %s %s %s\n", successStyle.Render("✓"), r.Path,
			labelStyle.Render("→"), r.Output)
		fmt.Printf("  %s\n", labelStyle.Render(fmt.Sprintf("%d hands, hero in %d", r.Hands, r.HeroHands)))
	}
}
