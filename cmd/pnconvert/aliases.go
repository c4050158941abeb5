package main

import (
	"errors"
	"fmt"

	"github.com/lox/pnconvert/internal/alias"
	"github.com/lox/pnconvert/internal/convert"
	"github.com/lox/pnconvert/internal/pokernow"
)

// AliasesCmd prompts for an alias per player id and saves the answers.
type AliasesCmd struct {
	File      string `arg:"" type:"existingfile" help:"PokerNow log file"`
	AliasFile string `type:"path" help:"Alias file to update (overrides config)"`
}

func (cmd *AliasesCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if cmd.AliasFile != "" {
		cfg.Converter.AliasFile = cmd.AliasFile
	}
	if cfg.Converter.AliasFile == "" {
		return errors.New("no alias file configured, pass --alias-file")
	}

	game, err := convert.ParseFile(cmd.File, pokernow.Options{
		Currency: cfg.Converter.Currency,
		Timezone: cfg.Converter.Timezone,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	current, err := aliases(cfg, nil)
	if err != nil {
		return err
	}

	answers, err := alias.Prompt(alias.GroupByID(game), current)
	if err != nil && !errors.Is(err, alias.ErrAborted) {
		return err
	}
	if len(answers) > 0 {
		if err := alias.Save(cfg.Converter.AliasFile, answers); err != nil {
			return err
		}
		logger.Info("aliases saved", "file", cfg.Converter.AliasFile, "players", len(answers))
	}
	if err != nil {
		return fmt.Errorf("saved %d aliases before quitting: %w", len(answers), err)
	}
	return nil
}
