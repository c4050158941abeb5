package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/pnconvert/internal/alias"
	"github.com/lox/pnconvert/internal/convert"
	"github.com/lox/pnconvert/internal/pokernow"
)

// PlayersCmd lists every distinct player in a log with an example hand.
type PlayersCmd struct {
	File string `arg:"" type:"existingfile" help:"PokerNow log file"`
}

func (cmd *PlayersCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	game, err := convert.ParseFile(cmd.File, pokernow.Options{
		Currency: cfg.Converter.Currency,
		Timezone: cfg.Converter.Timezone,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	merged, err := aliases(cfg, nil)
	if err != nil {
		return err
	}
	alias.Apply(game, merged)
	return listPlayers(os.Stdout, game)
}

func listPlayers(w io.Writer, game *pokernow.Game) error {
	players := game.SeenPlayers()
	if len(players) == 0 {
		return fmt.Errorf("no players found")
	}
	for _, p := range players {
		name := p.Key()
		if p.Alias != "" {
			name += " " + labelStyle.Render("("+p.Alias+")")
		}
		fmt.Fprintln(w, successStyle.Render("•")+" "+name)

		h := game.FindHandWithPlayer(p.Key())
		if h == nil {
			continue
		}
		var with []string
		for _, other := range h.Players {
			if other.Key() != p.Key() {
				with = append(with, other.DisplayName())
			}
		}
		fmt.Fprintf(w, "  %s\n", labelStyle.Render(fmt.Sprintf("hand #%d at %s %s with %s",
			h.Number, h.Start.Format("2006/01/02 15:04:05"), game.Timezone, strings.Join(with, ", "))))
	}
	return nil
}
