package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Convert PokerNow logs to PokerStars hand histories"`
	Players PlayersCmd `cmd:"" help:"List the players seen in a log"`
	Aliases AliasesCmd `cmd:"" help:"Interactively assign display aliases to players"`
	Watch   WatchCmd   `cmd:"" help:"Convert logs as they appear in a directory"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pnconvert"),
		kong.Description("Convert PokerNow game logs into PokerStars hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
