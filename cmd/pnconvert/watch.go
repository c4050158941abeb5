package main

import (
	"time"

	"github.com/lox/pnconvert/internal/convert"
	"github.com/lox/pnconvert/internal/watcher"
)

// WatchCmd converts logs saved into a directory until interrupted.
type WatchCmd struct {
	ConversionFlags

	Dir      string        `arg:"" type:"existingdir" help:"Directory to watch"`
	Debounce time.Duration `default:"2s" help:"Quiet period before a changed log is converted"`
	Existing bool          `help:"Also convert logs already in the directory"`
}

func (cmd *WatchCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	opts, err := cmd.converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	conv := convert.New(opts)

	w, err := watcher.New(cmd.Dir, watcher.Options{
		OnReady:  func(path string) { conv.ConvertFile(path) },
		Debounce: cmd.Debounce,
		Logger:   logger,
		Existing: cmd.Existing,
	})
	if err != nil {
		return err
	}
	return w.Run(setupSignalHandler(logger))
}
