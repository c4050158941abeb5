// Package convert turns PokerNow log files into PokerStars hand history
// files, several at a time.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pnconvert/internal/alias"
	"github.com/lox/pnconvert/internal/pokernow"
	"github.com/lox/pnconvert/internal/pokerstars"
)

// Options control a conversion run.
type Options struct {
	// Hero is matched against aliases, composite keys and raw names.
	Hero     string
	Aliases  map[string]string
	Currency string
	Timezone string
	// OutputDir receives converted files. Empty means next to each input.
	OutputDir string
	// Writer overrides OutputDir, e.g. to print to stdout.
	Writer  pokerstars.HistoryWriter
	Workers int

	Logger   *log.Logger
	Reporter *Reporter
	Clock    quartz.Clock
}

// Result is the outcome of converting one file.
type Result struct {
	Path      string
	Output    string
	Hands     int
	HeroHands int
	Duration  time.Duration
	Err       error
}

// ParseFile reads and parses one PokerNow log.
func ParseFile(path string, opts pokernow.Options) (*pokernow.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := pokernow.ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	opts.SourcePath = path
	game, err := pokernow.Parse(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return game, nil
}

// Converter converts files with fixed options.
type Converter struct {
	opts   Options
	logger *log.Logger
	clock  quartz.Clock

	mu sync.Mutex
	// claims maps output paths to the log that produced them.
	claims map[string]string
}

// New creates a converter, filling in defaults for unset options.
func New(opts Options) *Converter {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Writer != nil {
		opts.Writer = &lockedWriter{w: opts.Writer}
	}
	return &Converter{
		opts:   opts,
		logger: opts.Logger.WithPrefix("convert"),
		clock:  opts.Clock,
		claims: make(map[string]string),
	}
}

// ConvertFile converts a single file. Failures are carried in the result.
func (c *Converter) ConvertFile(path string) Result {
	start := c.clock.Now()
	res := c.convert(path)
	res.Duration = c.clock.Since(start)

	if res.Err != nil {
		c.logger.Error("conversion failed", "path", path, "err", res.Err)
	} else {
		c.logger.Info("converted", "path", path, "hands", res.Hands, "output", res.Output)
	}
	if c.opts.Reporter != nil {
		c.opts.Reporter.Record(res)
	}
	return res
}

func (c *Converter) convert(path string) Result {
	res := Result{Path: path}

	game, err := ParseFile(path, pokernow.Options{
		Currency: c.opts.Currency,
		Timezone: c.opts.Timezone,
		Logger:   c.logger.With("path", filepath.Base(path)),
	})
	if err != nil {
		res.Err = err
		var perr *pokernow.ParseError
		if errors.As(err, &perr) {
			c.logger.Debug("failing line", "row", perr.Row, "text", perr.Text)
		}
		return res
	}
	res.Hands = len(game.Hands)
	if res.Hands == 0 {
		res.Err = fmt.Errorf("%s: %w", path, pokerstars.ErrNoHands)
		return res
	}

	if len(c.opts.Aliases) > 0 {
		applied := alias.Apply(game, c.opts.Aliases)
		c.logger.Debug("aliases applied", "path", path, "players", len(applied))
	}
	if c.opts.Hero != "" {
		res.HeroHands = game.SetHero(c.opts.Hero)
		if res.HeroHands == 0 {
			c.logger.Warn("hero not found in any hand", "path", path, "hero", c.opts.Hero)
		}
	}

	name, err := pokerstars.FileName(game)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output, res.Err = pokerstars.WriteGame(c.writerFor(path), game, c.claim(path, name))
	return res
}

func (c *Converter) outputDir(path string) string {
	if c.opts.OutputDir != "" {
		return c.opts.OutputDir
	}
	return filepath.Dir(path)
}

func (c *Converter) writerFor(path string) pokerstars.HistoryWriter {
	if c.opts.Writer != nil {
		return c.opts.Writer
	}
	return pokerstars.NewFileHistoryWriter(c.outputDir(path))
}

// claim reserves an output name for the log at path. A name another log
// already wrote to is qualified with this log's file stem.
func (c *Converter) claim(path, name string) string {
	if c.opts.Writer != nil {
		return name
	}
	dir := c.outputDir(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if owner, ok := c.claims[filepath.Join(dir, name)]; ok && owner != path {
		qualified := pokerstars.QualifiedFileName(name, path)
		c.logger.Warn("output name already taken", "path", path, "taken_by", owner, "output", qualified)
		name = qualified
	}
	c.claims[filepath.Join(dir, name)] = path
	return name
}

// Run converts every file with up to Workers files in flight. Results are
// returned in input order. The error is non-nil only if ctx was cancelled;
// per-file failures are reported in the results.
func (c *Converter) Run(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.ConvertFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failed counts the results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// lockedWriter serialises writes to a shared writer such as stdout.
type lockedWriter struct {
	mu sync.Mutex
	w  pokerstars.HistoryWriter
}

func (l *lockedWriter) WriteHistory(name string, lines []string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.WriteHistory(name, lines)
}
