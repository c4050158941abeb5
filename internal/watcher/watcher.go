// Package watcher converts PokerNow logs as they are saved into a
// directory.
package watcher

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/fsnotify/fsnotify"

	"github.com/lox/pnconvert/internal/convert"
)

// DefaultDebounce is how long a file must stay quiet before it is handed
// on. Browsers write downloads in several chunks.
const DefaultDebounce = 2 * time.Second

// Options configure a Watcher.
type Options struct {
	// OnReady is called once a log file has stopped changing.
	OnReady  func(path string)
	Debounce time.Duration
	Clock    quartz.Clock
	Logger   *log.Logger
	// Existing schedules the logs already in the directory on start.
	Existing bool
}

// Watcher monitors one directory for new or changed log files.
type Watcher struct {
	dir      string
	fsw      *fsnotify.Watcher
	onReady  func(string)
	debounce time.Duration
	clock    quartz.Clock
	logger   *log.Logger
	existing bool

	mu      sync.Mutex
	pending map[string]*quartz.Timer
}

// New creates a watcher for dir. Call Run to start it.
func New(dir string, opts Options) (*Watcher, error) {
	if opts.OnReady == nil {
		return nil, fmt.Errorf("watcher requires an OnReady callback")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:      filepath.Clean(dir),
		fsw:      fsw,
		onReady:  opts.OnReady,
		debounce: opts.Debounce,
		clock:    opts.Clock,
		logger:   opts.Logger.WithPrefix("watch"),
		existing: opts.Existing,
		pending:  make(map[string]*quartz.Timer),
	}, nil
}

// Run watches until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", w.dir, err)
	}
	w.logger.Info("watching for logs", "dir", w.dir, "debounce", w.debounce)

	if w.existing {
		files, err := convert.Discover([]string{w.dir})
		if err != nil {
			return err
		}
		for _, f := range files {
			w.schedule(f)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !convert.IsLogFile(event.Name) {
		return
	}
	w.logger.Debug("log changed", "path", event.Name, "op", event.Op.String())
	w.schedule(event.Name)
}

// schedule (re)starts the quiet period for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce, "watcher", "reset")
		return
	}
	w.pending[path] = w.clock.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.onReady(path)
	}, "watcher", "schedule")
}

// Pending is the number of files waiting for their quiet period to end.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Watcher) close() {
	w.mu.Lock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	_ = w.fsw.Close()
}
