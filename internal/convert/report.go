package convert

import (
	"io"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// Reporter writes one JSON object per converted file.
type Reporter struct {
	logger zerolog.Logger
	clock  quartz.Clock
}

// NewReporter creates a reporter writing JSON lines to w.
func NewReporter(w io.Writer, clock quartz.Clock) *Reporter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	return &Reporter{
		logger: zerolog.New(zerolog.SyncWriter(w)),
		clock:  clock,
	}
}

// Record writes the outcome of one file.
func (r *Reporter) Record(res Result) {
	ev := r.logger.Log().
		Time("at", r.clock.Now().UTC()).
		Str("path", res.Path).
		Int("hands", res.Hands).
		Int("hero_hands", res.HeroHands).
		Dur("duration", res.Duration)
	if res.Output != "" {
		ev = ev.Str("output", res.Output)
	}
	if res.Err != nil {
		ev = ev.Str("status", "failed").Err(res.Err)
	} else {
		ev = ev.Str("status", "converted")
	}
	ev.Send()
}
