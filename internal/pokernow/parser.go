package pokernow

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pnconvert/internal/money"
)

// Options configure how a log is parsed and later displayed.
type Options struct {
	// Currency is a code known to the money package, USD when empty.
	Currency string
	// Timezone is the label appended to hand timestamps, ET when empty.
	Timezone string
	// SourcePath is the file the rows came from. It seeds hand ids.
	SourcePath string
	Logger     *log.Logger
}

type parser struct {
	game    *Game
	logger  *log.Logger
	current *handBuilder
	ended   bool
}

// Parse reconstructs every completed hand from rows in chronological order.
// Unrecognised lines are logged and skipped; malformed amounts, unknown
// players and invalid cards abort the parse with a *ParseError.
func Parse(rows []Row, opts Options) (*Game, error) {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Timezone == "" {
		opts.Timezone = "ET"
	}
	symbol, err := money.Symbol(opts.Currency)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := &parser{
		game: &Game{
			Currency:   opts.Currency,
			Symbol:     symbol,
			Timezone:   opts.Timezone,
			SourcePath: opts.SourcePath,
		},
		logger: logger,
	}
	for i, row := range Preprocess(rows) {
		if err := p.handle(row); err != nil {
			return nil, &ParseError{Row: i + 1, Text: row.Text, Err: err}
		}
	}
	if p.current != nil && !p.ended {
		logger.Warn("log ended mid hand, dropping it", "hand", p.current.hand.Number)
	}
	return p.game, nil
}

func (p *parser) handle(row Row) error {
	ev, err := Classify(row.Text)
	if err != nil {
		return err
	}

	switch ev := ev.(type) {
	case HandStart:
		if p.current != nil && !p.ended {
			p.logger.Warn("hand never ended, dropping it", "hand", p.current.hand.Number)
		}
		start, err := row.Time()
		if err != nil {
			return err
		}
		p.current = newHandBuilder(ev, start, p.game.Symbol)
		p.ended = false
	case Ignored:
		p.logger.Debug("ignoring line", "line", row.Text)
	case Unrecognized:
		p.logger.Warn("state not considered", "line", row.Text)
	default:
		if p.current == nil {
			p.logger.Warn("line outside of a hand", "line", row.Text)
			return nil
		}
		if end, ok := ev.(HandEnd); ok {
			p.endHand(end)
		} else if err := p.current.apply(ev); err != nil {
			return err
		}
	}

	if p.current != nil {
		p.current.hand.Lines = append(p.current.hand.Lines, row.Text)
	}
	return nil
}

// endHand files the hand with the game. The builder stays current so late
// reveals before the next start marker still land on this hand.
func (p *parser) endHand(ev HandEnd) {
	if p.ended {
		p.logger.Warn("duplicate hand end", "hand", ev.Number)
		return
	}
	h := p.current.hand
	p.game.Hands = append(p.game.Hands, h)
	p.ended = true
	p.logger.Debug("hand complete", "hand", h.Number, "pot", h.TotalPot, "dead_small_blinds", h.DeadSmallBlindTotal())

	switch {
	case h.DealerKey != "":
		if s := h.Seat(h.DealerKey); s != nil {
			s.Role += " (button)"
		} else {
			p.logger.Warn("dealer is not seated", "hand", h.Number, "dealer", h.DealerKey)
		}
	case h.BombPotButton > 0:
		if s := h.SeatNumber(h.BombPotButton); s != nil {
			s.Role += " (button)"
		}
	}
}
