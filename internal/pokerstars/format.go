// Package pokerstars renders parsed hands as PokerStars hand histories.
package pokerstars

import (
	"fmt"
	rand "math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lox/pnconvert/internal/deck"
	"github.com/lox/pnconvert/internal/money"
	"github.com/lox/pnconvert/internal/pokernow"
	"github.com/lox/pnconvert/internal/randutil"
)

// TableName is the table every converted hand claims to be played at.
const TableName = "PNLogConverter"

// hands are separated by this many blank lines
const handGap = 3

// FormatGame renders every hand of g.
func FormatGame(g *pokernow.Game) ([]string, error) {
	var lines []string
	for _, h := range g.Hands {
		out, err := FormatHand(g, h)
		if err != nil {
			return nil, fmt.Errorf("hand #%d: %w", h.Number, err)
		}
		lines = append(lines, out...)
		for range handGap {
			lines = append(lines, "")
		}
	}
	return lines, nil
}

// HandID derives the numeric hand id. With a source path the id depends only
// on the file stem and hand number, so reconverting a file is reproducible.
func HandID(sourcePath string, number int) uint64 {
	if sourcePath == "" {
		return rand.Uint64()
	}
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return randutil.ForKey(stem + "-" + strconv.Itoa(number)).Uint64()
}

// ButtonSeat returns the seat number of the button. Without a recorded
// dealer the button is inferred from the blinds.
func ButtonSeat(h *pokernow.Hand) int {
	if h.DealerKey != "" {
		if s := h.Seat(h.DealerKey); s != nil {
			return s.Number
		}
	}
	if h.BombPotButton > 0 {
		return h.BombPotButton
	}

	firstLive := 0
	for _, s := range h.Seats {
		if s.Stack > 0 {
			firstLive = s.Number
			break
		}
	}
	if firstLive == 0 {
		return 1
	}

	if h.SmallBlind != nil && !h.Legacy {
		if s := h.Seat(h.SmallBlind.PlayerKey); s != nil {
			return wrapSeat(s.Number-2) + 1
		}
	}
	if len(h.BigBlinds) > 0 {
		if s := h.Seat(h.BigBlinds[0].PlayerKey); s != nil {
			return wrapSeat(s.Number-3) + 1
		}
	}
	return firstLive
}

func wrapSeat(n int) int {
	return ((n % 10) + 10) % 10
}

type handFormatter struct {
	game  *pokernow.Game
	hand  *pokernow.Hand
	lines []string
}

func (f *handFormatter) add(format string, args ...any) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
}

func (f *handFormatter) amount(v float64) string {
	return money.Format(f.game.Symbol, v)
}

func (f *handFormatter) name(key string) string {
	if p := f.hand.Player(key); p != nil {
		return p.DisplayName()
	}
	return key
}

// FormatHand renders one hand. It finalizes the hand first.
func FormatHand(g *pokernow.Game, h *pokernow.Hand) ([]string, error) {
	h.Finalize()
	f := &handFormatter{game: g, hand: h}

	f.add("PokerStars Hand #%d: %s (%s/%s %s) - %s %s",
		HandID(g.SourcePath, h.Number), h.Variant,
		f.amount(h.SmallBlindAmount()), f.amount(h.BigBlindAmount()), g.Currency,
		h.Start.Format("2006/01/02 15:04:05"), g.Timezone)
	f.add("Table '%s' 10-max Seat #%d is the button", TableName, ButtonSeat(h))

	for _, s := range h.Seats {
		f.add("Seat %d: %s (%s in chips)", s.Number, s.Player.DisplayName(), f.amount(s.Stack))
	}

	for _, a := range h.Antes {
		f.add("%s: posts the ante %s", f.name(a.PlayerKey), f.amount(a.Amount))
	}
	if h.SmallBlind != nil {
		f.add("%s: posts small blind %s", f.name(h.SmallBlind.PlayerKey), f.amount(h.SmallBlind.Amount))
	}
	for _, bb := range h.BigBlinds {
		f.add("%s: posts big blind %s", f.name(bb.PlayerKey), f.amount(bb.Amount))
	}
	if h.Straddle != nil {
		f.add("%s: straddle %s", f.name(h.Straddle.PlayerKey), f.amount(h.Straddle.Amount))
	}
	for _, m := range h.MissingSmallBlinds {
		f.add("%s: posts small blind %s", f.name(m.PlayerKey), f.amount(m.Amount))
	}

	f.add("*** HOLE CARDS ***")
	if hero := h.Hero(); hero != nil && len(h.HoleCards) > 0 {
		f.add("Dealt to %s %s", hero.DisplayName(), deck.Bracket(h.HoleCards))
	}
	if err := f.actions(pokernow.StreetPreflop); err != nil {
		return nil, err
	}

	if err := f.streets(); err != nil {
		return nil, err
	}

	if h.RunItTwice {
		f.add("*** FIRST SHOW DOWN ***")
	} else {
		f.add("*** SHOW DOWN ***")
	}
	if err := f.actions(pokernow.StreetShowdown); err != nil {
		return nil, err
	}
	if h.RunItTwice {
		f.add("*** SECOND SHOW DOWN ***")
		if err := f.actions(pokernow.StreetSecondShowdown); err != nil {
			return nil, err
		}
	}

	f.summary()
	return f.lines, nil
}

func (f *handFormatter) streets() error {
	h := f.hand
	flop := deck.Join(h.FlopCards)
	turn := deck.Join(h.TurnCards)

	if len(h.FlopCards) > 0 {
		f.add("*** %s *** [%s]", runLabel("FLOP", len(h.SecondFlopCards) > 0), flop)
		if err := f.actions(pokernow.StreetFlop); err != nil {
			return err
		}
	}
	if len(h.TurnCards) > 0 {
		f.add("*** %s *** [%s] [%s]", runLabel("TURN", len(h.SecondTurnCards) > 0), flop, turn)
		if err := f.actions(pokernow.StreetTurn); err != nil {
			return err
		}
	}
	if len(h.RiverCards) > 0 {
		f.add("*** %s *** [%s %s] [%s]", runLabel("RIVER", len(h.SecondRiverCards) > 0),
			flop, turn, deck.Join(h.RiverCards))
		if err := f.actions(pokernow.StreetRiver); err != nil {
			return err
		}
	}

	secondFlop, secondTurn := flop, turn
	if len(h.SecondFlopCards) > 0 {
		secondFlop = deck.Join(h.SecondFlopCards)
		f.add("*** SECOND FLOP *** [%s]", secondFlop)
	}
	if len(h.SecondTurnCards) > 0 {
		secondTurn = deck.Join(h.SecondTurnCards)
		f.add("*** SECOND TURN *** [%s] [%s]", secondFlop, secondTurn)
	}
	if len(h.SecondRiverCards) > 0 {
		f.add("*** SECOND RIVER *** [%s %s] [%s]", secondFlop, secondTurn, deck.Join(h.SecondRiverCards))
	}
	return nil
}

func runLabel(street string, twice bool) string {
	if twice {
		return "FIRST " + street
	}
	return street
}

func (f *handFormatter) actions(s pokernow.Street) error {
	for _, a := range f.hand.Actions[s] {
		line, err := FormatAction(a, f.game.Symbol)
		if err != nil {
			return err
		}
		f.lines = append(f.lines, line)
	}
	return nil
}

// FormatAction renders one action line.
func FormatAction(a pokernow.Action, symbol string) (string, error) {
	name := a.Player.DisplayName()
	amount := money.Format(symbol, a.Amount)
	switch a.Kind {
	case pokernow.ActionBet:
		return name + ": bets " + amount, nil
	case pokernow.ActionCheck:
		return name + ": checks", nil
	case pokernow.ActionFold:
		return name + ": folds", nil
	case pokernow.ActionCall:
		return name + ": calls " + amount, nil
	case pokernow.ActionRaise:
		return name + ": raises " + money.Format(symbol, a.Increment) + " to " + amount, nil
	case pokernow.ActionUncalledBet:
		return "Uncalled bet (" + amount + ") returned to " + name, nil
	case pokernow.ActionShow:
		return name + ": shows " + deck.Bracket(a.Cards), nil
	case pokernow.ActionCollect:
		return name + " collected " + amount + " from pot", nil
	default:
		return "", &pokernow.ParseError{
			Text: fmt.Sprintf("%s action %d", name, a.Kind),
			Err:  pokernow.ErrInvalidAction,
		}
	}
}

func (f *handFormatter) summary() {
	h := f.hand
	f.add("*** SUMMARY ***")
	f.add("Total pot: %s | Rake 0", f.amount(h.TotalPot))

	if h.RunItTwice {
		f.add("Hand was run twice")
		if len(h.Board) > 0 {
			f.add("FIRST Board: %s", deck.Bracket(h.Board))
		}
		if len(h.SecondBoard) > 0 {
			f.add("SECOND Board: %s", deck.Bracket(h.SecondBoard))
		}
	} else if len(h.Board) > 0 {
		f.add("Board: %s", deck.Bracket(h.Board))
	}

	for _, s := range h.Seats {
		line := fmt.Sprintf("Seat %d: %s%s %s%s",
			s.Number, s.Player.DisplayName(), s.Role, s.Summary, s.SecondRunSummary)
		if !strings.Contains(s.Summary, "showed") && len(s.HoleCards) > 0 {
			line += " " + deck.Bracket(s.HoleCards)
		}
		f.lines = append(f.lines, line)
	}
}
