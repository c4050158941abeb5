package pokernow

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/pnconvert/internal/deck"
	"github.com/lox/pnconvert/internal/evaluator"
	"github.com/lox/pnconvert/internal/money"
)

// handBuilder is the scratch state for the hand currently being parsed. A
// fresh builder is created for every hand start marker.
type handBuilder struct {
	hand   *Hand
	symbol string

	street Street
	// maxBet is the largest total commitment on the current street.
	maxBet float64
	// committed is each player's total commitment on the current street.
	committed map[string]float64
	bombPot   bool
}

func newHandBuilder(ev HandStart, start time.Time, symbol string) *handBuilder {
	return &handBuilder{
		hand: &Hand{
			Number:    ev.Number,
			Start:     start,
			Variant:   ev.Variant,
			DealerKey: ev.DealerKey,
		},
		symbol:    symbol,
		street:    StreetPreflop,
		committed: make(map[string]float64),
	}
}

func (b *handBuilder) resetStreet(s Street) {
	b.street = s
	b.maxBet = 0
	b.committed = make(map[string]float64)
}

func (b *handBuilder) record(a Action) {
	b.hand.Actions[b.street] = append(b.hand.Actions[b.street], a)
}

func (b *handBuilder) seat(key string) (*Seat, error) {
	s := b.hand.Seat(key)
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, key)
	}
	return s, nil
}

// apply mutates the hand for every event except HandStart, which the parser
// handles by replacing the builder.
func (b *handBuilder) apply(ev Event) error {
	switch ev := ev.(type) {
	case StackList:
		return b.applyStacks(ev)
	case DealtCards:
		b.hand.HoleCards = ev.Cards
	case ForcedBet:
		return b.applyForced(ev)
	case PlayerAction:
		return b.applyAction(ev)
	case UncalledBet:
		s, err := b.seat(ev.Key)
		if err != nil {
			return err
		}
		b.maxBet -= ev.Amount
		s.DidBet = true
		b.record(Action{Player: s.Player, Kind: ActionUncalledBet, Amount: ev.Amount})
	case BoardCards:
		b.applyBoard(ev)
	case ShowCards:
		s, err := b.seat(ev.Key)
		if err != nil {
			return err
		}
		s.HoleCards = ev.Cards
		b.record(Action{Player: s.Player, Kind: ActionShow, Cards: ev.Cards})
	case Collect:
		return b.applyCollect(ev)
	case RunItTwice:
		b.hand.RunItTwice = true
		b.hand.RunItTwiceFrom = b.street
		b.hand.SecondBoard = slices.Clone(b.hand.Board)
	}
	return nil
}

func (b *handBuilder) applyStacks(ev StackList) error {
	h := b.hand
	h.Legacy = ev.Legacy
	for _, e := range ev.Entries {
		name, id, _ := SplitKey(e.Key)
		p := h.Player(e.Key)
		if p == nil {
			p = &Player{Name: name, ID: id}
			h.Players = append(h.Players, p)
		}
		h.Seats = append(h.Seats, &Seat{
			Number:  e.Seat,
			Player:  p,
			Stack:   e.Stack,
			Summary: DefaultSummary,
		})
	}
	return nil
}

func (b *handBuilder) applyForced(ev ForcedBet) error {
	h := b.hand
	s, err := b.seat(ev.Key)
	if err != nil {
		return err
	}
	posting := Posting{PlayerKey: ev.Key, Amount: ev.Amount}

	if ev.Kind == ForcedAnte {
		h.Antes = append(h.Antes, posting)
		return nil
	}

	s.DidBet = true
	b.maxBet = max(b.maxBet, ev.Amount)

	switch ev.Kind {
	case ForcedSmallBlind:
		s.Role = " (small blind)"
		b.committed[ev.Key] = ev.Amount
		h.SmallBlind = &posting
	case ForcedMissingSmallBlind:
		// dead money, not part of the player's street commitment
		s.Role = " (small blind)"
		h.MissingSmallBlinds = append(h.MissingSmallBlinds, posting)
	case ForcedBigBlind:
		s.Role = " (big blind)"
		b.committed[ev.Key] = ev.Amount
		h.BigBlinds = append(h.BigBlinds, posting)
	case ForcedStraddle:
		b.committed[ev.Key] = ev.Amount
		h.Straddle = &posting
	case ForcedBombPot:
		b.committed[ev.Key] = ev.Amount
		h.Antes = append(h.Antes, posting)
		if !b.bombPot {
			b.bombPot = true
			b.assignBombPotPositions(s.Number)
		}
	}
	return nil
}

// assignBombPotPositions treats the first bomb pot poster as under the gun
// and walks backwards over seats with chips to find the blinds and button.
func (b *handBuilder) assignBombPotPositions(utg int) {
	h := b.hand
	var live []int
	for _, s := range h.Seats {
		if s.Stack > 0 {
			live = append(live, s.Number)
		}
	}
	if len(live) == 0 {
		h.BombPotButton = 1
		return
	}
	slices.Sort(live)

	prev := func(n int) int {
		for i := len(live) - 1; i >= 0; i-- {
			if live[i] < n {
				return live[i]
			}
		}
		return live[len(live)-1]
	}

	bb := prev(utg)
	sb := prev(bb)
	h.BombPotButton = prev(sb)
	h.SeatNumber(sb).Role = " (small blind)"
	h.SeatNumber(bb).Role = " (big blind)"
}

func (b *handBuilder) applyAction(ev PlayerAction) error {
	s, err := b.seat(ev.Key)
	if err != nil {
		return err
	}
	a := Action{Player: s.Player, Kind: ev.Kind}

	switch ev.Kind {
	case ActionRaise:
		a.Amount = ev.Amount
		a.Increment = ev.Amount - b.maxBet
		b.maxBet = ev.Amount
		b.committed[ev.Key] = ev.Amount
	case ActionBet:
		a.Amount = ev.Amount
		b.maxBet = ev.Amount
		b.committed[ev.Key] = ev.Amount
	case ActionCall:
		a.Amount = ev.Amount - b.committed[ev.Key]
		b.committed[ev.Key] = ev.Amount
	case ActionFold:
		s.Summary = "folded " + b.street.String()
		if !s.DidBet {
			s.Summary += " (didn't bet)"
		}
		b.record(a)
		return nil
	}

	s.DidBet = true
	b.record(a)
	return nil
}

func (b *handBuilder) applyBoard(ev BoardCards) {
	h := b.hand
	if ev.SecondRun {
		switch ev.Street {
		case StreetFlop:
			h.SecondFlopCards = ev.Cards
		case StreetTurn:
			h.SecondTurnCards = ev.Cards
		case StreetRiver:
			h.SecondRiverCards = ev.Cards
		}
		h.SecondBoard = append(h.SecondBoard, ev.Cards...)
	} else {
		switch ev.Street {
		case StreetFlop:
			h.FlopCards = ev.Cards
		case StreetTurn:
			h.TurnCards = ev.Cards
		case StreetRiver:
			h.RiverCards = ev.Cards
		}
		h.Board = append(h.Board, ev.Cards...)
	}
	b.resetStreet(ev.Street)
}

func (b *handBuilder) applyCollect(ev Collect) error {
	h := b.hand
	s, err := b.seat(ev.Key)
	if err != nil {
		return err
	}

	b.street = StreetShowdown
	if ev.SecondRun {
		b.street = StreetSecondShowdown
		s.CollectedSecondRun += ev.Amount
	} else {
		s.Collected += ev.Amount
	}
	h.TotalPot += ev.Amount
	b.record(Action{Player: s.Player, Kind: ActionCollect, Amount: ev.Amount})

	if len(ev.HoleCards) > 0 {
		s.HoleCards = ev.HoleCards
	}

	if !ev.Detailed || len(s.HoleCards) == 0 {
		if ev.SecondRun {
			s.SecondRunSummary = fmt.Sprintf(", and collected (%s)", money.Format(b.symbol, s.CollectedSecondRun))
			return nil
		}
		s.Summary = fmt.Sprintf("collected (%s)", money.Format(b.symbol, s.Collected))
		return nil
	}

	board := h.Board
	if ev.SecondRun {
		board = h.SecondBoard
	}
	desc := describe(s.HoleCards, board, ev.Description)

	if ev.SecondRun {
		s.SecondRunSummary = fmt.Sprintf(", and won (%s)%s",
			money.Format(b.symbol, s.CollectedSecondRun), withHand(desc))
		return nil
	}
	s.Summary = fmt.Sprintf("showed %s and won (%s)%s",
		deck.Bracket(s.HoleCards), money.Format(b.symbol, s.Collected), withHand(desc))
	return nil
}

// describe names the best hand from hole and board cards, falling back to
// the given description when there are too few cards to evaluate.
func describe(hole, board []deck.Card, fallback string) string {
	cards := append(slices.Clone(hole), board...)
	res, err := evaluator.Evaluate(cards)
	if err != nil {
		return fallback
	}
	return res.Description
}

func withHand(desc string) string {
	if desc == "" {
		return ""
	}
	return " with " + desc
}
