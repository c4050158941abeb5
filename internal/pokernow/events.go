package pokernow

import "github.com/lox/pnconvert/internal/deck"

// Event is a classified log line. The set of implementations is closed.
type Event interface {
	event()
}

// HandStart opens a new hand.
type HandStart struct {
	Number    int
	Variant   string
	DealerKey string
}

// HandEnd closes the hand under construction.
type HandEnd struct {
	Number int
}

// StackEntry is one seat from a stack list line.
type StackEntry struct {
	Seat  int
	Key   string
	Stack float64
}

// StackList seats the players of a hand.
type StackList struct {
	Legacy  bool
	Entries []StackEntry
}

// DealtCards carries the hero's hole cards.
type DealtCards struct {
	Cards []deck.Card
}

// ForcedKind distinguishes the forced bets.
type ForcedKind int

const (
	ForcedSmallBlind ForcedKind = iota + 1
	ForcedMissingSmallBlind
	ForcedBigBlind
	ForcedStraddle
	ForcedAnte
	ForcedBombPot
)

// ForcedBet is a blind, straddle, ante or bomb pot contribution.
type ForcedBet struct {
	Kind   ForcedKind
	Key    string
	Amount float64
}

// PlayerAction is a bet, call, raise, check or fold.
type PlayerAction struct {
	Kind   ActionKind
	Key    string
	Amount float64
}

// UncalledBet is a refund of the part of a bet nobody matched.
type UncalledBet struct {
	Key    string
	Amount float64
}

// BoardCards reveals community cards.
type BoardCards struct {
	Street    Street
	SecondRun bool
	Cards     []deck.Card
}

// ShowCards is a voluntary or showdown reveal.
type ShowCards struct {
	Key   string
	Cards []deck.Card
}

// Collect is a pot award.
type Collect struct {
	Key       string
	Amount    float64
	SecondRun bool
	// Detailed is set when the line names the winning hand.
	Detailed    bool
	Description string
	// HoleCards are embedded in legacy lines only.
	HoleCards []deck.Card
}

// RunItTwice records that the remaining players agreed to two boards.
type RunItTwice struct{}

// Ignored is a line known to carry nothing relevant to hand histories.
type Ignored struct{}

// Unrecognized is any other line.
type Unrecognized struct{}

func (HandStart) event()    {}
func (HandEnd) event()      {}
func (StackList) event()    {}
func (DealtCards) event()   {}
func (ForcedBet) event()    {}
func (PlayerAction) event() {}
func (UncalledBet) event()  {}
func (BoardCards) event()   {}
func (ShowCards) event()    {}
func (Collect) event()      {}
func (RunItTwice) event()   {}
func (Ignored) event()      {}
func (Unrecognized) event() {}
