// Package pokernow reconstructs hands from PokerNow game logs.
//
// Rows are classified into line events (see Classify) and applied in order
// to a per-hand builder. The resulting Game holds fully populated Hands ready
// to be rendered in another hand history format.
package pokernow

import (
	"slices"
	"strings"
	"time"

	"github.com/lox/pnconvert/internal/deck"
)

// Street is the betting round a hand is in while being parsed.
type Street int

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
	StreetSecondShowdown

	numStreets
)

// String renders the street as it appears in fold summaries.
func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "before Flop"
	case StreetFlop:
		return "on the Flop"
	case StreetTurn:
		return "on the Turn"
	case StreetRiver:
		return "on the River"
	case StreetShowdown:
		return "at Showdown"
	case StreetSecondShowdown:
		return "at second Showdown"
	default:
		return "unknown"
	}
}

// ActionKind is the type of a logged player decision.
type ActionKind int

const (
	ActionBet ActionKind = iota + 1
	ActionCheck
	ActionFold
	ActionCall
	ActionRaise
	ActionUncalledBet
	ActionShow
	ActionCollect
)

func (k ActionKind) String() string {
	switch k {
	case ActionBet:
		return "bet"
	case ActionCheck:
		return "check"
	case ActionFold:
		return "fold"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	case ActionUncalledBet:
		return "uncalled bet"
	case ActionShow:
		return "show"
	case ActionCollect:
		return "collect"
	default:
		return "unknown"
	}
}

// Player is a participant identified by name and platform id.
type Player struct {
	Name string
	ID   string
	// Alias replaces Name in output when set.
	Alias string
}

// Key returns the composite "name @ id" identity of the player.
func (p *Player) Key() string {
	return p.Name + " @ " + p.ID
}

// DisplayName returns the alias if one is set, otherwise the raw name.
func (p *Player) DisplayName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// SplitKey splits a composite key at its last " @ ".
func SplitKey(key string) (name, id string, ok bool) {
	i := strings.LastIndex(key, " @ ")
	if i < 0 {
		return key, "", false
	}
	return key[:i], key[i+3:], true
}

// DefaultSummary is the outcome of a seat nothing else was recorded for.
const DefaultSummary = "didn't show and lost"

// Seat is one occupied position for one hand.
type Seat struct {
	Number int
	Player *Player
	Stack  float64
	// Role is appended to the player name in the summary, e.g. " (big blind)".
	Role             string
	Summary          string
	SecondRunSummary string
	HoleCards        []deck.Card
	DidBet           bool

	Collected          float64
	CollectedSecondRun float64
}

// Action is one player decision on one street.
type Action struct {
	Player *Player
	Kind   ActionKind
	Amount float64
	// Increment is the raise size over the street's previous maximum.
	Increment float64
	Cards     []deck.Card
}

// Posting is a forced bet.
type Posting struct {
	PlayerKey string
	Amount    float64
}

// Hand is one dealt hand, owned by a Game.
type Hand struct {
	Number  int
	Start   time.Time
	Variant string
	// Legacy is set for hands using the old "Players stacks" schema.
	Legacy bool

	Seats   []*Seat
	Players []*Player

	HeroKey   string
	HoleCards []deck.Card

	FlopCards  []deck.Card
	TurnCards  []deck.Card
	RiverCards []deck.Card
	Board      []deck.Card

	TotalPot float64

	RunItTwice       bool
	RunItTwiceFrom   Street
	SecondFlopCards  []deck.Card
	SecondTurnCards  []deck.Card
	SecondRiverCards []deck.Card
	SecondBoard      []deck.Card

	// Actions is indexed by Street.
	Actions [numStreets][]Action

	DealerKey string
	// BombPotButton is the button seat derived from a bomb pot, 0 if none.
	BombPotButton      int
	SmallBlind         *Posting
	BigBlinds          []Posting
	Straddle           *Posting
	Antes              []Posting
	MissingSmallBlinds []Posting

	// Lines are the raw log lines attributed to this hand.
	Lines []string
}

// Player looks up a player by composite key.
func (h *Hand) Player(key string) *Player {
	for _, p := range h.Players {
		if p.Key() == key {
			return p
		}
	}
	return nil
}

// Seat looks up the seat owned by the player with the given key.
func (h *Hand) Seat(key string) *Seat {
	for _, s := range h.Seats {
		if s.Player.Key() == key {
			return s
		}
	}
	return nil
}

// SeatNumber looks up a seat by its table position.
func (h *Hand) SeatNumber(n int) *Seat {
	for _, s := range h.Seats {
		if s.Number == n {
			return s
		}
	}
	return nil
}

// Hero returns the hero player, or nil when no hero was identified.
func (h *Hand) Hero() *Player {
	if h.HeroKey == "" {
		return nil
	}
	return h.Player(h.HeroKey)
}

// SmallBlindAmount is the small blind posted this hand, 0 if none.
func (h *Hand) SmallBlindAmount() float64 {
	if h.SmallBlind == nil {
		return 0
	}
	return h.SmallBlind.Amount
}

// BigBlindAmount is the last big blind posted this hand, 0 if none.
func (h *Hand) BigBlindAmount() float64 {
	if len(h.BigBlinds) == 0 {
		return 0
	}
	return h.BigBlinds[len(h.BigBlinds)-1].Amount
}

// HasPlayer reports whether a player with the given key was dealt in.
func (h *Hand) HasPlayer(key string) bool {
	return h.Player(key) != nil
}

// DeadSmallBlindTotal sums missing and penalty small blinds. PokerNow counts
// them in the collected amounts, so they are part of TotalPot.
func (h *Hand) DeadSmallBlindTotal() float64 {
	var total float64
	for _, p := range h.MissingSmallBlinds {
		total += p.Amount
	}
	return total
}

// setHero marks the first player matching alias, composite key or raw name.
func (h *Hand) setHero(name string) bool {
	match := func(f func(*Player) bool) *Player {
		i := slices.IndexFunc(h.Players, f)
		if i < 0 {
			return nil
		}
		return h.Players[i]
	}
	p := match(func(p *Player) bool { return p.Alias != "" && p.Alias == name })
	if p == nil {
		p = match(func(p *Player) bool { return p.Key() == name })
	}
	if p == nil {
		p = match(func(p *Player) bool { return p.Name == name })
	}
	if p == nil {
		h.HeroKey = ""
		return false
	}
	h.HeroKey = p.Key()
	return true
}
