// Package deck models playing cards in the two notations used by hand
// history logs: plain ("Th", "As") and decorated ("10♥", "A♠").
package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The declaration order is the canonical
// suit priority used when sorting cards of equal rank.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitLetters = [...]string{"s", "h", "d", "c"}
var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}

// String returns the plain single letter for the suit.
func (s Suit) String() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitLetters[s]
}

// Symbol returns the decorated suit glyph.
func (s Suit) Symbol() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitSymbols[s]
}

// Rank represents a card rank, deuce low and ace high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the plain single character for the rank.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// Decorated returns the rank as the decorated notation spells it, which
// differs from the plain form only for tens.
func (r Rank) Decorated() string {
	if r == Ten {
		return "10"
	}
	return r.String()
}

// Name returns the English name of the rank ("Ace", "Deuce").
func (r Rank) Name() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankNames[r-Two]
}

// Plural returns the plural English name of the rank ("Aces", "Sixes").
func (r Rank) Plural() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankPlurals[r-Two]
}

var rankNames = [...]string{
	"Deuce", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

var rankPlurals = [...]string{
	"Deuces", "Threes", "Fours", "Fives", "Sixes", "Sevens", "Eights",
	"Nines", "Tens", "Jacks", "Queens", "Kings", "Aces",
}

// Card is an immutable playing card. The zero value is not a valid card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the plain notation (e.g. "Th").
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Decorated returns the decorated notation (e.g. "10♥").
func (c Card) Decorated() string {
	return c.Rank.Decorated() + c.Suit.Symbol()
}

// Compare orders cards by rank, then by suit priority. It returns a
// negative number when c sorts before o, zero when equal and a positive
// number otherwise.
func (c Card) Compare(o Card) int {
	if c.Rank != o.Rank {
		return int(c.Rank) - int(o.Rank)
	}
	return int(c.Suit) - int(o.Suit)
}

// Less reports whether c sorts before o.
func (c Card) Less(o Card) bool {
	return c.Compare(o) < 0
}

// InvalidCardError is returned when a token matches neither notation.
type InvalidCardError struct {
	Text string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card %q", e.Text)
}

// lookup holds every accepted encoding: rank-first plain ("Th"), suit-first
// plain ("hT") and decorated ("10♥"). Read-only after init.
var lookup = make(map[string]Card, 156)

func init() {
	for _, c := range Full() {
		lookup[c.String()] = c
		lookup[c.Suit.String()+c.Rank.String()] = c
		lookup[c.Decorated()] = c
	}
}

// ParseCard parses a single card in any accepted notation.
func ParseCard(text string) (Card, error) {
	c, ok := lookup[text]
	if !ok {
		return Card{}, &InvalidCardError{Text: text}
	}
	return c, nil
}

// ParseCardList parses a separated list of cards such as "A♠, 10♥" or
// "Ah Kd". Surrounding whitespace and empty tokens are ignored.
func ParseCardList(text string) ([]Card, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Join renders cards in plain notation separated by single spaces.
func Join(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Bracket renders cards as "[Ah Kd]".
func Bracket(cards []Card) string {
	return "[" + Join(cards) + "]"
}
