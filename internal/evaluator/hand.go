// Package evaluator picks the best five card poker hand out of five to
// seven cards and describes it the way hand histories caption showdowns.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/pnconvert/internal/deck"
)

// Category is the class of a five card hand, weakest first.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

var (
	// ErrCardCount is returned when fewer than five or more than seven cards
	// are supplied.
	ErrCardCount = errors.New("evaluator: need between 5 and 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("evaluator: duplicate card")
)

// Result is the best five card hand found.
type Result struct {
	Description string
	Category    Category
	// Score orders hands within the same category only.
	Score int
	Cards []deck.Card
}

// Beats reports whether r ranks above o.
func (r Result) Beats(o Result) bool {
	if r.Category != o.Category {
		return r.Category > o.Category
	}
	return r.Score > o.Score
}

// Evaluate returns the best hand that can be made from 5 to 7 cards. The
// input is not modified and its order does not matter.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Result{}, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}

	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, deck.Card.Compare)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Result{}, fmt.Errorf("%w: %s", ErrDuplicateCard, sorted[i])
		}
	}

	var best Result
	found := false
	combo := make([]deck.Card, 5)
	eachCombination(len(sorted), func(idx [5]int) {
		for i, j := range idx {
			combo[i] = sorted[j]
		}
		res := classify(combo)
		if !found || res.Beats(best) {
			best = res
			found = true
		}
	})
	return best, nil
}

// eachCombination calls fn with every ascending 5-index combination of n.
func eachCombination(n int, fn func([5]int)) {
	var idx [5]int
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						idx = [5]int{a, b, c, d, e}
						fn(idx)
					}
				}
			}
		}
	}
}
