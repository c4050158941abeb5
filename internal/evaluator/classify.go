package evaluator

import (
	"fmt"
	"slices"

	"github.com/lox/pnconvert/internal/deck"
)

// base is larger than any rank value so weighted ranks never overlap.
const base = 31

// value maps a rank onto 1 (deuce) .. 13 (ace).
func value(r deck.Rank) int {
	return int(r) - int(deck.Two) + 1
}

// kickerScore weights kickers by rank, the lowest card least significant.
// cards must be sorted ascending.
func kickerScore(cards []deck.Card) int {
	score := 0
	weight := 1
	for _, c := range cards {
		score += value(c.Rank) * weight
		weight *= base
	}
	return score
}

// group is a run of same-rank cards within a five card hand.
type group struct {
	rank  deck.Rank
	count int
}

// classify evaluates exactly five cards sorted ascending.
func classify(hand []deck.Card) Result {
	cards := slices.Clone(hand)
	res := Result{Cards: cards}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	low, high, straight := straightBounds(cards)

	switch {
	case straight && flush && high == deck.Ace:
		res.Category = RoyalFlush
		res.Description = "a royal flush"
		return res
	case straight && flush:
		res.Category = StraightFlush
		res.Score = value(high)
		res.Description = fmt.Sprintf("a straight flush, %s to %s", low.Name(), high.Name())
		return res
	}

	groups := rankGroups(cards)
	// groups sorted by count desc, then rank desc
	top := groups[0]

	switch {
	case top.count == 4:
		res.Category = FourOfAKind
		res.Score = kickerScore(without(cards, top.rank)) + value(top.rank)*base
		res.Description = fmt.Sprintf("four of a kind, %s", top.rank.Plural())
	case top.count == 3 && groups[1].count == 2:
		pair := groups[1]
		res.Category = FullHouse
		res.Score = value(pair.rank) + value(top.rank)*base
		res.Description = fmt.Sprintf("a full house, %s full of %s", top.rank.Plural(), pair.rank.Plural())
	case flush:
		res.Category = Flush
		res.Score = value(cards[4].Rank)
		res.Description = fmt.Sprintf("a flush, %s high", cards[4].Rank.Name())
	case straight:
		res.Category = Straight
		res.Score = value(high)
		res.Description = fmt.Sprintf("a straight, %s to %s", low.Name(), high.Name())
	case top.count == 3:
		res.Category = ThreeOfAKind
		res.Score = kickerScore(without(cards, top.rank)) + value(top.rank)*base*base
		res.Description = fmt.Sprintf("three of a kind, %s", top.rank.Plural())
	case top.count == 2 && groups[1].count == 2:
		hi, lo := top.rank, groups[1].rank
		rest := without(without(cards, hi), lo)
		res.Category = TwoPair
		res.Score = kickerScore(rest) + value(lo)*base + value(hi)*base*base
		res.Description = fmt.Sprintf("two pair, %s and %s", hi.Plural(), lo.Plural())
	case top.count == 2:
		res.Category = Pair
		res.Score = kickerScore(without(cards, top.rank)) + value(top.rank)*base*base*base
		res.Description = fmt.Sprintf("a pair of %s", top.rank.Plural())
	default:
		res.Category = HighCard
		res.Score = value(cards[4].Rank)
		res.Description = fmt.Sprintf("high card %s", cards[4].Rank.Name())
	}
	return res
}

// straightBounds reports whether five ascending cards form a straight and
// its lowest and highest ranks. The wheel runs from Ace to Five.
func straightBounds(cards []deck.Card) (low, high deck.Rank, ok bool) {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank == cards[i-1].Rank {
			return 0, 0, false
		}
	}
	if cards[4].Rank-cards[0].Rank == 4 {
		return cards[0].Rank, cards[4].Rank, true
	}
	if cards[4].Rank == deck.Ace && cards[3].Rank == deck.Five && cards[0].Rank == deck.Two {
		return deck.Ace, deck.Five, true
	}
	return 0, 0, false
}

func rankGroups(cards []deck.Card) []group {
	var groups []group
	for _, c := range cards {
		if n := len(groups); n > 0 && groups[n-1].rank == c.Rank {
			groups[n-1].count++
			continue
		}
		groups = append(groups, group{rank: c.Rank, count: 1})
	}
	slices.SortFunc(groups, func(a, b group) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(b.rank) - int(a.rank)
	})
	return groups
}

// without returns cards minus every card of the given rank, order kept.
func without(cards []deck.Card, r deck.Rank) []deck.Card {
	out := make([]deck.Card, 0, len(cards))
	for _, c := range cards {
		if c.Rank != r {
			out = append(out, c)
		}
	}
	return out
}
