package pokernow

import (
	"cmp"
	"slices"
)

// Game is every hand parsed from one log plus display settings.
type Game struct {
	Hands      []*Hand
	Currency   string
	Symbol     string
	Timezone   string
	SourcePath string
}

// SetHero marks the hero in every hand. name may be an alias, a composite
// key or a raw name. It returns the number of hands the hero was found in.
func (g *Game) SetHero(name string) int {
	found := 0
	for _, h := range g.Hands {
		if h.setHero(name) {
			found++
		}
	}
	return found
}

// UpdatePlayerAliases sets the display alias of the player with the given
// composite key in every hand, returning the number of hands touched.
func (g *Game) UpdatePlayerAliases(key, alias string) int {
	found := 0
	for _, h := range g.Hands {
		if p := h.Player(key); p != nil {
			p.Alias = alias
			found++
		}
	}
	return found
}

// FindHandWithPlayer returns the first hand the player was dealt into.
func (g *Game) FindHandWithPlayer(key string) *Hand {
	for _, h := range g.Hands {
		if h.HasPlayer(key) {
			return h
		}
	}
	return nil
}

// SeenPlayers returns one Player per distinct composite key, ordered by id
// then key. It is derived from the hands on every call.
func (g *Game) SeenPlayers() []*Player {
	seen := make(map[string]*Player)
	for _, h := range g.Hands {
		for _, p := range h.Players {
			if _, ok := seen[p.Key()]; !ok {
				seen[p.Key()] = p
			}
		}
	}
	players := make([]*Player, 0, len(seen))
	for _, p := range seen {
		players = append(players, p)
	}
	slices.SortFunc(players, func(a, b *Player) int {
		return cmp.Or(cmp.Compare(a.ID, b.ID), cmp.Compare(a.Key(), b.Key()))
	})
	return players
}
