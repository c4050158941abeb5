package alias

import (
	"slices"
	"strings"
	"time"

	"github.com/lox/pnconvert/internal/pokernow"
)

// Group is every composite key seen under one platform id. Players change
// names between sessions but keep their id, so one alias covers them all.
type Group struct {
	ID   string
	Keys []string
	// Names are the raw names behind Keys, in the same order.
	Names []string

	// Seen is the start time of the first hand the id was dealt into.
	Seen time.Time
	// With lists the display names of the other players in that hand.
	With []string
}

// Label is the names of the group joined for display.
func (g Group) Label() string {
	return strings.Join(g.Names, " / ")
}

// GroupByID groups the players seen in game by platform id, ordered by id.
func GroupByID(game *pokernow.Game) []Group {
	var groups []Group
	for _, p := range game.SeenPlayers() {
		if n := len(groups); n > 0 && groups[n-1].ID == p.ID {
			groups[n-1].Keys = append(groups[n-1].Keys, p.Key())
			groups[n-1].Names = append(groups[n-1].Names, p.Name)
			continue
		}
		g := Group{ID: p.ID, Keys: []string{p.Key()}, Names: []string{p.Name}}
		if h := game.FindHandWithPlayer(p.Key()); h != nil {
			g.Seen = h.Start
			for _, other := range h.Players {
				if other.ID != p.ID {
					g.With = append(g.With, other.DisplayName())
				}
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Expand copies each alias onto every other key sharing its platform id,
// unless that key has an alias of its own.
func Expand(game *pokernow.Game, aliases map[string]string) map[string]string {
	out := make(map[string]string, len(aliases))
	for _, g := range GroupByID(game) {
		var shared string
		for _, k := range g.Keys {
			if a, ok := aliases[k]; ok {
				shared = a
				break
			}
		}
		if shared == "" {
			continue
		}
		for _, k := range g.Keys {
			if a, ok := aliases[k]; ok {
				out[k] = a
			} else {
				out[k] = shared
			}
		}
	}
	// keep aliases for players absent from this game
	for k, a := range aliases {
		if _, ok := out[k]; !ok {
			out[k] = a
		}
	}
	return out
}

// Apply sets the aliases on game, expanded by platform id, and returns the
// sorted keys that matched at least one hand.
func Apply(game *pokernow.Game, aliases map[string]string) []string {
	var applied []string
	for k, a := range Expand(game, aliases) {
		if game.UpdatePlayerAliases(k, a) > 0 {
			applied = append(applied, k)
		}
	}
	slices.Sort(applied)
	return applied
}
