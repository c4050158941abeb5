package pokerstars

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pnconvert/internal/deck/decktest"
	"github.com/lox/pnconvert/internal/pokernow"
)

const samplePath = "../pokernow/testdata/sample_log.csv"

var handIDRe = regexp.MustCompile(`PokerStars Hand #\d+:`)

func loadGame(t *testing.T) *pokernow.Game {
	t.Helper()
	f, err := os.Open(samplePath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := pokernow.ReadRows(f)
	require.NoError(t, err)
	game, err := pokernow.Parse(rows, pokernow.Options{SourcePath: samplePath})
	require.NoError(t, err)

	game.UpdatePlayerAliases("CT @ eNVKMq2Tcb", "CT")
	require.Equal(t, 4, game.SetHero("CT"))
	return game
}

func TestFormatGameMatchesGolden(t *testing.T) {
	lines, err := FormatGame(loadGame(t))
	require.NoError(t, err)

	want, err := os.ReadFile("testdata/sample_log.golden.txt")
	require.NoError(t, err)

	got := handIDRe.ReplaceAllString(strings.Join(lines, "\n")+"\n", "PokerStars Hand #ID:")
	assert.Equal(t, string(want), got)
}

func TestFormatGameIsReproducible(t *testing.T) {
	first, err := FormatGame(loadGame(t))
	require.NoError(t, err)
	second, err := FormatGame(loadGame(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	game := loadGame(t)
	again, err := FormatGame(game)
	require.NoError(t, err)
	twice, err := FormatGame(game)
	require.NoError(t, err)
	assert.Equal(t, again, twice, "formatting must not mutate the game")
}

func TestHandID(t *testing.T) {
	a := HandID("/logs/poker_now_log_abc.csv", 3)
	assert.Equal(t, a, HandID("elsewhere/poker_now_log_abc.txt", 3), "only the stem matters")
	assert.NotEqual(t, a, HandID("/logs/poker_now_log_abc.csv", 4))
	assert.NotEqual(t, a, HandID("/logs/poker_now_log_abd.csv", 3))
}

func seat(n int, key string, stack float64) *pokernow.Seat {
	name, id, _ := pokernow.SplitKey(key)
	return &pokernow.Seat{Number: n, Player: &pokernow.Player{Name: name, ID: id}, Stack: stack}
}

func TestButtonSeat(t *testing.T) {
	seats := func() []*pokernow.Seat {
		return []*pokernow.Seat{
			seat(1, "a @ 1", 100),
			seat(3, "b @ 2", 100),
			seat(5, "c @ 3", 100),
		}
	}
	players := func(ss []*pokernow.Seat) []*pokernow.Player {
		var ps []*pokernow.Player
		for _, s := range ss {
			ps = append(ps, s.Player)
		}
		return ps
	}

	tests := []struct {
		name string
		edit func(h *pokernow.Hand)
		want int
	}{
		{
			name: "dealer",
			edit: func(h *pokernow.Hand) { h.DealerKey = "b @ 2" },
			want: 3,
		},
		{
			name: "bomb pot",
			edit: func(h *pokernow.Hand) { h.BombPotButton = 5 },
			want: 5,
		},
		{
			name: "dealer outranks bomb pot",
			edit: func(h *pokernow.Hand) {
				h.DealerKey = "b @ 2"
				h.BombPotButton = 5
			},
			want: 3,
		},
		{
			name: "no chips anywhere",
			edit: func(h *pokernow.Hand) {
				for _, s := range h.Seats {
					s.Stack = 0
				}
				h.SmallBlind = &pokernow.Posting{PlayerKey: "c @ 3", Amount: 1}
			},
			want: 1,
		},
		{
			name: "small blind",
			edit: func(h *pokernow.Hand) { h.SmallBlind = &pokernow.Posting{PlayerKey: "b @ 2", Amount: 1} },
			want: 2,
		},
		{
			name: "small blind in seat one wraps",
			edit: func(h *pokernow.Hand) { h.SmallBlind = &pokernow.Posting{PlayerKey: "a @ 1", Amount: 1} },
			want: 10,
		},
		{
			name: "legacy ignores small blind",
			edit: func(h *pokernow.Hand) {
				h.Legacy = true
				h.SmallBlind = &pokernow.Posting{PlayerKey: "b @ 2", Amount: 1}
				h.BigBlinds = []pokernow.Posting{{PlayerKey: "c @ 3", Amount: 2}}
			},
			want: 3,
		},
		{
			name: "first live seat",
			edit: func(h *pokernow.Hand) { h.Seats[0].Stack = 0 },
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := seats()
			h := &pokernow.Hand{Seats: ss, Players: players(ss)}
			tt.edit(h)
			assert.Equal(t, tt.want, ButtonSeat(h))
		})
	}
}

func TestFormatAction(t *testing.T) {
	p := &pokernow.Player{Name: "Alice", ID: "a1"}
	tests := []struct {
		action pokernow.Action
		want   string
	}{
		{pokernow.Action{Player: p, Kind: pokernow.ActionBet, Amount: 1500}, "Alice: bets $1,500.00"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionCheck}, "Alice: checks"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionFold}, "Alice: folds"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionCall, Amount: 0.5}, "Alice: calls $0.50"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionRaise, Amount: 60, Increment: 40}, "Alice: raises $40.00 to $60.00"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionUncalledBet, Amount: 20}, "Uncalled bet ($20.00) returned to Alice"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionShow, Cards: decktest.Cards("Th 9h")}, "Alice: shows [Th 9h]"},
		{pokernow.Action{Player: p, Kind: pokernow.ActionCollect, Amount: 12.25}, "Alice collected $12.25 from pot"},
	}
	for _, tt := range tests {
		t.Run(tt.action.Kind.String(), func(t *testing.T) {
			got, err := FormatAction(tt.action, "$")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	p.Alias = "Al"
	got, err := FormatAction(pokernow.Action{Player: p, Kind: pokernow.ActionCheck}, "€")
	require.NoError(t, err)
	assert.Equal(t, "Al: checks", got)

	_, err = FormatAction(pokernow.Action{Player: p, Kind: pokernow.ActionKind(99)}, "$")
	var perr *pokernow.ParseError
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, pokernow.ErrInvalidAction))
}

func TestFormatHandWithoutHero(t *testing.T) {
	game := loadGame(t)
	game.SetHero("nobody")

	lines, err := FormatHand(game, game.Hands[0])
	require.NoError(t, err)
	for _, l := range lines {
		assert.NotContains(t, l, "Dealt to")
	}
}

func TestFormatHandSecondRunSections(t *testing.T) {
	game := loadGame(t)
	lines, err := FormatHand(game, game.Hands[3])
	require.NoError(t, err)

	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "*** FIRST FLOP *** [Kc 8d 3s]")
	assert.Contains(t, text, "*** SECOND FLOP *** [Qd 7c 4h]")
	assert.Contains(t, text, "*** SECOND RIVER *** [Qd 7c 4h 9s] [5d]")
	assert.Contains(t, text, "*** FIRST SHOW DOWN ***")
	assert.Contains(t, text, "Hand was run twice")
	assert.Contains(t, text, "SECOND Board: [Qd 7c 4h 9s 5d]")
}
