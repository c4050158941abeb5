package pokernow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pnconvert/internal/deck"
	"github.com/lox/pnconvert/internal/deck/decktest"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "hand start with dealer",
			line: `-- starting hand #12 (id: abc)  (No Limit Texas Hold'em) (dealer: "CT @ eNVKMq2Tcb") --`,
			want: HandStart{Number: 12, Variant: "Hold'em No Limit", DealerKey: "CT @ eNVKMq2Tcb"},
		},
		{
			name: "omaha dead button",
			line: `-- starting hand #3 (id: abc)  (Pot Limit Omaha Hi) (dead button) --`,
			want: HandStart{Number: 3, Variant: "Omaha Pot Limit"},
		},
		{
			name: "hand end",
			line: `-- ending hand #12 --`,
			want: HandEnd{Number: 12},
		},
		{
			name: "current stacks",
			line: `Player stacks: #1 "a @ x1" (1000) | #4 "b @ y2" (990.5)`,
			want: StackList{Entries: []StackEntry{
				{Seat: 1, Key: "a @ x1", Stack: 1000},
				{Seat: 4, Key: "b @ y2", Stack: 990.5},
			}},
		},
		{
			name: "legacy stacks",
			line: `Players stacks: "a @ x1" (1000) | "b @ y2" (500)`,
			want: StackList{Legacy: true, Entries: []StackEntry{
				{Seat: 1, Key: "a @ x1", Stack: 1000},
				{Seat: 2, Key: "b @ y2", Stack: 500},
			}},
		},
		{
			name: "hero cards",
			line: `Your hand is 10♥, A♠`,
			want: DealtCards{Cards: decktest.Cards("Th As")},
		},
		{
			name: "raise all in",
			line: `"a @ x1" raises to 120 and go all in`,
			want: PlayerAction{Kind: ActionRaise, Key: "a @ x1", Amount: 120},
		},
		{
			name: "legacy raise",
			line: `"a @ x1" raises with 40`,
			want: PlayerAction{Kind: ActionRaise, Key: "a @ x1", Amount: 40},
		},
		{
			name: "bet",
			line: `"a @ x1" bets 30.5`,
			want: PlayerAction{Kind: ActionBet, Key: "a @ x1", Amount: 30.5},
		},
		{
			name: "call all in",
			line: `"a @ x1" calls 75 and all in`,
			want: PlayerAction{Kind: ActionCall, Key: "a @ x1", Amount: 75},
		},
		{
			name: "check",
			line: `"a @ x1" checks`,
			want: PlayerAction{Kind: ActionCheck, Key: "a @ x1"},
		},
		{
			name: "fold",
			line: `"a @ x1" folds`,
			want: PlayerAction{Kind: ActionFold, Key: "a @ x1"},
		},
		{
			name: "uncalled bet",
			line: `Uncalled bet of 80 returned to "a @ x1"`,
			want: UncalledBet{Key: "a @ x1", Amount: 80},
		},
		{
			name: "small blind",
			line: `"a @ x1" posts a small blind of 10`,
			want: ForcedBet{Kind: ForcedSmallBlind, Key: "a @ x1", Amount: 10},
		},
		{
			name: "missing small blind",
			line: `"a @ x1" posts a missing small blind of 10`,
			want: ForcedBet{Kind: ForcedMissingSmallBlind, Key: "a @ x1", Amount: 10},
		},
		{
			name: "missed big blind",
			line: `"a @ x1" posts a missed big blind of 20`,
			want: ForcedBet{Kind: ForcedBigBlind, Key: "a @ x1", Amount: 20},
		},
		{
			name: "straddle",
			line: `"a @ x1" posts a straddle of 40`,
			want: ForcedBet{Kind: ForcedStraddle, Key: "a @ x1", Amount: 40},
		},
		{
			name: "ante",
			line: `"a @ x1" posts an ante of 5`,
			want: ForcedBet{Kind: ForcedAnte, Key: "a @ x1", Amount: 5},
		},
		{
			name: "bomb pot bet is not a plain bet",
			line: `"a @ x1" posts a bet of 50 (bomb pot bet)`,
			want: ForcedBet{Kind: ForcedBombPot, Key: "a @ x1", Amount: 50},
		},
		{
			name: "flop",
			line: `Flop:  [J♠, 2♦, 9♥]`,
			want: BoardCards{Street: StreetFlop, Cards: decktest.Cards("Js 2d 9h")},
		},
		{
			name: "legacy lowercase turn",
			line: `turn: J♠, 2♦, 9♥ [5♣]`,
			want: BoardCards{Street: StreetTurn, Cards: decktest.Cards("5c")},
		},
		{
			name: "second run river",
			line: `River (second run): J♠, 2♦, 9♥, 5♣ [K♦]`,
			want: BoardCards{Street: StreetRiver, SecondRun: true, Cards: decktest.Cards("Kd")},
		},
		{
			name: "show",
			line: `"a @ x1" shows a 10♥, 6♥.`,
			want: ShowCards{Key: "a @ x1", Cards: decktest.Cards("Th 6h")},
		},
		{
			name: "plain collect",
			line: `"a @ x1" collected 120 from pot`,
			want: Collect{Key: "a @ x1", Amount: 120},
		},
		{
			name: "collect with hand",
			line: `"a @ x1" collected 300 from pot with Flush, A High (combination: A♥, 9♥, 7♥, 4♥, 2♥)`,
			want: Collect{Key: "a @ x1", Amount: 300, Detailed: true, Description: "Flush, A High"},
		},
		{
			name: "gained without pot",
			line: `"a @ x1" gained 20`,
			want: Collect{Key: "a @ x1", Amount: 20},
		},
		{
			name: "gained second run",
			line: `"a @ x1" gained 60 from pot on the second run with Pair, 9's (combination: 9♠, 9♥)`,
			want: Collect{Key: "a @ x1", Amount: 60, SecondRun: true, Detailed: true, Description: "Pair, 9's"},
		},
		{
			name: "legacy wins",
			line: `"a @ x1" wins 60 with Pair, 9's (hand: 9♠, 9♥)`,
			want: Collect{
				Key: "a @ x1", Amount: 60, Detailed: true, Description: "Pair, 9's",
				HoleCards: decktest.Cards("9s 9h"),
			},
		},
		{
			name: "run it twice",
			line: `All players in hand choose to run it twice.`,
			want: RunItTwice{},
		},
		{
			name: "join is ignored",
			line: `The player "a @ x1" joined the game with a stack of 1000.`,
			want: Ignored{},
		},
		{
			name: "dead small blind is ignored",
			line: `Dead Small Blind`,
			want: Ignored{},
		},
		{
			name: "anything else",
			line: `The admin paused the game.`,
			want: Unrecognized{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"bad bet amount", `"a @ x1" bets lots`, ErrMalformedAmount},
		{"bad stack", `Player stacks: #1 "a @ x1" (many)`, ErrMalformedAmount},
		{"stack entry shape", `Player stacks: a (1000)`, ErrMalformedLine},
		{"turn with two cards", `Turn: [5♣, 6♣]`, ErrMalformedLine},
		{"hand start without number", `-- starting hand (dealer: "a @ x1") --`, ErrMalformedLine},
		{"hand end number overflow", `-- ending hand #99999999999999999999 --`, ErrMalformedLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := Classify(`Flop:  [J♠, 2♦, 1♥]`)
	var invalid *deck.InvalidCardError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "1♥", invalid.Text)
}

func TestPreprocess(t *testing.T) {
	rows := []Row{
		{Text: `"C T @ eNVKMq2Tcb" calls 20`},
		{Text: `The player "Big Al @ x @ y1" joined`},
		{Text: `Flop:  [J♠, 2♦, 9♥]`},
	}
	out := Preprocess(rows)
	assert.Equal(t, `"CT @ eNVKMq2Tcb" calls 20`, out[0].Text)
	assert.Equal(t, `The player "BigAl@x @ y1" joined`, out[1].Text)
	assert.Equal(t, rows[2].Text, out[2].Text)
	assert.Equal(t, `"C T @ eNVKMq2Tcb" calls 20`, rows[0].Text, "input must not be modified")
}
