package pokernow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/pnconvert/internal/deck"
)

const (
	variantHoldem = "Hold'em No Limit"
	variantOmaha  = "Omaha Pot Limit"

	runItTwiceLine = "All players in hand choose to run it twice."
)

var (
	handNumberRe = regexp.MustCompile(`#(\d+)`)
	dealerRe     = regexp.MustCompile(`\(dealer: "([^"]+)"\)`)

	bombPotRe    = regexp.MustCompile(`^"([^"]+)" posts a bet of (\S+)`)
	raiseRe      = regexp.MustCompile(`^"([^"]+)" raises (?:to |with )?(\S+)`)
	betRe        = regexp.MustCompile(`^"([^"]+)" bets (?:with )?(\S+)`)
	callRe       = regexp.MustCompile(`^"([^"]+)" calls (?:with )?(\S+)`)
	checkRe      = regexp.MustCompile(`^"([^"]+)" checks`)
	foldRe       = regexp.MustCompile(`^"([^"]+)" folds`)
	uncalledRe   = regexp.MustCompile(`^Uncalled bet of (\S+) returned to "([^"]+)"`)
	bigBlindRe   = regexp.MustCompile(`^"([^"]+)" posts a (?:missed )?big blind of (\S+)`)
	straddleRe   = regexp.MustCompile(`^"([^"]+)" posts a straddle of (\S+)`)
	smallBlindRe = regexp.MustCompile(`^"([^"]+)" posts a (missing |penalty )?small blind of (\S+)`)
	anteRe       = regexp.MustCompile(`^"([^"]+)" posts an ante of (\S+)`)
	boardRe      = regexp.MustCompile(`^([Ff]lop|[Tt]urn|[Rr]iver)( \(second run\))?:.*\[([^\[\]]*)\]\s*$`)
	showRe       = regexp.MustCompile(`^"([^"]+)" shows a (.+?)\.?$`)
	collectRe    = regexp.MustCompile(`^"([^"]+)" (?:collected|gained) (\S+)(?: from pot)?(.*)$`)
	winsRe       = regexp.MustCompile(`^"([^"]+)" wins (\S+)(.*)$`)
	embeddedHand = regexp.MustCompile(`\(hand: ([^)]+)\)`)

	stackEntryRe       = regexp.MustCompile(`^#(\d+) "([^"]+)" \((\S+)\)$`)
	legacyStackEntryRe = regexp.MustCompile(`^"([^"]+)" \((\S+)\)$`)

	allInSuffix = strings.NewReplacer(" and go all in", "", " and all in", "")
)

// ignoredFragments mark lines about table management rather than play.
var ignoredFragments = []string{
	"joined",
	"requested",
	"quits",
	"created",
	"approved",
	"changed",
	"enqueued",
	" stand up ",
	" sit back ",
	" canceled the seat ",
	" decide whether to run it twice",
	"chooses to  run it twice.",
	"The admin updated the player ",
	"the admin queued the stack change ",
	"Undealt cards: ",
	"not run it twice.",
}

// Classify maps one preprocessed log line onto a line event. It is pure; an
// error means the line was recognised but one of its fields is malformed.
func Classify(line string) (Event, error) {
	switch {
	case strings.HasPrefix(line, "-- starting hand "):
		return classifyHandStart(line)
	case strings.HasPrefix(line, "-- ending hand "):
		m := handNumberRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: hand end without number", ErrMalformedLine)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: hand number %q", ErrMalformedLine, m[1])
		}
		return HandEnd{Number: n}, nil
	case strings.HasPrefix(line, "Players stacks: "):
		return classifyStacks(strings.TrimPrefix(line, "Players stacks: "), true)
	case strings.HasPrefix(line, "Player stacks: "):
		return classifyStacks(strings.TrimPrefix(line, "Player stacks: "), false)
	case strings.HasPrefix(line, "Your hand is "):
		cards, err := deck.ParseCardList(strings.TrimPrefix(line, "Your hand is "))
		if err != nil {
			return nil, err
		}
		return DealtCards{Cards: cards}, nil
	case line == runItTwiceLine:
		return RunItTwice{}, nil
	}

	clean := allInSuffix.Replace(line)

	if m := bombPotRe.FindStringSubmatch(clean); m != nil {
		return forced(ForcedBombPot, m[1], m[2])
	}
	if m := raiseRe.FindStringSubmatch(clean); m != nil {
		return playerAction(ActionRaise, m[1], m[2])
	}
	if m := betRe.FindStringSubmatch(clean); m != nil {
		return playerAction(ActionBet, m[1], m[2])
	}
	if m := callRe.FindStringSubmatch(clean); m != nil {
		return playerAction(ActionCall, m[1], m[2])
	}
	if m := checkRe.FindStringSubmatch(clean); m != nil {
		return PlayerAction{Kind: ActionCheck, Key: m[1]}, nil
	}
	if m := uncalledRe.FindStringSubmatch(clean); m != nil {
		amount, err := parseAmount(m[1])
		if err != nil {
			return nil, err
		}
		return UncalledBet{Key: m[2], Amount: amount}, nil
	}
	if m := foldRe.FindStringSubmatch(clean); m != nil {
		return PlayerAction{Kind: ActionFold, Key: m[1]}, nil
	}
	if m := bigBlindRe.FindStringSubmatch(clean); m != nil {
		return forced(ForcedBigBlind, m[1], m[2])
	}
	if m := straddleRe.FindStringSubmatch(clean); m != nil {
		return forced(ForcedStraddle, m[1], m[2])
	}
	if m := smallBlindRe.FindStringSubmatch(clean); m != nil {
		kind := ForcedSmallBlind
		if m[2] != "" {
			kind = ForcedMissingSmallBlind
		}
		return forced(kind, m[1], m[3])
	}
	if m := anteRe.FindStringSubmatch(clean); m != nil {
		return forced(ForcedAnte, m[1], m[2])
	}
	if m := boardRe.FindStringSubmatch(line); m != nil {
		return classifyBoard(m[1], m[2] != "", m[3])
	}
	if m := showRe.FindStringSubmatch(line); m != nil {
		cards, err := deck.ParseCardList(m[2])
		if err != nil {
			return nil, err
		}
		return ShowCards{Key: m[1], Cards: cards}, nil
	}
	if m := collectRe.FindStringSubmatch(line); m != nil {
		return classifyCollect(line, m[1], m[2], m[3])
	}
	if m := winsRe.FindStringSubmatch(line); m != nil {
		return classifyCollect(line, m[1], m[2], m[3])
	}

	if line == "Dead Small Blind" {
		return Ignored{}, nil
	}
	for _, frag := range ignoredFragments {
		if strings.Contains(line, frag) {
			return Ignored{}, nil
		}
	}
	return Unrecognized{}, nil
}

func classifyHandStart(line string) (Event, error) {
	m := handNumberRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: hand start without number", ErrMalformedLine)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: hand number %q", ErrMalformedLine, m[1])
	}
	ev := HandStart{Number: n, Variant: variantOmaha}
	if strings.Contains(line, "Hold'em") {
		ev.Variant = variantHoldem
	}
	if d := dealerRe.FindStringSubmatch(line); d != nil {
		ev.DealerKey = d[1]
	}
	return ev, nil
}

func classifyStacks(list string, legacy bool) (Event, error) {
	ev := StackList{Legacy: legacy}
	for i, entry := range strings.Split(list, " | ") {
		entry = strings.TrimSpace(entry)
		var seat int
		var key, stack string
		if legacy {
			m := legacyStackEntryRe.FindStringSubmatch(entry)
			if m == nil {
				return nil, fmt.Errorf("%w: stack entry %q", ErrMalformedLine, entry)
			}
			seat, key, stack = i+1, m[1], m[2]
		} else {
			m := stackEntryRe.FindStringSubmatch(entry)
			if m == nil {
				return nil, fmt.Errorf("%w: stack entry %q", ErrMalformedLine, entry)
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("%w: seat %q", ErrMalformedLine, m[1])
			}
			seat, key, stack = n, m[2], m[3]
		}
		if _, _, ok := SplitKey(key); !ok {
			return nil, fmt.Errorf("%w: player %q has no id", ErrMalformedLine, key)
		}
		amount, err := parseAmount(stack)
		if err != nil {
			return nil, err
		}
		ev.Entries = append(ev.Entries, StackEntry{Seat: seat, Key: key, Stack: amount})
	}
	return ev, nil
}

func classifyBoard(name string, secondRun bool, list string) (Event, error) {
	cards, err := deck.ParseCardList(list)
	if err != nil {
		return nil, err
	}
	ev := BoardCards{SecondRun: secondRun, Cards: cards}
	switch strings.ToLower(name) {
	case "flop":
		ev.Street = StreetFlop
	case "turn":
		ev.Street = StreetTurn
	default:
		ev.Street = StreetRiver
	}
	if ev.Street != StreetFlop && len(cards) != 1 {
		return nil, fmt.Errorf("%w: %s expects one card, got %d", ErrMalformedLine, name, len(cards))
	}
	return ev, nil
}

func classifyCollect(line, key, amountText, rest string) (Event, error) {
	amount, err := parseAmount(amountText)
	if err != nil {
		return nil, err
	}
	ev := Collect{
		Key:       key,
		Amount:    amount,
		SecondRun: strings.Contains(line, "second run"),
	}
	if _, desc, ok := strings.Cut(rest, " with "); ok {
		ev.Detailed = true
		desc, _, _ = strings.Cut(desc, " (")
		desc, _, _ = strings.Cut(desc, " on the second run")
		ev.Description = desc
	}
	if m := embeddedHand.FindStringSubmatch(rest); m != nil {
		cards, err := deck.ParseCardList(m[1])
		if err != nil {
			return nil, err
		}
		ev.HoleCards = cards
	}
	return ev, nil
}

func forced(kind ForcedKind, key, amountText string) (Event, error) {
	amount, err := parseAmount(amountText)
	if err != nil {
		return nil, err
	}
	return ForcedBet{Kind: kind, Key: key, Amount: amount}, nil
}

func playerAction(kind ActionKind, key, amountText string) (Event, error) {
	amount, err := parseAmount(amountText)
	if err != nil {
		return nil, err
	}
	return PlayerAction{Kind: kind, Key: key, Amount: amount}, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return v, nil
}
