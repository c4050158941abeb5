package pokernow

import "github.com/lox/pnconvert/internal/deck"

// Finalize fills in loss summaries for seats whose cards became known but
// who never collected, such as players who showed after the hand ended. It
// only touches summaries that are still unset and is safe to call again.
func (h *Hand) Finalize() {
	for _, s := range h.Seats {
		if len(s.HoleCards) == 0 {
			continue
		}
		if s.Summary == DefaultSummary {
			s.Summary = "showed " + deck.Bracket(s.HoleCards) + " and lost" +
				withHand(describe(s.HoleCards, h.Board, ""))
		}
		if h.RunItTwice && s.SecondRunSummary == "" {
			s.SecondRunSummary = ", and lost" + withHand(describe(s.HoleCards, h.SecondBoard, ""))
		}
	}
}
