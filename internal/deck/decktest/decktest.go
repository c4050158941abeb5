// Package decktest provides card fixtures for tests.
package decktest

import "github.com/lox/pnconvert/internal/deck"

// Cards parses a whitespace or comma separated card list and panics on
// error.
func Cards(text string) []deck.Card {
	cards, err := deck.ParseCardList(text)
	if err != nil {
		panic(err)
	}
	return cards
}
