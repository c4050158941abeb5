package decktest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pnconvert/internal/deck"
)

func TestCards(t *testing.T) {
	want := []deck.Card{deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.King, deck.Spades)}
	assert.Equal(t, want, Cards("As Ks"))
	assert.Equal(t, want, Cards("A♠, K♠"))
	assert.Panics(t, func() { Cards("invalid") })
}
