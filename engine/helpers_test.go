package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// dealOrder lists the cards to stack on the deck so that each player receives
// hands[p] and top is flipped, followed by drawTop on the draw pile.
func dealOrder(dealer int, hands [][]Card, top Card, drawTop ...Card) []Card {
	n := len(hands)
	cpp := len(hands[0])
	order := make([]Card, 0, n*cpp+1+len(drawTop))
	for c := 0; c < cpp; c++ {
		for k := 1; k <= n; k++ {
			order = append(order, hands[(dealer+k)%n][c])
		}
	}
	order = append(order, top)
	return append(order, drawTop...)
}

// thenIdentity stacks the deal on the first shuffle and keeps order on every
// later reshuffle.
func thenIdentity(first Shuffler[Card]) Shuffler[Card] {
	used := false
	return func(in []Card) []Card {
		if !used {
			used = true
			return first(in)
		}
		return IdentityShuffler[Card]()(in)
	}
}

// stackedHand deals a hand with exactly the given cards.
func stackedHand(t *testing.T, dealer int, rules HouseRules, hands [][]Card, top Card, drawTop ...Card) *Hand {
	t.Helper()
	names := make([]string, len(hands))
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	rules.CardsPerPlayer = len(hands[0])
	s := thenIdentity(StackedShuffler(dealOrder(dealer, hands, top, drawTop...)...))
	h, err := NewHand(names, dealer, s, rules)
	require.NoError(t, err)
	for p := range hands {
		require.Equal(t, hands[p], h.PlayerHand(p), "player %d hand", p)
	}
	return h
}

// requireConserved checks that no card was created or lost.
func requireConserved(t *testing.T, h *Hand) {
	t.Helper()
	require.Equal(t, DeckSize, h.cardCount())
}

// handState captures everything a rejected action must leave untouched.
type handState struct {
	Draw, Discard Deck
	Hands         [][]Card
	Current, Dir  int
	SaidUno       []bool
	Log           []Action
	ColorPending  bool
	DrawnIdx      int
	PassAllowed   bool
	Ended         bool
}

func snapshot(h *Hand) handState {
	hands := make([][]Card, len(h.hands))
	for i := range h.hands {
		hands[i] = h.PlayerHand(i)
	}
	return handState{
		Draw:         h.DrawPile(),
		Discard:      h.DiscardPile(),
		Hands:        hands,
		Current:      h.current,
		Dir:          h.direction,
		SaidUno:      append([]bool(nil), h.saidUno...),
		Log:          h.Log(),
		ColorPending: h.colorPending,
		DrawnIdx:     h.drawnIdx,
		PassAllowed:  h.passAllowed,
		Ended:        h.ended,
	}
}
