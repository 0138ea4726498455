package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red2  = NumberedCard(ColorRed, 2)
	red5  = NumberedCard(ColorRed, 5)
	blue5 = NumberedCard(ColorBlue, 5)
	grn3  = NumberedCard(ColorGreen, 3)
	yskip = SkipCard(ColorYellow)
)

// y returns a yellow filler card; none of them match a red discard top.
func y(n uint8) Card { return NumberedCard(ColorYellow, n) }

// TestExampleScenario plays the two-player, two-card opening described in
// the rules: a color match followed by a forced draw.
func TestExampleScenario(t *testing.T) {
	h := stackedHand(t, 1, DefaultHouseRules(),
		[][]Card{{red5, blue5}, {grn3, yskip}}, red2)

	require.Equal(t, 0, h.PlayerInTurn())
	require.Equal(t, red2, h.DiscardTop())
	requireConserved(t, h)

	require.True(t, h.CanPlay(0))
	played, err := h.Play(0, ColorNone)
	require.NoError(t, err)
	assert.Equal(t, red5, played)
	assert.Equal(t, red5, h.DiscardTop())
	assert.Equal(t, 1, h.PlayerInTurn())
	assert.Equal(t, []Card{blue5}, h.PlayerHand(0))
	assert.Len(t, h.PlayerHand(1), 2)

	assert.False(t, h.CanPlayAny())
	assert.True(t, h.CanDraw())
	requireConserved(t, h)
}

func TestNewHandDeal(t *testing.T) {
	h, err := NewHand([]string{"a", "b", "c"}, 0, SeededShuffler[Card](1), DefaultHouseRules())
	require.NoError(t, err)
	for p := 0; p < 3; p++ {
		assert.Len(t, h.PlayerHand(p), DefaultCardsPerPlayer)
	}
	assert.Len(t, h.DiscardPile(), 1)
	assert.NotEqual(t, WildDraw, h.DiscardTop().Type)
	requireConserved(t, h)
}

func TestNewHandRoundRobinFromDealersLeft(t *testing.T) {
	h, err := NewHand([]string{"a", "b", "c"}, 1, IdentityShuffler[Card](), HouseRules{CardsPerPlayer: 2})
	require.NoError(t, err)
	d := CreateInitialDeck()
	// Player 2 sits left of the dealer and receives the first card.
	assert.Equal(t, []Card{d[0], d[3]}, h.PlayerHand(2))
	assert.Equal(t, []Card{d[1], d[4]}, h.PlayerHand(0))
	assert.Equal(t, []Card{d[2], d[5]}, h.PlayerHand(1))
	assert.Equal(t, d[6], h.DiscardTop())
	assert.Equal(t, 2, h.PlayerInTurn())
}

func TestNewHandInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		dealer  int
		rules   HouseRules
	}{
		{"one player", []string{"a"}, 0, HouseRules{}},
		{"duplicate names", []string{"a", "a"}, 0, HouseRules{}},
		{"empty name", []string{"a", ""}, 0, HouseRules{}},
		{"dealer out of range", []string{"a", "b"}, 2, HouseRules{}},
		{"negative dealer", []string{"a", "b"}, -1, HouseRules{}},
		{"negative cards", []string{"a", "b"}, 0, HouseRules{CardsPerPlayer: -1}},
		{"deal too large", []string{"a", "b"}, 0, HouseRules{CardsPerPlayer: 52}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHand(tt.players, tt.dealer, nil, tt.rules)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			assert.Nil(t, h)
		})
	}
}

func TestStartingCardEffects(t *testing.T) {
	hands3 := [][]Card{{y(1)}, {y(3)}, {y(4)}}

	t.Run("numbered", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, red2)
		assert.Equal(t, 1, h.PlayerInTurn())
		assert.Equal(t, 1, h.Direction())
	})
	t.Run("skip", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, SkipCard(ColorRed))
		assert.Equal(t, 2, h.PlayerInTurn())
	})
	t.Run("reverse three players", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, ReverseCard(ColorRed))
		assert.Equal(t, 2, h.PlayerInTurn())
		assert.Equal(t, -1, h.Direction())
	})
	t.Run("reverse two players", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, [][]Card{{y(1)}, {y(3)}}, ReverseCard(ColorRed))
		assert.Equal(t, 0, h.PlayerInTurn(), "dealer starts, the left neighbor is skipped")
		assert.Equal(t, -1, h.Direction())
	})
	t.Run("draw two", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, DrawTwoCard(ColorRed), grn3, blue5)
		assert.Equal(t, []Card{y(3), grn3, blue5}, h.PlayerHand(1))
		assert.Equal(t, 2, h.PlayerInTurn())
		requireConserved(t, h)
		last := h.LastAction(1)
		require.NotNil(t, last)
		assert.Equal(t, ActionPenaltyDraw, last.Kind)
		assert.Equal(t, 2, last.Count)
	})
	t.Run("wild", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, WildCard())
		assert.Equal(t, 1, h.PlayerInTurn())
		assert.True(t, h.NeedsColorChoice())
		assert.False(t, h.CanPlayAny())
		assert.False(t, h.CanDraw())

		_, err := h.Play(0, ColorNone)
		assert.ErrorIs(t, err, ErrIllegalMove)
		_, _, err = h.Draw()
		assert.ErrorIs(t, err, ErrIllegalMove)
		assert.ErrorIs(t, h.ChooseColor(ColorNone), ErrIllegalMove)

		require.NoError(t, h.ChooseColor(ColorYellow))
		assert.False(t, h.NeedsColorChoice())
		assert.Equal(t, WildCard().WithColor(ColorYellow), h.DiscardTop())
		assert.True(t, h.CanPlay(0))
		assert.ErrorIs(t, h.ChooseColor(ColorRed), ErrIllegalMove)
	})
	t.Run("wild draw is buried", func(t *testing.T) {
		h := stackedHand(t, 0, HouseRules{}, hands3, WildDrawCard(), red2)
		assert.Equal(t, red2, h.DiscardTop())
		pile := h.DrawPile()
		assert.Equal(t, WildDrawCard(), pile[len(pile)-1])
		assert.Equal(t, 1, h.PlayerInTurn())
		requireConserved(t, h)
	})
}

func TestPlayAdvancesOneSeat(t *testing.T) {
	h := stackedHand(t, 2, HouseRules{}, [][]Card{{red5, y(1)}, {red2, y(3)}, {NumberedCard(ColorRed, 7), y(4)}}, NumberedCard(ColorRed, 9))
	require.Equal(t, 0, h.PlayerInTurn())
	_, err := h.Play(0, ColorNone)
	require.NoError(t, err)
	assert.Equal(t, 1, h.PlayerInTurn())
	_, err = h.Play(0, ColorNone)
	require.NoError(t, err)
	assert.Equal(t, 2, h.PlayerInTurn())
}

func TestSpecialCardEffects(t *testing.T) {
	t.Run("skip", func(t *testing.T) {
		h := stackedHand(t, 2, HouseRules{}, [][]Card{{SkipCard(ColorRed), y(1)}, {y(3), y(4)}, {y(5), y(6)}}, red2)
		_, err := h.Play(0, ColorNone)
		require.NoError(t, err)
		assert.Equal(t, 2, h.PlayerInTurn())
	})
	t.Run("reverse three players", func(t *testing.T) {
		h := stackedHand(t, 2, HouseRules{}, [][]Card{{ReverseCard(ColorRed), y(1)}, {y(3), y(4)}, {y(5), y(6)}}, red2)
		_, err := h.Play(0, ColorNone)
		require.NoError(t, err)
		assert.Equal(t, -1, h.Direction())
		assert.Equal(t, 2, h.PlayerInTurn())
	})
	t.Run("reverse two players acts as skip", func(t *testing.T) {
		h := stackedHand(t, 1, HouseRules{}, [][]Card{{ReverseCard(ColorRed), ReverseCard(ColorGreen), y(1)}, {y(3), y(4), y(5)}}, red2)
		_, err := h.Play(0, ColorNone)
		require.NoError(t, err)
		assert.Equal(t, 0, h.PlayerInTurn())
		assert.Equal(t, -1, h.Direction(), "flips like a starting REVERSE")

		_, err = h.Play(0, ColorNone)
		require.NoError(t, err)
		assert.Equal(t, 0, h.PlayerInTurn())
		assert.Equal(t, 1, h.Direction())
	})
	t.Run("draw two", func(t *testing.T) {
		h := stackedHand(t, 2, HouseRules{}, [][]Card{{DrawTwoCard(ColorRed), y(1)}, {y(3), y(4)}, {y(5), y(6)}}, red2, grn3, blue5)
		_, err := h.Play(0, ColorNone)
		require.NoError(t, err)
		assert.Equal(t, []Card{y(3), y(4), grn3, blue5}, h.PlayerHand(1))
		assert.Equal(t, 2, h.PlayerInTurn())
		requireConserved(t, h)
	})
	t.Run("wild draw", func(t *testing.T) {
		h := stackedHand(t, 2, HouseRules{}, [][]Card{{WildDrawCard(), y(1)}, {y(3), y(4)}, {y(5), y(6)}}, red2)
		played, err := h.Play(0, ColorBlue)
		require.NoError(t, err)
		assert.Equal(t, WildDrawCard().WithColor(ColorBlue), played)
		assert.Equal(t, played, h.DiscardTop())
		assert.Len(t, h.PlayerHand(1), 6)
		assert.Equal(t, 2, h.PlayerInTurn())
		requireConserved(t, h)
	})
	t.Run("wild sets color", func(t *testing.T) {
		h := stackedHand(t, 2, HouseRules{}, [][]Card{{WildCard(), y(1)}, {grn3, y(3)}, {y(5), y(6)}}, red2)
		_, err := h.Play(0, ColorGreen)
		require.NoError(t, err)
		assert.Equal(t, 1, h.PlayerInTurn())
		assert.True(t, h.CanPlay(0), "green matches the chosen color")
		assert.False(t, h.CanPlay(1))
	})
}

func TestPlayRejections(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{WildCard(), red5, blue5}, {y(1), y(3), y(4)}}, red2)
	before := snapshot(h)

	tests := []struct {
		name  string
		index int
		color Color
	}{
		{"index out of range", 3, ColorNone},
		{"negative index", -1, ColorNone},
		{"unplayable card", 2, ColorNone},
		{"wild without color", 0, ColorNone},
		{"non-wild with color", 1, ColorRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Play(tt.index, tt.color)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIllegalMove))
			assert.Equal(t, before, snapshot(h))
		})
	}
}

func TestWildDrawBluffRule(t *testing.T) {
	t.Run("blocked while holding current color", func(t *testing.T) {
		h := stackedHand(t, 1, HouseRules{}, [][]Card{{WildDrawCard(), NumberedCard(ColorRed, 8)}, {y(3), y(4)}}, red2)
		assert.False(t, h.CanPlay(0))
		_, err := h.Play(0, ColorBlue)
		assert.ErrorIs(t, err, ErrIllegalMove)
	})
	t.Run("number match does not block", func(t *testing.T) {
		h := stackedHand(t, 1, HouseRules{}, [][]Card{{WildDrawCard(), NumberedCard(ColorBlue, 2)}, {y(3), y(4)}}, red2)
		assert.True(t, h.CanPlay(0))
	})
	t.Run("other wilds do not block", func(t *testing.T) {
		h := stackedHand(t, 1, HouseRules{}, [][]Card{{WildDrawCard(), WildCard()}, {y(3), y(4)}}, red2)
		assert.True(t, h.CanPlay(0))
	})
	t.Run("bluffing allowed by house rule", func(t *testing.T) {
		h := stackedHand(t, 1, HouseRules{AllowWildDrawBluff: true}, [][]Card{{WildDrawCard(), NumberedCard(ColorRed, 8)}, {y(3), y(4)}}, red2)
		assert.True(t, h.CanPlay(0))
		_, err := h.Play(0, ColorBlue)
		assert.NoError(t, err)
	})
}

func TestMatchingRules(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{
		{NumberedCard(ColorBlue, 2), NumberedCard(ColorBlue, 3), SkipCard(ColorRed), SkipCard(ColorBlue), ReverseCard(ColorGreen)},
		{y(1), y(3), y(4), y(5), y(6)},
	}, red2)
	assert.True(t, h.CanPlay(0), "number match")
	assert.False(t, h.CanPlay(1))
	assert.True(t, h.CanPlay(2), "color match")
	assert.False(t, h.CanPlay(3))
	assert.False(t, h.CanPlay(4))

	h = stackedHand(t, 1, HouseRules{}, [][]Card{{SkipCard(ColorBlue), ReverseCard(ColorBlue)}, {y(3), y(4)}}, SkipCard(ColorRed))
	assert.True(t, h.CanPlay(0), "type match")
	assert.False(t, h.CanPlay(1))
}

func TestDrawPlayableKeepsTurn(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{blue5, y(1)}, {y(3), y(4)}}, red2, NumberedCard(ColorRed, 9))
	require.False(t, h.CanPlayAny())

	card, ok, err := h.Draw()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, NumberedCard(ColorRed, 9), card)
	assert.Equal(t, 0, h.PlayerInTurn())
	assert.True(t, h.CanPlay(2))
	assert.False(t, h.CanDraw())
	assert.True(t, h.CanPass())

	_, _, err = h.Draw()
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = h.Play(2, ColorNone)
	require.NoError(t, err)
	assert.Equal(t, 1, h.PlayerInTurn())
	requireConserved(t, h)
}

func TestDrawOptionRestrictsToDrawnCard(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{red5, y(1)}, {y(3), y(4)}}, red2, NumberedCard(ColorRed, 9))
	_, _, err := h.Draw()
	require.NoError(t, err)
	assert.False(t, h.CanPlay(0), "only the drawn card may be played")
	assert.True(t, h.CanPlay(2))
}

func TestDrawThenPass(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{blue5, y(1)}, {y(3), y(4)}}, red2, NumberedCard(ColorRed, 9))
	assert.ErrorIs(t, h.Pass(), ErrIllegalMove)

	_, _, err := h.Draw()
	require.NoError(t, err)
	require.NoError(t, h.Pass())
	assert.Equal(t, 1, h.PlayerInTurn())
	assert.Len(t, h.PlayerHand(0), 3)
	assert.Equal(t, ActionPass, h.LastAction(0).Kind)
}

func TestDrawUnplayablePassesTurn(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{blue5, y(1)}, {y(3), y(4)}}, red2, grn3)
	card, ok, err := h.Draw()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, grn3, card)
	assert.Equal(t, 1, h.PlayerInTurn())
	assert.Equal(t, []Card{blue5, y(1), grn3}, h.PlayerHand(0))
}

func TestDrawRefillsFromDiscard(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{blue5, y(1)}, {y(3), y(4)}}, red2)
	// Move the draw pile under the discard top, coloring a wild as if played.
	top := h.DiscardTop()
	rest := h.DrawPile()
	for i, c := range rest {
		if c.IsWild() {
			rest[i] = c.WithColor(ColorGreen)
		}
	}
	h.discardPile = append(rest, top)
	h.drawPile = nil
	requireConserved(t, h)

	_, ok, err := h.Draw()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Deck{top}, h.DiscardPile())
	for _, c := range h.DrawPile() {
		if c.IsWild() {
			assert.Equal(t, ColorNone, c.Color, "wilds lose their chosen color when reshuffled")
		}
	}
	requireConserved(t, h)
}

func TestDrawWithNothingLeft(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{blue5, y(1)}, {y(3), y(4)}}, red2)
	h.hands[1] = append(h.hands[1], h.drawPile...)
	h.drawPile = nil
	requireConserved(t, h)

	_, ok, err := h.Draw()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, h.PlayerInTurn())
	assert.Len(t, h.PlayerHand(0), 2)
	assert.False(t, h.CanDraw())
	assert.True(t, h.CanPass())

	require.NoError(t, h.Pass())
	assert.Equal(t, 1, h.PlayerInTurn())
	requireConserved(t, h)
}

func TestRoundEndAndScore(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{
		{red5, NumberedCard(ColorRed, 7)},
		{WildCard(), SkipCard(ColorBlue)},
	}, red2, NumberedCard(ColorGreen, 8))
	_, ok := h.Score()
	assert.False(t, ok)
	_, ok = h.Winner()
	assert.False(t, ok)

	_, err := h.Play(0, ColorNone)
	require.NoError(t, err)
	_, _, err = h.Draw()
	require.NoError(t, err)
	require.Equal(t, 0, h.PlayerInTurn())
	_, err = h.Play(0, ColorNone)
	require.NoError(t, err)

	assert.True(t, h.HasEnded())
	w, ok := h.Winner()
	require.True(t, ok)
	assert.Equal(t, 0, w)
	s, ok := h.Score()
	require.True(t, ok)
	assert.Equal(t, 50+20+8, s)
	assert.Equal(t, NoPlayer, h.PlayerInTurn())
	assert.False(t, h.CanPlayAny())
	assert.False(t, h.CanDraw())

	_, _, err = h.Draw()
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = h.Play(0, ColorNone)
	assert.ErrorIs(t, err, ErrIllegalMove)
	requireConserved(t, h)
}

func TestFinalDrawTwoCountsInScore(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{DrawTwoCard(ColorRed)}, {y(7)}}, red2, NumberedCard(ColorBlue, 4), NumberedCard(ColorBlue, 6))
	_, err := h.Play(0, ColorNone)
	require.NoError(t, err)
	s, ok := h.Score()
	require.True(t, ok)
	assert.Equal(t, 7+4+6, s)
	requireConserved(t, h)
}

func TestLastActionAndLog(t *testing.T) {
	h := stackedHand(t, 1, HouseRules{}, [][]Card{{red5, y(1)}, {grn3, y(3)}}, red2, blue5)
	assert.Nil(t, h.LastAction(0))
	assert.Nil(t, h.LastAction(5))

	_, err := h.Play(0, ColorNone)
	require.NoError(t, err)
	_, _, err = h.Draw()
	require.NoError(t, err)

	a := h.LastAction(0)
	require.NotNil(t, a)
	assert.Equal(t, ActionPlay, a.Kind)
	assert.Equal(t, red5, a.Card)

	b := h.LastAction(1)
	require.NotNil(t, b)
	assert.Equal(t, ActionDraw, b.Kind)
	assert.Equal(t, "player 1 drew a card", b.String())

	log := h.Log()
	require.Len(t, log, 2)
	assert.Equal(t, *a, log[0])
}

func TestSameShufflerSameGame(t *testing.T) {
	run := func() []Action {
		h, err := NewHand([]string{"a", "b", "c"}, 0, SeededShuffler[Card](99), DefaultHouseRules())
		require.NoError(t, err)
		for i := 0; i < 500 && !h.HasEnded(); i++ {
			scriptedMove(t, h)
			requireConserved(t, h)
		}
		return h.Log()
	}
	assert.Equal(t, run(), run())
}

// scriptedMove plays the first legal card (choosing red for wilds), or
// draws, or passes.
func scriptedMove(t *testing.T, h *Hand) {
	t.Helper()
	if h.NeedsColorChoice() {
		require.NoError(t, h.ChooseColor(ColorRed))
		return
	}
	for i, c := range h.PlayerHand(h.PlayerInTurn()) {
		if !h.CanPlay(i) {
			continue
		}
		color := ColorNone
		if c.IsWild() {
			color = ColorRed
		}
		_, err := h.Play(i, color)
		require.NoError(t, err)
		return
	}
	if h.CanDraw() {
		_, _, err := h.Draw()
		require.NoError(t, err)
		return
	}
	require.NoError(t, h.Pass())
}
