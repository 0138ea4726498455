package engine

import "fmt"

// Play plays the card at index from the hand of the player in turn.
// color must be a real color for WILD and WILD_DRAW and ColorNone otherwise.
// It returns the card as it lies on the discard pile.
func (h *Hand) Play(index int, color Color) (Card, error) {
	if err := h.checkTurn(); err != nil {
		return Card{}, err
	}
	p := h.current
	hand := h.hands[p]
	if index < 0 || index >= len(hand) {
		return Card{}, fmt.Errorf("%w: card index %d out of range (hand size %d)", ErrIllegalMove, index, len(hand))
	}
	card := hand[index]
	if !h.CanPlay(index) {
		return Card{}, fmt.Errorf("%w: %s cannot be played on %s", ErrIllegalMove, card, h.DiscardTop())
	}
	switch {
	case card.IsWild() && !color.IsReal():
		return Card{}, fmt.Errorf("%w: %s needs a color", ErrIllegalMove, card)
	case !card.IsWild() && color != ColorNone:
		return Card{}, fmt.Errorf("%w: %s does not take a color", ErrIllegalMove, card)
	}

	played := card
	if card.IsWild() {
		played = card.WithColor(color)
	}
	h.hands[p] = append(hand[:index:index], hand[index+1:]...)
	h.discardPile = append(h.discardPile, played)
	if len(h.hands[p]) != 1 {
		h.saidUno[p] = false
	}
	h.record(Action{Kind: ActionPlay, Player: p, Card: played, Color: played.Color, Target: NoPlayer})

	steps := h.applyEffect(played)

	if len(h.hands[p]) == 0 {
		h.ended = true
		h.winner = p
		h.score = h.computeScore()
		return played, nil
	}
	h.advance(steps)
	return played, nil
}

// applyEffect applies the special effect of a played card and returns how
// many seats the turn pointer moves.
func (h *Hand) applyEffect(c Card) int {
	switch c.Type {
	case Numbered, Wild:
		return 1
	case Skip:
		return 2
	case Reverse:
		h.direction = -h.direction
		if len(h.players) == 2 {
			return 2
		}
		return 1
	case DrawTwo:
		h.forceDraw(h.step(h.current, 1), 2, h.current)
		return 2
	case WildDraw:
		h.forceDraw(h.step(h.current, 1), 4, h.current)
		return 2
	}
	panic(fmt.Sprintf("engine: unknown card type %d", c.Type))
}

// Draw draws one card for the player in turn. If the card is playable the
// player keeps the turn and may play it or pass; otherwise the turn passes.
// ok is false when neither pile could supply a card; the turn then stays
// with the player, who may pass.
func (h *Hand) Draw() (card Card, ok bool, err error) {
	if err := h.checkTurn(); err != nil {
		return Card{}, false, err
	}
	if h.drewThisTurn {
		return Card{}, false, fmt.Errorf("%w: already drew this turn", ErrIllegalMove)
	}
	p := h.current
	if !h.refill() {
		h.drewThisTurn = true
		h.passAllowed = true
		return Card{}, false, nil
	}
	card = h.drawPile[0]
	h.drawPile = h.drawPile[1:]
	h.hands[p] = append(h.hands[p], card)
	h.saidUno[p] = false
	h.record(Action{Kind: ActionDraw, Player: p, Card: card, Count: 1, Target: NoPlayer})

	if h.playable(p, card) {
		h.drewThisTurn = true
		h.drawnIdx = len(h.hands[p]) - 1
		h.passAllowed = true
		return card, true, nil
	}
	h.advance(1)
	return card, true, nil
}

// Pass ends the turn of a player who drew and chose not to play.
func (h *Hand) Pass() error {
	if err := h.checkTurn(); err != nil {
		return err
	}
	if !h.passAllowed {
		return fmt.Errorf("%w: must play or draw before passing", ErrIllegalMove)
	}
	h.record(Action{Kind: ActionPass, Player: h.current, Target: NoPlayer})
	h.advance(1)
	return nil
}

// ChooseColor sets the color of a starting WILD for the first player.
func (h *Hand) ChooseColor(c Color) error {
	if h.ended {
		return fmt.Errorf("%w: hand has ended", ErrIllegalMove)
	}
	if !h.colorPending {
		return fmt.Errorf("%w: no color choice pending", ErrIllegalMove)
	}
	if !c.IsReal() {
		return fmt.Errorf("%w: %s is not a playable color", ErrIllegalMove, c)
	}
	last := len(h.discardPile) - 1
	h.discardPile[last] = h.discardPile[last].WithColor(c)
	h.colorPending = false
	h.record(Action{Kind: ActionChooseColor, Player: h.current, Color: c, Target: NoPlayer})
	return nil
}

func (h *Hand) checkTurn() error {
	if h.ended {
		return fmt.Errorf("%w: hand has ended", ErrIllegalMove)
	}
	if h.colorPending {
		return fmt.Errorf("%w: player %d must choose a color first", ErrIllegalMove, h.current)
	}
	return nil
}

// forceDraw makes victim draw up to n cards. by is the player responsible,
// or NoPlayer for the starting card.
func (h *Hand) forceDraw(victim, n, by int) {
	drawn := 0
	for ; drawn < n; drawn++ {
		if !h.refill() {
			break
		}
		h.hands[victim] = append(h.hands[victim], h.drawPile[0])
		h.drawPile = h.drawPile[1:]
	}
	if drawn > 0 {
		h.saidUno[victim] = false
	}
	h.record(Action{Kind: ActionPenaltyDraw, Player: victim, Count: drawn, Target: by})
}

// refill turns the discard pile, minus its top, into a new draw pile when the
// draw pile is empty. It reports whether a card is available to draw.
func (h *Hand) refill() bool {
	if len(h.drawPile) > 0 {
		return true
	}
	last := len(h.discardPile) - 1
	if last == 0 {
		return false
	}
	rest := make(Deck, last)
	for i, c := range h.discardPile[:last] {
		if c.IsWild() {
			c = c.WithColor(ColorNone)
		}
		rest[i] = c
	}
	h.drawPile = rest.Shuffle(h.shuffler)
	h.discardPile = Deck{h.discardPile[last]}
	return true
}
