package engine

// CanPlay reports whether the player in turn may play the card at index.
//
// A card is playable if it matches the discard top's color, or its type
// (and number, for numbered cards), or is a WILD. A WILD_DRAW is playable
// only when the player holds no non-wild card of the current color, unless
// HouseRules.AllowWildDrawBluff is set. After drawing a playable card, only
// that card may be played.
func (h *Hand) CanPlay(index int) bool {
	if h.ended || h.colorPending {
		return false
	}
	hand := h.hands[h.current]
	if index < 0 || index >= len(hand) {
		return false
	}
	if h.drawnIdx >= 0 && index != h.drawnIdx {
		return false
	}
	return h.playable(h.current, hand[index])
}

// CanPlayAny reports whether any card in the player in turn's hand is playable.
func (h *Hand) CanPlayAny() bool {
	if h.ended || h.colorPending {
		return false
	}
	for i := range h.hands[h.current] {
		if h.CanPlay(i) {
			return true
		}
	}
	return false
}

// CanDraw reports whether the player in turn may draw. Drawing is allowed
// once per turn.
func (h *Hand) CanDraw() bool {
	return !h.ended && !h.colorPending && !h.drewThisTurn
}

// CanPass reports whether the player in turn may end their turn without
// playing: after drawing a playable card, or after a draw found no cards.
func (h *Hand) CanPass() bool {
	return !h.ended && !h.colorPending && h.passAllowed
}

// playable checks card against the discard top for player p.
func (h *Hand) playable(p int, card Card) bool {
	top := h.DiscardTop()
	switch card.Type {
	case Wild:
		return true
	case WildDraw:
		if h.rules.AllowWildDrawBluff {
			return true
		}
		for _, c := range h.hands[p] {
			if !c.IsWild() && c.Color == top.Color {
				return false
			}
		}
		return true
	}
	if card.Color == top.Color {
		return true
	}
	if card.Type != top.Type {
		return false
	}
	return card.Type != Numbered || card.Number == top.Number
}
