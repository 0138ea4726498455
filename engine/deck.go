package engine

// DeckSize is the number of cards in a full deck.
const DeckSize = 108

// Deck is an ordered sequence of cards. For a draw pile, index 0 is the top.
type Deck []Card

// CreateInitialDeck returns the full deck in a fixed order: for each color
// (red, green, blue, yellow) one 0, two each of 1-9 (1,1,2,2,...), two skips,
// two reverses and two draw-twos; then four wilds and four wild-draws.
func CreateInitialDeck() Deck {
	d := make(Deck, 0, DeckSize)
	for _, c := range Colors {
		d = append(d, NumberedCard(c, 0))
		for n := uint8(1); n <= 9; n++ {
			d = append(d, NumberedCard(c, n), NumberedCard(c, n))
		}
		d = append(d, SkipCard(c), SkipCard(c))
		d = append(d, ReverseCard(c), ReverseCard(c))
		d = append(d, DrawTwoCard(c), DrawTwoCard(c))
	}
	for i := 0; i < 4; i++ {
		d = append(d, WildCard())
	}
	for i := 0; i < 4; i++ {
		d = append(d, WildDrawCard())
	}
	return d
}

// Shuffle returns the deck permuted by s.
func (d Deck) Shuffle(s Shuffler[Card]) Deck {
	return Deck(s([]Card(d)))
}

// Size returns the number of cards in the deck.
func (d Deck) Size() int { return len(d) }

// Top returns the first card, or false if the deck is empty.
func (d Deck) Top() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[0], true
}

// Clone returns a copy that shares no storage with d.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
