package engine

import "fmt"

// Hand is one round of play: from the deal until a player empties their
// hand. It is not safe for concurrent use; the host serializes calls.
type Hand struct {
	players  []string
	dealer   int
	shuffler Shuffler[Card]
	rules    HouseRules

	drawPile    Deck // index 0 is the top
	discardPile Deck // last element is the top
	hands       [][]Card

	current      int
	direction    int
	colorPending bool // starting WILD waits for the first player's color

	saidUno []bool

	// Draw option for the player in turn.
	drewThisTurn bool
	drawnIdx     int // index of a playable drawn card, or -1
	passAllowed  bool

	ended  bool
	winner int
	score  int

	lastActions []*Action
	log         []Action
}

// NewHand deals a new round. A nil shuffler means StandardShuffler.
func NewHand(players []string, dealer int, shuffler Shuffler[Card], rules HouseRules) (*Hand, error) {
	rules = rules.withDefaults()
	if err := validatePlayers(players); err != nil {
		return nil, err
	}
	n := len(players)
	if dealer < 0 || dealer >= n {
		return nil, fmt.Errorf("%w: dealer %d out of range for %d players", ErrInvalidConfiguration, dealer, n)
	}
	if rules.CardsPerPlayer < 0 {
		return nil, fmt.Errorf("%w: cards per player must be positive, got %d", ErrInvalidConfiguration, rules.CardsPerPlayer)
	}
	if rules.UnoPenalty < 0 {
		return nil, fmt.Errorf("%w: UNO penalty must be positive, got %d", ErrInvalidConfiguration, rules.UnoPenalty)
	}
	if DeckSize-n*rules.CardsPerPlayer < minFlipReserve {
		return nil, fmt.Errorf("%w: cannot deal %d cards to %d players from a %d-card deck",
			ErrInvalidConfiguration, rules.CardsPerPlayer, n, DeckSize)
	}
	if shuffler == nil {
		shuffler = StandardShuffler[Card]()
	}

	h := &Hand{
		players:     append([]string(nil), players...),
		dealer:      dealer,
		shuffler:    shuffler,
		rules:       rules,
		hands:       make([][]Card, n),
		direction:   1,
		drawnIdx:    -1,
		winner:      NoPlayer,
		saidUno:     make([]bool, n),
		lastActions: make([]*Action, n),
	}
	if err := h.deal(); err != nil {
		return nil, err
	}
	return h, nil
}

func validatePlayers(players []string) error {
	n := len(players)
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidConfiguration, MinPlayers, MaxPlayers, n)
	}
	seen := make(map[string]bool, n)
	for i, name := range players {
		if name == "" {
			return fmt.Errorf("%w: player %d has an empty name", ErrInvalidConfiguration, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfiguration, name)
		}
		seen[name] = true
	}
	return nil
}

// deal shuffles, deals round-robin starting left of the dealer, flips the
// starting card and applies its effect.
func (h *Hand) deal() error {
	n := len(h.players)
	deck := CreateInitialDeck().Shuffle(h.shuffler)
	if len(deck) != DeckSize {
		return fmt.Errorf("%w: shuffler returned %d of %d cards", ErrInvalidConfiguration, len(deck), DeckSize)
	}

	pos := 0
	for c := 0; c < h.rules.CardsPerPlayer; c++ {
		for k := 1; k <= n; k++ {
			p := (h.dealer + k) % n
			h.hands[p] = append(h.hands[p], deck[pos])
			pos++
		}
	}
	h.drawPile = deck[pos:].Clone()

	// WILD_DRAW may not start a round: bury it and flip again.
	var top Card
	for {
		top = h.drawPile[0]
		h.drawPile = h.drawPile[1:]
		if top.Type != WildDraw {
			break
		}
		h.drawPile = append(h.drawPile, top)
	}
	h.discardPile = Deck{top}

	first := (h.dealer + 1) % n
	h.current = first
	switch top.Type {
	case Numbered:
	case Skip:
		h.current = h.step(first, 1)
	case Reverse:
		h.direction = -1
		if n == 2 {
			h.current = h.dealer
		} else {
			h.current = h.step(h.dealer, 1)
		}
	case DrawTwo:
		h.forceDraw(first, 2, NoPlayer)
		h.current = h.step(first, 1)
	case Wild:
		h.colorPending = true
	}
	return nil
}

// step returns the player k positions away from p in the current direction.
func (h *Hand) step(p, k int) int {
	n := len(h.players)
	return ((p+h.direction*k)%n + n) % n
}

// advance moves the turn pointer and resets the per-turn draw state.
func (h *Hand) advance(k int) {
	h.current = h.step(h.current, k)
	h.drewThisTurn = false
	h.drawnIdx = -1
	h.passAllowed = false
}

// PlayerCount returns the number of players in the hand.
func (h *Hand) PlayerCount() int { return len(h.players) }

// Players returns the player names in seating order.
func (h *Hand) Players() []string { return append([]string(nil), h.players...) }

// Dealer returns the dealer's index.
func (h *Hand) Dealer() int { return h.dealer }

// Rules returns the effective house rules.
func (h *Hand) Rules() HouseRules { return h.rules }

// PlayerInTurn returns the index of the player who must act, or NoPlayer
// once the hand has ended.
func (h *Hand) PlayerInTurn() int {
	if h.ended {
		return NoPlayer
	}
	return h.current
}

// Direction returns +1 for increasing seat order and -1 for reversed play.
func (h *Hand) Direction() int { return h.direction }

// PlayerHand returns a copy of player i's cards, or nil for an unknown index.
func (h *Hand) PlayerHand(i int) []Card {
	if i < 0 || i >= len(h.hands) {
		return nil
	}
	return append([]Card(nil), h.hands[i]...)
}

// HandSize returns the number of cards player i holds.
func (h *Hand) HandSize(i int) int {
	if i < 0 || i >= len(h.hands) {
		return 0
	}
	return len(h.hands[i])
}

// DrawPile returns a copy of the draw pile, top first.
func (h *Hand) DrawPile() Deck { return h.drawPile.Clone() }

// DrawPileSize returns the number of cards left to draw.
func (h *Hand) DrawPileSize() int { return len(h.drawPile) }

// DiscardPile returns a copy of the discard pile, top last.
func (h *Hand) DiscardPile() Deck { return h.discardPile.Clone() }

// DiscardTop returns the card that the next play must match.
func (h *Hand) DiscardTop() Card { return h.discardPile[len(h.discardPile)-1] }

// NeedsColorChoice reports whether the player in turn must pick the color
// of a starting WILD before doing anything else.
func (h *Hand) NeedsColorChoice() bool { return !h.ended && h.colorPending }

// SaidUno reports whether player i has a standing UNO declaration.
func (h *Hand) SaidUno(i int) bool {
	if i < 0 || i >= len(h.saidUno) {
		return false
	}
	return h.saidUno[i]
}

// HasEnded reports whether a player has emptied their hand.
func (h *Hand) HasEnded() bool { return h.ended }

// Winner returns the player who emptied their hand.
func (h *Hand) Winner() (int, bool) {
	if !h.ended {
		return NoPlayer, false
	}
	return h.winner, true
}

// Score returns the points won by the winner; it is absent until the hand ends.
func (h *Hand) Score() (int, bool) {
	if !h.ended {
		return 0, false
	}
	return h.score, true
}

// cardCount returns the number of cards across all piles and hands.
func (h *Hand) cardCount() int {
	total := len(h.drawPile) + len(h.discardPile)
	for _, hand := range h.hands {
		total += len(hand)
	}
	return total
}
