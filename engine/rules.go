package engine

// HouseRules holds configurable rule settings for a hand.
type HouseRules struct {
	CardsPerPlayer     int  // cards dealt to each player; 0 means DefaultCardsPerPlayer
	UnoPenalty         int  // cards drawn by a player caught without saying UNO; 0 means 4
	AllowWildDrawBluff bool // if true, WILD_DRAW may be played while holding a card of the current color
}

const (
	DefaultCardsPerPlayer = 7
	DefaultUnoPenalty     = 4
	DefaultTargetScore    = 500
	MinPlayers            = 2
	MaxPlayers            = 10

	// minFlipReserve is the number of cards that must remain after dealing so
	// a non-WILD_DRAW starting card always exists.
	minFlipReserve = 5
)

// DefaultHouseRules returns the standard rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		CardsPerPlayer:     DefaultCardsPerPlayer,
		UnoPenalty:         DefaultUnoPenalty,
		AllowWildDrawBluff: false,
	}
}

// withDefaults fills zero fields.
func (r HouseRules) withDefaults() HouseRules {
	if r.CardsPerPlayer == 0 {
		r.CardsPerPlayer = DefaultCardsPerPlayer
	}
	if r.UnoPenalty == 0 {
		r.UnoPenalty = DefaultUnoPenalty
	}
	return r
}
