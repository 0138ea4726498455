// internal/models/house_rules.go
package models

import (
	engine "github.com/KisKova/UnoGameAssignment2/engine"
)

// HouseRules captures the table configuration: engine rule variants plus
// how the host drives bots.
type HouseRules struct {
	// CardsPerPlayer is the size of each dealt hand (0 => engine default of 7).
	CardsPerPlayer int `yaml:"cardsPerPlayer" json:"cardsPerPlayer"`

	// UnoPenalty is the number of cards drawn when caught without saying UNO (0 => 4).
	UnoPenalty int `yaml:"unoPenalty" json:"unoPenalty"`

	// AllowWildDrawBluff lets WILD_DRAW be played while holding the current color.
	AllowWildDrawBluff bool `yaml:"allowWildDrawBluff" json:"allowWildDrawBluff"`

	// TargetScore ends the match once a player reaches it (0 => 500).
	TargetScore int `yaml:"targetScore" json:"targetScore"`

	// AutoCallUnoForBots makes bots declare UNO right after a play leaves them one card.
	AutoCallUnoForBots bool `yaml:"autoCallUnoForBots" json:"autoCallUnoForBots"`

	// AutoCatchUnoForBots makes bots accuse any player left holding one undeclared card.
	AutoCatchUnoForBots bool `yaml:"autoCatchUnoForBots" json:"autoCatchUnoForBots"`
}

// DefaultHouseRules returns the standard table configuration.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		CardsPerPlayer:      engine.DefaultCardsPerPlayer,
		UnoPenalty:          engine.DefaultUnoPenalty,
		TargetScore:         engine.DefaultTargetScore,
		AutoCallUnoForBots:  true,
		AutoCatchUnoForBots: true,
	}
}

// Engine maps the table rules onto the engine's rule set.
func (h HouseRules) Engine() engine.HouseRules {
	return engine.HouseRules{
		CardsPerPlayer:     h.CardsPerPlayer,
		UnoPenalty:         h.UnoPenalty,
		AllowWildDrawBluff: h.AllowWildDrawBluff,
	}
}

// Target returns the match target score, falling back to the engine default.
func (h HouseRules) Target() int {
	if h.TargetScore <= 0 {
		return engine.DefaultTargetScore
	}
	return h.TargetScore
}
