package models

import (
	"testing"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/stretchr/testify/assert"
)

func TestHouseRulesEngine(t *testing.T) {
	h := HouseRules{CardsPerPlayer: 5, UnoPenalty: 2, AllowWildDrawBluff: true, AutoCallUnoForBots: true}
	assert.Equal(t, engine.HouseRules{CardsPerPlayer: 5, UnoPenalty: 2, AllowWildDrawBluff: true}, h.Engine())
}

func TestHouseRulesTarget(t *testing.T) {
	assert.Equal(t, engine.DefaultTargetScore, HouseRules{}.Target())
	assert.Equal(t, engine.DefaultTargetScore, HouseRules{TargetScore: -3}.Target())
	assert.Equal(t, 150, HouseRules{TargetScore: 150}.Target())
	assert.Equal(t, 500, DefaultHouseRules().Target())
}
