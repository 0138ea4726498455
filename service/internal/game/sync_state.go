// internal/game/sync_state.go
package game

import (
	"github.com/KisKova/UnoGameAssignment2/service/internal/models"
	"github.com/google/uuid"
)

// ObfCard represents a card's state for client synchronization.
type ObfCard struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Color  string    `json:"color,omitempty"`
	Number *int      `json:"number,omitempty"`
	Value  int       `json:"value"`
	Idx    *int      `json:"idx,omitempty"` // Pointer to allow omitting zero index (relevant for hand cards).
}

// ObfPlayerState represents the state of a single player, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	IsBot         bool      `json:"isBot"`
	HandSize      int       `json:"handSize"`
	SaidUno       bool      `json:"saidUno"`
	Score         int       `json:"score"`
	Connected     bool      `json:"connected"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	// RevealedHand is populated only for the player requesting the state ('self').
	RevealedHand []ObfCard `json:"revealedHand,omitempty"`
	// Playable lists the hand indices the requesting player may play now ('self' only).
	Playable []int `json:"playable,omitempty"`
}

// ObfGameState represents the overall game state, obfuscated for a specific observer.
type ObfGameState struct {
	GameID          uuid.UUID         `json:"gameId"`
	Started         bool              `json:"started"`
	GameOver        bool              `json:"gameOver"`
	HandNumber      int               `json:"handNumber"`
	HandOver        bool              `json:"handOver"`
	CurrentPlayerID uuid.UUID         `json:"currentPlayerId"`
	DealerID        uuid.UUID         `json:"dealerId"`
	TurnID          int               `json:"turnId"`
	Direction       int               `json:"direction"`
	ColorRequired   bool              `json:"colorRequired"`
	CanDraw         bool              `json:"canDraw"`
	CanPass         bool              `json:"canPass"`
	DrawPileSize    int               `json:"drawPileSize"`
	DiscardSize     int               `json:"discardSize"`
	DiscardTop      *ObfCard          `json:"discardTop,omitempty"`
	TargetScore     int               `json:"targetScore"`
	Players         []ObfPlayerState  `json:"players"`
	HouseRules      models.HouseRules `json:"houseRules"`
}

func obfCard(c *models.Card, idx *int) ObfCard {
	return ObfCard{ID: c.ID, Type: c.Type, Color: c.Color, Number: c.Number, Value: c.Value, Idx: idx}
}

// GetCurrentObfuscatedGameState generates a snapshot of the game state
// tailored to the perspective of forUser. Other players' cards are only
// counted, never revealed.
func (g *UnoGame) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.obfuscatedState(forUser)
}

// obfuscatedState reads from engine state as the authoritative source.
// Assumes lock is held by caller.
func (g *UnoGame) obfuscatedState(forUser uuid.UUID) ObfGameState {
	obf := ObfGameState{
		GameID:      g.ID,
		Started:     g.Started,
		GameOver:    g.GameOver,
		TurnID:      g.TurnID,
		TargetScore: g.HouseRules.Target(),
		HouseRules:  g.HouseRules,
	}

	obf.Players = make([]ObfPlayerState, len(g.Players))
	for i, pl := range g.Players {
		obf.Players[i] = ObfPlayerState{
			PlayerID:  pl.ID,
			Name:      pl.Name,
			IsBot:     pl.IsBot,
			Connected: pl.Connected,
		}
	}
	if g.Engine == nil {
		return obf
	}

	h := g.Engine.CurrentHand()
	self, isSeated := g.PlayerToEngine[forUser]
	obf.HandNumber = g.Engine.HandNumber()
	obf.HandOver = h.HasEnded()
	obf.CurrentPlayerID = g.currentPlayerID()
	obf.DealerID = g.EngineToPlayer[g.Engine.Dealer()]
	obf.Direction = h.Direction()
	obf.ColorRequired = h.NeedsColorChoice()
	obf.DrawPileSize = h.DrawPileSize()
	obf.DiscardSize = len(h.DiscardPile())
	obf.TargetScore = g.Engine.TargetScore()
	if top, _ := g.discardTopCard(); top != nil {
		c := obfCard(top, nil)
		obf.DiscardTop = &c
	}
	isCurrent := isSeated && h.PlayerInTurn() == self
	if isCurrent {
		obf.CanDraw = h.CanDraw()
		obf.CanPass = h.CanPass()
	}

	for i := range g.Players {
		ps := &obf.Players[i]
		ps.HandSize = h.HandSize(i)
		ps.SaidUno = h.SaidUno(i)
		ps.Score = g.Engine.Score(i)
		ps.IsCurrentTurn = h.PlayerInTurn() == i

		if !isSeated || i != self {
			continue
		}
		// Reveal hand details for self.
		ids := g.CardTracker.Hands[i]
		ps.RevealedHand = make([]ObfCard, len(ids))
		for j, id := range ids {
			idx := j
			ps.RevealedHand[j] = obfCard(g.CardTracker.Registry[id], &idx)
			if isCurrent && h.CanPlay(j) {
				ps.Playable = append(ps.Playable, j)
			}
		}
	}
	return obf
}
