// engine_adapter.go: bridge between engine.Game and UnoGame.
package game

import (
	"strings"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/KisKova/UnoGameAssignment2/service/internal/models"
	"github.com/google/uuid"
)

// CardUUIDTracker mirrors the visible card positions of the current hand
// with UUIDs for client communication. Draw pile cards have no UUID until
// someone draws them. Updated in lockstep with every engine action.
type CardUUIDTracker struct {
	Hands      [][]uuid.UUID // Parallel to each engine hand.
	DiscardTop uuid.UUID

	// Registry maps UUID -> full card details for event payloads.
	Registry map[uuid.UUID]*models.Card
}

// engineCardToDetails converts an engine.Card to a service *models.Card with the given UUID.
func engineCardToDetails(c engine.Card, id uuid.UUID) *models.Card {
	mc := &models.Card{
		ID:    id,
		Type:  strings.ToLower(c.Type.String()),
		Value: c.Points(),
	}
	if c.Color != engine.ColorNone {
		mc.Color = strings.ToLower(c.Color.String())
	}
	if c.Type == engine.Numbered {
		n := int(c.Number)
		mc.Number = &n
	}
	return mc
}

// newCardID registers card under a fresh UUID.
func (t *CardUUIDTracker) newCardID(c engine.Card) uuid.UUID {
	id, _ := uuid.NewRandom()
	t.Registry[id] = engineCardToDetails(c, id)
	return id
}

// initCardTracker assigns UUIDs to every visible card of a freshly dealt hand.
// Assumes lock is held by caller.
func (g *UnoGame) initCardTracker() {
	h := g.Engine.CurrentHand()
	tracker := &g.CardTracker
	tracker.Registry = make(map[uuid.UUID]*models.Card)
	tracker.Hands = make([][]uuid.UUID, h.PlayerCount())
	for p := range tracker.Hands {
		for _, c := range h.PlayerHand(p) {
			tracker.Hands[p] = append(tracker.Hands[p], tracker.newCardID(c))
		}
	}
	tracker.DiscardTop = tracker.newCardID(h.DiscardTop())
	g.syncPlayerHandsFromEngine()
}

// trackPlay moves the card at cardIdx of player p onto the discard pile.
// The registry entry is refreshed because a wild gains its chosen color.
// Assumes lock is held by caller.
func (g *UnoGame) trackPlay(p, cardIdx int, played engine.Card) uuid.UUID {
	tracker := &g.CardTracker
	ids := tracker.Hands[p]
	id := ids[cardIdx]
	tracker.Hands[p] = append(ids[:cardIdx:cardIdx], ids[cardIdx+1:]...)
	tracker.DiscardTop = id
	tracker.Registry[id] = engineCardToDetails(played, id)
	return id
}

// trackDraws assigns UUIDs to cards appended to any hand since the last sync
// and returns the new UUIDs per player.
// Assumes lock is held by caller.
func (g *UnoGame) trackDraws() map[int][]uuid.UUID {
	h := g.Engine.CurrentHand()
	tracker := &g.CardTracker
	drawn := make(map[int][]uuid.UUID)
	for p := range tracker.Hands {
		cards := h.PlayerHand(p)
		for i := len(tracker.Hands[p]); i < len(cards); i++ {
			id := tracker.newCardID(cards[i])
			tracker.Hands[p] = append(tracker.Hands[p], id)
			drawn[p] = append(drawn[p], id)
		}
	}
	return drawn
}

// trackDiscardColor refreshes the discard top after a starting WILD is given a color.
// Assumes lock is held by caller.
func (g *UnoGame) trackDiscardColor() {
	top := g.Engine.CurrentHand().DiscardTop()
	g.CardTracker.Registry[g.CardTracker.DiscardTop] = engineCardToDetails(top, g.CardTracker.DiscardTop)
}

// syncPlayerHandsFromEngine rebuilds each Player's Hand and UNO flag from the engine.
// Assumes lock is held by caller.
func (g *UnoGame) syncPlayerHandsFromEngine() {
	h := g.Engine.CurrentHand()
	for i, pl := range g.Players {
		ids := g.CardTracker.Hands[i]
		pl.Hand = make([]*models.Card, len(ids))
		for j, id := range ids {
			pl.Hand[j] = g.CardTracker.Registry[id]
		}
		pl.HasCalledUno = h.SaidUno(i)
	}
}

// currentPlayerID returns the UUID of the player in turn, or uuid.Nil.
func (g *UnoGame) currentPlayerID() uuid.UUID {
	if g.Engine == nil {
		return uuid.Nil
	}
	idx := g.Engine.CurrentHand().PlayerInTurn()
	if idx == engine.NoPlayer {
		return uuid.Nil
	}
	return g.EngineToPlayer[idx]
}

// discardTopCard returns the tracked discard top.
func (g *UnoGame) discardTopCard() (*models.Card, uuid.UUID) {
	id := g.CardTracker.DiscardTop
	return g.CardTracker.Registry[id], id
}

// buildEventCard creates an EventCard struct used in event payloads.
func buildEventCard(card *models.Card, idx *int, ownerID uuid.UUID, includePrivate bool) *EventCard {
	if card == nil {
		return nil
	}
	ec := &EventCard{
		ID:  card.ID,
		Idx: idx,
	}
	if ownerID != uuid.Nil {
		ec.User = &EventUser{ID: ownerID}
	}
	if includePrivate {
		ec.Type = card.Type
		ec.Color = card.Color
		ec.Number = card.Number
		ec.Value = card.Value
	}
	return ec
}
