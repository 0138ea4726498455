// internal/game/actions.go
package game

import (
	"fmt"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/google/uuid"
)

// checkTurn rejects turn-bound actions from anyone but the player in turn.
func (g *UnoGame) checkTurn(idx int) error {
	if g.Engine.CurrentHand().PlayerInTurn() != idx {
		return ErrNotYourTurn
	}
	return nil
}

func (g *UnoGame) handlePlay(idx int, payload map[string]interface{}) error {
	cardIdx, ok := payloadIndex(payload, "idx")
	if !ok {
		return fmt.Errorf("missing or invalid card index")
	}
	color, err := payloadColor(payload)
	if err != nil {
		return err
	}
	return g.doPlay(idx, cardIdx, color)
}

func (g *UnoGame) handleChooseColor(idx int, payload map[string]interface{}) error {
	color, err := payloadColor(payload)
	if err != nil {
		return err
	}
	return g.doChooseColor(idx, color)
}

// doPlay plays a card for player idx and emits the resulting events.
// Assumes lock is held by caller.
func (g *UnoGame) doPlay(idx, cardIdx int, color engine.Color) error {
	if err := g.checkTurn(idx); err != nil {
		return err
	}
	h := g.Engine.CurrentHand()
	played, err := h.Play(cardIdx, color)
	if err != nil {
		return err
	}
	playerID := g.EngineToPlayer[idx]
	cardID := g.trackPlay(idx, cardIdx, played)
	i := cardIdx
	g.fireEvent(GameEvent{
		Type: EventPlayerPlay,
		User: &EventUser{ID: playerID},
		Card: buildEventCard(g.CardTracker.Registry[cardID], &i, playerID, true),
		Payload: map[string]interface{}{
			"handSize":  h.HandSize(idx),
			"direction": h.Direction(),
		},
	})
	g.logAction(playerID, string(EventPlayerPlay), map[string]interface{}{"card": played.String(), "idx": cardIdx})
	g.emitDraws(idx, true)
	g.afterAction(true)
	return nil
}

// doDraw draws for player idx. An exhausted deck is not an error; the
// player may then pass.
// Assumes lock is held by caller.
func (g *UnoGame) doDraw(idx int) error {
	if err := g.checkTurn(idx); err != nil {
		return err
	}
	h := g.Engine.CurrentHand()
	_, ok, err := h.Draw()
	if err != nil {
		return err
	}
	if !ok {
		g.log.WithField("player_id", g.EngineToPlayer[idx]).Info("draw pile and discard exhausted")
		g.fireEvent(GameEvent{
			Type:    EventPlayerDraw,
			User:    &EventUser{ID: g.EngineToPlayer[idx]},
			Payload: map[string]interface{}{"count": 0, "drawPileSize": 0},
		})
	}
	g.emitDraws(idx, false)
	g.afterAction(h.PlayerInTurn() != idx)
	return nil
}

// doPass ends player idx's turn after a draw.
// Assumes lock is held by caller.
func (g *UnoGame) doPass(idx int) error {
	if err := g.checkTurn(idx); err != nil {
		return err
	}
	if err := g.Engine.CurrentHand().Pass(); err != nil {
		return err
	}
	playerID := g.EngineToPlayer[idx]
	g.fireEvent(GameEvent{Type: EventPlayerPass, User: &EventUser{ID: playerID}})
	g.logAction(playerID, string(EventPlayerPass), nil)
	g.afterAction(true)
	return nil
}

// doChooseColor sets the color of a starting WILD.
// Assumes lock is held by caller.
func (g *UnoGame) doChooseColor(idx int, color engine.Color) error {
	if err := g.checkTurn(idx); err != nil {
		return err
	}
	if err := g.Engine.CurrentHand().ChooseColor(color); err != nil {
		return err
	}
	g.trackDiscardColor()
	playerID := g.EngineToPlayer[idx]
	top, _ := g.discardTopCard()
	g.fireEvent(GameEvent{
		Type:    EventPlayerChooseColor,
		User:    &EventUser{ID: playerID},
		Card:    buildEventCard(top, nil, uuid.Nil, true),
		Payload: map[string]interface{}{"color": top.Color},
	})
	g.logAction(playerID, string(EventPlayerChooseColor), map[string]interface{}{"color": top.Color})
	g.afterAction(false)
	return nil
}

// emitDraws announces every card that entered a hand during the last engine
// call: publicly by ID, privately with details. Cards drawn by anyone but
// the actor, or forced on the actor, are penalties.
// Assumes lock is held by caller.
func (g *UnoGame) emitDraws(actor int, actorPenalty bool) {
	drawn := g.trackDraws()
	h := g.Engine.CurrentHand()
	for p := range g.Players {
		ids := drawn[p]
		if len(ids) == 0 {
			continue
		}
		playerID := g.EngineToPlayer[p]
		public := make([]*EventCard, len(ids))
		private := make([]*EventCard, len(ids))
		for i, id := range ids {
			public[i] = &EventCard{ID: id}
			private[i] = buildEventCard(g.CardTracker.Registry[id], nil, playerID, true)
		}
		penalty := p != actor || actorPenalty
		g.fireEvent(GameEvent{
			Type:  EventPlayerDraw,
			User:  &EventUser{ID: playerID},
			Cards: public,
			Payload: map[string]interface{}{
				"count":        len(ids),
				"penalty":      penalty,
				"drawPileSize": h.DrawPileSize(),
			},
		})
		g.fireEventToPlayer(playerID, GameEvent{
			Type:    EventPrivateDraw,
			Cards:   private,
			Payload: map[string]interface{}{"penalty": penalty},
		})
		g.logAction(playerID, string(EventPlayerDraw), map[string]interface{}{"count": len(ids), "penalty": penalty})
	}
}

// afterAction syncs player models, then ends the hand or, when the turn
// moved on, announces the next turn.
// Assumes lock is held by caller.
func (g *UnoGame) afterAction(turnEnded bool) {
	g.syncPlayerHandsFromEngine()
	if g.Engine.CurrentHand().HasEnded() {
		g.endHand()
		return
	}
	if turnEnded {
		g.TurnID++
		g.broadcastPlayerTurn()
	}
}

// payloadIndex reads a non-negative integer from a JSON-decoded payload.
func payloadIndex(payload map[string]interface{}, key string) (int, bool) {
	switch v := payload[key].(type) {
	case float64:
		if v < 0 || v != float64(int(v)) {
			return -1, false
		}
		return int(v), true
	case int:
		return v, v >= 0
	}
	return -1, false
}

// payloadColor reads an optional "color" field.
func payloadColor(payload map[string]interface{}) (engine.Color, error) {
	s, _ := payload["color"].(string)
	return engine.ParseColor(s)
}

// payloadUser reads a {"user": {"id": "..."}} target.
func payloadUser(payload map[string]interface{}) (uuid.UUID, bool) {
	userMap, ok := payload["user"].(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	idStr, ok := userMap["id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
