// internal/game/uno_calls.go
package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// doSayUno records an UNO declaration for player idx. It is not bound to
// the turn: a player may declare right after playing their second to last card.
// Assumes lock is held by caller.
func (g *UnoGame) doSayUno(idx int) error {
	h := g.Engine.CurrentHand()
	already := h.SaidUno(idx)
	if err := h.SayUno(idx); err != nil {
		return err
	}
	if already {
		return nil
	}
	playerID := g.EngineToPlayer[idx]
	g.Players[idx].HasCalledUno = true
	g.fireEvent(GameEvent{
		Type:    EventPlayerUno,
		User:    &EventUser{ID: playerID},
		Payload: map[string]interface{}{"handSize": h.HandSize(idx)},
	})
	g.logAction(playerID, string(EventPlayerUno), nil)
	return nil
}

func (g *UnoGame) handleCatchUno(idx int, payload map[string]interface{}) error {
	targetID, ok := payloadUser(payload)
	if !ok {
		return fmt.Errorf("missing or invalid accused player")
	}
	target, ok := g.PlayerToEngine[targetID]
	if !ok {
		return fmt.Errorf("player %s is not at this table", targetID)
	}
	g.doCatchUno(idx, target)
	return nil
}

// doCatchUno accuses target of holding one card without having declared UNO.
// A failed accusation is announced but costs nothing. It reports whether the
// accusation stuck.
// Assumes lock is held by caller.
func (g *UnoGame) doCatchUno(accuser, target int) bool {
	h := g.Engine.CurrentHand()
	accuserID := g.EngineToPlayer[accuser]
	targetID := g.EngineToPlayer[target]
	entry := g.log.WithFields(logrus.Fields{"accuser": accuserID, "accused": targetID})

	if !h.CatchUnoFailure(accuser, target) {
		entry.Debug("false UNO accusation")
		g.fireEvent(GameEvent{
			Type:    EventPlayerFalseAccusation,
			User:    &EventUser{ID: accuserID},
			Payload: map[string]interface{}{"accused": targetID.String()},
		})
		g.logAction(accuserID, string(EventPlayerFalseAccusation), map[string]interface{}{"accused": targetID})
		return false
	}

	entry.Info("player caught without UNO")
	g.fireEvent(GameEvent{
		Type:    EventPlayerUnoCaught,
		User:    &EventUser{ID: targetID},
		Payload: map[string]interface{}{"accuser": accuserID.String(), "penalty": h.Rules().UnoPenalty},
	})
	g.logAction(accuserID, string(EventPlayerUnoCaught), map[string]interface{}{"accused": targetID})
	g.emitDraws(accuser, false)
	g.syncPlayerHandsFromEngine()
	return true
}

// botCatchUno lets the first bot, in seat order, accuse every bot left
// holding a single undeclared card. Humans are judged by botCatchHuman.
// Assumes lock is held by caller.
func (g *UnoGame) botCatchUno() {
	if !g.HouseRules.AutoCatchUnoForBots {
		return
	}
	h := g.Engine.CurrentHand()
	for target, p := range g.Players {
		if h.HasEnded() {
			return
		}
		if !p.IsBot || h.HandSize(target) != 1 || h.SaidUno(target) {
			continue
		}
		g.accuseByBot(target)
	}
}

// botCatchHuman runs before a human's action. A human who acts again while
// still holding one undeclared card is accused by the first bot; declaring
// UNO is the one action that escapes it.
// Assumes lock is held by caller.
func (g *UnoGame) botCatchHuman(idx int) {
	if !g.HouseRules.AutoCatchUnoForBots {
		return
	}
	h := g.Engine.CurrentHand()
	if h.HasEnded() || h.HandSize(idx) != 1 || h.SaidUno(idx) {
		return
	}
	g.accuseByBot(idx)
}

// accuseByBot has the first bot other than target accuse target.
// Assumes lock is held by caller.
func (g *UnoGame) accuseByBot(target int) {
	for accuser, p := range g.Players {
		if p.IsBot && accuser != target {
			g.doCatchUno(accuser, target)
			return
		}
	}
}
