// internal/game/bots.go
package game

import (
	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/KisKova/UnoGameAssignment2/engine/agent"
)

// runBots plays bot turns until a human is in turn or the match ends.
// Assumes lock is held by caller.
func (g *UnoGame) runBots() {
	limit := g.MaxBotMoves
	if limit <= 0 {
		limit = defaultMaxBotMoves
	}
	for moves := 0; !g.GameOver; moves++ {
		g.botCatchUno()

		h := g.Engine.CurrentHand()
		idx := h.PlayerInTurn()
		if idx == engine.NoPlayer || !g.Players[idx].IsBot {
			return
		}
		if moves >= limit {
			g.log.WithField("moves", moves).Warn("bot move limit reached, waiting for input")
			return
		}
		if err := g.botTurn(idx); err != nil {
			g.log.WithField("player_id", g.EngineToPlayer[idx]).WithError(err).Error("bot move failed")
			return
		}
	}
}

// botTurn decides and applies one move for the bot at idx. With
// AutoCallUnoForBots a bot declares UNO as soon as a play leaves it one card.
// Assumes lock is held by caller.
func (g *UnoGame) botTurn(idx int) error {
	h := g.Engine.CurrentHand()
	m, err := g.Policy.Decide(h, idx)
	if err != nil {
		return err
	}
	switch m.Kind {
	case agent.MoveChooseColor:
		return g.doChooseColor(idx, m.Color)
	case agent.MoveDraw:
		return g.doDraw(idx)
	case agent.MovePass:
		return g.doPass(idx)
	}
	if err := g.doPlay(idx, m.Index, m.Color); err != nil {
		return err
	}
	// A finished hand may already have been replaced by the next deal.
	if g.HouseRules.AutoCallUnoForBots && g.Engine.CurrentHand() == h && h.HandSize(idx) == 1 {
		return g.doSayUno(idx)
	}
	return nil
}
