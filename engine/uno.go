package engine

import "fmt"

// SayUno records that player declared UNO. It is valid only while the player
// holds exactly one card. Repeated calls are harmless.
func (h *Hand) SayUno(player int) error {
	if h.ended {
		return fmt.Errorf("%w: hand has ended", ErrIllegalMove)
	}
	if player < 0 || player >= len(h.hands) {
		return fmt.Errorf("%w: unknown player %d", ErrIllegalMove, player)
	}
	if size := len(h.hands[player]); size != 1 {
		return fmt.Errorf("%w: player %d holds %d cards", ErrIllegalMove, player, size)
	}
	if h.saidUno[player] {
		return nil
	}
	h.saidUno[player] = true
	h.record(Action{Kind: ActionSayUno, Player: player, Target: NoPlayer})
	return nil
}

// CatchUnoFailure accuses a player of holding one card without having
// declared UNO. On success the accused draws the UNO penalty. A failed
// accusation has no effect.
func (h *Hand) CatchUnoFailure(accuser, accused int) bool {
	if h.ended {
		return false
	}
	n := len(h.hands)
	if accuser < 0 || accuser >= n || accused < 0 || accused >= n || accuser == accused {
		return false
	}
	if len(h.hands[accused]) != 1 || h.saidUno[accused] {
		return false
	}
	h.record(Action{Kind: ActionAccuse, Player: accuser, Target: accused})
	h.forceDraw(accused, h.rules.UnoPenalty, accuser)
	return true
}
