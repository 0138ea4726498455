package engine

import "fmt"

// ActionKind identifies an entry in the hand's action log.
type ActionKind uint8

const (
	ActionPlay ActionKind = iota + 1
	ActionDraw
	ActionPass
	ActionChooseColor
	ActionSayUno
	ActionAccuse
	ActionPenaltyDraw
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "play"
	case ActionDraw:
		return "draw"
	case ActionPass:
		return "pass"
	case ActionChooseColor:
		return "choose_color"
	case ActionSayUno:
		return "say_uno"
	case ActionAccuse:
		return "accuse"
	case ActionPenaltyDraw:
		return "penalty_draw"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action describes one event in a hand, attributed to Player.
type Action struct {
	Kind   ActionKind
	Player int
	Card   Card  // played or drawn card
	Color  Color // chosen or played color
	Count  int   // cards drawn
	Target int   // accused player, or the player who forced a penalty draw; NoPlayer otherwise
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlay:
		return fmt.Sprintf("player %d played %s", a.Player, a.Card)
	case ActionDraw:
		return fmt.Sprintf("player %d drew a card", a.Player)
	case ActionPass:
		return fmt.Sprintf("player %d passed", a.Player)
	case ActionChooseColor:
		return fmt.Sprintf("player %d chose %s", a.Player, a.Color)
	case ActionSayUno:
		return fmt.Sprintf("player %d said UNO", a.Player)
	case ActionAccuse:
		return fmt.Sprintf("player %d caught player %d without UNO", a.Player, a.Target)
	case ActionPenaltyDraw:
		return fmt.Sprintf("player %d drew %d penalty cards", a.Player, a.Count)
	}
	return a.Kind.String()
}

func (h *Hand) record(a Action) {
	h.log = append(h.log, a)
	h.lastActions[a.Player] = &a
}

// LastAction returns the most recent action attributed to player, or nil.
func (h *Hand) LastAction(player int) *Action {
	if player < 0 || player >= len(h.lastActions) || h.lastActions[player] == nil {
		return nil
	}
	a := *h.lastActions[player]
	return &a
}

// Log returns every action recorded in the hand, oldest first.
func (h *Hand) Log() []Action { return append([]Action(nil), h.log...) }
