// Package agent implements a simple bot policy for engine hands.
//
// The policy sees only the public query surface of a hand: it plays the
// first playable card in hand order, picks a random color for wild cards,
// and otherwise draws (or passes once a draw is spent). It never declares
// UNO or accuses other players.
package agent

import (
	"errors"
	"fmt"

	"github.com/KisKova/UnoGameAssignment2/engine"
)

// ErrNotInTurn is returned when the bot is asked to act out of turn.
var ErrNotInTurn = errors.New("bot is not the player in turn")

// View is the read-only surface the policy decides from. *engine.Hand
// satisfies it.
type View interface {
	PlayerInTurn() int
	PlayerHand(i int) []engine.Card
	CanPlay(index int) bool
	CanPlayAny() bool
	CanDraw() bool
	CanPass() bool
	NeedsColorChoice() bool
}

// Actor is a View that also accepts moves. *engine.Hand satisfies it.
type Actor interface {
	View
	Play(index int, color engine.Color) (engine.Card, error)
	Draw() (engine.Card, bool, error)
	Pass() error
	ChooseColor(c engine.Color) error
}

// MoveKind identifies the kind of a Move.
type MoveKind uint8

const (
	MovePlay MoveKind = iota + 1
	MoveDraw
	MovePass
	MoveChooseColor
)

func (k MoveKind) String() string {
	switch k {
	case MovePlay:
		return "play"
	case MoveDraw:
		return "draw"
	case MovePass:
		return "pass"
	case MoveChooseColor:
		return "choose_color"
	default:
		return fmt.Sprintf("MoveKind(%d)", uint8(k))
	}
}

// Move is a decision taken by the policy.
type Move struct {
	Kind  MoveKind
	Index int          // hand index for MovePlay
	Color engine.Color // chosen color for wild plays and MoveChooseColor
}

// Policy picks legal moves. Colors for wild cards come from the injected
// shuffler so tests can fix them.
type Policy struct {
	colors engine.Shuffler[engine.Color]
}

// NewPolicy returns a policy. A nil shuffler means engine.StandardShuffler.
func NewPolicy(colors engine.Shuffler[engine.Color]) *Policy {
	if colors == nil {
		colors = engine.StandardShuffler[engine.Color]()
	}
	return &Policy{colors: colors}
}

// Decide returns the move the bot would make. It does not change v.
func (p *Policy) Decide(v View, bot int) (Move, error) {
	if v.PlayerInTurn() != bot {
		return Move{}, fmt.Errorf("%w: player %d, in turn %d", ErrNotInTurn, bot, v.PlayerInTurn())
	}
	if v.NeedsColorChoice() {
		return Move{Kind: MoveChooseColor, Color: p.pickColor()}, nil
	}
	if v.CanPlayAny() {
		for i, c := range v.PlayerHand(bot) {
			if !v.CanPlay(i) {
				continue
			}
			m := Move{Kind: MovePlay, Index: i}
			if c.IsWild() {
				m.Color = p.pickColor()
			}
			return m, nil
		}
	}
	if v.CanDraw() {
		return Move{Kind: MoveDraw}, nil
	}
	if v.CanPass() {
		return Move{Kind: MovePass}, nil
	}
	return Move{}, fmt.Errorf("%w: no legal move for player %d", engine.ErrIllegalMove, bot)
}

// Act decides a move for the bot and applies it to a.
func (p *Policy) Act(a Actor, bot int) (Move, error) {
	m, err := p.Decide(a, bot)
	if err != nil {
		return Move{}, err
	}
	switch m.Kind {
	case MoveChooseColor:
		err = a.ChooseColor(m.Color)
	case MovePlay:
		_, err = a.Play(m.Index, m.Color)
	case MoveDraw:
		_, _, err = a.Draw()
	case MovePass:
		err = a.Pass()
	}
	return m, err
}

func (p *Policy) pickColor() engine.Color {
	return p.colors(engine.Colors[:])[0]
}
