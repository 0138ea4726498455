// Package engine implements the rules of UNO: the deck, a single hand of
// play (dealing, legal plays, special cards, UNO declarations and scoring)
// and a match of several hands played to a target score.
//
// The engine is deterministic given its Shuffler and performs no I/O. It is
// not safe for concurrent use.
package engine

import "fmt"

// GameConfig describes a new match.
type GameConfig struct {
	Players        []string
	TargetScore    int
	Shuffler       Shuffler[Card] // nil means StandardShuffler
	CardsPerPlayer int            // 0 means Rules.CardsPerPlayer, then DefaultCardsPerPlayer
	Dealer         int
	Rules          HouseRules
}

// Game is a match: a sequence of hands with cumulative scores.
type Game struct {
	players     []string
	targetScore int
	shuffler    Shuffler[Card]
	rules       HouseRules

	dealer     int
	scores     []int
	hand       *Hand
	handNumber int
	scored     bool // current hand's score has been folded in
}

// CreateGame validates cfg and deals the first hand.
func CreateGame(cfg GameConfig) (*Game, error) {
	if err := validatePlayers(cfg.Players); err != nil {
		return nil, err
	}
	if cfg.TargetScore <= 0 {
		return nil, fmt.Errorf("%w: target score must be positive, got %d", ErrInvalidConfiguration, cfg.TargetScore)
	}
	if cfg.CardsPerPlayer < 0 {
		return nil, fmt.Errorf("%w: cards per player must be positive, got %d", ErrInvalidConfiguration, cfg.CardsPerPlayer)
	}
	rules := cfg.Rules
	if cfg.CardsPerPlayer > 0 {
		rules.CardsPerPlayer = cfg.CardsPerPlayer
	}
	rules = rules.withDefaults()
	shuffler := cfg.Shuffler
	if shuffler == nil {
		shuffler = StandardShuffler[Card]()
	}

	g := &Game{
		players:     append([]string(nil), cfg.Players...),
		targetScore: cfg.TargetScore,
		shuffler:    shuffler,
		rules:       rules,
		scores:      make([]int, len(cfg.Players)),
	}
	if err := g.deal(cfg.Dealer); err != nil {
		return nil, err
	}
	return g, nil
}

// deal starts a hand with the given dealer. The game is unchanged on error.
func (g *Game) deal(dealer int) error {
	h, err := NewHand(g.players, dealer, g.shuffler, g.rules)
	if err != nil {
		return err
	}
	g.dealer = dealer
	g.hand = h
	g.handNumber++
	g.scored = false
	return nil
}

// CurrentHand returns the hand being played, or the last one if it has ended.
func (g *Game) CurrentHand() *Hand { return g.hand }

// StartNewHand deals the next hand with the dealer moved one seat on. The
// current hand must have ended and the match must not be over. A score not
// yet folded in by UpdateScores is applied first.
func (g *Game) StartNewHand() error {
	if !g.hand.HasEnded() {
		return fmt.Errorf("%w: current hand is still in progress", ErrIllegalMove)
	}
	if _, err := g.UpdateScores(); err != nil {
		return err
	}
	if _, over := g.Winner(); over {
		return fmt.Errorf("%w: match is over", ErrIllegalMove)
	}
	return g.deal((g.dealer + 1) % len(g.players))
}

// UpdateScores adds the ended hand's score to its winner. It reports false
// when the score was already applied.
func (g *Game) UpdateScores() (bool, error) {
	if !g.hand.HasEnded() {
		return false, fmt.Errorf("%w: current hand is still in progress", ErrIllegalMove)
	}
	if g.scored {
		return false, nil
	}
	winner, _ := g.hand.Winner()
	score, _ := g.hand.Score()
	g.scores[winner] += score
	g.scored = true
	return true, nil
}

// Winner returns the match winner once a cumulative score reaches the
// target. Should several players qualify, the highest score wins and the
// lower seat breaks ties.
func (g *Game) Winner() (int, bool) {
	best := NoPlayer
	for p, s := range g.scores {
		if s < g.targetScore {
			continue
		}
		if best == NoPlayer || s > g.scores[best] {
			best = p
		}
	}
	return best, best != NoPlayer
}

// Score returns player i's cumulative score.
func (g *Game) Score(i int) int {
	if i < 0 || i >= len(g.scores) {
		return 0
	}
	return g.scores[i]
}

// Scores returns a copy of every cumulative score.
func (g *Game) Scores() []int { return append([]int(nil), g.scores...) }

// TargetScore returns the score that wins the match.
func (g *Game) TargetScore() int { return g.targetScore }

// Players returns the player names in seating order.
func (g *Game) Players() []string { return append([]string(nil), g.players...) }

// PlayerCount returns the number of players.
func (g *Game) PlayerCount() int { return len(g.players) }

// Dealer returns the dealer of the current hand.
func (g *Game) Dealer() int { return g.dealer }

// HandNumber returns the 1-based number of the current hand.
func (g *Game) HandNumber() int { return g.handNumber }

// Rules returns the effective house rules.
func (g *Game) Rules() HouseRules { return g.rules }
