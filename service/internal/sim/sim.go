// Package sim plays batches of bot-only UNO matches in parallel and
// aggregates their results. Every match is seeded from the batch seed and
// its index, so a batch is reproducible whatever the worker count.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/KisKova/UnoGameAssignment2/engine/agent"
	"github.com/KisKova/UnoGameAssignment2/service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxMoves caps the moves of a single simulated match.
const DefaultMaxMoves = 200000

// ErrMoveLimit is returned when a match does not finish within MaxMoves.
var ErrMoveLimit = errors.New("match exceeded move limit")

// Options describes a batch.
type Options struct {
	Games    int
	Players  int
	Workers  int // 0 means runtime.NumCPU
	Seed     uint64
	Rules    models.HouseRules
	MaxMoves int // per match; 0 means DefaultMaxMoves
}

// MatchResult is the outcome of one simulated match.
type MatchResult struct {
	Index      int
	Seed       uint64
	Winner     int
	Scores     []int
	Hands      int
	Moves      int
	UnoCalls   int
	UnoCatches int
}

// Stats summarizes a batch.
type Stats struct {
	Games      int
	Players    int
	Wins       []int // per seat
	Hands      int
	Moves      int
	UnoCalls   int
	UnoCatches int
	AvgHands   float64
	AvgMoves   float64
	Duration   time.Duration
}

// MatchSeeds derives one seed per match from the batch seed. Seeds are
// generated in order up front so they do not depend on scheduling.
func MatchSeeds(seed uint64, games int) []uint64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	seeds := make([]uint64, games)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// Run plays opts.Games matches on a bounded pool of goroutines. The first
// failing match cancels the rest.
func Run(ctx context.Context, opts Options, log *logrus.Entry) (Stats, []MatchResult, error) {
	if opts.Games < 0 {
		return Stats{}, nil, fmt.Errorf("games must not be negative, got %d", opts.Games)
	}
	if opts.Players < engine.MinPlayers || opts.Players > engine.MaxPlayers {
		return Stats{}, nil, fmt.Errorf("%w: need %d-%d players, got %d", engine.ErrInvalidConfiguration, engine.MinPlayers, engine.MaxPlayers, opts.Players)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log = log.WithFields(logrus.Fields{"games": opts.Games, "players": opts.Players, "workers": workers, "seed": opts.Seed})
	log.Info("simulation started")
	start := time.Now()

	seeds := MatchSeeds(opts.Seed, opts.Games)
	results := make([]MatchResult, opts.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			r, err := PlayMatch(ctx, opts.Players, seed, opts.Rules, opts.MaxMoves)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
			}
			r.Index = i
			results[i] = r
			log.WithFields(logrus.Fields{"match": i, "winner": r.Winner, "hands": r.Hands, "moves": r.Moves}).Debug("match finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("simulation failed")
		return Stats{}, nil, err
	}

	stats := Aggregate(results, opts.Players)
	stats.Duration = time.Since(start)
	log.WithFields(logrus.Fields{"avg_hands": stats.AvgHands, "avg_moves": stats.AvgMoves, "elapsed": stats.Duration}).Info("simulation finished")
	return stats, results, nil
}

// Aggregate folds match results into batch statistics.
func Aggregate(results []MatchResult, players int) Stats {
	s := Stats{Games: len(results), Players: players, Wins: make([]int, max(players, 0))}
	for _, r := range results {
		if r.Winner >= 0 && r.Winner < players {
			s.Wins[r.Winner]++
		}
		s.Hands += r.Hands
		s.Moves += r.Moves
		s.UnoCalls += r.UnoCalls
		s.UnoCatches += r.UnoCatches
	}
	if s.Games > 0 {
		s.AvgHands = float64(s.Hands) / float64(s.Games)
		s.AvgMoves = float64(s.Moves) / float64(s.Games)
	}
	return s
}

// PlayMatch plays one bot-only match to the target score. Bots declare UNO
// and accuse each other according to rules; an exposed player is caught
// one time in catchOneIn.
func PlayMatch(ctx context.Context, players int, seed uint64, rules models.HouseRules, maxMoves int) (MatchResult, error) {
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}
	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("bot-%d", i)
	}
	game, err := engine.CreateGame(engine.GameConfig{
		Players:     names,
		TargetScore: rules.Target(),
		Shuffler:    engine.SeededShuffler[engine.Card](seed),
		Rules:       rules.Engine(),
	})
	if err != nil {
		return MatchResult{}, err
	}
	policy := agent.NewPolicy(engine.SeededShuffler[engine.Color](^seed))
	watch := newUnoWatch(players, seed)

	res := MatchResult{Seed: seed, Winner: engine.NoPlayer}
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		h := game.CurrentHand()
		if h.HasEnded() {
			if _, err := game.UpdateScores(); err != nil {
				return res, err
			}
			if w, over := game.Winner(); over {
				res.Winner = w
				break
			}
			if err := game.StartNewHand(); err != nil {
				return res, err
			}
			watch.reset()
			continue
		}
		if res.Moves >= maxMoves {
			return res, fmt.Errorf("%w: %d moves", ErrMoveLimit, res.Moves)
		}

		if rules.AutoCatchUnoForBots {
			res.UnoCatches += watch.catch(h)
		}
		p := h.PlayerInTurn()
		m, err := policy.Act(h, p)
		if err != nil {
			return res, fmt.Errorf("seat %d: %w", p, err)
		}
		res.Moves++
		if rules.AutoCallUnoForBots && m.Kind == agent.MovePlay && h.HandSize(p) == 1 {
			if err := h.SayUno(p); err == nil {
				res.UnoCalls++
			}
		}
	}
	res.Hands = game.HandNumber()
	res.Scores = game.Scores()
	return res, nil
}

// catchOneIn is the odds that an exposed player is noticed.
const catchOneIn = 2

// unoWatch decides, once per exposure, whether anyone notices a player
// holding one undeclared card. The seat after the offender accuses.
type unoWatch struct {
	rng  *rand.Rand
	seen []bool
}

func newUnoWatch(players int, seed uint64) *unoWatch {
	return &unoWatch{rng: rand.New(rand.NewPCG(seed, 1)), seen: make([]bool, players)}
}

func (w *unoWatch) reset() { clear(w.seen) }

// catch returns the number of successful accusations.
func (w *unoWatch) catch(h *engine.Hand) int {
	n := h.PlayerCount()
	caught := 0
	for target := range n {
		if h.HandSize(target) != 1 || h.SaidUno(target) {
			w.seen[target] = false
			continue
		}
		if w.seen[target] {
			continue
		}
		w.seen[target] = true
		if w.rng.IntN(catchOneIn) == 0 && h.CatchUnoFailure((target+1)%n, target) {
			caught++
		}
	}
	return caught
}
