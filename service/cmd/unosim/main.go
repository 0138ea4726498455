// Package main provides the unosim CLI for running batches of bot-only UNO matches.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KisKova/UnoGameAssignment2/service/internal/config"
	"github.com/KisKova/UnoGameAssignment2/service/internal/sim"
	"github.com/sirupsen/logrus"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("unosim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		games       = fs.Int("games", 0, "Number of matches to simulate (default from config)")
		players     = fs.Int("players", 0, "Players per match")
		target      = fs.Int("target", 0, "Score that wins a match")
		cards       = fs.Int("cards", 0, "Cards dealt to each player")
		workers     = fs.Int("workers", 0, "Number of worker goroutines (0 = auto-detect CPU count)")
		seed        = fs.Uint64("seed", 0, "Batch seed (0 = use current time)")
		rulesFile   = fs.String("rules", "", "YAML house-rules file")
		envFile     = fs.String("env", "", "Path to a .env file (default .env if present)")
		logLevel    = fs.String("log-level", "", "Log level (trace, debug, info, warn, error)")
		showVersion = fs.Bool("version", false, "Show version information")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "unosim %s (built %s)\n", Version, BuildTime)
		return 0
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	// Flags win over the environment and the rules file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "players":
			cfg.Players = *players
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "rules":
			rules, err := config.LoadRules(*rulesFile)
			if err != nil {
				flagErr = err
				return
			}
			cfg.RulesFile = *rulesFile
			cfg.Rules = rules
		}
	})
	if flagErr != nil {
		fmt.Fprintf(stderr, "Error loading house rules: %v\n", flagErr)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target":
			cfg.Rules.TargetScore = *target
		case "cards":
			cfg.Rules.CardsPerPlayer = *cards
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level: %v\n", err)
		return 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, _, err := sim.Run(ctx, sim.Options{
		Games:   cfg.Games,
		Players: cfg.Players,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Rules:   cfg.Rules,
	}, logrus.NewEntry(logger))
	if err != nil {
		logger.WithError(err).Error("simulation failed")
		return 1
	}
	printStats(stdout, cfg, stats)
	return 0
}

func printStats(w io.Writer, cfg config.Config, s sim.Stats) {
	fmt.Fprintf(w, "UNO simulation\n")
	fmt.Fprintf(w, "  Seed:           %d\n", cfg.Seed)
	fmt.Fprintf(w, "  Games:          %d\n", s.Games)
	fmt.Fprintf(w, "  Players:        %d\n", s.Players)
	fmt.Fprintf(w, "  Target score:   %d\n", cfg.Rules.Target())
	fmt.Fprintf(w, "  Avg hands:      %.2f\n", s.AvgHands)
	fmt.Fprintf(w, "  Avg moves:      %.1f\n", s.AvgMoves)
	fmt.Fprintf(w, "  UNO calls:      %d\n", s.UnoCalls)
	fmt.Fprintf(w, "  UNO catches:    %d\n", s.UnoCatches)
	fmt.Fprintf(w, "  Elapsed:        %s\n", s.Duration.Round(time.Millisecond))
	for seat, wins := range s.Wins {
		pct := 0.0
		if s.Games > 0 {
			pct = 100 * float64(wins) / float64(s.Games)
		}
		fmt.Fprintf(w, "  Seat %d wins:    %d (%.1f%%)\n", seat, wins, pct)
	}
}
