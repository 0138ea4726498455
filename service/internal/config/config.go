// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/KisKova/UnoGameAssignment2/service/internal/models"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvLogLevel       = "UNO_LOG_LEVEL"
	EnvLogFormat      = "UNO_LOG_FORMAT"
	EnvSimGames       = "UNO_SIM_GAMES"
	EnvSimWorkers     = "UNO_SIM_WORKERS"
	EnvSimSeed        = "UNO_SIM_SEED"
	EnvTargetScore    = "UNO_TARGET_SCORE"
	EnvCardsPerPlayer = "UNO_CARDS_PER_PLAYER"
	EnvRulesFile      = "UNO_RULES_FILE"
)

// DefaultEnvFile is loaded when no other .env path is given.
const DefaultEnvFile = ".env"

// Config holds the settings of the simulator and of host sessions.
type Config struct {
	LogLevel  string // logrus level name
	LogFormat string // "text" or "json"

	Games   int    // matches to simulate
	Players int    // seats per simulated match
	Workers int    // 0 means one per CPU
	Seed    uint64 // 0 means time-based

	RulesFile string
	Rules     models.HouseRules
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Games:     100,
		Players:   4,
		Rules:     models.DefaultHouseRules(),
	}
}

// Load builds a Config from defaults, an optional .env file, the process
// environment and the house-rules file it names. Environment values win over
// the rules file. A missing default .env file is not an error.
func Load(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	return fromLookup(os.LookupEnv)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvRulesFile); ok && v != "" {
		rules, err := LoadRules(v)
		if err != nil {
			return Config{}, err
		}
		cfg.RulesFile = v
		cfg.Rules = rules
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvSimGames, &cfg.Games},
		{EnvSimWorkers, &cfg.Workers},
		{EnvTargetScore, &cfg.Rules.TargetScore},
		{EnvCardsPerPlayer, &cfg.Rules.CardsPerPlayer},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v, ok := lookup(EnvSimSeed); ok && v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSimSeed, err)
		}
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

// LoadRules reads a YAML house-rules file. Keys left out keep their default.
func LoadRules(path string) (models.HouseRules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.HouseRules{}, err
	}
	return ParseRules(b)
}

// ParseRules decodes YAML house rules on top of models.DefaultHouseRules.
func ParseRules(b []byte) (models.HouseRules, error) {
	rules := models.DefaultHouseRules()
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return models.HouseRules{}, fmt.Errorf("parse house rules: %w", err)
	}
	return rules, nil
}

// Validate reports settings the simulator cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Games < 0:
		return fmt.Errorf("games must not be negative, got %d", c.Games)
	case c.Players < engine.MinPlayers || c.Players > engine.MaxPlayers:
		return fmt.Errorf("players must be between %d and %d, got %d", engine.MinPlayers, engine.MaxPlayers, c.Players)
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	case c.Rules.CardsPerPlayer < 0:
		return fmt.Errorf("cards per player must not be negative, got %d", c.Rules.CardsPerPlayer)
	case c.Rules.UnoPenalty < 0:
		return fmt.Errorf("uno penalty must not be negative, got %d", c.Rules.UnoPenalty)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger returns a logrus logger writing to out with the configured
// level and formatter.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
