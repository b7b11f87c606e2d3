package config

import (
	"connect4/game"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Rows        int
	Cols        int
	Connect     int
	Depth       int // Minimax plies
	Simulations int // Monte-Carlo playouts per column
	Episodes    int // UCT iterations per move
	Goroutines  int
	Seed        uint64 // 0 seeds from the clock
	Games       int    // Per matchup
	OutputDir   string // Experiment CSVs are skipped when empty
	LogLevel    string
}

// Load reads the configuration from the environment. Values from a .env
// file in the working directory are used when the variable is not already
// set; a missing file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	return &Config{
		Rows:        GetEnvAsInt("C4_ROWS", game.DefaultRows),
		Cols:        GetEnvAsInt("C4_COLS", game.DefaultCols),
		Connect:     GetEnvAsInt("C4_CONNECT", game.DefaultConnect),
		Depth:       GetEnvAsInt("C4_DEPTH", 3),
		Simulations: GetEnvAsInt("C4_SIMULATIONS", 50),
		Episodes:    GetEnvAsInt("C4_EPISODES", 1000),
		Goroutines:  GetEnvAsInt("C4_GOROUTINES", 1),
		Seed:        GetEnvAsUint64("C4_SEED", 0),
		Games:       GetEnvAsInt("C4_GAMES", 10),
		OutputDir:   GetEnv("C4_OUTPUT_DIR", ""),
		LogLevel:    GetEnv("C4_LOG_LEVEL", "info"),
	}
}

// Validate rejects values the board and searchers cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Rows > game.MaxRows:
		return errors.Errorf("rows must be in [1, %d], got %d", game.MaxRows, c.Rows)
	case c.Cols < 1 || c.Cols > game.MaxCols:
		return errors.Errorf("cols must be in [1, %d], got %d", game.MaxCols, c.Cols)
	case c.Connect < 1 || (c.Connect > c.Rows && c.Connect > c.Cols):
		return errors.Errorf("connect must be in [1, %d], got %d", max(c.Rows, c.Cols), c.Connect)
	case c.Depth < 1:
		return errors.Errorf("depth must be positive, got %d", c.Depth)
	case c.Simulations < 1:
		return errors.Errorf("simulations must be positive, got %d", c.Simulations)
	case c.Episodes < 1:
		return errors.Errorf("episodes must be positive, got %d", c.Episodes)
	case c.Goroutines < 1:
		return errors.Errorf("goroutines must be positive, got %d", c.Goroutines)
	case c.Games < 1:
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

// Board returns an empty board with the configured shape.
func (c *Config) Board() game.Board {
	return game.NewBoardWithConnect(c.Rows, c.Cols, c.Connect)
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Uint64("default", defaultValue).Msg("invalid unsigned value, using default")
		return defaultValue
	}
	return value
}
