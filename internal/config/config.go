// Package config loads run configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"nba-projection-lab/internal/auction"
	"nba-projection-lab/internal/lookup"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full run configuration. Command-line flags use these values
// as their defaults.
type Config struct {
	PostgresDSN   string `env:"POSTGRES_DSN"`
	ClickhouseDSN string `env:"CLICKHOUSE_DSN"`
	UseMemory     bool   `env:"USE_MEMORY"`

	TablesPath       string `env:"TABLES_PATH"`
	GameLogsPath     string `env:"GAMELOGS_PATH"`
	GameContextsPath string `env:"GAME_CONTEXTS_PATH"`
	CurrentSeason    int    `env:"CURRENT_SEASON"`
	AgeEra           string `env:"AGE_ERA" envDefault:"modern"`
	Workers          int    `env:"WORKERS" envDefault:"4"`

	LeagueSize int `env:"LEAGUE_SIZE" envDefault:"12"`
	RosterSize int `env:"ROSTER_SIZE" envDefault:"13"`
	TeamBudget int `env:"TEAM_BUDGET" envDefault:"200"`
	MinPrice   int `env:"MIN_PRICE" envDefault:"1"`
	MaxPrice   int `env:"MAX_PRICE" envDefault:"70"`

	OutputDir   string `env:"OUTPUT_DIR" envDefault:"output"`
	WriteReport bool   `env:"WRITE_REPORT" envDefault:"true"`
	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values no run can use.
func (c Config) Validate() error {
	var errs []error
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("WORKERS must be positive, got %d", c.Workers))
	}
	if c.LeagueSize <= 0 || c.RosterSize <= 0 || c.TeamBudget <= 0 {
		errs = append(errs, fmt.Errorf("league size, roster size and team budget must be positive"))
	}
	if c.MinPrice < 0 || c.MinPrice > c.MaxPrice {
		errs = append(errs, fmt.Errorf("price bounds [%d, %d] are invalid", c.MinPrice, c.MaxPrice))
	}
	if !validEra(c.AgeEra) {
		errs = append(errs, fmt.Errorf("unknown AGE_ERA %q", c.AgeEra))
	}
	if !c.UseMemory && c.PostgresDSN == "" && c.GameLogsPath == "" {
		errs = append(errs, fmt.Errorf("one of POSTGRES_DSN, GAMELOGS_PATH or USE_MEMORY is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Auction returns the league economics for the pricing engine.
func (c Config) Auction() auction.Config {
	return auction.Config{
		LeagueSize: c.LeagueSize,
		RosterSize: c.RosterSize,
		TeamBudget: c.TeamBudget,
		MinPrice:   c.MinPrice,
		MaxPrice:   c.MaxPrice,
	}
}

func validEra(era string) bool {
	for _, e := range lookup.Eras {
		if e == era {
			return true
		}
	}
	return false
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
