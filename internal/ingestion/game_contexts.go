package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"nba-projection-lab/internal/domain"
)

// ErrInvalidGameContext is returned when a game context fails validation.
var ErrInvalidGameContext = errors.New("invalid game context")

// LoadGameContextsFile reads a JSON object mapping player id to an upcoming game.
func LoadGameContextsFile(path string) (map[string]domain.GameContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game contexts: %w", err)
	}
	defer f.Close()
	return LoadGameContexts(f)
}

// LoadGameContexts decodes and validates game contexts keyed by player id.
func LoadGameContexts(r io.Reader) (map[string]domain.GameContext, error) {
	var games map[string]domain.GameContext
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&games); err != nil {
		return nil, fmt.Errorf("decode game contexts: %w", err)
	}
	for id, g := range games {
		if err := validateGameContext(g); err != nil {
			return nil, fmt.Errorf("game context %s: %w", id, err)
		}
	}
	return games, nil
}

func validateGameContext(g domain.GameContext) error {
	switch g.DefenseTier {
	case domain.DefenseElite, domain.DefenseGood, domain.DefenseAverage, domain.DefensePoor:
	default:
		return fmt.Errorf("%w: defense tier %q", ErrInvalidGameContext, g.DefenseTier)
	}
	if g.Location != domain.LocationHome && g.Location != domain.LocationRoad {
		return fmt.Errorf("%w: location %q", ErrInvalidGameContext, g.Location)
	}
	switch g.DeathSpot {
	case domain.DeathSpotNone, domain.DeathSpotPartyB2B, domain.DeathSpotAltitudeB2B,
		domain.DeathSpotCrossCountryB2B, domain.DeathSpotPartyToAltitude, domain.DeathSpotCompound:
	default:
		return fmt.Errorf("%w: death spot pattern %q", ErrInvalidGameContext, g.DeathSpot)
	}
	if g.RestDays < 0 {
		return fmt.Errorf("%w: negative rest days", ErrInvalidGameContext)
	}
	return nil
}
