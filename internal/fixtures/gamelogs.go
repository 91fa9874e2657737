package fixtures

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// Options shapes a synthetic league.
type Options struct {
	Players       int
	CurrentSeason int
	Seasons       int // seasons of history, including the current one
	Seed          uint64
}

// DefaultOptions is a league large enough to fill a 12-team auction pool.
func DefaultOptions() Options {
	return Options{Players: 220, CurrentSeason: 2025, Seasons: 3, Seed: 42}
}

var teams = []string{
	"ATL", "BOS", "BKN", "CHA", "CHI", "CLE", "DAL", "DEN", "DET", "GSW",
	"HOU", "IND", "LAC", "LAL", "MEM", "MIA", "MIL", "MIN", "NOP", "NYK",
	"OKC", "ORL", "PHI", "PHX", "POR", "SAC", "SAS", "TOR", "UTA", "WAS",
}

var rawPositions = map[domain.Position][]string{
	domain.PositionGuard:   {"PG", "SG", "G", "G-F"},
	domain.PositionForward: {"SF", "PF", "F", "F-C"},
	domain.PositionCenter:  {"C", "C-F"},
}

// PlayerID returns the synthetic id of player i.
func PlayerID(i int) string {
	return fmt.Sprintf("p%04d", i)
}

// GameLogs generates a deterministic league history. Every 17th player
// appears in fewer than ten current-season games and is skipped by the
// baseline builder.
func GameLogs(opts Options) []*domain.GameLog {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	seasons := max(opts.Seasons, 1)

	var logs []*domain.GameLog
	for i := 0; i < opts.Players; i++ {
		pos := domain.AllPositions[i%len(domain.AllPositions)]
		raws := rawPositions[pos]
		raw := raws[rng.IntN(len(raws))]
		team := teams[rng.IntN(len(teams))]
		ageNow := 20 + rng.IntN(17)
		minutes := 6 + 30*math.Sqrt(rng.Float64())
		skill := 0.8 + 0.4*rng.Float64()

		for k := seasons - 1; k >= 0; k-- {
			season := opts.CurrentSeason - k
			age := ageNow - k
			if age < 19 {
				continue
			}
			games := 30 + rng.IntN(53)
			if k == 0 && i%17 == 16 {
				games = 5
			}
			start := time.Date(season-1, time.October, 22, 0, 0, 0, 0, time.UTC)
			mean := expectedLine(pos, minutes, age).Scale(skill)
			mean.Minutes = minutes

			for g := 0; g < games; g++ {
				logs = append(logs, gameLog(rng, i, raw, team, age, season, start.AddDate(0, 0, 2*g), mean))
			}
		}
	}
	return logs
}

func gameLog(rng *rand.Rand, i int, raw, team string, age, season int, date time.Time, mean domain.StatLine) *domain.GameLog {
	noisy := func(v float64) float64 {
		return math.Max(v*(1+0.3*rng.NormFloat64()), 0)
	}
	line := domain.StatLine{
		Minutes:         noisy(mean.Minutes),
		Points:          noisy(mean.Points),
		Rebounds:        noisy(mean.Rebounds),
		Assists:         noisy(mean.Assists),
		Steals:          noisy(mean.Steals),
		Blocks:          noisy(mean.Blocks),
		Turnovers:       noisy(mean.Turnovers),
		ThreesAttempted: noisy(mean.ThreesAttempted),
	}
	line.ThreesMade = math.Min(noisy(mean.ThreesMade), line.ThreesAttempted)
	fillShooting(&line)

	return &domain.GameLog{
		PlayerID:            PlayerID(i),
		PlayerName:          fmt.Sprintf("Player %04d", i),
		Team:                team,
		Position:            raw,
		Age:                 age,
		GameDate:            date,
		Season:              season,
		Home:                rng.IntN(2) == 0,
		Opponent:            teams[rng.IntN(len(teams))],
		Minutes:             line.Minutes,
		Points:              line.Points,
		Rebounds:            line.Rebounds,
		Assists:             line.Assists,
		Steals:              line.Steals,
		Blocks:              line.Blocks,
		Turnovers:           line.Turnovers,
		ThreesMade:          line.ThreesMade,
		ThreesAttempted:     line.ThreesAttempted,
		FieldGoalsMade:      line.FieldGoalsMade,
		FieldGoalsAttempted: line.FieldGoalsAttempted,
		FreeThrowsMade:      line.FreeThrowsMade,
		FreeThrowsAttempted: line.FreeThrowsAttempted,
	}
}

// GameContexts returns an upcoming game for every fifth player, cycling
// through the schedule and travel patterns.
func GameContexts(opts Options) map[string]domain.GameContext {
	tiers := []domain.DefenseTier{domain.DefenseElite, domain.DefenseGood, domain.DefenseAverage, domain.DefensePoor}
	patterns := []domain.DeathSpotPattern{
		domain.DeathSpotNone,
		domain.DeathSpotPartyB2B,
		domain.DeathSpotAltitudeB2B,
		domain.DeathSpotCrossCountryB2B,
		domain.DeathSpotPartyToAltitude,
		domain.DeathSpotCompound,
	}

	out := make(map[string]domain.GameContext)
	for i := 0; i < opts.Players; i += 5 {
		n := i / 5
		g := domain.GameContext{
			IsBackToBack: n%3 == 0,
			RestDays:     n % 4,
			Opponent:     teams[n%len(teams)],
			DefenseTier:  tiers[n%len(tiers)],
			Location:     domain.LocationHome,
			PostHotSpot:  n%5 == 1,
			PostAltitude: n%7 == 2,
		}
		if n%2 == 1 {
			g.Location = domain.LocationRoad
		}
		if g.IsBackToBack {
			g.RestDays = 0
			g.DeathSpot = patterns[n%len(patterns)]
		}
		out[PlayerID(i)] = g
	}
	return out
}

// Load stores a synthetic league in store.
func Load(ctx context.Context, store storage.GameLogStore, opts Options) (int, error) {
	logs := GameLogs(opts)
	if err := store.InsertBulk(ctx, logs); err != nil {
		return 0, fmt.Errorf("load fixtures: %w", err)
	}
	return len(logs), nil
}
