// Package projection turns a PlayerContext into a season-long projection.
package projection

import (
	"math"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/metrics"
)

// Model constants.
const (
	// AgeBlend is the weight kept on the player's own baseline.
	AgeBlend = 0.70
	// DurabilityBlend is the weight kept on the player's recent games played.
	DurabilityBlend = 0.60
	// DefaultGamesPlayed stands in when no season history exists.
	DefaultGamesPlayed = 65.0
	// MaxGames is the length of a regular season.
	MaxGames = 82.0

	CeilingFallbackFactor = 1.3
	FloorStddevs          = 1.5
	FallbackStddevFactor  = 0.3
	MinCeilingGap         = 5.0

	FallbackProfileCV  = 0.5
	NeutralConsistency = 50
)

// Tables is the subset of the static store the projector reads.
type Tables interface {
	AgeProfile(era string, age int, pos domain.Position, role domain.Role) (domain.AgeProfile, bool)
	CeilingProfile(key domain.BracketKey) (domain.CeilingProfile, bool)
	DurabilityProfile(key domain.BracketKey) (domain.DurabilityProfile, bool)
	UsageProfile(key domain.BracketKey) (domain.UsageProfile, bool)
}

// Projector runs the season projection chain. Safe for concurrent use.
type Projector struct {
	tables Tables
	era    string
}

// NewProjector creates a projector reading age profiles from era.
func NewProjector(tables Tables, era string) *Projector {
	return &Projector{tables: tables, era: era}
}

// Project deterministically derives a SeasonProjection. Any lookup miss
// degrades to passing the unadjusted value through.
func (p *Projector) Project(ctx domain.PlayerContext) domain.SeasonProjection {
	key := domain.BracketKey{Bracket: ctx.Bracket, Position: ctx.Position, Role: ctx.Role}

	line := ctx.Baseline
	profile, hasProfile := p.tables.AgeProfile(p.era, ctx.Age, ctx.Position, ctx.Role)
	if hasProfile {
		line = AgeAdjust(line, profile)
	}

	if band, ok := p.tables.UsageProfile(key); ok {
		line = NormalizeUsage(line, band)
	}

	games := p.projectGames(ctx, key)

	fp := domain.FantasyPoints(line)
	std := fantasyStddev(ctx, fp)

	ceiling := CeilingFallbackFactor * fp
	if c, ok := p.tables.CeilingProfile(key); ok {
		ceiling = c.AvgCeilingFantasyPts
	}
	floor, ceiling := FloorAndCeiling(fp, std, ceiling)

	profileCV := FallbackProfileCV
	if hasProfile {
		if cv, ok := metrics.CoefficientOfVariation(profile.FantasyPoints.Std, profile.FantasyPoints.Mean); ok && cv > 0 {
			profileCV = cv
		}
	}

	fg, three, ft := domain.ShootingPercentages(line)

	return domain.SeasonProjection{
		PlayerID:       ctx.PlayerID,
		Name:           ctx.Name,
		Team:           ctx.Team,
		Position:       ctx.Position,
		Role:           ctx.Role,
		Age:            ctx.Age,
		Bracket:        ctx.Bracket,
		PerGame:        line,
		FieldGoalPct:   fg,
		ThreePointPct:  three,
		FreeThrowPct:   ft,
		FantasyPoints:  fp,
		GamesProjected: games,
		Totals:         line.Scale(float64(games)),
		FantasyTotal:   fp * float64(games),
		Ceiling:        ceiling,
		Floor:          floor,
		Consistency:    Consistency(fp, std, profileCV),
	}
}

// AgeAdjust blends each stat the profile covers 70/30 toward the profile mean.
func AgeAdjust(line domain.StatLine, profile domain.AgeProfile) domain.StatLine {
	out := line
	for _, s := range domain.AllStats {
		if mean, ok := profile.Mean(s); ok {
			out.Set(s, AgeBlend*line.Get(s)+(1-AgeBlend)*mean)
		}
	}
	return out
}

// NormalizeUsage nudges minutes halfway toward the nearer edge of the
// profile's 10th-90th percentile band when outside it, scaling every other
// stat by the same ratio so per-minute production is preserved.
func NormalizeUsage(line domain.StatLine, band domain.UsageProfile) domain.StatLine {
	m := line.Minutes
	target := m
	switch {
	case m < band.MinutesP10:
		target = m + (band.MinutesP10-m)/2
	case m > band.MinutesP90:
		target = m - (m-band.MinutesP90)/2
	}
	if target == m {
		return line
	}
	if m <= 0 {
		out := line
		out.Minutes = target
		return out
	}
	out := line.Scale(target / m)
	out.Minutes = target
	return out
}

func (p *Projector) projectGames(ctx domain.PlayerContext, key domain.BracketKey) int {
	recent := DefaultGamesPlayed
	if len(ctx.GamesBySeason) > 0 {
		counts := make([]float64, 0, len(ctx.GamesBySeason))
		for _, g := range ctx.GamesBySeason {
			counts = append(counts, float64(g))
		}
		recent = metrics.Mean(counts)
	}

	games := recent
	if d, ok := p.tables.DurabilityProfile(key); ok {
		games = DurabilityBlend*recent + (1-DurabilityBlend)*d.AvgGamesPlayed
	}
	return int(math.Round(metrics.Clamp(games, 0, MaxGames)))
}

// fantasyStddev is the recent-season fantasy stddev, or 30% of the projection
// when the recent season had too few games to estimate it.
func fantasyStddev(ctx domain.PlayerContext, fp float64) float64 {
	if ctx.HasVariance {
		return math.Sqrt(math.Max(ctx.FantasyVariance, 0))
	}
	return math.Abs(FallbackStddevFactor * fp)
}

// FloorAndCeiling applies the floor formula and guarantees floor >= 0 and
// ceiling > floor.
func FloorAndCeiling(fp, std, ceiling float64) (floor, ceil float64) {
	floor = math.Max(fp-FloorStddevs*std, 0)
	if ceiling <= floor {
		ceiling = floor + MinCeilingGap
	}
	return floor, ceiling
}

// Consistency scores stability relative to the bucket: round(100 - 50*CV/profileCV)
// clamped to [0, 100]; 50 when fantasy points are not positive.
func Consistency(fp, std, profileCV float64) int {
	if fp <= 0 {
		return NeutralConsistency
	}
	if profileCV <= 0 {
		profileCV = FallbackProfileCV
	}
	ratio := (std / fp) / profileCV
	score := math.Round(100 - ratio*50)
	return int(metrics.Clamp(score, 0, 100))
}
