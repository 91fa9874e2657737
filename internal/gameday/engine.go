// Package gameday layers single-game context onto a season projection.
package gameday

import (
	"errors"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/metrics"
)

// Bounds applied to every compound multiplier.
const (
	MinMultiplier = 0.50
	MaxMultiplier = 1.50
	// RestBoostDays is the rest threshold for the rest scoring boost.
	RestBoostDays = 3
)

// ErrNoGame is returned when the player context carries no game.
var ErrNoGame = errors.New("player context has no game")

// Tables is the subset of the static store the engine reads.
type Tables interface {
	ScheduleEffect(key domain.BracketKey) (domain.ScheduleEffect, bool)
	CityEffect(key domain.BracketKey) (domain.CityEffect, bool)
	DeathSpotEffect(key domain.BracketKey) (domain.DeathSpotEffect, bool)
	Matchup(key domain.MatchupKey) (domain.MatchupAdjustment, bool)
}

// Engine computes GameDayProjections. Safe for concurrent use.
type Engine struct {
	tables Tables
}

// NewEngine creates an engine over tables.
func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// Adjust projects one game for the player described by ctx.Game.
func (e *Engine) Adjust(ctx domain.PlayerContext, proj domain.SeasonProjection) (domain.GameDayProjection, error) {
	if ctx.Game == nil {
		return domain.GameDayProjection{}, ErrNoGame
	}
	g := *ctx.Game
	key := domain.BracketKey{Bracket: ctx.Bracket, Position: ctx.Position, Role: ctx.Role}

	schedule := e.scheduleMultiplier(key, g)
	city := e.cityMultiplier(key, g)
	death := e.deathSpotMultiplier(key, g)
	matchup, _ := e.tables.Matchup(domain.MatchupKey{
		Bracket:     ctx.Bracket,
		Position:    ctx.Position,
		Role:        ctx.Role,
		DefenseTier: g.DefenseTier,
		Location:    g.Location,
	})

	base := schedule * city * death

	var mults, stats domain.StatLine
	for _, s := range domain.AllStats {
		m := base
		if mm, ok := matchup.ForStat(s); ok {
			m = base * mm
		}
		m = clamp(m)
		mults.Set(s, m)
		stats.Set(s, proj.PerGame.Get(s)*m)
	}

	fg, three, ft := domain.ShootingPercentages(stats)

	return domain.GameDayProjection{
		PlayerID:            ctx.PlayerID,
		Opponent:            g.Opponent,
		Location:            g.Location,
		Stats:               stats,
		FieldGoalPct:        fg,
		ThreePointPct:       three,
		FreeThrowPct:        ft,
		FantasyPoints:       domain.FantasyPoints(stats),
		StatMultipliers:     mults,
		ScheduleMultiplier:  schedule,
		CityMultiplier:      city,
		DeathSpotMultiplier: death,
		MatchupMultiplier:   matchup.FantasyPoints,
		CompoundMultiplier:  clamp(base * matchup.FantasyPoints),
	}, nil
}

func (e *Engine) scheduleMultiplier(key domain.BracketKey, g domain.GameContext) float64 {
	eff, ok := e.tables.ScheduleEffect(key)
	if !ok {
		return 1
	}
	switch {
	case g.IsBackToBack:
		return 1 + eff.B2BScoringDrop
	case g.RestDays >= RestBoostDays:
		return 1 + eff.RestScoringBoost
	}
	return 1
}

// cityMultiplier compounds the hot-spot and altitude effects when both flags are set.
func (e *Engine) cityMultiplier(key domain.BracketKey, g domain.GameContext) float64 {
	if !g.PostHotSpot && !g.PostAltitude {
		return 1
	}
	eff, ok := e.tables.CityEffect(key)
	if !ok {
		return 1
	}
	m := 1.0
	if g.PostHotSpot {
		m *= 1 + eff.HotSpotScoringDrop
	}
	if g.PostAltitude {
		if g.IsBackToBack {
			m *= 1 + eff.AltitudeB2BDrop
		} else {
			m *= 1 + eff.AltitudeOneDayRestDrop
		}
	}
	return m
}

func (e *Engine) deathSpotMultiplier(key domain.BracketKey, g domain.GameContext) float64 {
	if g.DeathSpot == domain.DeathSpotNone {
		return 1
	}
	eff, ok := e.tables.DeathSpotEffect(key)
	if !ok {
		return 1
	}
	r, ok := eff.Residual(g.DeathSpot)
	if !ok {
		return 1
	}
	return 1 + r
}

func clamp(m float64) float64 {
	return metrics.Clamp(m, MinMultiplier, MaxMultiplier)
}
