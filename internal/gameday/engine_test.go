package gameday

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-projection-lab/internal/domain"
)

type fakeTables struct {
	schedule  *domain.ScheduleEffect
	city      *domain.CityEffect
	deathSpot *domain.DeathSpotEffect
	matchup   *domain.MatchupAdjustment
}

func (f *fakeTables) ScheduleEffect(domain.BracketKey) (domain.ScheduleEffect, bool) {
	if f.schedule == nil {
		return domain.ScheduleEffect{}, false
	}
	return *f.schedule, true
}

func (f *fakeTables) CityEffect(domain.BracketKey) (domain.CityEffect, bool) {
	if f.city == nil {
		return domain.CityEffect{}, false
	}
	return *f.city, true
}

func (f *fakeTables) DeathSpotEffect(domain.BracketKey) (domain.DeathSpotEffect, bool) {
	if f.deathSpot == nil {
		return domain.DeathSpotEffect{}, false
	}
	return *f.deathSpot, true
}

func (f *fakeTables) Matchup(key domain.MatchupKey) (domain.MatchupAdjustment, bool) {
	if f.matchup == nil {
		return domain.NeutralMatchup(key), false
	}
	return *f.matchup, true
}

func playerWithGame(g domain.GameContext) (domain.PlayerContext, domain.SeasonProjection) {
	line := domain.StatLine{
		Minutes:             32,
		Points:              20,
		Rebounds:            10,
		Assists:             5,
		Steals:              1,
		Blocks:              1,
		Turnovers:           2,
		ThreesMade:          2,
		ThreesAttempted:     5,
		FieldGoalsMade:      8,
		FieldGoalsAttempted: 16,
		FreeThrowsMade:      2,
		FreeThrowsAttempted: 4,
	}
	ctx := domain.PlayerContext{
		PlayerID: "p1",
		Position: domain.PositionForward,
		Role:     domain.RoleStarter,
		Age:      28,
		Bracket:  domain.BracketPrime,
	}.WithGame(g)
	proj := domain.SeasonProjection{
		PlayerID:      "p1",
		PerGame:       line,
		FantasyPoints: domain.FantasyPoints(line),
	}
	return ctx, proj
}

func TestAdjustRequiresGame(t *testing.T) {
	_, proj := playerWithGame(domain.GameContext{})
	_, err := NewEngine(&fakeTables{}).Adjust(domain.PlayerContext{PlayerID: "p1"}, proj)
	assert.ErrorIs(t, err, ErrNoGame)
}

func TestAdjustNeutralWhenTablesMiss(t *testing.T) {
	ctx, proj := playerWithGame(domain.GameContext{
		IsBackToBack: true,
		PostAltitude: true,
		DeathSpot:    domain.DeathSpotAltitudeB2B,
		DefenseTier:  domain.DefenseElite,
		Location:     domain.LocationRoad,
	})

	got, err := NewEngine(&fakeTables{}).Adjust(ctx, proj)
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.ScheduleMultiplier)
	assert.Equal(t, 1.0, got.CityMultiplier)
	assert.Equal(t, 1.0, got.DeathSpotMultiplier)
	assert.Equal(t, 1.0, got.MatchupMultiplier)
	assert.Equal(t, 1.0, got.CompoundMultiplier)
	assert.Equal(t, proj.PerGame, got.Stats)
	assert.InDelta(t, 43.5, got.FantasyPoints, 1e-9)
}

func TestScheduleMultiplier(t *testing.T) {
	tables := &fakeTables{schedule: &domain.ScheduleEffect{B2BScoringDrop: -0.06, RestScoringBoost: 0.03}}
	e := NewEngine(tables)
	key := domain.BracketKey{}

	assert.InDelta(t, 0.94, e.scheduleMultiplier(key, domain.GameContext{IsBackToBack: true}), 1e-9)
	assert.InDelta(t, 1.03, e.scheduleMultiplier(key, domain.GameContext{RestDays: 3}), 1e-9)
	assert.InDelta(t, 1.0, e.scheduleMultiplier(key, domain.GameContext{RestDays: 2}), 1e-9)
}

func TestCityMultiplier(t *testing.T) {
	tables := &fakeTables{city: &domain.CityEffect{
		HotSpotScoringDrop:     -0.05,
		AltitudeB2BDrop:        -0.08,
		AltitudeOneDayRestDrop: -0.02,
	}}
	e := NewEngine(tables)
	key := domain.BracketKey{}

	assert.InDelta(t, 0.95, e.cityMultiplier(key, domain.GameContext{PostHotSpot: true}), 1e-9)
	assert.InDelta(t, 0.92, e.cityMultiplier(key, domain.GameContext{PostAltitude: true, IsBackToBack: true}), 1e-9)
	assert.InDelta(t, 0.98, e.cityMultiplier(key, domain.GameContext{PostAltitude: true}), 1e-9)
	assert.InDelta(t, 1.0, e.cityMultiplier(key, domain.GameContext{}), 1e-9)
}

func TestDeathSpotMultiplier(t *testing.T) {
	tables := &fakeTables{deathSpot: &domain.DeathSpotEffect{
		PartyB2BResidual:        -0.04,
		AltitudeB2BResidual:     -0.03,
		CrossCountryB2BResidual: -0.02,
		PartyToAltitudeResidual: -0.05,
		CompoundResidual:        -0.07,
	}}
	e := NewEngine(tables)
	key := domain.BracketKey{}

	tests := []struct {
		pattern domain.DeathSpotPattern
		want    float64
	}{
		{domain.DeathSpotNone, 1.0},
		{domain.DeathSpotPartyB2B, 0.96},
		{domain.DeathSpotAltitudeB2B, 0.97},
		{domain.DeathSpotCrossCountryB2B, 0.98},
		{domain.DeathSpotPartyToAltitude, 0.95},
		{domain.DeathSpotCompound, 0.93},
		{domain.DeathSpotPattern("mystery"), 1.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			assert.InDelta(t, tt.want, e.deathSpotMultiplier(key, domain.GameContext{DeathSpot: tt.pattern}), 1e-9)
		})
	}
}

func TestAdjustAppliesMatchupPerStat(t *testing.T) {
	matchup := domain.NeutralMatchup(domain.MatchupKey{})
	matchup.Points = 1.10
	matchup.Threes = 0.80
	matchup.FantasyPoints = 1.05
	tables := &fakeTables{
		schedule: &domain.ScheduleEffect{B2BScoringDrop: -0.10},
		matchup:  &matchup,
	}
	ctx, proj := playerWithGame(domain.GameContext{IsBackToBack: true, DefenseTier: domain.DefensePoor, Location: domain.LocationHome})

	got, err := NewEngine(tables).Adjust(ctx, proj)
	require.NoError(t, err)

	assert.InDelta(t, 0.9*1.10, got.StatMultipliers.Points, 1e-9)
	assert.InDelta(t, 0.9*0.80, got.StatMultipliers.ThreesMade, 1e-9)
	assert.InDelta(t, 0.9*0.80, got.StatMultipliers.ThreesAttempted, 1e-9)
	assert.InDelta(t, 0.9, got.StatMultipliers.Minutes, 1e-9)
	assert.InDelta(t, 0.9, got.StatMultipliers.Turnovers, 1e-9)
	assert.InDelta(t, 0.9*1.05, got.CompoundMultiplier, 1e-9)

	assert.InDelta(t, 20*0.99, got.Stats.Points, 1e-9)
	assert.InDelta(t, 28.8, got.Stats.Minutes, 1e-9)
	assert.InDelta(t, domain.FantasyPoints(got.Stats), got.FantasyPoints, 1e-9)
	assert.InDelta(t, 0.4, got.ThreePointPct, 1e-9)
}

func TestAdjustClampsCompound(t *testing.T) {
	matchup := domain.NeutralMatchup(domain.MatchupKey{})
	matchup.Points = 3.0
	matchup.Rebounds = 0.1
	matchup.FantasyPoints = 2.5
	ctx, proj := playerWithGame(domain.GameContext{})

	got, err := NewEngine(&fakeTables{matchup: &matchup}).Adjust(ctx, proj)
	require.NoError(t, err)

	assert.Equal(t, MaxMultiplier, got.StatMultipliers.Points)
	assert.Equal(t, MinMultiplier, got.StatMultipliers.Rebounds)
	assert.Equal(t, MaxMultiplier, got.CompoundMultiplier)
}

func TestAdjustComponentMultipliersUnclamped(t *testing.T) {
	tables := &fakeTables{
		schedule: &domain.ScheduleEffect{B2BScoringDrop: -0.7},
		city:     &domain.CityEffect{HotSpotScoringDrop: 0.8},
	}
	ctx, proj := playerWithGame(domain.GameContext{IsBackToBack: true, PostHotSpot: true})

	got, err := NewEngine(tables).Adjust(ctx, proj)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, got.ScheduleMultiplier, 1e-9)
	assert.InDelta(t, 1.8, got.CityMultiplier, 1e-9)
	assert.InDelta(t, 0.54, got.CompoundMultiplier, 1e-9)

	tables.schedule.B2BScoringDrop = -0.9
	got, err = NewEngine(tables).Adjust(ctx, proj)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, got.ScheduleMultiplier, 1e-9)
	assert.Equal(t, MinMultiplier, got.CompoundMultiplier)
	assert.Equal(t, MinMultiplier, got.StatMultipliers.Points)
}

func TestAdjustMultipliersAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	patterns := []domain.DeathSpotPattern{
		domain.DeathSpotNone, domain.DeathSpotPartyB2B, domain.DeathSpotAltitudeB2B,
		domain.DeathSpotCrossCountryB2B, domain.DeathSpotPartyToAltitude, domain.DeathSpotCompound,
	}
	delta := func() float64 { return rng.Float64()*1.6 - 0.8 }

	for i := 0; i < 500; i++ {
		matchup := domain.NeutralMatchup(domain.MatchupKey{})
		matchup.Points = rng.Float64() * 3
		matchup.Rebounds = rng.Float64() * 3
		matchup.Assists = rng.Float64() * 3
		matchup.Steals = rng.Float64() * 3
		matchup.Blocks = rng.Float64() * 3
		matchup.Threes = rng.Float64() * 3
		matchup.FantasyPoints = rng.Float64() * 3
		tables := &fakeTables{
			schedule:  &domain.ScheduleEffect{B2BScoringDrop: delta(), RestScoringBoost: delta()},
			city:      &domain.CityEffect{HotSpotScoringDrop: delta(), AltitudeB2BDrop: delta(), AltitudeOneDayRestDrop: delta()},
			deathSpot: &domain.DeathSpotEffect{PartyB2BResidual: delta(), AltitudeB2BResidual: delta(), CrossCountryB2BResidual: delta(), PartyToAltitudeResidual: delta(), CompoundResidual: delta()},
			matchup:   &matchup,
		}
		ctx, proj := playerWithGame(domain.GameContext{
			IsBackToBack: rng.Intn(2) == 0,
			RestDays:     rng.Intn(5),
			PostHotSpot:  rng.Intn(2) == 0,
			PostAltitude: rng.Intn(2) == 0,
			DeathSpot:    patterns[rng.Intn(len(patterns))],
		})

		got, err := NewEngine(tables).Adjust(ctx, proj)
		require.NoError(t, err)

		require.GreaterOrEqual(t, got.CompoundMultiplier, MinMultiplier)
		require.LessOrEqual(t, got.CompoundMultiplier, MaxMultiplier)
		for _, s := range domain.AllStats {
			m := got.StatMultipliers.Get(s)
			require.GreaterOrEqual(t, m, MinMultiplier)
			require.LessOrEqual(t, m, MaxMultiplier)
		}
	}
}
