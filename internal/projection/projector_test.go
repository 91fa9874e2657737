package projection

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-projection-lab/internal/domain"
)

type fakeTables struct {
	age        map[int]domain.AgeProfile
	ceiling    map[domain.BracketKey]domain.CeilingProfile
	durability map[domain.BracketKey]domain.DurabilityProfile
	usage      map[domain.BracketKey]domain.UsageProfile
}

func (f *fakeTables) AgeProfile(_ string, age int, _ domain.Position, _ domain.Role) (domain.AgeProfile, bool) {
	p, ok := f.age[age]
	return p, ok
}

func (f *fakeTables) CeilingProfile(k domain.BracketKey) (domain.CeilingProfile, bool) {
	p, ok := f.ceiling[k]
	return p, ok
}

func (f *fakeTables) DurabilityProfile(k domain.BracketKey) (domain.DurabilityProfile, bool) {
	p, ok := f.durability[k]
	return p, ok
}

func (f *fakeTables) UsageProfile(k domain.BracketKey) (domain.UsageProfile, bool) {
	p, ok := f.usage[k]
	return p, ok
}

func starterContext() domain.PlayerContext {
	return domain.PlayerContext{
		PlayerID: "p1",
		Name:     "Test Player",
		Position: domain.PositionGuard,
		Role:     domain.RoleStarter,
		Age:      27,
		Bracket:  domain.BracketPrime,
		Baseline: domain.StatLine{
			Minutes:             34,
			Points:              30,
			Rebounds:            5,
			Assists:             6,
			Steals:              1,
			Blocks:              0.5,
			Turnovers:           3,
			ThreesMade:          3,
			ThreesAttempted:     8,
			FieldGoalsMade:      10,
			FieldGoalsAttempted: 20,
			FreeThrowsMade:      7,
			FreeThrowsAttempted: 8,
		},
		GamesBySeason: map[int]int{2024: 70, 2023: 60},
	}
}

func primeGuardStarter() domain.BracketKey {
	return domain.BracketKey{Bracket: domain.BracketPrime, Position: domain.PositionGuard, Role: domain.RoleStarter}
}

func TestAgeAdjustBlendsTowardProfile(t *testing.T) {
	profile := domain.AgeProfile{
		Stats: map[string]domain.StatSummary{"points": {Mean: 18, Std: 6}},
	}

	out := AgeAdjust(domain.StatLine{Points: 30, Rebounds: 5}, profile)

	assert.InDelta(t, 26.4, out.Points, 1e-9)
	assert.InDelta(t, 5.0, out.Rebounds, 1e-9, "stats missing from profile pass through")
}

func TestNormalizeUsage(t *testing.T) {
	band := domain.UsageProfile{MinutesP10: 20, MinutesP90: 30}

	t.Run("inside band unchanged", func(t *testing.T) {
		in := domain.StatLine{Minutes: 25, Points: 10}
		assert.Equal(t, in, NormalizeUsage(in, band))
	})

	t.Run("above band nudged halfway down", func(t *testing.T) {
		out := NormalizeUsage(domain.StatLine{Minutes: 40, Points: 20}, band)
		assert.InDelta(t, 35.0, out.Minutes, 1e-9)
		assert.InDelta(t, 17.5, out.Points, 1e-9)
	})

	t.Run("below band nudged halfway up", func(t *testing.T) {
		out := NormalizeUsage(domain.StatLine{Minutes: 10, Points: 4}, band)
		assert.InDelta(t, 15.0, out.Minutes, 1e-9)
		assert.InDelta(t, 6.0, out.Points, 1e-9)
	})

	t.Run("zero minutes only moves minutes", func(t *testing.T) {
		out := NormalizeUsage(domain.StatLine{Minutes: 0, Points: 1}, band)
		assert.InDelta(t, 10.0, out.Minutes, 1e-9)
		assert.InDelta(t, 1.0, out.Points, 1e-9)
	})
}

func TestProjectPassesThroughOnEmptyTables(t *testing.T) {
	ctx := starterContext()
	proj := NewProjector(&fakeTables{}, "modern").Project(ctx)

	assert.Equal(t, ctx.Baseline, proj.PerGame)
	assert.Equal(t, 65, proj.GamesProjected)
	assert.InDelta(t, domain.FantasyPoints(ctx.Baseline), proj.FantasyPoints, 1e-9)
	assert.InDelta(t, 1.3*proj.FantasyPoints, proj.Ceiling, 1e-9)
	assert.InDelta(t, proj.FantasyPoints*float64(proj.GamesProjected), proj.FantasyTotal, 1e-9)
	assert.InDelta(t, 0.5, proj.FieldGoalPct, 1e-9)
	assert.InDelta(t, 0.375, proj.ThreePointPct, 1e-9)
	assert.InDelta(t, 0.875, proj.FreeThrowPct, 1e-9)
}

func TestProjectAppliesAgeProfile(t *testing.T) {
	tables := &fakeTables{age: map[int]domain.AgeProfile{
		27: {Stats: map[string]domain.StatSummary{"points": {Mean: 18}}},
	}}

	proj := NewProjector(tables, "modern").Project(starterContext())

	assert.InDelta(t, 26.4, proj.PerGame.Points, 1e-9)
}

func TestProjectDurabilityBlend(t *testing.T) {
	tables := &fakeTables{durability: map[domain.BracketKey]domain.DurabilityProfile{
		primeGuardStarter(): {AvgGamesPlayed: 75},
	}}

	proj := NewProjector(tables, "modern").Project(starterContext())

	// 0.6*65 + 0.4*75
	assert.Equal(t, 69, proj.GamesProjected)
}

func TestProjectGamesClamped(t *testing.T) {
	tables := &fakeTables{durability: map[domain.BracketKey]domain.DurabilityProfile{
		primeGuardStarter(): {AvgGamesPlayed: 200},
	}}
	ctx := starterContext()
	ctx.GamesBySeason = map[int]int{2024: 82}

	proj := NewProjector(tables, "modern").Project(ctx)

	assert.Equal(t, 82, proj.GamesProjected)
}

func TestProjectUsesCeilingProfile(t *testing.T) {
	tables := &fakeTables{ceiling: map[domain.BracketKey]domain.CeilingProfile{
		primeGuardStarter(): {AvgCeilingFantasyPts: 80},
	}}

	proj := NewProjector(tables, "modern").Project(starterContext())

	assert.InDelta(t, 80.0, proj.Ceiling, 1e-9)
}

func TestFloorAndCeiling(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		floor, ceiling := FloorAndCeiling(40, 8, 52)
		assert.InDelta(t, 28.0, floor, 1e-9)
		assert.InDelta(t, 52.0, ceiling, 1e-9)
	})

	t.Run("ceiling forced above floor", func(t *testing.T) {
		floor, ceiling := FloorAndCeiling(40, 2, 30)
		assert.InDelta(t, 37.0, floor, 1e-9)
		assert.InDelta(t, 42.0, ceiling, 1e-9)
	})

	t.Run("floor clamped at zero", func(t *testing.T) {
		floor, ceiling := FloorAndCeiling(5, 10, -2)
		assert.Zero(t, floor)
		assert.InDelta(t, 5.0, ceiling, 1e-9)
	})
}

func TestConsistency(t *testing.T) {
	// CV 0.25 against profile CV 0.5 -> 100 - 25
	assert.Equal(t, 75, Consistency(40, 10, 0.5))
	assert.Equal(t, 0, Consistency(10, 30, 0.5))
	assert.Equal(t, 100, Consistency(40, 0, 0.5))
	assert.Equal(t, NeutralConsistency, Consistency(0, 5, 0.5))
	assert.Equal(t, NeutralConsistency, Consistency(-3, 5, 0.5))
}

func TestProjectConsistencyUsesProfileCV(t *testing.T) {
	tables := &fakeTables{age: map[int]domain.AgeProfile{
		27: {FantasyPoints: domain.StatSummary{Mean: 40, Std: 12}},
	}}
	ctx := starterContext()
	ctx.HasVariance = true
	fp := domain.FantasyPoints(ctx.Baseline)
	ctx.FantasyVariance = math.Pow(0.15*fp, 2)

	proj := NewProjector(tables, "modern").Project(ctx)

	// player CV 0.15 vs profile CV 0.3 -> 100 - 25
	assert.Equal(t, 75, proj.Consistency)
}

func TestProjectInvariantsHoldOnRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tables := &fakeTables{
		age: map[int]domain.AgeProfile{},
		ceiling: map[domain.BracketKey]domain.CeilingProfile{
			primeGuardStarter(): {AvgCeilingFantasyPts: 10},
		},
		usage: map[domain.BracketKey]domain.UsageProfile{
			primeGuardStarter(): {MinutesP10: 24, MinutesP90: 36},
		},
	}
	p := NewProjector(tables, "modern")

	for i := 0; i < 500; i++ {
		ctx := starterContext()
		for _, s := range domain.AllStats {
			ctx.Baseline.Set(s, rng.Float64()*30)
		}
		ctx.HasVariance = rng.Intn(2) == 0
		ctx.FantasyVariance = rng.Float64() * 400

		proj := p.Project(ctx)

		require.GreaterOrEqual(t, proj.Floor, 0.0)
		require.Greater(t, proj.Ceiling, proj.Floor)
		require.GreaterOrEqual(t, proj.Consistency, 0)
		require.LessOrEqual(t, proj.Consistency, 100)
		require.GreaterOrEqual(t, proj.GamesProjected, 0)
		require.LessOrEqual(t, proj.GamesProjected, 82)
		for _, pct := range []float64{proj.FieldGoalPct, proj.ThreePointPct, proj.FreeThrowPct} {
			require.GreaterOrEqual(t, pct, 0.0)
			require.LessOrEqual(t, pct, 1.0)
		}
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	tables := &fakeTables{age: map[int]domain.AgeProfile{
		27: {Stats: map[string]domain.StatSummary{"points": {Mean: 18}, "assists": {Mean: 4}}},
	}}
	p := NewProjector(tables, "modern")
	ctx := starterContext()

	assert.Equal(t, p.Project(ctx), p.Project(ctx))
}
