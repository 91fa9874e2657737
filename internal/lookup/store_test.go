package lookup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-projection-lab/internal/domain"
)

func ageProfile(age int, pos domain.Position, role domain.Role, pts float64) domain.AgeProfile {
	return domain.AgeProfile{
		Age:        age,
		Position:   pos,
		Role:       role,
		SampleSize: 40,
		Stats:      map[string]domain.StatSummary{"points": {Mean: pts, Std: 4}},
	}
}

func bk(b domain.AgeBracket, p domain.Position, r domain.Role) domain.BracketKey {
	return domain.BracketKey{Bracket: b, Position: p, Role: r}
}

func minimalTables() Tables {
	return Tables{
		Version:          "test",
		PositionScarcity: map[string]float64{CatchAll: 1.0, "C": 1.2},
		ZScoreBaselines: map[string]map[domain.Category]domain.StatSummary{
			CatchAll: {domain.CategoryPoints: {Mean: 12, Std: 6}},
			"G":      {domain.CategoryPoints: {Mean: 14, Std: 7}},
		},
	}
}

func newStore(t *testing.T, tables Tables) *StaticDataStore {
	t.Helper()
	s, err := New(tables)
	require.NoError(t, err)
	return s
}

func TestAgeProfile_ExactKeysReturnThemselves(t *testing.T) {
	tables := minimalTables()
	var rows []domain.AgeProfile
	for age := 20; age <= 36; age += 4 {
		for _, pos := range domain.AllPositions {
			for i, role := range domain.RolePriority {
				rows = append(rows, ageProfile(age, pos, role, float64(age*10+i)))
			}
		}
	}
	tables.AgeProfiles = map[string][]domain.AgeProfile{EraModern: rows}
	s := newStore(t, tables)

	for _, want := range rows {
		got, ok := s.AgeProfile(EraModern, want.Age, want.Position, want.Role)
		require.True(t, ok)
		assert.Equal(t, want.Age, got.Age)
		assert.Equal(t, want.Position, got.Position)
		assert.Equal(t, want.Role, got.Role)
		assert.Equal(t, want.Stats["points"], got.Stats["points"])
	}
}

func TestAgeProfile_FallbackOrder(t *testing.T) {
	tests := []struct {
		name    string
		rows    []domain.AgeProfile
		age     int
		role    domain.Role
		wantAge int
		wantRol domain.Role
		wantOK  bool
	}{
		{
			name:    "younger adjacent preferred over older",
			rows:    []domain.AgeProfile{ageProfile(26, "G", domain.RoleStarter, 1), ageProfile(28, "G", domain.RoleStarter, 2)},
			age:     27,
			role:    domain.RoleStarter,
			wantAge: 26, wantRol: domain.RoleStarter, wantOK: true,
		},
		{
			name:    "plus two before alternate role",
			rows:    []domain.AgeProfile{ageProfile(29, "G", domain.RoleStarter, 1), ageProfile(27, "G", domain.RoleBench, 2)},
			age:     27,
			role:    domain.RoleStarter,
			wantAge: 29, wantRol: domain.RoleStarter, wantOK: true,
		},
		{
			name:    "alternate role follows priority",
			rows:    []domain.AgeProfile{ageProfile(27, "G", domain.RoleScrub, 1), ageProfile(27, "G", domain.RoleRotation, 2)},
			age:     27,
			role:    domain.RoleBench,
			wantAge: 27, wantRol: domain.RoleRotation, wantOK: true,
		},
		{
			name:    "wide search any role",
			rows:    []domain.AgeProfile{ageProfile(32, "G", domain.RoleBench, 1)},
			age:     27,
			role:    domain.RoleStarter,
			wantAge: 32, wantRol: domain.RoleBench, wantOK: true,
		},
		{
			name:   "beyond wide window misses",
			rows:   []domain.AgeProfile{ageProfile(33, "G", domain.RoleStarter, 1)},
			age:    27,
			role:   domain.RoleStarter,
			wantOK: false,
		},
		{
			name:   "other position never matches",
			rows:   []domain.AgeProfile{ageProfile(27, "C", domain.RoleStarter, 1)},
			age:    27,
			role:   domain.RoleStarter,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := minimalTables()
			tables.AgeProfiles = map[string][]domain.AgeProfile{EraModern: tt.rows}
			s := newStore(t, tables)

			got, ok := s.AgeProfile(EraModern, tt.age, domain.PositionGuard, tt.role)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantAge, got.Age)
				assert.Equal(t, tt.wantRol, got.Role)
			}
		})
	}
}

func TestAgeProfile_UnknownEraMisses(t *testing.T) {
	tables := minimalTables()
	tables.AgeProfiles = map[string][]domain.AgeProfile{EraModern: {ageProfile(27, "G", domain.RoleStarter, 1)}}
	s := newStore(t, tables)

	_, ok := s.AgeProfile(EraLegacy, 27, domain.PositionGuard, domain.RoleStarter)
	assert.False(t, ok)
	assert.True(t, s.HasEra(EraModern))
	assert.False(t, s.HasEra(EraLegacy))
}

func TestBracketChain_Fallbacks(t *testing.T) {
	tables := minimalTables()
	tables.DurabilityProfiles = []domain.DurabilityProfile{
		{BracketKey: bk(domain.BracketYoung, "F", domain.RoleStarter), AvgGamesPlayed: 60},
		{BracketKey: bk(domain.BracketPrime, "F", domain.RoleBench), AvgGamesPlayed: 55},
		{BracketKey: bk(domain.BracketPrime, "F", domain.RoleStarter), AvgGamesPlayed: 70},
		{BracketKey: bk(domain.BracketVeteran, "G", domain.RoleRotation), AvgGamesPlayed: 50},
	}
	s := newStore(t, tables)

	// exact
	p, ok := s.DurabilityProfile(bk(domain.BracketYoung, "F", domain.RoleStarter))
	require.True(t, ok)
	assert.Equal(t, 60.0, p.AvgGamesPlayed)

	// same bracket, alternate role wins over other brackets
	p, ok = s.DurabilityProfile(bk(domain.BracketPrime, "F", domain.RoleRotation))
	require.True(t, ok)
	assert.Equal(t, 70.0, p.AvgGamesPlayed, "Starter is first in role priority")

	// other bracket: Prime preferred, original role first
	p, ok = s.DurabilityProfile(bk(domain.BracketVeteran, "F", domain.RoleBench))
	require.True(t, ok)
	assert.Equal(t, 55.0, p.AvgGamesPlayed)

	// no guard rows outside Veteran/Rotation, still resolvable from Veteran
	p, ok = s.DurabilityProfile(bk(domain.BracketYoung, "G", domain.RoleScrub))
	require.True(t, ok)
	assert.Equal(t, 50.0, p.AvgGamesPlayed)

	_, ok = s.DurabilityProfile(bk(domain.BracketPrime, "C", domain.RoleStarter))
	assert.False(t, ok)
}

func TestMatchupChain(t *testing.T) {
	key := func(r domain.Role, tier domain.DefenseTier, loc domain.Location) domain.MatchupKey {
		return domain.MatchupKey{Bracket: domain.BracketPrime, Position: "G", Role: r, DefenseTier: tier, Location: loc}
	}
	row := func(k domain.MatchupKey, fp float64) domain.MatchupAdjustment {
		m := domain.NeutralMatchup(k)
		m.SampleSize = 30
		m.FantasyPoints = fp
		return m
	}

	tests := []struct {
		name   string
		rows   []domain.MatchupAdjustment
		want   float64
		wantOK bool
	}{
		{"exact", []domain.MatchupAdjustment{row(key(domain.RoleStarter, domain.DefenseElite, domain.LocationRoad), 0.9)}, 0.9, true},
		{"relaxed tier", []domain.MatchupAdjustment{row(key(domain.RoleStarter, domain.DefenseAverage, domain.LocationRoad), 1.01)}, 1.01, true},
		{"other location", []domain.MatchupAdjustment{row(key(domain.RoleStarter, domain.DefenseAverage, domain.LocationHome), 1.02)}, 1.02, true},
		{"other role", []domain.MatchupAdjustment{row(key(domain.RoleBench, domain.DefenseAverage, domain.LocationHome), 1.03)}, 1.03, true},
		{"non-average other role does not match", []domain.MatchupAdjustment{row(key(domain.RoleBench, domain.DefenseElite, domain.LocationRoad), 0.8)}, 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := minimalTables()
			tables.MatchupAdjustments = tt.rows
			s := newStore(t, tables)

			m, ok := s.Matchup(key(domain.RoleStarter, domain.DefenseElite, domain.LocationRoad))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, m.FantasyPoints)
			if !ok {
				assert.Equal(t, 0, m.SampleSize)
				assert.Equal(t, 1.0, m.Points)
				assert.Equal(t, 1.0, m.Threes)
			}
		})
	}
}

func TestStringKeyedTablesAlwaysResolve(t *testing.T) {
	s := newStore(t, minimalTables())

	assert.Equal(t, 1.2, s.PositionScarcity("C"))
	assert.Equal(t, 1.0, s.PositionScarcity("XX"))

	assert.Equal(t, 14.0, s.ZScoreBaseline("G", domain.CategoryPoints).Mean)
	assert.Equal(t, 12.0, s.ZScoreBaseline("F", domain.CategoryPoints).Mean)
	assert.Equal(t, 1.0, s.CategoryWeight(domain.CategoryBlocks))
	assert.Equal(t, 1.0, s.PositionalBonus("C", domain.CategoryAssists))
}

func TestChainsAreIndependentOfData(t *testing.T) {
	chain := AgeChain()
	require.Len(t, chain, 4)

	k := AgeKey{Age: 27, Position: "F", Role: domain.RoleBench}
	assert.Equal(t, []AgeKey{k}, chain[0].Keys(k))
	assert.Equal(t, []int{26, 28, 25, 29}, ages(chain[1].Keys(k)))

	roles := chain[2].Keys(k)
	require.Len(t, roles, 3)
	assert.Equal(t, domain.RoleStarter, roles[0].Role)
	assert.Equal(t, domain.RoleRotation, roles[1].Role)
	assert.Equal(t, domain.RoleScrub, roles[2].Role)

	wide := chain[3].Keys(k)
	assert.Len(t, wide, 11*len(domain.RolePriority))
	assert.Equal(t, 32, wide[len(wide)-1].Age)

	bracket := BracketChain()[2].Keys(bk(domain.BracketVeteran, "F", domain.RoleBench))
	assert.Equal(t, domain.BracketPrime, bracket[0].Bracket)
	assert.Equal(t, domain.RoleBench, bracket[0].Role)
	assert.Equal(t, domain.BracketYoung, bracket[4].Bracket)
}

func TestMatchupChain_NoKeyTriedTwice(t *testing.T) {
	k := domain.MatchupKey{
		Bracket:     domain.BracketPrime,
		Position:    "G",
		Role:        domain.RoleStarter,
		DefenseTier: domain.DefenseElite,
		Location:    domain.LocationRoad,
	}
	chain := MatchupChain()
	require.Len(t, chain, 4)
	require.Equal(t, StepAnyLocation, chain[2].Step)

	anyLoc := chain[2].Keys(k)
	require.Len(t, anyLoc, 1)
	assert.Equal(t, domain.LocationHome, anyLoc[0].Location)
	assert.Equal(t, domain.DefenseAverage, anyLoc[0].DefenseTier)
	assert.Equal(t, domain.RoleStarter, anyLoc[0].Role)

	seen := make(map[domain.MatchupKey]Step)
	for _, stage := range chain {
		for _, tried := range stage.Keys(k) {
			prev, dup := seen[tried]
			assert.False(t, dup, "%+v tried at %s and %s", tried, prev, stage.Step)
			seen[tried] = stage.Step
		}
	}
}

func ages(keys []AgeKey) []int {
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = k.Age
	}
	return out
}

func TestLoad_Valid(t *testing.T) {
	doc := `{
		"version": "2025.1",
		"age_profiles": {"modern": [{"age": 27, "position": "G", "role": "Starter", "sample_size": 12,
			"stats": {"points": {"mean": 18, "std": 6}}, "fantasy_pts": {"mean": 35, "std": 10}}]},
		"ceiling_profiles": [{"bracket": "Prime", "position": "G", "role": "Starter", "sample_size": 9, "avg_ceiling_fantasy_pts": 52}],
		"durability_profiles": [],
		"usage_profiles": [],
		"schedule_effects": [],
		"city_effects": [],
		"death_spot_effects": [],
		"matchup_adjustments": [],
		"position_scarcity": {"ALL": 1.0},
		"zscore_baselines": {"ALL": {"points": {"mean": 10, "std": 5}}},
		"sgp_weights": {"category_weights": {"points": 1.0}, "positional_bonus": {"C": {"assists": 1.25}}}
	}`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "2025.1", s.Version())
	p, ok := s.AgeProfile(EraModern, 27, domain.PositionGuard, domain.RoleStarter)
	require.True(t, ok)
	assert.Equal(t, 35.0, p.FantasyPoints.Mean)
	c, ok := s.CeilingProfile(bk(domain.BracketPrime, "G", domain.RoleStarter))
	require.True(t, ok)
	assert.Equal(t, 52.0, c.AvgCeilingFantasyPts)
	assert.Equal(t, 1.25, s.PositionalBonus("C", domain.CategoryAssists))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing scarcity catch-all", `{"position_scarcity": {"G": 1.0}, "zscore_baselines": {"ALL": {}}}`},
		{"missing zscore catch-all", `{"position_scarcity": {"ALL": 1.0}, "zscore_baselines": {"G": {}}}`},
		{"bad role", `{"position_scarcity": {"ALL": 1.0}, "zscore_baselines": {"ALL": {}},
			"usage_profiles": [{"bracket": "Prime", "position": "G", "role": "Closer"}]}`},
		{"duplicate key", `{"position_scarcity": {"ALL": 1.0}, "zscore_baselines": {"ALL": {}},
			"usage_profiles": [{"bracket": "Prime", "position": "G", "role": "Bench"}, {"bracket": "Prime", "position": "G", "role": "Bench"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidTables)
		})
	}

	_, err := Load(strings.NewReader(`{"unknown_table": []}`))
	assert.Error(t, err)
}

func TestStoreIsolatedFromInput(t *testing.T) {
	tables := minimalTables()
	s := newStore(t, tables)

	tables.PositionScarcity["C"] = 9.9
	assert.Equal(t, 1.2, s.PositionScarcity("C"))
}

func TestAudit(t *testing.T) {
	tables := minimalTables()
	tables.AgeProfiles = map[string][]domain.AgeProfile{EraModern: {ageProfile(27, "G", domain.RoleStarter, 1)}}
	tables.UsageProfiles = []domain.UsageProfile{{BracketKey: bk(domain.BracketPrime, "G", domain.RoleBench), MinutesP10: 10, MinutesP90: 20}}
	s := newStore(t, tables)

	players := []domain.PlayerContext{
		{PlayerID: "a", Age: 27, Position: "G", Role: domain.RoleStarter, Bracket: domain.BracketPrime},
		{PlayerID: "b", Age: 28, Position: "G", Role: domain.RoleStarter, Bracket: domain.BracketPrime,
			Game: &domain.GameContext{DefenseTier: domain.DefenseGood, Location: domain.LocationHome}},
	}
	cov := s.Audit(EraModern, players)
	require.Len(t, cov, 8)

	assert.Equal(t, TableAgeProfiles, cov[0].Table)
	assert.Equal(t, 1, cov[0].Exact)
	assert.Equal(t, 1, cov[0].Fallback)
	assert.Equal(t, 1, cov[0].Steps[StepAdjacentAge])

	assert.Equal(t, TableUsage, cov[3].Table)
	assert.Equal(t, 2, cov[3].Fallback)

	assert.Equal(t, TableMatchup, cov[7].Table)
	assert.Equal(t, 1, cov[7].Miss)
	assert.Equal(t, 1, cov[7].Total())

	for _, c := range cov {
		fallback := 0
		for _, step := range FallbackSteps {
			fallback += c.Steps[step]
		}
		assert.Equal(t, c.Fallback, fallback, c.Table)
		assert.Equal(t, c.Exact, c.Steps[StepExact], c.Table)
		assert.Equal(t, c.Miss, c.Steps[StepMiss], c.Table)
	}
}
