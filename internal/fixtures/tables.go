package fixtures

import (
	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/lookup"
	"nba-projection-lab/internal/metrics"
)

// TablesVersion tags the synthetic table set.
const TablesVersion = "synthetic-v1"

var bracketAges = map[domain.AgeBracket]int{
	domain.BracketYoung:   23,
	domain.BracketPrime:   27,
	domain.BracketVeteran: 33,
}

// Tables returns a synthetic table document with deliberate gaps so the
// relaxation chains get exercised. The legacy era carries even ages only and
// scrubs older than 35 have no age profile. Scrubs have no matchup rows.
func Tables() lookup.Tables {
	t := lookup.Tables{
		Version:     TablesVersion,
		AgeProfiles: make(map[string][]domain.AgeProfile, len(lookup.Eras)),
		PositionScarcity: map[string]float64{
			lookup.CatchAll: 1.00,
			"G":             1.00,
			"F":             1.05,
			"C":             1.15,
		},
		ZScoreBaselines: zscoreBaselines(),
		SGPWeights: domain.SGPWeights{
			CategoryWeights: map[domain.Category]float64{
				domain.CategoryPoints:   0.9,
				domain.CategoryRebounds: 1.0,
				domain.CategoryAssists:  1.0,
				domain.CategorySteals:   1.1,
				domain.CategoryBlocks:   1.1,
				domain.CategoryThrees:   1.0,
			},
			PositionalBonus: map[string]map[domain.Category]float64{
				"G": {domain.CategoryAssists: 1.1},
				"C": {domain.CategoryBlocks: 1.1, domain.CategoryRebounds: 1.05},
			},
		},
	}

	eraScale := map[string]float64{
		lookup.EraModern:    1.00,
		lookup.EraPaceSpace: 0.97,
		lookup.EraLegacy:    0.92,
	}
	for _, era := range lookup.Eras {
		t.AgeProfiles[era] = ageProfiles(era, eraScale[era])
	}

	for _, b := range []domain.AgeBracket{domain.BracketYoung, domain.BracketPrime, domain.BracketVeteran} {
		for _, pos := range domain.AllPositions {
			for _, role := range domain.RolePriority {
				key := domain.BracketKey{Bracket: b, Position: pos, Role: role}
				addBracketRows(&t, key)
			}
		}
	}
	return t
}

func ageProfiles(era string, scale float64) []domain.AgeProfile {
	var rows []domain.AgeProfile
	for age := 19; age <= 40; age++ {
		if era == lookup.EraLegacy && age%2 == 1 {
			continue
		}
		for _, pos := range domain.AllPositions {
			for _, role := range domain.RolePriority {
				if role == domain.RoleScrub && age > 35 {
					continue
				}
				line := expectedLine(pos, roleMinutes[role], age).Scale(scale)
				line.Minutes = roleMinutes[role]
				stats := make(map[string]domain.StatSummary, len(domain.AllStats))
				for _, s := range domain.AllStats {
					v := line.Get(s)
					stats[s.String()] = domain.StatSummary{Mean: v, Std: 0.3 * v}
				}
				fp := domain.FantasyPoints(line)
				rows = append(rows, domain.AgeProfile{
					Age:           age,
					Position:      pos,
					Role:          role,
					SampleSize:    120 - 3*abs(age-27),
					Stats:         stats,
					FantasyPoints: domain.StatSummary{Mean: fp, Std: 0.35 * fp},
				})
			}
		}
	}
	return rows
}

func addBracketRows(t *lookup.Tables, key domain.BracketKey) {
	minutes := roleMinutes[key.Role]
	fp := domain.FantasyPoints(expectedLine(key.Position, minutes, bracketAges[key.Bracket]))

	games := map[domain.AgeBracket]float64{
		domain.BracketYoung:   70,
		domain.BracketPrime:   72,
		domain.BracketVeteran: 61,
	}[key.Bracket]
	if key.Role == domain.RoleScrub {
		games -= 20
	}

	veteran := key.Bracket == domain.BracketVeteran
	b2b, rest := -0.05, 0.02
	if veteran {
		b2b, rest = -0.09, 0.04
	}

	t.CeilingProfiles = append(t.CeilingProfiles, domain.CeilingProfile{
		BracketKey: key, SampleSize: 80, AvgCeilingFantasyPts: 1.45 * fp,
	})
	t.DurabilityProfiles = append(t.DurabilityProfiles, domain.DurabilityProfile{
		BracketKey: key, SampleSize: 80, AvgGamesPlayed: games,
	})
	sample := minutesSample(minutes, key.Bracket)
	t.UsageProfiles = append(t.UsageProfiles, domain.UsageProfile{
		BracketKey: key, SampleSize: len(sample),
		MinutesP10: metrics.Percentile(sample, 0.10),
		MinutesP90: metrics.Percentile(sample, 0.90),
	})
	t.ScheduleEffects = append(t.ScheduleEffects, domain.ScheduleEffect{
		BracketKey: key, SampleSize: 60, B2BScoringDrop: b2b, RestScoringBoost: rest,
	})
	t.CityEffects = append(t.CityEffects, domain.CityEffect{
		BracketKey: key, SampleSize: 40,
		HotSpotScoringDrop:     -0.03,
		AltitudeB2BDrop:        -0.06,
		AltitudeOneDayRestDrop: -0.02,
	})
	t.DeathSpotEffects = append(t.DeathSpotEffects, domain.DeathSpotEffect{
		BracketKey: key, SampleSize: 25,
		PartyB2BResidual:        -0.02,
		AltitudeB2BResidual:     -0.03,
		CrossCountryB2BResidual: -0.02,
		PartyToAltitudeResidual: -0.04,
		CompoundResidual:        -0.06,
	})

	if key.Role == domain.RoleScrub {
		return
	}
	tiers := map[domain.DefenseTier]float64{
		domain.DefenseElite:   0.92,
		domain.DefenseGood:    0.97,
		domain.DefenseAverage: 1.00,
		domain.DefensePoor:    1.06,
	}
	for _, tier := range []domain.DefenseTier{domain.DefenseElite, domain.DefenseGood, domain.DefenseAverage, domain.DefensePoor} {
		for _, loc := range []domain.Location{domain.LocationHome, domain.LocationRoad} {
			m := tiers[tier]
			if loc == domain.LocationRoad {
				m *= 0.98
			} else {
				m *= 1.01
			}
			t.MatchupAdjustments = append(t.MatchupAdjustments, domain.MatchupAdjustment{
				MatchupKey: domain.MatchupKey{
					Bracket:     key.Bracket,
					Position:    key.Position,
					Role:        key.Role,
					DefenseTier: tier,
					Location:    loc,
				},
				SampleSize:    30,
				Points:        m,
				Rebounds:      1 + (m-1)/2,
				Assists:       m,
				Steals:        1,
				Blocks:        1,
				Threes:        m,
				FantasyPoints: m,
			})
		}
	}
}

func zscoreBaselines() map[string]map[domain.Category]domain.StatSummary {
	all := map[domain.Category]domain.StatSummary{
		domain.CategoryPoints:   {Mean: 11.0, Std: 6.0},
		domain.CategoryRebounds: {Mean: 4.5, Std: 2.8},
		domain.CategoryAssists:  {Mean: 2.6, Std: 2.0},
		domain.CategorySteals:   {Mean: 0.8, Std: 0.4},
		domain.CategoryBlocks:   {Mean: 0.5, Std: 0.45},
		domain.CategoryThrees:   {Mean: 1.2, Std: 0.9},
	}
	out := map[string]map[domain.Category]domain.StatSummary{lookup.CatchAll: all}
	for _, pos := range domain.AllPositions {
		population := positionPopulation(pos)
		byCat := make(map[domain.Category]domain.StatSummary, len(domain.AllCategories))
		for _, c := range domain.AllCategories {
			values := make([]float64, len(population))
			for i, line := range population {
				values[i] = line.Get(c.Stat())
			}
			byCat[c] = domain.StatSummary{Mean: metrics.Mean(values), Std: metrics.Stddev(values)}
		}
		out[string(pos)] = byCat
	}
	return out
}

// positionPopulation is the expected line of every non-scrub role at ages 21-35.
func positionPopulation(pos domain.Position) []domain.StatLine {
	var lines []domain.StatLine
	for _, role := range []domain.Role{domain.RoleStarter, domain.RoleRotation, domain.RoleBench} {
		for age := 21; age <= 35; age++ {
			lines = append(lines, expectedLine(pos, roleMinutes[role], age))
		}
	}
	return lines
}

// minutesSample spreads per-game minutes evenly around a role's typical
// minutes. Veterans get a narrower spread.
func minutesSample(minutes float64, bracket domain.AgeBracket) []float64 {
	const n = 41
	spread := 0.35
	if bracket == domain.BracketVeteran {
		spread = 0.25
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = minutes * (1 - spread + 2*spread*float64(i)/float64(n-1))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
