package lookup

import "nba-projection-lab/internal/domain"

// Table names used in coverage reporting.
const (
	TableAgeProfiles = "age_profiles"
	TableCeiling     = "ceiling_profiles"
	TableDurability  = "durability_profiles"
	TableUsage       = "usage_profiles"
	TableSchedule    = "schedule_effects"
	TableCity        = "city_effects"
	TableDeathSpot   = "death_spot_effects"
	TableMatchup     = "matchup_adjustments"
)

var auditOrder = []string{
	TableAgeProfiles,
	TableCeiling,
	TableDurability,
	TableUsage,
	TableSchedule,
	TableCity,
	TableDeathSpot,
	TableMatchup,
}

// TableCoverage counts how lookups against one table resolved.
type TableCoverage struct {
	Table    string
	Exact    int
	Fallback int
	Miss     int
	// Steps counts resolutions by the chain step that matched.
	Steps map[Step]int
}

// Total returns the number of lookups performed.
func (c TableCoverage) Total() int {
	return c.Exact + c.Fallback + c.Miss
}

// Audit replays every lookup the projection and game-day layers perform for
// players and reports how each table resolved. Game-day tables are only
// audited for players carrying a GameContext.
func (s *StaticDataStore) Audit(era string, players []domain.PlayerContext) []TableCoverage {
	byTable := make(map[string]*TableCoverage, len(auditOrder))
	for _, name := range auditOrder {
		byTable[name] = &TableCoverage{Table: name, Steps: make(map[Step]int)}
	}
	record := func(table string, step Step) {
		c := byTable[table]
		c.Steps[step]++
		switch step {
		case StepExact:
			c.Exact++
		case StepMiss:
			c.Miss++
		default:
			c.Fallback++
		}
	}

	for _, p := range players {
		_, step, _ := s.resolveAge(era, AgeKey{Age: p.Age, Position: p.Position, Role: p.Role})
		record(TableAgeProfiles, step)

		bk := domain.BracketKey{Bracket: p.Bracket, Position: p.Position, Role: p.Role}
		_, step, _ = Resolve(s.ceiling, s.bracketChain, bk)
		record(TableCeiling, step)
		_, step, _ = Resolve(s.durability, s.bracketChain, bk)
		record(TableDurability, step)
		_, step, _ = Resolve(s.usage, s.bracketChain, bk)
		record(TableUsage, step)

		if p.Game == nil {
			continue
		}
		_, step, _ = Resolve(s.schedule, s.bracketChain, bk)
		record(TableSchedule, step)
		_, step, _ = Resolve(s.city, s.bracketChain, bk)
		record(TableCity, step)
		_, step, _ = Resolve(s.deathSpot, s.bracketChain, bk)
		record(TableDeathSpot, step)
		mk := domain.MatchupKey{
			Bracket:     p.Bracket,
			Position:    p.Position,
			Role:        p.Role,
			DefenseTier: p.Game.DefenseTier,
			Location:    p.Game.Location,
		}
		_, step, _ = Resolve(s.matchup, s.matchupChain, mk)
		record(TableMatchup, step)
	}

	out := make([]TableCoverage, 0, len(auditOrder))
	for _, name := range auditOrder {
		out = append(out, *byTable[name])
	}
	return out
}
