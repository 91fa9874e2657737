package lookup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"nba-projection-lab/internal/domain"
)

// ErrInvalidTables is returned when a table document fails validation.
var ErrInvalidTables = errors.New("invalid static tables")

// Tables is the serialized form of every static table.
type Tables struct {
	Version            string                                            `json:"version"`
	AgeProfiles        map[string][]domain.AgeProfile                    `json:"age_profiles"`
	CeilingProfiles    []domain.CeilingProfile                           `json:"ceiling_profiles"`
	DurabilityProfiles []domain.DurabilityProfile                        `json:"durability_profiles"`
	UsageProfiles      []domain.UsageProfile                             `json:"usage_profiles"`
	ScheduleEffects    []domain.ScheduleEffect                           `json:"schedule_effects"`
	CityEffects        []domain.CityEffect                               `json:"city_effects"`
	DeathSpotEffects   []domain.DeathSpotEffect                          `json:"death_spot_effects"`
	MatchupAdjustments []domain.MatchupAdjustment                        `json:"matchup_adjustments"`
	PositionScarcity   map[string]float64                                `json:"position_scarcity"`
	ZScoreBaselines    map[string]map[domain.Category]domain.StatSummary `json:"zscore_baselines"`
	SGPWeights         domain.SGPWeights                                 `json:"sgp_weights"`
}

// LoadFile reads and validates a JSON table document from path.
func LoadFile(path string) (*StaticDataStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tables: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a JSON table document.
func Load(r io.Reader) (*StaticDataStore, error) {
	var t Tables
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	return New(t)
}

// New validates t and builds an immutable store. t is copied; later changes
// to t do not affect the store.
func New(t Tables) (*StaticDataStore, error) {
	s := &StaticDataStore{
		version:         t.Version,
		ageProfiles:     make(map[string]map[AgeKey]domain.AgeProfile, len(t.AgeProfiles)),
		ceiling:         make(map[domain.BracketKey]domain.CeilingProfile, len(t.CeilingProfiles)),
		durability:      make(map[domain.BracketKey]domain.DurabilityProfile, len(t.DurabilityProfiles)),
		usage:           make(map[domain.BracketKey]domain.UsageProfile, len(t.UsageProfiles)),
		schedule:        make(map[domain.BracketKey]domain.ScheduleEffect, len(t.ScheduleEffects)),
		city:            make(map[domain.BracketKey]domain.CityEffect, len(t.CityEffects)),
		deathSpot:       make(map[domain.BracketKey]domain.DeathSpotEffect, len(t.DeathSpotEffects)),
		matchup:         make(map[domain.MatchupKey]domain.MatchupAdjustment, len(t.MatchupAdjustments)),
		scarcity:        make(map[string]float64, len(t.PositionScarcity)),
		zscoreBaselines: make(map[string]map[domain.Category]domain.StatSummary, len(t.ZScoreBaselines)),
		categoryWeights: make(map[domain.Category]float64, len(t.SGPWeights.CategoryWeights)),
		positionalBonus: make(map[string]map[domain.Category]float64, len(t.SGPWeights.PositionalBonus)),
		ageChain:        AgeChain(),
		bracketChain:    BracketChain(),
		matchupChain:    MatchupChain(),
	}

	for era, profiles := range t.AgeProfiles {
		table := make(map[AgeKey]domain.AgeProfile, len(profiles))
		for _, p := range profiles {
			if !p.Position.Valid() || !p.Role.Valid() {
				return nil, fmt.Errorf("%w: age profile %s/%d/%s/%s", ErrInvalidTables, era, p.Age, p.Position, p.Role)
			}
			k := AgeKey{Age: p.Age, Position: p.Position, Role: p.Role}
			if _, dup := table[k]; dup {
				return nil, fmt.Errorf("%w: duplicate age profile %s/%d/%s/%s", ErrInvalidTables, era, p.Age, p.Position, p.Role)
			}
			p.Stats = copyStats(p.Stats)
			table[k] = p
		}
		s.ageProfiles[era] = table
	}

	if err := fillBracketTable(s.ceiling, t.CeilingProfiles, func(p domain.CeilingProfile) domain.BracketKey { return p.BracketKey }, "ceiling"); err != nil {
		return nil, err
	}
	if err := fillBracketTable(s.durability, t.DurabilityProfiles, func(p domain.DurabilityProfile) domain.BracketKey { return p.BracketKey }, "durability"); err != nil {
		return nil, err
	}
	if err := fillBracketTable(s.usage, t.UsageProfiles, func(p domain.UsageProfile) domain.BracketKey { return p.BracketKey }, "usage"); err != nil {
		return nil, err
	}
	if err := fillBracketTable(s.schedule, t.ScheduleEffects, func(p domain.ScheduleEffect) domain.BracketKey { return p.BracketKey }, "schedule"); err != nil {
		return nil, err
	}
	if err := fillBracketTable(s.city, t.CityEffects, func(p domain.CityEffect) domain.BracketKey { return p.BracketKey }, "city"); err != nil {
		return nil, err
	}
	if err := fillBracketTable(s.deathSpot, t.DeathSpotEffects, func(p domain.DeathSpotEffect) domain.BracketKey { return p.BracketKey }, "death spot"); err != nil {
		return nil, err
	}

	for _, m := range t.MatchupAdjustments {
		k := m.MatchupKey
		if !k.Bracket.Valid() || !k.Position.Valid() || !k.Role.Valid() || !validTier(k.DefenseTier) || !validLocation(k.Location) {
			return nil, fmt.Errorf("%w: matchup key %+v", ErrInvalidTables, k)
		}
		if _, dup := s.matchup[k]; dup {
			return nil, fmt.Errorf("%w: duplicate matchup key %+v", ErrInvalidTables, k)
		}
		s.matchup[k] = m
	}

	if _, ok := t.PositionScarcity[CatchAll]; !ok {
		return nil, fmt.Errorf("%w: position scarcity missing %q entry", ErrInvalidTables, CatchAll)
	}
	for k, v := range t.PositionScarcity {
		s.scarcity[k] = v
	}

	if _, ok := t.ZScoreBaselines[CatchAll]; !ok {
		return nil, fmt.Errorf("%w: z-score baselines missing %q entry", ErrInvalidTables, CatchAll)
	}
	for pos, byCat := range t.ZScoreBaselines {
		cp := make(map[domain.Category]domain.StatSummary, len(byCat))
		for c, v := range byCat {
			cp[c] = v
		}
		s.zscoreBaselines[pos] = cp
	}

	for c, w := range t.SGPWeights.CategoryWeights {
		s.categoryWeights[c] = w
	}
	for pos, byCat := range t.SGPWeights.PositionalBonus {
		cp := make(map[domain.Category]float64, len(byCat))
		for c, v := range byCat {
			cp[c] = v
		}
		s.positionalBonus[pos] = cp
	}

	return s, nil
}

func fillBracketTable[V any](dst map[domain.BracketKey]V, rows []V, key func(V) domain.BracketKey, name string) error {
	for _, r := range rows {
		k := key(r)
		if !k.Bracket.Valid() || !k.Position.Valid() || !k.Role.Valid() {
			return fmt.Errorf("%w: %s key %+v", ErrInvalidTables, name, k)
		}
		if _, dup := dst[k]; dup {
			return fmt.Errorf("%w: duplicate %s key %+v", ErrInvalidTables, name, k)
		}
		dst[k] = r
	}
	return nil
}

func copyStats(in map[string]domain.StatSummary) map[string]domain.StatSummary {
	out := make(map[string]domain.StatSummary, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func validTier(t domain.DefenseTier) bool {
	switch t {
	case domain.DefenseElite, domain.DefenseGood, domain.DefenseAverage, domain.DefensePoor:
		return true
	}
	return false
}

func validLocation(l domain.Location) bool {
	return l == domain.LocationHome || l == domain.LocationRoad
}
