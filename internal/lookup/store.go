// Package lookup provides read-only access to the static aggregate tables
// with deterministic progressive-fallback key relaxation.
package lookup

import (
	"nba-projection-lab/internal/domain"
)

// CatchAll is the string key every position-keyed table must carry.
const CatchAll = "ALL"

// Known age-profile eras.
const (
	EraModern    = "modern"
	EraPaceSpace = "pace_space"
	EraLegacy    = "legacy"
)

// Eras lists the age-profile eras in canonical order.
var Eras = []string{EraModern, EraPaceSpace, EraLegacy}

// StaticDataStore is the immutable snapshot of all static tables.
// Built once by New or Load; every accessor is a pure read and safe for
// concurrent use.
type StaticDataStore struct {
	version string

	ageProfiles map[string]map[AgeKey]domain.AgeProfile
	ceiling     map[domain.BracketKey]domain.CeilingProfile
	durability  map[domain.BracketKey]domain.DurabilityProfile
	usage       map[domain.BracketKey]domain.UsageProfile
	schedule    map[domain.BracketKey]domain.ScheduleEffect
	city        map[domain.BracketKey]domain.CityEffect
	deathSpot   map[domain.BracketKey]domain.DeathSpotEffect
	matchup     map[domain.MatchupKey]domain.MatchupAdjustment

	scarcity        map[string]float64
	zscoreBaselines map[string]map[domain.Category]domain.StatSummary
	categoryWeights map[domain.Category]float64
	positionalBonus map[string]map[domain.Category]float64

	ageChain     []Relaxation[AgeKey]
	bracketChain []Relaxation[domain.BracketKey]
	matchupChain []Relaxation[domain.MatchupKey]
}

// Version returns the table set version string.
func (s *StaticDataStore) Version() string {
	return s.version
}

// AgeProfile resolves (age, position, role) in the given era through the age chain.
func (s *StaticDataStore) AgeProfile(era string, age int, pos domain.Position, role domain.Role) (domain.AgeProfile, bool) {
	p, _, ok := s.resolveAge(era, AgeKey{Age: age, Position: pos, Role: role})
	return p, ok
}

func (s *StaticDataStore) resolveAge(era string, key AgeKey) (domain.AgeProfile, Step, bool) {
	table, ok := s.ageProfiles[era]
	if !ok {
		return domain.AgeProfile{}, StepMiss, false
	}
	return Resolve(table, s.ageChain, key)
}

// CeilingProfile resolves key through the bracket chain.
func (s *StaticDataStore) CeilingProfile(key domain.BracketKey) (domain.CeilingProfile, bool) {
	p, _, ok := Resolve(s.ceiling, s.bracketChain, key)
	return p, ok
}

// DurabilityProfile resolves key through the bracket chain.
func (s *StaticDataStore) DurabilityProfile(key domain.BracketKey) (domain.DurabilityProfile, bool) {
	p, _, ok := Resolve(s.durability, s.bracketChain, key)
	return p, ok
}

// UsageProfile resolves key through the bracket chain.
func (s *StaticDataStore) UsageProfile(key domain.BracketKey) (domain.UsageProfile, bool) {
	p, _, ok := Resolve(s.usage, s.bracketChain, key)
	return p, ok
}

// ScheduleEffect resolves key through the bracket chain.
func (s *StaticDataStore) ScheduleEffect(key domain.BracketKey) (domain.ScheduleEffect, bool) {
	p, _, ok := Resolve(s.schedule, s.bracketChain, key)
	return p, ok
}

// CityEffect resolves key through the bracket chain.
func (s *StaticDataStore) CityEffect(key domain.BracketKey) (domain.CityEffect, bool) {
	p, _, ok := Resolve(s.city, s.bracketChain, key)
	return p, ok
}

// DeathSpotEffect resolves key through the bracket chain.
func (s *StaticDataStore) DeathSpotEffect(key domain.BracketKey) (domain.DeathSpotEffect, bool) {
	p, _, ok := Resolve(s.deathSpot, s.bracketChain, key)
	return p, ok
}

// Matchup resolves the 5-dimension key. On a miss it returns the neutral
// all-1.0 record with sample size 0 and false.
func (s *StaticDataStore) Matchup(key domain.MatchupKey) (domain.MatchupAdjustment, bool) {
	m, _, ok := Resolve(s.matchup, s.matchupChain, key)
	if !ok {
		return domain.NeutralMatchup(key), false
	}
	return m, true
}

// PositionScarcity returns the scarcity multiplier, falling back to the catch-all.
func (s *StaticDataStore) PositionScarcity(pos string) float64 {
	if v, ok := s.scarcity[pos]; ok {
		return v
	}
	return s.scarcity[CatchAll]
}

// ZScoreBaseline returns the mean/std for a category at a position, falling
// back to the catch-all entry for unknown positions or missing categories.
func (s *StaticDataStore) ZScoreBaseline(pos string, c domain.Category) domain.StatSummary {
	if byCat, ok := s.zscoreBaselines[pos]; ok {
		if v, ok := byCat[c]; ok {
			return v
		}
	}
	return s.zscoreBaselines[CatchAll][c]
}

// CategoryWeight returns the SGP weight for c (1.0 when unset).
func (s *StaticDataStore) CategoryWeight(c domain.Category) float64 {
	if w, ok := s.categoryWeights[c]; ok {
		return w
	}
	return 1.0
}

// PositionalBonus returns the positional multiplier for c at pos (1.0 when unset).
func (s *StaticDataStore) PositionalBonus(pos string, c domain.Category) float64 {
	if byCat, ok := s.positionalBonus[pos]; ok {
		if b, ok := byCat[c]; ok {
			return b
		}
	}
	return 1.0
}

// HasEra reports whether age profiles exist for era.
func (s *StaticDataStore) HasEra(era string) bool {
	_, ok := s.ageProfiles[era]
	return ok
}
