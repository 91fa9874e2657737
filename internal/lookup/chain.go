package lookup

import "nba-projection-lab/internal/domain"

// Step identifies which relaxation in a fallback chain produced a match.
type Step int

const (
	StepExact Step = iota
	StepAdjacentAge
	StepAlternateRole
	StepWideAge
	StepAlternateBracket
	StepRelaxedTier
	StepAnyLocation
	StepMiss
)

var stepNames = [...]string{
	StepExact:            "exact",
	StepAdjacentAge:      "adjacent_age",
	StepAlternateRole:    "alternate_role",
	StepWideAge:          "wide_age",
	StepAlternateBracket: "alternate_bracket",
	StepRelaxedTier:      "relaxed_tier",
	StepAnyLocation:      "any_location",
	StepMiss:             "miss",
}

// FallbackSteps lists the relaxations between exact and miss, in chain order.
var FallbackSteps = []Step{
	StepAdjacentAge,
	StepAlternateRole,
	StepWideAge,
	StepAlternateBracket,
	StepRelaxedTier,
	StepAnyLocation,
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Relaxation is one stage of a fallback chain: it expands a key into the
// ordered candidate keys to try at that stage.
type Relaxation[K comparable] struct {
	Step Step
	Keys func(K) []K
}

// AgeKey keys the exact-age tables.
type AgeKey struct {
	Age      int
	Position domain.Position
	Role     domain.Role
}

// Resolve walks chain in order and returns the first key present in table.
func Resolve[K comparable, V any](table map[K]V, chain []Relaxation[K], key K) (V, Step, bool) {
	for _, r := range chain {
		for _, k := range r.Keys(key) {
			if v, ok := table[k]; ok {
				return v, r.Step, true
			}
		}
	}
	var zero V
	return zero, StepMiss, false
}

// Window sizes for the age chain.
const (
	adjacentAgeWindow = 2
	wideAgeWindow     = 5
)

// AgeChain is exact -> adjacent ages (+-1, +-2) -> alternate role -> +-5 any role.
func AgeChain() []Relaxation[AgeKey] {
	return []Relaxation[AgeKey]{
		{Step: StepExact, Keys: func(k AgeKey) []AgeKey { return []AgeKey{k} }},
		{Step: StepAdjacentAge, Keys: adjacentAges},
		{Step: StepAlternateRole, Keys: func(k AgeKey) []AgeKey {
			var out []AgeKey
			for _, r := range otherRoles(k.Role) {
				out = append(out, AgeKey{Age: k.Age, Position: k.Position, Role: r})
			}
			return out
		}},
		{Step: StepWideAge, Keys: wideAges},
	}
}

// adjacentAges tries nearer ages first, younger before older.
func adjacentAges(k AgeKey) []AgeKey {
	var out []AgeKey
	for d := 1; d <= adjacentAgeWindow; d++ {
		out = append(out,
			AgeKey{Age: k.Age - d, Position: k.Position, Role: k.Role},
			AgeKey{Age: k.Age + d, Position: k.Position, Role: k.Role},
		)
	}
	return out
}

func wideAges(k AgeKey) []AgeKey {
	var out []AgeKey
	for d := 0; d <= wideAgeWindow; d++ {
		ages := []int{k.Age - d, k.Age + d}
		if d == 0 {
			ages = ages[:1]
		}
		for _, age := range ages {
			for _, r := range domain.RolePriority {
				out = append(out, AgeKey{Age: age, Position: k.Position, Role: r})
			}
		}
	}
	return out
}

// BracketChain is exact -> alternate role -> other brackets (Prime, Young,
// Veteran) trying the original role first.
func BracketChain() []Relaxation[domain.BracketKey] {
	return []Relaxation[domain.BracketKey]{
		{Step: StepExact, Keys: func(k domain.BracketKey) []domain.BracketKey { return []domain.BracketKey{k} }},
		{Step: StepAlternateRole, Keys: func(k domain.BracketKey) []domain.BracketKey {
			var out []domain.BracketKey
			for _, r := range otherRoles(k.Role) {
				out = append(out, domain.BracketKey{Bracket: k.Bracket, Position: k.Position, Role: r})
			}
			return out
		}},
		{Step: StepAlternateBracket, Keys: func(k domain.BracketKey) []domain.BracketKey {
			var out []domain.BracketKey
			for _, b := range domain.BracketPriority {
				if b == k.Bracket {
					continue
				}
				roles := append([]domain.Role{k.Role}, otherRoles(k.Role)...)
				for _, r := range roles {
					out = append(out, domain.BracketKey{Bracket: b, Position: k.Position, Role: r})
				}
			}
			return out
		}},
	}
}

// MatchupChain is exact -> Average tier at the same location -> Average tier at
// the other location -> other roles at Average tier. No key is tried twice.
func MatchupChain() []Relaxation[domain.MatchupKey] {
	avg := func(k domain.MatchupKey, role domain.Role, loc domain.Location) domain.MatchupKey {
		return domain.MatchupKey{
			Bracket:     k.Bracket,
			Position:    k.Position,
			Role:        role,
			DefenseTier: domain.DefenseAverage,
			Location:    loc,
		}
	}
	return []Relaxation[domain.MatchupKey]{
		{Step: StepExact, Keys: func(k domain.MatchupKey) []domain.MatchupKey { return []domain.MatchupKey{k} }},
		{Step: StepRelaxedTier, Keys: func(k domain.MatchupKey) []domain.MatchupKey {
			return []domain.MatchupKey{avg(k, k.Role, k.Location)}
		}},
		{Step: StepAnyLocation, Keys: func(k domain.MatchupKey) []domain.MatchupKey {
			return []domain.MatchupKey{avg(k, k.Role, k.Location.Other())}
		}},
		{Step: StepAlternateRole, Keys: func(k domain.MatchupKey) []domain.MatchupKey {
			var out []domain.MatchupKey
			for _, r := range otherRoles(k.Role) {
				out = append(out, avg(k, r, k.Location), avg(k, r, k.Location.Other()))
			}
			return out
		}},
	}
}

// otherRoles returns RolePriority without r.
func otherRoles(r domain.Role) []domain.Role {
	out := make([]domain.Role, 0, len(domain.RolePriority)-1)
	for _, v := range domain.RolePriority {
		if v != r {
			out = append(out, v)
		}
	}
	return out
}
