package domain

import "strings"

// Position is the coarse positional group.
type Position string

const (
	PositionGuard   Position = "G"
	PositionForward Position = "F"
	PositionCenter  Position = "C"
)

// AllPositions lists positions in canonical order.
var AllPositions = []Position{PositionGuard, PositionForward, PositionCenter}

// ParsePosition normalizes a raw roster designation (PG, SG, G-F, PF, C-F, ...)
// to G, F or C using the primary designation. Unknown values map to F.
func ParsePosition(raw string) Position {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.IndexAny(s, "-/"); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "PG", "SG", "G":
		return PositionGuard
	case "C":
		return PositionCenter
	case "SF", "PF", "F":
		return PositionForward
	}
	return PositionForward
}

// Valid reports whether p is one of the closed set.
func (p Position) Valid() bool {
	return p == PositionGuard || p == PositionForward || p == PositionCenter
}

// Role classifies playing time.
type Role string

const (
	RoleStarter  Role = "Starter"
	RoleRotation Role = "Rotation"
	RoleBench    Role = "Bench"
	RoleScrub    Role = "Scrub"
)

// RolePriority is the order alternate roles are tried during fallback.
var RolePriority = []Role{RoleStarter, RoleRotation, RoleBench, RoleScrub}

// Minutes-per-game thresholds for role classification.
const (
	StarterMinutes  = 28.0
	RotationMinutes = 15.0
	BenchMinutes    = 8.0
)

// RoleForMinutes classifies a player by average minutes per game.
func RoleForMinutes(mpg float64) Role {
	switch {
	case mpg >= StarterMinutes:
		return RoleStarter
	case mpg >= RotationMinutes:
		return RoleRotation
	case mpg >= BenchMinutes:
		return RoleBench
	default:
		return RoleScrub
	}
}

// Valid reports whether r is one of the closed set.
func (r Role) Valid() bool {
	for _, v := range RolePriority {
		if r == v {
			return true
		}
	}
	return false
}

// AgeBracket is the coarse age grouping used by bracket-keyed tables.
type AgeBracket string

const (
	BracketYoung   AgeBracket = "Young"
	BracketPrime   AgeBracket = "Prime"
	BracketVeteran AgeBracket = "Veteran"
)

// BracketPriority orders brackets by historical sample size (Prime first).
var BracketPriority = []AgeBracket{BracketPrime, BracketYoung, BracketVeteran}

// BracketForAge maps an integer age to its bracket: <=24 Young, 25-30 Prime, >=31 Veteran.
func BracketForAge(age int) AgeBracket {
	switch {
	case age <= 24:
		return BracketYoung
	case age <= 30:
		return BracketPrime
	default:
		return BracketVeteran
	}
}

// Valid reports whether b is one of the closed set.
func (b AgeBracket) Valid() bool {
	return b == BracketYoung || b == BracketPrime || b == BracketVeteran
}

// PlayerContext is the immutable per-player input to projection.
// Built once per run by the baseline builder.
type PlayerContext struct {
	PlayerID    string
	Name        string
	Team        string
	RawPosition string
	Position    Position
	Role        Role
	Age         int
	Bracket     AgeBracket

	// Baseline is the weighted multi-season per-game average.
	Baseline StatLine
	// BaselineFantasyPoints is fantasy scoring applied to Baseline.
	BaselineFantasyPoints float64

	// GamesBySeason counts games observed per season year.
	GamesBySeason map[int]int
	// SeasonsUsed lists the qualifying seasons blended, most recent first.
	SeasonsUsed []int
	// RecentMinutes is average minutes in the most recent season.
	RecentMinutes float64

	// Variance is per-stat sample variance over the most recent season only.
	Variance StatLine
	// FantasyVariance is sample variance of per-game fantasy points in the most recent season.
	FantasyVariance float64
	// HasVariance is false when the recent season had fewer than two games.
	HasVariance bool

	// Game carries optional single-game context; nil for season-only runs.
	Game *GameContext
}

// WithGame returns a copy of the context carrying g.
func (c PlayerContext) WithGame(g GameContext) PlayerContext {
	c.Game = &g
	return c
}
