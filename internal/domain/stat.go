package domain

// Stat identifies one per-game box score column.
type Stat int

const (
	StatMinutes Stat = iota
	StatPoints
	StatRebounds
	StatAssists
	StatSteals
	StatBlocks
	StatTurnovers
	StatThreesMade
	StatThreesAttempted
	StatFieldGoalsMade
	StatFieldGoalsAttempted
	StatFreeThrowsMade
	StatFreeThrowsAttempted
)

// AllStats lists every stat in canonical order.
var AllStats = []Stat{
	StatMinutes,
	StatPoints,
	StatRebounds,
	StatAssists,
	StatSteals,
	StatBlocks,
	StatTurnovers,
	StatThreesMade,
	StatThreesAttempted,
	StatFieldGoalsMade,
	StatFieldGoalsAttempted,
	StatFreeThrowsMade,
	StatFreeThrowsAttempted,
}

var statNames = map[Stat]string{
	StatMinutes:             "minutes",
	StatPoints:              "points",
	StatRebounds:            "rebounds",
	StatAssists:             "assists",
	StatSteals:              "steals",
	StatBlocks:              "blocks",
	StatTurnovers:           "turnovers",
	StatThreesMade:          "threes_made",
	StatThreesAttempted:     "threes_attempted",
	StatFieldGoalsMade:      "field_goals_made",
	StatFieldGoalsAttempted: "field_goals_attempted",
	StatFreeThrowsMade:      "free_throws_made",
	StatFreeThrowsAttempted: "free_throws_attempted",
}

// String returns the snake_case name used in tables and exports.
func (s Stat) String() string {
	if n, ok := statNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStat maps a snake_case name back to a Stat.
func ParseStat(name string) (Stat, bool) {
	for s, n := range statNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// StatLine holds one value per Stat.
type StatLine struct {
	Minutes             float64
	Points              float64
	Rebounds            float64
	Assists             float64
	Steals              float64
	Blocks              float64
	Turnovers           float64
	ThreesMade          float64
	ThreesAttempted     float64
	FieldGoalsMade      float64
	FieldGoalsAttempted float64
	FreeThrowsMade      float64
	FreeThrowsAttempted float64
}

// Get returns the value for s.
func (l StatLine) Get(s Stat) float64 {
	switch s {
	case StatMinutes:
		return l.Minutes
	case StatPoints:
		return l.Points
	case StatRebounds:
		return l.Rebounds
	case StatAssists:
		return l.Assists
	case StatSteals:
		return l.Steals
	case StatBlocks:
		return l.Blocks
	case StatTurnovers:
		return l.Turnovers
	case StatThreesMade:
		return l.ThreesMade
	case StatThreesAttempted:
		return l.ThreesAttempted
	case StatFieldGoalsMade:
		return l.FieldGoalsMade
	case StatFieldGoalsAttempted:
		return l.FieldGoalsAttempted
	case StatFreeThrowsMade:
		return l.FreeThrowsMade
	case StatFreeThrowsAttempted:
		return l.FreeThrowsAttempted
	}
	return 0
}

// Set assigns v to s.
func (l *StatLine) Set(s Stat, v float64) {
	switch s {
	case StatMinutes:
		l.Minutes = v
	case StatPoints:
		l.Points = v
	case StatRebounds:
		l.Rebounds = v
	case StatAssists:
		l.Assists = v
	case StatSteals:
		l.Steals = v
	case StatBlocks:
		l.Blocks = v
	case StatTurnovers:
		l.Turnovers = v
	case StatThreesMade:
		l.ThreesMade = v
	case StatThreesAttempted:
		l.ThreesAttempted = v
	case StatFieldGoalsMade:
		l.FieldGoalsMade = v
	case StatFieldGoalsAttempted:
		l.FieldGoalsAttempted = v
	case StatFreeThrowsMade:
		l.FreeThrowsMade = v
	case StatFreeThrowsAttempted:
		l.FreeThrowsAttempted = v
	}
}

// Scale returns a copy with every stat multiplied by f.
func (l StatLine) Scale(f float64) StatLine {
	var out StatLine
	for _, s := range AllStats {
		out.Set(s, l.Get(s)*f)
	}
	return out
}

// Category is an auction scoring category.
type Category string

const (
	CategoryPoints   Category = "points"
	CategoryRebounds Category = "rebounds"
	CategoryAssists  Category = "assists"
	CategorySteals   Category = "steals"
	CategoryBlocks   Category = "blocks"
	CategoryThrees   Category = "threes"
)

// AllCategories lists the auction categories in canonical order.
var AllCategories = []Category{
	CategoryPoints,
	CategoryRebounds,
	CategoryAssists,
	CategorySteals,
	CategoryBlocks,
	CategoryThrees,
}

// Stat returns the per-game stat a category is computed from.
func (c Category) Stat() Stat {
	switch c {
	case CategoryPoints:
		return StatPoints
	case CategoryRebounds:
		return StatRebounds
	case CategoryAssists:
		return StatAssists
	case CategorySteals:
		return StatSteals
	case CategoryBlocks:
		return StatBlocks
	default:
		return StatThreesMade
	}
}
