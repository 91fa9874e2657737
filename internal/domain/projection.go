package domain

// SeasonProjection is the season-long projection for one player.
// Derived deterministically from one PlayerContext; never mutated.
type SeasonProjection struct {
	PlayerID string
	Name     string
	Team     string
	Position Position
	Role     Role
	Age      int
	Bracket  AgeBracket

	PerGame       StatLine
	FieldGoalPct  float64
	ThreePointPct float64
	FreeThrowPct  float64
	FantasyPoints float64 // per game

	GamesProjected int
	Totals         StatLine
	FantasyTotal   float64

	Ceiling     float64
	Floor       float64
	Consistency int // 0-100
}

// StatContract is the per-stat contract handed to the stake-sizing layer.
type StatContract struct {
	Stat       string
	Projection float64
	StdDev     float64
	Confidence float64
}

// AuctionValue is one player's budget-constrained dollar valuation.
type AuctionValue struct {
	PlayerID string
	Name     string
	Position Position

	CategoryZ     map[Category]float64
	RawZ          float64
	SGPValue      float64
	ScarcityValue float64

	Rank        int // 1-based by scarcity value
	InPool      bool
	DollarValue int
}
