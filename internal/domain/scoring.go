package domain

// Fantasy scoring weights.
const (
	PointsWeight    = 1.0
	ReboundsWeight  = 1.2
	AssistsWeight   = 1.5
	StealsWeight    = 3.0
	BlocksWeight    = 3.0
	TurnoversWeight = -1.0
)

// FantasyPoints applies the fixed linear scoring formula to a stat line.
func FantasyPoints(l StatLine) float64 {
	return l.Points*PointsWeight +
		l.Rebounds*ReboundsWeight +
		l.Assists*AssistsWeight +
		l.Steals*StealsWeight +
		l.Blocks*BlocksWeight +
		l.Turnovers*TurnoversWeight
}

// ShootingPercentages returns FG%, 3P% and FT% in [0, 1]. Zero attempts yield 0.
func ShootingPercentages(l StatLine) (fg, three, ft float64) {
	return pct(l.FieldGoalsMade, l.FieldGoalsAttempted),
		pct(l.ThreesMade, l.ThreesAttempted),
		pct(l.FreeThrowsMade, l.FreeThrowsAttempted)
}

func pct(made, attempted float64) float64 {
	if attempted <= 0 || made <= 0 {
		return 0
	}
	if made >= attempted {
		return 1
	}
	return made / attempted
}
