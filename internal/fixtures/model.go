// Package fixtures generates deterministic synthetic static tables and game
// logs for demonstration runs and tests.
package fixtures

import (
	"math"

	"nba-projection-lab/internal/domain"
)

// perMinute is the per-minute production of an average player at a position.
var perMinute = map[domain.Position]domain.StatLine{
	domain.PositionGuard: {
		Points: 0.52, Rebounds: 0.12, Assists: 0.19, Steals: 0.036, Blocks: 0.010,
		Turnovers: 0.065, ThreesMade: 0.075, ThreesAttempted: 0.21,
	},
	domain.PositionForward: {
		Points: 0.48, Rebounds: 0.21, Assists: 0.08, Steals: 0.030, Blocks: 0.020,
		Turnovers: 0.050, ThreesMade: 0.050, ThreesAttempted: 0.14,
	},
	domain.PositionCenter: {
		Points: 0.49, Rebounds: 0.31, Assists: 0.06, Steals: 0.024, Blocks: 0.050,
		Turnovers: 0.060, ThreesMade: 0.010, ThreesAttempted: 0.03,
	},
}

// roleMinutes is the typical minutes per game of each role.
var roleMinutes = map[domain.Role]float64{
	domain.RoleStarter:  33,
	domain.RoleRotation: 22,
	domain.RoleBench:    12,
	domain.RoleScrub:    5,
}

// ageFactor scales production around a peak at 27.
func ageFactor(age int) float64 {
	d := float64(age - 27)
	return math.Max(1-0.004*d*d, 0.6)
}

// expectedLine is the model's per-game line for (position, minutes, age),
// with shooting columns derived from points and threes.
func expectedLine(pos domain.Position, minutes float64, age int) domain.StatLine {
	line := perMinute[pos].Scale(minutes * ageFactor(age))
	line.Minutes = minutes
	fillShooting(&line)
	return line
}

// fillShooting derives makes and attempts consistent with points and threes.
func fillShooting(l *domain.StatLine) {
	l.FreeThrowsMade = 0.15 * l.Points
	l.FreeThrowsAttempted = l.FreeThrowsMade / 0.78
	twos := math.Max((l.Points-3*l.ThreesMade-l.FreeThrowsMade)/2, 0)
	l.FieldGoalsMade = twos + l.ThreesMade
	l.FieldGoalsAttempted = twos/0.52 + l.ThreesAttempted
}
