package domain

import "time"

// GameLog is one player's box score for one game.
// Rows arrive validated from ingestion; the engine assumes well-typed input.
type GameLog struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	// Position is the raw roster designation, e.g. "PG" or "F-C".
	Position   string    `json:"position"`
	Age        int       `json:"age"`
	GameDate   time.Time `json:"game_date"`
	// Season is the season year, e.g. 2024 for 2023-24.
	Season     int       `json:"season"`
	Home       bool      `json:"home"`
	Opponent   string    `json:"opponent"`

	Minutes             float64 `json:"minutes"`
	Points              float64 `json:"points"`
	Rebounds            float64 `json:"rebounds"`
	Assists             float64 `json:"assists"`
	Steals              float64 `json:"steals"`
	Blocks              float64 `json:"blocks"`
	Turnovers           float64 `json:"turnovers"`
	ThreesMade          float64 `json:"threes_made"`
	ThreesAttempted     float64 `json:"threes_attempted"`
	FieldGoalsMade      float64 `json:"field_goals_made"`
	FieldGoalsAttempted float64 `json:"field_goals_attempted"`
	FreeThrowsMade      float64 `json:"free_throws_made"`
	FreeThrowsAttempted float64 `json:"free_throws_attempted"`
}

// Line returns the box score as a StatLine.
func (g *GameLog) Line() StatLine {
	return StatLine{
		Minutes:             g.Minutes,
		Points:              g.Points,
		Rebounds:            g.Rebounds,
		Assists:             g.Assists,
		Steals:              g.Steals,
		Blocks:              g.Blocks,
		Turnovers:           g.Turnovers,
		ThreesMade:          g.ThreesMade,
		ThreesAttempted:     g.ThreesAttempted,
		FieldGoalsMade:      g.FieldGoalsMade,
		FieldGoalsAttempted: g.FieldGoalsAttempted,
		FreeThrowsMade:      g.FreeThrowsMade,
		FreeThrowsAttempted: g.FreeThrowsAttempted,
	}
}
