package ingestion

import (
	"errors"
	"sort"

	"nba-projection-lab/internal/domain"
)

// ErrInvalidOrdering is returned when rows are not properly ordered.
var ErrInvalidOrdering = errors.New("game logs are not in deterministic order")

// SortGameLogs orders rows by (player_id ASC, game_date ASC).
func SortGameLogs(logs []*domain.GameLog) {
	sort.Slice(logs, func(i, j int) bool {
		return compareGameLogs(logs[i], logs[j]) < 0
	})
}

// ValidateGameLogOrdering checks that rows are strictly ordered, which also
// rejects a repeated (player_id, game_date).
func ValidateGameLogOrdering(logs []*domain.GameLog) error {
	for i := 1; i < len(logs); i++ {
		if compareGameLogs(logs[i-1], logs[i]) >= 0 {
			return ErrInvalidOrdering
		}
	}
	return nil
}

// compareGameLogs returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
//
// Order: (player_id ASC, game_date ASC)
func compareGameLogs(a, b *domain.GameLog) int {
	if a.PlayerID != b.PlayerID {
		if a.PlayerID < b.PlayerID {
			return -1
		}
		return 1
	}
	return a.GameDate.Compare(b.GameDate)
}
