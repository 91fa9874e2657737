package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// GameLogStore implements storage.GameLogStore using PostgreSQL.
type GameLogStore struct {
	pool *Pool
}

// NewGameLogStore creates a new GameLogStore.
func NewGameLogStore(pool *Pool) *GameLogStore {
	return &GameLogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.GameLogStore = (*GameLogStore)(nil)

var gameLogColumns = []string{
	"player_id", "player_name", "team", "position", "age", "game_date", "season", "home", "opponent",
	"minutes", "points", "rebounds", "assists", "steals", "blocks", "turnovers",
	"threes_made", "threes_attempted", "field_goals_made", "field_goals_attempted",
	"free_throws_made", "free_throws_attempted",
}

// InsertBulk copies logs in one transaction. Fails entire batch on any
// duplicate (player_id, game_date).
func (s *GameLogStore) InsertBulk(ctx context.Context, logs []*domain.GameLog) error {
	if len(logs) == 0 {
		return nil
	}
	for _, g := range logs {
		if g == nil || g.PlayerID == "" || g.GameDate.IsZero() {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"game_logs"},
		gameLogColumns,
		pgx.CopyFromSlice(len(logs), func(i int) ([]any, error) {
			g := logs[i]
			return []any{
				g.PlayerID, g.PlayerName, g.Team, g.Position, g.Age, g.GameDate, g.Season, g.Home, g.Opponent,
				g.Minutes, g.Points, g.Rebounds, g.Assists, g.Steals, g.Blocks, g.Turnovers,
				g.ThreesMade, g.ThreesAttempted, g.FieldGoalsMade, g.FieldGoalsAttempted,
				g.FreeThrowsMade, g.FreeThrowsAttempted,
			}, nil
		}),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("copy game logs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByPlayer retrieves all logs for a player, ordered by game date ASC.
func (s *GameLogStore) GetByPlayer(ctx context.Context, playerID string) ([]*domain.GameLog, error) {
	query := `
		SELECT player_id, player_name, team, position, age, game_date, season, home, opponent,
			minutes, points, rebounds, assists, steals, blocks, turnovers,
			threes_made, threes_attempted, field_goals_made, field_goals_attempted,
			free_throws_made, free_throws_attempted
		FROM game_logs
		WHERE player_id = $1
		ORDER BY game_date ASC
	`

	rows, err := s.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("get game logs by player: %w", err)
	}
	defer rows.Close()

	return scanGameLogs(rows)
}

// ListPlayerIDs returns every distinct player id, sorted ASC.
func (s *GameLogStore) ListPlayerIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT player_id FROM game_logs ORDER BY player_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect player ids: %w", err)
	}
	return ids, nil
}

// ListSeasons returns every distinct season, sorted ASC.
func (s *GameLogStore) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT season FROM game_logs ORDER BY season ASC`)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	seasons, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("collect seasons: %w", err)
	}
	out := make([]int, len(seasons))
	for i, v := range seasons {
		out[i] = int(v)
	}
	return out, nil
}

func scanGameLogs(rows pgx.Rows) ([]*domain.GameLog, error) {
	var logs []*domain.GameLog

	for rows.Next() {
		var g domain.GameLog
		var age, season int32

		err := rows.Scan(
			&g.PlayerID, &g.PlayerName, &g.Team, &g.Position, &age, &g.GameDate, &season, &g.Home, &g.Opponent,
			&g.Minutes, &g.Points, &g.Rebounds, &g.Assists, &g.Steals, &g.Blocks, &g.Turnovers,
			&g.ThreesMade, &g.ThreesAttempted, &g.FieldGoalsMade, &g.FieldGoalsAttempted,
			&g.FreeThrowsMade, &g.FreeThrowsAttempted,
		)
		if err != nil {
			return nil, fmt.Errorf("scan game log row: %w", err)
		}
		g.Age = int(age)
		g.Season = int(season)

		logs = append(logs, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game log rows: %w", err)
	}

	return logs, nil
}
