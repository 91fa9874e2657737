package clickhouse

import (
	"context"
	"fmt"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// ProjectionStore implements storage.ProjectionStore using ClickHouse.
type ProjectionStore struct {
	conn *Conn
}

// NewProjectionStore creates a new ProjectionStore.
func NewProjectionStore(conn *Conn) *ProjectionStore {
	return &ProjectionStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProjectionStore = (*ProjectionStore)(nil)

const projectionColumns = `
	run_id, player_id, name, team, position, role, age, bracket,
	minutes, points, rebounds, assists, steals, blocks, turnovers,
	threes_made, threes_attempted, field_goals_made, field_goals_attempted,
	free_throws_made, free_throws_attempted,
	fg_pct, three_pct, ft_pct, fantasy_pts, games_projected, fantasy_total,
	ceiling, floor, consistency`

// InsertBulk adds a run's projections in one batch.
func (s *ProjectionStore) InsertBulk(ctx context.Context, runID string, projections []*domain.SeasonProjection) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(projections) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(projections))
	for _, p := range projections {
		if p == nil || p.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[p.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[p.PlayerID] = struct{}{}
	}

	exists, err := runExists(ctx, s.conn, "season_projections", runID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO season_projections ("+projectionColumns+")")
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range projections {
		l := p.PerGame
		err = batch.Append(
			runID, p.PlayerID, p.Name, p.Team, string(p.Position), string(p.Role), int32(p.Age), string(p.Bracket),
			l.Minutes, l.Points, l.Rebounds, l.Assists, l.Steals, l.Blocks, l.Turnovers,
			l.ThreesMade, l.ThreesAttempted, l.FieldGoalsMade, l.FieldGoalsAttempted,
			l.FreeThrowsMade, l.FreeThrowsAttempted,
			p.FieldGoalPct, p.ThreePointPct, p.FreeThrowPct, p.FantasyPoints, int32(p.GamesProjected), p.FantasyTotal,
			p.Ceiling, p.Floor, int32(p.Consistency),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByRun retrieves a run's projections ordered by player id ASC.
func (s *ProjectionStore) GetByRun(ctx context.Context, runID string) ([]*domain.SeasonProjection, error) {
	query := "SELECT" + projectionColumns + `
		FROM season_projections
		WHERE run_id = ?
		ORDER BY player_id ASC`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query projections by run: %w", err)
	}
	defer rows.Close()

	result, err := scanProjections(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

func scanProjections(rows chRows) ([]*domain.SeasonProjection, error) {
	var result []*domain.SeasonProjection

	for rows.Next() {
		var (
			p                         domain.SeasonProjection
			runID, pos, role, bracket string
			age, games, consistency   int32
		)
		l := &p.PerGame
		err := rows.Scan(
			&runID, &p.PlayerID, &p.Name, &p.Team, &pos, &role, &age, &bracket,
			&l.Minutes, &l.Points, &l.Rebounds, &l.Assists, &l.Steals, &l.Blocks, &l.Turnovers,
			&l.ThreesMade, &l.ThreesAttempted, &l.FieldGoalsMade, &l.FieldGoalsAttempted,
			&l.FreeThrowsMade, &l.FreeThrowsAttempted,
			&p.FieldGoalPct, &p.ThreePointPct, &p.FreeThrowPct, &p.FantasyPoints, &games, &p.FantasyTotal,
			&p.Ceiling, &p.Floor, &consistency,
		)
		if err != nil {
			return nil, fmt.Errorf("scan projection row: %w", err)
		}
		p.Position = domain.Position(pos)
		p.Role = domain.Role(role)
		p.Bracket = domain.AgeBracket(bracket)
		p.Age = int(age)
		p.GamesProjected = int(games)
		p.Consistency = int(consistency)
		p.Totals = p.PerGame.Scale(float64(p.GamesProjected))

		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projection rows: %w", err)
	}
	return result, nil
}
