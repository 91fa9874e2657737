package storage

import (
	"context"

	"nba-projection-lab/internal/domain"
)

// GameLogStore provides access to game_logs storage.
type GameLogStore interface {
	// InsertBulk adds multiple game logs atomically. Fails entire batch on
	// duplicate (player_id, game_date).
	InsertBulk(ctx context.Context, logs []*domain.GameLog) error

	// GetByPlayer retrieves all logs for a player, ordered by game date ASC.
	GetByPlayer(ctx context.Context, playerID string) ([]*domain.GameLog, error)

	// ListPlayerIDs returns every distinct player id, sorted ASC.
	ListPlayerIDs(ctx context.Context) ([]string, error)

	// ListSeasons returns every distinct season year, sorted ASC.
	ListSeasons(ctx context.Context) ([]int, error)
}

// ProjectionStore provides access to season_projections storage.
// Rows are grouped by run id; a run is written once.
type ProjectionStore interface {
	// InsertBulk adds a run's projections. Returns ErrDuplicateKey if the run
	// already has rows or the batch repeats a player.
	InsertBulk(ctx context.Context, runID string, projections []*domain.SeasonProjection) error

	// GetByRun retrieves a run's projections ordered by player id ASC.
	// Returns ErrNotFound if the run has no rows.
	GetByRun(ctx context.Context, runID string) ([]*domain.SeasonProjection, error)
}

// AuctionValueStore provides access to auction_values storage.
type AuctionValueStore interface {
	// InsertBulk adds a run's auction values. Returns ErrDuplicateKey if the
	// run already has rows or the batch repeats a player.
	InsertBulk(ctx context.Context, runID string, values []*domain.AuctionValue) error

	// GetByRun retrieves a run's values ordered by rank ASC.
	// Returns ErrNotFound if the run has no rows.
	GetByRun(ctx context.Context, runID string) ([]*domain.AuctionValue, error)
}
