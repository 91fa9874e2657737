package reporting

import (
	"time"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/lookup"
)

// Report represents one projection run.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	Summary Summary

	// Season projections, sorted by player_id
	Projections []*domain.SeasonProjection

	// Auction values, sorted by rank
	Values []*domain.AuctionValue

	// Per-position pool breakdown in canonical position order
	Positions []PositionRow

	// Optional sections. Contracts need player contexts and coverage needs
	// the static tables, so neither can be rebuilt from persisted rows.
	Contracts []ContractRow
	Coverage  []lookup.TableCoverage
}

// Summary contains run-level totals.
type Summary struct {
	PlayersProjected   int
	PoolSize           int
	DollarsAssigned    int
	TopPlayerID        string
	TopDollarValue     int
	MeanFantasyPts     float64
	MeanGamesProjected float64
}

// PositionRow aggregates the auction pool for one position.
type PositionRow struct {
	Position        domain.Position
	Players         int
	InPool          int
	DollarsAssigned int
	MeanDollarValue float64
}

// ContractRow is one player's stat contract.
type ContractRow struct {
	PlayerID string
	domain.StatContract
}
