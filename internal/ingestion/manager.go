package ingestion

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/logging"
	"nba-projection-lab/internal/observability"
	"nba-projection-lab/internal/storage"
)

// DefaultBatchSize bounds rows per InsertBulk call.
const DefaultBatchSize = 5000

// Manager moves game logs from a source into storage.
// It enforces deterministic ordering and uses the storage layer for duplicate rejection.
type Manager struct {
	source    GameLogSource
	store     storage.GameLogStore
	batchSize int
	log       logrus.FieldLogger
}

// ManagerOptions contains configuration for creating a Manager.
type ManagerOptions struct {
	Source    GameLogSource
	Store     storage.GameLogStore
	BatchSize int // Default: DefaultBatchSize
	Logger    logrus.FieldLogger
}

// NewManager creates a new ingestion manager.
func NewManager(opts ManagerOptions) *Manager {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Manager{
		source:    opts.Source,
		store:     opts.Store,
		batchSize: batch,
		log:       logging.OrDiscard(opts.Logger),
	}
}

// Result summarizes one ingestion pass.
type Result struct {
	Fetched  int
	Inserted int
	Batches  int
}

// Ingest fetches every row, orders it and stores it in batches.
// A repeated (player_id, game_date) in the source fails before any write;
// a row already in storage fails its batch with storage.ErrDuplicateKey.
func (m *Manager) Ingest(ctx context.Context) (Result, error) {
	var res Result
	if m.source == nil || m.store == nil {
		return res, nil
	}

	logs, err := m.source.Fetch(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch game logs: %w", err)
	}
	res.Fetched = len(logs)
	if len(logs) == 0 {
		return res, nil
	}

	SortGameLogs(logs)
	if err := ValidateGameLogOrdering(logs); err != nil {
		return res, fmt.Errorf("%w: %w", storage.ErrDuplicateKey, err)
	}

	for start := 0; start < len(logs); start += m.batchSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+m.batchSize, len(logs))
		batch := logs[start:end]
		if err := m.store.InsertBulk(ctx, batch); err != nil {
			return res, fmt.Errorf("insert batch %d (%s..%s): %w",
				res.Batches, batch[0].PlayerID, batch[len(batch)-1].PlayerID, err)
		}
		res.Inserted += len(batch)
		res.Batches++
		observability.RecordGameLogsIngested(len(batch))
		m.log.WithFields(logrus.Fields{
			"batch": res.Batches,
			"rows":  len(batch),
		}).Debug("game log batch stored")
	}

	m.log.WithFields(logrus.Fields{
		"rows":    res.Inserted,
		"batches": res.Batches,
		"players": countPlayers(logs),
	}).Info("game logs ingested")
	return res, nil
}

func countPlayers(sorted []*domain.GameLog) int {
	n := 0
	for i, g := range sorted {
		if i == 0 || g.PlayerID != sorted[i-1].PlayerID {
			n++
		}
	}
	return n
}
