package memory

import (
	"context"
	"sort"
	"sync"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// ProjectionStore is an in-memory implementation of storage.ProjectionStore.
type ProjectionStore struct {
	mu   sync.RWMutex
	runs map[string][]*domain.SeasonProjection
}

// NewProjectionStore creates a new in-memory projection store.
func NewProjectionStore() *ProjectionStore {
	return &ProjectionStore{
		runs: make(map[string][]*domain.SeasonProjection),
	}
}

// InsertBulk adds a run's projections. A run is written once.
func (s *ProjectionStore) InsertBulk(_ context.Context, runID string, projections []*domain.SeasonProjection) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(projections) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; exists {
		return storage.ErrDuplicateKey
	}

	seen := make(map[string]struct{}, len(projections))
	rows := make([]*domain.SeasonProjection, 0, len(projections))
	for _, p := range projections {
		if p == nil || p.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[p.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[p.PlayerID] = struct{}{}
		cp := *p
		rows = append(rows, &cp)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PlayerID < rows[j].PlayerID
	})
	s.runs[runID] = rows
	return nil
}

// GetByRun retrieves a run's projections ordered by player id ASC.
func (s *ProjectionStore) GetByRun(_ context.Context, runID string) ([]*domain.SeasonProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.runs[runID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	result := make([]*domain.SeasonProjection, len(rows))
	for i, p := range rows {
		cp := *p
		result[i] = &cp
	}
	return result, nil
}

var _ storage.ProjectionStore = (*ProjectionStore)(nil)
