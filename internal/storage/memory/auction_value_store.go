package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// AuctionValueStore is an in-memory implementation of storage.AuctionValueStore.
type AuctionValueStore struct {
	mu   sync.RWMutex
	runs map[string][]*domain.AuctionValue
}

// NewAuctionValueStore creates a new in-memory auction value store.
func NewAuctionValueStore() *AuctionValueStore {
	return &AuctionValueStore{
		runs: make(map[string][]*domain.AuctionValue),
	}
}

// InsertBulk adds a run's auction values. A run is written once.
func (s *AuctionValueStore) InsertBulk(_ context.Context, runID string, values []*domain.AuctionValue) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(values) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; exists {
		return storage.ErrDuplicateKey
	}

	seen := make(map[string]struct{}, len(values))
	rows := make([]*domain.AuctionValue, 0, len(values))
	for _, v := range values {
		if v == nil || v.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[v.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[v.PlayerID] = struct{}{}
		rows = append(rows, cloneValue(v))
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})
	s.runs[runID] = rows
	return nil
}

// GetByRun retrieves a run's values ordered by rank ASC.
func (s *AuctionValueStore) GetByRun(_ context.Context, runID string) ([]*domain.AuctionValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.runs[runID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	result := make([]*domain.AuctionValue, len(rows))
	for i, v := range rows {
		result[i] = cloneValue(v)
	}
	return result, nil
}

func cloneValue(v *domain.AuctionValue) *domain.AuctionValue {
	cp := *v
	cp.CategoryZ = maps.Clone(v.CategoryZ)
	return &cp
}

var _ storage.AuctionValueStore = (*AuctionValueStore)(nil)
