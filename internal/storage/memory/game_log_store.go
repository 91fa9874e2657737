package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// GameLogStore is an in-memory implementation of storage.GameLogStore.
type GameLogStore struct {
	mu   sync.RWMutex
	data map[string]*domain.GameLog // keyed by player id + game date
}

// NewGameLogStore creates a new in-memory game log store.
func NewGameLogStore() *GameLogStore {
	return &GameLogStore{
		data: make(map[string]*domain.GameLog),
	}
}

func gameLogKey(g *domain.GameLog) string {
	return fmt.Sprintf("%s|%s", g.PlayerID, g.GameDate.UTC().Format("2006-01-02"))
}

// InsertBulk adds multiple logs atomically. Fails entire batch on any duplicate.
func (s *GameLogStore) InsertBulk(_ context.Context, logs []*domain.GameLog) error {
	if len(logs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(logs))
	for _, g := range logs {
		if g == nil || g.PlayerID == "" || g.GameDate.IsZero() {
			return storage.ErrInvalidInput
		}
		key := gameLogKey(g)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, g := range logs {
		cp := *g
		s.data[gameLogKey(g)] = &cp
	}
	return nil
}

// GetByPlayer retrieves all logs for a player, ordered by game date ASC.
func (s *GameLogStore) GetByPlayer(_ context.Context, playerID string) ([]*domain.GameLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.GameLog
	for _, g := range s.data {
		if g.PlayerID == playerID {
			cp := *g
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GameDate.Before(result[j].GameDate)
	})
	return result, nil
}

// ListPlayerIDs returns every distinct player id, sorted ASC.
func (s *GameLogStore) ListPlayerIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, g := range s.data {
		seen[g.PlayerID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListSeasons returns every distinct season, sorted ASC.
func (s *GameLogStore) ListSeasons(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]struct{})
	for _, g := range s.data {
		seen[g.Season] = struct{}{}
	}
	seasons := make([]int, 0, len(seen))
	for season := range seen {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons, nil
}

var _ storage.GameLogStore = (*GameLogStore)(nil)
