package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

func gameLog(playerID string, season int, date string) *domain.GameLog {
	d, _ := time.Parse("2006-01-02", date)
	return &domain.GameLog{
		PlayerID: playerID,
		Season:   season,
		GameDate: d,
		Minutes:  30,
		Points:   20,
	}
}

func TestGameLogStore_InsertAndGet(t *testing.T) {
	store := NewGameLogStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.GameLog{
		gameLog("p1", 2024, "2024-01-03"),
		gameLog("p1", 2024, "2023-11-01"),
		gameLog("p2", 2024, "2023-11-01"),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByPlayer(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByPlayer failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(result))
	}
	if !result[0].GameDate.Before(result[1].GameDate) {
		t.Errorf("Logs not ordered by date: %v, %v", result[0].GameDate, result[1].GameDate)
	}
}

func TestGameLogStore_DuplicateKey(t *testing.T) {
	store := NewGameLogStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.GameLog{gameLog("p1", 2024, "2024-01-03")}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.GameLog{
		gameLog("p1", 2024, "2024-01-05"),
		gameLog("p1", 2024, "2024-01-03"),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Failed batch must not be partially applied.
	result, _ := store.GetByPlayer(ctx, "p1")
	if len(result) != 1 {
		t.Errorf("Expected 1 log after failed batch, got %d", len(result))
	}
}

func TestGameLogStore_IntraBatchDuplicate(t *testing.T) {
	store := NewGameLogStore()

	err := store.InsertBulk(context.Background(), []*domain.GameLog{
		gameLog("p1", 2024, "2024-01-03"),
		gameLog("p1", 2024, "2024-01-03"),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestGameLogStore_InvalidInput(t *testing.T) {
	store := NewGameLogStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.GameLog{nil}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.InsertBulk(ctx, []*domain.GameLog{{PlayerID: "p1"}}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero date, got %v", err)
	}
}

func TestGameLogStore_ListPlayersAndSeasons(t *testing.T) {
	store := NewGameLogStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.GameLog{
		gameLog("p3", 2024, "2024-01-03"),
		gameLog("p1", 2023, "2023-01-03"),
		gameLog("p2", 2024, "2024-01-03"),
		gameLog("p1", 2024, "2024-01-03"),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	ids, err := store.ListPlayerIDs(ctx)
	if err != nil {
		t.Fatalf("ListPlayerIDs failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "p1" || ids[2] != "p3" {
		t.Errorf("Unexpected player ids: %v", ids)
	}

	seasons, err := store.ListSeasons(ctx)
	if err != nil {
		t.Fatalf("ListSeasons failed: %v", err)
	}
	if len(seasons) != 2 || seasons[0] != 2023 || seasons[1] != 2024 {
		t.Errorf("Unexpected seasons: %v", seasons)
	}
}

func TestGameLogStore_ReturnsCopies(t *testing.T) {
	store := NewGameLogStore()
	ctx := context.Background()

	g := gameLog("p1", 2024, "2024-01-03")
	if err := store.InsertBulk(ctx, []*domain.GameLog{g}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	g.Points = 99

	result, _ := store.GetByPlayer(ctx, "p1")
	result[0].Points = 77

	again, _ := store.GetByPlayer(ctx, "p1")
	if again[0].Points != 20 {
		t.Errorf("Stored log was mutated: points = %f", again[0].Points)
	}
}
