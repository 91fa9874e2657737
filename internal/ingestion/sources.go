package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"nba-projection-lab/internal/domain"
)

// ErrInvalidGameLog is returned when a source row fails validation.
var ErrInvalidGameLog = errors.New("invalid game log")

// GameLogSource provides raw game logs from external sources.
type GameLogSource interface {
	// Fetch returns every game log the source holds.
	// Rows may be unordered; Manager enforces deterministic ordering.
	Fetch(ctx context.Context) ([]*domain.GameLog, error)
}

// JSONSource reads a JSON array of game logs.
type JSONSource struct {
	open func() (io.ReadCloser, error)
}

// NewJSONFileSource returns a source reading path on every Fetch.
func NewJSONFileSource(path string) *JSONSource {
	return &JSONSource{open: func() (io.ReadCloser, error) { return os.Open(path) }}
}

// NewJSONReaderSource returns a source over an already open reader.
// The reader is consumed by the first Fetch.
func NewJSONReaderSource(r io.Reader) *JSONSource {
	return &JSONSource{open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil }}
}

// Fetch decodes and validates every row.
func (s *JSONSource) Fetch(ctx context.Context) ([]*domain.GameLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open game logs: %w", err)
	}
	defer rc.Close()

	var logs []*domain.GameLog
	if err := json.NewDecoder(rc).Decode(&logs); err != nil {
		return nil, fmt.Errorf("decode game logs: %w", err)
	}
	for i, g := range logs {
		if err := ValidateGameLog(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return logs, nil
}

// ValidateGameLog checks the fields the baseline builder relies on.
func ValidateGameLog(g *domain.GameLog) error {
	switch {
	case g == nil:
		return fmt.Errorf("%w: nil row", ErrInvalidGameLog)
	case g.PlayerID == "":
		return fmt.Errorf("%w: missing player_id", ErrInvalidGameLog)
	case g.GameDate.IsZero():
		return fmt.Errorf("%w: %s missing game_date", ErrInvalidGameLog, g.PlayerID)
	case g.Season <= 0:
		return fmt.Errorf("%w: %s missing season", ErrInvalidGameLog, g.PlayerID)
	case g.Age <= 0:
		return fmt.Errorf("%w: %s missing age", ErrInvalidGameLog, g.PlayerID)
	}
	line := g.Line()
	for _, st := range domain.AllStats {
		if line.Get(st) < 0 {
			return fmt.Errorf("%w: %s negative %s on %s",
				ErrInvalidGameLog, g.PlayerID, st, g.GameDate.Format("2006-01-02"))
		}
	}
	return nil
}
