package storage

import "errors"

var (
	// ErrNotFound is returned when a run or player has no stored rows.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a (player_id, game_date) or
	// (run_id, player_id) key is already stored. Rows are never updated.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned for nil rows, empty keys or zero dates.
	ErrInvalidInput = errors.New("invalid input")
)
