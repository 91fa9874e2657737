package clickhouse

import (
	"context"
	"fmt"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// AuctionValueStore implements storage.AuctionValueStore using ClickHouse.
type AuctionValueStore struct {
	conn *Conn
}

// NewAuctionValueStore creates a new AuctionValueStore.
func NewAuctionValueStore(conn *Conn) *AuctionValueStore {
	return &AuctionValueStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AuctionValueStore = (*AuctionValueStore)(nil)

const auctionColumns = `
	run_id, player_id, name, position,
	z_points, z_rebounds, z_assists, z_steals, z_blocks, z_threes,
	raw_z, sgp_value, scarcity_value, rank, in_pool, dollar_value`

// InsertBulk adds a run's auction values in one batch.
func (s *AuctionValueStore) InsertBulk(ctx context.Context, runID string, values []*domain.AuctionValue) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == nil || v.PlayerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[v.PlayerID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[v.PlayerID] = struct{}{}
	}

	exists, err := runExists(ctx, s.conn, "auction_values", runID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO auction_values ("+auctionColumns+")")
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, v := range values {
		z := v.CategoryZ
		err = batch.Append(
			runID, v.PlayerID, v.Name, string(v.Position),
			z[domain.CategoryPoints], z[domain.CategoryRebounds], z[domain.CategoryAssists],
			z[domain.CategorySteals], z[domain.CategoryBlocks], z[domain.CategoryThrees],
			v.RawZ, v.SGPValue, v.ScarcityValue, int32(v.Rank), v.InPool, int32(v.DollarValue),
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

// GetByRun retrieves a run's values ordered by rank ASC.
func (s *AuctionValueStore) GetByRun(ctx context.Context, runID string) ([]*domain.AuctionValue, error) {
	query := "SELECT" + auctionColumns + `
		FROM auction_values
		WHERE run_id = ?
		ORDER BY rank ASC`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query auction values by run: %w", err)
	}
	defer rows.Close()

	result, err := scanAuctionValues(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

func scanAuctionValues(rows chRows) ([]*domain.AuctionValue, error) {
	var result []*domain.AuctionValue

	for rows.Next() {
		var (
			v                      domain.AuctionValue
			runID, pos             string
			zp, zr, za, zs, zb, zt float64
			rank, dollars          int32
		)
		err := rows.Scan(
			&runID, &v.PlayerID, &v.Name, &pos,
			&zp, &zr, &za, &zs, &zb, &zt,
			&v.RawZ, &v.SGPValue, &v.ScarcityValue, &rank, &v.InPool, &dollars,
		)
		if err != nil {
			return nil, fmt.Errorf("scan auction value row: %w", err)
		}
		v.Position = domain.Position(pos)
		v.Rank = int(rank)
		v.DollarValue = int(dollars)
		v.CategoryZ = map[domain.Category]float64{
			domain.CategoryPoints:   zp,
			domain.CategoryRebounds: zr,
			domain.CategoryAssists:  za,
			domain.CategorySteals:   zs,
			domain.CategoryBlocks:   zb,
			domain.CategoryThrees:   zt,
		}

		result = append(result, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auction value rows: %w", err)
	}
	return result, nil
}
