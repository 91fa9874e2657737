package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/storage"
)

// Generator produces reports from stored runs.
type Generator struct {
	projectionStore storage.ProjectionStore
	auctionStore    storage.AuctionValueStore
	now             func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(projectionStore storage.ProjectionStore, auctionStore storage.AuctionValueStore) *Generator {
	return &Generator{
		projectionStore: projectionStore,
		auctionStore:    auctionStore,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads one run and builds its report. Contracts and coverage are
// left empty.
func (g *Generator) Generate(ctx context.Context, runID string) (*Report, error) {
	projections, err := g.projectionStore.GetByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load projections: %w", err)
	}
	values, err := g.auctionStore.GetByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load auction values: %w", err)
	}
	return Build(g.now(), runID, projections, values), nil
}

// Build assembles a report from in-memory run output.
func Build(generatedAt time.Time, runID string, projections []*domain.SeasonProjection, values []*domain.AuctionValue) *Report {
	projections = append([]*domain.SeasonProjection(nil), projections...)
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].PlayerID < projections[j].PlayerID
	})
	values = append([]*domain.AuctionValue(nil), values...)
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Rank != values[j].Rank {
			return values[i].Rank < values[j].Rank
		}
		return values[i].PlayerID < values[j].PlayerID
	})

	return &Report{
		GeneratedAt: generatedAt,
		RunID:       runID,
		Summary:     summarize(projections, values),
		Projections: projections,
		Values:      values,
		Positions:   positionBreakdown(values),
	}
}

func summarize(projections []*domain.SeasonProjection, values []*domain.AuctionValue) Summary {
	s := Summary{PlayersProjected: len(projections)}

	var fp, games float64
	for _, p := range projections {
		fp += p.FantasyPoints
		games += float64(p.GamesProjected)
	}
	if len(projections) > 0 {
		s.MeanFantasyPts = fp / float64(len(projections))
		s.MeanGamesProjected = games / float64(len(projections))
	}

	for _, v := range values {
		if v.InPool {
			s.PoolSize++
		}
		s.DollarsAssigned += v.DollarValue
	}
	if len(values) > 0 {
		s.TopPlayerID = values[0].PlayerID
		s.TopDollarValue = values[0].DollarValue
	}
	return s
}

func positionBreakdown(values []*domain.AuctionValue) []PositionRow {
	if len(values) == 0 {
		return nil
	}
	byPos := make(map[domain.Position]*PositionRow, len(domain.AllPositions))
	for _, pos := range domain.AllPositions {
		byPos[pos] = &PositionRow{Position: pos}
	}
	for _, v := range values {
		row, ok := byPos[v.Position]
		if !ok {
			continue
		}
		row.Players++
		row.DollarsAssigned += v.DollarValue
		if v.InPool {
			row.InPool++
		}
	}

	rows := make([]PositionRow, 0, len(domain.AllPositions))
	for _, pos := range domain.AllPositions {
		row := byPos[pos]
		if row.Players > 0 {
			row.MeanDollarValue = float64(row.DollarsAssigned) / float64(row.Players)
		}
		rows = append(rows, *row)
	}
	return rows
}
