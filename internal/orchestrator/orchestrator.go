// Package orchestrator runs one batch projection pass.
// It coordinates: game logs → baseline + projection → auction → game-day → persistence
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"nba-projection-lab/internal/auction"
	"nba-projection-lab/internal/baseline"
	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/gameday"
	"nba-projection-lab/internal/logging"
	"nba-projection-lab/internal/lookup"
	"nba-projection-lab/internal/observability"
	"nba-projection-lab/internal/projection"
	"nba-projection-lab/internal/storage"
)

// ErrNoPlayers is returned when no player qualifies for a projection.
var ErrNoPlayers = errors.New("no players to project")

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Orchestrator coordinates one projection run.
type Orchestrator struct {
	// Stores
	gameLogStore      storage.GameLogStore
	projectionStore   storage.ProjectionStore
	auctionValueStore storage.AuctionValueStore

	tables        *lookup.StaticDataStore
	era           string
	currentSeason int
	workers       int
	auctionConfig auction.Config
	gameContexts  map[string]domain.GameContext

	log      logrus.FieldLogger
	newRunID func() string
}

// Options for creating Orchestrator.
type Options struct {
	// Required
	GameLogStore storage.GameLogStore
	Tables       *lookup.StaticDataStore

	// Optional sinks; nil skips persistence
	ProjectionStore   storage.ProjectionStore
	AuctionValueStore storage.AuctionValueStore

	Era           string // Default: lookup.EraModern
	CurrentSeason int    // 0 uses the latest season in GameLogStore
	Workers       int
	Auction       auction.Config

	// GameContexts attaches an upcoming game to a player id.
	GameContexts map[string]domain.GameContext

	Logger   logrus.FieldLogger
	NewRunID func() string // Default: uuid.NewString
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	era := opts.Era
	if era == "" {
		era = lookup.EraModern
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	cfg := opts.Auction
	if cfg == (auction.Config{}) {
		cfg = auction.DefaultConfig()
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	return &Orchestrator{
		gameLogStore:      opts.GameLogStore,
		projectionStore:   opts.ProjectionStore,
		auctionValueStore: opts.AuctionValueStore,
		tables:            opts.Tables,
		era:               era,
		currentSeason:     opts.CurrentSeason,
		workers:           workers,
		auctionConfig:     cfg,
		gameContexts:      opts.GameContexts,
		log:               logging.OrDiscard(opts.Logger),
		newRunID:          newRunID,
	}
}

// RunResult contains everything one run produced.
type RunResult struct {
	RunID         string
	CurrentSeason int
	PlayersLoaded int
	// Skipped lists players without enough current-season games, sorted.
	Skipped []string

	// Contexts and Projections are parallel, ordered by player id.
	Contexts    []domain.PlayerContext
	Projections []domain.SeasonProjection

	Auction  auction.Result
	GameDay  []domain.GameDayProjection // ordered by player id
	Coverage []lookup.TableCoverage
}

// Run executes the full pipeline.
// Phases:
//  1. Resolve the current season and list players
//  2. Build baselines and project each player on a bounded worker pool
//  3. Price the auction over all projections
//  4. Adjust projections for players with an upcoming game
//  5. Audit lookup coverage
//  6. Persist projections and auction values
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if o.gameLogStore == nil || o.tables == nil {
		return nil, fmt.Errorf("orchestrator: game log store and tables are required")
	}
	if !o.tables.HasEra(o.era) {
		o.log.WithField("era", o.era).Warn("no age profiles for era, age adjustment will pass through")
	}

	result := &RunResult{RunID: o.newRunID()}
	started := time.Now()

	// Phase 1: players
	var ids []string
	err := o.phase("load", func() error {
		season, err := o.resolveSeason(ctx)
		if err != nil {
			return err
		}
		result.CurrentSeason = season
		ids, err = o.gameLogStore.ListPlayerIDs(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		result.PlayersLoaded = len(ids)
		o.log.WithFields(logrus.Fields{
			"phase":   "load",
			"players": len(ids),
			"season":  season,
		}).Info("players listed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: baseline + projection
	err = o.phase("project", func() error {
		return o.project(ctx, ids, result)
	})
	if err != nil {
		return nil, err
	}
	observability.RecordProjectionOutcome(len(result.Projections), len(result.Skipped))
	if len(result.Projections) == 0 {
		return nil, fmt.Errorf("%w: %d players listed, all skipped for season %d",
			ErrNoPlayers, len(ids), result.CurrentSeason)
	}

	// Phase 3: auction
	err = o.phase("auction", func() error {
		res, err := auction.NewEngine(o.tables, o.auctionConfig).Price(result.Projections)
		if err != nil {
			return fmt.Errorf("price auction: %w", err)
		}
		result.Auction = res
		observability.RecordAuction(res.PoolSize, res.NudgeSteps)
		o.log.WithFields(logrus.Fields{
			"phase":       "auction",
			"pool":        res.PoolSize,
			"nudge_steps": res.NudgeSteps,
		}).Info("auction priced")
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 4: game-day
	err = o.phase("gameday", func() error {
		engine := gameday.NewEngine(o.tables)
		for i := range result.Contexts {
			pc := result.Contexts[i]
			if pc.Game == nil {
				continue
			}
			adj, err := engine.Adjust(pc, result.Projections[i])
			if err != nil {
				return fmt.Errorf("adjust %s: %w", pc.PlayerID, err)
			}
			result.GameDay = append(result.GameDay, adj)
		}
		observability.RecordGameDay(len(result.GameDay))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 5: coverage
	result.Coverage = o.tables.Audit(o.era, result.Contexts)
	for _, c := range result.Coverage {
		observability.RecordLookup(c.Table, c.Exact, c.Fallback, c.Miss)
		if c.Miss > 0 {
			o.log.WithFields(logrus.Fields{
				"table":  c.Table,
				"misses": c.Miss,
				"total":  c.Total(),
			}).Debug("lookup misses")
		}
	}

	// Phase 6: persistence
	err = o.phase("persist", func() error {
		return o.persist(ctx, result)
	})
	if err != nil {
		return nil, err
	}

	o.log.WithFields(logrus.Fields{
		"run_id":      result.RunID,
		"players":     len(result.Projections),
		"skipped":     len(result.Skipped),
		"game_day":    len(result.GameDay),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("run completed")
	observability.RecordPipelineSuccess(time.Now().Unix())
	return result, nil
}

// phase times fn and records its outcome.
func (o *Orchestrator) phase(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	status := "success"
	if err != nil {
		status = "error"
	}
	elapsed := time.Since(start)
	observability.RecordPipelineRun(name, status, elapsed.Seconds())
	o.log.WithFields(logrus.Fields{
		"phase":       name,
		"status":      status,
		"duration_ms": elapsed.Milliseconds(),
	}).Debug("phase finished")
	if err != nil {
		return fmt.Errorf("phase %s: %w", name, err)
	}
	return nil
}

func (o *Orchestrator) resolveSeason(ctx context.Context) (int, error) {
	if o.currentSeason > 0 {
		return o.currentSeason, nil
	}
	seasons, err := o.gameLogStore.ListSeasons(ctx)
	if err != nil {
		return 0, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return 0, ErrNoPlayers
	}
	return slices.Max(seasons), nil
}

// slot is one player's cell in the result arena.
type slot struct {
	ctx  domain.PlayerContext
	proj domain.SeasonProjection
	ok   bool
}

// project fans players out over the worker pool. Each worker writes only
// its own arena cell; output order is input order.
func (o *Orchestrator) project(ctx context.Context, ids []string, result *RunResult) error {
	projector := projection.NewProjector(o.tables, o.era)
	arena := make([]slot, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := o.gameLogStore.GetByPlayer(gctx, id)
			if err != nil {
				return fmt.Errorf("load game logs for %s: %w", id, err)
			}
			values := make([]domain.GameLog, len(rows))
			for j, r := range rows {
				values[j] = *r
			}
			pc, ok := baseline.Build(values, result.CurrentSeason)
			if !ok {
				return nil
			}
			if game, ok := o.gameContexts[id]; ok {
				pc = pc.WithGame(game)
			}
			arena[i] = slot{ctx: pc, proj: projector.Project(pc), ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, s := range arena {
		if !s.ok {
			result.Skipped = append(result.Skipped, ids[i])
			continue
		}
		result.Contexts = append(result.Contexts, s.ctx)
		result.Projections = append(result.Projections, s.proj)
	}
	o.log.WithFields(logrus.Fields{
		"phase":   "project",
		"players": len(result.Projections),
		"skipped": len(result.Skipped),
		"workers": o.workers,
	}).Info("players projected")
	return nil
}

func (o *Orchestrator) persist(ctx context.Context, result *RunResult) error {
	if o.projectionStore != nil {
		rows := make([]*domain.SeasonProjection, len(result.Projections))
		for i := range result.Projections {
			rows[i] = &result.Projections[i]
		}
		start := time.Now()
		err := o.projectionStore.InsertBulk(ctx, result.RunID, rows)
		observability.RecordDBQuery("projections", "insert_bulk", time.Since(start).Seconds(), err)
		if err != nil {
			return fmt.Errorf("store projections: %w", err)
		}
	}
	if o.auctionValueStore != nil {
		rows := make([]*domain.AuctionValue, len(result.Auction.Values))
		for i := range result.Auction.Values {
			rows[i] = &result.Auction.Values[i]
		}
		start := time.Now()
		err := o.auctionValueStore.InsertBulk(ctx, result.RunID, rows)
		observability.RecordDBQuery("auction_values", "insert_bulk", time.Since(start).Seconds(), err)
		if err != nil {
			return fmt.Errorf("store auction values: %w", err)
		}
	}
	if o.projectionStore != nil || o.auctionValueStore != nil {
		o.log.WithFields(logrus.Fields{
			"phase":  "persist",
			"run_id": result.RunID,
		}).Info("run persisted")
	}
	return nil
}
