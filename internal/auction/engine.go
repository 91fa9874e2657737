// Package auction prices a projected player pool against a fixed league budget.
package auction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"nba-projection-lab/internal/domain"
)

var (
	// ErrEmptyPool is returned when there are no projections to price.
	ErrEmptyPool = errors.New("no players to price")
	// ErrInfeasibleBudget is returned when no assignment of prices within
	// [min, max] can sum to the league budget.
	ErrInfeasibleBudget = errors.New("budget cannot be met within price bounds")
)

// Tables is the subset of the static store used for valuation.
type Tables interface {
	ZScoreBaseline(pos string, c domain.Category) domain.StatSummary
	CategoryWeight(c domain.Category) float64
	PositionalBonus(pos string, c domain.Category) float64
	PositionScarcity(pos string) float64
}

// Config holds league economics.
type Config struct {
	LeagueSize int
	RosterSize int
	TeamBudget int
	MinPrice   int
	MaxPrice   int
}

// DefaultConfig is a 12-team, 13-man, $200 league with prices in [1, 70].
func DefaultConfig() Config {
	return Config{LeagueSize: 12, RosterSize: 13, TeamBudget: 200, MinPrice: 1, MaxPrice: 70}
}

// TotalBudget is the sum every run's dollar values must hit.
func (c Config) TotalBudget() int {
	return c.LeagueSize * c.TeamBudget
}

// PoolSize is the number of draftable slots.
func (c Config) PoolSize() int {
	return c.LeagueSize * c.RosterSize
}

// Result is the priced player set in rank order.
type Result struct {
	Values     []domain.AuctionValue
	PoolSize   int
	NudgeSteps int
}

// Engine computes AuctionValues. Safe for concurrent use.
type Engine struct {
	tables Tables
	cfg    Config
}

// NewEngine creates a pricing engine.
func NewEngine(tables Tables, cfg Config) *Engine {
	return &Engine{tables: tables, cfg: cfg}
}

// Price values every projection and distributes the league budget so the
// dollar values sum exactly to TotalBudget.
func (e *Engine) Price(projections []domain.SeasonProjection) (Result, error) {
	n := len(projections)
	if n == 0 {
		return Result{}, ErrEmptyPool
	}

	pool := e.cfg.PoolSize()
	if pool > n {
		pool = n
	}
	if err := e.checkFeasible(n, pool); err != nil {
		return Result{}, err
	}

	values := make([]domain.AuctionValue, n)
	for i := range projections {
		values[i] = e.Value(projections[i])
	}

	sort.SliceStable(values, func(i, j int) bool {
		if values[i].ScarcityValue != values[j].ScarcityValue {
			return values[i].ScarcityValue > values[j].ScarcityValue
		}
		return values[i].PlayerID < values[j].PlayerID
	})
	for i := range values {
		values[i].Rank = i + 1
		values[i].InPool = i < pool
		values[i].DollarValue = e.cfg.MinPrice
	}

	e.distribute(values[:pool], n)
	steps := e.nudge(values[:pool], n-pool)

	return Result{Values: values, PoolSize: pool, NudgeSteps: steps}, nil
}

func (e *Engine) checkFeasible(n, pool int) error {
	c := e.cfg
	if c.LeagueSize <= 0 || c.RosterSize <= 0 || c.MinPrice < 0 || c.MinPrice > c.MaxPrice {
		return fmt.Errorf("%w: league %d roster %d price [%d, %d]",
			ErrInfeasibleBudget, c.LeagueSize, c.RosterSize, c.MinPrice, c.MaxPrice)
	}
	lo := n * c.MinPrice
	hi := pool*c.MaxPrice + (n-pool)*c.MinPrice
	if total := c.TotalBudget(); total < lo || total > hi {
		return fmt.Errorf("%w: total %d outside [%d, %d] for %d players",
			ErrInfeasibleBudget, total, lo, hi, n)
	}
	return nil
}

// Value computes the z-score, SGP and scarcity figures for one projection.
func (e *Engine) Value(p domain.SeasonProjection) domain.AuctionValue {
	pos := string(p.Position)
	v := domain.AuctionValue{
		PlayerID:  p.PlayerID,
		Name:      p.Name,
		Position:  p.Position,
		CategoryZ: make(map[domain.Category]float64, len(domain.AllCategories)),
	}
	for _, c := range domain.AllCategories {
		z := zScore(p.PerGame.Get(c.Stat()), e.tables.ZScoreBaseline(pos, c))
		v.CategoryZ[c] = z
		v.RawZ += z
		v.SGPValue += z * e.tables.CategoryWeight(c) * e.tables.PositionalBonus(pos, c)
	}
	v.ScarcityValue = v.SGPValue * e.tables.PositionScarcity(pos)
	return v
}

func zScore(x float64, base domain.StatSummary) float64 {
	if base.Std <= 0 {
		return 0
	}
	return (x - base.Mean) / base.Std
}

// distribute assigns pool prices: the minimum price per evaluated player is
// reserved, the remainder is split by value shifted so the lowest is zero.
func (e *Engine) distribute(pool []domain.AuctionValue, evaluated int) {
	lowest := pool[len(pool)-1].ScarcityValue
	shifted := make([]decimal.Decimal, len(pool))
	sum := decimal.Zero
	for i := range pool {
		shifted[i] = decimal.NewFromFloat(pool[i].ScarcityValue - lowest)
		sum = sum.Add(shifted[i])
	}

	minPrice := decimal.NewFromInt(int64(e.cfg.MinPrice))
	spare := decimal.NewFromInt(int64(e.cfg.TotalBudget() - evaluated*e.cfg.MinPrice))
	even := spare.Div(decimal.NewFromInt(int64(len(pool))))

	for i := range pool {
		share := even
		if sum.IsPositive() {
			share = spare.Mul(shifted[i]).Div(sum)
		}
		price := int(minPrice.Add(share).Round(0).IntPart())
		pool[i].DollarValue = clampInt(price, e.cfg.MinPrice, e.cfg.MaxPrice)
	}
}

// nudge moves pool prices one dollar at a time until the grand total
// matches. Raises start from the top rank, cuts from the bottom rank.
// Terminates because checkFeasible bounds the target within reach.
func (e *Engine) nudge(pool []domain.AuctionValue, outside int) int {
	total := outside * e.cfg.MinPrice
	for i := range pool {
		total += pool[i].DollarValue
	}
	diff := e.cfg.TotalBudget() - total

	steps := 0
	for diff > 0 {
		for i := 0; i < len(pool) && diff > 0; i++ {
			if pool[i].DollarValue < e.cfg.MaxPrice {
				pool[i].DollarValue++
				diff--
				steps++
			}
		}
	}
	for diff < 0 {
		for i := len(pool) - 1; i >= 0 && diff < 0; i-- {
			if pool[i].DollarValue > e.cfg.MinPrice {
				pool[i].DollarValue--
				diff++
				steps++
			}
		}
	}
	return steps
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
