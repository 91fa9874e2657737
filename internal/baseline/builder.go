// Package baseline aggregates raw per-game rows into a weighted multi-season
// per-player baseline.
package baseline

import (
	"sort"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/metrics"
)

// MinGames is the minimum games a season needs to count toward the baseline.
const MinGames = 10

// maxSeasons is the number of qualifying seasons blended.
const maxSeasons = 3

// seasonWeights maps the number of qualifying seasons to their weights,
// most recent first.
var seasonWeights = map[int][]float64{
	1: {1.00},
	2: {0.60, 0.40},
	3: {0.50, 0.30, 0.20},
}

// Build produces a PlayerContext from one player's game rows.
// Returns false when the current season has fewer than MinGames games; that
// is a normal "no projection" outcome, not an error.
func Build(rows []domain.GameLog, currentSeason int) (domain.PlayerContext, bool) {
	if len(rows) == 0 {
		return domain.PlayerContext{}, false
	}

	bySeason := make(map[int][]*domain.GameLog)
	var latest *domain.GameLog
	for i := range rows {
		r := &rows[i]
		if r.Season > currentSeason {
			continue
		}
		bySeason[r.Season] = append(bySeason[r.Season], r)
		if latest == nil || r.GameDate.After(latest.GameDate) {
			latest = r
		}
	}

	recent := bySeason[currentSeason]
	if len(recent) < MinGames || latest == nil {
		return domain.PlayerContext{}, false
	}

	seasons := make([]int, 0, len(bySeason))
	for s := range bySeason {
		seasons = append(seasons, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seasons)))

	var qualifying []int
	for _, s := range seasons {
		if len(bySeason[s]) >= MinGames {
			qualifying = append(qualifying, s)
		}
		if len(qualifying) == maxSeasons {
			break
		}
	}

	weights := seasonWeights[len(qualifying)]
	var line domain.StatLine
	for i, s := range qualifying {
		avg := seasonAverage(bySeason[s])
		for _, st := range domain.AllStats {
			line.Set(st, line.Get(st)+weights[i]*avg.Get(st))
		}
	}

	games := make(map[int]int, len(bySeason))
	for s, g := range bySeason {
		games[s] = len(g)
	}

	recentAvg := seasonAverage(recent)
	variance, fantasyVar, hasVar := recentVariance(recent)
	pos := domain.ParsePosition(latest.Position)

	return domain.PlayerContext{
		PlayerID:              latest.PlayerID,
		Name:                  latest.PlayerName,
		Team:                  latest.Team,
		RawPosition:           latest.Position,
		Position:              pos,
		Role:                  domain.RoleForMinutes(recentAvg.Minutes),
		Age:                   latest.Age,
		Bracket:               domain.BracketForAge(latest.Age),
		Baseline:              line,
		BaselineFantasyPoints: domain.FantasyPoints(line),
		GamesBySeason:         games,
		SeasonsUsed:           qualifying,
		RecentMinutes:         recentAvg.Minutes,
		Variance:              variance,
		FantasyVariance:       fantasyVar,
		HasVariance:           hasVar,
	}, true
}

// seasonAverage returns the per-game mean of every stat.
func seasonAverage(games []*domain.GameLog) domain.StatLine {
	var avg domain.StatLine
	if len(games) == 0 {
		return avg
	}
	values := make([]float64, len(games))
	for _, st := range domain.AllStats {
		for i, g := range games {
			values[i] = g.Line().Get(st)
		}
		avg.Set(st, metrics.Mean(values))
	}
	return avg
}

// recentVariance computes per-stat sample variance over one season's games.
func recentVariance(games []*domain.GameLog) (domain.StatLine, float64, bool) {
	var variance domain.StatLine
	if len(games) < 2 {
		return variance, 0, false
	}
	values := make([]float64, len(games))
	for _, st := range domain.AllStats {
		for i, g := range games {
			values[i] = g.Line().Get(st)
		}
		v, _ := metrics.SampleVariance(values)
		variance.Set(st, v)
	}
	for i, g := range games {
		values[i] = domain.FantasyPoints(g.Line())
	}
	fv, _ := metrics.SampleVariance(values)
	return variance, fv, true
}
