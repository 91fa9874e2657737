package projection

import (
	"math"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/metrics"
)

// Confidence bounds and shaping for the stake-sizing contract.
const (
	MinConfidence        = 0.40
	MaxConfidence        = 0.95
	DegenerateConfidence = 0.80
	cvPenalty            = 0.5
)

// FantasyStat names the fantasy-points row of a contract set.
const FantasyStat = "fantasy_pts"

var contractStats = []domain.Stat{
	domain.StatPoints,
	domain.StatRebounds,
	domain.StatAssists,
	domain.StatSteals,
	domain.StatBlocks,
	domain.StatThreesMade,
	domain.StatTurnovers,
}

// StatContracts derives {projection, std_dev, confidence} per stat for the
// downstream stake-sizing layer.
func StatContracts(ctx domain.PlayerContext, proj domain.SeasonProjection) []domain.StatContract {
	base := float64(proj.Consistency) / 100
	out := make([]domain.StatContract, 0, len(contractStats)+1)

	for _, s := range contractStats {
		value := proj.PerGame.Get(s)
		std := FallbackStddevFactor * value
		if ctx.HasVariance {
			std = math.Sqrt(math.Max(ctx.Variance.Get(s), 0))
		}
		out = append(out, contract(s.String(), value, std, base))
	}

	out = append(out, contract(FantasyStat, proj.FantasyPoints, fantasyStddev(ctx, proj.FantasyPoints), base))
	return out
}

func contract(name string, value, std, base float64) domain.StatContract {
	return domain.StatContract{
		Stat:       name,
		Projection: value,
		StdDev:     std,
		Confidence: Confidence(value, std, base),
	}
}

// Confidence combines global consistency (base in [0,1]) with the stat's CV.
func Confidence(value, std, base float64) float64 {
	var c float64
	cv, ok := metrics.CoefficientOfVariation(std, value)
	if !ok || std == 0 {
		c = DegenerateConfidence * base
	} else {
		c = base * (1 - cvPenalty*math.Min(cv, 1))
	}
	return metrics.Clamp(c, MinConfidence, MaxConfidence)
}
