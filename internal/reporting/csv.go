package reporting

import (
	"fmt"
	"strings"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/lookup"
)

// RenderProjectionsCSV renders season projections as CSV string.
func RenderProjectionsCSV(projections []*domain.SeasonProjection) string {
	var sb strings.Builder

	// Header
	sb.WriteString("player_id,name,team,position,role,age,bracket,games_projected,")
	sb.WriteString("minutes,points,rebounds,assists,steals,blocks,turnovers,threes_made,")
	sb.WriteString("fg_pct,three_pct,ft_pct,fantasy_pts,fantasy_total,floor,ceiling,consistency\n")

	// Rows
	for _, p := range projections {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%s,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%d\n",
			csvField(p.PlayerID),
			csvField(p.Name),
			csvField(p.Team),
			p.Position,
			p.Role,
			p.Age,
			p.Bracket,
			p.GamesProjected,
			p.PerGame.Minutes,
			p.PerGame.Points,
			p.PerGame.Rebounds,
			p.PerGame.Assists,
			p.PerGame.Steals,
			p.PerGame.Blocks,
			p.PerGame.Turnovers,
			p.PerGame.ThreesMade,
			p.FieldGoalPct,
			p.ThreePointPct,
			p.FreeThrowPct,
			p.FantasyPoints,
			p.FantasyTotal,
			p.Floor,
			p.Ceiling,
			p.Consistency,
		))
	}

	return sb.String()
}

// RenderAuctionCSV renders auction values as CSV string, one z column per category.
func RenderAuctionCSV(values []*domain.AuctionValue) string {
	var sb strings.Builder

	sb.WriteString("rank,player_id,name,position,")
	for _, c := range domain.AllCategories {
		sb.WriteString("z_" + string(c) + ",")
	}
	sb.WriteString("raw_z,sgp_value,scarcity_value,in_pool,dollar_value\n")

	for _, v := range values {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,", v.Rank, csvField(v.PlayerID), csvField(v.Name), v.Position))
		for _, c := range domain.AllCategories {
			sb.WriteString(fmt.Sprintf("%.6f,", v.CategoryZ[c]))
		}
		sb.WriteString(fmt.Sprintf("%.6f,%.6f,%.6f,%t,%d\n",
			v.RawZ,
			v.SGPValue,
			v.ScarcityValue,
			v.InPool,
			v.DollarValue,
		))
	}

	return sb.String()
}

// RenderContractsCSV renders per-stat contracts as CSV string.
func RenderContractsCSV(rows []ContractRow) string {
	var sb strings.Builder

	sb.WriteString("player_id,stat,projection,std_dev,confidence\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%.6f,%.6f\n",
			csvField(r.PlayerID),
			r.Stat,
			r.Projection,
			r.StdDev,
			r.Confidence,
		))
	}

	return sb.String()
}

// RenderCoverageCSV renders lookup coverage as CSV string, with one column
// per fallback step.
func RenderCoverageCSV(coverage []lookup.TableCoverage) string {
	var sb strings.Builder

	sb.WriteString("table,total,exact,fallback,miss")
	for _, step := range lookup.FallbackSteps {
		sb.WriteString("," + step.String())
	}
	sb.WriteString("\n")

	for _, c := range coverage {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d", c.Table, c.Total(), c.Exact, c.Fallback, c.Miss))
		for _, step := range lookup.FallbackSteps {
			sb.WriteString(fmt.Sprintf(",%d", c.Steps[step]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderGameDayCSV renders game-day projections as CSV string.
func RenderGameDayCSV(projections []domain.GameDayProjection) string {
	var sb strings.Builder

	sb.WriteString("player_id,opponent,location,schedule_mult,city_mult,death_spot_mult,matchup_mult,compound_mult,")
	sb.WriteString("points,rebounds,assists,steals,blocks,turnovers,threes_made,fantasy_pts\n")
	for _, g := range projections {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			csvField(g.PlayerID),
			csvField(g.Opponent),
			g.Location,
			g.ScheduleMultiplier,
			g.CityMultiplier,
			g.DeathSpotMultiplier,
			g.MatchupMultiplier,
			g.CompoundMultiplier,
			g.Stats.Points,
			g.Stats.Rebounds,
			g.Stats.Assists,
			g.Stats.Steals,
			g.Stats.Blocks,
			g.Stats.Turnovers,
			g.Stats.ThreesMade,
			g.FantasyPoints,
		))
	}

	return sb.String()
}

// csvField quotes s when it contains a separator, quote or newline.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
