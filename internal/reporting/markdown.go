package reporting

import (
	"fmt"
	"strings"
	"time"
)

// TopPlayers caps the projection and auction tables in the Markdown report.
const TopPlayers = 25

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Projection Run Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Players Projected | %d |\n", r.Summary.PlayersProjected))
	sb.WriteString(fmt.Sprintf("| Auction Pool | %d |\n", r.Summary.PoolSize))
	sb.WriteString(fmt.Sprintf("| Dollars Assigned | %d |\n", r.Summary.DollarsAssigned))
	sb.WriteString(fmt.Sprintf("| Top Player | %s ($%d) |\n", r.Summary.TopPlayerID, r.Summary.TopDollarValue))
	sb.WriteString(fmt.Sprintf("| Mean Fantasy Pts | %.2f |\n", r.Summary.MeanFantasyPts))
	sb.WriteString(fmt.Sprintf("| Mean Games Projected | %.1f |\n", r.Summary.MeanGamesProjected))
	sb.WriteString("\n")

	// Auction values
	sb.WriteString("## Auction Values\n\n")
	if len(r.Values) > 0 {
		sb.WriteString("| Rank | Player | Pos | RawZ | SGP | Scarcity | $ |\n")
		sb.WriteString("|------|--------|-----|------|-----|----------|---|\n")
		for i, v := range r.Values {
			if i == TopPlayers {
				break
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %.3f | %.3f | %.3f | %d |\n",
				v.Rank, playerLabel(v.PlayerID, v.Name), v.Position,
				v.RawZ, v.SGPValue, v.ScarcityValue, v.DollarValue))
		}
	} else {
		sb.WriteString("No auction values available.\n")
	}
	sb.WriteString("\n")

	// Positions
	sb.WriteString("## Position Breakdown\n\n")
	if len(r.Positions) > 0 {
		sb.WriteString("| Pos | Players | In Pool | Dollars | Mean $ |\n")
		sb.WriteString("|-----|---------|---------|---------|--------|\n")
		for _, p := range r.Positions {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.2f |\n",
				p.Position, p.Players, p.InPool, p.DollarsAssigned, p.MeanDollarValue))
		}
	} else {
		sb.WriteString("No position breakdown available.\n")
	}
	sb.WriteString("\n")

	// Season projections
	sb.WriteString("## Season Projections\n\n")
	if len(r.Projections) > 0 {
		sb.WriteString("| Player | Team | Pos | Role | GP | Pts | Reb | Ast | FP | Floor | Ceiling | Cons |\n")
		sb.WriteString("|--------|------|-----|------|----|-----|-----|-----|----|-------|---------|------|\n")
		for i, p := range r.Projections {
			if i == TopPlayers {
				break
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %.1f | %.1f | %.1f | %.2f | %.2f | %.2f | %d |\n",
				playerLabel(p.PlayerID, p.Name), p.Team, p.Position, p.Role, p.GamesProjected,
				p.PerGame.Points, p.PerGame.Rebounds, p.PerGame.Assists,
				p.FantasyPoints, p.Floor, p.Ceiling, p.Consistency))
		}
		if len(r.Projections) > TopPlayers {
			sb.WriteString(fmt.Sprintf("\n%d more in season_projections.csv.\n", len(r.Projections)-TopPlayers))
		}
	} else {
		sb.WriteString("No season projections available.\n")
	}
	sb.WriteString("\n")

	// Lookup coverage
	sb.WriteString("## Lookup Coverage\n\n")
	if len(r.Coverage) > 0 {
		sb.WriteString("| Table | Lookups | Exact | Fallback | Miss |\n")
		sb.WriteString("|-------|---------|-------|----------|------|\n")
		for _, c := range r.Coverage {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n",
				c.Table, c.Total(), c.Exact, c.Fallback, c.Miss))
		}
	} else {
		sb.WriteString("No lookup coverage available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func playerLabel(id, name string) string {
	if name == "" {
		return id
	}
	return name
}
