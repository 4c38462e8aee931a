package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// LoadDepthCharts ingests team positional depth charts for one week.
func (ig *Ingestor) LoadDepthCharts(ctx context.Context, week, seasonYear int, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		team, _ := str(rec, "team")
		teamCode := identity.NormalizeTeam(team)
		if teamCode == identity.TeamUnknown {
			result.AddErrorf("depth chart entry with unknown team: %v", team)
			continue
		}
		position, _ := str(rec, "position")
		posCode := identity.NormalizePosition(position)
		if posCode == identity.PositionUnknown {
			result.Skipped++
			continue
		}
		rank, ok := num(rec, "depth_rank", "rank", "depth_chart_order")
		if !ok {
			result.AddErrorf("depth chart entry without rank: %v", rec["name"])
			continue
		}

		canonicalID, ok := ig.resolvePlayer(ctx, rec)
		if !ok {
			result.AddErrorf("depth chart record unresolvable: %v", rec["name"])
			continue
		}

		e := &domain.DepthChartEntry{
			PlayerID:  canonicalID,
			Team:      teamCode,
			Position:  posCode,
			DepthRank: int(rank),
			Week:      week,
			Season:    seasonYear,
		}
		if err := ig.stores.DepthCharts.Upsert(ctx, e); err != nil {
			result.AddErrorf("upsert depth chart %s: %v", canonicalID, err)
			continue
		}
		result.DepthUpserted++
	}

	ig.logger.Info("depth chart load done", "week", week, "season", seasonYear, "summary", result.Summary())
	return result
}
