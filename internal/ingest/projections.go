package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

// LoadProjections ingests one source's weekly point projections. The source
// name keys the row alongside (player, week, season), so multiple providers
// coexist.
func (ig *Ingestor) LoadProjections(ctx context.Context, week, seasonYear int, source string, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		canonicalID, ok := ig.resolvePlayer(ctx, rec)
		if !ok {
			result.AddErrorf("projection record unresolvable: %v", rec["name"])
			continue
		}

		p := &domain.ProjectionRecord{
			PlayerID:        canonicalID,
			Week:            week,
			Season:          seasonYear,
			Source:          source,
			ProjectedPoints: floatField(rec, "projected_points", "points", "fpts"),
			Floor:           floatField(rec, "floor"),
			Ceiling:         floatField(rec, "ceiling"),
			Mean:            floatField(rec, "mean"),
			Stdev:           floatField(rec, "stdev", "std_dev"),
		}
		if format, ok := str(rec, "scoring_format", "scoring"); ok {
			p.ScoringFormat = format
		}

		if err := ig.stores.Projections.Upsert(ctx, p); err != nil {
			result.AddErrorf("upsert projection %s week %d: %v", canonicalID, week, err)
			continue
		}
		result.ProjectionsUpserted++
	}

	ig.logger.Info("projection load done",
		"week", week, "season", seasonYear, "source", source, "summary", result.Summary())
	return result
}
