package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

// LoadInjuries ingests one week's injury report.
func (ig *Ingestor) LoadInjuries(ctx context.Context, week, seasonYear int, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		canonicalID, ok := ig.resolvePlayer(ctx, rec)
		if !ok {
			result.AddErrorf("injury record unresolvable: %v", rec["name"])
			continue
		}

		r := &domain.InjuryReport{
			PlayerID:       canonicalID,
			Week:           week,
			Season:         seasonYear,
			ReportStatus:   stringField(rec, "report_status", "status"),
			PracticeStatus: stringField(rec, "practice_status"),
			Description:    stringField(rec, "description", "injury"),
		}
		if err := ig.stores.Injuries.Upsert(ctx, r); err != nil {
			result.AddErrorf("upsert injury %s week %d: %v", canonicalID, week, err)
			continue
		}
		result.InjuriesUpserted++
	}

	ig.logger.Info("injury load done", "week", week, "season", seasonYear, "summary", result.Summary())
	return result
}
