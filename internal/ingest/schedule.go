package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// LoadSchedule ingests the season schedule. Team codes are normalized so
// downstream opponent lookups hit regardless of the feed's abbreviation
// dialect.
func (ig *Ingestor) LoadSchedule(ctx context.Context, seasonYear int, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		home, _ := str(rec, "home_team", "home")
		away, _ := str(rec, "away_team", "away")
		homeCode := identity.NormalizeTeam(home)
		awayCode := identity.NormalizeTeam(away)
		if homeCode == identity.TeamUnknown || awayCode == identity.TeamUnknown {
			result.AddErrorf("schedule game with unknown team: %s vs %s", home, away)
			continue
		}

		week, ok := num(rec, "week")
		if !ok {
			result.AddErrorf("schedule game %s@%s without week", awayCode, homeCode)
			continue
		}

		gameID, ok := str(rec, "game_id", "id")
		if !ok {
			gameID = fmt.Sprintf("%d_%02d_%s_%s", seasonYear, int(week), awayCode, homeCode)
		}

		g := &domain.ScheduleGame{
			GameID:   gameID,
			HomeTeam: homeCode,
			AwayTeam: awayCode,
			Week:     int(week),
			Season:   seasonYear,
		}
		if raw, ok := str(rec, "game_date", "kickoff"); ok {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				g.GameDate = &ts
			} else if d, err := time.Parse("2006-01-02", raw); err == nil {
				g.GameDate = &d
			}
		}
		if playoff, ok := boolean(rec, "playoff", "is_playoff"); ok {
			g.IsPlayoff = playoff
		}
		if completed, ok := boolean(rec, "completed"); ok {
			g.Completed = completed
		}

		if err := ig.stores.Schedule.Upsert(ctx, g); err != nil {
			result.AddErrorf("upsert game %s: %v", gameID, err)
			continue
		}
		result.GamesUpserted++
	}

	ig.logger.Info("schedule load done", "season", seasonYear, "summary", result.Summary())
	return result
}
