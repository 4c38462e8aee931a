package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// LoadBettingLines ingests game betting lines for one week. Implied team
// totals are derived here from the total and spread so readers never have to
// repeat the arithmetic: with spread negative for a home favorite, the home
// implied total is (total - spread) / 2.
func (ig *Ingestor) LoadBettingLines(ctx context.Context, week, seasonYear int, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		home, _ := str(rec, "home_team", "home")
		away, _ := str(rec, "away_team", "away")
		homeCode := identity.NormalizeTeam(home)
		awayCode := identity.NormalizeTeam(away)
		if homeCode == identity.TeamUnknown || awayCode == identity.TeamUnknown {
			result.AddErrorf("betting line with unknown team: %s vs %s", home, away)
			continue
		}
		gameID, ok := str(rec, "game_id", "id")
		if !ok {
			result.AddErrorf("betting line %s@%s without game id", awayCode, homeCode)
			continue
		}

		l := &domain.BettingLine{
			GameID:        gameID,
			HomeTeam:      homeCode,
			AwayTeam:      awayCode,
			Week:          week,
			Season:        seasonYear,
			TotalLine:     floatField(rec, "total", "total_line", "over_under"),
			SpreadLine:    floatField(rec, "spread", "spread_line"),
			HomeMoneyline: intField(rec, "home_moneyline"),
			AwayMoneyline: intField(rec, "away_moneyline"),
		}
		if sportsbook, ok := str(rec, "sportsbook", "book"); ok {
			l.Sportsbook = sportsbook
		} else {
			l.Sportsbook = "consensus"
		}

		if l.TotalLine != nil && l.SpreadLine != nil {
			homeImplied := (*l.TotalLine - *l.SpreadLine) / 2
			awayImplied := (*l.TotalLine + *l.SpreadLine) / 2
			l.HomeImpliedTotal = &homeImplied
			l.AwayImpliedTotal = &awayImplied
		}

		if err := ig.stores.Betting.Upsert(ctx, l); err != nil {
			result.AddErrorf("upsert line %s: %v", gameID, err)
			continue
		}
		result.LinesUpserted++
	}

	ig.logger.Info("betting line load done", "week", week, "season", seasonYear, "summary", result.Summary())
	return result
}
