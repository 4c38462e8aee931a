package postgres

import (
	"context"
	"fmt"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
)

// WaiverCandidateStore is the Postgres storage.WaiverCandidateStore.
type WaiverCandidateStore struct {
	pool *db.Pool
}

// Replace deletes then reinserts every (league, week) key present in the
// batch inside one transaction. Readers never observe a half-replaced key;
// failure rolls the whole call back.
func (s *WaiverCandidateStore) Replace(ctx context.Context, candidates []*domain.WaiverCandidate) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin waiver replace: %w", err)
	}
	defer tx.Rollback(ctx)

	keys := make(map[domain.LeagueWeek]bool)
	for _, c := range candidates {
		keys[c.Key()] = true
	}
	for key := range keys {
		if _, err := tx.Exec(ctx,
			"DELETE FROM "+config.WaiverCandidatesTable+" WHERE league_id = $1 AND week = $2",
			key.LeagueID, key.Week,
		); err != nil {
			return fmt.Errorf("clear candidates %s week %d: %w", key.LeagueID, key.Week, err)
		}
	}

	for _, c := range candidates {
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+config.WaiverCandidatesTable+` (
				league_id, week, player_id, position, rostered,
				snap_delta, route_delta, tprr, rz_last2, ez_last2,
				opp_next, proj_next, trend_slope, roster_fit, market_heat, scarcity
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			c.LeagueID, c.Week, c.PlayerID, c.Position, c.Rostered,
			c.SnapDelta, c.RouteDelta, c.TPRR, c.RZLast2, c.EZLast2,
			c.OppNext, c.ProjNext, c.TrendSlope, c.RosterFit, c.MarketHeat, c.Scarcity,
		); err != nil {
			return fmt.Errorf("insert candidate %s: %w", c.PlayerID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *WaiverCandidateStore) ListLeagueWeek(ctx context.Context, leagueID string, week int) ([]*domain.WaiverCandidate, error) {
	rows, err := s.pool.Query(ctx, "waivers_league_week", leagueID, week)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*domain.WaiverCandidate
	for rows.Next() {
		var c domain.WaiverCandidate
		if err := rows.Scan(&c.LeagueID, &c.Week, &c.PlayerID, &c.Position, &c.Rostered,
			&c.SnapDelta, &c.RouteDelta, &c.TPRR, &c.RZLast2, &c.EZLast2,
			&c.OppNext, &c.ProjNext, &c.TrendSlope, &c.RosterFit, &c.MarketHeat,
			&c.Scarcity, &c.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, &c)
	}
	return out, mapErr(rows.Err())
}
