package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
)

// UsageStore is the Postgres storage.UsageStore.
type UsageStore struct {
	pool *db.Pool
}

// Upsert merges via COALESCE(EXCLUDED.x, t.x): a nil incoming field keeps
// the stored value, so snap data and target data loaded in separate passes
// accumulate into one row.
func (s *UsageStore) Upsert(ctx context.Context, u *domain.UsageRecord) error {
	t := config.UsageTable
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+t+` (
			player_id, week, season, snap_pct, route_pct, target_share,
			carry_share, rz_touches, ez_targets, targets, carries,
			receptions, receiving_yards, rushing_yards, touchdowns
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (player_id, week, season) DO UPDATE SET
			snap_pct = COALESCE(EXCLUDED.snap_pct, `+t+`.snap_pct),
			route_pct = COALESCE(EXCLUDED.route_pct, `+t+`.route_pct),
			target_share = COALESCE(EXCLUDED.target_share, `+t+`.target_share),
			carry_share = COALESCE(EXCLUDED.carry_share, `+t+`.carry_share),
			rz_touches = COALESCE(EXCLUDED.rz_touches, `+t+`.rz_touches),
			ez_targets = COALESCE(EXCLUDED.ez_targets, `+t+`.ez_targets),
			targets = COALESCE(EXCLUDED.targets, `+t+`.targets),
			carries = COALESCE(EXCLUDED.carries, `+t+`.carries),
			receptions = COALESCE(EXCLUDED.receptions, `+t+`.receptions),
			receiving_yards = COALESCE(EXCLUDED.receiving_yards, `+t+`.receiving_yards),
			rushing_yards = COALESCE(EXCLUDED.rushing_yards, `+t+`.rushing_yards),
			touchdowns = COALESCE(EXCLUDED.touchdowns, `+t+`.touchdowns),
			updated_at = NOW()`,
		u.PlayerID, u.Week, u.Season, u.SnapPct, u.RoutePct, u.TargetShare,
		u.CarryShare, u.RZTouches, u.EZTargets, u.Targets, u.Carries,
		u.Receptions, u.ReceivingYards, u.RushingYards, u.Touchdowns,
	)
	return mapErr(err)
}

func (s *UsageStore) Get(ctx context.Context, playerID string, week, season int) (*domain.UsageRecord, error) {
	return scanUsage(s.pool.QueryRow(ctx, "usage_get", playerID, week, season))
}

func (s *UsageStore) GetRange(ctx context.Context, playerID string, fromWeek, toWeek, season int) ([]*domain.UsageRecord, error) {
	rows, err := s.pool.Query(ctx, "usage_range", playerID, fromWeek, toWeek, season)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanUsageRows(rows)
}

func (s *UsageStore) ListByWeek(ctx context.Context, week, season int) ([]*domain.UsageRecord, error) {
	rows, err := s.pool.Query(ctx, "usage_week", week, season)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanUsageRows(rows)
}

func scanUsage(row pgx.Row) (*domain.UsageRecord, error) {
	var u domain.UsageRecord
	err := row.Scan(
		&u.PlayerID, &u.Week, &u.Season, &u.SnapPct, &u.RoutePct,
		&u.TargetShare, &u.CarryShare, &u.RZTouches, &u.EZTargets,
		&u.Targets, &u.Carries, &u.Receptions, &u.ReceivingYards,
		&u.RushingYards, &u.Touchdowns, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func scanUsageRows(rows pgx.Rows) ([]*domain.UsageRecord, error) {
	defer rows.Close()
	var out []*domain.UsageRecord
	for rows.Next() {
		u, err := scanUsage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}
