package postgres

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
)

// ProjectionStore is the Postgres storage.ProjectionStore.
type ProjectionStore struct {
	pool *db.Pool
}

func (s *ProjectionStore) Upsert(ctx context.Context, p *domain.ProjectionRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.ProjectionsTable+` (
			player_id, week, season, source, scoring_format,
			projected_points, floor, ceiling, mean, stdev
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (player_id, week, season, source) DO UPDATE SET
			scoring_format = EXCLUDED.scoring_format,
			projected_points = EXCLUDED.projected_points,
			floor = EXCLUDED.floor,
			ceiling = EXCLUDED.ceiling,
			mean = EXCLUDED.mean,
			stdev = EXCLUDED.stdev,
			updated_at = NOW()`,
		p.PlayerID, p.Week, p.Season, p.Source, p.ScoringFormat,
		p.ProjectedPoints, p.Floor, p.Ceiling, p.Mean, p.Stdev,
	)
	return mapErr(err)
}

func (s *ProjectionStore) Get(ctx context.Context, playerID string, week, season int) ([]*domain.ProjectionRecord, error) {
	rows, err := s.pool.Query(ctx, "projections_get", playerID, week, season)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*domain.ProjectionRecord
	for rows.Next() {
		var p domain.ProjectionRecord
		if err := rows.Scan(
			&p.PlayerID, &p.Week, &p.Season, &p.Source, &p.ScoringFormat,
			&p.ProjectedPoints, &p.Floor, &p.Ceiling, &p.Mean, &p.Stdev, &p.UpdatedAt,
		); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, &p)
	}
	return out, mapErr(rows.Err())
}
