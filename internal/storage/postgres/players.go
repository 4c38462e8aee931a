package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// PlayerStore is the Postgres storage.PlayerStore.
type PlayerStore struct {
	pool *db.Pool
}

// platformStmt maps a platform onto its prepared lookup statement.
var platformStmt = map[domain.Platform]string{
	domain.PlatformSleeper: "player_by_sleeper_id",
	domain.PlatformMFL:     "player_by_mfl_id",
	domain.PlatformESPN:    "player_by_espn_id",
	domain.PlatformYahoo:   "player_by_yahoo_id",
}

func (s *PlayerStore) Insert(ctx context.Context, p *domain.Player) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			canonical_id, sleeper_id, mfl_id, espn_id, yahoo_id,
			name, position, team, depth_chart_position, is_starter, active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.CanonicalID, p.SleeperID, p.MFLID, p.ESPNID, p.YahooID,
		p.Name, p.Position, p.Team, p.DepthChartPosition, p.IsStarter, p.Active,
	)
	return mapErr(err)
}

// Update merges via COALESCE so an update carrying only one new platform ID
// never wipes the IDs other feeds already discovered.
func (s *PlayerStore) Update(ctx context.Context, p *domain.Player) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE `+config.PlayersTable+` SET
			sleeper_id = COALESCE($2, sleeper_id),
			mfl_id = COALESCE($3, mfl_id),
			espn_id = COALESCE($4, espn_id),
			yahoo_id = COALESCE($5, yahoo_id),
			name = $6,
			position = $7,
			team = $8,
			depth_chart_position = COALESCE($9, depth_chart_position),
			is_starter = $10,
			active = $11,
			updated_at = NOW()
		WHERE canonical_id = $1`,
		p.CanonicalID, p.SleeperID, p.MFLID, p.ESPNID, p.YahooID,
		p.Name, p.Position, p.Team, p.DepthChartPosition, p.IsStarter, p.Active,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PlayerStore) GetByCanonicalID(ctx context.Context, canonicalID string) (*domain.Player, error) {
	return scanPlayer(s.pool.QueryRow(ctx, "player_by_canonical_id", canonicalID))
}

func (s *PlayerStore) GetByPlatformID(ctx context.Context, platform domain.Platform, platformID string) (*domain.Player, error) {
	stmt, ok := platformStmt[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
	return scanPlayer(s.pool.QueryRow(ctx, stmt, platformID))
}

func (s *PlayerStore) GetByIDs(ctx context.Context, canonicalIDs []string) ([]*domain.Player, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT canonical_id, sleeper_id, mfl_id, espn_id, yahoo_id, name, position, team, depth_chart_position, is_starter, active, created_at, updated_at FROM "+
			config.PlayersTable+" WHERE canonical_id = ANY($1)", canonicalIDs)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanPlayers(rows)
}

func (s *PlayerStore) ListByPosition(ctx context.Context, position string) ([]*domain.Player, error) {
	rows, err := s.pool.Query(ctx, "players_by_position", position)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanPlayers(rows)
}

func (s *PlayerStore) List(ctx context.Context) ([]*domain.Player, error) {
	rows, err := s.pool.Query(ctx, "players_all")
	if err != nil {
		return nil, mapErr(err)
	}
	return scanPlayers(rows)
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.CanonicalID, &p.SleeperID, &p.MFLID, &p.ESPNID, &p.YahooID,
		&p.Name, &p.Position, &p.Team, &p.DepthChartPosition,
		&p.IsStarter, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func scanPlayers(rows pgx.Rows) ([]*domain.Player, error) {
	defer rows.Close()
	var out []*domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, mapErr(rows.Err())
}
