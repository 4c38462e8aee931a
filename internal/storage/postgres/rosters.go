package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
)

// RosterStore is the Postgres storage.RosterStore.
type RosterStore struct {
	pool *db.Pool
}

// ReplaceActive deletes and reinserts the platform+league's rows inside one
// transaction. The current-state table never holds a mix of old and new
// rows for the scope.
func (s *RosterStore) ReplaceActive(ctx context.Context, platform domain.Platform, leagueID string, entries []*domain.RosterEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin roster replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM "+config.RostersTable+" WHERE platform = $1 AND league_id = $2",
		string(platform), leagueID,
	); err != nil {
		return fmt.Errorf("clear rosters %s/%s: %w", platform, leagueID, err)
	}

	for _, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+config.RostersTable+` (
				player_id, platform, league_id, user_id, slot, is_active
			) VALUES ($1,$2,$3,$4,$5,$6)`,
			e.PlayerID, string(platform), leagueID, e.UserID, e.Slot, e.IsActive,
		); err != nil {
			return fmt.Errorf("insert roster entry %s: %w", e.PlayerID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *RosterStore) ActiveEntries(ctx context.Context, leagueID string) ([]*domain.RosterEntry, error) {
	rows, err := s.pool.Query(ctx, "roster_active_entries", leagueID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*domain.RosterEntry
	for rows.Next() {
		var e domain.RosterEntry
		var platform string
		if err := rows.Scan(&e.PlayerID, &platform, &e.LeagueID, &e.UserID, &e.Slot, &e.IsActive, &e.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		e.Platform = domain.Platform(platform)
		out = append(out, &e)
	}
	return out, mapErr(rows.Err())
}

func (s *RosterStore) ActivePlayerIDs(ctx context.Context, leagueID string) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT DISTINCT player_id FROM "+config.RostersTable+" WHERE league_id = $1 AND is_active", leagueID)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanIDSet(rows)
}

func (s *RosterStore) AllActivePlayerIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT DISTINCT player_id FROM "+config.RostersTable+" WHERE is_active")
	if err != nil {
		return nil, mapErr(err)
	}
	return scanIDSet(rows)
}

func (s *RosterStore) UpsertSnapshot(ctx context.Context, snap *domain.RosterSnapshot) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.RosterSnapshotsTable+` (
			platform, league_id, team_id, player_id, week, season, slot
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (platform, league_id, team_id, week, player_id) DO UPDATE SET
			season = EXCLUDED.season,
			slot = EXCLUDED.slot,
			synced_at = NOW()`,
		string(snap.Platform), snap.LeagueID, snap.TeamID, snap.PlayerID,
		snap.Week, snap.Season, snap.Slot,
	)
	return mapErr(err)
}

func (s *RosterStore) Snapshots(ctx context.Context, platform domain.Platform, leagueID string, week, season int) ([]*domain.RosterSnapshot, error) {
	rows, err := s.pool.Query(ctx, "roster_snapshots", string(platform), leagueID, week, season)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*domain.RosterSnapshot
	for rows.Next() {
		var snap domain.RosterSnapshot
		var p string
		if err := rows.Scan(&p, &snap.LeagueID, &snap.TeamID, &snap.PlayerID,
			&snap.Week, &snap.Season, &snap.Slot, &snap.SyncedAt); err != nil {
			return nil, mapErr(err)
		}
		snap.Platform = domain.Platform(p)
		out = append(out, &snap)
	}
	return out, mapErr(rows.Err())
}

func scanIDSet(rows pgx.Rows) (map[string]bool, error) {
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapErr(err)
		}
		out[id] = true
	}
	return out, mapErr(rows.Err())
}
