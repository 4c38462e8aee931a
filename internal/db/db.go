// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironlabs/waiverwire/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const playerColumns = `canonical_id, sleeper_id, mfl_id, espn_id, yahoo_id,
	name, position, team, depth_chart_position, is_starter, active,
	created_at, updated_at`

const usageColumns = `player_id, week, season, snap_pct, route_pct,
	target_share, carry_share, rz_touches, ez_targets, targets, carries,
	receptions, receiving_yards, rushing_yards, touchdowns, updated_at`

// registerPreparedStatements registers the read statements the API and the
// feature builder run on every refresh. Prepared statements eliminate parse
// overhead on the hot per-player lookups.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Players
		"player_by_canonical_id": "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE canonical_id = $1",
		"player_by_sleeper_id":   "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE sleeper_id = $1",
		"player_by_mfl_id":       "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE mfl_id = $1",
		"player_by_espn_id":      "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE espn_id = $1",
		"player_by_yahoo_id":     "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE yahoo_id = $1",
		"players_by_position":    "SELECT " + playerColumns + " FROM " + config.PlayersTable + " WHERE position = $1",
		"players_all":            "SELECT " + playerColumns + " FROM " + config.PlayersTable,

		// Usage
		"usage_get":   "SELECT " + usageColumns + " FROM " + config.UsageTable + " WHERE player_id = $1 AND week = $2 AND season = $3",
		"usage_range": "SELECT " + usageColumns + " FROM " + config.UsageTable + " WHERE player_id = $1 AND week BETWEEN $2 AND $3 AND season = $4 ORDER BY week",
		"usage_week":  "SELECT " + usageColumns + " FROM " + config.UsageTable + " WHERE week = $1 AND season = $2 ORDER BY player_id",

		// Projections
		"projections_get": `SELECT player_id, week, season, source, scoring_format,
			projected_points, floor, ceiling, mean, stdev, updated_at
			FROM ` + config.ProjectionsTable + ` WHERE player_id = $1 AND week = $2 AND season = $3 ORDER BY source`,

		// Rosters
		"roster_active_entries": `SELECT player_id, platform, league_id, user_id, slot, is_active, updated_at
			FROM ` + config.RostersTable + ` WHERE league_id = $1 AND is_active`,
		"roster_snapshots": `SELECT platform, league_id, team_id, player_id, week, season, slot, synced_at
			FROM ` + config.RosterSnapshotsTable + ` WHERE platform = $1 AND league_id = $2 AND week = $3 AND season = $4`,

		// Schedule
		"schedule_game_for_team": `SELECT game_id, home_team, away_team, week, season, game_date, is_playoff, completed
			FROM ` + config.ScheduleTable + ` WHERE week = $1 AND season = $2 AND (home_team = $3 OR away_team = $3) LIMIT 1`,

		// Injuries
		"injury_get": `SELECT player_id, week, season, report_status, practice_status, description, updated_at
			FROM ` + config.InjuriesTable + ` WHERE player_id = $1 AND week = $2 AND season = $3`,

		// Depth charts
		"depth_team_position": `SELECT player_id, team, position, depth_rank, week, season, updated_at
			FROM ` + config.DepthChartsTable + ` WHERE team = $1 AND position = $2 AND week = $3 AND season = $4 ORDER BY depth_rank`,

		// Betting lines
		"lines_by_week": `SELECT game_id, home_team, away_team, week, season, total_line, spread_line,
			home_moneyline, away_moneyline, home_implied_total, away_implied_total, sportsbook, updated_at
			FROM ` + config.BettingLinesTable + ` WHERE week = $1 AND season = $2 ORDER BY game_id`,

		// Waiver candidates
		"waivers_league_week": `SELECT league_id, week, player_id, position, rostered,
			snap_delta, route_delta, tprr, rz_last2, ez_last2, opp_next, proj_next,
			trend_slope, roster_fit, market_heat, scarcity, created_at
			FROM ` + config.WaiverCandidatesTable + ` WHERE league_id = $1 AND week = $2 ORDER BY player_id`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
