package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
)

// ScheduleStore is the Postgres storage.ScheduleStore.
type ScheduleStore struct {
	pool *db.Pool
}

func (s *ScheduleStore) Upsert(ctx context.Context, g *domain.ScheduleGame) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.ScheduleTable+` (
			game_id, home_team, away_team, week, season, game_date, is_playoff, completed
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (game_id) DO UPDATE SET
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			week = EXCLUDED.week,
			season = EXCLUDED.season,
			game_date = EXCLUDED.game_date,
			is_playoff = EXCLUDED.is_playoff,
			completed = EXCLUDED.completed`,
		g.GameID, g.HomeTeam, g.AwayTeam, g.Week, g.Season,
		g.GameDate, g.IsPlayoff, g.Completed,
	)
	return mapErr(err)
}

func (s *ScheduleStore) GameForTeam(ctx context.Context, team string, week, season int) (*domain.ScheduleGame, error) {
	var g domain.ScheduleGame
	err := s.pool.QueryRow(ctx, "schedule_game_for_team", week, season, team).Scan(
		&g.GameID, &g.HomeTeam, &g.AwayTeam, &g.Week, &g.Season,
		&g.GameDate, &g.IsPlayoff, &g.Completed,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &g, nil
}

// InjuryStore is the Postgres storage.InjuryStore.
type InjuryStore struct {
	pool *db.Pool
}

func (s *InjuryStore) Upsert(ctx context.Context, r *domain.InjuryReport) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.InjuriesTable+` (
			player_id, week, season, report_status, practice_status, description
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (player_id, week, season) DO UPDATE SET
			report_status = EXCLUDED.report_status,
			practice_status = EXCLUDED.practice_status,
			description = EXCLUDED.description,
			updated_at = NOW()`,
		r.PlayerID, r.Week, r.Season, r.ReportStatus, r.PracticeStatus, r.Description,
	)
	return mapErr(err)
}

func (s *InjuryStore) Get(ctx context.Context, playerID string, week, season int) (*domain.InjuryReport, error) {
	var r domain.InjuryReport
	err := s.pool.QueryRow(ctx, "injury_get", playerID, week, season).Scan(
		&r.PlayerID, &r.Week, &r.Season, &r.ReportStatus,
		&r.PracticeStatus, &r.Description, &r.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

// DepthChartStore is the Postgres storage.DepthChartStore.
type DepthChartStore struct {
	pool *db.Pool
}

func (s *DepthChartStore) Upsert(ctx context.Context, e *domain.DepthChartEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.DepthChartsTable+` (
			player_id, team, position, depth_rank, week, season
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (player_id, team, position, week, season) DO UPDATE SET
			depth_rank = EXCLUDED.depth_rank,
			updated_at = NOW()`,
		e.PlayerID, e.Team, e.Position, e.DepthRank, e.Week, e.Season,
	)
	return mapErr(err)
}

func (s *DepthChartStore) ListTeamPosition(ctx context.Context, team, position string, week, season int) ([]*domain.DepthChartEntry, error) {
	rows, err := s.pool.Query(ctx, "depth_team_position", team, position, week, season)
	if err != nil {
		return nil, mapErr(err)
	}
	return scanDepthEntries(rows)
}

func scanDepthEntries(rows pgx.Rows) ([]*domain.DepthChartEntry, error) {
	defer rows.Close()
	var out []*domain.DepthChartEntry
	for rows.Next() {
		var e domain.DepthChartEntry
		if err := rows.Scan(&e.PlayerID, &e.Team, &e.Position, &e.DepthRank,
			&e.Week, &e.Season, &e.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, &e)
	}
	return out, mapErr(rows.Err())
}

// BettingLineStore is the Postgres storage.BettingLineStore.
type BettingLineStore struct {
	pool *db.Pool
}

func (s *BettingLineStore) Upsert(ctx context.Context, l *domain.BettingLine) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.BettingLinesTable+` (
			game_id, home_team, away_team, week, season, total_line, spread_line,
			home_moneyline, away_moneyline, home_implied_total, away_implied_total, sportsbook
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (game_id, sportsbook) DO UPDATE SET
			total_line = EXCLUDED.total_line,
			spread_line = EXCLUDED.spread_line,
			home_moneyline = EXCLUDED.home_moneyline,
			away_moneyline = EXCLUDED.away_moneyline,
			home_implied_total = EXCLUDED.home_implied_total,
			away_implied_total = EXCLUDED.away_implied_total,
			updated_at = NOW()`,
		l.GameID, l.HomeTeam, l.AwayTeam, l.Week, l.Season, l.TotalLine, l.SpreadLine,
		l.HomeMoneyline, l.AwayMoneyline, l.HomeImpliedTotal, l.AwayImpliedTotal, l.Sportsbook,
	)
	return mapErr(err)
}

func (s *BettingLineStore) ListByWeek(ctx context.Context, week, season int) ([]*domain.BettingLine, error) {
	rows, err := s.pool.Query(ctx, "lines_by_week", week, season)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []*domain.BettingLine
	for rows.Next() {
		var l domain.BettingLine
		if err := rows.Scan(&l.GameID, &l.HomeTeam, &l.AwayTeam, &l.Week, &l.Season,
			&l.TotalLine, &l.SpreadLine, &l.HomeMoneyline, &l.AwayMoneyline,
			&l.HomeImpliedTotal, &l.AwayImpliedTotal, &l.Sportsbook, &l.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, &l)
	}
	return out, mapErr(rows.Err())
}
