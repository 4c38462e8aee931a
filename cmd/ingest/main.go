// Command ingest is the Waiverwire data ingestion CLI.
//
// Usage:
//
//	waiverwire-ingest players sleeper --file players.json
//	waiverwire-ingest players mfl --file players.json
//	waiverwire-ingest usage --file usage.json --week 5
//	waiverwire-ingest projections --file proj.json --week 5 --source fantasypros
//	waiverwire-ingest rosters --file league.json --platform sleeper --league 12345 --week 5
//	waiverwire-ingest schedule --file schedule.json
//	waiverwire-ingest injuries --file injuries.json --week 5
//	waiverwire-ingest depthcharts --file depth.json --week 5
//	waiverwire-ingest betting --file lines.json --week 5
//	waiverwire-ingest waivers refresh --league 12345 --week 5
//	waiverwire-ingest waivers refresh-all
//	waiverwire-ingest stats
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
	"github.com/gridironlabs/waiverwire/internal/ingest"
	"github.com/gridironlabs/waiverwire/internal/scheduler"
	"github.com/gridironlabs/waiverwire/internal/season"
	"github.com/gridironlabs/waiverwire/internal/storage/postgres"
	"github.com/gridironlabs/waiverwire/internal/waiver"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "waiverwire-ingest",
		Short: "Waiverwire data ingestion CLI",
	}

	root.AddCommand(playersCmd())
	root.AddCommand(usageCmd())
	root.AddCommand(projectionsCmd())
	root.AddCommand(rostersCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(injuriesCmd())
	root.AddCommand(depthChartsCmd())
	root.AddCommand(bettingCmd())
	root.AddCommand(waiversCmd())
	root.AddCommand(statsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// players command
// --------------------------------------------------------------------------

func playersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Sync player identities from platform exports",
	}
	cmd.AddCommand(playersSleeperCmd())
	cmd.AddCommand(playersMFLCmd())
	return cmd
}

func playersSleeperCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sleeper",
		Short: "Sync players from a Sleeper player pool export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				pool, err := readRecordMap(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.SyncSleeperPlayers(ctx, pool)
				reportResult("Sleeper player sync", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to Sleeper player pool JSON (object keyed by player ID)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func playersMFLCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "mfl",
		Short: "Sync players from an MFL player export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.SyncMFLPlayers(ctx, recs)
				reportResult("MFL player sync", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to MFL players JSON (array)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// --------------------------------------------------------------------------
// weekly feed commands
// --------------------------------------------------------------------------

func usageCmd() *cobra.Command {
	var file string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Load weekly usage stats (snaps, routes, targets, red zone)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadUsage(ctx, weekOr(week), seasonOr(seasonYear, cfg), recs)
				reportResult("Usage load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to usage JSON (array)")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func projectionsCmd() *cobra.Command {
	var file, source string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "projections",
		Short: "Load weekly player projections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadProjections(ctx, weekOr(week), seasonOr(seasonYear, cfg), source, recs)
				reportResult("Projections load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to projections JSON (array)")
	cmd.Flags().StringVar(&source, "source", "consensus", "Projection source label")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func rostersCmd() *cobra.Command {
	var file, platform, leagueID string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "Sync league rosters for one platform league",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePlatform(platform)
			if err != nil {
				return err
			}
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				teams, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.SyncRosters(ctx, p, leagueID, weekOr(week), seasonOr(seasonYear, cfg), teams)
				reportResult("Roster sync", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to league rosters JSON (array of teams)")
	cmd.Flags().StringVar(&platform, "platform", "", "Platform (sleeper, mfl, espn, yahoo)")
	cmd.Flags().StringVar(&leagueID, "league", "", "League ID")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func scheduleCmd() *cobra.Command {
	var file string
	var seasonYear int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Load the NFL schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadSchedule(ctx, seasonOr(seasonYear, cfg), recs)
				reportResult("Schedule load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to schedule JSON (array of games)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func injuriesCmd() *cobra.Command {
	var file string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "injuries",
		Short: "Load weekly injury reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadInjuries(ctx, weekOr(week), seasonOr(seasonYear, cfg), recs)
				reportResult("Injuries load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to injuries JSON (array)")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func depthChartsCmd() *cobra.Command {
	var file string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "depthcharts",
		Short: "Load weekly team depth charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadDepthCharts(ctx, weekOr(week), seasonOr(seasonYear, cfg), recs)
				reportResult("Depth charts load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to depth charts JSON (array)")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func bettingCmd() *cobra.Command {
	var file string
	var week, seasonYear int
	cmd := &cobra.Command{
		Use:   "betting",
		Short: "Load weekly betting lines (spreads, totals, implied points)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error {
				recs, err := readRecords(file)
				if err != nil {
					return err
				}
				start := time.Now()
				result := ig.LoadBettingLines(ctx, weekOr(week), seasonOr(seasonYear, cfg), recs)
				reportResult("Betting lines load", result, start)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to betting lines JSON (array)")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	cmd.Flags().IntVar(&seasonYear, "season", 0, "Season year (0 = current)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// --------------------------------------------------------------------------
// waivers command
// --------------------------------------------------------------------------

func waiversCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waivers",
		Short: "Build and persist waiver candidate features",
	}
	cmd.AddCommand(waiversRefreshCmd())
	cmd.AddCommand(waiversRefreshAllCmd())
	return cmd
}

func waiversRefreshCmd() *cobra.Command {
	var leagueID, userID string
	var week int
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh waiver candidates for one league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				stores := postgres.NewStores(pool)
				svc := waiver.NewService(stores, logger)
				result := svc.Refresh(ctx, leagueID, week, cfg.Season, userID)
				logger.Info("Waiver refresh finished",
					"league_id", result.LeagueID, "week", result.Week,
					"candidates", result.CandidatesCount,
					"duration_seconds", result.DurationSeconds,
					"performance_ok", result.PerformanceOK)
				if !result.Success {
					return fmt.Errorf("refresh failed: %s", result.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&leagueID, "league", "", "League ID")
	cmd.Flags().StringVar(&userID, "user", "", "Scope roster fit to one user's team")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = current)")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func waiversRefreshAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh-all",
		Short: "Refresh waiver candidates for all configured leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if len(cfg.RefreshLeagues) == 0 {
					return fmt.Errorf("WAIVER_REFRESH_LEAGUES is empty")
				}
				stores := postgres.NewStores(pool)
				svc := waiver.NewService(stores, logger)
				sched := scheduler.New(svc, cfg, logger)
				result := sched.RefreshAll(ctx)
				logger.Info("Refresh-all finished", "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("refresh error", "error", e)
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report identity mapping coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				stores := postgres.NewStores(pool)
				resolver := identity.NewResolver(stores.Players, logger)
				if err := resolver.LoadFromStore(ctx); err != nil {
					return fmt.Errorf("load player mappings: %w", err)
				}
				stats := resolver.MappingStats()
				out, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runDB handles config loading, DB connection, and context cancellation.
func runDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// runIngest wraps runDB and hands the callback a ready Ingestor.
func runIngest(fn func(ctx context.Context, cfg *config.Config, ig *ingest.Ingestor) error) error {
	return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
		ig := ingest.New(postgres.NewStores(pool), logger)
		return fn(ctx, cfg, ig)
	})
}

func readRecords(path string) ([]ingest.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var recs []ingest.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recs, nil
}

func readRecordMap(path string) (map[string]ingest.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var recs map[string]ingest.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recs, nil
}

func parsePlatform(s string) (domain.Platform, error) {
	for _, p := range domain.Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q (expected sleeper, mfl, espn, yahoo)", s)
}

func weekOr(week int) int {
	if week > 0 {
		return week
	}
	return season.CurrentWeek(time.Now())
}

func seasonOr(seasonYear int, cfg *config.Config) int {
	if seasonYear > 0 {
		return seasonYear
	}
	if cfg.Season > 0 {
		return cfg.Season
	}
	return season.Year(time.Now())
}

func reportResult(label string, result ingest.Result, start time.Time) {
	logger.Info(label+" finished",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("ingest error", "error", e)
	}
}
