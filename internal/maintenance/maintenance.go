// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — retention is driven from Go since the API server is
// already a persistent, long-running process.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config controls maintenance task intervals and retention windows.
// Zero duration disables a task.
type Config struct {
	CleanupInterval    time.Duration // How often the retention sweep runs
	CandidateRetention time.Duration // waiver_candidates rows older than this are purged
	SnapshotRetention  time.Duration // roster_snapshots rows older than this are purged
}

// DefaultConfig returns sensible production defaults. Candidate rows are only
// useful for the current waiver window; snapshots are kept for a full season.
func DefaultConfig() Config {
	return Config{
		CleanupInterval:    6 * time.Hour,
		CandidateRetention: 28 * 24 * time.Hour,
		SnapshotRetention:  210 * 24 * time.Hour,
	}
}

// Start launches the maintenance ticker. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, cfg Config, logger *slog.Logger) {
	if cfg.CleanupInterval <= 0 {
		logger.Info("Maintenance disabled")
		return
	}

	logger.Info("Maintenance ticker started",
		"cleanup", cfg.CleanupInterval,
		"candidate_retention", cfg.CandidateRetention,
		"snapshot_retention", cfg.SnapshotRetention)

	t := time.NewTicker(cfg.CleanupInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			cleanup(ctx, pool, cfg, logger)
		case <-ctx.Done():
			logger.Info("Maintenance ticker stopped")
			return
		}
	}
}

// cleanup purges waiver candidate rows and roster snapshots past their
// retention windows.
func cleanup(ctx context.Context, pool *pgxpool.Pool, cfg Config, logger *slog.Logger) {
	if cfg.CandidateRetention > 0 {
		cutoff := time.Now().Add(-cfg.CandidateRetention)
		tag, err := pool.Exec(ctx, `
			DELETE FROM waiver_candidates
			WHERE created_at < $1`, cutoff)
		if err != nil {
			logger.Warn("Cleanup: failed to purge stale waiver candidates", "error", err)
		} else if tag.RowsAffected() > 0 {
			logger.Info("Cleanup: purged stale waiver candidates", "count", tag.RowsAffected())
		}
	}

	if cfg.SnapshotRetention > 0 {
		cutoff := time.Now().Add(-cfg.SnapshotRetention)
		tag, err := pool.Exec(ctx, `
			DELETE FROM roster_snapshots
			WHERE synced_at < $1`, cutoff)
		if err != nil {
			logger.Warn("Cleanup: failed to purge old roster snapshots", "error", err)
		} else if tag.RowsAffected() > 0 {
			logger.Info("Cleanup: purged old roster snapshots", "count", tag.RowsAffected())
		}
	}
}
