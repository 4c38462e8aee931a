package waiver

import (
	"context"
	"log/slog"
	"time"

	"github.com/gridironlabs/waiverwire/internal/season"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// RefreshBudget is the advisory wall-clock budget for one refresh. A slow
// run still completes and persists; it is only flagged non-compliant.
const RefreshBudget = 60 * time.Second

// RefreshResult reports one refresh run.
type RefreshResult struct {
	Success         bool    `json:"success"`
	LeagueID        string  `json:"league_id"`
	Week            int     `json:"week"`
	CandidatesCount int     `json:"candidates_count"`
	DurationSeconds float64 `json:"duration_seconds"`
	PerformanceOK   bool    `json:"performance_ok"`
	Error           string  `json:"error,omitempty"`
}

// Service is the refresh orchestration entry point: build then sync, with
// wall-clock measurement against the budget.
type Service struct {
	builder *Builder
	syncer  *Syncer
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires a refresh service over the given stores.
func NewService(stores *storage.Stores, logger *slog.Logger) *Service {
	return &Service{
		builder: NewBuilder(stores, logger),
		syncer:  NewSyncer(stores.Waivers, logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Refresh builds and persists waiver candidates for one league. A zero week
// defaults to the current NFL week; a zero season defaults to the current
// season year.
func (s *Service) Refresh(ctx context.Context, leagueID string, week, seasonYear int, userID string) RefreshResult {
	start := s.now()
	if week == 0 {
		week = season.CurrentWeek(start)
	}
	if seasonYear == 0 {
		seasonYear = season.Year(start)
	}

	result := RefreshResult{LeagueID: leagueID, Week: week}
	finish := func() RefreshResult {
		result.DurationSeconds = s.now().Sub(start).Seconds()
		result.PerformanceOK = result.DurationSeconds < RefreshBudget.Seconds()
		s.logger.Info("waiver refresh finished",
			"league_id", leagueID, "week", week,
			"success", result.Success, "candidates", result.CandidatesCount,
			"duration_seconds", result.DurationSeconds, "performance_ok", result.PerformanceOK)
		return result
	}

	candidates, err := s.builder.BuildCandidates(ctx, BuildRequest{
		LeagueID: leagueID,
		Week:     week,
		Season:   seasonYear,
		UserID:   userID,
	})
	if err != nil {
		result.Error = err.Error()
		return finish()
	}

	if !s.syncer.Sync(ctx, candidates) {
		result.Error = "candidate sync failed"
		return finish()
	}

	result.Success = true
	result.CandidatesCount = len(candidates)
	return finish()
}
