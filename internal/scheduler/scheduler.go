// Package scheduler drives the recurring waiver candidate refresh.
// All scheduled work runs from Go since the API server is already a
// persistent, long-running process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/waiver"
)

// defaultWorkers bounds concurrent league refreshes in one scheduled run.
const defaultWorkers = 4

// Result aggregates one refresh-all run across configured leagues.
type Result struct {
	LeaguesFound     int                    `json:"leagues_found"`
	LeaguesSucceeded int                    `json:"leagues_succeeded"`
	LeaguesFailed    int                    `json:"leagues_failed"`
	Candidates       int                    `json:"candidates"`
	Duration         time.Duration          `json:"duration"`
	Results          []waiver.RefreshResult `json:"results,omitempty"`
	Errors           []string               `json:"errors,omitempty"`
}

// Summary returns a one-line human-readable report.
func (r *Result) Summary() string {
	return fmt.Sprintf("leagues=%d succeeded=%d failed=%d candidates=%d duration=%s",
		r.LeaguesFound, r.LeaguesSucceeded, r.LeaguesFailed, r.Candidates, r.Duration.Round(time.Millisecond))
}

// Scheduler runs the waiver refresh on a cron spec for configured leagues.
type Scheduler struct {
	svc     *waiver.Service
	cfg     *config.Config
	logger  *slog.Logger
	cron    *cron.Cron
	workers int
}

// New creates a Scheduler. Start must be called to begin scheduling.
func New(svc *waiver.Service, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		svc:     svc,
		cfg:     cfg,
		logger:  logger,
		cron:    cron.New(),
		workers: defaultWorkers,
	}
}

// Start registers the refresh job and launches the cron loop in its own
// goroutine. Blocks until ctx is cancelled. Intended to be called with `go`.
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.cfg.RefreshLeagues) == 0 {
		s.logger.Info("Waiver refresh scheduler idle, no leagues configured")
		<-ctx.Done()
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.RefreshCron, func() {
		result := s.RefreshAll(ctx)
		s.logger.Info("Scheduled waiver refresh complete", "summary", result.Summary())
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron spec %q: %w", s.cfg.RefreshCron, err)
	}

	s.logger.Info("Waiver refresh scheduler started",
		"cron", s.cfg.RefreshCron,
		"leagues", len(s.cfg.RefreshLeagues))
	s.cron.Start()

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Waiver refresh scheduler stopped")
	return nil
}

// RefreshAll refreshes every configured league for the current week using a
// small worker pool. Week and season default inside the refresh service.
func (s *Scheduler) RefreshAll(ctx context.Context) Result {
	start := time.Now()
	result := Result{LeaguesFound: len(s.cfg.RefreshLeagues)}

	if result.LeaguesFound == 0 {
		result.Duration = time.Since(start)
		return result
	}

	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if workers > result.LeaguesFound {
		workers = result.LeaguesFound
	}

	ch := make(chan string, result.LeaguesFound)
	for _, leagueID := range s.cfg.RefreshLeagues {
		ch <- leagueID
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for leagueID := range ch {
				r := s.svc.Refresh(ctx, leagueID, 0, s.cfg.Season, "")

				mu.Lock()
				result.Results = append(result.Results, r)
				if r.Success {
					result.LeaguesSucceeded++
					result.Candidates += r.CandidatesCount
				} else {
					result.LeaguesFailed++
					result.Errors = append(result.Errors, fmt.Sprintf("league %s: %s", leagueID, r.Error))
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)
	return result
}
