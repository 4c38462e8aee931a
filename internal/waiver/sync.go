package waiver

import (
	"context"
	"log/slog"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// Syncer persists computed candidate batches.
type Syncer struct {
	store  storage.WaiverCandidateStore
	logger *slog.Logger
}

func NewSyncer(store storage.WaiverCandidateStore, logger *slog.Logger) *Syncer {
	return &Syncer{store: store, logger: logger}
}

// Sync replaces the stored rows for every (league, week) key present in the
// batch. The replacement is delete-then-insert inside one store transaction,
// so the table exactly reflects the latest computation and a failure leaves
// the previous rows intact. Returns false on any error. Idempotent.
func (s *Syncer) Sync(ctx context.Context, candidates []*domain.WaiverCandidate) bool {
	if len(candidates) == 0 {
		return true
	}

	if err := s.store.Replace(ctx, candidates); err != nil {
		s.logger.Error("waiver candidate sync failed",
			"count", len(candidates), "error", err)
		return false
	}

	keys := make(map[domain.LeagueWeek]int)
	for _, c := range candidates {
		keys[c.Key()]++
	}
	for key, n := range keys {
		s.logger.Info("synced waiver candidates",
			"league_id", key.LeagueID, "week", key.Week, "count", n)
	}
	return true
}
