package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

// WaiverCandidateStore is an in-memory storage.WaiverCandidateStore.
type WaiverCandidateStore struct {
	mu   sync.RWMutex
	rows map[domain.LeagueWeek][]*domain.WaiverCandidate
}

func NewWaiverCandidateStore() *WaiverCandidateStore {
	return &WaiverCandidateStore{rows: make(map[domain.LeagueWeek][]*domain.WaiverCandidate)}
}

// Replace deletes then reinserts every (league, week) key present in the
// batch under one lock, so readers never see a partially replaced key.
func (s *WaiverCandidateStore) Replace(ctx context.Context, candidates []*domain.WaiverCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	grouped := make(map[domain.LeagueWeek][]*domain.WaiverCandidate)
	for _, c := range candidates {
		cp := *c
		cp.CreatedAt = now
		grouped[c.Key()] = append(grouped[c.Key()], &cp)
	}
	for key, batch := range grouped {
		s.rows[key] = batch
	}
	return nil
}

func (s *WaiverCandidateStore) ListLeagueWeek(ctx context.Context, leagueID string, week int) ([]*domain.WaiverCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.rows[domain.LeagueWeek{LeagueID: leagueID, Week: week}]
	out := make([]*domain.WaiverCandidate, 0, len(stored))
	for _, c := range stored {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}
