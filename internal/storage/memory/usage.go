package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

type usageKey struct {
	playerID string
	week     int
	season   int
}

// UsageStore is an in-memory storage.UsageStore.
type UsageStore struct {
	mu   sync.RWMutex
	rows map[usageKey]*domain.UsageRecord
}

func NewUsageStore() *UsageStore {
	return &UsageStore{rows: make(map[usageKey]*domain.UsageRecord)}
}

// Upsert merges field-by-field: a nil incoming field keeps the stored value.
// This matches the COALESCE(EXCLUDED.x, t.x) behavior of the Postgres store,
// so snap data and target data loaded in separate passes accumulate into one
// row instead of clobbering each other.
func (s *UsageStore) Upsert(ctx context.Context, u *domain.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := usageKey{playerID: u.PlayerID, week: u.Week, season: u.Season}
	existing, ok := s.rows[key]
	if !ok {
		cp := *u
		cp.UpdatedAt = time.Now()
		s.rows[key] = &cp
		return nil
	}

	merged := *existing
	mergeFloat(&merged.SnapPct, u.SnapPct)
	mergeFloat(&merged.RoutePct, u.RoutePct)
	mergeFloat(&merged.TargetShare, u.TargetShare)
	mergeFloat(&merged.CarryShare, u.CarryShare)
	mergeInt(&merged.RZTouches, u.RZTouches)
	mergeInt(&merged.EZTargets, u.EZTargets)
	mergeInt(&merged.Targets, u.Targets)
	mergeInt(&merged.Carries, u.Carries)
	mergeInt(&merged.Receptions, u.Receptions)
	mergeFloat(&merged.ReceivingYards, u.ReceivingYards)
	mergeFloat(&merged.RushingYards, u.RushingYards)
	mergeInt(&merged.Touchdowns, u.Touchdowns)
	merged.UpdatedAt = time.Now()
	s.rows[key] = &merged
	return nil
}

func (s *UsageStore) Get(ctx context.Context, playerID string, week, season int) (*domain.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.rows[usageKey{playerID: playerID, week: week, season: season}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UsageStore) GetRange(ctx context.Context, playerID string, fromWeek, toWeek, season int) ([]*domain.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.UsageRecord
	for week := fromWeek; week <= toWeek; week++ {
		if u, ok := s.rows[usageKey{playerID: playerID, week: week, season: season}]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *UsageStore) ListByWeek(ctx context.Context, week, season int) ([]*domain.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.UsageRecord
	for key, u := range s.rows {
		if key.week == week && key.season == season {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
