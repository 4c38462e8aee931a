package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

type projectionKey struct {
	playerID string
	week     int
	season   int
	source   string
}

// ProjectionStore is an in-memory storage.ProjectionStore.
type ProjectionStore struct {
	mu   sync.RWMutex
	rows map[projectionKey]*domain.ProjectionRecord
}

func NewProjectionStore() *ProjectionStore {
	return &ProjectionStore{rows: make(map[projectionKey]*domain.ProjectionRecord)}
}

func (s *ProjectionStore) Upsert(ctx context.Context, p *domain.ProjectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	cp.UpdatedAt = time.Now()
	s.rows[projectionKey{playerID: p.PlayerID, week: p.Week, season: p.Season, source: p.Source}] = &cp
	return nil
}

func (s *ProjectionStore) Get(ctx context.Context, playerID string, week, season int) ([]*domain.ProjectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ProjectionRecord
	for key, p := range s.rows {
		if key.playerID == playerID && key.week == week && key.season == season {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out, nil
}
