package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// PlayerStore is an in-memory storage.PlayerStore.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{players: make(map[string]*domain.Player)}
}

func (s *PlayerStore) Insert(ctx context.Context, p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[p.CanonicalID]; exists {
		return storage.ErrDuplicateKey
	}
	cp := *p
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.players[cp.CanonicalID] = &cp
	return nil
}

func (s *PlayerStore) Update(ctx context.Context, p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.players[p.CanonicalID]
	if !ok {
		return storage.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.players[cp.CanonicalID] = &cp
	return nil
}

func (s *PlayerStore) GetByCanonicalID(ctx context.Context, canonicalID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[canonicalID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *PlayerStore) GetByPlatformID(ctx context.Context, platform domain.Platform, platformID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		if id := p.PlatformID(platform); id != nil && *id == platformID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *PlayerStore) GetByIDs(ctx context.Context, canonicalIDs []string) ([]*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Player, 0, len(canonicalIDs))
	for _, id := range canonicalIDs {
		if p, ok := s.players[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *PlayerStore) ListByPosition(ctx context.Context, position string) ([]*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Player
	for _, p := range s.players {
		if p.Position == position {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *PlayerStore) List(ctx context.Context) ([]*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Player, 0, len(s.players))
	for _, p := range s.players {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
