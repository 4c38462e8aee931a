package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

type rosterScope struct {
	platform domain.Platform
	leagueID string
}

type snapshotKey struct {
	platform domain.Platform
	leagueID string
	teamID   string
	playerID string
	week     int
	season   int
}

// RosterStore is an in-memory storage.RosterStore.
type RosterStore struct {
	mu        sync.RWMutex
	entries   map[rosterScope][]*domain.RosterEntry
	snapshots map[snapshotKey]*domain.RosterSnapshot
}

func NewRosterStore() *RosterStore {
	return &RosterStore{
		entries:   make(map[rosterScope][]*domain.RosterEntry),
		snapshots: make(map[snapshotKey]*domain.RosterSnapshot),
	}
}

func (s *RosterStore) ReplaceActive(ctx context.Context, platform domain.Platform, leagueID string, entries []*domain.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	replacement := make([]*domain.RosterEntry, 0, len(entries))
	for _, e := range entries {
		cp := *e
		cp.Platform = platform
		cp.LeagueID = leagueID
		cp.UpdatedAt = now
		replacement = append(replacement, &cp)
	}
	s.entries[rosterScope{platform: platform, leagueID: leagueID}] = replacement
	return nil
}

func (s *RosterStore) ActiveEntries(ctx context.Context, leagueID string) ([]*domain.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.RosterEntry
	for scope, entries := range s.entries {
		if scope.leagueID != leagueID {
			continue
		}
		for _, e := range entries {
			if e.IsActive {
				cp := *e
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (s *RosterStore) ActivePlayerIDs(ctx context.Context, leagueID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool)
	for scope, entries := range s.entries {
		if scope.leagueID != leagueID {
			continue
		}
		for _, e := range entries {
			if e.IsActive {
				out[e.PlayerID] = true
			}
		}
	}
	return out, nil
}

func (s *RosterStore) AllActivePlayerIDs(ctx context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool)
	for _, entries := range s.entries {
		for _, e := range entries {
			if e.IsActive {
				out[e.PlayerID] = true
			}
		}
	}
	return out, nil
}

func (s *RosterStore) UpsertSnapshot(ctx context.Context, snap *domain.RosterSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *snap
	cp.SyncedAt = time.Now()
	key := snapshotKey{
		platform: snap.Platform,
		leagueID: snap.LeagueID,
		teamID:   snap.TeamID,
		playerID: snap.PlayerID,
		week:     snap.Week,
		season:   snap.Season,
	}
	s.snapshots[key] = &cp
	return nil
}

func (s *RosterStore) Snapshots(ctx context.Context, platform domain.Platform, leagueID string, week, season int) ([]*domain.RosterSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.RosterSnapshot
	for key, snap := range s.snapshots {
		if key.platform == platform && key.leagueID == leagueID && key.week == week && key.season == season {
			cp := *snap
			out = append(out, &cp)
		}
	}
	return out, nil
}
