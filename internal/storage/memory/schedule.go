package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// ScheduleStore is an in-memory storage.ScheduleStore.
type ScheduleStore struct {
	mu    sync.RWMutex
	games map[string]*domain.ScheduleGame
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{games: make(map[string]*domain.ScheduleGame)}
}

func (s *ScheduleStore) Upsert(ctx context.Context, g *domain.ScheduleGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *g
	s.games[g.GameID] = &cp
	return nil
}

func (s *ScheduleStore) GameForTeam(ctx context.Context, team string, week, season int) (*domain.ScheduleGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.games {
		if g.Week == week && g.Season == season && (g.HomeTeam == team || g.AwayTeam == team) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

type injuryKey struct {
	playerID string
	week     int
	season   int
}

// InjuryStore is an in-memory storage.InjuryStore.
type InjuryStore struct {
	mu   sync.RWMutex
	rows map[injuryKey]*domain.InjuryReport
}

func NewInjuryStore() *InjuryStore {
	return &InjuryStore{rows: make(map[injuryKey]*domain.InjuryReport)}
}

func (s *InjuryStore) Upsert(ctx context.Context, r *domain.InjuryReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *r
	cp.UpdatedAt = time.Now()
	s.rows[injuryKey{playerID: r.PlayerID, week: r.Week, season: r.Season}] = &cp
	return nil
}

func (s *InjuryStore) Get(ctx context.Context, playerID string, week, season int) (*domain.InjuryReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rows[injuryKey{playerID: playerID, week: week, season: season}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

type depthChartKey struct {
	playerID string
	team     string
	position string
	week     int
	season   int
}

// DepthChartStore is an in-memory storage.DepthChartStore.
type DepthChartStore struct {
	mu   sync.RWMutex
	rows map[depthChartKey]*domain.DepthChartEntry
}

func NewDepthChartStore() *DepthChartStore {
	return &DepthChartStore{rows: make(map[depthChartKey]*domain.DepthChartEntry)}
}

func (s *DepthChartStore) Upsert(ctx context.Context, e *domain.DepthChartEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *e
	cp.UpdatedAt = time.Now()
	key := depthChartKey{playerID: e.PlayerID, team: e.Team, position: e.Position, week: e.Week, season: e.Season}
	s.rows[key] = &cp
	return nil
}

func (s *DepthChartStore) ListTeamPosition(ctx context.Context, team, position string, week, season int) ([]*domain.DepthChartEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.DepthChartEntry
	for key, e := range s.rows {
		if key.team == team && key.position == position && key.week == week && key.season == season {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepthRank < out[j].DepthRank })
	return out, nil
}

type bettingKey struct {
	gameID     string
	sportsbook string
}

// BettingLineStore is an in-memory storage.BettingLineStore.
type BettingLineStore struct {
	mu   sync.RWMutex
	rows map[bettingKey]*domain.BettingLine
}

func NewBettingLineStore() *BettingLineStore {
	return &BettingLineStore{rows: make(map[bettingKey]*domain.BettingLine)}
}

func (s *BettingLineStore) Upsert(ctx context.Context, l *domain.BettingLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *l
	cp.UpdatedAt = time.Now()
	s.rows[bettingKey{gameID: l.GameID, sportsbook: l.Sportsbook}] = &cp
	return nil
}

func (s *BettingLineStore) ListByWeek(ctx context.Context, week, season int) ([]*domain.BettingLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.BettingLine
	for _, l := range s.rows {
		if l.Week == week && l.Season == season {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out, nil
}
