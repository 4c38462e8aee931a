package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// PlayerRef carries whatever a caller knows about a player: an external
// platform ID, display attributes, or both.
type PlayerRef struct {
	Platform   domain.Platform
	PlatformID string
	Name       string
	Position   string
	Team       string
}

// PlayerInfo is the input to get-or-create mapping: display attributes plus
// an optional platform ID discovered during ingestion.
type PlayerInfo struct {
	Name       string
	Position   string
	Team       string
	Platform   domain.Platform
	PlatformID string
	Active     bool
}

// MappingStats summarizes resolver cache contents. A data-quality signal,
// not behaviorally load-bearing.
type MappingStats struct {
	TotalPlayers  int                     `json:"total_players"`
	PerPlatform   map[domain.Platform]int `json:"per_platform"`
	CrossPlatform int                     `json:"cross_platform"` // players known to >= 2 platforms
}

// Resolver maps platform-specific player IDs to canonical IDs with lazily
// populated in-memory caches over a PlayerStore.
//
// A Resolver is not safe for concurrent use. Concurrent refresh workers must
// each construct their own resolver and reload it from the store.
type Resolver struct {
	store       storage.PlayerStore
	logger      *slog.Logger
	byCanonical map[string]*domain.Player
	byPlatform  map[domain.Platform]map[string]string
}

// NewResolver creates a resolver backed by the given player store.
func NewResolver(store storage.PlayerStore, logger *slog.Logger) *Resolver {
	r := &Resolver{
		store:       store,
		logger:      logger,
		byCanonical: make(map[string]*domain.Player),
		byPlatform:  make(map[domain.Platform]map[string]string),
	}
	for _, p := range domain.Platforms {
		r.byPlatform[p] = make(map[string]string)
	}
	return r
}

// ResolveCanonicalID finds the canonical ID for a player reference.
// Lookup order: in-memory platform-ID cache, store lookup by platform ID
// (populating the cache on hit), then ID synthesis from name/position/team.
// Returns ("", false) when no platform ID matches and no attributes were
// supplied. "Not found" is never an error; store failures are logged and
// degrade to the next strategy.
func (r *Resolver) ResolveCanonicalID(ctx context.Context, ref PlayerRef) (string, bool) {
	if ref.PlatformID != "" {
		if id, ok := r.byPlatform[ref.Platform][ref.PlatformID]; ok {
			return id, true
		}

		p, err := r.store.GetByPlatformID(ctx, ref.Platform, ref.PlatformID)
		switch {
		case err == nil:
			r.cache(p)
			return p.CanonicalID, true
		case !errors.Is(err, storage.ErrNotFound):
			r.logger.Warn("platform ID lookup failed",
				"platform", ref.Platform, "platform_id", ref.PlatformID, "error", err)
		}
	}

	if ref.Name == "" || ref.Position == "" || ref.Team == "" {
		return "", false
	}

	id := CanonicalID(ref.Name, ref.Position, ref.Team)
	if _, ok := r.byCanonical[id]; ok {
		return id, true
	}
	if p, err := r.store.GetByCanonicalID(ctx, id); err == nil {
		r.cache(p)
	}
	return id, true
}

// PlayerInfo returns the cached or stored player for a canonical ID.
func (r *Resolver) PlayerInfo(ctx context.Context, canonicalID string) (*domain.Player, bool) {
	if p, ok := r.byCanonical[canonicalID]; ok {
		return p, true
	}
	p, err := r.store.GetByCanonicalID(ctx, canonicalID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("player lookup failed", "canonical_id", canonicalID, "error", err)
		}
		return nil, false
	}
	r.cache(p)
	return p, true
}

// AddPlayerMapping performs get-or-create: an existing player (matched by
// platform ID or by the reproduced canonical ID) gains any newly discovered
// platform ID and keeps its canonical ID; otherwise a new player row is
// inserted. Store failures are logged as warnings and return ("", false):
// one bad record must not abort a batch ingestion run.
func (r *Resolver) AddPlayerMapping(ctx context.Context, info PlayerInfo) (string, bool) {
	name := NormalizeName(info.Name)
	position := NormalizePosition(info.Position)
	team := NormalizeTeam(info.Team)
	if name == "" || position == PositionUnknown {
		return "", false
	}

	existing := r.findExisting(ctx, info, name, position, team)
	if existing != nil {
		changed := false
		if info.PlatformID != "" && existing.PlatformID(info.Platform) == nil {
			existing.SetPlatformID(info.Platform, info.PlatformID)
			changed = true
		}
		if changed {
			if err := r.store.Update(ctx, existing); err != nil {
				r.logger.Warn("player update failed",
					"canonical_id", existing.CanonicalID, "error", err)
				return "", false
			}
		}
		r.cache(existing)
		return existing.CanonicalID, true
	}

	player := &domain.Player{
		CanonicalID: CanonicalID(name, position, team),
		Name:        DisplayName(info.Name),
		Position:    position,
		Team:        team,
		IsStarter:   IsStarterPosition(position),
		Active:      info.Active,
	}
	if info.PlatformID != "" {
		player.SetPlatformID(info.Platform, info.PlatformID)
	}

	if err := r.store.Insert(ctx, player); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Lost a race with another ingestion path; the row exists now.
			if p, getErr := r.store.GetByCanonicalID(ctx, player.CanonicalID); getErr == nil {
				r.cache(p)
				return p.CanonicalID, true
			}
		}
		r.logger.Warn("player insert failed",
			"name", info.Name, "canonical_id", player.CanonicalID, "error", err)
		return "", false
	}

	r.cache(player)
	r.logger.Debug("added player mapping",
		"name", player.Name, "canonical_id", player.CanonicalID, "platform", info.Platform)
	return player.CanonicalID, true
}

// findExisting locates a player row by platform ID, then by reproduced
// canonical ID. Store errors degrade to nil.
func (r *Resolver) findExisting(ctx context.Context, info PlayerInfo, name, position, team string) *domain.Player {
	if info.PlatformID != "" {
		if id, ok := r.byPlatform[info.Platform][info.PlatformID]; ok {
			if p, ok := r.byCanonical[id]; ok {
				return p
			}
		}
		p, err := r.store.GetByPlatformID(ctx, info.Platform, info.PlatformID)
		if err == nil {
			return p
		}
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("platform ID lookup failed",
				"platform", info.Platform, "platform_id", info.PlatformID, "error", err)
		}
	}

	canonicalID := CanonicalID(name, position, team)
	if p, ok := r.byCanonical[canonicalID]; ok {
		return p
	}
	p, err := r.store.GetByCanonicalID(ctx, canonicalID)
	if err == nil {
		return p
	}
	if !errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("canonical ID lookup failed", "canonical_id", canonicalID, "error", err)
	}
	return nil
}

// LoadFromStore bulk-populates the caches from persisted players. Run once
// per process or batch before high-volume resolution to avoid N+1 lookups.
func (r *Resolver) LoadFromStore(ctx context.Context) error {
	players, err := r.store.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		r.cache(p)
	}
	r.logger.Info("loaded player mappings", "count", len(players))
	return nil
}

// MappingStats reports cache totals per platform and cross-platform overlap.
func (r *Resolver) MappingStats() MappingStats {
	stats := MappingStats{
		TotalPlayers: len(r.byCanonical),
		PerPlatform:  make(map[domain.Platform]int),
	}
	for _, platform := range domain.Platforms {
		stats.PerPlatform[platform] = len(r.byPlatform[platform])
	}
	for _, p := range r.byCanonical {
		if p.PlatformIDCount() >= 2 {
			stats.CrossPlatform++
		}
	}
	return stats
}

func (r *Resolver) cache(p *domain.Player) {
	r.byCanonical[p.CanonicalID] = p
	for _, platform := range domain.Platforms {
		if id := p.PlatformID(platform); id != nil {
			r.byPlatform[platform][*id] = p.CanonicalID
		}
	}
}
