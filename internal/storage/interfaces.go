// Package storage defines the repository interfaces the ingestion adapters,
// identity resolver, and waiver feature builder depend on. Implementations
// live in storage/postgres (pgx) and storage/memory (tests, local runs).
// Keeping the builder persistence-agnostic is what makes it unit-testable.
package storage

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
)

// PlayerStore provides access to the canonical player identity ledger.
// Players are never deleted; platform IDs are merged into existing rows as
// they are discovered.
type PlayerStore interface {
	// Insert adds a new player. Returns ErrDuplicateKey if the canonical ID
	// already exists.
	Insert(ctx context.Context, p *domain.Player) error

	// Update rewrites a player's mutable attributes (platform IDs, team,
	// depth chart position). Returns ErrNotFound if the canonical ID is
	// unknown.
	Update(ctx context.Context, p *domain.Player) error

	// GetByCanonicalID returns a player by canonical ID. ErrNotFound if absent.
	GetByCanonicalID(ctx context.Context, canonicalID string) (*domain.Player, error)

	// GetByPlatformID returns the player holding the given external ID.
	// ErrNotFound if no player carries it.
	GetByPlatformID(ctx context.Context, platform domain.Platform, platformID string) (*domain.Player, error)

	// GetByIDs returns the players for a set of canonical IDs. Missing IDs
	// are silently omitted.
	GetByIDs(ctx context.Context, canonicalIDs []string) ([]*domain.Player, error)

	// ListByPosition returns all players at a normalized position.
	ListByPosition(ctx context.Context, position string) ([]*domain.Player, error)

	// List returns every player. Used for bulk cache population.
	List(ctx context.Context) ([]*domain.Player, error)
}

// UsageStore provides access to weekly usage rows, unique per
// (player, week, season).
type UsageStore interface {
	// Upsert writes a usage row, merging field-by-field on conflict: a nil
	// incoming field never clobbers a stored value.
	Upsert(ctx context.Context, u *domain.UsageRecord) error

	// Get returns the row for one (player, week, season). ErrNotFound if absent.
	Get(ctx context.Context, playerID string, week, season int) (*domain.UsageRecord, error)

	// GetRange returns rows for a player with fromWeek <= week <= toWeek,
	// ordered by week ascending. Missing weeks are simply absent.
	GetRange(ctx context.Context, playerID string, fromWeek, toWeek, season int) ([]*domain.UsageRecord, error)

	// ListByWeek returns all players' rows for one (week, season).
	ListByWeek(ctx context.Context, week, season int) ([]*domain.UsageRecord, error)
}

// ProjectionStore provides access to weekly projections, unique per
// (player, week, season, source).
type ProjectionStore interface {
	// Upsert writes a projection row, replacing the existing row for its
	// (player, week, season, source) key.
	Upsert(ctx context.Context, p *domain.ProjectionRecord) error

	// Get returns all sources' rows for one (player, week, season).
	Get(ctx context.Context, playerID string, week, season int) ([]*domain.ProjectionRecord, error)
}

// RosterStore provides access to current roster state and the historical
// snapshot ledger.
type RosterStore interface {
	// ReplaceActive destructively replaces all roster entries for a
	// platform+league in one transaction. The stored table is a current
	// snapshot; history lives in the snapshot ledger.
	ReplaceActive(ctx context.Context, platform domain.Platform, leagueID string, entries []*domain.RosterEntry) error

	// ActiveEntries returns all active entries for a league across platforms.
	ActiveEntries(ctx context.Context, leagueID string) ([]*domain.RosterEntry, error)

	// ActivePlayerIDs returns the set of rostered player IDs for a league.
	ActivePlayerIDs(ctx context.Context, leagueID string) (map[string]bool, error)

	// AllActivePlayerIDs returns the set of player IDs rostered in any league.
	AllActivePlayerIDs(ctx context.Context) (map[string]bool, error)

	// UpsertSnapshot records one historical roster placement, updating the
	// slot on conflict. Idempotent by (platform, league, team, week, player).
	UpsertSnapshot(ctx context.Context, s *domain.RosterSnapshot) error

	// Snapshots returns the ledger rows for one league-week.
	Snapshots(ctx context.Context, platform domain.Platform, leagueID string, week, season int) ([]*domain.RosterSnapshot, error)
}

// ScheduleStore provides access to the NFL schedule.
type ScheduleStore interface {
	// Upsert writes a game keyed by game ID.
	Upsert(ctx context.Context, g *domain.ScheduleGame) error

	// GameForTeam returns the game a team plays in a given week.
	// ErrNotFound on a bye week or missing schedule data.
	GameForTeam(ctx context.Context, team string, week, season int) (*domain.ScheduleGame, error)
}

// InjuryStore provides access to weekly injury reports.
type InjuryStore interface {
	Upsert(ctx context.Context, r *domain.InjuryReport) error
	Get(ctx context.Context, playerID string, week, season int) (*domain.InjuryReport, error)
}

// DepthChartStore provides access to team positional depth charts.
type DepthChartStore interface {
	Upsert(ctx context.Context, e *domain.DepthChartEntry) error

	// ListTeamPosition returns entries for one team+position+week ordered by
	// depth rank ascending.
	ListTeamPosition(ctx context.Context, team, position string, week, season int) ([]*domain.DepthChartEntry, error)
}

// BettingLineStore provides access to game betting lines.
type BettingLineStore interface {
	Upsert(ctx context.Context, l *domain.BettingLine) error
	ListByWeek(ctx context.Context, week, season int) ([]*domain.BettingLine, error)
}

// WaiverCandidateStore materializes the computed feature rows.
type WaiverCandidateStore interface {
	// Replace performs delete-then-insert for every distinct (league, week)
	// present in the batch, atomically: readers never observe a
	// half-replaced table for a key, and failure rolls back fully.
	Replace(ctx context.Context, candidates []*domain.WaiverCandidate) error

	// ListLeagueWeek returns the stored rows for one league-week.
	ListLeagueWeek(ctx context.Context, leagueID string, week int) ([]*domain.WaiverCandidate, error)
}

// Stores bundles every repository for wiring convenience. Components accept
// only the interfaces they need; this struct exists for mains and tests.
type Stores struct {
	Players     PlayerStore
	Usage       UsageStore
	Projections ProjectionStore
	Rosters     RosterStore
	Schedule    ScheduleStore
	Injuries    InjuryStore
	DepthCharts DepthChartStore
	Betting     BettingLineStore
	Waivers     WaiverCandidateStore
}
