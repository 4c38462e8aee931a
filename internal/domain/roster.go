package domain

import "time"

// RosterEntry records that a player currently sits on a roster. A full-roster
// sync destructively replaces all active rows for a platform+league in one
// transaction — the table is a current snapshot, not a history.
type RosterEntry struct {
	PlayerID  string // canonical player ID
	Platform  Platform
	LeagueID  string
	UserID    string
	Slot      string
	IsActive  bool
	UpdatedAt time.Time
}

// RosterSnapshot is the append-only ledger of historical roster placement,
// keyed by (platform, league, team, week, player). Supports week-over-week
// roster-change queries; upserted idempotently, updating slot on conflict.
type RosterSnapshot struct {
	Platform Platform
	LeagueID string
	TeamID   string
	PlayerID string
	Week     int
	Season   int
	Slot     string
	SyncedAt time.Time
}
