// Package memory implements the storage interfaces with mutex-guarded maps.
// It backs unit tests and local runs without Postgres, and mirrors the
// transactional semantics of storage/postgres: roster replacement and waiver
// candidate replacement are all-or-nothing under the lock.
package memory

import "github.com/gridironlabs/waiverwire/internal/storage"

// NewStores returns a full in-memory store bundle.
func NewStores() *storage.Stores {
	return &storage.Stores{
		Players:     NewPlayerStore(),
		Usage:       NewUsageStore(),
		Projections: NewProjectionStore(),
		Rosters:     NewRosterStore(),
		Schedule:    NewScheduleStore(),
		Injuries:    NewInjuryStore(),
		DepthCharts: NewDepthChartStore(),
		Betting:     NewBettingLineStore(),
		Waivers:     NewWaiverCandidateStore(),
	}
}
