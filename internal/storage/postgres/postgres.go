// Package postgres implements the storage interfaces over a pgx connection
// pool. Reads go through the prepared statements registered in internal/db;
// writes use inline upserts. Roster replacement and waiver candidate
// replacement run inside explicit transactions.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// NewStores returns the full Postgres-backed store bundle.
func NewStores(pool *db.Pool) *storage.Stores {
	return &storage.Stores{
		Players:     &PlayerStore{pool: pool},
		Usage:       &UsageStore{pool: pool},
		Projections: &ProjectionStore{pool: pool},
		Rosters:     &RosterStore{pool: pool},
		Schedule:    &ScheduleStore{pool: pool},
		Injuries:    &InjuryStore{pool: pool},
		DepthCharts: &DepthChartStore{pool: pool},
		Betting:     &BettingLineStore{pool: pool},
		Waivers:     &WaiverCandidateStore{pool: pool},
	}
}

const uniqueViolation = "23505"

// mapErr translates pgx errors onto the storage sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrDuplicateKey
	}
	return err
}
