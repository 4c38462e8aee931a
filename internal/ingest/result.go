package ingest

import "fmt"

// Result tracks counts and per-record errors from one ingestion run. A bad
// record is recorded and skipped; it never aborts the batch.
type Result struct {
	PlayersUpserted     int
	UsageUpserted       int
	ProjectionsUpserted int
	RostersReplaced     int
	SnapshotsUpserted   int
	GamesUpserted       int
	InjuriesUpserted    int
	DepthUpserted       int
	LinesUpserted       int
	Skipped             int
	Errors              []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.PlayersUpserted += other.PlayersUpserted
	r.UsageUpserted += other.UsageUpserted
	r.ProjectionsUpserted += other.ProjectionsUpserted
	r.RostersReplaced += other.RostersReplaced
	r.SnapshotsUpserted += other.SnapshotsUpserted
	r.GamesUpserted += other.GamesUpserted
	r.InjuriesUpserted += other.InjuriesUpserted
	r.DepthUpserted += other.DepthUpserted
	r.LinesUpserted += other.LinesUpserted
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted per-record error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"players=%d usage=%d projections=%d rosters=%d snapshots=%d games=%d injuries=%d depth=%d lines=%d skipped=%d errors=%d",
		r.PlayersUpserted, r.UsageUpserted, r.ProjectionsUpserted,
		r.RostersReplaced, r.SnapshotsUpserted, r.GamesUpserted,
		r.InjuriesUpserted, r.DepthUpserted, r.LinesUpserted,
		r.Skipped, len(r.Errors),
	)
}
