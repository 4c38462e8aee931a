package domain

import "time"

// UsageRecord is one week of usage data for a player. Share fields are on a
// 0–1 scale. Nil means the source did not provide the value — ingestion never
// fabricates fields, with the single documented exception of the estimated
// route percentage for pass-catchers.
type UsageRecord struct {
	PlayerID       string // canonical player ID
	Week           int
	Season         int
	SnapPct        *float64
	RoutePct       *float64
	TargetShare    *float64
	CarryShare     *float64
	RZTouches      *int
	EZTargets      *int
	Targets        *int
	Carries        *int
	Receptions     *int
	ReceivingYards *float64
	RushingYards   *float64
	Touchdowns     *int
	UpdatedAt      time.Time
}

// ProjectionRecord is one source's weekly point projection for a player.
// Multiple sources may coexist per (player, week, season).
type ProjectionRecord struct {
	PlayerID        string
	Week            int
	Season          int
	Source          string
	ScoringFormat   string
	ProjectedPoints *float64
	Floor           *float64
	Ceiling         *float64
	Mean            *float64
	Stdev           *float64
	UpdatedAt       time.Time
}

// Points returns the usable point estimate: projected points, falling back
// to the distribution mean.
func (p *ProjectionRecord) Points() *float64 {
	if p.ProjectedPoints != nil {
		return p.ProjectedPoints
	}
	return p.Mean
}
