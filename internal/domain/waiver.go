package domain

import "time"

// WaiverCandidate is the materialized feature row for one non-rostered
// player in one league-week. Rows are replaced wholesale per (league, week)
// on each refresh — never incrementally patched.
//
// Pointer fields distinguish "no data" (nil) from a computed value. Callers
// ranking candidates treat nil and zero identically, but the distinction is
// preserved in storage.
type WaiverCandidate struct {
	LeagueID string `json:"league_id"`
	Week     int    `json:"week"`
	PlayerID string `json:"player_id"`
	Position string `json:"position"`
	Rostered bool   `json:"rostered"` // always false by construction

	// Week-over-week deltas (0–1 scale); nil without two consecutive weeks.
	SnapDelta  *float64 `json:"snap_delta"`
	RouteDelta *float64 `json:"route_delta"`

	// Trailing-window metrics.
	TPRR    *float64 `json:"tprr"`     // targets per estimated route run, 3-week window
	RZLast2 *int     `json:"rz_last2"` // red-zone touches, two weeks before the target week
	EZLast2 *int     `json:"ez_last2"` // end-zone targets, two weeks before the target week

	// Schedule and projections.
	OppNext  *string  `json:"opp_next"`
	ProjNext *float64 `json:"proj_next"`

	// 3-week OLS slope of a position-appropriate usage metric.
	TrendSlope *float64 `json:"trend_slope"`

	// League context, all 0–1.
	RosterFit  *float64 `json:"roster_fit"`
	MarketHeat *float64 `json:"market_heat"`
	Scarcity   *float64 `json:"scarcity"`

	CreatedAt time.Time `json:"created_at"`
}

// LeagueWeek is the replacement key for the waiver candidate table.
type LeagueWeek struct {
	LeagueID string
	Week     int
}

// Key returns the candidate's replacement key.
func (c *WaiverCandidate) Key() LeagueWeek {
	return LeagueWeek{LeagueID: c.LeagueID, Week: c.Week}
}
