// Package waiver computes and materializes per-league waiver candidate
// feature rows: week-over-week usage deltas, trailing-window rates, trend
// slopes, and league-context scores for every unrostered player with usage
// data in the target week.
package waiver

// Route estimation heuristics. Neither value has an empirical basis; they
// set the scale of TPRR and downstream alert thresholds depend on that
// scale, so change them deliberately, not silently.
var (
	// RoutesPerGameEstimate is the assumed team route attempts per game used
	// as the TPRR denominator. Its counterpart on the ingestion side is
	// ingest.RouteParticipationEstimate.
	RoutesPerGameEstimate = 35.0
)

// rosterTargets is the ideal roster composition roster_fit scores against.
var rosterTargets = map[string]int{
	"QB": 2, "RB": 4, "WR": 5, "TE": 2, "K": 1, "DEF": 1,
}

// rosterFitSaturated is returned when a position is already at or above its
// target count.
const rosterFitSaturated = 0.1

// depthThresholds is the minimum positional depth a team needs before it
// stops counting toward market_heat.
var depthThresholds = map[string]int{
	"QB": 1, "RB": 2, "WR": 3, "TE": 1, "K": 1, "DEF": 1,
}

// scarcityBand bounds the league-wide unrostered count for one position:
// at or below Low availability the position scores 1.0, at or above High it
// scores 0.1, linear in between.
type scarcityBand struct {
	Low  int
	High int
}

var scarcityBands = map[string]scarcityBand{
	"QB":  {Low: 20, High: 35},
	"RB":  {Low: 40, High: 80},
	"WR":  {Low: 60, High: 120},
	"TE":  {Low: 15, High: 30},
	"K":   {Low: 10, High: 20},
	"DEF": {Low: 10, High: 20},
}

const (
	scarcityMin = 0.1
	scarcityMax = 1.0
)
