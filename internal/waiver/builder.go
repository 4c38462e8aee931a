package waiver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
)

// Builder computes waiver candidate feature rows for one league-week.
// Construct with NewBuilder; safe to reuse across calls but not across
// goroutines.
type Builder struct {
	players     storage.PlayerStore
	usage       storage.UsageStore
	projections storage.ProjectionStore
	rosters     storage.RosterStore
	schedule    storage.ScheduleStore
	logger      *slog.Logger
}

// BuildRequest names one build target. UserID scopes roster_fit to a single
// team's needs; empty means score against the whole league.
type BuildRequest struct {
	LeagueID string
	Week     int
	Season   int
	UserID   string
}

// leagueContext holds the once-per-call precomputed league state shared by
// every candidate: the rostered-player set and the positional counts behind
// roster_fit, market_heat, and scarcity.
type leagueContext struct {
	rostered        map[string]bool
	fitCounts       map[string]int            // positions counted in the roster_fit scope
	teamCounts      map[string]map[string]int // userID -> position -> count
	availableCounts map[string]int            // unrostered active players per position
}

// NewBuilder wires a feature builder over the given stores.
func NewBuilder(stores *storage.Stores, logger *slog.Logger) *Builder {
	return &Builder{
		players:     stores.Players,
		usage:       stores.Usage,
		projections: stores.Projections,
		rosters:     stores.Rosters,
		schedule:    stores.Schedule,
		logger:      logger,
	}
}

// BuildCandidates produces one feature row per player who has usage data for
// the target week and is not on any active roster in the league. A league
// with at most one active team yields no candidates. A failure computing one
// player's row is logged and skips that player only.
func (b *Builder) BuildCandidates(ctx context.Context, req BuildRequest) ([]*domain.WaiverCandidate, error) {
	entries, err := b.rosters.ActiveEntries(ctx, req.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("load league rosters: %w", err)
	}

	teams := make(map[string]bool)
	for _, e := range entries {
		teams[e.UserID] = true
	}
	if len(teams) <= 1 {
		b.logger.Info("skipping league with at most one active team",
			"league_id", req.LeagueID, "teams", len(teams))
		return nil, nil
	}

	lc, err := b.buildLeagueContext(ctx, req, entries)
	if err != nil {
		return nil, err
	}

	usageRows, err := b.usage.ListByWeek(ctx, req.Week, req.Season)
	if err != nil {
		return nil, fmt.Errorf("load week %d usage: %w", req.Week, err)
	}

	var candidates []*domain.WaiverCandidate
	for _, row := range usageRows {
		if lc.rostered[row.PlayerID] {
			continue
		}
		c, err := b.buildOne(ctx, req, lc, row.PlayerID)
		if err != nil {
			b.logger.Warn("skipping candidate",
				"league_id", req.LeagueID, "week", req.Week, "player_id", row.PlayerID, "error", err)
			continue
		}
		if c != nil {
			candidates = append(candidates, c)
		}
	}

	b.logger.Info("built waiver candidates",
		"league_id", req.LeagueID, "week", req.Week, "count", len(candidates))
	return candidates, nil
}

// buildLeagueContext computes the shared league state once per call.
func (b *Builder) buildLeagueContext(ctx context.Context, req BuildRequest, entries []*domain.RosterEntry) (*leagueContext, error) {
	lc := &leagueContext{
		rostered:        make(map[string]bool),
		fitCounts:       make(map[string]int),
		teamCounts:      make(map[string]map[string]int),
		availableCounts: make(map[string]int),
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		lc.rostered[e.PlayerID] = true
		ids = append(ids, e.PlayerID)
	}

	rosteredPlayers, err := b.players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load rostered players: %w", err)
	}
	positions := make(map[string]string, len(rosteredPlayers))
	for _, p := range rosteredPlayers {
		positions[p.CanonicalID] = p.Position
	}

	for _, e := range entries {
		pos, ok := positions[e.PlayerID]
		if !ok {
			continue
		}
		if req.UserID == "" || e.UserID == req.UserID {
			lc.fitCounts[pos]++
		}
		if lc.teamCounts[e.UserID] == nil {
			lc.teamCounts[e.UserID] = make(map[string]int)
		}
		lc.teamCounts[e.UserID][pos]++
	}

	all, err := b.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player pool: %w", err)
	}
	for _, p := range all {
		if p.Active && p.IsStarter && !lc.rostered[p.CanonicalID] {
			lc.availableCounts[p.Position]++
		}
	}
	return lc, nil
}

// buildOne computes the full feature vector for a single candidate. Returns
// (nil, nil) when the player row is unusable rather than broken.
func (b *Builder) buildOne(ctx context.Context, req BuildRequest, lc *leagueContext, playerID string) (*domain.WaiverCandidate, error) {
	player, err := b.players.GetByCanonicalID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if _, known := rosterTargets[player.Position]; !known {
		return nil, nil
	}

	window, err := b.usageWindow(ctx, playerID, req.Week, req.Season)
	if err != nil {
		return nil, fmt.Errorf("load usage window: %w", err)
	}

	c := &domain.WaiverCandidate{
		LeagueID: req.LeagueID,
		Week:     req.Week,
		PlayerID: playerID,
		Position: player.Position,
		Rostered: false,
	}

	c.SnapDelta, c.RouteDelta = weekDeltas(window, req.Week)
	c.TPRR = targetsPerRouteRun(window, req.Week)
	c.RZLast2, c.EZLast2 = trailingTouches(window, req.Week)
	c.TrendSlope = trendSlope(window, req.Week, player.Position)
	c.ProjNext = b.nextProjection(ctx, playerID, req.Week, req.Season)
	c.OppNext = b.nextOpponent(ctx, player.Team, req.Week, req.Season)
	c.RosterFit = rosterFit(player.Position, lc.fitCounts)
	c.MarketHeat = marketHeat(player.Position, lc.teamCounts)
	c.Scarcity = scarcity(player.Position, lc.availableCounts)

	return c, nil
}

// usageWindow returns usage rows for weeks [week-3, week] keyed by week.
func (b *Builder) usageWindow(ctx context.Context, playerID string, week, season int) (map[int]*domain.UsageRecord, error) {
	from := week - 3
	if from < 1 {
		from = 1
	}
	rows, err := b.usage.GetRange(ctx, playerID, from, week, season)
	if err != nil {
		return nil, err
	}
	window := make(map[int]*domain.UsageRecord, len(rows))
	for _, r := range rows {
		window[r.Week] = r
	}
	return window, nil
}

// weekDeltas computes snap and route week-over-week deltas. Both require the
// target week and the immediately preceding week to be present; a gap means
// nil, never an extrapolation.
func weekDeltas(window map[int]*domain.UsageRecord, week int) (snapDelta, routeDelta *float64) {
	cur, curOK := window[week]
	prev, prevOK := window[week-1]
	if !curOK || !prevOK {
		return nil, nil
	}
	if cur.SnapPct != nil && prev.SnapPct != nil {
		d := *cur.SnapPct - *prev.SnapPct
		snapDelta = &d
	}
	if cur.RoutePct != nil && prev.RoutePct != nil {
		d := *cur.RoutePct - *prev.RoutePct
		routeDelta = &d
	}
	return snapDelta, routeDelta
}

// targetsPerRouteRun computes TPRR over the trailing 3-week window (target
// week and the two prior): total targets divided by estimated routes run,
// where each week's routes are route_pct x RoutesPerGameEstimate. Nil when
// the window is empty or the estimated route count is zero.
func targetsPerRouteRun(window map[int]*domain.UsageRecord, week int) *float64 {
	var targets int
	var routes float64
	seen := false
	for w := week - 2; w <= week; w++ {
		row, ok := window[w]
		if !ok {
			continue
		}
		seen = true
		if row.Targets != nil {
			targets += *row.Targets
		}
		if row.RoutePct != nil {
			routes += *row.RoutePct * RoutesPerGameEstimate
		}
	}
	if !seen || routes == 0 {
		return nil
	}
	tprr := float64(targets) / routes
	return &tprr
}

// trailingTouches sums red-zone touches and end-zone targets over the two
// weeks strictly before the target week. A zero sum returns nil: the stored
// row distinguishes "no data" from a computed value, and a zero sum is
// treated as no data.
func trailingTouches(window map[int]*domain.UsageRecord, week int) (rzLast2, ezLast2 *int) {
	var rz, ez int
	for w := week - 2; w <= week-1; w++ {
		row, ok := window[w]
		if !ok {
			continue
		}
		if row.RZTouches != nil {
			rz += *row.RZTouches
		}
		if row.EZTargets != nil {
			ez += *row.EZTargets
		}
	}
	if rz > 0 {
		rzLast2 = &rz
	}
	if ez > 0 {
		ezLast2 = &ez
	}
	return rzLast2, ezLast2
}

// trendSlope fits an OLS slope over a position-appropriate usage metric for
// the three weeks strictly before the target week: targets for WR/TE,
// carries plus targets for RB, snap percentage otherwise. Nil with fewer
// than two usable points.
func trendSlope(window map[int]*domain.UsageRecord, week int, position string) *float64 {
	var points []trendPoint
	for w := week - 3; w <= week-1; w++ {
		row, ok := window[w]
		if !ok {
			continue
		}
		switch position {
		case "WR", "TE":
			if row.Targets != nil {
				points = append(points, trendPoint{Week: w, Value: float64(*row.Targets)})
			}
		case "RB":
			if row.Carries == nil && row.Targets == nil {
				continue
			}
			var touches int
			if row.Carries != nil {
				touches += *row.Carries
			}
			if row.Targets != nil {
				touches += *row.Targets
			}
			points = append(points, trendPoint{Week: w, Value: float64(touches)})
		default:
			if row.SnapPct != nil {
				points = append(points, trendPoint{Week: w, Value: *row.SnapPct})
			}
		}
	}
	return olsSlope(points)
}

// nextProjection returns next week's point projection, falling back to the
// current week. Lookup failures degrade to nil; projections are optional.
func (b *Builder) nextProjection(ctx context.Context, playerID string, week, season int) *float64 {
	for _, w := range []int{week + 1, week} {
		rows, err := b.projections.Get(ctx, playerID, w, season)
		if err != nil {
			b.logger.Warn("projection lookup failed", "player_id", playerID, "week", w, "error", err)
			return nil
		}
		for _, row := range rows {
			if pts := row.Points(); pts != nil {
				return pts
			}
		}
	}
	return nil
}

// nextOpponent returns next week's opponent code for the player's team, nil
// on a bye week, missing schedule data, or an unknown team.
func (b *Builder) nextOpponent(ctx context.Context, team string, week, season int) *string {
	if team == "" || team == "UNKNOWN" {
		return nil
	}
	game, err := b.schedule.GameForTeam(ctx, team, week+1, season)
	if err != nil {
		return nil
	}
	if opp := game.Opponent(team); opp != "" {
		return &opp
	}
	return nil
}

// rosterFit scores how much the fit scope (one team or the league) needs the
// position: (target - current) / target clipped to [0, 1], saturating at a
// low constant once the position is filled.
func rosterFit(position string, fitCounts map[string]int) *float64 {
	target, ok := rosterTargets[position]
	if !ok || target <= 0 {
		return nil
	}
	current := fitCounts[position]
	if current >= target {
		v := rosterFitSaturated
		return &v
	}
	fit := float64(target-current) / float64(target)
	if fit > 1 {
		fit = 1
	}
	return &fit
}

// marketHeat is the fraction of league teams still below the positional
// depth threshold.
func marketHeat(position string, teamCounts map[string]map[string]int) *float64 {
	threshold, ok := depthThresholds[position]
	if !ok || len(teamCounts) == 0 {
		return nil
	}
	below := 0
	for _, counts := range teamCounts {
		if counts[position] < threshold {
			below++
		}
	}
	heat := float64(below) / float64(len(teamCounts))
	return &heat
}

// scarcity maps the league-wide unrostered count at a position onto [0.1, 1]:
// 1.0 at or below the low-availability bound, 0.1 at or above the high bound,
// linear in between.
func scarcity(position string, availableCounts map[string]int) *float64 {
	band, ok := scarcityBands[position]
	if !ok {
		return nil
	}
	available := availableCounts[position]

	var score float64
	switch {
	case available <= band.Low:
		score = scarcityMax
	case available >= band.High:
		score = scarcityMin
	default:
		frac := float64(available-band.Low) / float64(band.High-band.Low)
		score = scarcityMax - frac*(scarcityMax-scarcityMin)
	}
	return &score
}
