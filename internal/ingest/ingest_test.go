package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
	"github.com/gridironlabs/waiverwire/internal/storage"
	"github.com/gridironlabs/waiverwire/internal/storage/memory"
)

func newTestIngestor(t *testing.T) (*Ingestor, *storage.Stores) {
	t.Helper()
	stores := memory.NewStores()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(stores, logger), stores
}

func TestSyncSleeperPlayersFiltersAndMaps(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.SyncSleeperPlayers(ctx, map[string]Record{
		"4881": {"full_name": "Josh Allen", "position": "QB", "team": "BUF", "active": true},
		"BUF":  {"first_name": "Buffalo", "last_name": "Bills", "position": "DEF", "team": "BUF", "active": true},
		"9999": {"full_name": "Some Lineman", "position": "OL", "team": "BUF", "active": true},
	})

	assert.Equal(t, 2, result.PlayersUpserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	p, err := stores.Players.GetByPlatformID(ctx, domain.PlatformSleeper, "4881")
	require.NoError(t, err)
	assert.Equal(t, "QB", p.Position)

	def, err := stores.Players.GetByPlatformID(ctx, domain.PlatformSleeper, "BUF")
	require.NoError(t, err)
	assert.Equal(t, "DEF", def.Position)
	assert.Equal(t, "BUF", def.Team)
}

func TestCrossPlatformPlayerMatching(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	ig.SyncSleeperPlayers(ctx, map[string]Record{
		"4881": {"full_name": "Josh Allen", "position": "QB", "team": "BUF", "active": true},
	})
	// MFL ships the same player as "Last, First" with its own ID.
	ig.SyncMFLPlayers(ctx, []Record{
		{"id": "13604", "name": "Allen, Josh", "position": "QB", "team": "BUF"},
	})

	players, err := stores.Players.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.NotNil(t, players[0].SleeperID)
	require.NotNil(t, players[0].MFLID)
	assert.Equal(t, "4881", *players[0].SleeperID)
	assert.Equal(t, "13604", *players[0].MFLID)
}

func TestSyncSleeperPlayersRecordsDepthPosition(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	ig.SyncSleeperPlayers(ctx, map[string]Record{
		"7564": {"full_name": "Ja'Marr Chase", "position": "WR", "team": "CIN",
			"active": true, "depth_chart_position": "LWR"},
	})

	p, err := stores.Players.GetByPlatformID(ctx, domain.PlatformSleeper, "7564")
	require.NoError(t, err)
	require.NotNil(t, p.DepthChartPosition)
	assert.Equal(t, "LWR", *p.DepthChartPosition)
}

func TestLoadUsageEstimatesRoutes(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadUsage(ctx, 5, 2025, []Record{
		{"name": "Puka Nacua", "position": "WR", "team": "LAR", "snap_pct": 0.8, "targets": float64(9)},
		{"name": "Josh Allen", "position": "QB", "team": "BUF", "snap_pct": 1.0},
	})
	assert.Equal(t, 2, result.UsageUpserted)

	wrID := identity.CanonicalID("Puka Nacua", "WR", "LAR")
	u, err := stores.Usage.Get(ctx, wrID, 5, 2025)
	require.NoError(t, err)
	require.NotNil(t, u.RoutePct)
	assert.InDelta(t, 0.8*RouteParticipationEstimate, *u.RoutePct, 1e-9)
	require.NotNil(t, u.Targets)
	assert.Equal(t, 9, *u.Targets)

	// No route estimate for quarterbacks.
	qbID := identity.CanonicalID("Josh Allen", "QB", "BUF")
	u, err = stores.Usage.Get(ctx, qbID, 5, 2025)
	require.NoError(t, err)
	assert.Nil(t, u.RoutePct)
}

func TestLoadUsageKeepsProvidedRoutes(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	ig.LoadUsage(ctx, 5, 2025, []Record{
		{"name": "Puka Nacua", "position": "WR", "team": "LAR", "snap_pct": 0.8, "route_pct": 0.75},
	})

	id := identity.CanonicalID("Puka Nacua", "WR", "LAR")
	u, err := stores.Usage.Get(ctx, id, 5, 2025)
	require.NoError(t, err)
	require.NotNil(t, u.RoutePct)
	assert.Equal(t, 0.75, *u.RoutePct)
}

func TestLoadUsageSkipsUnresolvable(t *testing.T) {
	ig, _ := newTestIngestor(t)
	result := ig.LoadUsage(context.Background(), 5, 2025, []Record{
		{"snap_pct": 0.8},
		{"name": "Puka Nacua", "position": "WR", "team": "LAR", "snap_pct": 0.8},
	})
	assert.Equal(t, 1, result.UsageUpserted)
	assert.Len(t, result.Errors, 1)
}

func TestLoadProjections(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadProjections(ctx, 6, 2025, "composite", []Record{
		{"name": "Puka Nacua", "position": "WR", "team": "LAR", "projected_points": 15.3, "floor": 8.1, "ceiling": 24.0},
	})
	assert.Equal(t, 1, result.ProjectionsUpserted)

	id := identity.CanonicalID("Puka Nacua", "WR", "LAR")
	rows, err := stores.Projections.Get(ctx, id, 6, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "composite", rows[0].Source)
	require.NotNil(t, rows[0].ProjectedPoints)
	assert.Equal(t, 15.3, *rows[0].ProjectedPoints)
}

func TestSyncRostersReplacesAndSnapshots(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	ig.SyncSleeperPlayers(ctx, map[string]Record{
		"1": {"full_name": "Player One", "position": "QB", "team": "BUF", "active": true},
		"2": {"full_name": "Player Two", "position": "RB", "team": "SF", "active": true},
		"3": {"full_name": "Player Three", "position": "WR", "team": "MIA", "active": true},
	})

	result := ig.SyncRosters(ctx, domain.PlatformSleeper, "league-1", 5, 2025, []Record{
		{"user_id": "u1", "roster_id": "t1",
			"players": []any{"1", "2", "missing-id"}, "starters": []any{"1"}},
	})
	assert.Equal(t, 2, result.RostersReplaced)
	assert.Equal(t, 2, result.SnapshotsUpserted)
	assert.Len(t, result.Errors, 1, "unresolvable roster id recorded")

	ids, err := stores.Rosters.ActivePlayerIDs(ctx, "league-1")
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	// A later sync with a smaller roster leaves no stale rows.
	result = ig.SyncRosters(ctx, domain.PlatformSleeper, "league-1", 6, 2025, []Record{
		{"user_id": "u1", "roster_id": "t1", "players": []any{"3"}, "starters": []any{"3"}},
	})
	assert.Empty(t, result.Errors)

	ids, err = stores.Rosters.ActivePlayerIDs(ctx, "league-1")
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	// Both weeks' placements survive in the snapshot ledger.
	week5, err := stores.Rosters.Snapshots(ctx, domain.PlatformSleeper, "league-1", 5, 2025)
	require.NoError(t, err)
	assert.Len(t, week5, 2)
	week6, err := stores.Rosters.Snapshots(ctx, domain.PlatformSleeper, "league-1", 6, 2025)
	require.NoError(t, err)
	require.Len(t, week6, 1)
	assert.Equal(t, slotStarter, week6[0].Slot)
}

func TestLoadScheduleNormalizesTeams(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadSchedule(ctx, 2025, []Record{
		{"home_team": "Jacksonville Jaguars", "away_team": "WSH", "week": float64(5)},
		{"home_team": "NOWHERE", "away_team": "BUF", "week": float64(5)},
	})
	assert.Equal(t, 1, result.GamesUpserted)
	assert.Len(t, result.Errors, 1)

	g, err := stores.Schedule.GameForTeam(ctx, "JAC", 5, 2025)
	require.NoError(t, err)
	assert.Equal(t, "WAS", g.Opponent("JAC"))
}

func TestLoadBettingLinesDerivesImpliedTotals(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadBettingLines(ctx, 5, 2025, []Record{
		{"game_id": "2025_05_BUF_MIA", "home_team": "MIA", "away_team": "BUF",
			"total": 47.0, "spread": -3.0, "sportsbook": "book-a"},
	})
	assert.Equal(t, 1, result.LinesUpserted)

	lines, err := stores.Betting.ListByWeek(ctx, 5, 2025)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].HomeImpliedTotal)
	require.NotNil(t, lines[0].AwayImpliedTotal)
	assert.InDelta(t, 25.0, *lines[0].HomeImpliedTotal, 1e-9)
	assert.InDelta(t, 22.0, *lines[0].AwayImpliedTotal, 1e-9)
}

func TestLoadInjuries(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadInjuries(ctx, 5, 2025, []Record{
		{"name": "Puka Nacua", "position": "WR", "team": "LAR",
			"report_status": "Questionable", "practice_status": "LP"},
	})
	assert.Equal(t, 1, result.InjuriesUpserted)

	id := identity.CanonicalID("Puka Nacua", "WR", "LAR")
	r, err := stores.Injuries.Get(ctx, id, 5, 2025)
	require.NoError(t, err)
	require.NotNil(t, r.ReportStatus)
	assert.Equal(t, "Questionable", *r.ReportStatus)
}

func TestLoadDepthCharts(t *testing.T) {
	ig, stores := newTestIngestor(t)
	ctx := context.Background()

	result := ig.LoadDepthCharts(ctx, 5, 2025, []Record{
		{"name": "Back One", "position": "RB", "team": "BUF", "depth_rank": float64(1)},
		{"name": "Back Two", "position": "RB", "team": "BUF", "depth_rank": float64(2)},
	})
	assert.Equal(t, 2, result.DepthUpserted)

	entries, err := stores.DepthCharts.ListTeamPosition(ctx, "BUF", "RB", 5, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].DepthRank)
}

func TestResultAddAndSummary(t *testing.T) {
	var r Result
	r.Add(Result{PlayersUpserted: 2, Errors: []string{"a"}})
	r.Add(Result{UsageUpserted: 3, Skipped: 1})
	assert.Equal(t, 2, r.PlayersUpserted)
	assert.Equal(t, 3, r.UsageUpserted)
	assert.Len(t, r.Errors, 1)
	assert.Contains(t, r.Summary(), "players=2")
	assert.Contains(t, r.Summary(), "errors=1")
}
