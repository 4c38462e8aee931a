package waiver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
	"github.com/gridironlabs/waiverwire/internal/storage/memory"
)

const (
	testLeague = "league-1"
	testSeason = 2025
	testWeek   = 5
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// fixture seeds a two-team league. Players p1/p2 are rostered; anything else
// added with usage for the target week becomes a candidate.
type fixture struct {
	stores  *storage.Stores
	builder *Builder
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := memory.NewStores()
	f := &fixture{
		stores:  stores,
		builder: NewBuilder(stores, testLogger()),
		ctx:     context.Background(),
	}

	f.addPlayer(t, "p1", "QB", "BUF")
	f.addPlayer(t, "p2", "RB", "SF")
	require.NoError(t, stores.Rosters.ReplaceActive(f.ctx, domain.PlatformSleeper, testLeague, []*domain.RosterEntry{
		{PlayerID: "p1", UserID: "team-a", Slot: "QB", IsActive: true},
		{PlayerID: "p2", UserID: "team-b", Slot: "RB", IsActive: true},
	}))
	return f
}

func (f *fixture) addPlayer(t *testing.T, id, position, team string) {
	t.Helper()
	require.NoError(t, f.stores.Players.Insert(f.ctx, &domain.Player{
		CanonicalID: id, Name: id, Position: position, Team: team,
		IsStarter: true, Active: true,
	}))
}

func (f *fixture) addUsage(t *testing.T, u *domain.UsageRecord) {
	t.Helper()
	u.Season = testSeason
	require.NoError(t, f.stores.Usage.Upsert(f.ctx, u))
}

func (f *fixture) build(t *testing.T) []*domain.WaiverCandidate {
	t.Helper()
	out, err := f.builder.BuildCandidates(f.ctx, BuildRequest{
		LeagueID: testLeague, Week: testWeek, Season: testSeason,
	})
	require.NoError(t, err)
	return out
}

func candidateByID(t *testing.T, candidates []*domain.WaiverCandidate, id string) *domain.WaiverCandidate {
	t.Helper()
	for _, c := range candidates {
		if c.PlayerID == id {
			return c
		}
	}
	t.Fatalf("candidate %s not found", id)
	return nil
}

func TestBuildExcludesRosteredPlayers(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")
	f.addPlayer(t, "p4", "TE", "DAL")

	// All four players have usage this week; only the two unrostered ones
	// become candidates.
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: id, Week: testWeek, SnapPct: floatPtr(0.6)})
	}

	candidates := f.build(t)
	require.Len(t, candidates, 2)
	ids := map[string]bool{}
	for _, c := range candidates {
		ids[c.PlayerID] = true
		assert.False(t, c.Rostered)
		assert.Equal(t, testLeague, c.LeagueID)
		assert.Equal(t, testWeek, c.Week)
	}
	assert.True(t, ids["p3"])
	assert.True(t, ids["p4"])
}

func TestBuildSkipsSoloLeague(t *testing.T) {
	stores := memory.NewStores()
	ctx := context.Background()
	require.NoError(t, stores.Players.Insert(ctx, &domain.Player{
		CanonicalID: "p1", Name: "p1", Position: "QB", Team: "BUF", IsStarter: true, Active: true,
	}))
	require.NoError(t, stores.Rosters.ReplaceActive(ctx, domain.PlatformSleeper, testLeague, []*domain.RosterEntry{
		{PlayerID: "p1", UserID: "only-team", IsActive: true},
	}))
	require.NoError(t, stores.Usage.Upsert(ctx, &domain.UsageRecord{
		PlayerID: "p2", Week: testWeek, Season: testSeason, SnapPct: floatPtr(0.5),
	}))

	b := NewBuilder(stores, testLogger())
	candidates, err := b.BuildCandidates(ctx, BuildRequest{LeagueID: testLeague, Week: testWeek, Season: testSeason})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestBuildContainsPerPlayerFailures(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")

	// p3 is healthy; "ghost" has usage but no player row, so its feature
	// computation fails and only it is skipped.
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, SnapPct: floatPtr(0.6)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "ghost", Week: testWeek, SnapPct: floatPtr(0.4)})

	candidates := f.build(t)
	require.Len(t, candidates, 1)
	assert.Equal(t, "p3", candidates[0].PlayerID)
}

func TestSnapDeltaRequiresConsecutiveWeeks(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")
	f.addPlayer(t, "p4", "WR", "DAL")

	// p3 has consecutive weeks; p4 has a gap (week 3 but not 4).
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek - 1, SnapPct: floatPtr(0.50), RoutePct: floatPtr(0.40)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, SnapPct: floatPtr(0.72), RoutePct: floatPtr(0.61)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p4", Week: testWeek - 2, SnapPct: floatPtr(0.10)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p4", Week: testWeek, SnapPct: floatPtr(0.80)})

	candidates := f.build(t)

	p3 := candidateByID(t, candidates, "p3")
	require.NotNil(t, p3.SnapDelta)
	require.NotNil(t, p3.RouteDelta)
	assert.InDelta(t, 0.22, *p3.SnapDelta, 1e-9)
	assert.InDelta(t, 0.21, *p3.RouteDelta, 1e-9)

	// Never extrapolated across the gap.
	p4 := candidateByID(t, candidates, "p4")
	assert.Nil(t, p4.SnapDelta)
	assert.Nil(t, p4.RouteDelta)
}

func TestTPRRWindow(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")

	// Weeks 3..5: 4+6+8 targets over (0.5+0.6+0.7) * 35 estimated routes.
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: 3, RoutePct: floatPtr(0.5), Targets: intPtr(4)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: 4, RoutePct: floatPtr(0.6), Targets: intPtr(6)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: 5, RoutePct: floatPtr(0.7), Targets: intPtr(8)})

	candidates := f.build(t)
	p3 := candidateByID(t, candidates, "p3")
	require.NotNil(t, p3.TPRR)
	assert.InDelta(t, 18.0/(1.8*35.0), *p3.TPRR, 1e-9)
}

func TestTPRRNilWithoutRoutes(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")

	// Usage exists but carries no route data: estimated routes are zero and
	// TPRR must be nil, not zero or a division error.
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, Targets: intPtr(5)})

	candidates := f.build(t)
	p3 := candidateByID(t, candidates, "p3")
	assert.Nil(t, p3.TPRR)
}

func TestTrailingTouchesNilOnZeroSum(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "RB", "MIA")
	f.addPlayer(t, "p4", "RB", "DAL")

	// p3 scored red-zone touches in the two weeks before the target week.
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek - 2, RZTouches: intPtr(2), EZTargets: intPtr(1)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek - 1, RZTouches: intPtr(3), EZTargets: intPtr(0)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, RZTouches: intPtr(9), SnapPct: floatPtr(0.5)})
	// p4 has rows with explicit zeros: the zero sum still reads as nil.
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p4", Week: testWeek - 1, RZTouches: intPtr(0), EZTargets: intPtr(0)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p4", Week: testWeek, SnapPct: floatPtr(0.5)})

	candidates := f.build(t)

	p3 := candidateByID(t, candidates, "p3")
	require.NotNil(t, p3.RZLast2)
	require.NotNil(t, p3.EZLast2)
	// The target week itself is excluded from the window.
	assert.Equal(t, 5, *p3.RZLast2)
	assert.Equal(t, 1, *p3.EZLast2)

	p4 := candidateByID(t, candidates, "p4")
	assert.Nil(t, p4.RZLast2)
	assert.Nil(t, p4.EZLast2)
}

func TestProjNextFallsBackToCurrentWeek(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")
	f.addPlayer(t, "p4", "WR", "DAL")
	f.addPlayer(t, "p5", "WR", "NYJ")
	for _, id := range []string{"p3", "p4", "p5"} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: id, Week: testWeek, SnapPct: floatPtr(0.5)})
	}

	// p3 has a next-week projection, p4 only a current-week one, p5 neither.
	require.NoError(t, f.stores.Projections.Upsert(f.ctx, &domain.ProjectionRecord{
		PlayerID: "p3", Week: testWeek + 1, Season: testSeason, Source: "composite",
		ProjectedPoints: floatPtr(14.2),
	}))
	require.NoError(t, f.stores.Projections.Upsert(f.ctx, &domain.ProjectionRecord{
		PlayerID: "p4", Week: testWeek, Season: testSeason, Source: "composite",
		Mean: floatPtr(9.1),
	}))

	candidates := f.build(t)
	p3 := candidateByID(t, candidates, "p3")
	p4 := candidateByID(t, candidates, "p4")
	p5 := candidateByID(t, candidates, "p5")
	require.NotNil(t, p3.ProjNext)
	require.NotNil(t, p4.ProjNext)
	assert.Equal(t, 14.2, *p3.ProjNext)
	assert.Equal(t, 9.1, *p4.ProjNext)
	assert.Nil(t, p5.ProjNext)
}

func TestTrendSlopePerPosition(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "wr1", "WR", "MIA")
	f.addPlayer(t, "rb1", "RB", "DAL")
	f.addPlayer(t, "qb1", "QB", "NYJ")

	// Weeks 2..4 are the trend window for target week 5.
	for w, targets := range map[int]int{2: 2, 3: 5, 4: 8} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: "wr1", Week: w, Targets: intPtr(targets)})
	}
	for w, carries := range map[int]int{2: 10, 3: 12, 4: 14} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: "rb1", Week: w, Carries: intPtr(carries), Targets: intPtr(1)})
	}
	for w, snap := range map[int]float64{3: 0.50, 4: 0.60} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: "qb1", Week: w, SnapPct: floatPtr(snap)})
	}
	for _, id := range []string{"wr1", "rb1", "qb1"} {
		f.addUsage(t, &domain.UsageRecord{PlayerID: id, Week: testWeek, SnapPct: floatPtr(0.7)})
	}

	candidates := f.build(t)

	wr := candidateByID(t, candidates, "wr1")
	require.NotNil(t, wr.TrendSlope)
	assert.InDelta(t, 3.0, *wr.TrendSlope, 1e-9)

	rb := candidateByID(t, candidates, "rb1")
	require.NotNil(t, rb.TrendSlope)
	assert.InDelta(t, 2.0, *rb.TrendSlope, 1e-9)

	qb := candidateByID(t, candidates, "qb1")
	require.NotNil(t, qb.TrendSlope)
	assert.InDelta(t, 0.10, *qb.TrendSlope, 1e-9)
}

func TestTrendSlopeRequiresTwoPoints(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek - 1, Targets: intPtr(7)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, SnapPct: floatPtr(0.5)})

	candidates := f.build(t)
	assert.Nil(t, candidateByID(t, candidates, "p3").TrendSlope)
}

func TestOppNextFromSchedule(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p3", "WR", "MIA")
	f.addPlayer(t, "p4", "WR", "DAL") // no week-6 game: bye
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p3", Week: testWeek, SnapPct: floatPtr(0.5)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "p4", Week: testWeek, SnapPct: floatPtr(0.5)})

	require.NoError(t, f.stores.Schedule.Upsert(f.ctx, &domain.ScheduleGame{
		GameID: "2025_06_MIA_NE", HomeTeam: "NE", AwayTeam: "MIA", Week: testWeek + 1, Season: testSeason,
	}))

	candidates := f.build(t)
	p3 := candidateByID(t, candidates, "p3")
	require.NotNil(t, p3.OppNext)
	assert.Equal(t, "NE", *p3.OppNext)
	assert.Nil(t, candidateByID(t, candidates, "p4").OppNext)
}

func TestRosterFitScoring(t *testing.T) {
	// League rosters hold 1 QB and 1 RB across two teams; WR target is 5
	// with 0 rostered, QB target is 2 with 1 rostered.
	f := newFixture(t)
	f.addPlayer(t, "wr1", "WR", "MIA")
	f.addPlayer(t, "qb2", "QB", "NYJ")
	f.addUsage(t, &domain.UsageRecord{PlayerID: "wr1", Week: testWeek, SnapPct: floatPtr(0.5)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "qb2", Week: testWeek, SnapPct: floatPtr(0.5)})

	candidates := f.build(t)

	wr := candidateByID(t, candidates, "wr1")
	require.NotNil(t, wr.RosterFit)
	assert.InDelta(t, 1.0, *wr.RosterFit, 1e-9)

	qb := candidateByID(t, candidates, "qb2")
	require.NotNil(t, qb.RosterFit)
	assert.InDelta(t, 0.5, *qb.RosterFit, 1e-9)
}

func TestRosterFitSaturates(t *testing.T) {
	f := newFixture(t)
	// Fill the league to the QB target of 2.
	f.addPlayer(t, "qb2", "QB", "NYJ")
	require.NoError(t, f.stores.Rosters.ReplaceActive(f.ctx, domain.PlatformSleeper, testLeague, []*domain.RosterEntry{
		{PlayerID: "p1", UserID: "team-a", IsActive: true},
		{PlayerID: "qb2", UserID: "team-b", IsActive: true},
	}))

	f.addPlayer(t, "qb3", "QB", "CHI")
	f.addUsage(t, &domain.UsageRecord{PlayerID: "qb3", Week: testWeek, SnapPct: floatPtr(0.9)})

	candidates := f.build(t)
	qb := candidateByID(t, candidates, "qb3")
	require.NotNil(t, qb.RosterFit)
	assert.InDelta(t, rosterFitSaturated, *qb.RosterFit, 1e-9)
}

func TestMarketHeat(t *testing.T) {
	// Neither team has a WR, so every team is below the WR depth threshold.
	// Team A holds a QB, so half the league is below the QB threshold.
	f := newFixture(t)
	f.addPlayer(t, "wr1", "WR", "MIA")
	f.addPlayer(t, "qb2", "QB", "NYJ")
	f.addUsage(t, &domain.UsageRecord{PlayerID: "wr1", Week: testWeek, SnapPct: floatPtr(0.5)})
	f.addUsage(t, &domain.UsageRecord{PlayerID: "qb2", Week: testWeek, SnapPct: floatPtr(0.5)})

	candidates := f.build(t)

	wr := candidateByID(t, candidates, "wr1")
	require.NotNil(t, wr.MarketHeat)
	assert.InDelta(t, 1.0, *wr.MarketHeat, 1e-9)

	qb := candidateByID(t, candidates, "qb2")
	require.NotNil(t, qb.MarketHeat)
	assert.InDelta(t, 0.5, *qb.MarketHeat, 1e-9)
}

func TestScarcityBands(t *testing.T) {
	low := scarcity("QB", map[string]int{"QB": 5})
	require.NotNil(t, low)
	assert.InDelta(t, 1.0, *low, 1e-9)

	high := scarcity("QB", map[string]int{"QB": 100})
	require.NotNil(t, high)
	assert.InDelta(t, 0.1, *high, 1e-9)

	// Midpoint of the QB band (20..35) interpolates linearly.
	mid := scarcity("QB", map[string]int{"QB": 27})
	require.NotNil(t, mid)
	assert.InDelta(t, 1.0-(7.0/15.0)*0.9, *mid, 1e-9)

	assert.Nil(t, scarcity("OL", map[string]int{}))
}

func TestBuildNoUsageNoCandidates(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.build(t))
}
