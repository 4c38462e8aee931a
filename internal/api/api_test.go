package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/waiverwire/internal/api"
	"github.com/gridironlabs/waiverwire/internal/cache"
	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/storage"
	"github.com/gridironlabs/waiverwire/internal/storage/memory"
	"github.com/gridironlabs/waiverwire/internal/waiver"
)

type testEnv struct {
	router http.Handler
	stores *storage.Stores
	cache  *cache.Cache
}

// newTestEnv wires the full router against in-memory stores. The db pool is
// nil, so tests stay away from /health/db.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stores := memory.NewStores()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		CORSAllowOrigins: []string{"http://localhost:3000"},
		CacheEnabled:     true,
		Season:           2025,
	}
	appCache := cache.New(true)
	refresh := waiver.NewService(stores, logger)
	return &testEnv{
		router: api.NewRouter(nil, stores, refresh, appCache, cfg, logger),
		stores: stores,
		cache:  appCache,
	}
}

func (e *testEnv) get(t *testing.T, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get(t, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Waiverwire Data API", body["name"])

	rec = env.get(t, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])

	rec = env.get(t, "/health/cache", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestOpenAPIDoc(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/docs/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "3.0.0", body["openapi"])
	paths, ok := body["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/waivers/{leagueID}")
}

func seedCandidates(t *testing.T, stores *storage.Stores, leagueID string, week int, playerIDs ...string) {
	t.Helper()
	candidates := make([]*domain.WaiverCandidate, 0, len(playerIDs))
	for _, id := range playerIDs {
		candidates = append(candidates, &domain.WaiverCandidate{
			LeagueID: leagueID,
			Week:     week,
			PlayerID: id,
			Position: "WR",
		})
	}
	require.NoError(t, stores.Waivers.Replace(context.Background(), candidates))
}

func TestGetWaiversReturnsStoredRows(t *testing.T) {
	env := newTestEnv(t)
	seedCandidates(t, env.stores, "league-1", 5, "p3", "p4")

	rec := env.get(t, "/api/v1/waivers/league-1?week=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	body := decodeBody(t, rec)
	assert.Equal(t, "league-1", body["league_id"])
	assert.Equal(t, float64(5), body["week"])
	assert.Equal(t, float64(2), body["count"])
}

func TestGetWaiversCacheHitAndETag(t *testing.T) {
	env := newTestEnv(t)
	seedCandidates(t, env.stores, "league-1", 5, "p3")

	first := env.get(t, "/api/v1/waivers/league-1?week=5", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := env.get(t, "/api/v1/waivers/league-1?week=5", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	third := env.get(t, "/api/v1/waivers/league-1?week=5", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, third.Code)
	assert.Empty(t, third.Body.Bytes())
}

func TestGetWaiversUnknownLeagueIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/api/v1/waivers/nope?week=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["count"])
}

func TestGetWaiversRejectsBadWeek(t *testing.T) {
	env := newTestEnv(t)
	for _, week := range []string{"0", "19", "abc", "-1"} {
		rec := env.get(t, "/api/v1/waivers/league-1?week="+week, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "week=%s", week)
	}
}

// seedLeague populates a two-team league with enough usage that unrostered
// players become candidates on refresh.
func seedLeague(t *testing.T, stores *storage.Stores) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []struct{ id, pos, team string }{
		{"p1", "QB", "BUF"},
		{"p2", "RB", "SF"},
		{"p3", "WR", "MIA"},
		{"p4", "TE", "DAL"},
	} {
		require.NoError(t, stores.Players.Insert(ctx, &domain.Player{
			CanonicalID: p.id, Name: p.id, Position: p.pos, Team: p.team,
			IsStarter: true, Active: true,
		}))
	}
	require.NoError(t, stores.Rosters.ReplaceActive(ctx, domain.PlatformSleeper, "league-1", []*domain.RosterEntry{
		{PlayerID: "p1", UserID: "team-a", Slot: "QB", IsActive: true},
		{PlayerID: "p2", UserID: "team-b", Slot: "RB", IsActive: true},
	}))
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		require.NoError(t, stores.Usage.Upsert(ctx, &domain.UsageRecord{
			PlayerID: id, Week: 5, Season: 2025, SnapPct: floatPtr(0.6),
		}))
	}
}

func TestRefreshWaiversBuildsAndInvalidates(t *testing.T) {
	env := newTestEnv(t)
	seedLeague(t, env.stores)

	// Warm the cache with the empty pre-refresh state.
	rec := env.get(t, "/api/v1/waivers/league-1?week=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), decodeBody(t, rec)["count"])

	rec = env.post(t, "/api/v1/waivers/league-1/refresh", map[string]any{"week": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["candidates_count"])

	// Refresh invalidated the cached payload, so the next read sees the rows.
	rec = env.get(t, "/api/v1/waivers/league-1?week=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, float64(2), got["count"])
}

func TestRefreshWaiversEmptyBodyDefaultsWeek(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/v1/waivers/league-1/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["candidates_count"])
	assert.Greater(t, body["week"], float64(0))
}

func TestGetMappingStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sleeperID := "1234"
	mflID := "5678"
	require.NoError(t, env.stores.Players.Insert(ctx, &domain.Player{
		CanonicalID: "NFL_AAAA0001", Name: "josh allen", Position: "QB", Team: "BUF",
		SleeperID: &sleeperID, MFLID: &mflID, Active: true, IsStarter: true,
	}))
	require.NoError(t, env.stores.Players.Insert(ctx, &domain.Player{
		CanonicalID: "NFL_AAAA0002", Name: "james cook", Position: "RB", Team: "BUF",
		SleeperID: &sleeperID, Active: true, IsStarter: true,
	}))

	rec := env.get(t, "/api/v1/players/mapping-stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["total_players"])
	assert.Equal(t, float64(1), body["cross_platform"])
}
