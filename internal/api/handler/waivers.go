package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridironlabs/waiverwire/internal/api/respond"
	"github.com/gridironlabs/waiverwire/internal/cache"
	"github.com/gridironlabs/waiverwire/internal/season"
)

// GetWaivers returns the materialized waiver candidates for a league-week.
// @Summary Waiver candidates
// @Description Returns the computed feature rows for one league and week.
// @Tags waivers
// @Produce json
// @Param leagueID path string true "League ID"
// @Param week query int false "NFL week (defaults to current)"
// @Success 200 {array} domain.WaiverCandidate
// @Router /api/v1/waivers/{leagueID} [get]
func (h *Handler) GetWaivers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	week, err := weekParam(r, season.CurrentWeek(time.Now()))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_WEEK", err.Error())
		return
	}

	key := waiversCacheKey(leagueID, week)
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLWaivers, true)
		return
	}

	candidates, err := h.stores.Waivers.ListLeagueWeek(r.Context(), leagueID, week)
	if err != nil {
		h.logger.Error("waiver list failed", "league_id", leagueID, "week", week, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load waiver candidates")
		return
	}

	payload := map[string]interface{}{
		"league_id":  leagueID,
		"week":       week,
		"count":      len(candidates),
		"candidates": candidates,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_ERROR", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLWaivers)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLWaivers, false)
}

// refreshRequest is the optional POST body for a manual refresh.
type refreshRequest struct {
	Week   int    `json:"week"`
	UserID string `json:"user_id"`
}

// RefreshWaivers runs a one-shot build-and-sync for a league.
// @Summary Refresh waiver candidates
// @Description Rebuilds and persists the feature rows for one league, returning the run report.
// @Tags waivers
// @Accept json
// @Produce json
// @Param leagueID path string true "League ID"
// @Success 200 {object} waiver.RefreshResult
// @Router /api/v1/waivers/{leagueID}/refresh [post]
func (h *Handler) RefreshWaivers(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")

	var req refreshRequest
	if r.Body != nil {
		// An empty body is fine; week defaults to the current NFL week.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result := h.refresh.Refresh(r.Context(), leagueID, req.Week, h.cfg.Season, req.UserID)
	h.cache.Invalidate(waiversCacheKey(leagueID, result.Week))

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	respond.WriteJSONObject(w, status, result)
}

func waiversCacheKey(leagueID string, week int) string {
	return fmt.Sprintf("waivers:%s:%d", leagueID, week)
}

func weekParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return fallback, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < season.FirstWeek || week > season.LastWeek {
		return 0, fmt.Errorf("week must be an integer in [%d, %d]", season.FirstWeek, season.LastWeek)
	}
	return week, nil
}
