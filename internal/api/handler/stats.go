package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gridironlabs/waiverwire/internal/api/respond"
	"github.com/gridironlabs/waiverwire/internal/cache"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// GetMappingStats reports identity mapping coverage.
// @Summary Player mapping statistics
// @Description Returns total mapped players, per-platform ID counts, and cross-platform overlap.
// @Tags players
// @Produce json
// @Success 200 {object} identity.MappingStats
// @Router /api/v1/players/mapping-stats [get]
func (h *Handler) GetMappingStats(w http.ResponseWriter, r *http.Request) {
	const key = "players:mapping-stats"
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLMappingStats, true)
		return
	}

	// Stats come from a throwaway resolver loaded fresh from the store, so
	// the report reflects persisted state rather than one worker's cache.
	resolver := identity.NewResolver(h.stores.Players, h.logger)
	if err := resolver.LoadFromStore(r.Context()); err != nil {
		h.logger.Error("mapping stats load failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load player mappings")
		return
	}

	data, err := json.Marshal(resolver.MappingStats())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_ERROR", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLMappingStats)
	respond.WriteJSON(w, data, etag, cache.TTLMappingStats, false)
}
