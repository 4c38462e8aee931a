package handler

import (
	"net/http"

	"github.com/gridironlabs/waiverwire/internal/api/respond"
)

// OpenAPIDoc serves the OpenAPI document the swagger UI loads. Kept as a
// hand-maintained summary of the small surface rather than generated output.
// @Summary OpenAPI document
// @Router /docs/doc.json [get]
func (h *Handler) OpenAPIDoc(w http.ResponseWriter, r *http.Request) {
	paths := make(map[string]interface{})
	paths["/health"] = pathGet("Health check", "health")
	paths["/health/db"] = pathGet("Database health check", "health")
	paths["/health/cache"] = pathGet("Cache statistics", "health")
	paths["/api/v1/waivers/{leagueID}"] = pathGet("Waiver candidates for a league-week", "waivers")
	paths["/api/v1/waivers/{leagueID}/refresh"] = map[string]interface{}{
		"post": map[string]interface{}{
			"summary": "Rebuild waiver candidates for a league",
			"tags":    []string{"waivers"},
		},
	}
	paths["/api/v1/players/mapping-stats"] = pathGet("Player identity mapping statistics", "players")

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Waiverwire Data API",
			"description": "Cross-platform player identity resolution and waiver candidate features",
			"version":     "1.0.0",
		},
		"paths": paths,
	})
}

func pathGet(summary, tag string) map[string]interface{} {
	return map[string]interface{}{
		"get": map[string]interface{}{
			"summary": summary,
			"tags":    []string{tag},
		},
	}
}
