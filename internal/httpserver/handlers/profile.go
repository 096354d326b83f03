package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
)

const maxProfileRequestBytes = 64 << 10

type profileRequest struct {
	Username     string `json:"username"`
	ResourceType string `json:"resourceType"`
	ResourceName string `json:"resourceName"`
}

// Profile resolves the display data of a username.
// Resolution failures are absorbed: the default profile is returned with 200.
func Profile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileRequestBytes)).Decode(&req); err != nil {
			d.Logger.Warn("invalid profile request body", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch profile data")
			return
		}

		username := strings.TrimSpace(req.Username)
		if username == "" {
			writeError(w, http.StatusBadRequest, "Username is required")
			return
		}

		p := d.Resolver.Resolve(r.Context(), username)
		writeJSON(w, http.StatusOK, p.WithResource(req.ResourceType, req.ResourceName))
	}
}
