package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
)

const readyPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz fails while no theme is loaded or a configured Redis is unreachable.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		if d.MemoryIndex.ThemeCount() == 0 {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "no themes loaded"})
			return
		}

		if d.RedisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
			defer cancel()

			if err := d.RedisClient.Ping(ctx).Err(); err != nil {
				d.Logger.Warn("readiness check: redis unreachable", logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "redis unreachable"})
				return
			}
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
