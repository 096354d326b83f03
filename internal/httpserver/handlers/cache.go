package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/utils"
)

type flushResponse struct {
	Memory int `json:"memory"`
	Redis  int `json:"redis"`
}

// FlushCache drops every cached profile from both tiers. Lookup counters
// survive so the stats keep their history.
func FlushCache(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteIP := utils.ClientIP(r, d.TrustProxy)
		resp := flushResponse{Memory: d.MemoryIndex.FlushProfiles()}

		if d.ProfileStore != nil {
			flushed, err := d.ProfileStore.FlushProfiles(r.Context())
			resp.Redis = len(flushed)
			if err != nil {
				d.Logger.Error("failed to flush redis profiles",
					logger.String("remote_ip", remoteIP),
					logger.Int("flushed", len(flushed)),
					logger.Error(err))
				writeError(w, http.StatusBadGateway, "Failed to flush shared cache")
				return
			}
			d.Logger.Debug("redis profiles flushed", logger.Strings("usernames", flushed))
		}

		d.Logger.Info("profile cache flushed via endpoint",
			logger.String("remote_ip", remoteIP),
			logger.Int("memory", resp.Memory),
			logger.Int("redis", resp.Redis))
		writeJSON(w, http.StatusOK, resp)
	}
}

// EvictProfile forgets one cached profile so the next lookup refetches it.
func EvictProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "Username is required")
			return
		}

		d.MemoryIndex.DeleteProfile(username)
		if d.ProfileStore != nil {
			if err := d.ProfileStore.DeleteProfile(r.Context(), username); err != nil {
				d.Logger.Error("failed to evict redis profile",
					logger.String("username", username),
					logger.Error(err))
				writeError(w, http.StatusBadGateway, "Failed to evict from shared cache")
				return
			}
		}

		d.Logger.Info("profile evicted via endpoint",
			logger.String("username", username),
			logger.String("remote_ip", utils.ClientIP(r, d.TrustProxy)))
		w.WriteHeader(http.StatusNoContent)
	}
}
