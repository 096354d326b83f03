package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
)

type themesResponse struct {
	Themes     []*domain.Theme `json:"themes"`
	Source     string          `json:"source"`
	LastReload string          `json:"last_reload,omitempty"`
}

// Themes lists the card presets, in the order they were loaded.
func Themes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := themesResponse{
			Themes: d.MemoryIndex.GetAllThemes(),
			Source: "builtin",
		}
		if last := d.MemoryIndex.GetLastThemeReload(); !last.IsZero() {
			resp.Source = "file"
			resp.LastReload = last.Format("2006-01-02 15:04:05")
		}

		w.Header().Set("Cache-Control", "public, max-age=300")
		writeJSON(w, http.StatusOK, resp)
	}
}
