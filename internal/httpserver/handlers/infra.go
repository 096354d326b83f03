package handlers

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/index"
)

const infraTopLookups = 10

type componentStatus struct {
	OK             bool   `json:"ok"`
	CachedProfiles *int   `json:"cached_profiles,omitempty"`
	ThemesLoaded   *int   `json:"themes_loaded,omitempty"`
	LastReload     string `json:"last_reload,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	CacheMode  string                     `json:"cache_mode"`
	Components map[string]componentStatus `json:"components"`
	TopLookups []index.LookupCount        `json:"top_lookups"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cachedProfiles := d.MemoryIndex.ProfileCount()
		themeCount := d.MemoryIndex.ThemeCount()

		lastReloadStr := "builtin"
		if lastReload := d.MemoryIndex.GetLastThemeReload(); !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"themes": {
				OK:           themeCount > 0,
				ThemesLoaded: &themeCount,
				LastReload:   lastReloadStr,
			},
			"profile_cache": {
				OK:             true,
				CachedProfiles: &cachedProfiles,
			},
			"redis": checkRedis(r.Context(), d),
		}

		top := d.Resolver.TopLookups(r.Context(), infraTopLookups)
		if top == nil {
			top = []index.LookupCount{}
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, infraResponse{
			CacheMode:  determineCacheMode(components),
			Components: components,
			TopLookups: top,
		})
	}
}

func determineCacheMode(components map[string]componentStatus) string {
	redis, exists := components["redis"]
	switch {
	case !exists || redis.Mode == "disabled":
		return "memory"
	case !redis.OK:
		return "degraded" // Redis configured but down, lookups served from memory
	default:
		return "shared"
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "profiles-cached-per-instance",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, readyPingTimeout)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "profiles-cached-per-instance",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "profiles-shared-across-instances",
	}
}
