package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/utils"
)

// Reload triggers a manual reload of the theme file
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteIP := utils.ClientIP(r, d.TrustProxy)

		if d.ThemeFile == "" {
			d.Logger.Info("reload requested but no theme file is configured",
				logger.String("remote_ip", remoteIP))
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual theme reload triggered via endpoint",
				logger.String("remote_ip", remoteIP))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("theme reload already in progress",
				logger.String("remote_ip", remoteIP))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
