package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
	"github.com/MrSnakeDoc/hfqr/internal/sources/huggingface"
	"github.com/MrSnakeDoc/hfqr/internal/utils"
)

// ProxyImage relays an upstream avatar so browsers can draw it on a canvas.
func ProxyImage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if strings.TrimSpace(raw) == "" {
			d.Metrics.ObserveRelay(metrics.RelayInvalid, 0)
			writeError(w, http.StatusBadRequest, "Image URL is required")
			return
		}

		img, err := d.HubClient.FetchImage(r.Context(), raw)
		if err != nil {
			relayFailure(w, r, d, raw, err)
			return
		}
		defer utils.Close(img.Body)

		w.Header().Set("Content-Type", img.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)

		n, err := io.Copy(w, img.Body)
		if err != nil {
			// Headers are gone, only the log can tell.
			d.Logger.Warn("image relay interrupted",
				logger.String("url", raw),
				logger.Int64("bytes", n),
				logger.Error(err))
		}
		d.Metrics.ObserveRelay(metrics.RelayOK, n)
	}
}

func relayFailure(w http.ResponseWriter, r *http.Request, d deps.Deps, raw string, err error) {
	var upstream *huggingface.UpstreamError

	switch {
	case errors.Is(err, huggingface.ErrImageURLRequired):
		d.Metrics.ObserveRelay(metrics.RelayInvalid, 0)
		writeError(w, http.StatusBadRequest, "Image URL is required")

	case errors.Is(err, huggingface.ErrInvalidImageURL):
		d.Metrics.ObserveRelay(metrics.RelayInvalid, 0)
		writeError(w, http.StatusBadRequest, "Invalid image URL format")

	case errors.Is(err, huggingface.ErrImageHostBlocked):
		d.Metrics.ObserveRelay(metrics.RelayBlocked, 0)
		d.Logger.Info("image host rejected", logger.String("url", raw))
		writeError(w, http.StatusForbidden, "Image host not allowed")

	case errors.Is(err, huggingface.ErrImageNotFound):
		d.Metrics.ObserveRelay(metrics.RelayRedirect, 0)
		http.Redirect(w, r, domain.DefaultAvatarURL, http.StatusFound)

	case errors.As(err, &upstream):
		d.Metrics.ObserveRelay(metrics.RelayFailed, 0)
		d.Logger.Warn("image upstream failed",
			logger.String("url", raw),
			logger.Int("status", upstream.Status))
		writeJSON(w, upstream.Status, errorResponse{
			Error:   "Failed to fetch image",
			Details: http.StatusText(upstream.Status),
		})

	default:
		d.Metrics.ObserveRelay(metrics.RelayFailed, 0)
		d.Logger.Warn("image fetch failed",
			logger.String("url", raw),
			logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch image",
			Details: err.Error(),
		})
	}
}
