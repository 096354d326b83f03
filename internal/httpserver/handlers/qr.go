package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/qr"
)

// QR renders the QR code of the profile behind ?input= as a PNG.
func QR(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		link, ok := classifyInput(w, q.Get("input"), d)
		if !ok {
			return
		}

		size := d.QRDefaultSize
		if raw := q.Get("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid size")
				return
			}
			size = n
		}

		theme := d.MemoryIndex.ThemeOrDefault(q.Get("theme"))

		png, err := qr.PNG(link.ProfileURL, size, theme)
		if err != nil {
			d.Logger.Error("failed to render QR code",
				logger.String("profile_url", link.ProfileURL),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to render QR code")
			return
		}
		d.Metrics.ObserveQR()

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="huggingface-%s-qr.png"`, link.Username))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
