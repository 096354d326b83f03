package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
)

// Metrics serves the Prometheus exposition format.
func Metrics(d deps.Deps) http.HandlerFunc {
	h := d.Metrics.Handler()
	return h.ServeHTTP
}
