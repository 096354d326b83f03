package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/mw"
)

func init() { Register(registerMetrics) }

func registerMetrics(r chi.Router, d deps.Deps) {
	if d.Metrics == nil {
		return
	}
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/metrics", handlers.Metrics(d))
}
