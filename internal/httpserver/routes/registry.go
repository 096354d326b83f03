package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	registry    []entry
	apiRegistry []Registrar
)

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAPI adds a registrar mounted under /api, behind the shared rate limiter.
func RegisterAPI(reg Registrar) {
	apiRegistry = append(apiRegistry, reg)
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(e.mws...) // apply per-route middlewares
		e.reg(sub, d)
	}

	if len(apiRegistry) > 0 {
		r.Route("/api", func(api chi.Router) {
			api.Use(apiRateLimit(d))
			for _, reg := range apiRegistry {
				reg(api, d)
			}
		})
	}
}
