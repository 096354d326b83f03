package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/mw"
)

func init() { Register(registerCache) }

func registerCache(r chi.Router, d deps.Deps) {
	r.Route("/cache", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Post("/flush", handlers.FlushCache(d))
		r.Delete("/profiles/{username}", handlers.EvictProfile(d))
	})
}
