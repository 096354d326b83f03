package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/mw"
)

func init() {
	RegisterAPI(registerClassify)
	RegisterAPI(registerProfile)
	RegisterAPI(registerProxyImage)
	RegisterAPI(registerQR)
	RegisterAPI(registerCard)
	RegisterAPI(registerThemes)
}

func apiRateLimit(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefill,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
		Logger:            d.Logger,
	})
}

func registerClassify(r chi.Router, d deps.Deps) {
	r.Get("/classify", handlers.Classify(d))
}

func registerProfile(r chi.Router, d deps.Deps) {
	r.Post("/huggingface", handlers.Profile(d))
}

func registerProxyImage(r chi.Router, d deps.Deps) {
	r.Get("/proxy-image", handlers.ProxyImage(d))
}

func registerQR(r chi.Router, d deps.Deps) {
	r.Get("/qr", handlers.QR(d))
}

func registerCard(r chi.Router, d deps.Deps) {
	r.Get("/card", handlers.Card(d))
}

func registerThemes(r chi.Router, d deps.Deps) {
	r.Get("/themes", handlers.Themes(d))
}
