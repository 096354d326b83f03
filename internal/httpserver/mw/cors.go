package mw

import (
	"net/http"
	"strings"
)

// CORSConfig lists what cross-origin callers may do.
type CORSConfig struct {
	AllowedOrigins []string // "*" or exact origins; empty means "*"
	AllowedMethods []string
	AllowedHeaders []string
	MaxAgeSeconds  string
}

// DefaultCORS allows any origin to GET and POST.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAgeSeconds:  "600",
	}
}

// CORS sets Access-Control-* headers and answers preflight requests.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	anyOrigin := len(cfg.AllowedOrigins) == 0
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			anyOrigin = true
		}
		origins[strings.TrimSuffix(o, "/")] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case anyOrigin:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && origins[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			if methods != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}
			if cfg.MaxAgeSeconds != "" {
				w.Header().Set("Access-Control-Max-Age", cfg.MaxAgeSeconds)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
