// Package metrics holds the Prometheus instruments of the service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hfqr"

// Lookup sources reported by ObserveLookup.
const (
	SourceMemory   = "memory"
	SourceRedis    = "redis"
	SourceHub      = "hub"
	SourceFallback = "fallback"
)

// Relay outcomes reported by ObserveRelay.
const (
	RelayOK       = "ok"
	RelayRedirect = "redirect"
	RelayInvalid  = "invalid"
	RelayBlocked  = "blocked"
	RelayFailed   = "failed"
)

// Metrics holds all service Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Classifier metrics
	Classifications *prometheus.CounterVec

	// Resolver metrics
	ProfileLookups *prometheus.CounterVec
	ProfileFetch   prometheus.Histogram
	CachedProfiles prometheus.Gauge
	CacheEvictions prometheus.Counter

	// Relay metrics
	RelayRequests *prometheus.CounterVec
	RelayBytes    prometheus.Counter

	// QR / theme metrics
	QRRendered   prometheus.Counter
	ThemeReloads *prometheus.CounterVec
	ThemesLoaded prometheus.Gauge
}

// New creates the instruments on a private registry that also exposes the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	m := &Metrics{registry: reg}

	m.HTTPRequests = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code",
	}, []string{"route", "method", "status"})

	m.HTTPDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route"})

	m.Classifications = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Classified inputs by resulting kind (invalid on error)",
	}, []string{"kind"})

	m.ProfileLookups = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_lookups_total",
		Help:      "Profile lookups by the tier that answered (memory, redis, hub, fallback)",
	}, []string{"source"})

	m.ProfileFetch = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_fetch_duration_seconds",
		Help:      "Time to fetch and parse one profile page",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	m.CachedProfiles = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cached_profiles",
		Help:      "Profiles held in the in-memory index",
	})

	m.CacheEvictions = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Expired profiles removed from the in-memory index",
	})

	m.RelayRequests = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_requests_total",
		Help:      "Image relay requests by outcome",
	}, []string{"outcome"})

	m.RelayBytes = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_bytes_total",
		Help:      "Image bytes relayed to clients",
	})

	m.QRRendered = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "qr_rendered_total",
		Help:      "QR code PNGs rendered",
	})

	m.ThemeReloads = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theme_reloads_total",
		Help:      "Theme file reloads by result",
	}, []string{"result"})

	m.ThemesLoaded = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "themes_loaded",
		Help:      "Themes currently available",
	})

	return m
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveClassification(kind string) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveLookup(source string) {
	if m == nil {
		return
	}
	m.ProfileLookups.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveFetch(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProfileFetch.Observe(elapsed.Seconds())
}

func (m *Metrics) SetCachedProfiles(n int) {
	if m == nil {
		return
	}
	m.CachedProfiles.Set(float64(n))
}

func (m *Metrics) AddEvictions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CacheEvictions.Add(float64(n))
}

func (m *Metrics) ObserveRelay(outcome string, bytes int64) {
	if m == nil {
		return
	}
	m.RelayRequests.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		m.RelayBytes.Add(float64(bytes))
	}
}

func (m *Metrics) ObserveQR() {
	if m == nil {
		return
	}
	m.QRRendered.Inc()
}

func (m *Metrics) ObserveThemeReload(ok bool, loaded int) {
	if m == nil {
		return
	}
	if !ok {
		m.ThemeReloads.WithLabelValues("error").Inc()
		return
	}
	m.ThemeReloads.WithLabelValues("ok").Inc()
	m.ThemesLoaded.Set(float64(loaded))
}
