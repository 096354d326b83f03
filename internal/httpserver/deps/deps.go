package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
	"github.com/MrSnakeDoc/hfqr/internal/resolver"
	"github.com/MrSnakeDoc/hfqr/internal/sources/huggingface"
	redisstore "github.com/MrSnakeDoc/hfqr/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time    // for testing, defaults to time.Now
	AllowedHosts  []string            // Host headers allowed to reach the operational routes
	AllowedCIDRS  []string            // IPs allowed to reach the operational routes
	TrustProxy    bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst     int                 // per-IP burst on /api routes
	RateRefill    int                 // per-IP tokens per minute on /api routes
	RedisClient   *redis.Client       // nil when Redis is disabled
	ProfileStore  *redisstore.Store   // shared profile cache, nil when Redis is disabled
	MemoryIndex   *index.MemoryIndex  // in-memory profiles, lookups and themes
	Resolver      *resolver.Resolver  // username -> display data
	HubClient     *huggingface.Client // profile pages and image relay
	Metrics       *metrics.Metrics    // nil disables /metrics
	QRDefaultSize int                 // PNG size when the request doesn't set one
	ThemeFile     string              // empty when the builtin presets are used
	ReloadTrigger chan struct{}       // channel to trigger a manual theme reload
}

// Now returns TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
