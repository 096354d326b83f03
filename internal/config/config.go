package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget enforced by the router (ex: 15s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Hugging Face
	HubBaseURL     string        // where profile pages are fetched from (ex: https://huggingface.co)
	UserAgent      string        // sent on every upstream request
	ProfileTimeout time.Duration // timeout for one profile page fetch
	ProfileTTL     time.Duration // how long a resolved profile stays cached

	// Image relay
	RelayTimeout      time.Duration // timeout for one upstream image fetch (ex: 10s)
	RelayMaxBytes     int64         // upstream images larger than this are truncated
	RelayAllowedHosts []string      // host suffixes the relay may fetch from (empty = any)

	// QR / themes
	QRDefaultSize  int           // PNG size when the request doesn't set one
	ThemeFile      string        // optional themes.yaml, empty = builtin presets
	ReloadInterval time.Duration // interval to reload the theme file
	SweepInterval  time.Duration // interval to evict expired profiles from memory

	// Rate limiting of the public /api routes
	RateBurst        int
	RateRefillPerMin int

	// Redis (optional, empty address = memory-only cache)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when Redis is enabled
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict operational routes to specific Host headers
	AllowedCIDRS []string // optional, restrict operational routes to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads .env files (see loadEnvFiles) then the HFQR_* environment.
// It panics on an invalid combination, like the rest of the startup path.
func Load() *Config {
	if err := loadEnvFiles(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("HFQR_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HFQR_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("HFQR_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("HFQR_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HFQR_PRETTY_LOG", true),

		// Hugging Face
		HubBaseURL:     strings.TrimSuffix(getenv("HFQR_HUB_BASE_URL", "https://huggingface.co"), "/"),
		UserAgent:      getenv("HFQR_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		ProfileTimeout: mustDuration("HFQR_PROFILE_TIMEOUT", 10*time.Second),
		ProfileTTL:     mustDuration("HFQR_PROFILE_TTL", 6*time.Hour),

		// Image relay
		RelayTimeout:      mustDuration("HFQR_RELAY_TIMEOUT", 10*time.Second),
		RelayMaxBytes:     int64(getenvInt("HFQR_RELAY_MAX_BYTES", 5<<20)),
		RelayAllowedHosts: splitAndTrim(lookupenv("HFQR_RELAY_ALLOWED_HOSTS", "huggingface.co,cdn-avatars.huggingface.co,aeiljuispo.cloudimg.io")),

		// QR / themes
		QRDefaultSize:  getenvInt("HFQR_QR_SIZE", 300),
		ThemeFile:      getenv("HFQR_THEME_FILE", ""),
		ReloadInterval: mustDuration("HFQR_RELOAD_INTERVAL", 24*time.Hour),
		SweepInterval:  mustDuration("HFQR_CACHE_SWEEP_INTERVAL", 10*time.Minute),

		// Rate limiting
		RateBurst:        getenvInt("HFQR_RATE_BURST", 30),
		RateRefillPerMin: getenvInt("HFQR_RATE_REFILL_PER_MIN", 60),

		// Redis settings
		RedisAddr:             getenv("HFQR_REDIS_ADDR", ""),
		RedisUser:             getenv("HFQR_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("HFQR_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("HFQR_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("HFQR_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("HFQR_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("HFQR_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("HFQR_TRUST_PROXY", false),
	}

	if cfg.RedisEnabled() && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: HFQR_REDIS_PASSWORD is required when HFQR_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadEnvFiles loads .env files in priority order:
// 1. ENV_FILE (if set, only this file is loaded)
// 2. .env.local
// 3. .env
//
// godotenv never overrides variables that are already set, so the real
// environment always wins and .env.local wins over .env.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupenv is getenv for keys where an empty value is meaningful.
func lookupenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
