package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/hfqr/internal/config"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
	"github.com/MrSnakeDoc/hfqr/internal/redis"
	"github.com/MrSnakeDoc/hfqr/internal/resolver"
	"github.com/MrSnakeDoc/hfqr/internal/scheduler"
	"github.com/MrSnakeDoc/hfqr/internal/sources/huggingface"
	redisstore "github.com/MrSnakeDoc/hfqr/internal/store/redis"
	"github.com/MrSnakeDoc/hfqr/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.ThemeReloader
	sweeper     *scheduler.CacheSweeper
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	m := metrics.New()

	// Initialize memory index
	memIndex := index.NewMemoryIndex()

	// Redis is optional. When configured it must answer, fail fast otherwise.
	var (
		redisClient  *goredis.Client
		profileStore *redisstore.Store
		cache        resolver.ProfileCache
		pruner       scheduler.ProfileIndexPruner
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		store := redisstore.NewStore(client)
		redisClient, profileStore, cache, pruner = client, store, store, store

		// Warm the memory index from the shared cache
		syncer := scheduler.NewRedisSyncer(store, memIndex, cfg.ProfileTTL, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync profiles from redis on startup",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, profiles cached in memory only")
	}

	hubClient := huggingface.NewClient(huggingface.Options{
		BaseURL:           cfg.HubBaseURL,
		UserAgent:         cfg.UserAgent,
		ProfileTimeout:    cfg.ProfileTimeout,
		ImageTimeout:      cfg.RelayTimeout,
		MaxImageBytes:     cfg.RelayMaxBytes,
		AllowedImageHosts: cfg.RelayAllowedHosts,
	})

	res := resolver.New(hubClient, cache, memIndex, cfg.ProfileTTL, loggerClient, m)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewThemeReloader(
		cfg.ThemeFile,
		memIndex,
		loggerClient,
		m,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	sweeper := scheduler.NewCacheSweeper(
		pruner,
		memIndex,
		loggerClient,
		m,
		cfg.SweepInterval,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateBurst:     cfg.RateBurst,
		RateRefill:    cfg.RateRefillPerMin,
		RedisClient:   redisClient,
		ProfileStore:  profileStore,
		MemoryIndex:   memIndex,
		Resolver:      res,
		HubClient:     hubClient,
		Metrics:       m,
		QRDefaultSize: cfg.QRDefaultSize,
		ThemeFile:     cfg.ThemeFile,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		sweeper:     sweeper,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting hfqr v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("hfqr %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load themes and start periodic refresh
	a.reloader.Start(ctx)
	a.logger.Info("theme reloader started",
		logger.String("file", a.cfg.ThemeFile),
		logger.Int("themes", a.memIndex.ThemeCount()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	a.sweeper.Start(ctx)
	a.logger.Info("cache sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		a.sweeper.Stop()
		return err
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ hfqr stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
