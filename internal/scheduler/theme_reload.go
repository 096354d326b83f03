package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/hfqr/internal/index"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
	"github.com/MrSnakeDoc/hfqr/internal/metrics"
	"github.com/MrSnakeDoc/hfqr/internal/sources/themes"
)

// DefaultReloadInterval is used when no interval is configured
const DefaultReloadInterval = 24 * time.Hour

// ThemeReloader handles periodic reloading of the theme file
type ThemeReloader struct {
	loader        *themes.Loader // nil when no theme file is configured
	mapper        *themes.Mapper
	index         *index.MemoryIndex
	logger        logger.Logger
	metrics       *metrics.Metrics
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewThemeReloader creates a new theme reloader. An empty themeFile keeps
// the builtin presets and turns reloads into no-ops.
func NewThemeReloader(
	themeFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	m *metrics.Metrics,
	interval time.Duration,
	manualTrigger chan struct{},
) *ThemeReloader {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}

	var loader *themes.Loader
	if themeFile != "" {
		loader = themes.NewLoader(themeFile)
	}

	return &ThemeReloader{
		loader:        loader,
		mapper:        themes.NewMapper(),
		index:         idx,
		logger:        log,
		metrics:       m,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the themes once, then reloads them on every tick or manual trigger
func (tr *ThemeReloader) Start(ctx context.Context) {
	// Load immediately on start
	if err := tr.Reload(ctx); err != nil {
		tr.logger.Warn("initial theme load failed, keeping builtin presets",
			logger.Error(err))
	}

	// Start periodic reload
	ticker := time.NewTicker(tr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := tr.Reload(ctx); err != nil {
					tr.logger.Error("failed to reload themes",
						logger.Error(err))
				}
			case <-tr.manualTrigger:
				tr.logger.Info("manual theme reload triggered")
				if err := tr.Reload(ctx); err != nil {
					tr.logger.Error("failed to reload themes",
						logger.Error(err))
				}
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader
func (tr *ThemeReloader) Stop() {
	close(tr.stopCh)
}

// Reload reads the theme file and swaps the themes in the index.
// On any error the previous themes stay in place.
func (tr *ThemeReloader) Reload(ctx context.Context) error {
	if tr.loader == nil {
		tr.metrics.ObserveThemeReload(true, tr.index.ThemeCount())
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tr.logger.Info("reloading themes", logger.String("file", tr.loader.Path()))

	config, err := tr.loader.Load()
	if err != nil {
		tr.metrics.ObserveThemeReload(false, 0)
		return fmt.Errorf("failed to load themes: %w", err)
	}

	loaded, err := tr.mapper.MapThemes(config)
	if err != nil {
		tr.metrics.ObserveThemeReload(false, 0)
		return fmt.Errorf("failed to map themes: %w", err)
	}

	if skipped := len(config) - len(loaded); skipped > 0 {
		tr.logger.Warn("skipped invalid theme entries",
			logger.Int("skipped", skipped))
	}

	tr.index.UpdateThemes(loaded)
	tr.metrics.ObserveThemeReload(true, len(loaded))

	tr.logger.Info("loaded themes",
		logger.Int("count", len(loaded)))

	return nil
}
