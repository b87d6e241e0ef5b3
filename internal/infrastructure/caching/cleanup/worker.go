// Package cleanup provides background worker
package cleanup

import (
	"context"
	"time"

	"github.com/jssgo/jss-edge/internal/infrastructure/caching/stores"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
)

// Worker purges expired layout cache entries and stale performance
// markers on an interval
type Worker struct {
	store       *stores.LayoutsStore
	perfTracker *performance.Tracker
	logger      *logging.ChanneledLogger
	config      *Config
}

// NewWorker creates a new cleanup worker with injected configuration.
// perfTracker may be nil.
func NewWorker(store *stores.LayoutsStore, perfTracker *performance.Tracker, logger *logging.ChanneledLogger, config *Config) *Worker {
	return &Worker{
		store:       store,
		perfTracker: perfTracker,
		logger:      logger,
		config:      config,
	}
}

// Start runs the cleanup loop until ctx is cancelled
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.config.CleanupInterval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.PerformCleanup(ctx)
		}
	}
}

// PerformCleanup purges expired entries for every cached site and returns
// the number removed
func (w *Worker) PerformCleanup(ctx context.Context) int {
	start := time.Now()

	sites := w.store.Sites()
	totalCleaned := 0
	for _, site := range sites {
		select {
		case <-ctx.Done():
			return totalCleaned
		default:
			totalCleaned += w.store.PurgeExpired(site)
		}
	}

	if w.perfTracker != nil {
		w.perfTracker.Cleanup()
	}

	if totalCleaned > 0 {
		w.logger.Cache().Info("Cache cleanup finished",
			"cleaned", totalCleaned, "sites", len(sites), "duration", time.Since(start))
	} else {
		w.logger.Cache().Debug("Cache cleanup completed, no expired entries", "duration", time.Since(start))
	}
	return totalCleaned
}
