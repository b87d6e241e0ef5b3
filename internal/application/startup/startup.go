// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jssgo/jss-edge/internal/application/container"
	"github.com/jssgo/jss-edge/internal/infrastructure/caching/cleanup"
	"github.com/jssgo/jss-edge/internal/infrastructure/layoutservice"
	"github.com/jssgo/jss-edge/internal/presentation/http/server"
	"github.com/jssgo/jss-edge/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until shutdown
func Initialize() error {
	start := time.Now().UTC()

	log.Println("Loading configuration...")
	cfg := config.Load()
	setupLogging(cfg)

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	// Step 1: Channeled logger
	logger, err := container.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	logger.Startup().Info("Channeled logging initialized", "level", cfg.LogLevel, "json", cfg.LogJSON)

	if cfg.SiteName == "" {
		logger.Startup().Warn("SITECORE_SITE_NAME is not set, requests must send X-Site-Name")
	}

	// Step 2: Layout service client
	phaseStart := time.Now()
	client := layoutservice.NewClient(cfg)
	logger.LogStartupPhase("layout_client", time.Since(phaseStart), true, map[string]any{
		"client":    client.Name(),
		"fetchWith": cfg.FetchWith,
	})

	// Step 3: Dependency injection container
	phaseStart = time.Now()
	appContainer := container.NewContainer(cfg, client, logger)
	if cfg.SiteName != "" {
		appContainer.LayoutCache.InitializeSite(cfg.SiteName)
	}
	logger.LogStartupPhase("container", time.Since(phaseStart), true, map[string]any{
		"cacheTTL": cfg.LayoutCacheTTL.String(),
	})

	// Step 4: Background cleanup worker
	cleanupWorker := cleanup.NewWorker(appContainer.LayoutCache, appContainer.PerfTracker, logger, cleanup.NewConfig(cfg))
	go cleanupWorker.Start(ctx)

	// Step 5: HTTP server
	httpServer := server.New(cfg, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			serverErr <- err
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"siteName", cfg.SiteName,
		"port", cfg.Port)

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		logger.System().Error("HTTP server failed", "error", err.Error())
		return err
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures gin and the standard logger
func setupLogging(cfg *config.Config) {
	switch cfg.GinMode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
