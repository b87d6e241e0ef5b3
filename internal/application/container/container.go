// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/jssgo/jss-edge/internal/application/services"
	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
	"github.com/jssgo/jss-edge/internal/infrastructure/caching/stores"
	"github.com/jssgo/jss-edge/internal/infrastructure/layoutservice"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
	"github.com/jssgo/jss-edge/internal/infrastructure/security"
	"github.com/jssgo/jss-edge/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services
	StylesheetService *services.StylesheetService
	LayoutService     *services.LayoutService
	AuthService       *services.AuthService

	// Infrastructure Dependencies
	Config       *config.Config
	LayoutClient layoutservice.Client
	LayoutCache  *stores.LayoutsStore
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(cfg *config.Config, client layoutservice.Client, logger *logging.ChanneledLogger) *Container {
	trackerConfig := performance.DefaultTrackerConfig()
	if cfg.PerfMaxMarkers > 0 {
		trackerConfig.MaxMarkers = cfg.PerfMaxMarkers
	}
	perfTracker := performance.NewTracker(trackerConfig)
	layoutCache := stores.NewLayoutsStore(cfg.LayoutCacheTTL)

	stylesheetService := services.NewStylesheetService(
		feaas.NewResolver(feaas.DefaultServerURLs()),
		cfg.SitecoreEdgeURL,
		logger,
		perfTracker,
	)

	layoutService := services.NewLayoutService(
		client,
		layoutCache,
		stylesheetService,
		cfg.DefaultLanguage,
		logger,
		perfTracker,
	)

	return &Container{
		StylesheetService: stylesheetService,
		LayoutService:     layoutService,
		AuthService:       services.NewAuthService(cfg.AdminPassword, jwtSecret(cfg, logger), cfg.AdminTokenTTL, logger),

		Config:       cfg,
		LayoutClient: client,
		LayoutCache:  layoutCache,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}
}

// jwtSecret returns the configured JWT secret. Without one, admin tokens are
// signed with a random secret and do not survive a restart.
func jwtSecret(cfg *config.Config, logger *logging.ChanneledLogger) string {
	if cfg.JWTSecret != "" || cfg.AdminPassword == "" {
		return cfg.JWTSecret
	}
	secret, err := security.GenerateSecureToken(32)
	if err != nil {
		logger.System().Error("Failed to generate JWT secret, admin access disabled", "error", err)
		return ""
	}
	logger.System().Warn("JWT_SECRET is not set, admin tokens will not survive a restart")
	return secret
}

// NewLogger builds the channeled logger described by the configuration
func NewLogger(cfg *config.Config) (*logging.ChanneledLogger, error) {
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.JSONFormat = cfg.LogJSON
	loggerConfig.OutputToFile = cfg.LogToFile
	loggerConfig.LogDirectory = cfg.LogDirectory
	loggerConfig.DefaultLevel = logging.ParseLevel(cfg.LogLevel)
	return logging.NewChanneledLogger(loggerConfig)
}
