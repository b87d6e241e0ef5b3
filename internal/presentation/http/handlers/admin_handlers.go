package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jssgo/jss-edge/internal/application/services"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
	"github.com/jssgo/jss-edge/internal/presentation/http/middleware"
)

// AdminHandlers exposes runtime diagnostics and log level control
type AdminHandlers struct {
	layoutService *services.LayoutService
	authService   *services.AuthService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(
	layoutService *services.LayoutService,
	authService *services.AuthService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *AdminHandlers {
	return &AdminHandlers{
		layoutService: layoutService,
		authService:   authService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// PostLogin handles POST /api/v1/admin/login
func (h *AdminHandlers) PostLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result := h.authService.AuthenticateAdmin(req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminAuthMiddleware protects admin endpoints. It accepts a bearer token
// issued by PostLogin or the admin password itself.
func (h *AdminHandlers) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authService.Enabled() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access is not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		token := ""
		if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		if !h.authService.ValidateAdminToken(token) && !h.authService.CheckPassword(token) {
			h.logger.WithContext(logging.ChannelHTTP, c.Request.Context()).Warn("Rejected admin request", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActivityMetrics handles GET /api/v1/admin/activity
func (h *AdminHandlers) GetActivityMetrics(c *gin.Context) {
	siteName := middleware.GetSiteName(c)

	recent := h.perfTracker.GetRecentMetrics(siteName, 5*time.Minute)
	failed := 0
	for _, m := range recent {
		if !m.Success {
			failed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"siteName":         siteName,
		"tracker":          h.perfTracker.GetOverallStats(),
		"recentOperations": len(recent),
		"recentFailures":   failed,
		"activeOperations": len(h.perfTracker.GetActiveOperations(siteName)),
		"layoutCache":      h.layoutService.CacheSummary(siteName),
	})
}

// GetLogLevels handles GET /api/v1/admin/logs/levels
func (h *AdminHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// SetLogLevel handles POST /api/v1/admin/logs/levels
func (h *AdminHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var level slog.Level
	switch strings.ToUpper(req.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log level specified"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to set log level", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("log level for channel '%s' set to '%s'", req.Channel, level)})
}
