// Package handlers provides HTTP handlers for stylesheet and layout endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jssgo/jss-edge/internal/application/services"
	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
	"github.com/jssgo/jss-edge/internal/presentation/http/middleware"
)

// FeaasHandlers contains the stylesheet resolution handlers
type FeaasHandlers struct {
	stylesheetService *services.StylesheetService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewFeaasHandlers creates stylesheet handlers with injected dependencies
func NewFeaasHandlers(stylesheetService *services.StylesheetService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FeaasHandlers {
	return &FeaasHandlers{
		stylesheetService: stylesheetService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// PostStylesheets handles POST /api/v1/feaas/stylesheets
func (h *FeaasHandlers) PostStylesheets(c *gin.Context) {
	siteName := middleware.GetSiteName(c)

	start := time.Now()
	marker := h.perfTracker.StartOperation("resolve_stylesheets_request", siteName)
	defer marker.Complete()
	h.logger.Feaas().Debug("Received resolve stylesheets request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var data layout.LayoutServiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid layout data", "details": err.Error()})
		return
	}

	links := h.stylesheetService.Resolve(&data, c.Query("edgeUrl"), siteName)

	h.logger.Feaas().Info("Resolve stylesheets request completed", "siteName", siteName, "count", len(links), "duration", time.Since(start))
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"links": links,
		"count": len(links),
	})
}

// GetStylesheetURL handles GET /api/v1/feaas/stylesheet-url
func (h *FeaasHandlers) GetStylesheetURL(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id query parameter is required"})
		return
	}

	href := h.stylesheetService.StylesheetURL(id, layout.PageState(c.Query("pageState")), c.Query("edgeUrl"))
	c.JSON(http.StatusOK, gin.H{"href": href})
}
