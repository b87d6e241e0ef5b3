package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jssgo/jss-edge/internal/application/services"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
	"github.com/jssgo/jss-edge/internal/presentation/http/middleware"
	"github.com/jssgo/jss-edge/internal/presentation/templates"
)

// LayoutHandlers contains the layout fetch handlers
type LayoutHandlers struct {
	layoutService *services.LayoutService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewLayoutHandlers creates layout handlers with injected dependencies
func NewLayoutHandlers(layoutService *services.LayoutService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LayoutHandlers {
	return &LayoutHandlers{
		layoutService: layoutService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetLayout handles GET /api/v1/layout
func (h *LayoutHandlers) GetLayout(c *gin.Context) {
	head, ok := h.pageHead(c, "get_layout_request")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"layout": head.Layout,
		"links":  head.Links,
		"count":  len(head.Links),
	})
}

// GetLayoutHead handles GET /api/v1/layout/head
func (h *LayoutHandlers) GetLayoutHead(c *gin.Context) {
	head, ok := h.pageHead(c, "get_layout_head_request")
	if !ok {
		return
	}

	html, err := templates.RenderStylesheetLinks(head.Links)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// DeleteLayoutCache handles DELETE /api/v1/layout/cache
func (h *LayoutHandlers) DeleteLayoutCache(c *gin.Context) {
	siteName := middleware.GetSiteName(c)
	removed := h.layoutService.InvalidateSite(siteName)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"siteName": siteName,
		"removed":  removed,
	})
}

// GetLayoutCache handles GET /api/v1/layout/cache
func (h *LayoutHandlers) GetLayoutCache(c *gin.Context) {
	siteName := middleware.GetSiteName(c)
	c.JSON(http.StatusOK, gin.H{
		"siteName": siteName,
		"cache":    h.layoutService.CacheSummary(siteName),
	})
}

func (h *LayoutHandlers) pageHead(c *gin.Context, operation string) (*services.PageHead, bool) {
	siteName := middleware.GetSiteName(c)

	start := time.Now()
	marker := h.perfTracker.StartOperation(operation, siteName)
	defer marker.Complete()

	itemPath := c.DefaultQuery("path", "/")
	language := c.Query("lang")

	head, err := h.layoutService.PageHead(c.Request.Context(), siteName, itemPath, language, c.Query("edgeUrl"))
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch layout data", "details": err.Error()})
		return nil, false
	}

	h.logger.WithContext(logging.ChannelLayout, c.Request.Context()).Info("Layout request completed",
		"siteName", siteName, "itemPath", itemPath, "count", len(head.Links), "duration", time.Since(start))
	marker.SetSuccess(true)
	return head, true
}
