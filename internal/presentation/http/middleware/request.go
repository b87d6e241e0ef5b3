// Package middleware provides HTTP middleware for the presentation layer.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
)

const (
	// RequestIDHeader carries the request id in both directions
	RequestIDHeader = "X-Request-ID"
	// SiteHeader selects the Sitecore site for a request
	SiteHeader = "X-Site-Name"

	siteNameKey = "siteName"
)

// RequestIDMiddleware assigns a ULID request id unless the client sent one,
// and logs the request on the http channel when it completes
func RequestIDMiddleware(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()

		logger.WithContext(logging.ChannelHTTP, c.Request.Context()).Debug("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// SiteMiddleware resolves the site from the X-Site-Name header, falling
// back to defaultSite
func SiteMiddleware(defaultSite string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := c.GetHeader(SiteHeader)
		if site == "" {
			site = defaultSite
		}
		c.Set(siteNameKey, site)
		c.Next()
	}
}

// GetSiteName returns the site resolved by SiteMiddleware
func GetSiteName(c *gin.Context) string {
	return c.GetString(siteNameKey)
}
