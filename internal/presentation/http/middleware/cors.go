package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware provides enhanced CORS configuration
func CORSMiddleware() gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:3001",
			"http://[::1]:3000", // IPv6 localhost
			"http://[::1]:3001", // IPv6 localhost
		},
		AllowMethods: []string{
			"GET", "POST", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			SiteHeader, RequestIDHeader,
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"Content-Type", "Cache-Control", RequestIDHeader,
		},
	}

	return cors.New(config)
}
