// Package config provides centralized configuration values for JSS Edge
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// FetchWithGraphQL selects the Experience Edge GraphQL layout client
	FetchWithGraphQL = "GraphQL"
	// FetchWithREST selects the REST layout service client
	FetchWithREST = "REST"

	DefaultEdgeEndpoint      = "http://my.experience.edge/sitecore/api/graph/edge"
	DefaultAPIKey            = "{YOUR API KEY HERE}"
	DefaultLayoutServiceName = "jss"
	DefaultSitecoreEdgeURL   = "https://edge-platform.sitecorecloud.io"
)

// Logger receives configuration override notices. Tests and the CLI may
// replace it to silence output.
var Logger = log.Default()

// Config holds the resolved application configuration
type Config struct {
	// Server
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	GinMode            string

	// Sitecore
	SiteName                string
	GraphQLEndpoint         string
	APIKey                  string
	APIHost                 string
	LayoutConfigurationName string
	FetchWith               string
	DefaultLanguage         string
	SitecoreEdgeURL         string
	HTTPClientTimeout       time.Duration

	// Cache
	LayoutCacheTTL       time.Duration
	CacheCleanupInterval time.Duration

	// Logging
	LogLevel     string
	LogJSON      bool
	LogToFile    bool
	LogDirectory string

	// Admin
	AdminPassword  string
	JWTSecret      string
	AdminTokenTTL  time.Duration
	PerfMaxMarkers int
}

// Load reads the optional .env file in the working directory, then builds
// the configuration from the environment.
func Load() *Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file. An empty path skips the file.
// Variables already present in the environment are never overridden.
func LoadFrom(envFile string) *Config {
	if envFile != "" {
		loadEnvFile(envFile)
	}

	cfg := &Config{
		Port:               getEnvString("PORT", "3000"),
		ServerReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		ServerIdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		GinMode:            getEnvString("GIN_MODE", "debug"),

		SiteName:                siteName(),
		GraphQLEndpoint:         getEnvString("SITECORE_EXPERIENCE_EDGE_ENDPOINT", DefaultEdgeEndpoint),
		APIKey:                  getEnvString("SITECORE_API_KEY", DefaultAPIKey),
		APIHost:                 getEnvString("SITECORE_API_HOST", ""),
		LayoutConfigurationName: getEnvString("SITECORE_LAYOUT_CONFIGURATION_NAME", DefaultLayoutServiceName),
		FetchWith:               getEnvString("FETCH_WITH", FetchWithREST),
		DefaultLanguage:         getEnvString("DEFAULT_LANGUAGE", "en"),
		SitecoreEdgeURL:         getEnvString("SITECORE_EDGE_URL", DefaultSitecoreEdgeURL),
		HTTPClientTimeout:       getEnvDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),

		LayoutCacheTTL:       getEnvDuration("LAYOUT_CACHE_TTL", 5*time.Minute),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", time.Minute),

		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		LogJSON:      getEnvBool("LOG_JSON", true),
		LogToFile:    getEnvBool("LOG_TO_FILE", false),
		LogDirectory: getEnvString("LOG_DIRECTORY", "logs"),

		// secrets are read without override notices
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminTokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 24*time.Hour),
		PerfMaxMarkers: getEnvInt("PERF_MAX_MARKERS", 10000),
	}

	return cfg
}

// UsesGraphQL reports whether layout data is fetched from Experience Edge
func (c *Config) UsesGraphQL() bool {
	return c.FetchWith == FetchWithGraphQL
}

// siteName prefers SITECORE_SITE_NAME. SITECORE_JSS_APP_NAME is deprecated
// but still honored.
func siteName() string {
	if name := os.Getenv("SITECORE_SITE_NAME"); name != "" {
		return name
	}
	if name := os.Getenv("SITECORE_JSS_APP_NAME"); name != "" {
		Logger.Printf("Config: SITECORE_JSS_APP_NAME is deprecated, use SITECORE_SITE_NAME instead")
		return name
	}
	return ""
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	Logger.Println("Loading configuration overrides from .env file...")
	if err := godotenv.Load(path); err != nil {
		Logger.Printf("Failed to load %s: %v", path, err)
	}
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				Logger.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			Logger.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				Logger.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		secs, convErr := strconv.Atoi(valStr)
		if convErr != nil || secs < 0 {
			return defaultValue
		}
		val = time.Duration(secs) * time.Second
	}
	if val != defaultValue {
		Logger.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
	}
	return val
}
