package cleanup

import (
	"time"

	"github.com/jssgo/jss-edge/pkg/config"
)

// Config holds cleanup worker configuration
type Config struct {
	CleanupInterval time.Duration
}

// NewConfig creates a cleanup configuration from the application config
func NewConfig(cfg *config.Config) *Config {
	interval := cfg.CacheCleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &Config{CleanupInterval: interval}
}
