// Package types defines cache entry structures
package types

import (
	"sync"
	"time"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

// SiteLayoutCache holds cached layout data for a single site
type SiteLayoutCache struct {
	Entries map[string]*LayoutEntry // "language:itemPath" -> entry
	Mu      sync.RWMutex            // Exported for access
}

// LayoutEntry is one cached layout service response
type LayoutEntry struct {
	Data        *layout.LayoutServiceData `json:"data"`
	ItemPath    string                    `json:"itemPath"`
	Language    string                    `json:"language"`
	LastUpdated time.Time                 `json:"lastUpdated"`
}

// Expired reports whether the entry is older than ttl at now
func (e *LayoutEntry) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.LastUpdated) > ttl
}
