// Package performance provides operation markers for timing JSS Edge work
package performance

import (
	"time"
)

// Marker represents a single performance measurement point
type Marker struct {
	Operation   string         `json:"operation"`       // e.g. "layout:fetch", "feaas:resolve"
	SiteName    string         `json:"site"`            // Site the operation ran for
	StartTime   time.Time      `json:"startTime"`       // When the operation started
	EndTime     time.Time      `json:"endTime"`         // When the operation completed
	Duration    time.Duration  `json:"duration"`        // Total operation duration
	Success     bool           `json:"success"`         // Whether the operation completed successfully
	Error       string         `json:"error,omitempty"` // Error message if operation failed
	Metadata    map[string]any `json:"metadata"`        // Additional operation-specific data
	CacheHits   int            `json:"cacheHits"`
	CacheMisses int            `json:"cacheMisses"`
	Completed   bool           `json:"completed"` // Whether Complete() has been called

	tracker *Tracker
}

func (m *Marker) lock() func() {
	if m.tracker == nil {
		return func() {}
	}
	m.tracker.mu.Lock()
	return m.tracker.mu.Unlock
}

// Complete marks the operation as finished and calculates final metrics
func (m *Marker) Complete() {
	defer m.lock()()
	if m.Completed {
		return
	}

	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true
}

// SetSuccess sets the success status of the operation
func (m *Marker) SetSuccess(success bool) {
	defer m.lock()()
	m.Success = success
}

// SetError sets an error message and marks the operation as failed
func (m *Marker) SetError(err error) {
	if err == nil {
		return
	}
	defer m.lock()()
	m.Error = err.Error()
	m.Success = false
}

// AddMetadata adds key-value metadata to the marker
func (m *Marker) AddMetadata(key string, value any) {
	defer m.lock()()
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

func (m *Marker) AddCacheHit() {
	defer m.lock()()
	m.CacheHits++
}

func (m *Marker) AddCacheMiss() {
	defer m.lock()()
	m.CacheMisses++
}

// GetCacheHitRatio returns the cache hit ratio (0.0 to 1.0)
func (m *Marker) GetCacheHitRatio() float64 {
	defer m.lock()()
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0.0
	}
	return float64(m.CacheHits) / float64(total)
}
