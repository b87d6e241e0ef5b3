package performance

import (
	"fmt"
	"maps"
	"runtime"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.Mutex
	started time.Time
	config  *TrackerConfig
	seq     uint64
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int           `json:"maxMarkers"` // Maximum number of markers to retain
	Retention  time.Duration `json:"retention"`  // How long completed markers are kept
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
		Retention:  time.Hour,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation, siteName string) *Marker {
	marker := &Marker{
		Operation: operation,
		SiteName:  siteName,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
		Success:   true, // Assume success until proven otherwise
		tracker:   t,
	}

	t.mu.Lock()
	t.seq++
	t.markers[fmt.Sprintf("%s_%s_%d", siteName, operation, t.seq)] = marker
	overflow := len(t.markers) > t.config.MaxMarkers
	t.mu.Unlock()

	if overflow {
		t.Cleanup()
	}
	return marker
}

// GetRecentMetrics returns copies of markers completed within the duration
func (t *Tracker) GetRecentMetrics(siteName string, within time.Duration) []Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-within)
	var metrics []Marker
	for _, marker := range t.markers {
		if marker.SiteName == siteName && marker.Completed && marker.EndTime.After(cutoff) {
			metrics = append(metrics, marker.snapshot())
		}
	}
	return metrics
}

// GetActiveOperations returns currently running operations for a site
func (t *Tracker) GetActiveOperations(siteName string) []Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	var active []Marker
	for _, marker := range t.markers {
		if marker.SiteName == siteName && !marker.Completed {
			m := marker.snapshot()
			m.Duration = time.Since(marker.StartTime)
			active = append(active, m)
		}
	}
	return active
}

// Cleanup drops completed markers past retention and trims to MaxMarkers
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := time.Now().Add(-t.config.Retention)
	for id, marker := range t.markers {
		if marker.Completed && marker.EndTime.Before(cutoff) {
			delete(t.markers, id)
		}
	}

	if len(t.markers) > t.config.MaxMarkers {
		for id, marker := range t.markers {
			if len(t.markers) <= t.config.MaxMarkers/2 {
				break
			}
			if marker.Completed {
				delete(t.markers, id)
			}
		}
	}
}

// GetOverallStats returns overall tracker statistics
func (t *Tracker) GetOverallStats() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	activeCount := 0
	completedCount := 0
	for _, marker := range t.markers {
		if marker.Completed {
			completedCount++
		} else {
			activeCount++
		}
	}

	return map[string]any{
		"trackerUptime":       time.Since(t.started).String(),
		"totalMarkers":        len(t.markers),
		"activeOperations":    activeCount,
		"completedOperations": completedCount,
		"memoryUsageMB":       memStats.Alloc / (1024 * 1024),
	}
}

// snapshot copies the marker so it can be read after t.mu is released.
// The caller holds t.mu.
func (m *Marker) snapshot() Marker {
	c := *m
	c.Metadata = maps.Clone(m.Metadata)
	c.tracker = nil
	return c
}
