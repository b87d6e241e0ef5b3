// Package stores provides concrete cache store implementations
package stores

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/infrastructure/caching/types"
)

// LayoutsStore caches layout service responses with site isolation
type LayoutsStore struct {
	siteCaches map[string]*types.SiteLayoutCache
	ttl        time.Duration
	now        func() time.Time
	mu         sync.RWMutex
}

// NewLayoutsStore creates a layout cache whose entries live for ttl
func NewLayoutsStore(ttl time.Duration) *LayoutsStore {
	return &LayoutsStore{
		siteCaches: make(map[string]*types.SiteLayoutCache),
		ttl:        ttl,
		now:        time.Now,
	}
}

// TTL returns the entry lifetime
func (ls *LayoutsStore) TTL() time.Duration {
	return ls.ttl
}

// InitializeSite creates cache structures for a site
func (ls *LayoutsStore) InitializeSite(siteName string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.siteCaches[siteName] == nil {
		ls.siteCaches[siteName] = &types.SiteLayoutCache{
			Entries: make(map[string]*types.LayoutEntry),
		}
	}
}

// GetSiteCache safely retrieves a site's layout cache
func (ls *LayoutsStore) GetSiteCache(siteName string) (*types.SiteLayoutCache, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	cache, exists := ls.siteCaches[siteName]
	return cache, exists
}

// BuildKey creates the cache key for a route in a language
func (ls *LayoutsStore) BuildKey(itemPath, language string) string {
	return strings.ToLower(language) + ":" + itemPath
}

// Get returns cached layout data that has not expired
func (ls *LayoutsStore) Get(siteName, itemPath, language string) (*layout.LayoutServiceData, bool) {
	cache, exists := ls.GetSiteCache(siteName)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	entry, exists := cache.Entries[ls.BuildKey(itemPath, language)]
	if !exists || entry.Expired(ls.ttl, ls.now()) {
		return nil, false
	}
	return entry.Data, true
}

// Set stores layout data for a route
func (ls *LayoutsStore) Set(siteName, itemPath, language string, data *layout.LayoutServiceData) {
	ls.InitializeSite(siteName)
	cache, _ := ls.GetSiteCache(siteName)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Entries[ls.BuildKey(itemPath, language)] = &types.LayoutEntry{
		Data:        data,
		ItemPath:    itemPath,
		Language:    language,
		LastUpdated: ls.now().UTC(),
	}
}

// InvalidateSite drops every cached layout for a site and returns the count
func (ls *LayoutsStore) InvalidateSite(siteName string) int {
	cache, exists := ls.GetSiteCache(siteName)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	count := len(cache.Entries)
	cache.Entries = make(map[string]*types.LayoutEntry)
	return count
}

// PurgeExpired removes expired entries for a site and returns how many were removed
func (ls *LayoutsStore) PurgeExpired(siteName string) int {
	cache, exists := ls.GetSiteCache(siteName)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	now := ls.now()
	removed := 0
	for key, entry := range cache.Entries {
		if entry.Expired(ls.ttl, now) {
			delete(cache.Entries, key)
			removed++
		}
	}
	return removed
}

// Sites returns the names of sites with a cache, sorted
func (ls *LayoutsStore) Sites() []string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	sites := make([]string, 0, len(ls.siteCaches))
	for name := range ls.siteCaches {
		sites = append(sites, name)
	}
	sort.Strings(sites)
	return sites
}

// Summary returns entry counts for a site's cache
func (ls *LayoutsStore) Summary(siteName string) map[string]any {
	summary := map[string]any{"entries": 0, "expired": 0, "ttl": ls.ttl.String()}

	cache, exists := ls.GetSiteCache(siteName)
	if !exists {
		return summary
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	now := ls.now()
	expired := 0
	for _, entry := range cache.Entries {
		if entry.Expired(ls.ttl, now) {
			expired++
		}
	}
	summary["entries"] = len(cache.Entries)
	summary["expired"] = expired
	return summary
}
