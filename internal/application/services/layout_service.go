package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
	"github.com/jssgo/jss-edge/internal/infrastructure/caching/stores"
	"github.com/jssgo/jss-edge/internal/infrastructure/layoutservice"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
)

// PageHead is a route's layout data with the stylesheet links it needs
type PageHead struct {
	Layout *layout.LayoutServiceData `json:"layout"`
	Links  []feaas.StylesheetLink    `json:"links"`
}

// LayoutService fetches layout data through the cache
type LayoutService struct {
	client          layoutservice.Client
	cache           *stores.LayoutsStore
	stylesheets     *StylesheetService
	defaultLanguage string
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewLayoutService creates a new layout service
func NewLayoutService(
	client layoutservice.Client,
	cache *stores.LayoutsStore,
	stylesheets *StylesheetService,
	defaultLanguage string,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *LayoutService {
	return &LayoutService{
		client:          client,
		cache:           cache,
		stylesheets:     stylesheets,
		defaultLanguage: defaultLanguage,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// Fetch returns layout data for a route, using the cache when possible
func (s *LayoutService) Fetch(ctx context.Context, siteName, itemPath, language string) (*layout.LayoutServiceData, error) {
	if language == "" {
		language = s.defaultLanguage
	}

	start := time.Now()
	marker := s.perfTracker.StartOperation("fetch_layout", siteName)
	defer marker.Complete()

	key := s.cache.BuildKey(itemPath, language)
	if data, ok := s.cache.Get(siteName, itemPath, language); ok {
		marker.AddCacheHit()
		marker.SetSuccess(true)
		s.logger.LogCacheOperation("get", key, true, time.Since(start), siteName)
		return data, nil
	}
	marker.AddCacheMiss()
	s.logger.LogCacheOperation("get", key, false, time.Since(start), siteName)

	data, err := s.client.FetchLayoutData(ctx, layoutservice.Request{
		ItemPath: itemPath,
		Language: language,
		SiteName: siteName,
	})
	if err != nil {
		marker.SetError(err)
		s.logger.LogError(logging.ChannelLayout, "fetch_layout", err, siteName, map[string]any{
			"itemPath": itemPath,
			"language": language,
			"client":   s.client.Name(),
		})
		return nil, fmt.Errorf("failed to fetch layout for %s: %w", itemPath, err)
	}

	s.cache.Set(siteName, itemPath, language, data)
	marker.SetSuccess(true)
	logger := s.logger.WithContext(logging.ChannelLayout, ctx)
	logger.Info("Fetched layout data",
		"siteName", siteName, "itemPath", itemPath, "language", language,
		"client", s.client.Name(), "duration", time.Since(start))
	if data != nil && data.Sitecore.Route != nil {
		logger.Debug("Route placeholders", "itemPath", itemPath, "placeholders", data.Sitecore.Route.Placeholders.Names())
	}
	return data, nil
}

// PageHead fetches a route's layout and resolves its stylesheet links
func (s *LayoutService) PageHead(ctx context.Context, siteName, itemPath, language, edgeURL string) (*PageHead, error) {
	data, err := s.Fetch(ctx, siteName, itemPath, language)
	if err != nil {
		return nil, err
	}
	return &PageHead{
		Layout: data,
		Links:  s.stylesheets.Resolve(data, edgeURL, siteName),
	}, nil
}

// InvalidateSite drops a site's cached layouts
func (s *LayoutService) InvalidateSite(siteName string) int {
	removed := s.cache.InvalidateSite(siteName)
	s.logger.Cache().Info("Invalidated layout cache", "siteName", siteName, "removed", removed)
	return removed
}

// CacheSummary reports the state of a site's layout cache
func (s *LayoutService) CacheSummary(siteName string) map[string]any {
	return s.cache.Summary(siteName)
}
