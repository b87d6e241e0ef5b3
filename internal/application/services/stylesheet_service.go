// Package services provides application-level services for stylesheet and layout operations
package services

import (
	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
)

// StylesheetService resolves FEAAS library stylesheets for layout data
type StylesheetService struct {
	resolver       *feaas.Resolver
	defaultEdgeURL string
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewStylesheetService creates a new stylesheet service. defaultEdgeURL is
// used when a caller does not supply one.
func NewStylesheetService(
	resolver *feaas.Resolver,
	defaultEdgeURL string,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *StylesheetService {
	return &StylesheetService{
		resolver:       resolver,
		defaultEdgeURL: defaultEdgeURL,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// Resolve returns the stylesheet links for every library used in the layout
func (s *StylesheetService) Resolve(data *layout.LayoutServiceData, edgeURL, siteName string) []feaas.StylesheetLink {
	marker := s.perfTracker.StartOperation("resolve_stylesheets", siteName)
	defer marker.Complete()

	links := s.resolver.Links(data, s.edgeURL(edgeURL))

	marker.AddMetadata("linkCount", len(links))
	marker.SetSuccess(true)
	s.logger.Feaas().Debug("Resolved library stylesheets", "siteName", siteName, "count", len(links))
	return links
}

// StylesheetURL returns the stylesheet URL for a single library id
func (s *StylesheetService) StylesheetURL(id string, pageState layout.PageState, edgeURL string) string {
	return s.resolver.StylesheetURL(id, pageState, s.edgeURL(edgeURL))
}

func (s *StylesheetService) edgeURL(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultEdgeURL
}
