// Package layoutservice fetches layout data from Sitecore over REST or the
// Experience Edge GraphQL endpoint.
package layoutservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/pkg/config"
)

// ErrUnexpectedStatus is matched by StatusError
var ErrUnexpectedStatus = errors.New("unexpected layout service status")

// StatusError reports a non-successful layout service response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("layout service returned status %d", e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Request identifies the route to fetch
type Request struct {
	ItemPath string
	Language string
	SiteName string // empty uses the client's site
}

// Client fetches layout data for a route
type Client interface {
	FetchLayoutData(ctx context.Context, req Request) (*layout.LayoutServiceData, error)
	Name() string
}

// NewClient selects the GraphQL client when FETCH_WITH is GraphQL and the
// REST client otherwise
func NewClient(cfg *config.Config) Client {
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	if cfg.UsesGraphQL() {
		return NewGraphQLClient(GraphQLConfig{
			Endpoint:   cfg.GraphQLEndpoint,
			APIKey:     cfg.APIKey,
			SiteName:   cfg.SiteName,
			HTTPClient: httpClient,
		})
	}
	return NewRestClient(RestConfig{
		APIHost:           cfg.APIHost,
		APIKey:            cfg.APIKey,
		SiteName:          cfg.SiteName,
		ConfigurationName: cfg.LayoutConfigurationName,
		HTTPClient:        httpClient,
	})
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func siteOr(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}
