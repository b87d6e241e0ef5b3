package layoutservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

// RestConfig configures the REST layout service client
type RestConfig struct {
	APIHost           string
	APIKey            string
	SiteName          string
	ConfigurationName string // defaults to "jss"
	Tracking          *bool  // defaults to true
	HTTPClient        *http.Client
}

// RestClient reads layout data from /sitecore/api/layout/render
type RestClient struct {
	cfg    RestConfig
	client *http.Client
}

// NewRestClient creates a REST layout service client
func NewRestClient(cfg RestConfig) *RestClient {
	if cfg.ConfigurationName == "" {
		cfg.ConfigurationName = "jss"
	}
	return &RestClient{cfg: cfg, client: defaultHTTPClient(cfg.HTTPClient)}
}

func (c *RestClient) Name() string { return "rest" }

// FetchLayoutData requests the rendered layout for an item path. A 404
// still carries layout data (with a null route) and is not an error.
func (c *RestClient) FetchLayoutData(ctx context.Context, req Request) (*layout.LayoutServiceData, error) {
	endpoint, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch layout data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if resp.StatusCode == http.StatusNotFound && len(strings.TrimSpace(string(body))) == 0 {
		return layout.EmptyLayoutData(req.Language), nil
	}

	var data layout.LayoutServiceData
	if err := json.Unmarshal(body, &data); err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return layout.EmptyLayoutData(req.Language), nil
		}
		return nil, fmt.Errorf("failed to decode layout data: %w", err)
	}
	return &data, nil
}

func (c *RestClient) buildURL(req Request) (string, error) {
	if c.cfg.APIHost == "" {
		return "", fmt.Errorf("layout service host is not configured")
	}
	base, err := url.Parse(strings.TrimRight(c.cfg.APIHost, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid layout service host %q: %w", c.cfg.APIHost, err)
	}
	base = base.JoinPath("sitecore", "api", "layout", "render", c.cfg.ConfigurationName)

	tracking := true
	if c.cfg.Tracking != nil {
		tracking = *c.cfg.Tracking
	}

	q := url.Values{}
	q.Set("item", req.ItemPath)
	q.Set("sc_apikey", c.cfg.APIKey)
	q.Set("sc_site", siteOr(req.SiteName, c.cfg.SiteName))
	q.Set("sc_lang", req.Language)
	q.Set("tracking", fmt.Sprintf("%t", tracking))
	base.RawQuery = q.Encode()

	return base.String(), nil
}
