package layoutservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

const layoutQuery = `query JssLayoutQuery($site: String!, $routePath: String!, $language: String!) {
  layout(site: $site, routePath: $routePath, language: $language) {
    item {
      rendered
    }
  }
}`

// GraphQLConfig configures the Experience Edge layout client
type GraphQLConfig struct {
	Endpoint   string
	APIKey     string
	SiteName   string
	HTTPClient *http.Client
}

// GraphQLClient reads layout data through the layout GraphQL query
type GraphQLClient struct {
	cfg    GraphQLConfig
	client *http.Client
}

// NewGraphQLClient creates an Experience Edge layout client
func NewGraphQLClient(cfg GraphQLConfig) *GraphQLClient {
	return &GraphQLClient{cfg: cfg, client: defaultHTTPClient(cfg.HTTPClient)}
}

func (c *GraphQLClient) Name() string { return "graphql" }

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data struct {
		Layout *struct {
			Item *struct {
				Rendered json.RawMessage `json:"rendered"`
			} `json:"item"`
		} `json:"layout"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// FetchLayoutData runs the layout query. A missing item yields layout data
// with a null route in the requested language.
func (c *GraphQLClient) FetchLayoutData(ctx context.Context, req Request) (*layout.LayoutServiceData, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query: layoutQuery,
		Variables: map[string]string{
			"site":      siteOr(req.SiteName, c.cfg.SiteName),
			"routePath": req.ItemPath,
			"language":  req.Language,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create layout query request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("sc_apikey", c.cfg.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to query layout data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result graphQLResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode layout query response: %w", err)
	}
	if len(result.Errors) > 0 {
		messages := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			messages[i] = e.Message
		}
		return nil, errors.New("layout query failed: " + strings.Join(messages, "; "))
	}

	if result.Data.Layout == nil || result.Data.Layout.Item == nil || isNull(result.Data.Layout.Item.Rendered) {
		return layout.EmptyLayoutData(req.Language), nil
	}

	var data layout.LayoutServiceData
	if err := json.Unmarshal(result.Data.Layout.Item.Rendered, &data); err != nil {
		return nil, fmt.Errorf("failed to decode rendered layout: %w", err)
	}
	return &data, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
