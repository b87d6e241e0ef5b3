package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
	"github.com/jssgo/jss-edge/internal/infrastructure/caching/stores"
	"github.com/jssgo/jss-edge/internal/infrastructure/layoutservice"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/logging"
	"github.com/jssgo/jss-edge/internal/infrastructure/observability/performance"
)

type fakeClient struct {
	mu       sync.Mutex
	data     *layout.LayoutServiceData
	err      error
	requests []layoutservice.Request
}

func (f *fakeClient) FetchLayoutData(_ context.Context, req layoutservice.Request) (*layout.LayoutServiceData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeClient) Name() string { return "fake" }

func libraryLayout(pageState layout.PageState, id string) *layout.LayoutServiceData {
	return &layout.LayoutServiceData{
		Sitecore: layout.LayoutServiceContextData{
			Context: layout.LayoutServiceContext{PageState: pageState},
			Route: &layout.RouteData{
				Placeholders: layout.Placeholders{{
					Name: "main",
					Renderings: []layout.RenderingNode{
						layout.NewComponentNode(&layout.ComponentRendering{Params: layout.Params{"LibraryId": id}}),
					},
				}},
			},
		},
	}
}

func newStylesheetService(defaultEdge string) *StylesheetService {
	return NewStylesheetService(
		feaas.NewResolver(feaas.DefaultServerURLs()),
		defaultEdge,
		logging.NewDiscardLogger(),
		performance.NewTracker(performance.DefaultTrackerConfig()),
	)
}

func newLayoutService(client layoutservice.Client) *LayoutService {
	return NewLayoutService(
		client,
		stores.NewLayoutsStore(time.Minute),
		newStylesheetService(""),
		"en",
		logging.NewDiscardLogger(),
		performance.NewTracker(performance.DefaultTrackerConfig()),
	)
}

func TestStylesheetServiceDefaultEdgeURL(t *testing.T) {
	svc := newStylesheetService("https://edge-platform-qa.sitecore-staging.cloud")
	data := libraryLayout(layout.PageStateNormal, "lib")

	links := svc.Resolve(data, "", "jss")
	require.Len(t, links, 1)
	assert.Equal(t, "https://feaasstaging.blob.core.windows.net/styles/lib/published.css", links[0].Href)

	links = svc.Resolve(data, "https://edge-platform.sitecorecloud.io", "jss")
	require.Len(t, links, 1)
	assert.Equal(t, "https://feaas.blob.core.windows.net/styles/lib/published.css", links[0].Href)

	assert.Equal(t,
		"https://feaasstaging.blob.core.windows.net/styles/lib/staged.css",
		svc.StylesheetURL("lib", layout.PageStateEdit, ""))
}

func TestLayoutServiceFetchUsesCache(t *testing.T) {
	client := &fakeClient{data: libraryLayout(layout.PageStateNormal, "lib")}
	svc := newLayoutService(client)

	first, err := svc.Fetch(context.Background(), "jss", "/", "")
	require.NoError(t, err)
	second, err := svc.Fetch(context.Background(), "jss", "/", "en")
	require.NoError(t, err)

	assert.Same(t, first, second)
	require.Len(t, client.requests, 1)
	assert.Equal(t, layoutservice.Request{ItemPath: "/", Language: "en", SiteName: "jss"}, client.requests[0])

	assert.Equal(t, 1, svc.InvalidateSite("jss"))
	_, err = svc.Fetch(context.Background(), "jss", "/", "en")
	require.NoError(t, err)
	assert.Len(t, client.requests, 2)
	assert.Equal(t, 1, svc.CacheSummary("jss")["entries"])
}

func TestLayoutServiceFetchError(t *testing.T) {
	svc := newLayoutService(&fakeClient{err: &layoutservice.StatusError{StatusCode: 503}})

	_, err := svc.Fetch(context.Background(), "jss", "/", "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, layoutservice.ErrUnexpectedStatus))
	assert.Equal(t, 0, svc.CacheSummary("jss")["entries"], "failures are not cached")
}

func TestLayoutServicePageHead(t *testing.T) {
	svc := newLayoutService(&fakeClient{data: libraryLayout(layout.PageStatePreview, "lib")})

	head, err := svc.PageHead(context.Background(), "jss", "/", "en", "")
	require.NoError(t, err)
	require.NotNil(t, head.Layout)
	assert.Equal(t, []feaas.StylesheetLink{{
		Href: "https://feaas.blob.core.windows.net/styles/lib/staged.css",
		Rel:  "stylesheet",
	}}, head.Links)
}

func TestLayoutServiceLogsPlaceholderNames(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: true,
		Console:         &buf,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelDebug,
	})
	require.NoError(t, err)

	svc := NewLayoutService(
		&fakeClient{data: libraryLayout(layout.PageStateNormal, "lib")},
		stores.NewLayoutsStore(time.Minute),
		newStylesheetService(""),
		"en",
		logger,
		performance.NewTracker(nil),
	)
	_, err = svc.Fetch(context.Background(), "jss", "/", "en")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"placeholders":["main"]`)
}
