package feaas

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

func decodeLayout(t *testing.T, s string) *layout.LayoutServiceData {
	t.Helper()
	var data layout.LayoutServiceData
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	return &data
}

func component(params layout.Params, fields layout.Fields) layout.RenderingNode {
	return layout.NewComponentNode(&layout.ComponentRendering{Params: params, Fields: fields})
}

func routeWith(pageState layout.PageState, nodes ...layout.RenderingNode) *layout.LayoutServiceData {
	return &layout.LayoutServiceData{
		Sitecore: layout.LayoutServiceContextData{
			Context: layout.LayoutServiceContext{PageState: pageState},
			Route: &layout.RouteData{
				Placeholders: layout.Placeholders{{Name: "main", Renderings: nodes}},
			},
		},
	}
}

func field(value string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"value": value})
	return b
}

func TestExtractLibraryID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo-library--mylib bar", "mylib"},
		{"-library--a1_b-2", "a1_b-2"},
		{"x -library--first -library--second", "first"},
		{"-library--tab\there", "tab"},
		{"-library--nbsp\u00a0tail", "nbsp"},
		{"-library--", ""},
		{"library--foo", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractLibraryID(tt.in), tt.in)
	}
}

func TestLinksNoRoute(t *testing.T) {
	r := NewResolver(DefaultServerURLs())

	assert.Equal(t, []StylesheetLink{}, r.Links(&layout.LayoutServiceData{}, ""))
	assert.Equal(t, []StylesheetLink{}, r.Links(nil, ""))
	assert.Equal(t, []string{}, r.LibraryIDs(&layout.LayoutServiceData{}))
}

func TestLinksSingleLibraryParam(t *testing.T) {
	r := NewResolver(DefaultServerURLs())
	data := routeWith(layout.PageStateNormal, component(layout.Params{"LibraryId": "foo"}, nil))

	want := []StylesheetLink{{Href: "https://feaas.blob.core.windows.net/styles/foo/published.css", Rel: "stylesheet"}}
	if diff := cmp.Diff(want, r.Links(data, "")); diff != "" {
		t.Errorf("Links() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinksDeduplicates(t *testing.T) {
	r := NewResolver(DefaultServerURLs())
	data := routeWith(layout.PageStateNormal,
		component(layout.Params{"LibraryId": "foo"}, nil),
		component(layout.Params{"LibraryId": "foo"}, nil),
	)

	links := r.Links(data, "")
	require.Len(t, links, 1)
	assert.Equal(t, "https://feaas.blob.core.windows.net/styles/foo/published.css", links[0].Href)
}

func TestLibraryIDPrecedence(t *testing.T) {
	tests := []struct {
		name string
		node layout.RenderingNode
		want []string
	}{
		{
			name: "css styles beat library id param",
			node: component(layout.Params{"CSSStyles": "-library--css", "LibraryId": "param"}, nil),
			want: []string{"css"},
		},
		{
			name: "library id param when css styles do not match",
			node: component(layout.Params{"CSSStyles": "plain", "LibraryId": "param"}, nil),
			want: []string{"param"},
		},
		{
			name: "unproductive params fall through to fields",
			node: component(layout.Params{"CSSStyles": "plain"}, layout.Fields{"LibraryId": field("fromfield")}),
			want: []string{"fromfield"},
		},
		{
			name: "productive params skip fields",
			node: component(layout.Params{"LibraryId": "param"}, layout.Fields{"LibraryId": field("fromfield")}),
			want: []string{"param"},
		},
		{
			name: "field css styles beat field library id",
			node: component(nil, layout.Fields{"CSSStyles": field("a -library--fcss"), "LibraryId": field("fid")}),
			want: []string{"fcss"},
		},
		{
			name: "html element class",
			node: layout.NewHTMLElementNode(&layout.HtmlElementRendering{
				Name:       "div",
				Attributes: layout.Attributes{"class": "grid -library--html"},
			}),
			want: []string{"html"},
		},
		{
			name: "non-string class is ignored",
			node: layout.NewHTMLElementNode(&layout.HtmlElementRendering{
				Attributes: layout.Attributes{"class": 5},
			}),
			want: []string{},
		},
		{
			name: "component class attribute after empty params and fields",
			node: layout.NewComponentNode(&layout.ComponentRendering{
				Params:     layout.Params{},
				Fields:     layout.Fields{},
				Attributes: layout.Attributes{"class": "-library--attr"},
			}),
			want: []string{"attr"},
		},
		{
			name: "nothing matches",
			node: component(layout.Params{"Other": "x"}, layout.Fields{"Title": field("t")}),
			want: []string{},
		},
	}

	r := NewResolver(DefaultServerURLs())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.LibraryIDs(routeWith("", tt.node)))
		})
	}
}

func TestLinksTraversalOrder(t *testing.T) {
	data := decodeLayout(t, `{
	  "sitecore": {
	    "context": { "pageState": "normal" },
	    "route": {
	      "fields": { "LibraryId": { "value": "route" } },
	      "placeholders": {
	        "zeta": [
	          {
	            "componentName": "Outer",
	            "params": { "LibraryId": "outer" },
	            "placeholders": {
	              "inner": [
	                { "componentName": "Inner", "params": { "CSSStyles": "-library--inner" } },
	                { "name": "span", "attributes": { "class": "-library--element" } }
	              ]
	            }
	          },
	          { "componentName": "Second", "params": { "LibraryId": "second" } }
	        ],
	        "alpha": [
	          { "componentName": "Again", "params": { "LibraryId": "outer" } },
	          { "componentName": "Last", "fields": { "CSSStyles": { "value": "-library--last" } } }
	        ]
	      }
	    }
	  }
	}`)

	r := NewResolver(DefaultServerURLs())
	want := []string{"route", "outer", "inner", "element", "second", "last"}
	if diff := cmp.Diff(want, r.LibraryIDs(data)); diff != "" {
		t.Errorf("LibraryIDs() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, r.Links(data, ""), len(want))
}

func TestMalformedShapesYieldNoID(t *testing.T) {
	tests := []struct {
		name        string
		routeFields string
		node        string
		want        []string
	}{
		{
			name: "array params fall through to fields",
			node: `{ "componentName": "A", "params": [], "fields": { "LibraryId": { "value": "f" } } }`,
			want: []string{"f", "b"},
		},
		{
			name: "array fields",
			node: `{ "componentName": "A", "fields": [] }`,
			want: []string{"b"},
		},
		{
			name: "string attributes",
			node: `{ "name": "div", "attributes": "x" }`,
			want: []string{"b"},
		},
		{
			name:        "array route fields",
			routeFields: `[]`,
			node:        `{ "componentName": "A" }`,
			want:        []string{"b"},
		},
	}

	r := NewResolver(DefaultServerURLs())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routeFields := tt.routeFields
			if routeFields == "" {
				routeFields = "{}"
			}
			data := decodeLayout(t, `{
			  "sitecore": {
			    "context": { "pageState": "normal" },
			    "route": {
			      "fields": `+routeFields+`,
			      "placeholders": {
			        "main": [ `+tt.node+`, { "componentName": "B", "params": { "LibraryId": "b" } } ]
			      }
			    }
			  }
			}`)
			if diff := cmp.Diff(tt.want, r.LibraryIDs(data)); diff != "" {
				t.Errorf("LibraryIDs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntegerPlaceholderKeysWalkFirst(t *testing.T) {
	data := decodeLayout(t, `{
	  "sitecore": {
	    "context": {},
	    "route": {
	      "placeholders": {
	        "b": [ { "componentName": "A", "params": { "LibraryId": "first" } } ],
	        "1": [ { "componentName": "B", "params": { "LibraryId": "second" } } ]
	      }
	    }
	  }
	}`)

	assert.Equal(t, []string{"second", "first"}, NewResolver(DefaultServerURLs()).LibraryIDs(data))
}

func TestHTMLElementDoesNotRecurse(t *testing.T) {
	data := decodeLayout(t, `{
	  "sitecore": {
	    "context": {},
	    "route": {
	      "placeholders": {
	        "main": [
	          {
	            "name": "div",
	            "attributes": { "class": "box" },
	            "placeholders": { "hidden": [ { "componentName": "X", "params": { "LibraryId": "hidden" } } ] }
	          }
	        ]
	      }
	    }
	  }
	}`)

	assert.Equal(t, []string{}, NewResolver(DefaultServerURLs()).LibraryIDs(data))
}

func TestRevisionFor(t *testing.T) {
	assert.Equal(t, RevisionPublished, RevisionFor(""))
	assert.Equal(t, RevisionPublished, RevisionFor(layout.PageStateNormal))
	assert.Equal(t, RevisionStaged, RevisionFor(layout.PageStateEdit))
	assert.Equal(t, RevisionStaged, RevisionFor(layout.PageStatePreview))
}

func TestLinksStagedRevision(t *testing.T) {
	r := NewResolver(DefaultServerURLs())
	data := routeWith(layout.PageStateEdit, component(layout.Params{"LibraryId": "foo"}, nil))

	links := r.Links(data, "")
	require.Len(t, links, 1)
	assert.Equal(t, "https://feaas.blob.core.windows.net/styles/foo/staged.css", links[0].Href)
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		edgeURL string
		want    string
	}{
		{"", ServerURLProd},
		{"https://edge-platform.sitecorecloud.io", ServerURLProd},
		{"https://edge-platform-dev.sitecore-staging.cloud", ServerURLStaging},
		{"https://EDGE-PLATFORM-QA.sitecore-staging.cloud", ServerURLStaging},
		{"https://edge-platform-staging.sitecore-staging.cloud", ServerURLStaging},
		{"https://edge-platform-pre-production.sitecorecloud.io", ServerURLBeta},
		{"https://Edge-Platform-Pre-Production.sitecorecloud.io", ServerURLBeta},
		{"https://contoso.example", ServerURLProd},
	}

	r := NewResolver(DefaultServerURLs())
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.ServerURL(tt.edgeURL), tt.edgeURL)
	}
}

func TestStylesheetURL(t *testing.T) {
	r := NewResolver(DefaultServerURLs())

	assert.Equal(t,
		"https://feaasstaging.blob.core.windows.net/styles/lib/staged.css",
		r.StylesheetURL("lib", layout.PageStatePreview, "https://edge-platform-qa.sitecore-staging.cloud"))
	assert.Equal(t,
		"https://feaasbeta.blob.core.windows.net/styles/lib/published.css",
		r.StylesheetURL("lib", layout.PageStateNormal, "https://edge-platform-pre-production.sitecorecloud.io"))
}

func TestInjectedServerURLs(t *testing.T) {
	r := NewResolver(ServerURLs{
		Staging:        "http://stage.local",
		Beta:           "http://beta.local",
		Production:     "http://prod.local",
		DefaultEdgeURL: "https://edge-platform-staging.local",
	})

	assert.Equal(t, "http://stage.local/styles/x/published.css", r.StylesheetURL("x", "", ""))
	assert.Equal(t, "http://prod.local/styles/x/published.css", r.StylesheetURL("x", "", "https://edge.example"))
}
