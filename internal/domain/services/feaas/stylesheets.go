// Package feaas resolves FEAAS component library stylesheets referenced by a
// layout rendering tree.
package feaas

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

const (
	// SitecoreEdgeURLDefault is the Sitecore Edge Platform URL used when none is given
	SitecoreEdgeURLDefault = "https://edge-platform.sitecorecloud.io"

	ServerURLStaging = "https://feaasstaging.blob.core.windows.net"
	ServerURLBeta    = "https://feaasbeta.blob.core.windows.net"
	ServerURLProd    = "https://feaas.blob.core.windows.net"
)

// Revision selects which stylesheet build is served
type Revision string

const (
	// RevisionStaged is served in editing and preview modes
	RevisionStaged Revision = "staged"
	// RevisionPublished is served in normal mode
	RevisionPublished Revision = "published"
)

const relStylesheet = "stylesheet"

// libraryIDPattern matches library ids embedded in class names, e.g. -library--foo.
// The id ends at any Unicode space, not just ASCII whitespace.
var libraryIDPattern = regexp.MustCompile(`-library--([^\s\v\p{Z}\x{FEFF}]+)`)

// StylesheetLink describes a <link> tag for a library stylesheet
type StylesheetLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

// ServerURLs holds the stylesheet hosts and the default edge URL
type ServerURLs struct {
	Staging        string
	Beta           string
	Production     string
	DefaultEdgeURL string
}

// DefaultServerURLs returns the platform hosts
func DefaultServerURLs() ServerURLs {
	return ServerURLs{
		Staging:        ServerURLStaging,
		Beta:           ServerURLBeta,
		Production:     ServerURLProd,
		DefaultEdgeURL: SitecoreEdgeURLDefault,
	}
}

// Resolver walks rendering trees and builds library stylesheet links.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	urls ServerURLs
}

// NewResolver creates a resolver for the given hosts
func NewResolver(urls ServerURLs) *Resolver {
	return &Resolver{urls: urls}
}

// ExtractLibraryID returns the run of non-whitespace after "-library--" in s
func ExtractLibraryID(s string) string {
	m := libraryIDPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// Links returns one stylesheet link per library id used anywhere in the
// route, in first-seen order. An empty edgeURL selects the default.
func (r *Resolver) Links(data *layout.LayoutServiceData, edgeURL string) []StylesheetLink {
	ids := r.LibraryIDs(data)
	links := make([]StylesheetLink, 0, len(ids))
	for _, id := range ids {
		links = append(links, StylesheetLink{
			Href: r.StylesheetURL(id, data.Sitecore.Context.PageState, edgeURL),
			Rel:  relStylesheet,
		})
	}
	return links
}

// LibraryIDs returns the unique library ids used in the route, in first-seen order
func (r *Resolver) LibraryIDs(data *layout.LayoutServiceData) []string {
	if data == nil || data.Sitecore.Route == nil {
		return []string{}
	}
	ids := newIDSet()
	traverseRoute(data.Sitecore.Route, ids)
	if ids.order == nil {
		return []string{}
	}
	return ids.order
}

// StylesheetURL builds the stylesheet URL for a library id
func (r *Resolver) StylesheetURL(id string, pageState layout.PageState, edgeURL string) string {
	return fmt.Sprintf("%s/styles/%s/%s.css", r.ServerURL(edgeURL), id, RevisionFor(pageState))
}

// ServerURL picks the stylesheet host matching the edge platform environment
func (r *Resolver) ServerURL(edgeURL string) string {
	if edgeURL == "" {
		edgeURL = r.urls.DefaultEdgeURL
	}
	edge := strings.ToLower(edgeURL)

	switch {
	case strings.Contains(edge, "edge-platform-dev"),
		strings.Contains(edge, "edge-platform-qa"),
		strings.Contains(edge, "edge-platform-staging"):
		return r.urls.Staging
	case strings.Contains(edge, "edge-platform-pre-production"):
		return r.urls.Beta
	default:
		return r.urls.Production
	}
}

// RevisionFor returns staged for any present page state other than normal
func RevisionFor(pageState layout.PageState) Revision {
	if pageState != "" && !pageState.IsNormal() {
		return RevisionStaged
	}
	return RevisionPublished
}
