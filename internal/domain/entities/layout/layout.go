// Package layout provides domain entities for Sitecore layout service data
package layout

// PageState is the page mode reported by the layout service context
type PageState string

const (
	PageStateNormal  PageState = "normal"
	PageStateEdit    PageState = "edit"
	PageStatePreview PageState = "preview"
)

// IsNormal reports whether the state is present and equal to normal
func (s PageState) IsNormal() bool {
	return s == PageStateNormal
}

type (
	// LayoutServiceData is the top-level payload returned by the layout service
	LayoutServiceData struct {
		Sitecore LayoutServiceContextData `json:"sitecore"`
	}

	// LayoutServiceContextData carries the request context and the resolved route
	LayoutServiceContextData struct {
		Context LayoutServiceContext `json:"context"`
		Route   *RouteData           `json:"route"`
	}

	// LayoutServiceContext describes the page mode, language and site for a request
	LayoutServiceContext struct {
		PageEditing bool      `json:"pageEditing"`
		Language    string    `json:"language,omitempty"`
		PageState   PageState `json:"pageState,omitempty"`
		Site        *SiteInfo `json:"site,omitempty"`
	}

	SiteInfo struct {
		Name string `json:"name"`
	}

	// RouteData is the root of the rendering tree for a page
	RouteData struct {
		Name         string       `json:"name,omitempty"`
		DisplayName  string       `json:"displayName,omitempty"`
		ItemID       string       `json:"itemId,omitempty"`
		ItemLanguage string       `json:"itemLanguage,omitempty"`
		ItemVersion  int          `json:"itemVersion,omitempty"`
		LayoutID     string       `json:"layoutId,omitempty"`
		TemplateID   string       `json:"templateId,omitempty"`
		TemplateName string       `json:"templateName,omitempty"`
		DatabaseName string       `json:"databaseName,omitempty"`
		DeviceID     string       `json:"deviceId,omitempty"`
		Fields       Fields       `json:"fields,omitempty"`
		Placeholders Placeholders `json:"placeholders,omitempty"`
	}
)

// EmptyLayoutData returns layout data with no route, as the layout service
// reports for a missing item
func EmptyLayoutData(language string) *LayoutServiceData {
	return &LayoutServiceData{
		Sitecore: LayoutServiceContextData{
			Context: LayoutServiceContext{
				PageEditing: false,
				Language:    language,
			},
		},
	}
}
