// Package templates renders HTML fragments for page heads
package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jssgo/jss-edge/internal/domain/services/feaas"
)

// stylesheetLinksTmpl renders one link tag per stylesheet; html/template escapes the attributes
var stylesheetLinksTmpl = template.Must(template.New("stylesheetLinks").Parse(
	`{{range .}}<link rel="{{.Rel}}" href="{{.Href}}">` + "\n" + `{{end}}`,
))

// RenderStylesheetLinks renders the <link> tags for a page head
func RenderStylesheetLinks(links []feaas.StylesheetLink) (template.HTML, error) {
	var buf bytes.Buffer
	if err := stylesheetLinksTmpl.Execute(&buf, links); err != nil {
		return "", fmt.Errorf("failed to render stylesheet links: %w", err)
	}
	return template.HTML(buf.String()), nil
}
