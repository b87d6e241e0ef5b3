package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind discriminates the rendering variants found inside placeholders
type NodeKind int

const (
	KindComponent NodeKind = iota
	KindHTMLElement
)

func (k NodeKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindHTMLElement:
		return "html-element"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

type (
	// ComponentRendering is a component placed in a placeholder
	ComponentRendering struct {
		UID           string       `json:"uid,omitempty"`
		ComponentName string       `json:"componentName,omitempty"`
		DataSource    string       `json:"dataSource,omitempty"`
		Params        Params       `json:"params,omitempty"`
		Fields        Fields       `json:"fields,omitempty"`
		Attributes    Attributes   `json:"attributes,omitempty"`
		Placeholders  Placeholders `json:"placeholders,omitempty"`
	}

	// HtmlElementRendering is raw markup placed in a placeholder
	HtmlElementRendering struct {
		Name       string     `json:"name,omitempty"`
		Type       string     `json:"type,omitempty"`
		Contents   *string    `json:"contents,omitempty"`
		Attributes Attributes `json:"attributes"`
	}

	// RenderingNode is one entry of a placeholder. Exactly one of Component
	// and Element is set, as selected by Kind. A node decoded from a JSON value
	// that is not an object has neither set.
	RenderingNode struct {
		Kind      NodeKind
		Component *ComponentRendering
		Element   *HtmlElementRendering
	}
)

// NewComponentNode wraps a component rendering into a node
func NewComponentNode(c *ComponentRendering) RenderingNode {
	return RenderingNode{Kind: KindComponent, Component: c}
}

// NewHTMLElementNode wraps an HTML element rendering into a node
func NewHTMLElementNode(e *HtmlElementRendering) RenderingNode {
	return RenderingNode{Kind: KindHTMLElement, Element: e}
}

// UnmarshalJSON classifies the node by shape once: params, fields or a
// component name make a component, otherwise attributes make an HTML element.
// Anything else decodes as a component so its placeholders are still walked.
func (n *RenderingNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*n = RenderingNode{}
		return nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return fmt.Errorf("failed to read rendering node: %w", err)
	}

	_, hasParams := members["params"]
	_, hasFields := members["fields"]
	_, hasName := members["componentName"]
	_, hasAttributes := members["attributes"]

	if !hasParams && !hasFields && !hasName && hasAttributes {
		var element HtmlElementRendering
		if err := json.Unmarshal(trimmed, &element); err != nil {
			return fmt.Errorf("failed to decode html element rendering: %w", err)
		}
		*n = NewHTMLElementNode(&element)
		return nil
	}

	var component ComponentRendering
	if err := json.Unmarshal(trimmed, &component); err != nil {
		return fmt.Errorf("failed to decode component rendering: %w", err)
	}
	*n = NewComponentNode(&component)
	return nil
}

// MarshalJSON writes the variant payload
func (n RenderingNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Kind == KindHTMLElement && n.Element != nil:
		return json.Marshal(n.Element)
	case n.Kind == KindComponent && n.Component != nil:
		return json.Marshal(n.Component)
	default:
		return []byte("null"), nil
	}
}
