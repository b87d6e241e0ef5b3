package feaas

import "github.com/jssgo/jss-edge/internal/domain/entities/layout"

// idSet keeps unique ids in insertion order
type idSet struct {
	seen  map[string]struct{}
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]struct{})}
}

func (s *idSet) add(id string) {
	if id == "" {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
}

func traverseRoute(route *layout.RouteData, ids *idSet) {
	ids.add(libraryID(nil, route.Fields, nil))
	traversePlaceholders(route.Placeholders, ids)
}

func traversePlaceholders(placeholders layout.Placeholders, ids *idSet) {
	for _, ph := range placeholders {
		for _, node := range ph.Renderings {
			traverseNode(node, ids)
		}
	}
}

func traverseNode(node layout.RenderingNode, ids *idSet) {
	switch node.Kind {
	case layout.KindComponent:
		if c := node.Component; c != nil {
			ids.add(libraryID(c.Params, c.Fields, c.Attributes))
			traversePlaceholders(c.Placeholders, ids)
		}
	case layout.KindHTMLElement:
		if e := node.Element; e != nil {
			ids.add(libraryID(nil, nil, e.Attributes))
		}
	}
}

// libraryID tries params, then fields, then the class attribute. Each source
// is consulted only while no id has been found; nil sources are absent.
func libraryID(params layout.Params, fields layout.Fields, attributes layout.Attributes) string {
	var id string

	// library id in the css class name takes precedence over the LibraryId param
	if params != nil {
		id = ExtractLibraryID(params["CSSStyles"])
		if id == "" {
			id = params["LibraryId"]
		}
	}

	// empty params fall back to the data source
	if id == "" && fields != nil {
		id = ExtractLibraryID(fields.ValueOr("CSSStyles", ""))
		if id == "" {
			id = fields.ValueOr("LibraryId", "")
		}
	}

	if id == "" && attributes != nil {
		if class, ok := attributes.Class(); ok {
			id = ExtractLibraryID(class)
		}
	}

	return id
}
