package layout

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Placeholder is a named slot holding an ordered list of renderings
type Placeholder struct {
	Name       string
	Renderings []RenderingNode
}

// Placeholders keeps placeholder slots in key enumeration order: names that
// are array indexes first in ascending numeric order, then every other name
// in document order. Traversal order, and so link order, depends on it.
type Placeholders []Placeholder

// Names returns the placeholder names in document order
func (p Placeholders) Names() []string {
	names := make([]string, len(p))
	for i, ph := range p {
		names[i] = ph.Name
	}
	return names
}

// UnmarshalJSON decodes a placeholders object without losing key order
func (p *Placeholders) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read placeholders: %w", err)
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("placeholders must be an object, got %v", tok)
	}

	var result Placeholders
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read placeholder name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected placeholder key %v", keyTok)
		}

		var renderings []RenderingNode
		if err := dec.Decode(&renderings); err != nil {
			return fmt.Errorf("failed to decode placeholder %q: %w", name, err)
		}

		// a repeated key keeps its first position and its last value
		if i, seen := index[name]; seen {
			result[i].Renderings = renderings
			continue
		}
		index[name] = len(result)
		result = append(result, Placeholder{Name: name, Renderings: renderings})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close placeholders: %w", err)
	}

	slices.SortStableFunc(result, func(a, b Placeholder) int {
		ai, aok := arrayIndex(a.Name)
		bi, bok := arrayIndex(b.Name)
		switch {
		case aok && bok:
			return cmp.Compare(ai, bi)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})

	*p = result
	return nil
}

// MarshalJSON writes placeholders as an object in slot order
func (p Placeholders) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ph := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ph.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		renderings := ph.Renderings
		if renderings == nil {
			renderings = []RenderingNode{}
		}
		value, err := json.Marshal(renderings)
		if err != nil {
			return nil, fmt.Errorf("failed to encode placeholder %q: %w", ph.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// arrayIndex reports whether name is a canonical array index: decimal digits
// without a leading zero, below 2^32-1.
func arrayIndex(name string) (uint64, bool) {
	if name == "" || (len(name) > 1 && name[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}
