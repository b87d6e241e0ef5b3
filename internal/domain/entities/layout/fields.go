package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Params holds rendering parameters. Only string values are kept.
type Params map[string]string

// UnmarshalJSON decodes a params object, dropping entries that are not
// strings. Any other non-null value decodes as empty params.
func (p *Params) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("failed to decode rendering params: %w", err)
	}
	if raw == nil {
		*p = nil
		return nil
	}

	params := make(Params, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			params[key] = s
		}
	}
	*p = params
	return nil
}

// Fields maps field names to their raw layout service value. A field is
// usually an object with a "value" member, but item lists and link fields
// have other shapes, so decoding is deferred to the accessors.
type Fields map[string]json.RawMessage

// UnmarshalJSON decodes a fields object. Any other non-null value decodes
// as empty fields.
func (f *Fields) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("failed to decode fields: %w", err)
	}
	*f = Fields(raw)
	return nil
}

// Value returns the string carried in the field's "value" member
func (f Fields) Value(name string) (string, bool) {
	raw, ok := f[name]
	if !ok {
		return "", false
	}

	var field struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &field); err != nil || field.Value == nil {
		return "", false
	}

	var s string
	if err := json.Unmarshal(field.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// ValueOr returns the field value or def when the field has no string value
func (f Fields) ValueOr(name, def string) string {
	if v, ok := f.Value(name); ok {
		return v
	}
	return def
}

// Attributes holds HTML attributes of a rendering
type Attributes map[string]any

// UnmarshalJSON decodes an attributes object. Any other non-null value
// decodes as empty attributes.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("failed to decode attributes: %w", err)
	}
	if raw == nil {
		*a = nil
		return nil
	}

	attrs := make(Attributes, len(raw))
	for key, value := range raw {
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("failed to decode attribute %q: %w", key, err)
		}
		attrs[key] = v
	}
	*a = attrs
	return nil
}

// Class returns the class attribute when it is a string
func (a Attributes) Class() (string, bool) {
	class, ok := a["class"].(string)
	return class, ok
}

// decodeObject returns the members of a JSON object. null yields a nil map
// and any other non-object value an empty one.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return map[string]json.RawMessage{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}
