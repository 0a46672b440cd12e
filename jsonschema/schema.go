package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        any    `json:"type,omitempty"` // string, or []string for a union
	Default     any    `json:"default,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
}

// Float returns a pointer to f for the Minimum/Maximum fields.
func Float(f float64) *float64 { return &f }

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if ts, ok := s.Type.([]string); ok {
		out.Type = append([]string(nil), ts...)
	}
	if s.Minimum != nil {
		out.Minimum = Float(*s.Minimum)
	}
	if s.Maximum != nil {
		out.Maximum = Float(*s.Maximum)
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	return &out
}

// Nullable widens t to also admit null. An empty type already admits
// everything and is returned unchanged.
func Nullable(t any) any {
	switch v := t.(type) {
	case string:
		if v == "" || v == "null" {
			return v
		}
		return []string{v, "null"}
	case []string:
		for _, e := range v {
			if e == "null" {
				return v
			}
		}
		return append(append([]string(nil), v...), "null")
	default:
		return t
	}
}
