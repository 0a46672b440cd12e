package actionopts

import js "github.com/reoring/actionopts/jsonschema"

// JSONSchema projects the kind into a JSON Schema object. Unknown keys are
// accepted and ignored on construction, so additionalProperties is true.
func (k *Kind) JSONSchema() (*js.Schema, error) {
	root := &js.Schema{
		Title:                k.name,
		Type:                 "object",
		Properties:           map[string]*js.Schema{},
		AdditionalProperties: true,
	}
	defaults := map[Path]any{}
	for _, d := range k.defaults {
		defaults[d.Path] = d.Value
	}
	for _, d := range k.descriptors {
		field := d.Type.Clone()
		if field == nil {
			field = &js.Schema{}
		}
		if v, ok := defaults[d.Path]; ok {
			field.Default = v
			if v == nil {
				field.Type = js.Nullable(field.Type)
			}
		}
		if !d.Path.IsNested() {
			root.Properties[d.Path.Outer()] = field
			continue
		}
		rec, ok := root.Properties[d.Path.Outer()]
		if !ok {
			rec = &js.Schema{Type: "object", Properties: map[string]*js.Schema{}, AdditionalProperties: true}
			root.Properties[d.Path.Outer()] = rec
		}
		rec.Properties[d.Path.Inner()] = field
	}
	return root, nil
}
