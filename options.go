package actionopts

import (
	gojson "github.com/goccy/go-json"

	"github.com/reoring/actionopts/internal/engine"
)

// Options is a constructed option instance. It holds every field of its
// kind's composed descriptor list, either at its default or as assigned from
// input. An instance is not modified after construction.
type Options struct {
	kind     *Kind
	values   map[string]any
	presence PresenceMap
}

// Kind returns the kind the instance was built from.
func (o *Options) Kind() *Kind { return o.kind }

// Get returns the value at p. Nested records are returned as copies.
func (o *Options) Get(p Path) (any, bool) {
	v, ok := o.values[p.Outer()]
	if !ok {
		return nil, false
	}
	if !p.IsNested() {
		return engine.Clone(v), true
	}
	nested, isObj := v.(map[string]any)
	if !isObj {
		return nil, false
	}
	v, ok = nested[p.Inner()]
	return engine.Clone(v), ok
}

// Lookup is Get addressed by display name ("speed", "modifiers.ctrl").
func (o *Options) Lookup(name string) (any, bool) {
	p, err := ParsePath(name)
	if err != nil {
		return nil, false
	}
	return o.Get(p)
}

// Int returns the value at p when it is a whole number.
func (o *Options) Int(p Path) (int, bool) {
	v, ok := o.Get(p)
	if !ok {
		return 0, false
	}
	return integerOf(v)
}

// Float returns the value at p when it is a number.
func (o *Options) Float(p Path) (float64, bool) {
	v, ok := o.Get(p)
	if !ok {
		return 0, false
	}
	return numberOf(v)
}

// Bool returns the value at p when it is a boolean.
func (o *Options) Bool(p Path) (bool, bool) {
	v, ok := o.Get(p)
	if !ok {
		return false, false
	}
	b, isBool := v.(bool)
	return b, isBool
}

// Map returns a deep copy of the instance fields.
func (o *Options) Map() map[string]any { return engine.Clone(o.values).(map[string]any) }

// MarshalJSON encodes the instance fields as a JSON object.
func (o *Options) MarshalJSON() ([]byte, error) { return gojson.Marshal(o.values) }

// Decode projects the instance onto a typed view such as *ClickOptions. It
// fails when unvalidated input left a value of the wrong shape.
func (o *Options) Decode(dst any) error {
	data, err := gojson.Marshal(o.values)
	if err != nil {
		return err
	}
	return gojson.Unmarshal(data, dst)
}
