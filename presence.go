package actionopts

import "github.com/reoring/actionopts/internal/engine"

// Presence is the bit flag recorded for every field of an instance.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was assigned from input.
	PresenceWasNull                             // Input value was null.
	PresenceDefaultApplied                      // Default value stands.
	PresenceDerived                             // Value was set by a derivation.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Has reports whether the flag f is set for pointer p.
func (pm PresenceMap) Has(p string, f Presence) bool { return pm[p]&f != 0 }

// Presence returns a copy of the instance's presence metadata.
func (o *Options) Presence() PresenceMap {
	out := make(PresenceMap, len(o.presence))
	for k, v := range o.presence {
		out[k] = v
	}
	return out
}

// Preserved returns the fields that came from input or a derivation,
// dropping those materialized only by defaults. A nested record is kept
// with just its non-default members, and is dropped when none remain.
func (o *Options) Preserved() map[string]any {
	out := map[string]any{}
	for k, v := range o.values {
		nested, isObj := v.(map[string]any)
		if !isObj || !o.isNestedRecord(k) {
			if !o.defaultOnly(Field(k).Pointer()) {
				out[k] = engine.Clone(v)
			}
			continue
		}
		kept := map[string]any{}
		for ik, iv := range nested {
			if !o.defaultOnly(Nested(k, ik).Pointer()) {
				kept[ik] = engine.Clone(iv)
			}
		}
		if len(kept) > 0 {
			out[k] = kept
		}
	}
	return out
}

func (o *Options) defaultOnly(ptr string) bool {
	p := o.presence[ptr]
	return p&PresenceDefaultApplied != 0 && p&(PresenceSeen|PresenceWasNull|PresenceDerived) == 0
}

func (o *Options) isNestedRecord(name string) bool {
	for _, d := range o.kind.defaults {
		if d.Path.IsNested() && d.Path.Outer() == name {
			return true
		}
	}
	return false
}
