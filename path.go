package actionopts

import (
	"fmt"
	"strings"
)

// Path addresses an option field. It is either a simple field name or an
// (outer, inner) pair for a member of a nested record such as modifiers.ctrl.
type Path struct {
	outer string
	inner string
}

// Field returns the Path of a top-level field.
func Field(name string) Path { return Path{outer: name} }

// Nested returns the Path of member inner inside the nested record outer.
func Nested(outer, inner string) Path { return Path{outer: outer, inner: inner} }

// ParsePath parses a display name ("speed" or "modifiers.ctrl") into a Path.
// Nesting deeper than one level is rejected.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return Path{}, fmt.Errorf("actionopts: invalid path %q: empty segment", s)
		}
	}
	switch len(parts) {
	case 1:
		return Field(parts[0]), nil
	case 2:
		return Nested(parts[0], parts[1]), nil
	default:
		return Path{}, fmt.Errorf("actionopts: invalid path %q: at most one level of nesting is supported", s)
	}
}

// IsNested reports whether p addresses a member of a nested record.
func (p Path) IsNested() bool { return p.inner != "" }

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool { return p.outer == "" }

// Outer returns the top-level field name.
func (p Path) Outer() string { return p.outer }

// Inner returns the nested member name, or "" for a simple field.
func (p Path) Inner() string { return p.inner }

// String renders the display name used in messages.
func (p Path) String() string {
	if p.inner == "" {
		return p.outer
	}
	return p.outer + "." + p.inner
}

// Pointer renders p as a JSON Pointer.
func (p Path) Pointer() string {
	if p.outer == "" {
		return "/"
	}
	if p.inner == "" {
		return "/" + escapePointer(p.outer)
	}
	return "/" + escapePointer(p.outer) + "/" + escapePointer(p.inner)
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
