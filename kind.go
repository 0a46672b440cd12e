package actionopts

import (
	"context"
	"errors"
	"fmt"

	"github.com/reoring/actionopts/internal/engine"
	js "github.com/reoring/actionopts/jsonschema"
)

// Descriptor declares one assignable field of a Kind.
type Descriptor struct {
	Path  Path
	Check Predicate  // nil assigns the raw value without validation
	Type  *js.Schema // optional JSON Schema projection of Check
}

// Default is the value a field holds before input is applied.
type Default struct {
	Path  Path
	Value any
}

// Record is the view of an instance handed to derivations while it is being
// constructed.
type Record interface {
	Get(p Path) (any, bool)
	Set(p Path, v any)
}

// Derivation adjusts an instance after input has been assigned.
type Derivation func(r Record)

// Kind is an immutable option schema: an ordered descriptor list (the
// allow-list of assignable fields), default values and derivations, each
// inherited from the parent kind and extended with the kind's own entries.
// A Kind is safe for concurrent use.
type Kind struct {
	name        string
	parent      string
	descriptors []Descriptor
	defaults    []Default
	derivations []Derivation
	slots       []engine.Slot
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Parent returns the name of the kind this one extends, or "".
func (k *Kind) Parent() string { return k.parent }

// Descriptors returns the composed descriptor list, base kind first.
func (k *Kind) Descriptors() []Descriptor { return append([]Descriptor(nil), k.descriptors...) }

// Defaults returns the composed defaults in application order.
func (k *Kind) Defaults() []Default { return append([]Default(nil), k.defaults...) }

// New constructs an instance from raw. A nil raw leaves every field at its
// default. When validate is false no predicate runs and present values are
// copied verbatim. The first invalid field aborts construction with Issues.
func (k *Kind) New(ctx context.Context, raw map[string]any, validate bool) (*Options, error) {
	o := &Options{kind: k, values: make(map[string]any, len(k.defaults)), presence: PresenceMap{}}
	for _, d := range k.defaults {
		engine.Store(o.values, slotOf(d.Path, nil), d.Value)
		o.presence[d.Path.Pointer()] = PresenceDefaultApplied
	}
	err := engine.Assign(ctx, o.values, raw, k.slots, validate, func(i int, wasNull bool) {
		p := k.descriptors[i].Path.Pointer()
		f := (o.presence[p] &^ PresenceDefaultApplied) | PresenceSeen
		if wasNull {
			f |= PresenceWasNull
		}
		o.presence[p] = f
	})
	if err != nil {
		return nil, k.toIssues(err)
	}
	rec := &buildRecord{o: o}
	for _, fn := range k.derivations {
		fn(rec)
	}
	return o, nil
}

// MustNew is like New but panics on error.
func (k *Kind) MustNew(ctx context.Context, raw map[string]any, validate bool) *Options {
	o, err := k.New(ctx, raw, validate)
	if err != nil {
		panic(err)
	}
	return o
}

// toIssues rebases a predicate failure under the rejected field.
func (k *Kind) toIssues(err error) Issues {
	var rej *engine.Rejection
	if !errors.As(err, &rej) {
		return AppendIssues(nil, Issue{Path: "/", Code: CodeInvalidOption, Message: err.Error(), Cause: err})
	}
	p := k.descriptors[rej.Index].Path
	child, ok := AsIssues(rej.Err)
	if !ok || len(child) == 0 {
		return AppendIssues(nil, Issue{Path: p.Pointer(), Field: p.String(), Code: CodeInvalidOption, Message: rej.Err.Error(), Cause: rej.Err})
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		if it.Path == "" || it.Path == "/" {
			it.Path = p.Pointer()
		}
		if it.Field == "" {
			it.Field = p.String()
		}
		out = append(out, it)
	}
	return out
}

func slotOf(p Path, check Predicate) engine.Slot {
	s := engine.Slot{Outer: p.Outer(), Inner: p.Inner(), Display: p.String()}
	if check != nil {
		s.Check = engine.Check(check)
	}
	return s
}

type buildRecord struct{ o *Options }

func (r *buildRecord) Get(p Path) (any, bool) { return r.o.Get(p) }

func (r *buildRecord) Set(p Path, v any) {
	engine.Store(r.o.values, slotOf(p, nil), v)
	ptr := p.Pointer()
	r.o.presence[ptr] = (r.o.presence[ptr] &^ PresenceDefaultApplied) | PresenceDerived
}

// ---- builder ----

// KindBuilder composes a Kind. Obtain one with NewKind or Extend.
type KindBuilder struct {
	name        string
	parent      string
	descriptors []Descriptor
	defaults    []Default
	derivations []Derivation
	err         error
}

type fieldStep struct {
	b    *KindBuilder
	path Path
}

// NewKind starts a kind with no inherited fields.
func NewKind(name string) *KindBuilder { return &KindBuilder{name: name} }

// Extend starts a kind whose descriptors, defaults and derivations begin with
// a copy of parent's.
func Extend(parent *Kind, name string) *KindBuilder {
	b := &KindBuilder{name: name}
	if parent == nil {
		b.err = fmt.Errorf("actionopts: kind %q: nil parent", name)
		return b
	}
	b.parent = parent.name
	b.descriptors = append(b.descriptors, parent.descriptors...)
	b.defaults = append(b.defaults, parent.defaults...)
	b.derivations = append(b.derivations, parent.derivations...)
	return b
}

// Field declares an assignable field. Redeclaring an inherited path replaces
// that descriptor in place, so a derived kind can relax or tighten a check.
func (b *KindBuilder) Field(p Path, check Predicate) *fieldStep {
	d := Descriptor{Path: p, Check: check}
	for i := range b.descriptors {
		if b.descriptors[i].Path == p {
			b.descriptors[i] = d
			return &fieldStep{b: b, path: p}
		}
	}
	b.descriptors = append(b.descriptors, d)
	return &fieldStep{b: b, path: p}
}

// Default sets the value p holds before input is applied. Later defaults for
// the same path win. Only scalar values are accepted so instances never
// share mutable state.
func (b *KindBuilder) Default(p Path, v any) *KindBuilder {
	switch v.(type) {
	case map[string]any, []any:
		b.setErr(fmt.Errorf("actionopts: kind %q: default for %s must be a scalar", b.name, p))
	}
	b.defaults = append(b.defaults, Default{Path: p, Value: v})
	return b
}

// Derive appends a derivation run after assignment, after inherited ones.
func (b *KindBuilder) Derive(fn Derivation) *KindBuilder {
	if fn != nil {
		b.derivations = append(b.derivations, fn)
	}
	return b
}

func (b *KindBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates the composition and returns the Kind.
func (b *KindBuilder) Build() (*Kind, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, errors.New("actionopts: kind name must not be empty")
	}
	simple := map[string]bool{}
	nested := map[string]bool{}
	defaulted := map[Path]bool{}
	note := func(p Path) error {
		if p.IsZero() {
			return fmt.Errorf("actionopts: kind %q: empty path", b.name)
		}
		if p.IsNested() {
			nested[p.Outer()] = true
		} else {
			simple[p.Outer()] = true
		}
		if simple[p.Outer()] && nested[p.Outer()] {
			return fmt.Errorf("actionopts: kind %q: %q is used both as a field and as a nested record", b.name, p.Outer())
		}
		return nil
	}
	for _, d := range b.defaults {
		if err := note(d.Path); err != nil {
			return nil, err
		}
		defaulted[d.Path] = true
	}
	for _, d := range b.descriptors {
		if err := note(d.Path); err != nil {
			return nil, err
		}
		if !defaulted[d.Path] {
			return nil, fmt.Errorf("actionopts: kind %q: field %s has no default", b.name, d.Path)
		}
	}
	k := &Kind{
		name:        b.name,
		parent:      b.parent,
		descriptors: append([]Descriptor(nil), b.descriptors...),
		defaults:    append([]Default(nil), b.defaults...),
		derivations: append([]Derivation(nil), b.derivations...),
	}
	k.slots = make([]engine.Slot, len(k.descriptors))
	for i, d := range k.descriptors {
		k.slots[i] = slotOf(d.Path, d.Check)
	}
	return k, nil
}

// MustBuild is like Build but panics on error.
func (b *KindBuilder) MustBuild() *Kind {
	k, err := b.Build()
	if err != nil {
		panic(err)
	}
	return k
}

// Default sets the default of the current field.
func (f *fieldStep) Default(v any) *fieldStep {
	f.b.Default(f.path, v)
	return f
}

// Type attaches the JSON Schema projection of the current field's check.
func (f *fieldStep) Type(s *js.Schema) *fieldStep {
	for i := range f.b.descriptors {
		if f.b.descriptors[i].Path == f.path {
			f.b.descriptors[i].Type = s
		}
	}
	return f
}

func (f *fieldStep) Field(p Path, check Predicate) *fieldStep { return f.b.Field(p, check) }
func (f *fieldStep) Derive(fn Derivation) *KindBuilder         { return f.b.Derive(fn) }
func (f *fieldStep) Build() (*Kind, error)                     { return f.b.Build() }
func (f *fieldStep) MustBuild() *Kind                          { return f.b.MustBuild() }
