package actionopts

import (
	"context"
	"errors"
	"fmt"
	"math"

	js "github.com/reoring/actionopts/jsonschema"
)

// Kind names of the built-in catalog.
const (
	KindAction            = "action"
	KindOffset            = "offset"
	KindElementScreenshot = "elementScreenshot"
	KindMouse             = "mouse"
	KindClick             = "click"
	KindMove              = "move"
	KindType              = "type"
	KindDragToElement     = "dragToElement"
	KindResizeToFitDevice = "resizeToFitDevice"
	KindAssertion         = "assertion"
)

// Predicates is the predicate set a Catalog binds its fields to.
type Predicates struct {
	Integer         Predicate
	PositiveInteger Predicate
	Boolean         Predicate
	Speed           Predicate
	// AssertionPositiveInteger checks assertion timeouts; PositiveInteger is
	// used when nil.
	AssertionPositiveInteger Predicate
	// SpeedRange documents the domain enforced by Speed for JSON Schema
	// export. Leave nil when Speed is not a plain range check.
	SpeedRange *Range
}

// DefaultPredicates binds the built-in error kinds and DefaultSpeedRange.
func DefaultPredicates() Predicates {
	r := DefaultSpeedRange
	return Predicates{
		Integer:                  IntegerPredicate(ActionIntegerOption),
		PositiveInteger:          PositiveIntegerPredicate(ActionPositiveIntegerOption),
		Boolean:                  BooleanPredicate(ActionBooleanOption),
		Speed:                    SpeedPredicate(ActionSpeedOption, r),
		AssertionPositiveInteger: PositiveIntegerPredicate(AssertionPositiveIntegerOption),
		SpeedRange:               &r,
	}
}

// Catalog is a registry of option kinds built from one predicate set.
type Catalog struct {
	kinds map[string]*Kind
	order []string
}

// NewCatalog builds the option kind hierarchy:
//
//	action
//	└─ offset
//	   ├─ elementScreenshot
//	   └─ mouse
//	      ├─ click
//	      │  └─ type
//	      ├─ move
//	      └─ dragToElement
//	resizeToFitDevice
//	assertion
func NewCatalog(p Predicates) (*Catalog, error) {
	if p.Integer == nil || p.PositiveInteger == nil || p.Boolean == nil || p.Speed == nil {
		return nil, errors.New("actionopts: catalog requires integer, positive integer, boolean and speed predicates")
	}
	if p.AssertionPositiveInteger == nil {
		p.AssertionPositiveInteger = p.PositiveInteger
	}
	var (
		integer  = &js.Schema{Type: "integer"}
		positive = &js.Schema{Type: "integer", Minimum: js.Float(1)}
		boolean  = &js.Schema{Type: "boolean"}
		speed    = &js.Schema{Type: "number"}
	)
	if p.SpeedRange != nil {
		speed.Minimum = js.Float(p.SpeedRange.Min)
		speed.Maximum = js.Float(p.SpeedRange.Max)
	}

	c := &Catalog{kinds: map[string]*Kind{}}
	add := func(b interface{ Build() (*Kind, error) }) (*Kind, error) {
		k, err := b.Build()
		if err != nil {
			return nil, err
		}
		if _, dup := c.kinds[k.name]; dup {
			return nil, fmt.Errorf("actionopts: kind %q registered twice", k.name)
		}
		c.kinds[k.name] = k
		c.order = append(c.order, k.name)
		return k, nil
	}

	action, err := add(NewKind(KindAction).
		Field(Field("speed"), p.Speed).Type(speed).Default(nil))
	if err != nil {
		return nil, err
	}
	offset, err := add(Extend(action, KindOffset).
		Field(Field("offsetX"), p.Integer).Type(integer).Default(nil).
		Field(Field("offsetY"), p.Integer).Type(integer).Default(nil))
	if err != nil {
		return nil, err
	}
	if _, err := add(Extend(offset, KindElementScreenshot).
		Field(Field("cropX"), p.Integer).Type(integer).Default(nil).
		Field(Field("cropY"), p.Integer).Type(integer).Default(nil).
		Field(Field("cropWidth"), p.Integer).Type(integer).Default(nil).
		Field(Field("cropHeight"), p.Integer).Type(integer).Default(nil).
		Derive(deriveCropOffsets)); err != nil {
		return nil, err
	}
	mouse, err := add(Extend(offset, KindMouse).
		Field(Nested("modifiers", "ctrl"), p.Boolean).Type(boolean).Default(false).
		Field(Nested("modifiers", "alt"), p.Boolean).Type(boolean).Default(false).
		Field(Nested("modifiers", "shift"), p.Boolean).Type(boolean).Default(false).
		Field(Nested("modifiers", "meta"), p.Boolean).Type(boolean).Default(false))
	if err != nil {
		return nil, err
	}
	click, err := add(Extend(mouse, KindClick).
		Field(Field("caretPos"), p.PositiveInteger).Type(positive).Default(nil))
	if err != nil {
		return nil, err
	}
	// move accepts any speed value: its speed is a pass-through.
	if _, err := add(Extend(mouse, KindMove).
		Field(Field("speed"), nil).Default(nil).
		Field(Field("minMovingTime"), nil).Default(nil).
		Field(Field("holdLeftButton"), nil).Default(false).
		Field(Field("skipScrolling"), p.Boolean).Type(boolean).Default(false)); err != nil {
		return nil, err
	}
	if _, err := add(Extend(click, KindType).
		Field(Field("replace"), p.Boolean).Type(boolean).Default(false).
		Field(Field("paste"), p.Boolean).Type(boolean).Default(false)); err != nil {
		return nil, err
	}
	if _, err := add(Extend(mouse, KindDragToElement).
		Field(Field("destinationOffsetX"), p.Integer).Type(integer).Default(nil).
		Field(Field("destinationOffsetY"), p.Integer).Type(integer).Default(nil)); err != nil {
		return nil, err
	}
	if _, err := add(NewKind(KindResizeToFitDevice).
		Field(Field("portraitOrientation"), p.Boolean).Type(boolean).Default(false)); err != nil {
		return nil, err
	}
	if _, err := add(NewKind(KindAssertion).
		Field(Field("timeout"), p.AssertionPositiveInteger).Type(positive).Default(nil)); err != nil {
		return nil, err
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on error.
func MustCatalog(p Predicates) *Catalog {
	c, err := NewCatalog(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the kind registered under name.
func (c *Catalog) Kind(name string) (*Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Names returns the registered kind names, parents before children.
func (c *Catalog) Names() []string { return append([]string(nil), c.order...) }

// New constructs an instance of the named kind.
func (c *Catalog) New(ctx context.Context, kind string, raw map[string]any, validate bool) (*Options, error) {
	k, ok := c.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("actionopts: unknown kind %q", kind)
	}
	return k.New(ctx, raw, validate)
}

// deriveCropOffsets centers the offsets on the crop rectangle. It overrides
// offsets supplied in the input.
func deriveCropOffsets(r Record) {
	deriveCenter(r, "cropX", "cropWidth", "offsetX")
	deriveCenter(r, "cropY", "cropHeight", "offsetY")
}

func deriveCenter(r Record, start, size, target string) {
	sv, _ := r.Get(Field(start))
	s, ok := numberOf(sv)
	if !ok {
		return
	}
	wv, _ := r.Get(Field(size))
	w, ok := numberOf(wv)
	if !ok || w == 0 {
		return
	}
	r.Set(Field(target), int(math.Floor(s+w/2)))
}
