package actionopts_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	actionopts "github.com/reoring/actionopts"
)

func TestBuild_Errors(t *testing.T) {
	intCheck := actionopts.IntegerPredicate(actionopts.ActionIntegerOption)
	cases := map[string]interface {
		Build() (*actionopts.Kind, error)
	}{
		"empty name": actionopts.NewKind("").
			Field(actionopts.Field("x"), nil).Default(nil),
		"missing default": actionopts.NewKind("k").
			Field(actionopts.Field("x"), intCheck),
		"field and record collide": actionopts.NewKind("k").
			Field(actionopts.Field("m"), nil).Default(nil).
			Field(actionopts.Nested("m", "a"), nil).Default(false),
		"composite default": actionopts.NewKind("k").
			Field(actionopts.Field("m"), nil).Default(map[string]any{"a": 1}),
		"nil parent": actionopts.Extend(nil, "k"),
		"empty path": actionopts.NewKind("k").
			Field(actionopts.Path{}, nil).Default(nil),
	}
	for name, b := range cases {
		if _, err := b.Build(); err == nil {
			t.Fatalf("%s: expected build error", name)
		}
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	actionopts.NewKind("k").Field(actionopts.Field("x"), nil).MustBuild()
}

func TestExtend_ComposesBaseFirst(t *testing.T) {
	base := actionopts.NewKind("base").
		Field(actionopts.Field("a"), nil).Default(1).
		MustBuild()
	child := actionopts.Extend(base, "child").
		Field(actionopts.Field("b"), nil).Default(2).
		MustBuild()
	grand := actionopts.Extend(child, "grand").
		Field(actionopts.Field("c"), nil).Default(3).
		MustBuild()

	var got []string
	for _, d := range grand.Descriptors() {
		got = append(got, d.Path.String())
	}
	if strings.Join(got, ",") != "a,b,c" {
		t.Fatalf("descriptor order = %v", got)
	}
	if grand.Parent() != "child" || child.Parent() != "base" || base.Parent() != "" {
		t.Fatalf("unexpected parents: %q %q %q", grand.Parent(), child.Parent(), base.Parent())
	}
	if len(base.Descriptors()) != 1 || len(child.Descriptors()) != 2 {
		t.Fatalf("extending must not mutate the parent")
	}
	o := grand.MustNew(context.Background(), nil, true)
	if !reflect.DeepEqual(o.Map(), map[string]any{"a": 1, "b": 2, "c": 3}) {
		t.Fatalf("defaults = %v", o.Map())
	}
}

func TestExtend_RedeclareReplacesInPlace(t *testing.T) {
	strict := actionopts.IntegerPredicate(actionopts.ActionIntegerOption)
	base := actionopts.NewKind("base").
		Field(actionopts.Field("n"), strict).Default(nil).
		Field(actionopts.Field("m"), strict).Default(nil).
		MustBuild()
	relaxed := actionopts.Extend(base, "relaxed").
		Field(actionopts.Field("n"), nil).Default(0).
		MustBuild()

	ds := relaxed.Descriptors()
	if len(ds) != 2 || ds[0].Path != actionopts.Field("n") || ds[0].Check != nil {
		t.Fatalf("redeclared descriptor not replaced in place: %+v", ds)
	}
	ctx := context.Background()
	if _, err := base.New(ctx, map[string]any{"n": "x"}, true); err == nil {
		t.Fatalf("base kind must validate n")
	}
	o, err := relaxed.New(ctx, map[string]any{"n": "x"}, true)
	if err != nil {
		t.Fatalf("relaxed kind must not validate n: %v", err)
	}
	if v, _ := o.Get(actionopts.Field("n")); v != "x" {
		t.Fatalf("n = %v", v)
	}
	if v, _ := relaxed.MustNew(ctx, nil, true).Get(actionopts.Field("n")); v != 0 {
		t.Fatalf("most derived default must win, got %v", v)
	}
}

func TestDerive_RunsAfterAssignmentInOrder(t *testing.T) {
	var trace []string
	base := actionopts.NewKind("base").
		Field(actionopts.Field("a"), nil).Default(nil).
		Derive(func(r actionopts.Record) {
			v, _ := r.Get(actionopts.Field("a"))
			trace = append(trace, "base:"+v.(string))
		}).
		MustBuild()
	child := actionopts.Extend(base, "child").
		Derive(func(r actionopts.Record) {
			trace = append(trace, "child")
			r.Set(actionopts.Field("a"), "derived")
		}).
		MustBuild()

	o := child.MustNew(context.Background(), map[string]any{"a": "in"}, true)
	if strings.Join(trace, ",") != "base:in,child" {
		t.Fatalf("trace = %v", trace)
	}
	if v, _ := o.Get(actionopts.Field("a")); v != "derived" {
		t.Fatalf("a = %v", v)
	}
	if !o.Presence().Has("/a", actionopts.PresenceDerived) {
		t.Fatalf("derived flag missing: %v", o.Presence())
	}
}

func TestNew_ForeignPredicateError(t *testing.T) {
	boom := errors.New("boom")
	k := actionopts.NewKind("k").
		Field(actionopts.Nested("rec", "x"), func(any, string) (any, error) { return nil, boom }).Default(nil).
		MustBuild()
	_, err := k.New(context.Background(), map[string]any{"rec": map[string]any{"x": 1}}, true)
	iss, ok := actionopts.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Code != actionopts.CodeInvalidOption || iss[0].Path != "/rec/x" || iss[0].Field != "rec.x" || !errors.Is(iss[0].Cause, boom) {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	k, _ := actionopts.Builtin.Kind(actionopts.KindAssertion)
	k.MustNew(context.Background(), map[string]any{"timeout": 0}, true)
}

func TestPresence(t *testing.T) {
	ctx := context.Background()
	o, err := actionopts.NewMouseOptions(ctx, map[string]any{
		"offsetX":   3,
		"offsetY":   nil,
		"modifiers": map[string]any{"ctrl": true},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pm := o.Presence()
	if !pm.Has("/offsetX", actionopts.PresenceSeen) || pm.Has("/offsetX", actionopts.PresenceDefaultApplied) {
		t.Fatalf("offsetX flags = %b", pm["/offsetX"])
	}
	if !pm.Has("/offsetY", actionopts.PresenceWasNull) {
		t.Fatalf("offsetY flags = %b", pm["/offsetY"])
	}
	if !pm.Has("/modifiers/ctrl", actionopts.PresenceSeen) || !pm.Has("/modifiers/alt", actionopts.PresenceDefaultApplied) {
		t.Fatalf("modifier flags = %v", pm)
	}
	if pm["/speed"] != actionopts.PresenceDefaultApplied {
		t.Fatalf("speed flags = %b", pm["/speed"])
	}

	want := map[string]any{
		"offsetX":   3,
		"offsetY":   nil,
		"modifiers": map[string]any{"ctrl": true},
	}
	if got := o.Preserved(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Preserved() = %v want %v", got, want)
	}
}

func TestOptions_AccessorsReturnCopies(t *testing.T) {
	o, err := actionopts.NewClickOptions(context.Background(), map[string]any{
		"caretPos":  2,
		"modifiers": map[string]any{"shift": true},
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mods, _ := o.Get(actionopts.Field("modifiers"))
	mods.(map[string]any)["shift"] = false
	o.Map()["caretPos"] = 99

	if b, ok := o.Bool(actionopts.Nested("modifiers", "shift")); !ok || !b {
		t.Fatalf("instance mutated through a copy")
	}
	if n, ok := o.Int(actionopts.Field("caretPos")); !ok || n != 2 {
		t.Fatalf("caretPos = %v, %v", n, ok)
	}
	if v, ok := o.Lookup("modifiers.shift"); !ok || v != true {
		t.Fatalf("Lookup = %v, %v", v, ok)
	}
	if _, ok := o.Lookup("modifiers.shift.x"); ok {
		t.Fatalf("Lookup must reject deep paths")
	}
	if _, ok := o.Float(actionopts.Field("speed")); ok {
		t.Fatalf("unset speed must not read as a number")
	}
	if o.Kind().Name() != actionopts.KindClick {
		t.Fatalf("kind = %q", o.Kind().Name())
	}
}

func TestNew_RawValuesAreNotAliased(t *testing.T) {
	payload := map[string]any{"deep": []any{1}}
	raw := map[string]any{"minMovingTime": payload}
	o, err := actionopts.NewMoveOptions(context.Background(), raw, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload["deep"] = "changed"
	v, _ := o.Get(actionopts.Field("minMovingTime"))
	if !reflect.DeepEqual(v, map[string]any{"deep": []any{1}}) {
		t.Fatalf("instance aliases caller input: %v", v)
	}
}
