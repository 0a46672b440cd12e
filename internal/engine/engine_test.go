package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

var errNotInt = errors.New("not an int")

func intCheck(v any, _ string) (any, error) {
	if n, ok := v.(int); ok {
		return n, nil
	}
	return nil, errNotInt
}

func TestAssign_NilRawKeepsDefaults(t *testing.T) {
	dst := map[string]any{"a": 1}
	if err := Assign(context.Background(), dst, nil, []Slot{{Outer: "a", Display: "a"}}, true, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst["a"] != 1 {
		t.Fatalf("default overwritten: %v", dst)
	}
}

func TestAssign_SimpleAndNested(t *testing.T) {
	dst := map[string]any{
		"a":   nil,
		"mod": map[string]any{"x": false, "y": false},
	}
	slots := []Slot{
		{Outer: "a", Display: "a", Check: intCheck},
		{Outer: "mod", Inner: "x", Display: "mod.x"},
		{Outer: "mod", Inner: "y", Display: "mod.y"},
	}
	nested := dst["mod"].(map[string]any)
	raw := map[string]any{"a": 3, "mod": map[string]any{"x": true}, "extra": 1}
	var marked []int
	err := Assign(context.Background(), dst, raw, slots, true, func(i int, _ bool) { marked = append(marked, i) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst["a"] != 3 {
		t.Fatalf("a = %v", dst["a"])
	}
	got := dst["mod"].(map[string]any)
	if got["x"] != true || got["y"] != false {
		t.Fatalf("nested = %v", got)
	}
	got["probe"] = 1
	if _, same := nested["probe"]; !same {
		t.Fatalf("nested record must be mutated in place, not replaced")
	}
	if _, ok := dst["extra"]; ok {
		t.Fatalf("extra key must not be copied")
	}
	if len(marked) != 2 || marked[0] != 0 || marked[1] != 1 {
		t.Fatalf("marked = %v", marked)
	}
}

func TestAssign_NestedParentNotAnObject(t *testing.T) {
	for _, raw := range []map[string]any{
		{"mod": nil},
		{"mod": true},
		{"mod": map[string]any{}},
	} {
		dst := map[string]any{"mod": map[string]any{"x": false}}
		slots := []Slot{{Outer: "mod", Inner: "x", Display: "mod.x", Check: intCheck}}
		if err := Assign(context.Background(), dst, raw, slots, true, nil); err != nil {
			t.Fatalf("raw %v: unexpected error: %v", raw, err)
		}
		if dst["mod"].(map[string]any)["x"] != false {
			t.Fatalf("raw %v: default changed", raw)
		}
	}
}

func TestAssign_RejectionAndBypass(t *testing.T) {
	slots := []Slot{
		{Outer: "a", Display: "a", Check: intCheck},
		{Outer: "b", Display: "b", Check: intCheck},
	}
	raw := map[string]any{"a": "x", "b": "y"}

	err := Assign(context.Background(), map[string]any{}, raw, slots, true, nil)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	if rej.Index != 0 || rej.Slot.Display != "a" || !errors.Is(err, errNotInt) {
		t.Fatalf("unexpected rejection: %+v", rej)
	}

	dst := map[string]any{}
	if err := Assign(context.Background(), dst, raw, slots, false, nil); err != nil {
		t.Fatalf("validate=false must not run checks: %v", err)
	}
	if dst["a"] != "x" || dst["b"] != "y" {
		t.Fatalf("values must be copied verbatim: %v", dst)
	}
}

func TestAssign_ExplicitNull(t *testing.T) {
	dst := map[string]any{"a": 1}
	var wasNull bool
	err := Assign(context.Background(), dst, map[string]any{"a": nil}, []Slot{{Outer: "a", Display: "a"}}, true,
		func(_ int, n bool) { wasNull = n })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := dst["a"]; !ok || v != nil || !wasNull {
		t.Fatalf("explicit null must be assigned: %v (wasNull=%v)", dst, wasNull)
	}
}

func TestAssign_LogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())
	slots := []Slot{{Outer: "a", Display: "a"}, {Outer: "b", Display: "b"}}
	if err := Assign(ctx, map[string]any{}, map[string]any{"a": 1}, slots, false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "option assigned") || !strings.Contains(out, "option not provided") {
		t.Fatalf("missing debug entries: %s", out)
	}
}
