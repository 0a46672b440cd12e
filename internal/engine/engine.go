package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Check validates one value and returns the value to store.
type Check func(value any, field string) (any, error)

// Slot is one assignable field of a record. Inner is empty for top-level
// fields; otherwise the slot addresses dst[Outer][Inner].
type Slot struct {
	Outer   string
	Inner   string
	Display string
	Check   Check // nil stores the raw value verbatim
}

// Mark is invoked after slot i has been stored. wasNull reports an explicit
// null in the input.
type Mark func(i int, wasNull bool)

// Rejection reports the slot whose Check failed.
type Rejection struct {
	Index int
	Slot  Slot
	Err   error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("engine: %s rejected: %v", r.Slot.Display, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Assign copies every slot present in raw onto dst, in slot order. Checks run
// only when validate is set. The first failing Check aborts with a
// *Rejection; dst may then hold the slots stored before it, so callers must
// discard dst on error.
func Assign(ctx context.Context, dst, raw map[string]any, slots []Slot, validate bool, mark Mark) error {
	if raw == nil {
		return nil
	}
	log := zerolog.Ctx(ctx)
	for i, s := range slots {
		v, ok := Lookup(raw, s)
		if !ok {
			log.Debug().Str("field", s.Display).Msg("option not provided")
			continue
		}
		wasNull := v == nil
		if validate && s.Check != nil {
			checked, err := s.Check(v, s.Display)
			if err != nil {
				log.Debug().Str("field", s.Display).Err(err).Msg("option rejected")
				return &Rejection{Index: i, Slot: s, Err: err}
			}
			v = checked
		}
		Store(dst, s, Clone(v))
		log.Debug().Str("field", s.Display).Bool("validated", validate && s.Check != nil).Msg("option assigned")
		if mark != nil {
			mark(i, wasNull)
		}
	}
	return nil
}

// Lookup resolves the slot in raw. A nested slot resolves only when its outer
// key holds an object that defines the inner key.
func Lookup(raw map[string]any, s Slot) (any, bool) {
	v, ok := raw[s.Outer]
	if !ok || s.Inner == "" {
		return v, ok
	}
	nested, isObj := v.(map[string]any)
	if !isObj {
		return nil, false
	}
	v, ok = nested[s.Inner]
	return v, ok
}

// Clone deep-copies objects and arrays so stored values never alias the input.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// Store writes v into the slot, mutating only the named member of an
// existing nested record.
func Store(dst map[string]any, s Slot, v any) {
	if s.Inner == "" {
		dst[s.Outer] = v
		return
	}
	nested, ok := dst[s.Outer].(map[string]any)
	if !ok {
		nested = map[string]any{}
		dst[s.Outer] = nested
	}
	nested[s.Inner] = v
}
