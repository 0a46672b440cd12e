package actionopts

import (
	"strconv"

	"github.com/reoring/actionopts/i18n"
)

// Predicate validates the value of one option. field is the display name
// embedded in the failure. It returns the value to assign (possibly
// normalized within its category) or an error describing the violation.
type Predicate func(value any, field string) (any, error)

// ErrorKind identifies a failure category: one per option category and
// constraint (for example action/integer_option).
type ErrorKind struct {
	Category string
	Code     string
}

// Built-in error kinds.
var (
	ActionIntegerOption            = ErrorKind{Category: CategoryAction, Code: CodeIntegerOption}
	ActionPositiveIntegerOption    = ErrorKind{Category: CategoryAction, Code: CodePositiveIntegerOption}
	ActionBooleanOption            = ErrorKind{Category: CategoryAction, Code: CodeBooleanOption}
	ActionSpeedOption              = ErrorKind{Category: CategoryAction, Code: CodeSpeedOption}
	// Assertion timeouts share the action code and message but not its category.
	AssertionPositiveIntegerOption = ErrorKind{Category: CategoryAssertion, Code: CodePositiveIntegerOption}
)

// String renders the kind as category/code.
func (k ErrorKind) String() string { return k.Category + "/" + k.Code }

// Fail builds the single-issue failure for field holding actual. params are
// merged into the issue parameters and message data.
func (k ErrorKind) Fail(field string, actual any, params map[string]any) error {
	desc := describeActual(actual)
	data := map[string]string{"field": field, "actual": desc}
	ps := map[string]any{"actual": desc}
	for key, v := range params {
		ps[key] = v
		data[key] = formatParam(v)
	}
	return Issues{Issue{
		Field:    field,
		Category: k.Category,
		Code:     k.Code,
		Message:  i18n.T(k.Code, data),
		Params:   ps,
	}}
}

func formatParam(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return describeActual(v)
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether f lies within r.
func (r Range) Contains(f float64) bool { return f >= r.Min && f <= r.Max }

// DefaultSpeedRange is the speed domain of the built-in catalog.
var DefaultSpeedRange = Range{Min: 0.01, Max: 1}

// IntegerPredicate accepts whole numbers and normalizes them to int.
func IntegerPredicate(kind ErrorKind) Predicate {
	return func(value any, field string) (any, error) {
		n, ok := integerOf(value)
		if !ok {
			return nil, kind.Fail(field, value, nil)
		}
		return n, nil
	}
}

// PositiveIntegerPredicate accepts whole numbers greater than zero.
func PositiveIntegerPredicate(kind ErrorKind) Predicate {
	return func(value any, field string) (any, error) {
		n, ok := integerOf(value)
		if !ok || n <= 0 {
			return nil, kind.Fail(field, value, nil)
		}
		return n, nil
	}
}

// BooleanPredicate accepts only true and false.
func BooleanPredicate(kind ErrorKind) Predicate {
	return func(value any, field string) (any, error) {
		b, ok := value.(bool)
		if !ok {
			return nil, kind.Fail(field, value, nil)
		}
		return b, nil
	}
}

// SpeedPredicate accepts numbers within r and normalizes them to float64.
func SpeedPredicate(kind ErrorKind, r Range) Predicate {
	return func(value any, field string) (any, error) {
		f, ok := numberOf(value)
		if !ok || !r.Contains(f) {
			return nil, kind.Fail(field, value, map[string]any{"min": r.Min, "max": r.Max})
		}
		return f, nil
	}
}
