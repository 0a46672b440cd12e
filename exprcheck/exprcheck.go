// Package exprcheck builds option predicates from expr-lang expressions.
//
// An expression sees the option value as `value` and the option display name
// as `field`, and must evaluate to a boolean:
//
//	value >= 0.5 && value <= 2
//
// A runtime error (comparing a string with a number, say) rejects the value.
// JSON numbers are presented to the expression as float64.
package exprcheck

import (
	"errors"
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	gojson "github.com/goccy/go-json"

	actionopts "github.com/reoring/actionopts"
)

// ErrEmptyExpression is returned by New for a blank expression.
var ErrEmptyExpression = errors.New("exprcheck: expression must not be empty")

// New compiles expression once and returns a predicate failing with kind
// whenever the expression evaluates to false, to a non-boolean, or errors.
// params are attached to every failure (for example min/max rendered into
// the speed message). Accepted values are returned unchanged.
func New(kind actionopts.ErrorKind, expression string, params map[string]any) (actionopts.Predicate, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("exprcheck: compile %q: %w", expression, err)
	}
	c := &check{kind: kind, program: program, params: params}
	return c.run, nil
}

// MustNew is like New but panics on error.
func MustNew(kind actionopts.ErrorKind, expression string, params map[string]any) actionopts.Predicate {
	p, err := New(kind, expression, params)
	if err != nil {
		panic(err)
	}
	return p
}

type check struct {
	kind    actionopts.ErrorKind
	program *exprvm.Program
	params  map[string]any
}

func (c *check) run(value any, field string) (any, error) {
	env := map[string]any{
		"value": envValue(value),
		"field": field,
	}
	out, err := exprlang.Run(c.program, env)
	if err != nil {
		return nil, c.fail(field, value, err)
	}
	if ok, isBool := out.(bool); !isBool || !ok {
		return nil, c.fail(field, value, nil)
	}
	return value, nil
}

func (c *check) fail(field string, value any, cause error) error {
	err := c.kind.Fail(field, value, c.params)
	if cause == nil {
		return err
	}
	iss, _ := actionopts.AsIssues(err)
	for i := range iss {
		iss[i].Cause = cause
	}
	return iss
}

func envValue(v any) any {
	if n, ok := v.(gojson.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}
