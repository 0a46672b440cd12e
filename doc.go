// Package actionopts turns loosely typed option objects (for example decoded
// from JSON crossing a process boundary) into validated, defaulted option
// instances for test actions and assertions.
//
// Model:
//
// - A Kind is an immutable schema: an ordered list of field Descriptors (the
// allow-list of assignable fields), Defaults and Derivations.
// - Kinds compose explicitly: Extend(parent, name) starts from a copy of the
// parent's lists and the kind appends its own. Redeclaring a path replaces the
// inherited descriptor in place.
// - A Path is a simple field or an (outer, inner) pair such as modifiers.ctrl.
// Only the inner member of a nested record is ever assigned.
// - A Predicate validates one value and is bound to an ErrorKind
// (category + constraint code). Construction is fail-fast and reports Issues
// (JSON Pointer, display name, code, message).
//
// Design policy:
// - Keep only public APIs in the root package; put assignment mechanics under internal/.
// - Messages come from i18n; JSON Schema projection types live under jsonschema/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	raw, err := actionopts.FromJSON(data)
//	opts, err := actionopts.NewClickOptions(ctx, raw, true)
//	var click actionopts.ClickOptions
//	err = opts.Decode(&click)
//
// Custom kinds:
//
//	base := actionopts.NewKind("scroll").
//	    Field(actionopts.Field("x"), actionopts.IntegerPredicate(kind)).Default(0).
//	    MustBuild()
//	smooth := actionopts.Extend(base, "smoothScroll").
//	    Field(actionopts.Field("duration"), nil).Default(nil).
//	    MustBuild()
package actionopts
