package dsl

import (
	"context"
	"errors"
	"fmt"
	"slices"

	arrskema "github.com/reoring/arrskema"
	eng "github.com/reoring/arrskema/internal/engine"
)

// ArraySchema validates sequences. It is immutable: every configuring method
// returns a new schema and leaves the receiver untouched, so a schema may be
// shared by concurrent validations while it is still being extended.
type ArraySchema struct {
	items      []arrskema.Schema // everything declared through Items, in order
	ordered    []arrskema.Schema
	inclusions []arrskema.Schema
	exclusions []arrskema.Schema
	requireds  []arrskema.Schema
	sparse     bool
	single     bool
	rules      []arrayRule
	buildErrs  []error
}

var _ arrskema.Schema = (*ArraySchema)(nil)

// Array returns an empty array schema: any sequence without holes passes.
func Array() *ArraySchema { return &ArraySchema{} }

func (a *ArraySchema) clone() *ArraySchema {
	c := *a
	c.items = slices.Clone(a.items)
	c.ordered = slices.Clone(a.ordered)
	c.inclusions = slices.Clone(a.inclusions)
	c.exclusions = slices.Clone(a.exclusions)
	c.requireds = slices.Clone(a.requireds)
	c.rules = slices.Clone(a.rules)
	c.buildErrs = slices.Clone(a.buildErrs)
	return &c
}

// Items declares element schemas. Each schema is routed by its presence
// marker at this point: required schemas must each match one element,
// forbidden schemas reject the elements they match, and the rest describe
// permitted elements.
func (a *ArraySchema) Items(schemas ...arrskema.Schema) *ArraySchema {
	c := a.clone()
	for i, s := range schemas {
		if s == nil {
			c.buildErrs = append(c.buildErrs, fmt.Errorf("items: schema at index %d is nil", i))
			continue
		}
		c.items = append(c.items, s)
		switch s.Flags().Presence {
		case arrskema.PresenceRequired:
			c.requireds = append(c.requireds, s)
		case arrskema.PresenceForbidden:
			// matched for shape only; the forbidden marker would reject everything
			c.exclusions = append(c.exclusions, Optional(s))
		default:
			c.inclusions = append(c.inclusions, s)
		}
	}
	return c
}

// Ordered declares positional schemas: the n-th element must match the n-th
// schema. Without Items, sequences longer than the ordered list fail with
// array.orderedLength; with Items, the extra elements are matched against
// the items. Required positional schemas must be filled.
func (a *ArraySchema) Ordered(schemas ...arrskema.Schema) *ArraySchema {
	c := a.clone()
	for i, s := range schemas {
		if s == nil {
			c.buildErrs = append(c.buildErrs, fmt.Errorf("ordered: schema at index %d is nil", i))
			continue
		}
		c.ordered = append(c.ordered, s)
	}
	return c
}

// Sparse allows (true) or rejects (false, the default) holes in the sequence.
func (a *ArraySchema) Sparse(enabled bool) *ArraySchema {
	c := a.clone()
	c.sparse = enabled
	return c
}

// Single lets a lone value stand for a one-element sequence when Convert is
// set.
func (a *ArraySchema) Single(enabled bool) *ArraySchema {
	c := a.clone()
	c.single = enabled
	return c
}

// Build returns the schema or the configuration errors recorded while it was
// declared.
func (a *ArraySchema) Build() (*ArraySchema, error) {
	if len(a.buildErrs) > 0 {
		return nil, errors.Join(a.buildErrs...)
	}
	return a, nil
}

// MustBuild is like Build but panics on configuration errors. Use it for
// package-level schema declarations.
func (a *ArraySchema) MustBuild() *ArraySchema {
	s, err := a.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (a *ArraySchema) Flags() arrskema.Flags { return arrskema.Flags{} }

// Validate checks v: sequence shape and element resolution first, then the
// length, uniqueness and refine rules in declaration order. Rules only run
// on a sequence whose elements were all resolved.
func (a *ArraySchema) Validate(ctx context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	if arrskema.IsHole(v) {
		return arrskema.Result{Value: v}
	}
	res := a.base(ctx, v, st, opt)
	if res.Errors != nil {
		return res
	}
	seq, _ := res.Value.([]any)
	var iss arrskema.Issues
	for _, r := range a.rules {
		if it := r.check(ctx, seq, st, opt); it != nil {
			iss = arrskema.AppendIssues(iss, *it)
			if opt.AbortEarly {
				break
			}
		}
	}
	return arrskema.Result{Value: seq, Errors: iss}
}

func (a *ArraySchema) pools() eng.Pools {
	return eng.Pools{
		Ordered:    a.ordered,
		Requireds:  a.requireds,
		Inclusions: a.inclusions,
		Exclusions: a.exclusions,
		HasItems:   len(a.items) > 0,
		Sparse:     a.sparse,
	}
}

func (a *ArraySchema) base(ctx context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	c := eng.Coerce(v, a.single, opt)
	if !c.IsSequence {
		return arrskema.Fail(c.Value, arrskema.CodeArrayBase, nil, st, opt)
	}
	p := a.pools()
	if !p.NeedsCheck() {
		return arrskema.Result{Value: c.Seq}
	}

	out, errs := eng.Match(ctx, p, c.Seq, c.WasSequence, st, opt)
	if errs != nil && c.WasSequence && opt.Convert && a.single {
		// the whole sequence may itself be the single value
		if wrapped, werrs := eng.Match(ctx, p, []any{c.Seq}, true, st, opt); werrs == nil {
			return arrskema.Result{Value: wrapped}
		}
	}
	return arrskema.Result{Value: out, Errors: errs}
}
