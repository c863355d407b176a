package dsl

import (
	"context"
	"fmt"

	arrskema "github.com/reoring/arrskema"
	eng "github.com/reoring/arrskema/internal/engine"
)

// arrayRule is a post-resolution check. check returns nil when the sequence
// satisfies the rule.
type arrayRule struct {
	name  string
	check func(ctx context.Context, seq []any, st arrskema.State, opt arrskema.Options) *arrskema.Issue
}

func (a *ArraySchema) withRule(r arrayRule) *ArraySchema {
	c := a.clone()
	c.rules = append(c.rules, r)
	return c
}

func (a *ArraySchema) withLimit(name string, n int, code string, ok func(l int) bool) *ArraySchema {
	if n < 0 {
		c := a.clone()
		c.buildErrs = append(c.buildErrs, fmt.Errorf("%s: limit must be a non-negative integer, got %d", name, n))
		return c
	}
	return a.withRule(arrayRule{name: name, check: func(_ context.Context, seq []any, st arrskema.State, opt arrskema.Options) *arrskema.Issue {
		if ok(len(seq)) {
			return nil
		}
		it := arrskema.MakeIssue(code, map[string]any{"limit": n, "value": seq}, st.PathInfo(), opt)
		return &it
	}})
}

// Min requires at least n elements.
func (a *ArraySchema) Min(n int) *ArraySchema {
	return a.withLimit("min", n, arrskema.CodeArrayMin, func(l int) bool { return l >= n })
}

// Max allows at most n elements.
func (a *ArraySchema) Max(n int) *ArraySchema {
	return a.withLimit("max", n, arrskema.CodeArrayMax, func(l int) bool { return l <= n })
}

// Length requires exactly n elements.
func (a *ArraySchema) Length(n int) *ArraySchema {
	return a.withLimit("length", n, arrskema.CodeArrayLength, func(l int) bool { return l == n })
}

// Unique rejects sequences holding two equal elements. Elements are compared
// within their run-time kind only, so 1 and "1" never collide; records and
// lists compare by deep equality.
func (a *ArraySchema) Unique() *ArraySchema {
	return a.withRule(arrayRule{name: "unique", check: func(_ context.Context, seq []any, st arrskema.State, opt arrskema.Options) *arrskema.Issue {
		pos, dup := eng.FirstDuplicate(seq)
		if !dup {
			return nil
		}
		it := arrskema.MakeIssue(arrskema.CodeArrayUnique, map[string]any{"pos": pos, "value": seq[pos]}, st.PathInfo(), opt)
		return &it
	}})
}

// Refine adds a custom rule over the resolved sequence. A non-nil error from
// fn is reported as any.custom with the rule name and the error as cause.
func (a *ArraySchema) Refine(name string, fn func(ctx context.Context, seq []any) error) *ArraySchema {
	if fn == nil {
		c := a.clone()
		c.buildErrs = append(c.buildErrs, fmt.Errorf("refine %q: nil function", name))
		return c
	}
	return a.withRule(arrayRule{name: name, check: func(ctx context.Context, seq []any, st arrskema.State, opt arrskema.Options) *arrskema.Issue {
		err := fn(ctx, seq)
		if err == nil {
			return nil
		}
		it := arrskema.MakeIssue(arrskema.CodeAnyCustom, map[string]any{"rule": name, "cause": err.Error()}, st.PathInfo(), opt)
		return &it
	}})
}
