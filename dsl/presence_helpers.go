package dsl

import (
	"context"

	arrskema "github.com/reoring/arrskema"
)

// flagged overlays Flags on an inner schema and applies the presence rules
// before delegating. Every modifier returns a new flagged value; the schema
// passed in is left untouched.
type flagged struct {
	inner arrskema.Schema
	flags arrskema.Flags
}

var _ arrskema.Schema = flagged{}

func modify(s arrskema.Schema, fn func(*arrskema.Flags)) arrskema.Schema {
	out := flagged{inner: s, flags: s.Flags()}
	if f, ok := s.(flagged); ok {
		out.inner = f.inner
	}
	fn(&out.flags)
	return out
}

// Required marks s as required: an absent value fails with any.required and,
// inside Items, s must match one element of the sequence.
func Required(s arrskema.Schema) arrskema.Schema {
	return modify(s, func(f *arrskema.Flags) { f.Presence = arrskema.PresenceRequired })
}

// Optional resets the presence marker of s.
func Optional(s arrskema.Schema) arrskema.Schema {
	return modify(s, func(f *arrskema.Flags) { f.Presence = arrskema.PresenceOptional })
}

// Forbidden marks s as forbidden: any present value fails with any.unknown
// and, inside Items, elements matching s are rejected.
func Forbidden(s arrskema.Schema) arrskema.Schema {
	return modify(s, func(f *arrskema.Flags) { f.Presence = arrskema.PresenceForbidden })
}

// Strip removes values accepted by s from the enclosing container.
func Strip(s arrskema.Schema) arrskema.Schema {
	return modify(s, func(f *arrskema.Flags) { f.Strip = true })
}

// Label names s in missing-member reports.
func Label(s arrskema.Schema, name string) arrskema.Schema {
	return modify(s, func(f *arrskema.Flags) { f.Label = name })
}

func (f flagged) Flags() arrskema.Flags { return f.flags }

func (f flagged) Validate(ctx context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	if arrskema.IsHole(v) {
		if f.flags.Presence == arrskema.PresenceRequired {
			return arrskema.Fail(v, arrskema.CodeAnyRequired, nil, st, opt)
		}
		return arrskema.Result{Value: v}
	}
	if f.flags.Presence == arrskema.PresenceForbidden {
		return arrskema.Fail(v, arrskema.CodeAnyUnknown, nil, st, opt)
	}
	return f.inner.Validate(ctx, v, st, opt)
}
