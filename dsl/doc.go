// Package dsl provides the schema builders for arrskema.
//
// Overview
//   - Array(): sequence schema with Items/Ordered/Min/Max/Length/Unique/Sparse/Single/Refine.
//   - Element schemas: Any(), Number(), String(), Bool(), Object(fields).
//   - Modifiers: Required(s), Optional(s), Forbidden(s), Strip(s), Label(s, name).
//
// Every builder method and modifier returns a new schema; nothing is changed
// in place. A schema declared once may be shared by any number of goroutines.
//
// How elements are resolved
//
// Items routes each schema by its presence marker when it is declared:
//   - Required(s): s must match one distinct element (declaring it twice needs two elements).
//   - Forbidden(s): elements matching s fail with array.excludes.
//   - anything else: s is one of the permitted element shapes.
//
// For every element, in order: holes are rejected unless Sparse(true);
// forbidden shapes are checked; the next Ordered slot is consumed when
// declared; otherwise the first unclaimed required member or permitted shape
// that accepts the element wins. Elements nothing accepts fail with
// array.includes (or array.includesOne, carrying the nested reason, when only
// one shape is declared), or are dropped when StripUnknown is set.
// Required members left unclaimed are reported as one aggregate issue.
//
// Example (tags)
//
//	tags := dsl.Array().Items(dsl.String()).Unique().Min(1)
//	v, err := arrskema.Validate(ctx, tags, []any{"dev", "ops"})
//
// Example (tuple with trailing options)
//
//	pair := dsl.Array().Ordered(dsl.Required(dsl.String()), dsl.Number())
//	_, err := arrskema.Validate(ctx, pair, []any{"x", 1, 2}) // array.orderedLength at position 2
//
// Example (single value)
//
//	ids := dsl.Array().Items(dsl.Number()).Single(true)
//	v, _ := arrskema.Validate(ctx, ids, 5) // []any{5.0}
//
// Example (required members with labels)
//
//	roles := dsl.Array().Items(
//	    dsl.Label(dsl.Required(dsl.String()), "owner"),
//	    dsl.Number(),
//	)
//	_, err := arrskema.Validate(ctx, roles, []any{1}) // array.includesRequiredKnowns
package dsl
