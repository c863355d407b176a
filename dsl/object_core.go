package dsl

import (
	"context"
	"maps"
	"slices"

	arrskema "github.com/reoring/arrskema"
)

// ObjectSchema validates map[string]any values field by field. It exists so
// arrays of records can be declared; keys are visited in ascending order for
// deterministic issue ordering.
type ObjectSchema struct {
	fields     map[string]arrskema.Schema
	sortedKeys []string
}

var _ arrskema.Schema = (*ObjectSchema)(nil)

// Object returns a schema for objects with the given fields. Absent fields
// are validated as holes, so Required fields report any.required. Keys not
// listed fail with object.allowUnknown unless StripUnknown is set.
func Object(fields map[string]arrskema.Schema) *ObjectSchema {
	fs := maps.Clone(fields)
	if fs == nil {
		fs = map[string]arrskema.Schema{}
	}
	return &ObjectSchema{fields: fs, sortedKeys: slices.Sorted(maps.Keys(fs))}
}

func (o *ObjectSchema) Flags() arrskema.Flags { return arrskema.Flags{} }

func (o *ObjectSchema) Validate(ctx context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	if arrskema.IsHole(v) {
		return arrskema.Result{Value: v}
	}
	src, ok := v.(map[string]any)
	if !ok {
		if s, isStr := v.(string); isStr && opt.Convert {
			src, ok = arrskema.ParseObjectLiteral(s)
		}
		if !ok {
			return arrskema.Fail(v, arrskema.CodeObjectBase, map[string]any{"value": v}, st, opt)
		}
	}

	out := make(map[string]any, len(src))
	var iss arrskema.Issues
	for _, k := range o.sortedKeys {
		field := o.fields[k]
		val, present := src[k]
		if !present {
			val = arrskema.Hole{}
		}
		res := field.Validate(ctx, val, st.Child(k, src), opt)
		if res.Errors != nil {
			iss = arrskema.AppendIssues(iss, res.Errors...)
			if opt.AbortEarly {
				return arrskema.Result{Value: v, Errors: iss}
			}
			continue
		}
		if arrskema.IsHole(res.Value) || field.Flags().Strip {
			continue
		}
		out[k] = res.Value
	}

	for _, k := range slices.Sorted(maps.Keys(src)) {
		if _, known := o.fields[k]; known {
			continue
		}
		if opt.StripUnknown {
			continue
		}
		child := st.Child(k, src)
		iss = arrskema.AppendIssues(iss, arrskema.MakeIssue(arrskema.CodeObjectAllowUnknown,
			map[string]any{"child": k, "value": src[k]}, child.PathInfo(), opt))
		if opt.AbortEarly {
			return arrskema.Result{Value: v, Errors: iss}
		}
	}

	if iss != nil {
		return arrskema.Result{Value: v, Errors: iss}
	}
	return arrskema.Result{Value: out}
}
