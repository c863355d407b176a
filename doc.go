// Package arrskema provides:
//
// - Schema-driven validation and normalization of sequence values (ordered slots,
//   required members, permitted and forbidden element shapes, sparseness, single-value coercion)
// - A stable error model via Issues (dotted path, code, message, structured params)
// - Pluggable literal drivers used to read string-encoded sequences when conversion is enabled
//
// Design policy:
// - Keep only the public model in the root package; the matching engine lives under internal/.
// - Place builders under dsl/ and alternative literal drivers under source/.
// - HTTP boundary helpers live in middleware/; the check CLI in cmd/arrskema.
// - Schemas are immutable once built and safe to share across goroutines.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	tags := dsl.Array().Items(dsl.String()).Unique().Min(1)
//	v, err := arrskema.Validate(ctx, tags, []any{"a", "b"})
//	if iss, ok := arrskema.AsIssues(err); ok {
//	    for _, it := range iss {
//	        fmt.Println(it.Path, it.Code, it.Message)
//	    }
//	}
package arrskema
