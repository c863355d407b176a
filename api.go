package arrskema

import (
	"context"
	"errors"
)

// Schema is the capability every element-level validator exposes. Validate
// returns the normalized value together with the issues found; Result.Errors
// is nil on success. Implementations must not mutate themselves during
// Validate: one schema value may serve many concurrent calls.
type Schema interface {
	Validate(ctx context.Context, v any, st State, opt Options) Result
	// Flags exposes the metadata collection schemas route and report on.
	Flags() Flags
}

// Presence is the per-schema presence marker.
type Presence int

const (
	PresenceOptional Presence = iota // Absent values are accepted unchanged.
	PresenceRequired                 // Absent values are rejected.
	PresenceForbidden                // Any present value is rejected.
)

func (p Presence) String() string {
	switch p {
	case PresenceRequired:
		return "required"
	case PresenceForbidden:
		return "forbidden"
	default:
		return "optional"
	}
}

// Flags carries schema metadata that is not part of value checking itself.
type Flags struct {
	Presence Presence
	Strip    bool   // Matched elements are removed from the output.
	Label    string // Human name used when reporting missing members.
}

// Result is the outcome of a single Validate call.
type Result struct {
	Value  any
	Errors Issues
}

// OK reports whether the value was accepted.
func (r Result) OK() bool { return r.Errors == nil }

// Err returns the issues as an error, or nil on success.
func (r Result) Err() error {
	if r.Errors == nil {
		return nil
	}
	return r.Errors
}

// ErrNilSchema is returned by the top-level helpers when no schema is given.
var ErrNilSchema = errors.New("arrskema: nil schema")

// Validate runs s against v from the document root and returns the normalized
// value. Failures are returned as Issues. When no options are given,
// DefaultOptions applies; otherwise the last options value wins.
func Validate(ctx context.Context, s Schema, v any, opts ...Options) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	res := s.Validate(ctx, v, Root(v), opt)
	return res.Value, res.Err()
}

// Is reports whether v conforms to s.
func Is(ctx context.Context, s Schema, v any, opts ...Options) bool {
	_, err := Validate(ctx, s, v, opts...)
	return err == nil
}
