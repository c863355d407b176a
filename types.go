package arrskema

// Options are the validation switches read by the schemas in this module.
// The zero value disables every switch and is the option set used for checks
// that must not inherit caller preferences (exclusion matching).
type Options struct {
	// Convert enables string-to-sequence parsing, single-value wrapping and
	// the lenient scalar conversions of the bundled element schemas.
	Convert bool
	// AbortEarly stops at the first issue.
	AbortEarly bool
	// StripUnknown silently drops unmatched elements and unknown object keys.
	StripUnknown bool
}

// DefaultOptions returns the options used when callers pass none.
func DefaultOptions() Options { return Options{Convert: true} }

// Hole marks an absent element inside a sequence (a sparse slot). It is
// distinct from nil, which stands for an explicit null.
type Hole struct{}

func (Hole) String() string { return "undefined" }

// IsHole reports whether v is an absent element.
func IsHole(v any) bool {
	_, ok := v.(Hole)
	return ok
}
