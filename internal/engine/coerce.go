package engine

import (
	arrskema "github.com/reoring/arrskema"
)

// Coerced is the candidate produced by the coercion front-end.
type Coerced struct {
	// Value is the working value: the raw input, the parsed literal, or the
	// single-wrapped scalar.
	Value any
	// Seq holds a private copy of the elements when IsSequence is set.
	Seq         []any
	IsSequence  bool
	WasSequence bool // Sequence-shaped before any single wrapping.
}

// Coerce normalizes raw into a candidate sequence. Strings are read as
// sequence literals when opt.Convert is set; a scalar is wrapped into a
// one-element sequence when both single and opt.Convert are set.
func Coerce(raw any, single bool, opt arrskema.Options) Coerced {
	c := Coerced{Value: raw}
	if s, ok := raw.(string); ok && opt.Convert {
		if lit := arrskema.ParseSequenceLiteral(s); lit.OK {
			c.Value = lit.Seq
		}
	}
	seq, ok := arrskema.AsSequence(c.Value)
	c.WasSequence = ok
	if !ok && opt.Convert && single {
		seq, ok = []any{c.Value}, true
		c.Value = seq
	}
	c.Seq, c.IsSequence = seq, ok
	return c
}
