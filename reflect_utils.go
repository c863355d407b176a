package arrskema

import "reflect"

// AsSequence reports whether v is sequence-shaped and returns its elements as
// a fresh []any, so callers may rearrange the copy without touching v.
// Byte slices are treated as scalars.
func AsSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		out := make([]any, len(t))
		copy(out, t)
		return out, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
