package engine

import (
	"math"
	"reflect"
	"strconv"

	"github.com/google/go-cmp/cmp"

	arrskema "github.com/reoring/arrskema"
)

// Kind is the run-time class a value is bucketed under for uniqueness checks.
// Values of different kinds never collide: 1 and "1" are distinct.
type Kind int

const (
	KindHole Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindStructured
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindHole:
		return "hole"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindStructured:
		return "structured"
	default:
		return "callable"
	}
}

// floater is satisfied by json.Number and the number types of JSON decoders.
type floater interface {
	Float64() (float64, error)
}

// Classify maps v to its kind and, for primitive kinds, to the key used to
// detect duplicates. Numbers of different Go types compare by value.
func Classify(v any) (Kind, string) {
	switch t := v.(type) {
	case arrskema.Hole:
		return KindHole, ""
	case nil:
		return KindNull, ""
	case bool:
		return KindBool, strconv.FormatBool(t)
	case string:
		return KindString, t
	case floater:
		f, err := t.Float64()
		if err != nil {
			return KindNumber, reflect.ValueOf(v).String()
		}
		return KindNumber, numberKey(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool, strconv.FormatBool(rv.Bool())
	case reflect.String:
		return KindString, rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindNumber, numberKey(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindNumber, numberKey(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return KindNumber, numberKey(rv.Float())
	case reflect.Func:
		return KindCallable, ""
	default:
		return KindStructured, ""
	}
}

func numberKey(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// deepEqualOpts allows comparing values that carry unexported struct fields.
var deepEqualOpts = []cmp.Option{cmp.Exporter(func(reflect.Type) bool { return true })}

// FirstDuplicate returns the position of the first element equal to an
// earlier one. Primitives are looked up by key; structured and callable
// values are compared by deep equality against earlier values of their kind.
func FirstDuplicate(values []any) (int, bool) {
	keys := map[Kind]map[string]struct{}{}
	scanned := map[Kind][]any{}
	for i, v := range values {
		kind, key := Classify(v)
		switch kind {
		case KindStructured, KindCallable:
			for _, prev := range scanned[kind] {
				if sameValue(kind, prev, v) {
					return i, true
				}
			}
			scanned[kind] = append(scanned[kind], v)
		default:
			bucket := keys[kind]
			if bucket == nil {
				bucket = map[string]struct{}{}
				keys[kind] = bucket
			}
			if _, dup := bucket[key]; dup {
				return i, true
			}
			bucket[key] = struct{}{}
		}
	}
	return -1, false
}

// sameValue compares structured values deeply. Callables are equal when they
// share a code pointer; cmp.Equal would only match two nil functions.
func sameValue(kind Kind, a, b any) bool {
	if kind == KindCallable {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return cmp.Equal(a, b, deepEqualOpts...)
}
