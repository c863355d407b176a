// Package fastjson provides a LiteralDriver backed by valyala/fastjson.
// Numbers decode to float64 (fast mode, with potential precision loss for
// large integers); use the default driver to keep json.Number.
package fastjson

import (
	fj "github.com/valyala/fastjson"

	arrskema "github.com/reoring/arrskema"
)

// Driver returns an arrskema.LiteralDriver backed by fastjson.
func Driver() arrskema.LiteralDriver { return driverFastJSON{} }

type driverFastJSON struct{}

func (driverFastJSON) ParseLiteral(text string) (any, error) {
	var p fj.Parser
	v, err := p.Parse(text)
	if err != nil {
		return nil, err
	}
	return toAny(v), nil
}

func (driverFastJSON) Name() string { return "fastjson" }

// toAny copies v out of the parser arena into plain Go values.
func toAny(v *fj.Value) any {
	switch v.Type() {
	case fj.TypeObject:
		o, _ := v.Object()
		out := make(map[string]any, o.Len())
		o.Visit(func(k []byte, vv *fj.Value) {
			out[string(k)] = toAny(vv)
		})
		return out
	case fj.TypeArray:
		a, _ := v.Array()
		out := make([]any, len(a))
		for i, e := range a {
			out[i] = toAny(e)
		}
		return out
	case fj.TypeString:
		return string(v.GetStringBytes())
	case fj.TypeNumber:
		return v.GetFloat64()
	case fj.TypeTrue:
		return true
	case fj.TypeFalse:
		return false
	default:
		return nil
	}
}
