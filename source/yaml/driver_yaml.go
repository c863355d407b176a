// Package yaml provides a LiteralDriver backed by gopkg.in/yaml.v3, so
// string inputs may carry YAML flow or block sequences ("[a, b]", "- a\n- b").
package yaml

import (
	"errors"

	y "gopkg.in/yaml.v3"

	arrskema "github.com/reoring/arrskema"
)

// Driver returns an arrskema.LiteralDriver backed by yaml.v3.
func Driver() arrskema.LiteralDriver { return driverYAML{} }

type driverYAML struct{}

var errEmptyDocument = errors.New("yaml: empty document")

func (driverYAML) ParseLiteral(text string) (any, error) {
	var node any
	if err := y.Unmarshal([]byte(text), &node); err != nil {
		return nil, err
	}
	if node == nil && text == "" {
		return nil, errEmptyDocument
	}
	return normalizeValue(node), nil
}

func (driverYAML) Name() string { return "yaml.v3" }

// normalizeValue converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively. Maps with non-string keys drop those keys.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
