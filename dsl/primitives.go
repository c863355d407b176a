package dsl

import (
	"context"
	"math"
	"reflect"
	"strconv"
	"strings"

	arrskema "github.com/reoring/arrskema"
)

// Any accepts every value unchanged.
func Any() arrskema.Schema { return anySchema{} }

// Number accepts Go numeric values and JSON numbers and normalizes them to
// float64. With Convert, numeric strings are accepted too. NaN is rejected.
func Number() arrskema.Schema { return numberSchema{} }

// String accepts string values (including named string types).
func String() arrskema.Schema { return stringSchema{} }

// Bool accepts booleans and, with Convert, the strings "true" and "false".
func Bool() arrskema.Schema { return boolSchema{} }

type anySchema struct{}

type numberSchema struct{}

type stringSchema struct{}

type boolSchema struct{}

func (anySchema) Flags() arrskema.Flags { return arrskema.Flags{} }

func (anySchema) Validate(_ context.Context, v any, _ arrskema.State, _ arrskema.Options) arrskema.Result {
	return arrskema.Result{Value: v}
}

func (numberSchema) Flags() arrskema.Flags { return arrskema.Flags{} }

func (numberSchema) Validate(_ context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	if arrskema.IsHole(v) {
		return arrskema.Result{Value: v}
	}
	f, ok := toFloat(v, opt.Convert)
	if !ok || math.IsNaN(f) {
		return arrskema.Fail(v, arrskema.CodeNumberBase, map[string]any{"value": v}, st, opt)
	}
	return arrskema.Result{Value: f}
}

// floater is satisfied by json.Number and the number types of JSON decoders.
type floater interface {
	Float64() (float64, error)
}

func toFloat(v any, convert bool) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		if !convert {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case floater:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func (stringSchema) Flags() arrskema.Flags { return arrskema.Flags{} }

func (stringSchema) Validate(_ context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	if arrskema.IsHole(v) {
		return arrskema.Result{Value: v}
	}
	if s, ok := v.(string); ok {
		return arrskema.Result{Value: s}
	}
	// json.Number has string kind but is a number
	if _, isNum := v.(floater); !isNum {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			return arrskema.Result{Value: rv.String()}
		}
	}
	return arrskema.Fail(v, arrskema.CodeStringBase, map[string]any{"value": v}, st, opt)
}

func (boolSchema) Flags() arrskema.Flags { return arrskema.Flags{} }

func (boolSchema) Validate(_ context.Context, v any, st arrskema.State, opt arrskema.Options) arrskema.Result {
	switch t := v.(type) {
	case arrskema.Hole:
		return arrskema.Result{Value: v}
	case bool:
		return arrskema.Result{Value: t}
	case string:
		if opt.Convert {
			switch strings.ToLower(t) {
			case "true":
				return arrskema.Result{Value: true}
			case "false":
				return arrskema.Result{Value: false}
			}
		}
	}
	return arrskema.Fail(v, arrskema.CodeBooleanBase, map[string]any{"value": v}, st, opt)
}
