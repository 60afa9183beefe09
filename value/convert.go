// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// TypeError is the concrete type of errors reported when a Go value or a JSON
// value does not have the type required by an operation.
type TypeError struct {
	Got  string // the type that was found
	Want string // a description of the required type
}

// Error satisfies the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: got %s, want %s", e.Got, e.Want)
}

// NumberOf converts a Go integer or floating-point value, NumericText, or
// Number into a Number. Named types with a numeric underlying type are
// accepted. Any other type is reported as a *TypeError.
//
// A float32 is converted using its shortest decimal representation, so
// float32(0.1) becomes 0.1 and not 0.10000000149011612.
func NumberOf(v any) (Number, error) {
	switch t := v.(type) {
	case Number:
		return t, nil
	case NumericText:
		return Text(string(t)), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		f, _ := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'g', -1, 32), 64)
		return Float(f), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	}
	return Number{}, &TypeError{Got: fmt.Sprintf("%T", v), Want: "number"}
}

// ToValue converts v into a Value. It accepts nil (as Null), a Value, a bool,
// a string, any type accepted by NumberOf, []any, and map[string]any, along
// with named types whose underlying type is bool or string. Slices and maps
// are converted recursively; map keys are sorted. Any other type is reported
// as a *TypeError.
func ToValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			ev, err := ToValue(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			ev, err := ToValue(t[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[i] = &Member{Key: key, Value: ev}
		}
		return out, nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		if _, ok := v.(NumericText); !ok {
			return String(rv.String()), nil
		}
	}
	n, err := NumberOf(v)
	if err != nil {
		return nil, &TypeError{Got: fmt.Sprintf("%T", v), Want: "JSON value"}
	}
	return n, nil
}

// MustValue is as ToValue, but panics if v cannot be converted.
func MustValue(v any) Value {
	out, err := ToValue(v)
	if err != nil {
		panic(err)
	}
	return out
}

// As returns v as concrete type T, or reports a *TypeError if v does not
// have that type. A nil Value is treated as Null.
func As[T Value](v Value) (T, error) {
	v = orNull(v)
	t, ok := v.(T)
	if !ok {
		return t, &TypeError{Got: v.Kind().String(), Want: kindName[T]()}
	}
	return t, nil
}

func kindName[T Value]() string {
	var zero T
	if any(zero) == nil {
		return "value"
	}
	return zero.Kind().String()
}

// AsBool returns the value of a Bool, or reports a *TypeError.
func AsBool(v Value) (bool, error) {
	b, err := As[Bool](v)
	return bool(b), err
}

// AsString returns the value of a String, or reports a *TypeError.
func AsString(v Value) (string, error) {
	s, err := As[String](v)
	return string(s), err
}

// AsInt64 returns the value of a Number as an int64. It reports a *TypeError
// if v is not a Number, or the error from Number.Int64.
func AsInt64(v Value) (int64, error) {
	n, err := As[Number](v)
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

// AsFloat64 returns the value of a Number as a float64. It reports a
// *TypeError if v is not a Number, or the error from Number.Float64.
func AsFloat64(v Value) (float64, error) {
	n, err := As[Number](v)
	if err != nil {
		return 0, err
	}
	return n.Float64()
}
