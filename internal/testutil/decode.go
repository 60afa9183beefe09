// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"errors"
	"fmt"

	"github.com/creachadair/jvalue/internal/escape"
	"github.com/creachadair/jvalue/value"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// Decode parses text as a single standard JSON value and returns its value
// representation. Numbers are kept as text, and object members keep the order
// in which they appear. Comments and trailing commas are rejected.
func Decode(text string) (value.Value, error) {
	v, err := hujson.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	if !v.IsStandard() {
		return nil, errors.New("input is not standard JSON")
	}
	return convert(v.Value)
}

// MustDecode is as Decode, but panics on error.
func MustDecode(text string) value.Value {
	v, err := Decode(text)
	if err != nil {
		panic(err)
	}
	return v
}

func convert(v hujson.ValueTrimmed) (value.Value, error) {
	switch t := v.(type) {
	case hujson.Literal:
		return convertLiteral(t)
	case *hujson.Array:
		out := make(value.Array, 0, len(t.Elements))
		for _, e := range t.Elements {
			ev, err := convert(e.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	case *hujson.Object:
		out := make(value.Object, 0, len(t.Members))
		for _, m := range t.Members {
			key, err := convertLiteral(m.Name.Value.(hujson.Literal))
			if err != nil {
				return nil, err
			}
			mv, err := convert(m.Value.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, &value.Member{Key: string(key.(value.String)), Value: mv})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown value type %T", v)
}

func convertLiteral(lit hujson.Literal) (value.Value, error) {
	if len(lit) == 0 {
		return nil, errors.New("empty literal")
	}
	switch lit[0] {
	case 'n':
		return value.Null{}, nil
	case 't':
		return value.Bool(true), nil
	case 'f':
		return value.Bool(false), nil
	case '"':
		dec, err := escape.Unquote(mem.B(lit[1 : len(lit)-1]))
		if err != nil {
			return nil, err
		}
		return value.String(dec), nil
	}
	return value.Text(string(lit)), nil
}
