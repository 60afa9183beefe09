// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"fmt"
	"io"

	"github.com/creachadair/jvalue"
)

// Encode writes v to w as the next value in the document. A nil Value is
// written as null.
func Encode(w *jvalue.Writer, v Value) error {
	switch t := orNull(v).(type) {
	case Null:
		return w.Null()
	case Bool:
		return w.Bool(bool(t))
	case String:
		return w.String(string(t))
	case Number:
		return encodeNumber(w, t)
	case Array:
		if err := w.BeginArray(); err != nil {
			return err
		}
		for _, elt := range t {
			if err := Encode(w, elt); err != nil {
				return err
			}
		}
		return w.EndArray()
	case Object:
		if err := w.BeginObject(); err != nil {
			return err
		}
		for _, m := range t {
			if err := w.Name(m.Key); err != nil {
				return err
			}
			if err := Encode(w, m.Value); err != nil {
				return err
			}
		}
		return w.EndObject()
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func encodeNumber(w *jvalue.Writer, n Number) error {
	switch n.kind {
	case intNum:
		return w.Int(n.z)
	case uintNum:
		return w.Uint(n.u)
	case floatNum:
		return w.Float(n.f)
	default:
		return w.Number(string(n.text))
	}
}

// Write writes v to out as a complete JSON document. If indent != "", the
// output is indented as described by jvalue.Writer.SetIndent.
func Write(out io.Writer, v Value, indent string) error {
	w := jvalue.NewWriter(out)
	w.SetIndent(indent)
	if err := Encode(w, v); err != nil {
		return err
	}
	return w.Finish()
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonString returns the compact encoding of v, or "" if it cannot be encoded.
func jsonString(v Value) string {
	data, err := Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
