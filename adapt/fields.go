// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package adapt

import (
	"reflect"
	"slices"
	"strings"
)

// A Field describes a single field of a struct type.
type Field struct {
	Name      string       // the object member name
	Type      reflect.Type // the declared type of the field
	Index     []int        // the index sequence for reflect.Value.FieldByIndex
	OmitEmpty bool         // omit the field when its value is zero
}

// Value returns the value of f in v, which must be a struct of the type from
// which f was obtained. It reports false if f is reached through a nil
// embedded pointer.
func (f Field) Value(v reflect.Value) (reflect.Value, bool) {
	fv, err := v.FieldByIndexErr(f.Index)
	return fv, err == nil
}

// A FieldAccessor enumerates the fields of a struct type that should be
// written as object members. The order of the result is the order in which
// the members are written.
type FieldAccessor interface {
	Fields(t reflect.Type) []Field
}

// ReflectFields is a FieldAccessor that reports the exported fields of a
// struct type, including those promoted from embedded structs.
//
// A `json` struct tag may rename a field or mark it omitempty, in the manner
// of encoding/json. Fields tagged "-" are skipped. If several fields have the
// same name, the one at the shallowest depth wins; if there is more than one
// at that depth, none of them is used.
type ReflectFields struct{}

// Fields implements the FieldAccessor interface.
func (ReflectFields) Fields(t reflect.Type) []Field {
	var cand []Field
	var hidden [][]int // index prefixes of embedded structs written whole
	for _, sf := range reflect.VisibleFields(t) {
		if slices.ContainsFunc(hidden, func(p []int) bool { return hasPrefix(sf.Index, p) }) {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if sf.Anonymous && name == "" && isStruct(sf.Type) {
			continue // its fields are promoted
		}
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous {
			hidden = append(hidden, sf.Index)
		}
		if name == "" {
			name = sf.Name
		}
		cand = append(cand, Field{
			Name:      name,
			Type:      sf.Type,
			Index:     sf.Index,
			OmitEmpty: slices.Contains(strings.Split(opts, ","), "omitempty"),
		})
	}

	// Resolve name collisions.
	out := cand[:0:0]
	for _, f := range cand {
		depth, count := len(f.Index), 0
		for _, g := range cand {
			if g.Name != f.Name {
				continue
			}
			if len(g.Index) < depth {
				depth, count = len(g.Index), 0
			}
			if len(g.Index) == depth {
				count++
			}
		}
		if len(f.Index) == depth && count == 1 {
			out = append(out, f)
		}
	}
	return out
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func hasPrefix(index, prefix []int) bool {
	return len(index) > len(prefix) && slices.Equal(index[:len(prefix)], prefix)
}
