// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package adapt

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/value"
)

// Char is a rune that is written as a one-character string. A plain rune is
// an int32, and is written as a number.
type Char rune

var (
	charType        = reflect.TypeFor[Char]()
	numberType      = reflect.TypeFor[value.Number]()
	numericTextType = reflect.TypeFor[value.NumericText]()
	valueType       = reflect.TypeFor[value.Value]()
)

// scalarFactories are consulted before any user factory.
var scalarFactories = []Factory{
	FactoryFunc(boolFactory),
	FactoryFunc(charFactory),
	FactoryFunc(numberFactory),
	FactoryFunc(stringFactory),
}

// compositeFactories are consulted after all user factories.
var compositeFactories = []Factory{
	FactoryFunc(valueFactory),
	FactoryFunc(pointerFactory),
	FactoryFunc(interfaceFactory),
	FactoryFunc(sliceFactory),
	FactoryFunc(mapFactory),
	FactoryFunc(structFactory),
}

func boolFactory(_ *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.Bool {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		return w.Bool(v.Bool())
	}), true
}

func charFactory(_ *Dispatcher, t Type) (Converter, bool) {
	if t.Raw != charType {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		return w.String(string(value.Char(rune(v.Int()))))
	}), true
}

func numberFactory(_ *Dispatcher, t Type) (Converter, bool) {
	switch t.Raw {
	case numberType:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			return value.Encode(w, v.Interface().(value.Number))
		}), true
	case numericTextType:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			return w.Number(v.String())
		}), true
	}
	switch t.Raw.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			return w.Int(v.Int())
		}), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			return w.Uint(v.Uint())
		}), true
	case reflect.Float32:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			// Use the shortest representation of the float32, not its exact
			// float64 value.
			f, _ := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
			return w.Float(f)
		}), true
	case reflect.Float64:
		return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
			return w.Float(v.Float())
		}), true
	}
	return nil, false
}

func stringFactory(_ *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.String {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		return w.String(v.String())
	}), true
}

// valueFactory handles the value.Value interface and its concrete types.
// Pointers to those types are handled by pointerFactory.
func valueFactory(_ *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() == reflect.Pointer || !t.Raw.Implements(valueType) {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if v.Kind() == reflect.Interface && v.IsNil() {
			return w.Null()
		}
		return value.Encode(w, v.Interface().(value.Value))
	}), true
}

func pointerFactory(d *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.Pointer {
		return nil, false
	}
	elem, err := d.Converter(t.Arg)
	if err != nil {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if v.IsNil() {
			return w.Null()
		}
		return elem.WriteJSON(w, v.Elem())
	}), true
}

// interfaceFactory handles interface types by resolving the converter for
// the dynamic type of each value as it is written.
func interfaceFactory(d *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.Interface {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if v.IsNil() {
			return w.Null()
		}
		e := v.Elem()
		c, err := d.Converter(e.Type())
		if err != nil {
			return err
		}
		return c.WriteJSON(w, e)
	}), true
}

// sliceFactory handles slices and arrays. A nil slice is written as null.
func sliceFactory(d *Dispatcher, t Type) (Converter, bool) {
	if k := t.Raw.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	elem, err := d.Converter(t.Arg)
	if err != nil {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if v.Kind() == reflect.Slice && v.IsNil() {
			return w.Null()
		}
		if err := w.BeginArray(); err != nil {
			return err
		}
		for i := range v.Len() {
			if err := elem.WriteJSON(w, v.Index(i)); err != nil {
				return err
			}
		}
		return w.EndArray()
	}), true
}

// mapFactory handles maps whose keys have string kind. Members are written in
// ascending order by key. A nil map is written as null.
func mapFactory(d *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.Map || t.Raw.Key().Kind() != reflect.String {
		return nil, false
	}
	elem, err := d.Converter(t.Arg)
	if err != nil {
		return nil, false
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if v.IsNil() {
			return w.Null()
		}
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})
		if err := w.BeginObject(); err != nil {
			return err
		}
		for _, key := range keys {
			if err := w.Name(key.String()); err != nil {
				return err
			}
			if err := elem.WriteJSON(w, v.MapIndex(key)); err != nil {
				return err
			}
		}
		return w.EndObject()
	}), true
}

// structFactory handles struct types, writing the fields reported by the
// FieldAccessor of the dispatcher as object members.
func structFactory(d *Dispatcher, t Type) (Converter, bool) {
	if t.Raw.Kind() != reflect.Struct {
		return nil, false
	}
	fields := d.fields.Fields(t.Raw)
	convs := make([]Converter, len(fields))
	for i, f := range fields {
		c, err := d.Converter(f.Type)
		if err != nil {
			return nil, false
		}
		convs[i] = c
	}
	return ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		if err := w.BeginObject(); err != nil {
			return err
		}
		for i, f := range fields {
			fv, ok := f.Value(v)
			if !ok || (f.OmitEmpty && fv.IsZero()) {
				continue
			}
			if err := w.Name(f.Name); err != nil {
				return err
			}
			if err := convs[i].WriteJSON(w, fv); err != nil {
				return err
			}
		}
		return w.EndObject()
	}), true
}
