// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package adapt converts Go values into calls on a jvalue.Writer.
//
// A Converter writes values of one Go type. A Factory inspects a requested
// type and either supplies a Converter for it or declines. A Dispatcher holds
// an ordered list of factories and resolves each type to the Converter of the
// first factory that accepts it:
//
//	d := adapt.New(&adapt.Options{
//	   Factories: []adapt.Factory{
//	      adapt.Func(func(w *jvalue.Writer, t time.Time) error {
//	         return w.String(t.Format(time.RFC3339))
//	      }),
//	   },
//	})
//	data, err := d.Marshal(v)
//
// Built-in converters for Booleans, characters (Char), numbers, and strings
// are consulted before any user factory. Built-in converters for values of
// the value package, pointers, interfaces, slices, arrays, maps with string
// keys, and structs are consulted after all user factories, so user factories
// may replace them.
package adapt

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/creachadair/jvalue"
	"github.com/puzpuzpuz/xsync/v3"
)

// A Converter writes values of a particular type to a Writer.
type Converter interface {
	// WriteJSON writes v to w as a single value. The type of v is the type
	// for which the converter was created.
	WriteJSON(w *jvalue.Writer, v reflect.Value) error
}

// ConverterFunc implements the Converter interface with a function.
type ConverterFunc func(w *jvalue.Writer, v reflect.Value) error

// WriteJSON implements the Converter interface by calling f.
func (f ConverterFunc) WriteJSON(w *jvalue.Writer, v reflect.Value) error { return f(w, v) }

// A Type describes a requested type. Raw is the type itself; Arg is its first
// type argument: the element type of a slice, array, pointer, or channel, the
// value type of a map, and nil for all other types.
type Type struct {
	Raw reflect.Type
	Arg reflect.Type
}

func (t Type) String() string {
	if t.Arg == nil {
		return t.Raw.String()
	}
	return fmt.Sprintf("%v[%v]", t.Raw, t.Arg)
}

// Resolve returns the Type descriptor for t.
func Resolve(t reflect.Type) Type {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Pointer, reflect.Map, reflect.Chan:
		return Type{Raw: t, Arg: t.Elem()}
	}
	return Type{Raw: t}
}

// A Factory supplies converters for the types it handles.
type Factory interface {
	// Create returns a Converter for t and true, or reports false if the
	// factory does not handle t. The Dispatcher d may be used to resolve
	// converters for other types, such as element types.
	Create(d *Dispatcher, t Type) (Converter, bool)
}

// FactoryFunc implements the Factory interface with a function.
type FactoryFunc func(d *Dispatcher, t Type) (Converter, bool)

// Create implements the Factory interface by calling f.
func (f FactoryFunc) Create(d *Dispatcher, t Type) (Converter, bool) { return f(d, t) }

// Func returns a Factory that handles exactly the type T, converting values
// with f.
func Func[T any](f func(w *jvalue.Writer, v T) error) Factory {
	want := reflect.TypeFor[T]()
	conv := ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		return f(w, v.Interface().(T))
	})
	return FactoryFunc(func(_ *Dispatcher, t Type) (Converter, bool) {
		if t.Raw == want {
			return conv, true
		}
		return nil, false
	})
}

// NotFoundError is the concrete type of errors reported when no factory
// supplies a converter for a type.
type NotFoundError struct {
	Type reflect.Type
}

// Error satisfies the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no converter for type %v", e.Type)
}

// Options are settings for a Dispatcher. A nil *Options is ready for use and
// provides default values as described.
type Options struct {
	// Factories are consulted in order after the built-in scalar converters
	// and before the built-in composite converters.
	Factories []Factory

	// Fields enumerates the fields of struct types for the built-in struct
	// converter. If nil, ReflectFields is used.
	Fields FieldAccessor
}

func (o *Options) factories() []Factory {
	if o == nil {
		return nil
	}
	return o.Factories
}

func (o *Options) fields() FieldAccessor {
	if o == nil || o.Fields == nil {
		return ReflectFields{}
	}
	return o.Fields
}

// A Dispatcher resolves Go types to converters. It is safe for concurrent use
// by multiple goroutines. The converter for each type is resolved once and
// cached.
type Dispatcher struct {
	factories []Factory
	fields    FieldAccessor
	cache     *xsync.MapOf[reflect.Type, Converter]

	// While a resolution is in progress, the converters it has created are
	// kept here in creation order, and published to cache only if the whole
	// resolution succeeds.
	pending map[reflect.Type]Converter
	order   []reflect.Type
}

// New constructs a Dispatcher with the given options.
func New(opts *Options) *Dispatcher {
	var fs []Factory
	fs = append(fs, scalarFactories...)
	fs = append(fs, opts.factories()...)
	fs = append(fs, compositeFactories...)
	return &Dispatcher{
		factories: fs,
		fields:    opts.fields(),
		cache:     xsync.NewMapOf[reflect.Type, Converter](),
	}
}

// Converter returns the converter for values of type t. If no factory
// supplies one, it reports an error of concrete type *NotFoundError. If t is
// a composite type, the converters for its components are resolved as well,
// and a failure for any of them is reported here rather than when a value is
// written.
func (d *Dispatcher) Converter(t reflect.Type) (Converter, error) {
	if c, ok := d.cache.Load(t); ok {
		return c, nil
	}
	if d.pending != nil {
		return d.resolvePending(t)
	}

	// Resolve in a private scope. Nothing is cached unless every type reached
	// from t resolves.
	r := &Dispatcher{
		factories: d.factories,
		fields:    d.fields,
		cache:     d.cache,
		pending:   make(map[reflect.Type]Converter),
	}
	_, err := r.resolvePending(t)
	pending, order := r.pending, r.order
	r.pending, r.order = nil, nil // r may be retained by converters
	if err != nil {
		return nil, err
	}
	for _, pt := range order {
		d.cache.LoadOrStore(pt, pending[pt])
	}
	c, _ := d.cache.Load(t)
	return c, nil
}

// resolvePending resolves t within the resolution in progress on d.
func (d *Dispatcher) resolvePending(t reflect.Type) (Converter, error) {
	if c, ok := d.pending[t]; ok {
		return c, nil
	}

	// Install a forwarding placeholder while the converter is resolved, so
	// that a recursive type can refer to itself.
	var wg sync.WaitGroup
	var resolved Converter
	wg.Add(1)
	fwd := ConverterFunc(func(w *jvalue.Writer, v reflect.Value) error {
		wg.Wait()
		return resolved.WriteJSON(w, v)
	})
	mark := len(d.order)
	d.pending[t] = fwd
	d.order = append(d.order, t)

	c, err := d.resolve(t)
	if err != nil {
		resolved = ConverterFunc(func(*jvalue.Writer, reflect.Value) error { return err })
		wg.Done()

		// Discard t and everything created while resolving it, since any of
		// those may refer to the placeholder for t.
		for _, pt := range d.order[mark:] {
			delete(d.pending, pt)
		}
		d.order = d.order[:mark]
		return nil, err
	}
	resolved = c
	wg.Done()
	d.pending[t] = c
	return c, nil
}

func (d *Dispatcher) resolve(t reflect.Type) (Converter, error) {
	rt := Resolve(t)
	for _, f := range d.factories {
		if c, ok := f.Create(d, rt); ok {
			return c, nil
		}
	}
	return nil, &NotFoundError{Type: t}
}

// Write writes v to w as the next value in the document. A nil v is written
// as null.
func (d *Dispatcher) Write(w *jvalue.Writer, v any) error {
	if v == nil {
		return w.Null()
	}
	rv := reflect.ValueOf(v)
	c, err := d.Converter(rv.Type())
	if err != nil {
		return err
	}
	return c.WriteJSON(w, rv)
}

// Encode writes v to out as a complete JSON document.
func (d *Dispatcher) Encode(out io.Writer, v any) error {
	w := jvalue.NewWriter(out)
	if err := d.Write(w, v); err != nil {
		return err
	}
	return w.Finish()
}

// Marshal returns the compact JSON encoding of v.
func (d *Dispatcher) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConverterFor returns a function that writes values of type T using the
// converter resolved by d. It reports an error of concrete type
// *NotFoundError if no factory supplies a converter for T.
func ConverterFor[T any](d *Dispatcher) (func(w *jvalue.Writer, v T) error, error) {
	t := reflect.TypeFor[T]()
	c, err := d.Converter(t)
	if err != nil {
		return nil, err
	}
	return func(w *jvalue.Writer, v T) error {
		rv := reflect.ValueOf(&v).Elem()
		return c.WriteJSON(w, rv)
	}, nil
}
