// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines an in-memory representation of JSON values.
//
// A Value is exactly one of Null, Bool, Number, String, Array, or Object.
// Arrays and objects may be modified while they are being built; once a
// value is handed to an encoder it should be treated as read-only.
//
// Values are compared with Equal, which treats numbers by numeric value
// regardless of representation, and objects without regard to the order of
// their members.
package value

import (
	"fmt"
	"slices"
)

// A Value is an arbitrary JSON value.
// The concrete type is one of Null, Bool, Number, String, Array, or Object.
type Value interface {
	// Kind reports the kind of JSON value.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value, or "" if the value
	// cannot be encoded.
	JSON() string

	// Clone returns a deep copy of the value.
	Clone() Value

	isValue()
}

// Kind identifies the kind of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// Null represents the null constant. All Null values are identical.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (Null) JSON() string   { return "null" }
func (Null) Clone() Value   { return Null{} }
func (Null) String() string { return "null" }
func (Null) isValue()       {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind     { return BoolKind }
func (b Bool) Clone() Value { return b }
func (Bool) isValue()       {}

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// A String is a string value. There is no separate kind for a single
// character; use Char to construct a one-character string.
type String string

// Char returns a String consisting of the single rune r.
func Char(r rune) String { return String(string(r)) }

func (String) Kind() Kind     { return StringKind }
func (s String) Clone() Value { return s }
func (s String) JSON() string { return jsonString(s) }
func (String) isValue()       {}

// An Array is a sequence of values.
type Array []Value

// Add appends values to a. A nil value is added as Null.
func (a *Array) Add(vs ...Value) {
	for _, v := range vs {
		*a = append(*a, orNull(v))
	}
}

// Remove removes the element at offset i of a, shifting the later elements
// down. It panics if i is out of range.
func (a *Array) Remove(i int) { *a = slices.Delete(*a, i, i+1) }

// At returns the element at offset i of a. Negative offsets count backward
// from the end (-1 is last). It reports false if i is out of range.
func (a Array) At(i int) (Value, bool) {
	if i < 0 {
		i += len(a)
	}
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (Array) Kind() Kind     { return ArrayKind }
func (a Array) JSON() string { return jsonString(a) }
func (Array) isValue()       {}

func (a Array) Clone() Value {
	if a == nil {
		return Array(nil)
	}
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = orNull(v).Clone()
	}
	return out
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be acceptable to MustValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: MustValue(value)}
}

// An Object is a collection of key-value members. The keys of an object are
// unique; Set and Remove maintain this. Members are encoded in order, but the
// order of members does not affect equality.
type Object []*Member

// Set sets the value of key in o. If o already has a member with that key,
// its value is replaced in place; otherwise a new member is appended. A nil
// value is stored as Null.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = orNull(v)
		return
	}
	*o = append(*o, &Member{Key: key, Value: orNull(v)})
}

// Remove removes the member of o with the given key, and reports whether
// such a member was found.
func (o *Object) Remove(key string) bool {
	if i := o.index(key); i >= 0 {
		*o = slices.Delete(*o, i, i+1)
		return true
	}
	return false
}

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.index(key); i >= 0 {
		return o[i]
	}
	return nil
}

// Get returns the value of the member of o with the given key, and reports
// whether it was found.
func (o Object) Get(key string) (Value, bool) {
	if m := o.Find(key); m != nil {
		return m.Value, true
	}
	return nil, false
}

// Has reports whether o has a member with the given key.
func (o Object) Has(key string) bool { return o.index(key) >= 0 }

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

func (o Object) index(key string) int {
	return slices.IndexFunc(o, func(m *Member) bool { return m.Key == key })
}

func (Object) Kind() Kind     { return ObjectKind }
func (o Object) JSON() string { return jsonString(o) }
func (Object) isValue()       {}

func (o Object) Clone() Value {
	if o == nil {
		return Object(nil)
	}
	out := make(Object, len(o))
	for i, m := range o {
		out[i] = &Member{Key: m.Key, Value: orNull(m.Value).Clone()}
	}
	return out
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}
