// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a JSON value.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jvalue/value"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value as type T.
func Path[T value.Value](v value.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	return value.As[T](c.Value())
}

// A Cursor is a pointer that navigates into the structure of a value.Value.
type Cursor struct {
	org value.Value
	stk []step
	err error
}

// A step records a value reached by a cursor, and the location of that value
// in its container: a string key or an int offset. Values reached by calling a
// function have no location.
type step struct {
	v   value.Value
	loc any
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin value.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() value.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() value.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1].v
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []value.Value {
	out := make([]value.Value, len(c.stk)+1)
	out[0] = c.org
	for i, s := range c.stk {
		out[i+1] = s.v
	}
	return out
}

// Pointer renders the location of c relative to its origin as a JSON Pointer
// (RFC 6901). Steps taken by functions are not included.
func (c *Cursor) Pointer() string {
	var sb strings.Builder
	for _, s := range c.stk {
		switch t := s.loc.(type) {
		case int:
			sb.WriteByte('/')
			sb.WriteString(strconv.Itoa(t))
		case string:
			sb.WriteByte('/')
			sb.WriteString(pointerEscaper.Replace(t))
		}
	}
	return sb.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays or objects), or functions (see
// below). If the path cannot be completely consumed, traversal stops at the
// last value reached and an error is recorded. Use Err to recover the error.
// Down returns c to permit chaining.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves to the value of the object member with that key.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to the element of the array, or the value
// of the member of the object, at that offset. Negative indices count backward
// from the end (-1 is last, -2 second last). An error is reported if the index
// is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(value.Value) (value.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			switch e := cur.(type) {
			case value.Object:
				m := e.Find(t)
				if m == nil {
					return c.setErrorf("key %q not found", t)
				}
				cur = c.push(step{v: m.Value, loc: t})
			default:
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}

		case int:
			switch e := cur.(type) {
			case value.Array:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(step{v: e[i], loc: i})
			case value.Object:
				i, ok := fixArrayBound(len(e), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(step{v: e[i].Value, loc: e[i].Key})
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}

		case func(value.Value) (value.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(step{v: next})

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(s step) value.Value { c.stk = append(c.stk, s); return s.v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
