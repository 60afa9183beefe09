// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

// Equal reports whether a and b are equal JSON values. A nil Value is treated
// as Null.
//
// Numbers are compared by value as described by Number.Equal, regardless of
// their representation. Strings and Booleans compare by content, and all
// nulls are equal. Arrays are equal if they have equal elements in the same
// order. Objects are equal if they have the same keys with equal values, in
// any order. If an object has more than one member with the same key, only
// the first is compared, as for Object.Find. A value of one kind is never
// equal to a value of another kind.
func Equal(a, b Value) bool {
	a, b = orNull(a), orNull(b)
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x.Equal(y)
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		return ok && len(x) == len(y) && objectSubset(x, y) && objectSubset(y, x)
	default:
		return false
	}
}

// objectSubset reports whether every key of x is a key of y with an equal
// value.
func objectSubset(x, y Object) bool {
	for _, m := range x {
		n := y.Find(m.Key)
		if n == nil || !Equal(x.Find(m.Key).Value, n.Value) {
			return false
		}
	}
	return true
}
