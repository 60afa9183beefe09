// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jvalue/internal/testutil"
	"github.com/creachadair/jvalue/value"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestNumberEqual(t *testing.T) {
	nan := value.Float(math.NaN())
	tests := []struct {
		a, b value.Number
		want bool
	}{
		{value.Int(1), value.Text("1"), true},
		{value.Int(1), value.Float(1.0), true},
		{value.Text("1"), value.Float(1.0), true},
		{value.Text("1"), value.Text("1.0"), true},
		{value.Text("1e2"), value.Uint(100), true},
		{value.Int(-5), value.Uint(5), false},
		{value.Uint(math.MaxUint64), value.Text("18446744073709551615"), true},
		{value.Int(math.MaxInt64), value.Int(math.MaxInt64 - 1), false},
		{value.Int(1), value.Int(2), false},
		{value.Float(0.5), value.Text("5e-1"), true},
		{value.Float(0.1), value.Float(0.2), false},

		{nan, nan, true},
		{nan, value.Float(math.NaN()), true},
		{nan, value.Float(0), false},
		{value.Int(0), nan, false},

		{value.Float(0), value.Float(math.Copysign(0, -1)), false},
		{value.Text("0"), value.Text("-0"), true}, // both parse as int64 zero
		{value.Text("0.0"), value.Text("-0.0"), false},

		{value.Text("bogus"), value.Text("bogus"), true},
		{value.Text("bogus"), value.Text("other"), false},
		{value.Text("bogus"), value.Int(0), false},

		// Text that is not a JSON number compares as text.
		{value.Text("NaN"), nan, false},
		{value.Text("NaN"), value.Text("NaN"), true},
		{value.Text("Inf"), value.Float(math.Inf(1)), false},
		{value.Text("0x1p0"), value.Float(1), false},
		{value.Text("+1"), value.Int(1), false},
		{value.Text("01"), value.Int(1), false},

		// Integers beyond the range of an int64 are compared as float64.
		{value.Uint(math.MaxUint64), value.Uint(math.MaxUint64 - 1), true},
		{value.Text("9223372036854775808"), value.Uint(1 << 63), true},
	}
	for _, tc := range tests {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := tc.b.Equal(tc.a); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.b, tc.a, got, tc.want)
		}
		if got := value.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("value.Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNumberAccessors(t *testing.T) {
	if !value.Int(3).IsInteger() || !value.Text("-12").IsInteger() || !value.Uint(7).IsInteger() {
		t.Error("IsInteger: got false for an integer")
	}
	if value.Float(3).IsInteger() || value.Uint(math.MaxUint64).IsInteger() ||
		value.Text("1.5").IsInteger() || value.Text("+1").IsInteger() {
		t.Error("IsInteger: got true for a non-integer")
	}
	if !value.Text("1").IsText() || value.Int(1).IsText() {
		t.Error("IsText: wrong result")
	}
	if !value.Float(1).IsFloat() || value.Text("1.5").IsFloat() {
		t.Error("IsFloat: wrong result")
	}

	if z, err := value.Float(42).Int64(); err != nil || z != 42 {
		t.Errorf("Float(42).Int64(): got %v, %v; want 42, nil", z, err)
	}
	if z, err := value.Float(1.5).Int64(); err == nil {
		t.Errorf("Float(1.5).Int64(): got %v, want error", z)
	}
	if _, err := value.Uint(math.MaxUint64).Int64(); !errors.Is(err, strconv.ErrRange) {
		t.Errorf("Uint(max).Int64(): got %v, want %v", err, strconv.ErrRange)
	}
	if f, err := value.Text("2.5e3").Float64(); err != nil || f != 2500 {
		t.Errorf("Text(2.5e3).Float64(): got %v, %v; want 2500, nil", f, err)
	}
	if _, err := value.Text("bogus").Float64(); err == nil {
		t.Error("Text(bogus).Float64(): got nil, want error")
	}
	if got, want := value.Int(12).Text(), value.NumericText("12"); got != want {
		t.Errorf("Int(12).Text(): got %q, want %q", got, want)
	}

	var zero value.Number
	if !zero.Equal(value.Int(0)) || zero.String() != "0" {
		t.Errorf("Zero Number: got %v, want 0", zero)
	}
}

func TestNumericText(t *testing.T) {
	n := value.NumericText("1")
	if n == value.NumericText("1.0") {
		t.Error("NumericText 1 == 1.0, want text inequality")
	}
	if !n.Valid() || value.NumericText("01").Valid() {
		t.Error("Valid: wrong result")
	}
	if v, err := n.Int(); err != nil || v != 1 {
		t.Errorf("Int: got %v, %v; want 1, nil", v, err)
	}
	if v, err := value.NumericText("0.25").Float32(); err != nil || v != 0.25 {
		t.Errorf("Float32: got %v, %v; want 0.25, nil", v, err)
	}
	if _, err := value.NumericText("1.5").Int64(); err == nil {
		t.Error("Int64(1.5): got nil, want error")
	}
	if _, err := value.NumericText("x").Float64(); err == nil {
		t.Error("Float64(x): got nil, want error")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b value.Value
		want bool
	}{
		{value.Null{}, value.Null{}, true},
		{nil, value.Null{}, true},
		{value.Null{}, value.Bool(false), false},
		{value.Bool(true), value.Bool(true), true},
		{value.Bool(true), value.Bool(false), false},
		{value.String("a"), value.String("a"), true},
		{value.String("1"), value.Int(1), false},
		{value.Char('x'), value.String("x"), true},
		{value.Array{}, value.Array(nil), true},
		{value.Array{value.Int(1), value.String("x")}, value.Array{value.Text("1.0"), value.String("x")}, true},
		{value.Array{value.Int(1), value.Int(2)}, value.Array{value.Int(2), value.Int(1)}, false},
		{value.Array{value.Int(1)}, value.Array{value.Int(1), value.Int(1)}, false},
		{value.Array{}, value.Object{}, false},
		{
			value.Object{value.Field("a", 1), value.Field("b", true)},
			value.Object{value.Field("b", true), value.Field("a", 1.0)},
			true,
		},
		{
			value.Object{value.Field("a", 1)},
			value.Object{value.Field("a", 2)},
			false,
		},
		{
			value.Object{value.Field("a", 1)},
			value.Object{value.Field("b", 1)},
			false,
		},
		{
			value.Object{value.Field("a", nil)},
			value.Object{value.Field("a", nil), value.Field("b", nil)},
			false,
		},

		// Duplicate keys, which Set does not create but a literal may.
		{
			value.Object{value.Field("a", 1), value.Field("a", 1)},
			value.Object{value.Field("a", 1), value.Field("b", 2)},
			false,
		},
		{
			value.Object{value.Field("a", 1), value.Field("a", 2)},
			value.Object{value.Field("a", 1), value.Field("a", 3)},
			true,
		},
		{
			value.Object{value.Field("a", 1), value.Field("a", 2)},
			value.Object{value.Field("a", 2), value.Field("a", 1)},
			false,
		},
	}
	for _, tc := range tests {
		if got := value.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := value.Equal(tc.b, tc.a); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestArray(t *testing.T) {
	var a value.Array
	a.Add(value.Int(1), nil, value.String("x"))
	if a.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", a.Len())
	}
	if v, ok := a.At(1); !ok || v.Kind() != value.NullKind {
		t.Errorf("At(1): got %v, %v; want null, true", v, ok)
	}
	if v, ok := a.At(-1); !ok || !value.Equal(v, value.String("x")) {
		t.Errorf("At(-1): got %v, %v; want x, true", v, ok)
	}
	if v, ok := a.At(3); ok {
		t.Errorf("At(3): got %v, want not found", v)
	}
	a.Remove(0)
	if got, want := a.JSON(), `[null,"x"]`; got != want {
		t.Errorf("After Remove: got %#q, want %#q", got, want)
	}
	mtest.MustPanic(t, func() { a.Remove(5) })
}

func TestObject(t *testing.T) {
	var o value.Object
	o.Set("a", value.Int(1))
	o.Set("b", nil)
	o.Set("a", value.Int(2)) // replaces in place

	if diff := cmp.Diff([]string{"a", "b"}, o.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
	if got, want := o.JSON(), `{"a":2,"b":null}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if v, ok := o.Get("a"); !ok || !value.Equal(v, value.Int(2)) {
		t.Errorf("Get(a): got %v, %v; want 2, true", v, ok)
	}
	if _, ok := o.Get("c"); ok {
		t.Error("Get(c): unexpectedly found")
	}
	if !o.Has("b") || o.Has("c") {
		t.Error("Has: wrong result")
	}
	if !o.Remove("a") || o.Remove("a") {
		t.Error("Remove: wrong result")
	}
	if o.Len() != 1 || o.Find("a") != nil {
		t.Errorf("After Remove: got %v", o.JSON())
	}
}

// Scenario: equality of values built from different numeric representations.
func TestMixedRepresentations(t *testing.T) {
	a := value.Array{value.Int(1), value.String("x")}
	b := value.Array{value.Text("1.0"), value.String("x")}
	if !value.Equal(a, b) {
		t.Errorf("Equal(%v, %v): got false, want true", a.JSON(), b.JSON())
	}
	if a.JSON() == b.JSON() {
		t.Errorf("Encodings should differ: both %#q", a.JSON())
	}
}

func TestNull(t *testing.T) {
	var a, b value.Null
	if a != b || a.Clone() != value.Value(value.Null{}) {
		t.Error("Null values are not identical")
	}
	if a.JSON() != "null" || a.Kind() != value.NullKind {
		t.Errorf("Null: got %q, %v", a.JSON(), a.Kind())
	}
}

func TestClone(t *testing.T) {
	orig := value.Object{
		value.Field("list", []any{1, "two", map[string]any{"x": true}}),
		value.Field("n", nil),
	}
	cp := orig.Clone().(value.Object)
	if !value.Equal(orig, cp) {
		t.Fatalf("Clone: got %v, want %v", cp.JSON(), orig.JSON())
	}

	// Modifying the clone does not affect the original.
	cp.Set("n", value.Int(5))
	inner := cp.Find("list").Value.(value.Array)
	obj := inner[2].(value.Object)
	obj.Set("x", value.Bool(false))
	inner[0] = value.Int(100)

	if got, want := orig.JSON(), `{"list":[1,"two",{"x":true}],"n":null}`; got != want {
		t.Errorf("Original after modifying clone: got %#q, want %#q", got, want)
	}
	if value.Equal(orig, cp) {
		t.Error("Original and modified clone are equal")
	}
}

func TestToValue(t *testing.T) {
	type myString string
	type myInt int16
	tests := []struct {
		input any
		want  string
	}{
		{nil, `null`},
		{true, `true`},
		{"s", `"s"`},
		{myString("m"), `"m"`},
		{myInt(-3), `-3`},
		{uint8(200), `200`},
		{float32(0.1), `0.1`},
		{2.5, `2.5`},
		{value.NumericText("1e3"), `1e3`},
		{value.Text("7"), `7`},
		{[]any{1, nil, "x"}, `[1,null,"x"]`},
		{map[string]any{"z": 1, "a": []any{}}, `{"a":[],"z":1}`},
		{value.Array{value.Bool(false)}, `[false]`},
	}
	for _, tc := range tests {
		v, err := value.ToValue(tc.input)
		if err != nil {
			t.Errorf("ToValue(%#v): unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.JSON(); got != tc.want {
			t.Errorf("ToValue(%#v): got %#q, want %#q", tc.input, got, tc.want)
		}
	}

	for _, bad := range []any{
		struct{}{}, make(chan int), []int{1}, map[string]any{"ok": func() {}},
	} {
		_, err := value.ToValue(bad)
		var terr *value.TypeError
		if !errors.As(err, &terr) {
			t.Errorf("ToValue(%T): got %v, want *TypeError", bad, err)
		}
	}
	mtest.MustPanic(t, func() { value.MustValue(struct{}{}) })
	mtest.MustPanic(t, func() { value.Field("x", []string{"no"}) })
}

func TestAs(t *testing.T) {
	v := testutil.MustDecode(`{"b":true,"s":"str","n":17,"f":2.5,"o":{}}`).(value.Object)
	get := func(key string) value.Value { m, _ := v.Get(key); return m }

	if b, err := value.AsBool(get("b")); err != nil || !b {
		t.Errorf("AsBool: got %v, %v; want true, nil", b, err)
	}
	if s, err := value.AsString(get("s")); err != nil || s != "str" {
		t.Errorf("AsString: got %q, %v; want str, nil", s, err)
	}
	if z, err := value.AsInt64(get("n")); err != nil || z != 17 {
		t.Errorf("AsInt64: got %v, %v; want 17, nil", z, err)
	}
	if f, err := value.AsFloat64(get("f")); err != nil || f != 2.5 {
		t.Errorf("AsFloat64: got %v, %v; want 2.5, nil", f, err)
	}
	if _, err := value.AsInt64(get("f")); err == nil {
		t.Error("AsInt64(2.5): got nil, want error")
	}
	if o, err := value.As[value.Object](get("o")); err != nil || o.Len() != 0 {
		t.Errorf("As[Object]: got %v, %v; want {}, nil", o, err)
	}

	_, err := value.As[value.Array](get("s"))
	var terr *value.TypeError
	if !errors.As(err, &terr) {
		t.Fatalf("As[Array](string): got %v, want *TypeError", err)
	}
	if diff := cmp.Diff(&value.TypeError{Got: "string", Want: "array"}, terr); diff != "" {
		t.Errorf("TypeError (-want, +got):\n%s", diff)
	}
	if _, err := value.AsBool(nil); err == nil {
		t.Error("AsBool(nil): got nil, want error")
	}
}

func TestWrite(t *testing.T) {
	v := value.Object{
		value.Field("name", "jvalue"),
		value.Field("tags", []any{"json", "go"}),
		value.Field("empty", value.Object{}),
		value.Field("n", value.Float(0.25)),
	}
	var buf strings.Builder
	if err := value.Write(&buf, v, "  "); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	const want = `{
  "name": "jvalue",
  "tags": [
    "json",
    "go"
  ],
  "empty": {},
  "n": 0.25
}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write (-want, +got):\n%s", diff)
	}

	// Values that cannot be encoded report an error.
	bad := value.Array{value.Float(math.Inf(1))}
	if _, err := value.Marshal(bad); err == nil {
		t.Error("Marshal(+Inf): got nil, want error")
	}
	if got := bad.JSON(); got != "" {
		t.Errorf("JSON(+Inf): got %#q, want empty", got)
	}
	if _, err := value.Marshal(value.Text("1.2.3")); err == nil {
		t.Error("Marshal(invalid text): got nil, want error")
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []value.Value{
		value.Null{},
		value.Bool(true),
		value.String("line\nbreak \"quoted\"   \U0001f600"),
		value.Int(-42),
		value.Uint(math.MaxUint64),
		value.Float(3.125e-9),
		value.Text("6.02e23"),
		value.Array{},
		value.Object{},
		value.MustValue([]any{
			map[string]any{"a": []any{1, 2.5, "x"}, "b": nil},
			[]any{[]any{}, map[string]any{}},
		}),
	}
	for _, v := range tests {
		for _, indent := range []string{"", "\t"} {
			var buf strings.Builder
			if err := value.Write(&buf, v, indent); err != nil {
				t.Errorf("Write %v: unexpected error: %v", v, err)
				continue
			}
			got, err := testutil.Decode(buf.String())
			if err != nil {
				t.Errorf("Decode %#q: unexpected error: %v", buf.String(), err)
				continue
			}
			if !value.Equal(got, v) {
				t.Errorf("Round trip: got %v, want %v", got.JSON(), v.JSON())
			}
		}
	}
}

func TestObjectOrder(t *testing.T) {
	a := value.Object{value.Field("a", 1), value.Field("b", 2)}
	b := value.Object{value.Field("b", 2), value.Field("a", 1)}
	if !value.Equal(a, b) {
		t.Errorf("Equal(%v, %v): got false, want true", a.JSON(), b.JSON())
	}
	if got, want := a.JSON(), `{"a":1,"b":2}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if got, want := b.JSON(), `{"b":2,"a":1}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}
