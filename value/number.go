// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/jvalue"
)

// NumericText is a numeric literal kept as text, and parsed on demand.
// Two NumericText values are equal only if their text is identical, so "1"
// and "1.0" differ; wrapped in a Number they compare by numeric value.
type NumericText string

// String returns the text of n.
func (n NumericText) String() string { return string(n) }

// Valid reports whether n is a valid JSON number literal.
func (n NumericText) Valid() bool { return jvalue.CheckNumber(string(n)) == nil }

// Int parses n as an int.
func (n NumericText) Int() (int, error) { return strconv.Atoi(string(n)) }

// Int64 parses n as an int64.
func (n NumericText) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Float32 parses n as a float32.
func (n NumericText) Float32() (float32, error) {
	v, err := strconv.ParseFloat(string(n), 32)
	return float32(v), err
}

// Float64 parses n as a float64.
func (n NumericText) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

type numKind byte

const (
	intNum numKind = iota
	uintNum
	floatNum
	textNum
)

// A Number is a numeric value. It holds exactly one of a signed integer, an
// unsigned integer, a floating-point value, or a NumericText, and preserves
// the magnitude and precision of what it was constructed from.
// The zero value is the integer 0.
type Number struct {
	kind numKind
	z    int64
	u    uint64
	f    float64
	text NumericText
}

// Int returns a Number for a signed integer.
func Int(z int64) Number { return Number{kind: intNum, z: z} }

// Uint returns a Number for an unsigned integer.
func Uint(u uint64) Number { return Number{kind: uintNum, u: u} }

// Float returns a Number for a floating-point value.
func Float(f float64) Number { return Number{kind: floatNum, f: f} }

// Text returns a Number for a numeric literal. The text is not parsed until
// its value is needed.
func Text(s string) Number { return Number{kind: textNum, text: NumericText(s)} }

func (Number) Kind() Kind     { return NumberKind }
func (n Number) Clone() Value { return n }
func (n Number) JSON() string { return jsonString(n) }
func (Number) isValue()       {}

// IsText reports whether n holds a NumericText.
func (n Number) IsText() bool { return n.kind == textNum }

// IsFloat reports whether n holds a floating-point value.
func (n Number) IsFloat() bool { return n.kind == floatNum }

// IsInteger reports whether n holds an integer that is exactly representable
// as an int64: a signed integer, an unsigned integer no greater than
// math.MaxInt64, or a valid JSON integer literal in the range of an int64.
func (n Number) IsInteger() bool { _, ok := n.lossless(); return ok }

func (n Number) lossless() (int64, bool) {
	switch n.kind {
	case intNum:
		return n.z, true
	case uintNum:
		return int64(n.u), n.u <= math.MaxInt64
	case textNum:
		if !n.text.Valid() {
			return 0, false
		}
		z, err := n.text.Int64()
		return z, err == nil
	}
	return 0, false
}

// float returns the value of n as a float64, reporting false for text that
// is not a valid JSON number.
func (n Number) float() (float64, bool) {
	if n.kind == textNum && !n.text.Valid() {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// String returns the decimal text of n. Text numbers are returned verbatim.
func (n Number) String() string {
	switch n.kind {
	case intNum:
		return strconv.FormatInt(n.z, 10)
	case uintNum:
		return strconv.FormatUint(n.u, 10)
	case floatNum:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	default:
		return string(n.text)
	}
}

// Text returns the NumericText form of n.
func (n Number) Text() NumericText {
	if n.kind == textNum {
		return n.text
	}
	return NumericText(n.String())
}

var errNotInteger = errors.New("value is not an integer")

// Int64 returns the value of n as an int64. It reports an error if the value
// is not an integer in range. Text is parsed with strconv.ParseInt.
func (n Number) Int64() (int64, error) {
	switch n.kind {
	case intNum:
		return n.z, nil
	case uintNum:
		if n.u > math.MaxInt64 {
			return 0, &strconv.NumError{Func: "Int64", Num: n.String(), Err: strconv.ErrRange}
		}
		return int64(n.u), nil
	case floatNum:
		if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f >= math.MaxInt64 {
			return 0, &strconv.NumError{Func: "Int64", Num: n.String(), Err: errNotInteger}
		}
		return int64(n.f), nil
	default:
		return n.text.Int64()
	}
}

// Float64 returns the value of n as a float64. Integers are converted, and
// may lose precision. Text is parsed with strconv.ParseFloat.
func (n Number) Float64() (float64, error) {
	switch n.kind {
	case intNum:
		return float64(n.z), nil
	case uintNum:
		return float64(n.u), nil
	case floatNum:
		return n.f, nil
	default:
		return n.text.Float64()
	}
}

// Equal reports whether n and m have the same numeric value.
//
// If both are integers exactly representable as int64 (see IsInteger), they
// are compared as int64. Otherwise both are converted to float64; they are
// equal if both are NaN, or if their bit patterns are identical, so 0 and -0
// differ. If either is text that is not a valid JSON number, they are equal
// only if both are text and the text is identical.
//
// Integers outside the range of an int64, such as Uint values greater than
// math.MaxInt64, are compared as float64 and may lose precision: for example
// Uint(math.MaxUint64) equals Uint(math.MaxUint64-1).
func (n Number) Equal(m Number) bool {
	if a, ok := n.lossless(); ok {
		if b, ok := m.lossless(); ok {
			return a == b
		}
	}
	a, aok := n.float()
	b, bok := m.float()
	if !aok || !bok {
		return n.kind == textNum && m.kind == textNum && n.text == m.text
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
