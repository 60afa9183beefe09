// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"math"
	"strconv"
)

// CheckNumber reports whether text is a valid JSON number literal. If not, the
// error has concrete type *NumberError.
func CheckNumber(text string) error {
	_, err := scanNumber(text)
	return err
}

// IsInteger reports whether text is a valid JSON number literal with no
// fraction or exponent.
func IsInteger(text string) bool {
	isInt, err := scanNumber(text)
	return err == nil && isInt
}

// scanNumber checks that text is a JSON number, and reports whether it is an
// integer (no fraction or exponent).
func scanNumber(text string) (isInt bool, _ error) {
	fail := func(i int, msg string) (bool, error) {
		return false, &NumberError{Text: text, Offset: i, Message: msg}
	}
	i := 0
	if i < len(text) && text[i] == '-' {
		i++ // If there is a leading sign, we need at least one digit.
	}
	if i == len(text) || !isDigit(text[i]) {
		return fail(i, "expected digit")
	}

	// Consume the remainder of an integer, disallowing extra leading zeroes.
	// That is: 0.12 is OK, 01.2 is not.
	start := i
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if text[start] == '0' && i-start > 1 {
		return fail(start, "extra leading zeroes")
	}
	if i == len(text) {
		return true, nil
	}

	// If a decimal point follows, consume a fractional part.
	if text[i] == '.' {
		i++
		nd := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		if i == nd {
			return fail(i, "no digits after decimal point")
		} else if i == len(text) {
			return false, nil
		}
	}

	// If an exponent follows, consume it.
	if text[i] != 'e' && text[i] != 'E' {
		return fail(i, "unexpected "+strconv.QuoteRune(rune(text[i])))
	}
	i++
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	nd := i
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i == nd {
		return fail(i, "missing exponent digits")
	} else if i != len(text) {
		return fail(i, "unexpected "+strconv.QuoteRune(rune(text[i])))
	}
	return false, nil
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// AppendFloat appends the JSON encoding of a 64-bit floating-point value to
// dst. Values with magnitude in [1e-6, 1e21) use decimal notation, others use
// exponent notation. It reports ErrNonFinite for NaN and infinities.
func AppendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, ErrNonFinite
	}
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	dst = strconv.AppendFloat(dst, f, fmt, -1, 64)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst, nil
}
