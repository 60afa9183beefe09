// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// \u escape for a UTF-16 surrogate pair is combined into a single rune.
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, n, err := decodeUnicode(src)
			if err != nil {
				return nil, err
			}
			dec = utf8.AppendRune(dec, r)
			src = src.SliceFrom(n)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}

// decodeUnicode decodes the hex digits of a \u escape at the front of src,
// whose "\u" prefix has already been consumed. If the escape is the high half
// of a surrogate pair followed by an escaped low half, both are consumed.
// It returns the decoded rune and the number of bytes consumed.
func decodeUnicode(src mem.RO) (rune, int, error) {
	if src.Len() < 4 {
		return 0, 0, errors.New("incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceTo(4))
	if err != nil {
		return utf8.RuneError, 4, nil
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}
	if src.Len() < 10 || src.At(4) != '\\' || src.At(5) != 'u' {
		return utf8.RuneError, 4, nil
	}
	w, err := parseHex(src.Slice(6, 10))
	if err != nil {
		return utf8.RuneError, 4, nil
	}
	if c := utf16.DecodeRune(r, rune(w)); c != utf8.RuneError {
		return c, 10, nil
	}
	return utf8.RuneError, 4, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
