// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// NeedsEscape reports whether src contains any byte or rune that must be
// escaped for inclusion in a JSON string.
func NeedsEscape(src mem.RO) bool {
	for src.Len() != 0 {
		b := src.At(0)
		if b < utf8.RuneSelf {
			if b < ' ' || b == '\\' || b == '"' {
				return true
			}
			src = src.SliceFrom(1)
			continue
		}
		r, n := mem.DecodeRune(src)
		if r == utf8.RuneError || r == '\u2028' || r == '\u2029' {
			return true
		}
		src = src.SliceFrom(n)
	}
	return false
}

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice. Invalid
// UTF-8 sequences are replaced by the Unicode replacement rune.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	if !NeedsEscape(src) {
		dst = mem.Append(dst, src)
		return append(dst, '"')
	}
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					dst = append(dst, '\\', b)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
				}
			} else if r == '\\' || r == '"' {
				dst = append(dst, '\\', byte(r))
			} else {
				dst = append(dst, byte(r))
			}
			continue
		}

		switch r {
		case utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		case '\u2028': // line separator
			dst = append(dst, `\u2028`...)
		case '\u2029': // paragraph separator
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}

// Quote encodes src as a quoted JSON string.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }
