// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"cmp"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

// A Writer emits a single JSON document to an output stream one token at a
// time. Each call is checked against the JSON grammar before anything is
// written, so the output is always a prefix of a valid JSON document.
//
// The first grammar violation or write error reported by a Writer is sticky:
// all subsequent calls report the same error without writing. Invalid
// arguments (a malformed number literal or a non-finite float) are reported
// without affecting the state of the Writer.
//
// A Writer is not safe for concurrent use by multiple goroutines.
type Writer struct {
	w      io.Writer
	g      *Grammar
	buf    []byte // pending output for the current call
	indent string
	err    error

	name    string // pending object member name
	hasName bool
}

// NewWriter constructs a new Writer that writes its output to w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w, g: NewGrammar()} }

// Reset discards the state of w, including any error, and directs its output
// to out. The indentation setting is preserved.
func (w *Writer) Reset(out io.Writer) {
	w.w = out
	w.g.Reset()
	w.buf = w.buf[:0]
	w.err = nil
	w.name, w.hasName = "", false
}

// SetIndent configures w to pretty-print its output, beginning each element
// of an array or object on a new line indented by one copy of indent per level
// of nesting. If indent == "", the output is compact (the default).
func (w *Writer) SetIndent(indent string) { w.indent = indent }

// Depth reports the nesting depth of w: the number of arrays and objects that
// are open, plus one for the document, or 0 once the document is finished.
func (w *Writer) Depth() int { return w.g.Depth() }

// Err reports the sticky error of w, if any.
func (w *Writer) Err() error { return w.err }

// BeginObject writes the start of a new object.
func (w *Writer) BeginObject() error {
	if err := w.begin(w.g.OpenObject); err != nil {
		return err
	}
	w.buf = append(w.buf, '{')
	return w.flush()
}

// EndObject writes the end of the innermost open scope, which must be an
// object. A pending member name with no value is discarded.
func (w *Writer) EndObject() error {
	if w.err != nil {
		return w.err
	}
	w.name, w.hasName = "", false
	nonEmpty, err := w.g.CloseObject()
	if err != nil {
		return w.fail(err)
	}
	w.buf = w.buf[:0]
	if nonEmpty {
		w.newline(w.g.Depth() - 1)
	}
	w.buf = append(w.buf, '}')
	return w.flush()
}

// BeginArray writes the start of a new array.
func (w *Writer) BeginArray() error {
	if err := w.begin(w.g.OpenArray); err != nil {
		return err
	}
	w.buf = append(w.buf, '[')
	return w.flush()
}

// EndArray writes the end of the innermost open scope, which must be an array.
func (w *Writer) EndArray() error {
	if w.err != nil {
		return w.err
	}
	nonEmpty, err := w.g.CloseArray()
	if err != nil {
		return w.fail(err)
	}
	w.buf = w.buf[:0]
	if nonEmpty {
		w.newline(w.g.Depth() - 1)
	}
	w.buf = append(w.buf, ']')
	return w.flush()
}

// Name sets the name of the next member of the innermost open scope, which
// must be an object. The name is not written until the member value is
// written; calling Name again before then replaces the pending name.
func (w *Writer) Name(name string) error {
	if w.err != nil {
		return w.err
	}
	top, ok := w.g.Top()
	if !ok {
		return w.fail(errComplete("name"))
	} else if !top.isObject() {
		return w.fail(grammarErrorf("name", top, "name outside of an object"))
	}
	w.name, w.hasName = name, true
	return nil
}

// String writes a string value. The contents of s are escaped as needed.
func (w *Writer) String(s string) error {
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = escape.AppendQuote(w.buf, mem.S(s))
	return w.flush()
}

// Bool writes a Boolean value.
func (w *Writer) Bool(b bool) error {
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = strconv.AppendBool(w.buf, b)
	return w.flush()
}

// Null writes a null value.
func (w *Writer) Null() error {
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = append(w.buf, "null"...)
	return w.flush()
}

// Int writes a signed integer value.
func (w *Writer) Int(z int64) error {
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, z, 10)
	return w.flush()
}

// Uint writes an unsigned integer value.
func (w *Writer) Uint(z uint64) error {
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = strconv.AppendUint(w.buf, z, 10)
	return w.flush()
}

// Float writes a floating-point value. It reports ErrNonFinite without
// writing anything if f is NaN or infinite.
func (w *Writer) Float(f float64) error {
	if _, err := AppendFloat(nil, f); err != nil {
		return err
	}
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf, _ = AppendFloat(w.buf, f)
	return w.flush()
}

// Number writes the text of a number verbatim. It reports an error of
// concrete type *NumberError without writing anything if text is not a valid
// JSON number.
func (w *Writer) Number(text string) error {
	if err := CheckNumber(text); err != nil {
		return err
	}
	if err := w.begin(w.g.Value); err != nil {
		return err
	}
	w.buf = append(w.buf, text...)
	return w.flush()
}

// Finish marks the end of the document, which must consist of one complete
// value. After Finish succeeds, any further write reports ErrComplete.
// Finish does not flush or close the underlying stream.
func (w *Writer) Finish() error {
	if w.err != nil {
		return w.err
	}
	if err := w.g.Finish(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Flush flushes the underlying stream, if it has a Flush method.
func (w *Writer) Flush() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close finishes the document and closes the underlying stream, if it
// implements io.Closer. The stream is closed even if the document is
// incomplete, in which case the error from Finish is reported.
func (w *Writer) Close() error {
	ferr := w.Finish()
	if c, ok := w.w.(io.Closer); ok {
		return cmp.Or(ferr, c.Close())
	}
	return ferr
}

// begin applies the grammar transition for the next value token, preceded by
// the pending member name if one is set. On success, w.buf holds the name and
// delimiters to write before the token.
func (w *Writer) begin(next func() (byte, error)) error {
	if w.err != nil {
		return w.err
	}
	w.buf = w.buf[:0]
	if w.hasName {
		level := w.g.Depth() - 1
		prev, _ := w.g.Top()
		d, err := w.g.Name()
		if err != nil {
			return w.fail(err)
		}
		w.delimit(d, prev, level)
		w.buf = escape.AppendQuote(w.buf, mem.S(w.name))
		w.name, w.hasName = "", false
	}
	level := w.g.Depth() - 1
	prev, _ := w.g.Top()
	d, err := next()
	if err != nil {
		return w.fail(err)
	}
	w.delimit(d, prev, level)
	return nil
}

// delimit appends delimiter d and any indentation required before the next
// token at the given nesting level, given the previous state of the scope.
func (w *Writer) delimit(d byte, prev State, level int) {
	switch d {
	case ',':
		w.buf = append(w.buf, ',')
		w.newline(level)
	case ':':
		w.buf = append(w.buf, ':')
		if w.indent != "" {
			w.buf = append(w.buf, ' ')
		}
	default:
		if prev == EmptyArray || prev == EmptyObject {
			w.newline(level)
		}
	}
}

func (w *Writer) newline(level int) {
	if w.indent != "" {
		w.buf = append(w.buf, '\n')
		w.buf = append(w.buf, strings.Repeat(w.indent, level)...)
	}
}

func (w *Writer) flush() error {
	if _, err := w.w.Write(w.buf); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) fail(err error) error { w.err = err; return err }
