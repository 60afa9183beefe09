// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a streaming JSON writer that enforces the JSON
// grammar one token at a time.
//
// # Writing
//
// The Writer type emits a single JSON document to an io.Writer. Construct a
// writer and call its methods in document order. Each method checks the call
// against the grammar before writing anything, and reports an error of
// concrete type *jvalue.GrammarError if the call is out of order:
//
//	w := jvalue.NewWriter(os.Stdout)
//	w.BeginObject()
//	w.Name("a")
//	w.Int(1)
//	w.Name("b")
//	w.BeginArray()
//	w.String("x")
//	w.String("y")
//	w.EndArray()
//	w.EndObject()
//	if err := w.Finish(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
//
// This writes {"a":1,"b":["x","y"]}. The first error reported by a Writer is
// sticky, so it is safe to check only the result of Finish.
//
// Object member names are deferred: Name records the name, and it is written
// along with the value that follows. A name followed by EndObject is dropped.
//
// The Writer never flushes or closes its output implicitly. Call Flush and
// Close explicitly to forward those operations to the underlying stream.
//
// # Grammar
//
// The Grammar type is the push-down automaton used by a Writer. It keeps one
// State for each open scope:
//
//	Scope      | States                      | Next token
//	---------- | --------------------------- | ---------------------------
//	document   | EmptyDocument               | one value
//	document   | NonEmptyDocument            | (none)
//	array      | EmptyArray, NonEmptyArray   | value or close
//	object     | EmptyObject, NonEmptyObject | name or close
//	member     | ExpectValue                 | value
//
// Each transition reports the delimiter (",", ":", or none) that must precede
// the next token, and a failed transition leaves the state unchanged.
//
// # Values
//
// The value package defines a tree representation of JSON values that can be
// written with a Writer; the adapt package converts arbitrary Go values into
// Writer calls.
package jvalue
