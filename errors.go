// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
)

var (
	// ErrComplete is reported by any write to a document that is already
	// finished.
	ErrComplete = errors.New("document is already complete")

	// ErrIncomplete is reported when a document is finished before its
	// top-level value is complete.
	ErrIncomplete = errors.New("document is incomplete")

	// ErrNonFinite is reported for an attempt to write a NaN or infinite
	// floating-point value, which JSON cannot represent.
	ErrNonFinite = errors.New("non-finite number")
)

// GrammarError is the concrete type of errors reported when a write would
// violate the JSON grammar.
type GrammarError struct {
	Op      string // the operation that was attempted
	State   State  // the state of the innermost scope
	Message string

	err error
}

// Error satisfies the error interface.
func (g *GrammarError) Error() string {
	if g.err == ErrComplete {
		return fmt.Sprintf("%s: %s", g.Op, g.Message)
	}
	return fmt.Sprintf("%s in %v: %s", g.Op, g.State, g.Message)
}

// Unwrap supports error wrapping.
func (g *GrammarError) Unwrap() error { return g.err }

func grammarErrorf(op string, s State, msg string, args ...any) *GrammarError {
	return &GrammarError{Op: op, State: s, Message: fmt.Sprintf(msg, args...)}
}

func errComplete(op string) *GrammarError {
	return &GrammarError{Op: op, Message: ErrComplete.Error(), err: ErrComplete}
}

// NumberError is the concrete type of errors reported for text that is not a
// valid JSON number.
type NumberError struct {
	Text    string // the offending text
	Offset  int    // byte offset of the error in Text
	Message string
}

// Error satisfies the error interface.
func (n *NumberError) Error() string {
	return fmt.Sprintf("invalid number %q at offset %d: %s", n.Text, n.Offset, n.Message)
}
