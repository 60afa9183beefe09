// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

// State is the grammar state of a single open scope.
type State byte

// Constants defining the valid State values.
const (
	EmptyDocument    State = iota // document with no value yet
	NonEmptyDocument              // document whose top-level value is written
	EmptyArray                    // array with no elements
	NonEmptyArray                 // array with at least one element
	EmptyObject                   // object with no members
	NonEmptyObject                // object with at least one member
	ExpectValue                   // object member name written, value pending
)

var stateStr = [...]string{
	EmptyDocument:    "empty document",
	NonEmptyDocument: "document",
	EmptyArray:       "empty array",
	NonEmptyArray:    "array",
	EmptyObject:      "empty object",
	NonEmptyObject:   "object",
	ExpectValue:      "object member",
}

func (s State) String() string {
	if int(s) >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[s]
}

// isArray reports whether s is the state of an array scope.
func (s State) isArray() bool { return s == EmptyArray || s == NonEmptyArray }

// isObject reports whether s is the state of an object scope awaiting a name.
func (s State) isObject() bool { return s == EmptyObject || s == NonEmptyObject }

// A Grammar is a push-down automaton that checks, token by token, whether a
// sequence of writes forms a single valid JSON document.
//
// The stack holds one State per open scope. The bottom entry is the document
// itself, so the depth of a Grammar is one more than the number of arrays and
// objects opened and not yet closed. Once Finish succeeds the stack is empty
// and every further transition reports ErrComplete.
//
// The transition methods report the delimiter that must be written before the
// next token: 0 for none, or one of ',' and ':'. If a method reports an error,
// the state is not modified.
//
// The zero value is not ready for use; call NewGrammar or Reset.
type Grammar struct {
	stk []State
}

// NewGrammar constructs a Grammar for an empty document.
func NewGrammar() *Grammar {
	g := &Grammar{stk: make([]State, 0, 32)}
	g.Reset()
	return g
}

// Reset discards the state of g and restarts it for an empty document.
// The capacity of the stack is retained.
func (g *Grammar) Reset() { g.stk = append(g.stk[:0], EmptyDocument) }

// Depth reports the number of entries on the stack of g.
func (g *Grammar) Depth() int { return len(g.stk) }

// Done reports whether the document is complete.
func (g *Grammar) Done() bool { return len(g.stk) == 0 }

// Top reports the state of the innermost scope of g. It reports false if the
// document is complete.
func (g *Grammar) Top() (State, bool) {
	if len(g.stk) == 0 {
		return 0, false
	}
	return g.stk[len(g.stk)-1], true
}

func (g *Grammar) setTop(s State) { g.stk[len(g.stk)-1] = s }

// Value records that a value is the next token of the document.
func (g *Grammar) Value() (byte, error) {
	top, ok := g.Top()
	if !ok {
		return 0, errComplete("value")
	}
	switch top {
	case EmptyDocument:
		g.setTop(NonEmptyDocument)
		return 0, nil
	case NonEmptyDocument:
		return 0, grammarErrorf("value", top, "only one top-level value is permitted")
	case EmptyArray:
		g.setTop(NonEmptyArray)
		return 0, nil
	case NonEmptyArray:
		return ',', nil
	case ExpectValue:
		g.setTop(NonEmptyObject)
		return ':', nil
	case EmptyObject, NonEmptyObject:
		return 0, grammarErrorf("value", top, "missing name for object member")
	default:
		return 0, grammarErrorf("value", top, "invalid state")
	}
}

// Name records that an object member name is the next token of the document.
func (g *Grammar) Name() (byte, error) {
	top, ok := g.Top()
	if !ok {
		return 0, errComplete("name")
	}
	switch top {
	case EmptyObject:
		g.setTop(ExpectValue)
		return 0, nil
	case NonEmptyObject:
		g.setTop(ExpectValue)
		return ',', nil
	case ExpectValue:
		return 0, grammarErrorf("name", top, "missing value for object member")
	default:
		return 0, grammarErrorf("name", top, "name outside of an object")
	}
}

// OpenArray records the start of an array.
func (g *Grammar) OpenArray() (byte, error) { return g.open("open array", EmptyArray) }

// OpenObject records the start of an object.
func (g *Grammar) OpenObject() (byte, error) { return g.open("open object", EmptyObject) }

func (g *Grammar) open(op string, s State) (byte, error) {
	d, err := g.Value()
	if err != nil {
		err.(*GrammarError).Op = op
		return 0, err
	}
	g.stk = append(g.stk, s)
	return d, nil
}

// CloseArray records the end of the innermost scope, which must be an array.
// It reports whether the array had any elements.
func (g *Grammar) CloseArray() (bool, error) {
	top, ok := g.Top()
	if !ok {
		return false, errComplete("close array")
	} else if !top.isArray() {
		return false, grammarErrorf("close array", top, "unbalanced close of %v", top)
	}
	g.stk = g.stk[:len(g.stk)-1]
	return top == NonEmptyArray, nil
}

// CloseObject records the end of the innermost scope, which must be an object
// not awaiting a member value. It reports whether the object had any members.
func (g *Grammar) CloseObject() (bool, error) {
	top, ok := g.Top()
	if !ok {
		return false, errComplete("close object")
	} else if top == ExpectValue {
		return false, grammarErrorf("close object", top, "missing value for object member")
	} else if !top.isObject() {
		return false, grammarErrorf("close object", top, "unbalanced close of %v", top)
	}
	g.stk = g.stk[:len(g.stk)-1]
	return top == NonEmptyObject, nil
}

// Finish records the end of the document, which must consist of exactly one
// complete value. After Finish succeeds, g reports Done.
func (g *Grammar) Finish() error {
	top, ok := g.Top()
	if !ok {
		return errComplete("finish")
	} else if len(g.stk) != 1 || top != NonEmptyDocument {
		return &GrammarError{
			Op:      "finish",
			State:   top,
			Message: "incomplete document",
			err:     ErrIncomplete,
		}
	}
	g.stk = g.stk[:0]
	return nil
}
