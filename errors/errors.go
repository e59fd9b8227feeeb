// Package errors defines the error values reported while compiling a path
// and while running a lens over a structure.
package errors

import (
	"fmt"
	"reflect"
)

// ParseError represents a single error that occurred while compiling a path.
// Offset is the byte offset of the offending segment in the path.
type ParseError struct {
	Message string
	Offset  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("lenspath: invalid path at offset %d: %s", e.Offset, e.Message)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows returning all syntax errors found in a path at once.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	if len(p) == 0 {
		return ""
	}
	// The default message for the collection reports the first error only.
	return p[0].Error()
}

// TypeError is returned when a lens meets a value it cannot focus into,
// such as an index lens applied to a string.
type TypeError struct {
	Op      string // "prop", "index", "mapped" or "mappedValues"
	Segment string // the property name or index being focused
	Type    reflect.Type
	Reason  string
}

func (e *TypeError) Error() string {
	typ := "nil"
	if e.Type != nil {
		typ = e.Type.String()
	}
	msg := "lenspath: " + e.Op
	if e.Segment != "" {
		msg += " " + e.Segment
	}
	msg += ": cannot focus into value of type " + typ
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// RangeError is returned when a write through an index lens targets an
// index outside the current bounds of the collection.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("lenspath: index %d out of range for length %d", e.Index, e.Len)
}

// AbsentError is returned when a write passes through a missing parent.
// Missing intermediate containers are never created.
type AbsentError struct {
	Segment string
}

func (e *AbsentError) Error() string {
	return "lenspath: cannot write " + e.Segment + " into an absent parent"
}
