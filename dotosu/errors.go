package dotosu

import "fmt"

// StructuralError is returned when a delimited line has the wrong shape:
// a bad token count, a malformed section header, or a list entry that
// cannot be split the way the format requires.
type StructuralError struct {
	Section string
	Line    int
	Content string
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d [%s]: %s: %q", e.Line, e.Section, e.Reason, e.Content)
}

// TypeCoercionError is returned when a field value cannot be converted to
// its declared type.
type TypeCoercionError struct {
	Section string
	Line    int
	Key     string
	Value   string
	Want    string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("line %d [%s]: %s: cannot parse %q as %s", e.Line, e.Section, e.Key, e.Value, e.Want)
}

// UnknownEnumValueError is returned for an unrecognized curve-type letter,
// an out-of-range sample-set integer, or a type flag that does not select
// exactly one object kind.
type UnknownEnumValueError struct {
	Section string
	Line    int
	What    string
	Value   string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("line %d [%s]: unknown %s %q", e.Line, e.Section, e.What, e.Value)
}

// MissingContextError is returned when a data line appears before any
// section header, or when slider resolution runs without the timing
// information it depends on.
type MissingContextError struct {
	Line   int
	Reason string
}

func (e *MissingContextError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}
