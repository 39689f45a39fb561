package graft

import (
	"errors"
	"fmt"
)

// ErrNotCloneable is returned by Runtime.CloneObject for instances whose
// native type is not copy-constructible.
var ErrNotCloneable = errors.New("object is not cloneable")

// ConstructError reports direct instantiation of a class whose native type
// has no constructor. It is the only adapter failure surfaced as a
// host-visible exception.
type ConstructError struct {
	Class string
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("%s may not be directly instantiated", e.Class)
}

// CastError reports that a cast had no matching conversion. For adapter-backed
// objects it is a failure status, not an exception: the host is expected to
// apply its own fallback conversion semantics.
type CastError struct {
	From   string // class name or source kind
	Target Kind
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", e.From, e.Target)
}

// CompareError reports that no comparison overload applied to a pair of
// operands. The comparison result slot still holds 0.
type CompareError struct {
	A Kind
	B Kind
}

func (e *CompareError) Error() string {
	return fmt.Sprintf("cannot compare %s with %s", e.A, e.B)
}
