package graft_test

import (
	"fmt"

	"github.com/graft-runtime/graft"
)

// Counter is the canonical demo native type: a mutating increment method,
// scalar conversions, and integer plus same-type comparators.
type Counter struct {
	value int64
}

func (c *Counter) ToBool() bool      { return c.value != 0 }
func (c *Counter) ToInt() int64      { return c.value }
func (c *Counter) ToDouble() float64 { return float64(c.value) }
func (c *Counter) ToString() string  { return fmt.Sprintf("%d", c.value) }

func (c *Counter) CompareInt(n int64) int {
	switch {
	case c.value < n:
		return -1
	case c.value > n:
		return 1
	}
	return 0
}

func (c *Counter) Compare(other *Counter) int { return c.CompareInt(other.value) }

func counterDef() graft.Def[Counter] {
	return graft.Def[Counter]{
		New:  func() Counter { return Counter{} },
		Copy: func(src *Counter) Counter { return *src },
		Methods: map[string]any{
			"incr": func(c *Counter) int64 { c.value++; return c.value },
			"get":  func(c *Counter) int64 { return c.value },
			"set":  func(c *Counter, v int64) { c.value = v },
			"add":  func(c *Counter, amount int64) int64 { c.value += amount; return c.value },
		},
	}
}

// Blank has no optional methods at all: no conversions, no comparators.
type Blank struct {
	tag string
}

// Pair converts to a two-entry array.
type Pair struct {
	A, B int64
}

func (p *Pair) ToArray() *graft.Array {
	return graft.NewList(graft.Int(p.A), graft.Int(p.B))
}

// WrongSig has a method with the right name but the wrong signature, which
// must be treated as absent.
type WrongSig struct{}

func (w *WrongSig) ToBool() int            { return 1 }
func (w *WrongSig) CompareInt(n int32) int { return 0 }

// Picky has a kind-specific string comparator plus the generic fallback, so
// tests can observe dispatch precedence.
type Picky struct {
	label string
}

func (p *Picky) CompareString(s string) int {
	if p.label == s {
		return 0
	}
	if p.label < s {
		return -1
	}
	return 1
}

func (p *Picky) CompareValue(v graft.Value) int {
	// Generic fallback: everything non-string sorts after us.
	return -1
}

func (p *Picky) CompareNull() int { return 1 }
