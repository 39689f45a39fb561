package graft

import (
	"strconv"
	"strings"
)

// Array is the runtime's structured-collection primitive: an ordered map of
// string keys to values. List-style arrays use decimal index keys assigned by
// Append.
type Array struct {
	Items map[string]Value
	Order []string

	next int64 // next auto-index for Append
}

// NewArray returns an empty array.
func NewArray() *Array {
	return &Array{Items: make(map[string]Value)}
}

// NewList returns an array holding the given values at index keys 0..n-1.
func NewList(vals ...Value) *Array {
	a := NewArray()
	for _, v := range vals {
		a.Append(v)
	}
	return a
}

// Len returns the number of entries.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Order)
}

// Get returns the value stored under key.
func (a *Array) Get(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.Items[key]
	return v, ok
}

// Set stores val under key, keeping insertion order for new keys.
func (a *Array) Set(key string, val Value) {
	if _, exists := a.Items[key]; !exists {
		a.Order = append(a.Order, key)
	}
	a.Items[key] = val
	// Keep auto-indexing past explicit numeric keys.
	if n, err := strconv.ParseInt(key, 10, 64); err == nil && n >= a.next {
		a.next = n + 1
	}
}

// Append stores val under the next free index key and returns that key.
func (a *Array) Append(val Value) string {
	key := strconv.FormatInt(a.next, 10)
	a.Set(key, val)
	return key
}

// Values returns the values in insertion order.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	vals := make([]Value, 0, len(a.Order))
	for _, k := range a.Order {
		vals = append(vals, a.Items[k])
	}
	return vals
}

// Dup returns a shallow copy: keys and value slots are copied, nested arrays
// and objects are shared.
func (a *Array) Dup() *Array {
	if a == nil {
		return nil
	}
	items := make(map[string]Value, len(a.Items))
	for k, v := range a.Items {
		items[k] = v
	}
	order := make([]string, len(a.Order))
	copy(order, a.Order)
	return &Array{Items: items, Order: order, next: a.next}
}

// String renders the array as a space-separated key/value list.
func (a *Array) String() string {
	if a == nil {
		return ""
	}
	var b strings.Builder
	for i, key := range a.Order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quote(key))
		b.WriteByte(' ')
		b.WriteString(quote(a.Items[key].String()))
	}
	return b.String()
}
