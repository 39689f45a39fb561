package graft

import "strings"

// Method is a callable installed on a class. Bound native methods receive the
// instance header as receiver; use Native to recover the payload, or register
// plain Go functions through Def.Methods and let the binding layer do it.
type Method func(rt *Runtime, recv *Object, args []Value) (Value, error)

// Handlers is the per-class table of hooks the runtime calls for lifecycle,
// cast and comparison operations. Exactly one table exists per registered
// class; it is written during registration and read-only afterwards.
type Handlers struct {
	// Create allocates and default-constructs a fresh instance of class.
	// Always present. For unconstructible native types it raises a
	// construction error on the runtime and returns a header-only
	// placeholder.
	Create func(rt *Runtime, class *Class) *Object

	// Clone allocates a copy-constructed duplicate of src, classed after
	// src's concrete runtime class. Nil when the native type is not
	// copy-constructible; the runtime rejects cloning such instances.
	Clone func(rt *Runtime, src *Object) *Object

	// Destroy runs the native destructor, if any, followed by the runtime's
	// standard header teardown. Always present.
	Destroy func(o *Object)

	// Cast converts the instance to the target primitive kind. Reports
	// false when the native type has no matching conversion.
	Cast func(o *Object, target Kind) (Value, bool)

	// Compare produces a three-way ordering for a pair of values of which
	// at least one is an instance carrying this table. Reports false when
	// no comparison overload applies; the result is 0 in that case so the
	// output slot always holds a defined value.
	Compare func(a, b Value) (int, bool)

	// Caps records which optional operations the native type supports.
	// Fixed at registration.
	Caps Capability
}

// Capability is a bitmask of the optional operations a native type exposes,
// recorded in its handler table at registration time.
type Capability uint32

const (
	CapToBool Capability = 1 << iota
	CapToInt
	CapToDouble
	CapToString
	CapToArray
	CapCompareSame
	CapCompareNull
	CapCompareBool
	CapCompareInt
	CapCompareDouble
	CapCompareString
	CapCompareArray
	CapCompareObject
	CapCompareResource
	CapCompareValue
	CapConstruct
	CapClone
)

var capNames = []struct {
	bit  Capability
	name string
}{
	{CapToBool, "toBool"},
	{CapToInt, "toInt"},
	{CapToDouble, "toDouble"},
	{CapToString, "toString"},
	{CapToArray, "toArray"},
	{CapCompareSame, "compareSame"},
	{CapCompareNull, "compareNull"},
	{CapCompareBool, "compareBool"},
	{CapCompareInt, "compareInt"},
	{CapCompareDouble, "compareDouble"},
	{CapCompareString, "compareString"},
	{CapCompareArray, "compareArray"},
	{CapCompareObject, "compareObject"},
	{CapCompareResource, "compareResource"},
	{CapCompareValue, "compareValue"},
	{CapConstruct, "construct"},
	{CapClone, "clone"},
}

// Has reports whether all bits in want are set.
func (c Capability) Has(want Capability) bool { return c&want == want }

func (c Capability) String() string {
	var parts []string
	for _, e := range capNames {
		if c&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	if parts == nil {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Class is the runtime's class metadata: display name, method table, and the
// handler table shared by every instance. Produced by registration and owned
// by the runtime thereafter.
type Class struct {
	Name string

	parent   *Class
	methods  map[string]Method
	handlers *Handlers
}

// Handlers returns the class's handler table.
func (c *Class) Handlers() *Handlers { return c.handlers }

// Parent returns the superclass, or nil.
func (c *Class) Parent() *Class { return c.parent }

// Can reports whether instances of this class support the given optional
// operations.
func (c *Class) Can(want Capability) bool {
	return c.handlers != nil && c.handlers.Caps.Has(want)
}

// Method resolves a method by name along the class chain.
func (c *Class) Method(name string) (Method, bool) {
	for k := c; k != nil; k = k.parent {
		if m, ok := k.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// MethodNames returns the method names visible on this class, sorted by the
// caller if order matters.
func (c *Class) MethodNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for k := c; k != nil; k = k.parent {
		for name := range k.methods {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
