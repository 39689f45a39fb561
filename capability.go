package graft

// A native type opts into runtime conversions and comparisons by declaring
// any subset of the interfaces below on its pointer receiver. Nothing is
// mandatory: a missing method simply disables the corresponding hook or
// operand, it never crashes. Detection is signature-exact — a method with a
// matching name but the wrong signature does not satisfy the interface and
// is treated as absent.
//
// The method sets are probed once, at registration time, and folded into a
// capability descriptor of function references; the per-call dispatch is a
// plain nil check.

// BoolConvertible natives can be cast to a boolean.
type BoolConvertible interface{ ToBool() bool }

// IntConvertible natives can be cast to an integer.
type IntConvertible interface{ ToInt() int64 }

// DoubleConvertible natives can be cast to a floating-point number.
type DoubleConvertible interface{ ToDouble() float64 }

// StringConvertible natives can be cast to a string.
type StringConvertible interface{ ToString() string }

// ArrayConvertible natives can be cast to an array.
type ArrayConvertible interface{ ToArray() *Array }

// NullComparer natives order themselves against null/undef operands.
type NullComparer interface{ CompareNull() int }

// BoolComparer natives order themselves against boolean operands.
type BoolComparer interface{ CompareBool(bool) int }

// IntComparer natives order themselves against integer operands.
type IntComparer interface{ CompareInt(int64) int }

// DoubleComparer natives order themselves against floating-point operands.
type DoubleComparer interface{ CompareDouble(float64) int }

// StringComparer natives order themselves against string operands.
type StringComparer interface{ CompareString(string) int }

// ArrayComparer natives order themselves against array operands.
type ArrayComparer interface{ CompareArray(*Array) int }

// ObjectComparer natives order themselves against arbitrary object operands.
// The same-type overload, interface{ Compare(*T) int }, takes precedence when
// both operands wrap the same native type.
type ObjectComparer interface{ CompareObject(*Object) int }

// ResourceComparer natives order themselves against resource operands.
type ResourceComparer interface{ CompareResource(*Resource) int }

// ValueComparer is the fully generic fallback, attempted after every
// kind-specific overload.
type ValueComparer interface{ CompareValue(Value) int }

// caps is the per-type capability descriptor: one optional function
// reference per operation, nil when the native type lacks it.
type caps[T any] struct {
	mask Capability

	toBool   func(*T) bool
	toInt    func(*T) int64
	toDouble func(*T) float64
	toString func(*T) string
	toArray  func(*T) *Array

	cmpSame     func(*T, *T) int
	cmpNull     func(*T) int
	cmpBool     func(*T, bool) int
	cmpInt      func(*T, int64) int
	cmpDouble   func(*T, float64) int
	cmpString   func(*T, string) int
	cmpArray    func(*T, *Array) int
	cmpObject   func(*T, *Object) int
	cmpResource func(*T, *Resource) int
	cmpValue    func(*T, Value) int
}

// detectCaps probes *T's method set and builds the capability descriptor.
// Pure type-level query: the nil probe is never dereferenced.
func detectCaps[T any]() *caps[T] {
	c := &caps[T]{}
	probe := any((*T)(nil))

	if _, ok := probe.(BoolConvertible); ok {
		c.mask |= CapToBool
		c.toBool = func(p *T) bool { return any(p).(BoolConvertible).ToBool() }
	}
	if _, ok := probe.(IntConvertible); ok {
		c.mask |= CapToInt
		c.toInt = func(p *T) int64 { return any(p).(IntConvertible).ToInt() }
	}
	if _, ok := probe.(DoubleConvertible); ok {
		c.mask |= CapToDouble
		c.toDouble = func(p *T) float64 { return any(p).(DoubleConvertible).ToDouble() }
	}
	if _, ok := probe.(StringConvertible); ok {
		c.mask |= CapToString
		c.toString = func(p *T) string { return any(p).(StringConvertible).ToString() }
	}
	if _, ok := probe.(ArrayConvertible); ok {
		c.mask |= CapToArray
		c.toArray = func(p *T) *Array { return any(p).(ArrayConvertible).ToArray() }
	}

	if _, ok := probe.(interface{ Compare(*T) int }); ok {
		c.mask |= CapCompareSame
		c.cmpSame = func(p, q *T) int { return any(p).(interface{ Compare(*T) int }).Compare(q) }
	}
	if _, ok := probe.(NullComparer); ok {
		c.mask |= CapCompareNull
		c.cmpNull = func(p *T) int { return any(p).(NullComparer).CompareNull() }
	}
	if _, ok := probe.(BoolComparer); ok {
		c.mask |= CapCompareBool
		c.cmpBool = func(p *T, b bool) int { return any(p).(BoolComparer).CompareBool(b) }
	}
	if _, ok := probe.(IntComparer); ok {
		c.mask |= CapCompareInt
		c.cmpInt = func(p *T, n int64) int { return any(p).(IntComparer).CompareInt(n) }
	}
	if _, ok := probe.(DoubleComparer); ok {
		c.mask |= CapCompareDouble
		c.cmpDouble = func(p *T, d float64) int { return any(p).(DoubleComparer).CompareDouble(d) }
	}
	if _, ok := probe.(StringComparer); ok {
		c.mask |= CapCompareString
		c.cmpString = func(p *T, s string) int { return any(p).(StringComparer).CompareString(s) }
	}
	if _, ok := probe.(ArrayComparer); ok {
		c.mask |= CapCompareArray
		c.cmpArray = func(p *T, a *Array) int { return any(p).(ArrayComparer).CompareArray(a) }
	}
	if _, ok := probe.(ObjectComparer); ok {
		c.mask |= CapCompareObject
		c.cmpObject = func(p *T, o *Object) int { return any(p).(ObjectComparer).CompareObject(o) }
	}
	if _, ok := probe.(ResourceComparer); ok {
		c.mask |= CapCompareResource
		c.cmpResource = func(p *T, r *Resource) int { return any(p).(ResourceComparer).CompareResource(r) }
	}
	if _, ok := probe.(ValueComparer); ok {
		c.mask |= CapCompareValue
		c.cmpValue = func(p *T, v Value) int { return any(p).(ValueComparer).CompareValue(v) }
	}

	return c
}
