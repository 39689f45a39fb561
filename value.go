package graft

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a runtime value. The same tags are used both as cast
// targets and to classify a comparison operand.
type Kind uint8

const (
	// KindUndef is an uninitialized value slot.
	KindUndef Kind = iota

	// KindNull is the null value.
	KindNull

	// KindFalse and KindTrue are the two boolean values. They are distinct
	// tags so an operand can be classified without reading a payload.
	KindFalse
	KindTrue

	// KindBool is a virtual tag used only as a cast target; concrete values
	// always carry KindTrue or KindFalse.
	KindBool

	// KindInt is a 64-bit signed integer.
	KindInt

	// KindDouble is a 64-bit floating-point number.
	KindDouble

	// KindString is an immutable string.
	KindString

	// KindArray is an ordered key/value collection.
	KindArray

	// KindObject is a class instance.
	KindObject

	// KindResource is an opaque handle to something outside the runtime.
	KindResource
)

var kindNames = map[Kind]string{
	KindUndef:    "undef",
	KindNull:     "null",
	KindFalse:    "false",
	KindTrue:     "true",
	KindBool:     "bool",
	KindInt:      "int",
	KindDouble:   "double",
	KindString:   "string",
	KindArray:    "array",
	KindObject:   "object",
	KindResource: "resource",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindByName resolves a kind from its display name. Used by the shell and
// anything else that accepts cast targets textually.
func KindByName(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return KindUndef, false
}

// Value is a runtime value: a kind tag plus the payload for that kind.
// The zero Value is undef.
type Value struct {
	kind Kind
	ival int64
	dval float64
	sval string
	aval *Array
	oval *Object
	rval *Resource
}

// Undef returns the uninitialized value.
func Undef() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindTrue}
	}
	return Value{kind: KindFalse}
}

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, ival: v} }

// Double returns a floating-point value.
func Double(v float64) Value { return Value{kind: KindDouble, dval: v} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, sval: s} }

// ArrayValue wraps an array. A nil array yields an empty one.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = NewArray()
	}
	return Value{kind: KindArray, aval: a}
}

// ObjectValue wraps an object instance.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, oval: o} }

// ResourceValue wraps an opaque resource handle.
func ResourceValue(r *Resource) Value { return Value{kind: KindResource, rval: r} }

// Kind returns the value's classification tag.
func (v Value) Kind() Kind { return v.kind }

// IsUndef reports whether the value is the uninitialized value.
func (v Value) IsUndef() bool { return v.kind == KindUndef }

// IsNull reports whether the value is null or undef.
func (v Value) IsNull() bool { return v.kind == KindNull || v.kind == KindUndef }

// Bool returns the boolean payload. Only meaningful for KindTrue/KindFalse.
func (v Value) Bool() bool { return v.kind == KindTrue }

// Int returns the integer payload.
func (v Value) Int() int64 { return v.ival }

// Double returns the floating-point payload.
func (v Value) Double() float64 { return v.dval }

// Array returns the array payload, or nil for non-array values.
func (v Value) Array() *Array { return v.aval }

// Object returns the object payload, or nil for non-object values.
func (v Value) Object() *Object { return v.oval }

// Resource returns the resource payload, or nil for non-resource values.
func (v Value) Resource() *Resource { return v.rval }

// String returns the display representation of the value.
// Scalars render the way the runtime prints them ("1"/"0" for booleans,
// %g for doubles); arrays render as a space-separated key/value list.
func (v Value) String() string {
	switch v.kind {
	case KindUndef, KindNull:
		return ""
	case KindFalse:
		return "0"
	case KindTrue:
		return "1"
	case KindInt:
		return strconv.FormatInt(v.ival, 10)
	case KindDouble:
		return strconv.FormatFloat(v.dval, 'g', -1, 64)
	case KindString:
		return v.sval
	case KindArray:
		return v.aval.String()
	case KindObject:
		if v.oval == nil || v.oval.class == nil {
			return "<object>"
		}
		return fmt.Sprintf("<%s object>", v.oval.class.Name)
	case KindResource:
		if v.rval == nil {
			return "<resource>"
		}
		return fmt.Sprintf("<resource %s>", v.rval.Name)
	}
	return ""
}

// quote adds braces around a display element if it contains separators.
func quote(s string) string {
	if s == "" {
		return "{}"
	}
	if strings.ContainsAny(s, " \t\n{}") {
		return "{" + s + "}"
	}
	return s
}
