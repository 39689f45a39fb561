package graft

// makeCast builds the cast hook from the capability descriptor.
//
// Null and undef targets always succeed; an object target returns the
// instance itself unmodified; a resource target always fails. The four
// remaining kinds succeed iff the native type exposes the matching
// conversion; otherwise the hook reports failure and leaves fallback
// semantics to the host.
func makeCast[T any](c *caps[T]) func(*Object, Kind) (Value, bool) {
	return func(o *Object, target Kind) (Value, bool) {
		switch target {
		case KindUndef:
			return Undef(), true
		case KindNull:
			return Null(), true
		case KindBool, KindTrue, KindFalse:
			if c.toBool != nil {
				return Bool(c.toBool(nativeOf[T](o))), true
			}
		case KindInt:
			if c.toInt != nil {
				return Int(c.toInt(nativeOf[T](o))), true
			}
		case KindDouble:
			if c.toDouble != nil {
				return Double(c.toDouble(nativeOf[T](o))), true
			}
		case KindString:
			if c.toString != nil {
				return String(c.toString(nativeOf[T](o))), true
			}
		case KindArray:
			if c.toArray != nil {
				return ArrayValue(c.toArray(nativeOf[T](o))), true
			}
		case KindObject:
			return ObjectValue(o), true
		case KindResource:
			return Value{}, false
		}
		return Value{}, false
	}
}
