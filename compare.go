package graft

// makeCompare builds the three-way comparison hook. At least one operand is
// known to be an instance carrying the handler table h.
//
// Dispatch is tiered, most specific first:
//
//  1. Normalize so the wrapped operand is first; a swapped comparison is
//     negated on success, so compare(a,b) == -compare(b,a) always holds.
//  2. When both operands wrap the same native type, the same-type overload
//     is authoritative if present.
//  3. Otherwise the overload matching the other operand's kind is attempted
//     (the zero-argument overload for null/undef operands).
//  4. The generic Value overload is the safety net.
//  5. When everything fails the hook reports failure but still yields the
//     neutral 0, since the output slot must hold a defined value.
func makeCompare[T any](c *caps[T], h *Handlers) func(Value, Value) (int, bool) {
	var cmp func(a, b Value) (int, bool)
	cmp = func(a, b Value) (int, bool) {
		if !wrappedBy(a, h) {
			// Invert so that the first operand is always ours.
			if res, ok := cmp(b, a); ok {
				return -res, true
			}
			return 0, false
		}
		p := nativeOf[T](a.Object())

		if wrappedBy(b, h) && c.cmpSame != nil {
			return c.cmpSame(p, nativeOf[T](b.Object())), true
		}

		switch b.Kind() {
		case KindUndef, KindNull:
			if c.cmpNull != nil {
				return c.cmpNull(p), true
			}
		case KindFalse, KindTrue:
			if c.cmpBool != nil {
				return c.cmpBool(p, b.Bool()), true
			}
		case KindInt:
			if c.cmpInt != nil {
				return c.cmpInt(p, b.Int()), true
			}
		case KindDouble:
			if c.cmpDouble != nil {
				return c.cmpDouble(p, b.Double()), true
			}
		case KindString:
			if c.cmpString != nil {
				return c.cmpString(p, b.String()), true
			}
		case KindArray:
			if c.cmpArray != nil {
				return c.cmpArray(p, b.Array()), true
			}
		case KindObject:
			if c.cmpObject != nil {
				return c.cmpObject(p, b.Object()), true
			}
		case KindResource:
			if c.cmpResource != nil {
				return c.cmpResource(p, b.Resource()), true
			}
		}

		if c.cmpValue != nil {
			return c.cmpValue(p, b), true
		}
		return 0, false
	}
	return cmp
}

// wrappedBy reports whether v is an instance carrying the handler table h.
// Handler table identity is what ties an object back to its native type;
// subclasses share the parent's table.
func wrappedBy(v Value, h *Handlers) bool {
	return v.Kind() == KindObject && v.Object() != nil && v.Object().handlers == h
}
