package graft

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Runtime owns the class registry and drives the per-class hooks. Classes are
// registered once during startup and their handler tables are immutable
// afterwards, so concurrent reads need no synchronization beyond the registry
// lock taken during lookup.
//
// A Runtime provides one execution context at a time per object graph: the
// hooks themselves never block and never lock.
type Runtime struct {
	mu      sync.RWMutex
	classes map[string]*Class

	log     *zap.Logger
	pending error // pending exception, consumed by the operation that raised it
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger installs a structured logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates an empty runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		classes: make(map[string]*Class),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// addClass inserts a class under its name, rejecting duplicates. Registration
// is expected to happen during a startup phase; the lock only serializes
// registration against lookup.
func (r *Runtime) addClass(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[c.Name]; exists {
		return fmt.Errorf("class %q already registered", c.Name)
	}
	r.classes[c.Name] = c
	r.log.Debug("registered class",
		zap.String("class", c.Name),
		zap.Stringer("capabilities", c.handlers.Caps))
	return nil
}

// LookupClass resolves a registered class by name.
func (r *Runtime) LookupClass(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// ClassNames returns the registered class names in sorted order.
func (r *Runtime) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefineSubclass registers a subclass of parent. The subclass shares the
// parent's handler table, so instances carry the parent's native payload and
// hooks while reporting the subclass as their concrete runtime class.
func (r *Runtime) DefineSubclass(name string, parent *Class) (*Class, error) {
	if parent == nil {
		return nil, fmt.Errorf("subclass %q: nil parent", name)
	}
	c := &Class{
		Name:     name,
		parent:   parent,
		methods:  make(map[string]Method),
		handlers: parent.handlers,
	}
	if err := r.addClass(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Throw records a pending host-visible exception. The operation that caused
// it consumes and returns it; an existing pending exception is kept.
func (r *Runtime) Throw(err error) {
	if err == nil {
		return
	}
	r.log.Debug("exception raised", zap.Error(err))
	if r.pending == nil {
		r.pending = err
	}
}

// Exception returns the pending exception without consuming it.
func (r *Runtime) Exception() error { return r.pending }

// takeException consumes and returns the pending exception.
func (r *Runtime) takeException() error {
	err := r.pending
	r.pending = nil
	return err
}

// NewInstance allocates a fresh instance of class via its create hook.
//
// For classes whose native type has no constructor this raises a
// construction error and still returns a header-only placeholder object, so
// the caller's object accounting stays consistent.
func (r *Runtime) NewInstance(class *Class) (*Object, error) {
	if class == nil || class.handlers == nil || class.handlers.Create == nil {
		return nil, fmt.Errorf("class has no create hook")
	}
	obj := class.handlers.Create(r, class)
	return obj, r.takeException()
}

// CloneObject duplicates an instance via its clone hook. Instances of
// non-copy-constructible native types are rejected with ErrNotCloneable.
func (r *Runtime) CloneObject(o *Object) (*Object, error) {
	if o == nil || o.handlers == nil {
		return nil, fmt.Errorf("clone of invalid object")
	}
	if o.handlers.Clone == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotCloneable, o.class.Name)
	}
	dup := o.handlers.Clone(r, o)
	return dup, r.takeException()
}

// Retain adds a reference to the object.
func (r *Runtime) Retain(o *Object) {
	if o != nil {
		o.refs++
	}
}

// Release drops a reference. When the last reference is gone the destroy
// hook runs (native destructor, then header teardown) and Release reports
// true. The create/clone/destroy hooks are the only paths that allocate or
// release instance storage.
func (r *Runtime) Release(o *Object) bool {
	if o == nil || o.refs <= 0 {
		return false
	}
	o.refs--
	if o.refs > 0 {
		return false
	}
	if o.handlers != nil && o.handlers.Destroy != nil {
		o.handlers.Destroy(o)
	}
	return true
}

// CallMethod invokes a method on an instance, resolving it along the class
// chain.
func (r *Runtime) CallMethod(o *Object, name string, args ...Value) (Value, error) {
	if o == nil || o.class == nil {
		return Value{}, fmt.Errorf("method call on invalid object")
	}
	m, ok := o.class.Method(name)
	if !ok {
		names := o.class.MethodNames()
		sort.Strings(names)
		return Value{}, fmt.Errorf("unknown method %q: must be %s", name, strings.Join(names, ", "))
	}
	return m(r, o, args)
}

// Cast converts v to the target primitive kind.
//
// Adapter-backed objects dispatch through their cast hook; a missing native
// conversion yields a CastError status. Primitive values follow the
// runtime's own coercion rules.
func (r *Runtime) Cast(v Value, target Kind) (Value, error) {
	if v.Kind() == KindObject {
		o := v.Object()
		if o != nil && o.handlers != nil && o.handlers.Cast != nil {
			out, ok := o.handlers.Cast(o, target)
			if !ok {
				return Value{}, &CastError{From: o.class.Name, Target: target}
			}
			return out, nil
		}
		// Plain object: only identity conversions apply.
		switch target {
		case KindUndef:
			return Undef(), nil
		case KindNull:
			return Null(), nil
		case KindObject:
			return v, nil
		}
		return Value{}, &CastError{From: "object", Target: target}
	}
	return castPrimitive(v, target)
}

// castPrimitive applies the runtime's coercion rules between primitive kinds.
func castPrimitive(v Value, target Kind) (Value, error) {
	switch target {
	case KindUndef:
		return Undef(), nil
	case KindNull:
		return Null(), nil
	case KindBool, KindTrue, KindFalse:
		return Bool(truthy(v)), nil
	case KindInt:
		n, ok := toInt(v)
		if !ok {
			return Value{}, &CastError{From: v.Kind().String(), Target: target}
		}
		return Int(n), nil
	case KindDouble:
		d, ok := toDouble(v)
		if !ok {
			return Value{}, &CastError{From: v.Kind().String(), Target: target}
		}
		return Double(d), nil
	case KindString:
		return String(v.String()), nil
	case KindArray:
		if v.Kind() == KindArray {
			return v, nil
		}
		if v.IsNull() {
			return ArrayValue(NewArray()), nil
		}
		return ArrayValue(NewList(v)), nil
	}
	return Value{}, &CastError{From: v.Kind().String(), Target: target}
}

func truthy(v Value) bool {
	switch v.Kind() {
	case KindUndef, KindNull, KindFalse:
		return false
	case KindTrue:
		return true
	case KindInt:
		return v.Int() != 0
	case KindDouble:
		return v.Double() != 0
	case KindString:
		return v.String() != "" && v.String() != "0"
	case KindArray:
		return v.Array().Len() > 0
	}
	return true
}

func toInt(v Value) (int64, bool) {
	switch v.Kind() {
	case KindUndef, KindNull, KindFalse:
		return 0, true
	case KindTrue:
		return 1, true
	case KindInt:
		return v.Int(), true
	case KindDouble:
		return int64(v.Double()), true
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func toDouble(v Value) (float64, bool) {
	switch v.Kind() {
	case KindUndef, KindNull, KindFalse:
		return 0, true
	case KindTrue:
		return 1, true
	case KindInt:
		return float64(v.Int()), true
	case KindDouble:
		return v.Double(), true
	case KindString:
		d, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		return d, true
	}
	return 0, false
}

// Compare produces a three-way ordering of a and b. Values backed by a native
// type dispatch through that type's compare hook; primitive pairs follow the
// runtime's own ordering rules. On failure the result is the defined neutral
// 0 alongside a CompareError.
func (r *Runtime) Compare(a, b Value) (int, error) {
	h := compareHandlers(a)
	if h == nil {
		h = compareHandlers(b)
	}
	if h != nil {
		res, ok := h.Compare(a, b)
		if !ok {
			return 0, &CompareError{A: a.Kind(), B: b.Kind()}
		}
		return res, nil
	}
	if a.Kind() == KindObject && b.Kind() == KindObject {
		if a.Object() == b.Object() {
			return 0, nil
		}
		return 0, &CompareError{A: a.Kind(), B: b.Kind()}
	}
	return comparePrimitive(a, b)
}

func compareHandlers(v Value) *Handlers {
	if v.Kind() != KindObject {
		return nil
	}
	o := v.Object()
	if o == nil || o.handlers == nil || o.handlers.Compare == nil {
		return nil
	}
	return o.handlers
}

// comparePrimitive orders two primitive values: numerically when both sides
// are numeric-ish, lexically when both are strings, by length for arrays.
func comparePrimitive(a, b Value) (int, error) {
	if a.Kind() == KindString && b.Kind() == KindString {
		return strings.Compare(a.String(), b.String()), nil
	}
	if a.Kind() == KindArray && b.Kind() == KindArray {
		return orderInt(int64(a.Array().Len()), int64(b.Array().Len())), nil
	}
	da, aok := toDouble(a)
	db, bok := toDouble(b)
	if aok && bok {
		return orderDouble(da, db), nil
	}
	return 0, &CompareError{A: a.Kind(), B: b.Kind()}
}

func orderInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func orderDouble(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
