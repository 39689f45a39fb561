package graft

// Object is the per-instance header every class instance carries: type
// identity, ownership bookkeeping, the handler table that the runtime calls
// for lifecycle/cast/compare operations, and flexible property storage.
//
// For instances of adapter-registered classes the header shares one
// allocation with the native payload (see instance below); for plain objects
// the native slot is nil.
type Object struct {
	class    *Class
	handlers *Handlers
	refs     int32
	props    map[string]Value
	native   any // *T for adapter-backed instances, nil otherwise
}

// instance couples the runtime object header with the native payload in a
// single allocation. This replaces the pointer-offset co-location trick:
// header and payload still share one allocation and one lifetime, but the
// address translations are plain field access.
type instance[T any] struct {
	header Object
	native T
}

// allocInstance allocates a zeroed header+payload block for class and wires
// the header's native slot to the payload. The payload is default-constructed
// (zero value) until the lifecycle hooks fill it in.
func allocInstance[T any](class *Class, h *Handlers) *instance[T] {
	inst := new(instance[T])
	initObject(&inst.header, class, h)
	inst.header.native = &inst.native
	return inst
}

// initObject performs the runtime's standard per-header setup: identity,
// initial ownership, and the property storage the class demands.
func initObject(o *Object, class *Class, h *Handlers) {
	o.class = class
	o.handlers = h
	o.refs = 1
	o.props = make(map[string]Value)
}

// newObject allocates a plain object with no native payload. Used for
// placeholder instances of unconstructible classes.
func newObject(class *Class) *Object {
	o := &Object{}
	initObject(o, class, stdHandlers)
	return o
}

// stdTeardown is the runtime's own per-header teardown, run after any native
// destructor.
func stdTeardown(o *Object) {
	o.props = nil
	o.native = nil
}

// stdHandlers backs plain objects: destroy-only, no clone, no cast, no
// compare.
var stdHandlers = &Handlers{Destroy: stdTeardown}

// Class returns the object's concrete runtime class.
func (o *Object) Class() *Class { return o.class }

// Handlers returns the handler table installed on this instance.
func (o *Object) Handlers() *Handlers { return o.handlers }

// IsInstanceOf reports whether the object's class is c or a subclass of c.
func (o *Object) IsInstanceOf(c *Class) bool {
	for k := o.class; k != nil; k = k.parent {
		if k == c {
			return true
		}
	}
	return false
}

// Property returns a property slot from the header's flexible storage.
func (o *Object) Property(name string) (Value, bool) {
	v, ok := o.props[name]
	return v, ok
}

// SetProperty stores a property slot in the header's flexible storage.
func (o *Object) SetProperty(name string, v Value) {
	if o.props == nil {
		return // destroyed instance
	}
	o.props[name] = v
}

// Native returns the native payload of an adapter-backed instance.
// It reports false if the object does not wrap a T (plain object, destroyed
// instance, or an instance of a different native type).
//
// Method implementations use this to recover their receiver:
//
//	func(c *Counter) int64 { ... }  // bound methods get this for free
//	p, ok := graft.Native[Counter](obj)
func Native[T any](o *Object) (*T, bool) {
	if o == nil {
		return nil, false
	}
	p, ok := o.native.(*T)
	return p, ok
}

// nativeOf is the internal unchecked form of Native. The dispatchers only
// call it on objects whose handler table identity was already matched.
func nativeOf[T any](o *Object) *T {
	p, _ := o.native.(*T)
	return p
}
