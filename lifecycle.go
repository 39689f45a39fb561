package graft

// Lifecycle hook synthesis. Create, clone and destroy are the only places
// instance storage is allocated or torn down.

// makeCreate builds the create hook. With a constructor the hook allocates a
// combined header+payload block, constructs the payload and installs the
// class's handlers. Without one it raises a construction error naming the
// class and returns a header-only placeholder so the host's object
// bookkeeping stays consistent.
func makeCreate[T any](def Def[T], h *Handlers) func(*Runtime, *Class) *Object {
	if def.New == nil {
		return func(rt *Runtime, class *Class) *Object {
			rt.Throw(&ConstructError{Class: class.Name})
			return newObject(class)
		}
	}
	return func(rt *Runtime, class *Class) *Object {
		inst := allocInstance[T](class, h)
		inst.native = def.New()
		return &inst.header
	}
}

// makeClone builds the clone hook, or nil when the native type is not
// copy-constructible. The duplicate is allocated for the concrete runtime
// class of the source, which may be a subclass of the registered one.
func makeClone[T any](def Def[T], h *Handlers) func(*Runtime, *Object) *Object {
	if def.Copy == nil {
		return nil
	}
	return func(rt *Runtime, src *Object) *Object {
		inst := allocInstance[T](src.class, h)
		inst.native = def.Copy(nativeOf[T](src))
		for name, v := range src.props {
			inst.header.props[name] = v
		}
		return &inst.header
	}
}

// makeDestroy builds the destroy hook: native destructor first, if any, then
// the runtime's standard header teardown.
func makeDestroy[T any](def Def[T]) func(*Object) {
	return func(o *Object) {
		if def.Free != nil {
			if p := nativeOf[T](o); p != nil {
				def.Free(p)
			}
		}
		stdTeardown(o)
	}
}
