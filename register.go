package graft

import "fmt"

// Def describes how a native type T participates in the runtime's object
// model. Every field is optional; absence disables the corresponding
// operation rather than failing.
//
// Conversions and comparisons are not listed here: they are detected from
// *T's method set at registration (see the interfaces in capability.go).
type Def[T any] struct {
	// New default-constructs a payload. When nil the class may not be
	// directly instantiated: the create hook raises a construction error
	// and yields a header-only placeholder.
	New func() T

	// Copy copy-constructs a payload from an existing one. When nil the
	// clone hook is omitted entirely and the runtime rejects cloning.
	Copy func(src *T) T

	// Free is the native destructor, run by the destroy hook before the
	// header teardown.
	Free func(*T)

	// Methods maps method names to ordinary Go functions whose first
	// parameter is *T. Arguments and results are converted automatically;
	// a trailing error return becomes a host-visible exception.
	Methods map[string]any
}

// RegisterClass performs one-time registration of a native type: it detects
// the type's capabilities, synthesizes the lifecycle/cast/compare hooks into
// a fresh handler table, binds the method table, and hands the class to the
// runtime. Call it once per native type during startup; duplicate names are
// rejected.
func RegisterClass[T any](rt *Runtime, name string, def Def[T]) (*Class, error) {
	c := detectCaps[T]()

	h := &Handlers{Caps: c.mask}
	if def.New != nil {
		h.Caps |= CapConstruct
	}
	if def.Copy != nil {
		h.Caps |= CapClone
	}
	h.Create = makeCreate(def, h)
	h.Clone = makeClone(def, h)
	h.Destroy = makeDestroy(def)
	h.Cast = makeCast(c)
	h.Compare = makeCompare(c, h)

	methods, err := bindMethods[T](def.Methods)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", name, err)
	}

	class := &Class{Name: name, methods: methods, handlers: h}
	if err := rt.addClass(class); err != nil {
		return nil, err
	}
	return class, nil
}
