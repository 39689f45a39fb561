package graft

// Resource is an opaque handle to something that lives outside the runtime
// (a socket, a database connection). The runtime never looks inside one, and
// no native type may cast to it.
type Resource struct {
	Name string
	Data any
}

// NewResource wraps data in a named resource handle.
func NewResource(name string, data any) *Resource {
	return &Resource{Name: name, Data: data}
}
