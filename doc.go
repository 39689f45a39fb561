// Package graft embeds native Go value types into the object model of an
// embeddable dynamically-typed runtime, synthesizing the runtime's lifecycle,
// cast and comparison hooks from whichever optional methods a type happens to
// declare.
//
// # Overview
//
// A native type participates by defining any subset of a closed set of
// optional methods (ToBool, ToInt, ToDouble, ToString, ToArray, and the
// Compare family) plus optional constructor/copy/destructor functions in its
// [Def]. Nothing is mandatory; a missing method simply disables the matching
// runtime operation. Registration probes the type's method set once, builds
// an immutable per-class handler table, and installs it on the runtime.
//
// # Quick Start
//
//	import "github.com/graft-runtime/graft"
//
//	type Counter struct {
//	    value int64
//	}
//
//	func (c *Counter) ToInt() int64            { return c.value }
//	func (c *Counter) CompareInt(n int64) int  { return cmp.Compare(c.value, n) }
//	func (c *Counter) Compare(o *Counter) int  { return cmp.Compare(c.value, o.value) }
//
//	func main() {
//	    rt := graft.New()
//	    class, _ := graft.RegisterClass[Counter](rt, "Counter", graft.Def[Counter]{
//	        New:  func() Counter { return Counter{} },
//	        Copy: func(src *Counter) Counter { return *src },
//	        Methods: map[string]any{
//	            "incr": func(c *Counter) int64 { c.value++; return c.value },
//	        },
//	    })
//
//	    obj, _ := rt.NewInstance(class)
//	    rt.CallMethod(obj, "incr")
//	    v, _ := rt.Cast(graft.ObjectValue(obj), graft.KindInt) // Int(1)
//	    r, _ := rt.Compare(graft.ObjectValue(obj), graft.Int(5)) // -1
//	    _ = v
//	    _ = r
//	}
//
// # Lifecycle
//
// Instances are created by the runtime through the registered create hook,
// duplicated through the clone hook (only when Def.Copy is present), and torn
// down through the destroy hook when the last reference is released. Header
// and native payload share one allocation and one lifetime; no other code
// path constructs, copies, or destroys an instance.
//
// # Failure model
//
// Only construction errors are host-visible exceptions. A cast with no
// matching conversion and a comparison with no applicable overload are silent
// failure statuses ([CastError], [CompareError]) so the host can apply its
// own fallback semantics; a failed comparison still yields the neutral
// result 0.
package graft
