// Package value implements the calculator's tagged-union Value record: one
// reference-counted box per kind, holding a type descriptor and a
// kind-specific payload.
//
// Go has a tracing garbage collector, so nothing here is required for
// memory safety by itself; the explicit Retain/Release bookkeeping exists
// to keep ref_count an observable invariant (always >= 1) and because
// Tensor/Array cells need a clone-on-write discipline to keep indexed
// assignment from silently mutating a value another binding still holds:
// shared ownership for the immutable kinds, clone-on-write for the two
// mutable container kinds, no cycle collector because the data is acyclic.
package value

import "bc/internal/kind"

// Value is the calculator's single runtime representation for every kind.
type Value struct {
	Type *kind.Type
	refs int32
	Data interface{}
}

// New wraps a payload at the given type with an initial reference count of
// one.
func New(t *kind.Type, data interface{}) *Value {
	return &Value{Type: t, refs: 1, Data: data}
}

// Retain raises the reference count, used when a binding or container
// stores a Value already owned elsewhere.
func (v *Value) Retain() *Value {
	if v == nil || v == Sentinel {
		return v
	}
	v.refs++
	return v
}

// Release drops the reference count. It never frees eagerly — the Go
// garbage collector reclaims the payload once nothing references it — but
// it is the hook that would do so in a hand-rolled allocator, and
// RefCount() below lets invariant tests observe the bookkeeping.
func (v *Value) Release() {
	if v == nil || v == Sentinel {
		return
	}
	v.refs--
}

// RefCount reports the current reference count.
func (v *Value) RefCount() int32 {
	if v == nil {
		return 0
	}
	return v.refs
}

// Tag is a shorthand for v.Type.Tag.
func (v *Value) Tag() kind.Tag {
	return v.Type.Tag
}

// Sentinel is the distinguished "exception" value: distinct from any legal
// value, returned whenever a Context's pending-error slot is set. It is
// never itself arithmetic input — callers must check for it before using a
// result.
var Sentinel = &Value{Type: kind.Plain(kind.Null), refs: 1, Data: sentinelMarker{}}

type sentinelMarker struct{}

// IsSentinel reports whether v is the exception sentinel.
func IsSentinel(v *Value) bool {
	return v == Sentinel
}

// Singletons for the process-long Bool and Null values.
var (
	True  = New(kind.Plain(kind.Bool), BoolData(true))
	False = New(kind.Plain(kind.Bool), BoolData(false))
	Null  = New(kind.Plain(kind.Null), NullData{})
)

// Bool returns the shared True or False singleton.
func Bool(b bool) *Value {
	if b {
		return True
	}
	return False
}
