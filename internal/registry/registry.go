// Package registry implements the calculator's name -> binding table
//: "Each binding is either a direct value or a 'getter'
// binding whose value is produced by calling the stored function with no
// arguments (used for context-dependent constants such as PI at the
// current decimal precision)."
package registry

import (
	"bc/internal/bcerr"
	"bc/internal/calc"
	"bc/internal/value"
)

type binding struct {
	value  *value.Value
	getter func(ctx *calc.Context) *value.Value
}

// Registry is the evaluator's symbol table: variables set by assignment,
// built-in functions, and context-dependent constants all live in the
// same flat namespace.
type Registry struct {
	names map[string]*binding
}

func New() *Registry {
	return &Registry{names: make(map[string]*binding)}
}

// Bind stores a direct value under name, overwriting any prior binding.
func (r *Registry) Bind(name string, v *value.Value) {
	r.names[name] = &binding{value: v}
}

// BindGetter stores a getter binding: lookups call fn(ctx) fresh every
// time, so a precision change (via \p or \bp) is reflected immediately.
func (r *Registry) BindGetter(name string, fn func(ctx *calc.Context) *value.Value) {
	r.names[name] = &binding{getter: fn}
}

// Lookup resolves name against the current context, invoking its getter
// if it has one. Returns (value, true) on success.
func (r *Registry) Lookup(ctx *calc.Context, name string) (*value.Value, bool) {
	b, ok := r.names[name]
	if !ok {
		return nil, false
	}
	if b.getter != nil {
		return b.getter(ctx), true
	}
	return b.value, true
}

// Has reports whether name is bound, without evaluating a getter.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Resolve is the evaluator's identifier-lookup entry point: an unbound
// name is a reference error.
func (r *Registry) Resolve(ctx *calc.Context, name string) *value.Value {
	v, ok := r.Lookup(ctx, name)
	if !ok {
		ctx.Fail(bcerr.Reference, "undefined name %q", name)
		return value.Sentinel
	}
	return v
}
