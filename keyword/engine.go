// Package keyword implements the recursive validation engine: one validator
// per JSON Schema keyword, per-draft keyword and format tables, and the
// descent logic that walks a schema and an instance in lockstep.
//
// Validators are push-style: they report errors through a yield function and
// return false as soon as the consumer stops, so validation is lazy and a
// caller checking only for validity pays for a single error.
package keyword

import (
	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
	"github.com/goschema/validator/resolver"
)

// Yield consumes one validation error. Returning false stops the traversal.
type Yield func(err sv.Error) bool

// Func validates one keyword. schema is the keyword's value and parent the
// enclosing schema object (some keywords consult their siblings). The return
// value is false only when the consumer stopped; keyword mismatches are
// reported through yield and never abort traversal.
type Func func(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool

// Validate applies a schema node to an instance node, emitting every
// violation found. Returns false when the consumer stopped.
func Validate(ctx *Context, instance, schema any, yield Yield) bool {
	switch s := schema.(type) {
	case bool:
		if !BooleanSchemasAllowed(ctx.Draft) {
			return ctx.emit(yield, "", "boolean schemas are not allowed in "+ctx.Draft.String())
		}
		if s {
			return true
		}
		return ctx.emit(yield, "", "false schema matches nothing")

	case *jsontree.Object:
		if s.Has("$ref") {
			// $ref wins: sibling keywords are ignored in drafts 4-7.
			raw, _ := s.Get("$ref")
			return validateRef(ctx.atKeyword("$ref"), instance, raw, s, yield)
		}
		for name, value := range s.Items() {
			fn, ok := Lookup(ctx.Draft, name)
			if !ok {
				continue
			}
			if !fn(ctx.atKeyword(name), instance, value, s, yield) {
				return false
			}
		}
		return true

	default:
		return ctx.emit(yield, "", "schema must be an object or a boolean")
	}
}

// descend validates a child schema/instance pair, entering the subschema's
// $id scope if it declares one. Path extension is the caller's business via
// Context.at.
func descend(ctx *Context, instance, schema any, yield Yield) bool {
	if id, ok := resolver.IDOf(ctx.Draft, schema); ok {
		ctx = ctx.pushScope(id)
	}
	return Validate(ctx, instance, schema, yield)
}

// IsValid runs a nested validation whose outcome is interpreted for
// emptiness, stopping at the first error. Composition keywords use it;
// the outer context's paths are never disturbed.
func IsValid(ctx *Context, instance, schema any) bool {
	valid := true
	descend(ctx.probe(), instance, schema, func(sv.Error) bool {
		valid = false
		return false
	})
	return valid
}
