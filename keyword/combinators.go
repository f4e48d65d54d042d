package keyword

import (
	"fmt"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

func validateAllOf(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	subschemas, ok := schema.([]any)
	if !ok {
		return true
	}
	for i, sub := range subschemas {
		next := ctx.at(nil, []sv.Segment{sv.Index(i)})
		if !descend(next, instance, sub, yield) {
			return false
		}
	}
	return true
}

func validateAnyOf(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	subschemas, ok := schema.([]any)
	if !ok {
		return true
	}
	for _, sub := range subschemas {
		if IsValid(ctx, instance, sub) {
			return true
		}
	}
	return ctx.emit(yield, "anyOf", "instance does not match any of the anyOf schemas")
}

func validateOneOf(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	subschemas, ok := schema.([]any)
	if !ok {
		return true
	}
	matches := 0
	for _, sub := range subschemas {
		if IsValid(ctx, instance, sub) {
			matches++
			if matches > 1 {
				break
			}
		}
	}
	switch matches {
	case 1:
		return true
	case 0:
		return ctx.emit(yield, "oneOf", "instance does not match any of the oneOf schemas")
	default:
		return ctx.emit(yield, "oneOf", "instance matches more than one of the oneOf schemas")
	}
}

func validateNot(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	if !IsValid(ctx, instance, schema) {
		return true
	}
	return ctx.emit(yield, "not", "instance must not match the not schema")
}

func validateIf(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool {
	branch := "else"
	if IsValid(ctx, instance, schema) {
		branch = "then"
	}
	target, ok := parent.Get(branch)
	if !ok {
		return true
	}
	return descend(ctx.replaceKeyword(branch), instance, target, yield)
}

func validateRef(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	ref, ok := schema.(string)
	if !ok {
		return ctx.emit(yield, "$ref", "$ref must be a string")
	}
	res, err := ctx.Resolver.Resolve(ref, ctx.scopeIDs())
	if err != nil {
		return ctx.emit(yield, "$ref", err.Error())
	}

	key := res.URL + "#" + res.Fragment
	if ctx.visited[key] {
		return ctx.emitError(yield, sv.Error{
			Keyword:      "$ref",
			Message:      fmt.Sprintf("detected a reference cycle through %q", ref),
			InstancePath: ctx.InstancePath(),
			SchemaPath:   ctx.SchemaPath(),
			Cyclic:       true,
		})
	}
	ctx.visited[key] = true
	defer delete(ctx.visited, key)

	// Errors below the hop are addressed relative to the resolved target, so
	// a ref into /definitions/x reports schema paths rooted there.
	next := ctx.withSchemaPath(res.Path).pushScope(res.URL)
	return descend(next, instance, res.Schema, yield)
}
