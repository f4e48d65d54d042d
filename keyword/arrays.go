package keyword

import (
	"fmt"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

func validateItems(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	switch s := schema.(type) {
	case []any:
		// Tuple form: position i validates against schema i.
		for i, element := range items {
			if i >= len(s) {
				break
			}
			seg := []sv.Segment{sv.Index(i)}
			if !descend(ctx.at(seg, seg), element, s[i], yield) {
				return false
			}
		}
		return true
	case bool:
		if !BooleanSchemasAllowed(ctx.Draft) {
			return ctx.emit(yield, "items", "boolean schemas are not allowed in this draft")
		}
		if s {
			return true
		}
		for i := range items {
			next := ctx.at([]sv.Segment{sv.Index(i)}, nil)
			if !next.emit(yield, "items", "false schema matches nothing") {
				return false
			}
		}
		return true
	default:
		for i, element := range items {
			next := ctx.at([]sv.Segment{sv.Index(i)}, nil)
			if !descend(next, element, schema, yield) {
				return false
			}
		}
		return true
	}
}

func validateAdditionalItems(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool {
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	// Only meaningful when the sibling "items" is in tuple form.
	rawItems, present := parent.Get("items")
	if !present {
		return true
	}
	tuple, ok := rawItems.([]any)
	if !ok {
		return true
	}
	if len(items) <= len(tuple) {
		return true
	}

	switch s := schema.(type) {
	case bool:
		if s {
			return true
		}
		return ctx.emit(yield, "additionalItems",
			fmt.Sprintf("array has more than %d items", len(tuple)))
	case *jsontree.Object:
		for i := len(tuple); i < len(items); i++ {
			next := ctx.at([]sv.Segment{sv.Index(i)}, nil)
			if !descend(next, items[i], s, yield) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func validateMinItems(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || len(items) >= bound {
		return true
	}
	return ctx.emit(yield, "minItems", fmt.Sprintf("array has fewer than %d items", bound))
}

func validateMaxItems(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || len(items) <= bound {
		return true
	}
	return ctx.emit(yield, "maxItems", fmt.Sprintf("array has more than %d items", bound))
}

func validateUniqueItems(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	unique, ok := schema.(bool)
	if !ok || !unique {
		return true
	}
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if jsontree.Equal(items[i], items[j]) {
				return ctx.emit(yield, "uniqueItems", "array items are not unique")
			}
		}
	}
	return true
}

func validateContains(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	items, ok := instance.([]any)
	if !ok {
		return true
	}
	for _, element := range items {
		if IsValid(ctx, element, schema) {
			return true
		}
	}
	return ctx.emit(yield, "contains", "no array item matches the contains schema")
}
