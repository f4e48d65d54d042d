package keyword

import (
	"fmt"
	"strings"

	"github.com/goschema/validator/jsontree"
)

// typeName reports the JSON Schema type name of an instance, refining
// numbers with no fractional part to "integer".
func typeName(instance any) string {
	kind := jsontree.KindOf(instance)
	if kind == jsontree.KindNumber && jsontree.IsInteger(instance) {
		return "integer"
	}
	return kind.String()
}

// matchesType reports whether an instance satisfies one declared type name.
// Unknown type names match everything; the metaschema rejects them.
func matchesType(instance any, name string) bool {
	kind := jsontree.KindOf(instance)
	switch name {
	case "null":
		return kind == jsontree.KindNull
	case "boolean":
		return kind == jsontree.KindBoolean
	case "number":
		return kind == jsontree.KindNumber
	case "integer":
		return kind == jsontree.KindNumber && jsontree.IsInteger(instance)
	case "string":
		return kind == jsontree.KindString
	case "array":
		return kind == jsontree.KindArray
	case "object":
		return kind == jsontree.KindObject
	default:
		return true
	}
}

func validateType(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	var names []string
	switch s := schema.(type) {
	case string:
		names = []string{s}
	case []any:
		for _, raw := range s {
			if name, ok := raw.(string); ok {
				names = append(names, name)
			}
		}
	default:
		return true
	}

	for _, name := range names {
		if matchesType(instance, name) {
			return true
		}
	}
	return ctx.emit(yield, "type", fmt.Sprintf(
		"expected %s, got %s", quoteList(names), typeName(instance)))
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, " or ")
}

func validateEnum(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	members, ok := schema.([]any)
	if !ok {
		return true
	}
	for _, member := range members {
		if jsontree.Equal(instance, member) {
			return true
		}
	}
	return ctx.emit(yield, "enum", "value is not one of the enumerated values")
}

func validateConst(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	if jsontree.Equal(instance, schema) {
		return true
	}
	return ctx.emit(yield, "const", "value does not equal the const value")
}

func validateFormat(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	if !ctx.Formats {
		return true
	}
	value, ok := instance.(string)
	if !ok {
		return true
	}
	name, ok := schema.(string)
	if !ok {
		return true
	}
	checker, known := LookupFormat(ctx.Draft, name)
	if !known {
		// Unknown formats are annotative only.
		return true
	}
	if checker(ctx, value) {
		return true
	}
	return ctx.emit(yield, "format", fmt.Sprintf("%q is not a valid %s", value, name))
}
