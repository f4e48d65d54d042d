package keyword

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goschema/validator/jsontree"
)

// numericPair extracts the instance and bound as decimals. Validators skip
// silently when either side is not a number: the keyword does not apply to
// non-numeric instances, and a non-numeric bound is the metaschema's problem.
func numericPair(instance, schema any) (inst, bound decimal.Decimal, ok bool) {
	inst, ok = jsontree.Num(instance)
	if !ok {
		return
	}
	bound, ok = jsontree.Num(schema)
	return
}

func validateMinimum(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok || inst.GreaterThanOrEqual(bound) {
		return true
	}
	return ctx.emit(yield, "minimum", fmt.Sprintf("%s is less than the minimum of %s", inst, bound))
}

func validateMaximum(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok || inst.LessThanOrEqual(bound) {
		return true
	}
	return ctx.emit(yield, "maximum", fmt.Sprintf("%s is greater than the maximum of %s", inst, bound))
}

func validateExclusiveMinimum(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok || inst.GreaterThan(bound) {
		return true
	}
	return ctx.emit(yield, "exclusiveMinimum", fmt.Sprintf("%s is not greater than %s", inst, bound))
}

func validateExclusiveMaximum(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok || inst.LessThan(bound) {
		return true
	}
	return ctx.emit(yield, "exclusiveMaximum", fmt.Sprintf("%s is not less than %s", inst, bound))
}

// Draft4 treats exclusiveMinimum/exclusiveMaximum as booleans that sharpen
// the minimum/maximum bounds rather than as bounds of their own.

func validateMinimumDraft4(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok {
		return true
	}
	if exclusiveFlag(parent, "exclusiveMinimum") {
		if inst.GreaterThan(bound) {
			return true
		}
		return ctx.emit(yield, "minimum", fmt.Sprintf("%s is not greater than the exclusive minimum of %s", inst, bound))
	}
	if inst.GreaterThanOrEqual(bound) {
		return true
	}
	return ctx.emit(yield, "minimum", fmt.Sprintf("%s is less than the minimum of %s", inst, bound))
}

func validateMaximumDraft4(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool {
	inst, bound, ok := numericPair(instance, schema)
	if !ok {
		return true
	}
	if exclusiveFlag(parent, "exclusiveMaximum") {
		if inst.LessThan(bound) {
			return true
		}
		return ctx.emit(yield, "maximum", fmt.Sprintf("%s is not less than the exclusive maximum of %s", inst, bound))
	}
	if inst.LessThanOrEqual(bound) {
		return true
	}
	return ctx.emit(yield, "maximum", fmt.Sprintf("%s is greater than the maximum of %s", inst, bound))
}

func exclusiveFlag(parent *jsontree.Object, key string) bool {
	raw, ok := parent.Get(key)
	if !ok {
		return false
	}
	b, ok := raw.(bool)
	return ok && b
}

func validateMultipleOf(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	inst, divisor, ok := numericPair(instance, schema)
	if !ok || divisor.IsZero() {
		return true
	}
	// Decimal arithmetic is exact here: 0.3 is a multiple of 0.1 even though
	// their float64 quotient is not an integer.
	if inst.Mod(divisor).IsZero() {
		return true
	}
	return ctx.emit(yield, "multipleOf", fmt.Sprintf("%s is not a multiple of %s", inst, divisor))
}
