package keyword

import (
	"fmt"
	"unicode/utf8"

	"github.com/goschema/validator/jsontree"
)

// String lengths are measured in Unicode code points, not bytes.

func validateMinLength(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	s, ok := instance.(string)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || utf8.RuneCountInString(s) >= bound {
		return true
	}
	return ctx.emit(yield, "minLength", fmt.Sprintf("string is shorter than %d characters", bound))
}

func validateMaxLength(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	s, ok := instance.(string)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || utf8.RuneCountInString(s) <= bound {
		return true
	}
	return ctx.emit(yield, "maxLength", fmt.Sprintf("string is longer than %d characters", bound))
}

func validatePattern(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	s, ok := instance.(string)
	if !ok {
		return true
	}
	pattern, ok := schema.(string)
	if !ok {
		return true
	}
	re, err := ctx.compileRegex(pattern)
	if err != nil {
		return ctx.emit(yield, "pattern", fmt.Sprintf("invalid regular expression %q", pattern))
	}
	// Unanchored: the pattern may match any substring.
	if re.MatchString(s) {
		return true
	}
	return ctx.emit(yield, "pattern", fmt.Sprintf("%q does not match pattern %q", s, pattern))
}

// intBound reads a numeric keyword value as a non-negative count.
func intBound(schema any) (int, bool) {
	d, ok := jsontree.Num(schema)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}
