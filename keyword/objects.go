package keyword

import (
	"fmt"
	"regexp"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

func validateProperties(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	props, ok := schema.(*jsontree.Object)
	if !ok {
		return true
	}
	for name, subschema := range props.Items() {
		child, present := obj.Get(name)
		if !present {
			continue
		}
		seg := []sv.Segment{sv.Key(name)}
		if !descend(ctx.at(seg, seg), child, subschema, yield) {
			return false
		}
	}
	return true
}

func validatePatternProperties(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	patterns, ok := schema.(*jsontree.Object)
	if !ok {
		return true
	}
	for pattern, subschema := range patterns.Items() {
		re, err := ctx.compileRegex(pattern)
		if err != nil {
			if !ctx.emit(yield, "patternProperties", fmt.Sprintf("invalid regular expression %q", pattern)) {
				return false
			}
			continue
		}
		for name, child := range obj.Items() {
			if !re.MatchString(name) {
				continue
			}
			next := ctx.at([]sv.Segment{sv.Key(name)}, []sv.Segment{sv.Key(pattern)})
			if !descend(next, child, subschema, yield) {
				return false
			}
		}
	}
	return true
}

// unmatchedProperties returns the instance keys covered by neither the
// sibling "properties" nor any sibling "patternProperties" pattern.
func unmatchedProperties(ctx *Context, obj, parent *jsontree.Object) []string {
	var props *jsontree.Object
	if raw, ok := parent.Get("properties"); ok {
		props, _ = raw.(*jsontree.Object)
	}
	var regexes []*regexp.Regexp
	if raw, ok := parent.Get("patternProperties"); ok {
		if patterns, ok := raw.(*jsontree.Object); ok {
			for _, pattern := range patterns.Keys() {
				if re, err := ctx.compileRegex(pattern); err == nil {
					regexes = append(regexes, re)
				}
			}
		}
	}

	var extras []string
outer:
	for _, name := range obj.Keys() {
		if props.Has(name) {
			continue
		}
		for _, re := range regexes {
			if re.MatchString(name) {
				continue outer
			}
		}
		extras = append(extras, name)
	}
	return extras
}

func validateAdditionalProperties(ctx *Context, instance, schema any, parent *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	extras := unmatchedProperties(ctx, obj, parent)

	switch s := schema.(type) {
	case bool:
		if s {
			return true
		}
		for _, name := range extras {
			next := ctx.at([]sv.Segment{sv.Key(name)}, nil)
			if !next.emit(yield, "additionalProperties", fmt.Sprintf("additional property %q is not allowed", name)) {
				return false
			}
		}
		return true

	case *jsontree.Object:
		for _, name := range extras {
			child, _ := obj.Get(name)
			next := ctx.at([]sv.Segment{sv.Key(name)}, nil)
			if !descend(next, child, s, yield) {
				return false
			}
		}
		return true

	default:
		return true
	}
}

func validateRequired(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	names, ok := schema.([]any)
	if !ok {
		return true
	}
	for _, raw := range names {
		name, ok := raw.(string)
		if !ok {
			continue
		}
		if obj.Has(name) {
			continue
		}
		if !ctx.emit(yield, "required", fmt.Sprintf("required property %q is missing", name)) {
			return false
		}
	}
	return true
}

func validateMinProperties(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || obj.Len() >= bound {
		return true
	}
	return ctx.emit(yield, "minProperties", fmt.Sprintf("object has fewer than %d properties", bound))
}

func validateMaxProperties(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	bound, ok := intBound(schema)
	if !ok || obj.Len() <= bound {
		return true
	}
	return ctx.emit(yield, "maxProperties", fmt.Sprintf("object has more than %d properties", bound))
}

func validateDependencies(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	deps, ok := schema.(*jsontree.Object)
	if !ok {
		return true
	}
	for name, dep := range deps.Items() {
		if !obj.Has(name) {
			continue
		}
		switch d := dep.(type) {
		case []any:
			// Property dependency: the listed sibling keys must be present.
			for _, raw := range d {
				key, ok := raw.(string)
				if !ok || obj.Has(key) {
					continue
				}
				next := ctx.at(nil, []sv.Segment{sv.Key(name)})
				if !next.emit(yield, "dependencies", fmt.Sprintf("property %q requires %q to be present", name, key)) {
					return false
				}
			}
		default:
			// Schema dependency: the whole instance must validate.
			next := ctx.at(nil, []sv.Segment{sv.Key(name)})
			if !descend(next, instance, dep, yield) {
				return false
			}
		}
	}
	return true
}

func validatePropertyNames(ctx *Context, instance, schema any, _ *jsontree.Object, yield Yield) bool {
	obj, ok := instance.(*jsontree.Object)
	if !ok {
		return true
	}
	for _, name := range obj.Keys() {
		next := ctx.at([]sv.Segment{sv.Key(name)}, nil)
		if !descend(next, name, schema, yield) {
			return false
		}
	}
	return true
}
