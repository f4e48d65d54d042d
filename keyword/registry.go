package keyword

import (
	sv "github.com/goschema/validator"
)

// table maps keyword names to validators for one draft.
type table map[string]Func

// Keyword tables per draft. "then" and "else" are deliberately absent: they
// are applied by the "if" validator, not dispatched on their own. "$ref" is
// dispatched ahead of the table by Validate.
var (
	draft4Table table
	draft6Table table
	draft7Table table
)

func init() {
	draft4Table = table{
		"additionalItems":      validateAdditionalItems,
		"additionalProperties": validateAdditionalProperties,
		"allOf":                validateAllOf,
		"anyOf":                validateAnyOf,
		"dependencies":         validateDependencies,
		"enum":                 validateEnum,
		"format":               validateFormat,
		"items":                validateItems,
		"maxItems":             validateMaxItems,
		"maxLength":            validateMaxLength,
		"maxProperties":        validateMaxProperties,
		"maximum":              validateMaximumDraft4,
		"minItems":             validateMinItems,
		"minLength":            validateMinLength,
		"minProperties":        validateMinProperties,
		"minimum":              validateMinimumDraft4,
		"multipleOf":           validateMultipleOf,
		"not":                  validateNot,
		"oneOf":                validateOneOf,
		"pattern":              validatePattern,
		"patternProperties":    validatePatternProperties,
		"properties":           validateProperties,
		"required":             validateRequired,
		"type":                 validateType,
		"uniqueItems":          validateUniqueItems,
	}

	draft6Table = merge(draft4Table, table{
		"const":            validateConst,
		"contains":         validateContains,
		"exclusiveMaximum": validateExclusiveMaximum,
		"exclusiveMinimum": validateExclusiveMinimum,
		"maximum":          validateMaximum,
		"minimum":          validateMinimum,
		"propertyNames":    validatePropertyNames,
	})

	draft7Table = merge(draft6Table, table{
		"if": validateIf,
	})
}

func merge(base, overlay table) table {
	out := make(table, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Lookup returns the validator a draft assigns to a keyword.
// Unrecognized keywords return false and are ignored by the engine.
func Lookup(d sv.Draft, name string) (Func, bool) {
	var t table
	switch d {
	case sv.Draft4:
		t = draft4Table
	case sv.Draft6:
		t = draft6Table
	default:
		t = draft7Table
	}
	fn, ok := t[name]
	return fn, ok
}

// BooleanSchemasAllowed reports whether a draft accepts true/false as a
// schema in any position. Draft4 does not.
func BooleanSchemasAllowed(d sv.Draft) bool {
	return d != sv.Draft4
}

// Format checker tables per draft. Formats a draft does not know are
// annotative and never fail.
var (
	draft4Formats = map[string]FormatChecker{
		"date-time": formatDateTime,
		"email":     formatEmail,
		"hostname":  formatHostname,
		"ipv4":      formatIPv4,
		"ipv6":      formatIPv6,
		"regex":     formatRegex,
		"uri":       formatURI,
	}

	draft6Formats = mergeFormats(draft4Formats, map[string]FormatChecker{
		"date":          formatDate,
		"json-pointer":  formatJSONPointer,
		"time":          formatTime,
		"uri-reference": formatURIReference,
		"uri-template":  formatURITemplate,
	})

	draft7Formats = mergeFormats(draft6Formats, map[string]FormatChecker{
		"idn-email":     formatEmail,
		"iri":           formatURI,
		"iri-reference": formatURIReference,
	})
)

func mergeFormats(base, overlay map[string]FormatChecker) map[string]FormatChecker {
	out := make(map[string]FormatChecker, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// LookupFormat returns the checker a draft assigns to a format name.
func LookupFormat(d sv.Draft, name string) (FormatChecker, bool) {
	var t map[string]FormatChecker
	switch d {
	case sv.Draft4:
		t = draft4Formats
	case sv.Draft6:
		t = draft6Formats
	default:
		t = draft7Formats
	}
	fn, ok := t[name]
	return fn, ok
}
