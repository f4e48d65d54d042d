package engine

import (
	"errors"
	"reflect"
	"testing"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	v, err := jsontree.Decode([]byte(src))
	if err != nil {
		t.Fatalf("decoding %s: %v", src, err)
	}
	return v
}

func compile(t *testing.T, schemaSrc string, opts ...sv.Option) *Validator {
	t.Helper()
	v, err := New(decode(t, schemaSrc), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestDraftSelection(t *testing.T) {
	// $schema wins over the default.
	v := compile(t, `{"$schema": "http://json-schema.org/draft-04/schema#"}`)
	if v.Draft() != sv.Draft4 {
		t.Errorf("draft = %v, want Draft4", v.Draft())
	}

	// A pinned draft wins over $schema.
	v = compile(t, `{"$schema": "http://json-schema.org/draft-04/schema#"}`, sv.WithDraft(sv.Draft7))
	if v.Draft() != sv.Draft7 {
		t.Errorf("draft = %v, want pinned Draft7", v.Draft())
	}

	// No $schema falls back to the default.
	v = compile(t, `{"type": "string"}`)
	if v.Draft() != sv.DefaultDraft {
		t.Errorf("draft = %v, want default", v.Draft())
	}

	// Unrecognized $schema keeps the default rather than failing.
	v = compile(t, `{"$schema": "https://example.com/custom-meta"}`)
	if v.Draft() != sv.DefaultDraft {
		t.Errorf("draft = %v, want default for unknown $schema", v.Draft())
	}
}

func TestNewRejectsBadSchemas(t *testing.T) {
	var schemaErr *sv.SchemaError

	_, err := New(decode(t, `"just a string"`))
	if !errors.As(err, &schemaErr) {
		t.Errorf("non-object schema: got %v, want SchemaError", err)
	}

	_, err = New(decode(t, `true`), sv.WithDraft(sv.Draft4))
	if !errors.As(err, &schemaErr) {
		t.Errorf("boolean schema under Draft4: got %v, want SchemaError", err)
	}

	_, err = New(decode(t, `{"type": "string"}`), sv.WithDraft(sv.Draft(99)))
	if !errors.As(err, &schemaErr) {
		t.Errorf("unsupported draft: got %v, want SchemaError", err)
	}
}

func TestNewRejectsDanglingRef(t *testing.T) {
	srcs := []string{
		`{"$ref": "#/definitions/missing"}`,
		`{"allOf": [{"$ref": "#/definitions/missing"}]}`,
		`{"properties": {"a": {"not": {"$ref": "#/nope"}}}}`,
		`{"items": [{"$ref": 42}]}`,
	}
	for _, src := range srcs {
		var schemaErr *sv.SchemaError
		if _, err := New(decode(t, src)); !errors.As(err, &schemaErr) {
			t.Errorf("%s: got %v, want SchemaError", src, err)
		}
	}
}

func TestNewDefersUnregisteredExternalRefs(t *testing.T) {
	// The target may be registered after compilation, so an unregistered
	// external document is not a compile-time defect.
	v := compile(t, `{"properties": {"a": {"$ref": "https://example.com/unregistered"}}}`)

	// Left unregistered, the ref fails the branch that touches it.
	var errs []sv.Error
	for e := range v.Validate(decode(t, `{"a": 1}`)) {
		errs = append(errs, e)
	}
	if len(errs) != 1 || errs[0].Keyword != "$ref" {
		t.Errorf("got %v, want one $ref error at validation time", errs)
	}

	if !v.IsValid(decode(t, `{"b": 1}`)) {
		t.Error("branches not touching the ref should validate")
	}
}

func TestNewSkipsRefsInDataKeywords(t *testing.T) {
	// A "$ref" key under enum, const or default is data, not a reference.
	member := `{"$ref": "#/definitions/missing"}`
	v := compile(t, `{"enum": [`+member+`, 7]}`)
	if !v.IsValid(decode(t, member)) {
		t.Error("enum member carrying a $ref key should match as plain data")
	}
	compile(t, `{"const": `+member+`}`)
	compile(t, `{"default": `+member+`}`)

	// A schema under a property literally named "enum" is still a schema.
	var schemaErr *sv.SchemaError
	_, err := New(decode(t, `{"properties": {"enum": {"$ref": "#/missing"}}}`))
	if !errors.As(err, &schemaErr) {
		t.Errorf("got %v, want SchemaError for a dangling ref under properties", err)
	}
}

func TestNewAcceptsCyclicRefs(t *testing.T) {
	// Static cycles compile fine; only validating through one fails.
	v := compile(t, `{"properties": {"next": {"$ref": "#"}}}`)
	if !v.IsValid(decode(t, `{"other": 1}`)) {
		t.Error("instance not touching the cycle should validate")
	}
}

func TestSchemaSelfValidation(t *testing.T) {
	// exclusiveMinimum must be a boolean under Draft4's metaschema.
	_, err := New(
		decode(t, `{"minimum": 5, "exclusiveMinimum": 5}`),
		sv.WithDraft(sv.Draft4), sv.WithValidateSchema(true),
	)
	var schemaErr *sv.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if len(schemaErr.Errs) == 0 {
		t.Error("metaschema violation should carry validation errors")
	}

	// The same schema is fine under Draft7.
	compile(t, `{"minimum": 5, "exclusiveMinimum": 5}`,
		sv.WithDraft(sv.Draft7), sv.WithValidateSchema(true))

	// Without self-validation the malformed keyword is just skipped.
	compile(t, `{"minimum": 5, "exclusiveMinimum": 5}`, sv.WithDraft(sv.Draft4))
}

func TestValidateSequenceIsRestartable(t *testing.T) {
	v := compile(t, `{"items": {"type": "string"}}`)
	instance := decode(t, `[1, "ok", 3, 4]`)
	seq := v.Validate(instance)

	collect := func() []sv.Error {
		var errs []sv.Error
		for e := range seq {
			errs = append(errs, e)
		}
		return errs
	}
	first := collect()
	second := collect()
	if len(first) != 3 {
		t.Fatalf("got %d errors, want 3", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-ranging the sequence should reproduce it exactly")
	}
}

func TestValidateEarlyBreak(t *testing.T) {
	v := compile(t, `{"items": {"type": "string"}}`)
	instance := decode(t, `[1, 2, 3, 4, 5]`)

	n := 0
	for range v.Validate(instance) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("consumed %d errors after break, want 1", n)
	}
}

func TestValidateResultMaxErrors(t *testing.T) {
	v := compile(t, `{"items": {"type": "string"}}`, sv.WithMaxErrors(2))
	res := v.ValidateResult(decode(t, `[1, 2, 3, 4, 5]`))
	defer res.Release()

	if res.Valid {
		t.Error("result should be invalid")
	}
	if len(res.Errors) != 2 {
		t.Errorf("got %d errors, want MaxErrors cap of 2", len(res.Errors))
	}
}

func TestIsValid(t *testing.T) {
	v := compile(t, `{"type": "object", "required": ["a"]}`)
	if !v.IsValid(decode(t, `{"a": 1}`)) {
		t.Error("conforming instance")
	}
	if v.IsValid(decode(t, `{}`)) {
		t.Error("missing required key")
	}
}

func TestValidateBytes(t *testing.T) {
	v := compile(t, `{"type": "number"}`)

	res, err := v.ValidateBytes([]byte(`3.5`))
	if err != nil {
		t.Fatalf("ValidateBytes: %v", err)
	}
	if !res.Valid {
		t.Error("3.5 should validate")
	}
	res.Release()

	res, err = v.ValidateBytes([]byte(`{"unterminated`))
	if err == nil {
		res.Release()
		t.Error("malformed JSON should be an error, not a validation failure")
	}
}

func TestRegisterDocument(t *testing.T) {
	v := compile(t, `{"properties": {"a": {"$ref": "https://example.com/str.json"}}}`)
	v.RegisterDocument("https://example.com/str.json", decode(t, `{"type": "string"}`))

	if !v.IsValid(decode(t, `{"a": "x"}`)) {
		t.Error("external ref should resolve after registration")
	}
	if v.IsValid(decode(t, `{"a": 1}`)) {
		t.Error("external ref constraint should apply")
	}
}

func TestFormatsOption(t *testing.T) {
	schema := `{"format": "ipv4"}`
	strict := compile(t, schema)
	lax := compile(t, schema, sv.WithFormats(false))

	bad := decode(t, `"not an ip"`)
	if strict.IsValid(bad) {
		t.Error("formats on: bad ipv4 should fail")
	}
	if !lax.IsValid(bad) {
		t.Error("formats off: format keyword should be inert")
	}
}

func TestMetricsRecorded(t *testing.T) {
	v := compile(t, `{"type": "string"}`)
	v.IsValid(decode(t, `"ok"`))
	res := v.ValidateResult(decode(t, `3`))
	res.Release()

	total, valid := v.Metrics().Validations()
	if total != 2 {
		t.Errorf("validations = %d, want 2", total)
	}
	if valid != 1 {
		t.Errorf("valid = %d, want 1", valid)
	}
	if got := v.Metrics().ErrorsTotal(); got == 0 {
		t.Error("failed run should record keyword errors")
	}
}
