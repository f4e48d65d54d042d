// Package engine compiles schemas into Validators and orchestrates
// validation runs.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"time"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/cache"
	"github.com/goschema/validator/jsontree"
	"github.com/goschema/validator/keyword"
	"github.com/goschema/validator/resolver"
	"github.com/goschema/validator/specs"
)

// Validator is a compiled schema. It is immutable after New and safe for
// concurrent use; every validation run derives its own traversal state.
type Validator struct {
	draft    sv.Draft
	schema   any
	options  *sv.Options
	resolver *resolver.Resolver
	metrics  *sv.Metrics
	regexps  *cache.Cache[string, *regexp.Regexp]
}

// New compiles a schema. The draft is taken from the options when pinned,
// otherwise read from the schema's $schema keyword, otherwise defaulted.
// Schema defects are reported up front as a SchemaError: metaschema
// violations when self-validation is enabled, and statically unresolvable
// references always.
func New(schema any, opts ...sv.Option) (*Validator, error) {
	options := sv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	draft := options.Draft
	if draft == 0 {
		if d, ok := sv.DraftFromSchema(schema); ok {
			draft = d
		} else {
			draft = sv.DefaultDraft
		}
	}
	if !draft.IsValid() {
		return nil, &sv.SchemaError{Cause: fmt.Errorf("unsupported draft %d", int(draft))}
	}

	switch schema.(type) {
	case bool:
		if draft == sv.Draft4 {
			return nil, &sv.SchemaError{Cause: fmt.Errorf("boolean schemas are not allowed in %s", draft)}
		}
	case *jsontree.Object:
	default:
		return nil, &sv.SchemaError{Cause: fmt.Errorf("schema must be an object or a boolean")}
	}

	res, err := resolver.New(draft, schema)
	if err != nil {
		return nil, &sv.SchemaError{Cause: err}
	}

	v := &Validator{
		draft:    draft,
		schema:   schema,
		options:  options,
		resolver: res,
		metrics:  sv.NewMetrics(),
		regexps:  cache.New[string, *regexp.Regexp](options.RegexCacheSize),
	}

	if options.ValidateSchema {
		if err := v.checkSchema(); err != nil {
			return nil, err
		}
	}
	if err := v.checkRefs(schema, nil, make(map[string]bool)); err != nil {
		return nil, &sv.SchemaError{Cause: err}
	}
	return v, nil
}

// checkSchema validates the schema document against its draft's metaschema.
func (v *Validator) checkSchema() error {
	meta, err := specs.Metaschema(v.draft)
	if err != nil {
		return &sv.SchemaError{Cause: err}
	}
	metaResolver, err := resolver.New(v.draft, meta)
	if err != nil {
		return &sv.SchemaError{Cause: err}
	}
	ctx := keyword.NewContext(v.draft, meta, metaResolver)
	ctx.Regexps = v.regexps

	var errs []sv.Error
	keyword.Validate(ctx, v.schema, meta, func(e sv.Error) bool {
		errs = append(errs, e)
		return true
	})
	if len(errs) > 0 {
		return &sv.SchemaError{Errs: errs}
	}
	return nil
}

// checkRefs walks the schema positions of the document and resolves every
// statically reachable $ref, so a dangling reference fails compilation
// instead of the first validation that happens to touch it. Two failure
// classes stay out of scope: refs to unregistered external documents, which
// may be registered after compilation and are reported at validation time
// if they never are, and refs buried in data-valued keywords, which are
// plain data, not references. Cycles are legal here; the visited set only
// keeps the walk finite.
func (v *Validator) checkRefs(schema any, scope []string, visited map[string]bool) error {
	obj, ok := schema.(*jsontree.Object)
	if !ok {
		return nil
	}
	if id, ok := resolver.IDOf(v.draft, obj); ok {
		scope = append(scope, id)
	}
	if raw, ok := obj.Get("$ref"); ok {
		ref, ok := raw.(string)
		if !ok {
			return fmt.Errorf("$ref must be a string")
		}
		res, err := v.resolver.Resolve(ref, scope)
		if err != nil {
			var resErr *resolver.ResolutionError
			if errors.As(err, &resErr) && resErr.Unregistered {
				return nil
			}
			return err
		}
		key := res.URL + "#" + res.Fragment
		if visited[key] {
			return nil
		}
		visited[key] = true
		return v.checkRefs(res.Schema, append(scope, res.URL), visited)
	}
	for name, value := range obj.Items() {
		if err := v.checkKeywordRefs(name, value, scope, visited); err != nil {
			return err
		}
	}
	return nil
}

// checkKeywordRefs recurses into the schema-valued parts of one keyword.
// Data-valued keywords are skipped outright; an object under enum, const,
// default or examples may carry a "$ref" key without referencing anything.
func (v *Validator) checkKeywordRefs(name string, value any, scope []string, visited map[string]bool) error {
	switch name {
	case "properties", "patternProperties", "definitions":
		m, ok := value.(*jsontree.Object)
		if !ok {
			return nil
		}
		for _, sub := range m.Items() {
			if err := v.checkRefs(sub, scope, visited); err != nil {
				return err
			}
		}
		return nil
	case "dependencies":
		m, ok := value.(*jsontree.Object)
		if !ok {
			return nil
		}
		for _, dep := range m.Items() {
			// The property-dependency form lists sibling keys, not schemas.
			if _, isList := dep.([]any); isList {
				continue
			}
			if err := v.checkRefs(dep, scope, visited); err != nil {
				return err
			}
		}
		return nil
	case "items", "allOf", "anyOf", "oneOf":
		if list, ok := value.([]any); ok {
			for _, sub := range list {
				if err := v.checkRefs(sub, scope, visited); err != nil {
					return err
				}
			}
			return nil
		}
		return v.checkRefs(value, scope, visited)
	case "not", "if", "then", "else", "contains", "propertyNames",
		"additionalProperties", "additionalItems":
		return v.checkRefs(value, scope, visited)
	default:
		return nil
	}
}

func (v *Validator) newContext() *keyword.Context {
	ctx := keyword.NewContext(v.draft, v.schema, v.resolver)
	ctx.Formats = v.options.Formats
	ctx.Metrics = v.metrics
	ctx.Regexps = v.regexps
	return ctx
}

// Validate lazily validates an instance. The returned sequence is
// restartable: each range over it runs a fresh traversal, and stopping
// early stops the traversal with it.
func (v *Validator) Validate(instance any) iter.Seq[sv.Error] {
	return func(yield func(sv.Error) bool) {
		keyword.Validate(v.newContext(), instance, v.schema, keyword.Yield(yield))
	}
}

// ValidateResult validates an instance and collects the outcome into a
// pooled Result, honoring the MaxErrors option. Release the Result when
// done with it.
func (v *Validator) ValidateResult(instance any) *sv.Result {
	start := time.Now()
	result := sv.CollectResult(v.Validate(instance), v.options.MaxErrors)
	v.metrics.RecordValidation(time.Since(start), result.Valid)
	return result
}

// IsValid reports whether the instance validates, stopping at the first
// error.
func (v *Validator) IsValid(instance any) bool {
	start := time.Now()
	valid := keyword.IsValid(v.newContext(), instance, v.schema)
	v.metrics.RecordValidation(time.Since(start), valid)
	return valid
}

// ValidateBytes decodes a JSON instance and validates it. A decode failure
// is returned as an error, not a validation failure.
func (v *Validator) ValidateBytes(data []byte) (*sv.Result, error) {
	instance, err := jsontree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON instance: %w", err)
	}
	return v.ValidateResult(instance), nil
}

// RegisterDocument makes an external schema document available to $ref
// resolution under the given URI. Call before validating.
func (v *Validator) RegisterDocument(uri string, doc any) {
	v.resolver.Register(uri, doc)
}

// Draft returns the draft the validator was compiled for.
func (v *Validator) Draft() sv.Draft { return v.draft }

// Options returns the validator's configuration.
func (v *Validator) Options() *sv.Options { return v.options }

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *sv.Metrics { return v.metrics }
