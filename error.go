package schemavalidator

import (
	"strings"

	"github.com/goschema/validator/jsontree"
)

// Error describes one validation failure. It is plain data: producing an
// Error never aborts traversal of sibling branches.
type Error struct {
	// Keyword is the schema keyword that produced the failure.
	Keyword string `json:"keyword"`

	// Message is the human-readable description of the failure.
	Message string `json:"message"`

	// InstancePath locates the failing node in the instance document.
	InstancePath Path `json:"instancePath"`

	// SchemaPath locates the node in the schema document that produced the
	// failure, including the keyword name.
	SchemaPath Path `json:"schemaPath"`

	// Cyclic is set when the failure is a cyclic $ref guard trip rather
	// than a keyword mismatch.
	Cyclic bool `json:"cyclic,omitempty"`
}

// String renders the error with both locations.
func (e Error) String() string {
	var b strings.Builder
	b.WriteString("At ")
	b.WriteString(e.InstancePath.String())
	b.WriteString(" with schema at ")
	b.WriteString(e.SchemaPath.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// SchemaError is a setup failure: the schema itself was rejected before any
// instance was validated, either because it does not validate against its
// metaschema or because a reference inside it cannot be resolved.
type SchemaError struct {
	// Errs holds the metaschema violations, when self-validation failed.
	Errs []Error

	// Cause holds the underlying error for non-validation setup failures.
	Cause error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Cause != nil {
		return "invalid schema: " + e.Cause.Error()
	}
	if len(e.Errs) == 0 {
		return "invalid schema"
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.String())
	}
	return "schema does not validate against its metaschema: " + strings.Join(msgs, "; ")
}

// Unwrap returns the underlying cause, if any.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// schemaObject returns the schema as an object, or false for boolean and
// malformed schemas.
func schemaObject(schema any) (*jsontree.Object, bool) {
	obj, ok := schema.(*jsontree.Object)
	return obj, ok
}
