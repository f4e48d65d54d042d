// Package schemavalidator holds the shared types of the JSON Schema
// validator: drafts, paths, errors, results, options and metrics.
//
// Compile a schema with the engine package and validate instances against
// it:
//
//	schema, err := loader.ParseJSON(schemaBytes)
//	if err != nil { ... }
//
//	v, err := engine.New(schema, schemavalidator.WithDraft(schemavalidator.Draft7))
//	if err != nil { ... }
//
//	for e := range v.Validate(instance) {
//	    fmt.Println(e)
//	}
//
// Validate returns a lazy sequence: errors are produced as the traversal
// finds them, and breaking out of the range stops the traversal. Use
// ValidateResult to collect into a Result, or IsValid for a yes/no answer
// that stops at the first error.
//
// Supported drafts are 4, 6 and 7. The draft is read from the schema's
// $schema keyword unless pinned with WithDraft.
package schemavalidator
