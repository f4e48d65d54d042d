package schemavalidator

import "strings"

// Draft identifies a version of the JSON Schema specification.
type Draft int

// Supported drafts. The zero value means "not selected"; callers that pass it
// get auto-detection from the schema's $schema keyword, falling back to Draft7.
const (
	// Draft4 is JSON Schema draft-04.
	Draft4 Draft = 4
	// Draft6 is JSON Schema draft-06.
	Draft6 Draft = 6
	// Draft7 is JSON Schema draft-07.
	Draft7 Draft = 7
)

// DefaultDraft is used when no draft is selected and none can be detected.
const DefaultDraft = Draft7

// metaschema URLs, without the trailing "#" that schemas commonly carry.
const (
	draft4URL = "http://json-schema.org/draft-04/schema"
	draft6URL = "http://json-schema.org/draft-06/schema"
	draft7URL = "http://json-schema.org/draft-07/schema"
)

// String returns the canonical draft name.
func (d Draft) String() string {
	switch d {
	case Draft4:
		return "draft-04"
	case Draft6:
		return "draft-06"
	case Draft7:
		return "draft-07"
	default:
		return "unknown"
	}
}

// IsValid returns true if this is a supported draft.
func (d Draft) IsValid() bool {
	switch d {
	case Draft4, Draft6, Draft7:
		return true
	default:
		return false
	}
}

// Number returns the draft number (4, 6 or 7).
func (d Draft) Number() int {
	return int(d)
}

// MetaschemaURL returns the canonical URL of the draft's metaschema.
func (d Draft) MetaschemaURL() string {
	switch d {
	case Draft4:
		return draft4URL
	case Draft6:
		return draft6URL
	case Draft7:
		return draft7URL
	default:
		return ""
	}
}

// DraftFromURL maps a metaschema URL to its Draft. A trailing "#" fragment is
// tolerated since published schemas use both spellings. Returns false for
// unrecognized URLs.
func DraftFromURL(url string) (Draft, bool) {
	url = strings.TrimSuffix(url, "#")
	switch url {
	case draft4URL:
		return Draft4, true
	case draft6URL:
		return Draft6, true
	case draft7URL:
		return Draft7, true
	default:
		return 0, false
	}
}

// DraftFromSchema inspects the schema's $schema keyword and returns the
// declared draft. Returns false if the keyword is absent, not a string, or
// names an unsupported draft; by policy that is not an error and the caller
// keeps its current draft.
func DraftFromSchema(schema any) (Draft, bool) {
	obj, ok := schemaObject(schema)
	if !ok {
		return 0, false
	}
	raw, ok := obj.Get("$schema")
	if !ok {
		return 0, false
	}
	url, ok := raw.(string)
	if !ok {
		return 0, false
	}
	return DraftFromURL(url)
}
