// Package resolver resolves $ref strings to schema nodes.
//
// A Resolver is built once per root schema document. It indexes every
// subschema that declares an id, knows the embedded metaschemas by URL,
// and accepts pre-registered external documents. It never performs network
// I/O: an unregistered external URI is a resolution failure.
package resolver

import (
	"fmt"
	"net/url"
	"strconv"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
	"github.com/goschema/validator/pool"
	"github.com/goschema/validator/specs"
)

// documentBase anchors pointer-only refs when the root schema has no id.
const documentBase = "document:///"

// ResolutionError reports a $ref that could not be resolved. It is a setup
// failure, not a validation error.
type ResolutionError struct {
	Ref    string
	Reason string

	// Unregistered marks a reference to an external document that is not
	// registered. Unlike the other failures it may heal later, once the
	// document is added with Register.
	Unregistered bool
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve reference %q: %s", e.Ref, e.Reason)
}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	// URL is the canonical absolute URL of the target, fragment included.
	// Cycle detection keys on it.
	URL string

	// Fragment is the decoded fragment part of the target URL, empty for
	// whole-document refs.
	Fragment string

	// Path locates the target within its document, one segment per pointer
	// token, with array steps as index segments. Nil for non-pointer
	// fragments, which root the path at the resolved document.
	Path sv.Path

	// Schema is the target schema node.
	Schema any
}

// Resolver resolves references against one root schema document.
type Resolver struct {
	draft sv.Draft
	root  any
	base  *url.URL
	ids   map[string]any
	docs  map[string]any
}

// New builds a Resolver for a root schema, indexing all embedded ids.
func New(draft sv.Draft, root any) (*Resolver, error) {
	baseStr := documentBase
	if id, ok := IDOf(draft, root); ok {
		baseStr = id
	}
	base, err := url.Parse(baseStr)
	if err != nil {
		return nil, &ResolutionError{Ref: baseStr, Reason: "invalid base URL: " + err.Error()}
	}

	r := &Resolver{
		draft: draft,
		root:  root,
		base:  base,
		ids:   make(map[string]any),
		docs:  make(map[string]any),
	}
	r.indexIDs(root, base)
	return r, nil
}

// Register makes an external document available under the given URI.
func (r *Resolver) Register(uri string, doc any) {
	r.docs[uri] = doc
}

// IDOf returns the id declared by a schema node. Draft4 reads "id", later
// drafts read "$id"; Draft4 schemas using "$id" are tolerated.
func IDOf(draft sv.Draft, schema any) (string, bool) {
	obj, ok := schema.(*jsontree.Object)
	if !ok {
		return "", false
	}
	keys := []string{"$id"}
	if draft == sv.Draft4 {
		keys = []string{"id", "$id"}
	}
	for _, key := range keys {
		if raw, ok := obj.Get(key); ok {
			if s, ok := raw.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// indexIDs walks the document and maps every id-bearing subschema to its
// absolute URL, joined against the enclosing base.
func (r *Resolver) indexIDs(node any, base *url.URL) {
	switch v := node.(type) {
	case *jsontree.Object:
		if id, ok := IDOf(r.draft, v); ok {
			if joined, err := base.Parse(id); err == nil {
				r.ids[joined.String()] = v
				base = joined
			}
		}
		for _, child := range v.Items() {
			r.indexIDs(child, base)
		}
	case []any:
		for _, child := range v {
			r.indexIDs(child, base)
		}
	}
}

// Resolve resolves ref against the scope chain. scopeIDs holds the id values
// of the enclosing schema scopes, outermost first, so relative refs join the
// way RFC 3986 prescribes.
func (r *Resolver) Resolve(ref string, scopeIDs []string) (Resolved, error) {
	target := r.base
	for _, id := range scopeIDs {
		joined, err := target.Parse(id)
		if err != nil {
			return Resolved{}, &ResolutionError{Ref: ref, Reason: "invalid scope id " + strconv.Quote(id)}
		}
		target = joined
	}
	target, err := target.Parse(ref)
	if err != nil {
		return Resolved{}, &ResolutionError{Ref: ref, Reason: "malformed reference: " + err.Error()}
	}

	canonical := target.String()

	fragment := target.Fragment

	// An id may address a subschema directly, fragment included.
	if schema, ok := r.ids[canonical]; ok {
		return Resolved{URL: canonical, Fragment: fragment, Schema: schema}, nil
	}

	resource := *target
	resource.Fragment = ""
	resource.RawFragment = ""

	doc, err := r.resolveResource(ref, resource.String())
	if err != nil {
		return Resolved{}, err
	}

	schema, path, err := lookupPointer(doc, fragment)
	if err != nil {
		return Resolved{}, &ResolutionError{Ref: ref, Reason: err.Error()}
	}
	return Resolved{URL: canonical, Fragment: fragment, Path: path, Schema: schema}, nil
}

// resolveResource maps a fragment-less URL to a document: the root document,
// an embedded metaschema, an indexed id, or a registered external document.
func (r *Resolver) resolveResource(ref, urlStr string) (any, error) {
	if urlStr == documentBase || urlStr == r.base.String() {
		return r.root, nil
	}
	if meta, ok := specs.MetaschemaForURL(urlStr); ok {
		return meta, nil
	}
	if doc, ok := r.ids[urlStr]; ok {
		return doc, nil
	}
	if doc, ok := r.docs[urlStr]; ok {
		return doc, nil
	}
	return nil, &ResolutionError{
		Ref:          ref,
		Reason:       "unknown document " + strconv.Quote(urlStr),
		Unregistered: true,
	}
}

// lookupPointer walks a JSON Pointer fragment within a document, recording
// the path taken so array steps come back as index segments.
func lookupPointer(doc any, pointer string) (any, sv.Path, error) {
	if pointer == "" {
		return doc, nil, nil
	}
	if pointer[0] != '/' {
		return nil, nil, fmt.Errorf("malformed JSON pointer %q", pointer)
	}
	node := doc
	tokens := pool.SplitPointer(pointer)
	path := make(sv.Path, 0, len(tokens))
	for _, token := range tokens {
		switch v := node.(type) {
		case *jsontree.Object:
			child, ok := v.Get(token)
			if !ok {
				return nil, nil, fmt.Errorf("pointer target %q not found", token)
			}
			node = child
			path = append(path, sv.Key(token))
		case []any:
			idx, err := parseArrayIndex(token)
			if err != nil {
				return nil, nil, err
			}
			if idx >= len(v) {
				return nil, nil, fmt.Errorf("array index %d out of range", idx)
			}
			node = v[idx]
			path = append(path, sv.Index(idx))
		default:
			return nil, nil, fmt.Errorf("pointer token %q addresses a scalar", token)
		}
	}
	return node, path, nil
}

// parseArrayIndex parses a pointer token as an array index: digits only,
// no leading zeros except "0" itself.
func parseArrayIndex(token string) (int, error) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", token)
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, fmt.Errorf("invalid array index %q", token)
		}
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid array index %q", token)
	}
	return idx, nil
}
