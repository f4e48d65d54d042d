// Package specs provides the embedded JSON Schema metaschema documents.
//
// The metaschemas for draft-04, draft-06 and draft-07 are embedded as static
// data and exposed as parsed values in the validator's value model. They are
// used for optional schema self-validation and as resolution targets when a
// $ref points at a metaschema URL.
package specs

import (
	"embed"
	"fmt"
	"sync"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

//go:embed metaschemas/*.json
var files embed.FS

var (
	draft4Meta = sync.OnceValues(func() (any, error) { return load("draft-04.json") })
	draft6Meta = sync.OnceValues(func() (any, error) { return load("draft-06.json") })
	draft7Meta = sync.OnceValues(func() (any, error) { return load("draft-07.json") })
)

func load(name string) (any, error) {
	data, err := files.ReadFile("metaschemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded metaschema %s: %w", name, err)
	}
	v, err := jsontree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded metaschema %s: %w", name, err)
	}
	return v, nil
}

// Metaschema returns the parsed metaschema for a draft. The document is
// decoded once per process and shared; callers must treat it as read-only.
func Metaschema(d sv.Draft) (any, error) {
	switch d {
	case sv.Draft4:
		return draft4Meta()
	case sv.Draft6:
		return draft6Meta()
	case sv.Draft7:
		return draft7Meta()
	default:
		return nil, fmt.Errorf("unsupported draft: %s", d)
	}
}

// MetaschemaForURL returns the metaschema whose canonical URL (with or
// without a trailing "#") matches url, or false if the URL is not a known
// metaschema location.
func MetaschemaForURL(url string) (any, bool) {
	d, ok := sv.DraftFromURL(url)
	if !ok {
		return nil, false
	}
	meta, err := Metaschema(d)
	if err != nil {
		return nil, false
	}
	return meta, true
}
