package keyword

import (
	"regexp"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/cache"
	"github.com/goschema/validator/resolver"
)

// Context carries the state one validation run threads through the
// recursion: the draft, the root document, the resolver, the current schema
// and instance paths, the $id scope chain, and the visited-ref set used for
// cycle guarding.
//
// Contexts are derived, never mutated in place: descending into a subschema
// copies the context with extended paths, so sibling branches observe the
// paths as they were before the descent. The visited-ref set is the one
// deliberate exception; it is shared down a branch and unwound on the way
// back up, which gives exactly per-branch semantics in a depth-first walk.
type Context struct {
	Draft    sv.Draft
	Root     any
	Resolver *resolver.Resolver
	Formats  bool
	Metrics  *sv.Metrics
	Regexps  *cache.Cache[string, *regexp.Regexp]

	instancePath sv.Path
	schemaPath   sv.Path
	scope        *scopeFrame
	visited      map[string]bool

	// silent suppresses metrics recording during nested probe runs
	// (anyOf, oneOf, not, contains, if), whose errors are interpreted
	// for emptiness and then discarded.
	silent bool
}

// scopeFrame is one link of the $id scope chain used to join relative refs.
type scopeFrame struct {
	id     string
	parent *scopeFrame
}

// NewContext creates the root context for one validation run.
func NewContext(draft sv.Draft, root any, res *resolver.Resolver) *Context {
	return &Context{
		Draft:    draft,
		Root:     root,
		Resolver: res,
		Formats:  true,
		visited:  make(map[string]bool),
	}
}

// InstancePath returns the current instance location.
func (ctx *Context) InstancePath() sv.Path { return ctx.instancePath }

// SchemaPath returns the current schema location.
func (ctx *Context) SchemaPath() sv.Path { return ctx.schemaPath }

// at derives a context with extended paths. Either argument may be nil.
func (ctx *Context) at(instSegs, schemaSegs []sv.Segment) *Context {
	next := *ctx
	if len(instSegs) > 0 {
		next.instancePath = ctx.instancePath.Append(instSegs...)
	}
	if len(schemaSegs) > 0 {
		next.schemaPath = ctx.schemaPath.Append(schemaSegs...)
	}
	return &next
}

// atKeyword derives a context whose schema path ends with the keyword name.
func (ctx *Context) atKeyword(name string) *Context {
	return ctx.at(nil, []sv.Segment{sv.Key(name)})
}

// replaceKeyword derives a context whose schema path has its final segment
// (a keyword name) replaced. Used by "if" to address sibling "then"/"else".
func (ctx *Context) replaceKeyword(name string) *Context {
	next := *ctx
	n := len(ctx.schemaPath)
	if n > 0 {
		next.schemaPath = ctx.schemaPath[:n-1].Append(sv.Key(name))
	} else {
		next.schemaPath = sv.Path{sv.Key(name)}
	}
	return &next
}

// withSchemaPath derives a context with a replaced schema path, used after a
// $ref hop so errors point at the resolved target.
func (ctx *Context) withSchemaPath(p sv.Path) *Context {
	next := *ctx
	next.schemaPath = p
	return &next
}

// pushScope derives a context with an additional $id scope.
func (ctx *Context) pushScope(id string) *Context {
	next := *ctx
	next.scope = &scopeFrame{id: id, parent: ctx.scope}
	return &next
}

// scopeIDs returns the scope chain outermost first.
func (ctx *Context) scopeIDs() []string {
	var ids []string
	for f := ctx.scope; f != nil; f = f.parent {
		ids = append(ids, f.id)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// probe derives a context for a nested validity check whose errors will be
// discarded rather than reported.
func (ctx *Context) probe() *Context {
	next := *ctx
	next.silent = true
	return &next
}

// emit reports one validation error. Returns false when the consumer
// stopped and traversal should unwind.
func (ctx *Context) emit(yield Yield, keyword, message string) bool {
	return ctx.emitError(yield, sv.Error{
		Keyword:      keyword,
		Message:      message,
		InstancePath: ctx.instancePath,
		SchemaPath:   ctx.schemaPath,
	})
}

func (ctx *Context) emitError(yield Yield, err sv.Error) bool {
	if ctx.Metrics != nil && !ctx.silent {
		ctx.Metrics.RecordError(err.Keyword)
	}
	return yield(err)
}

// compileRegex compiles a pattern through the shared LRU cache.
func (ctx *Context) compileRegex(pattern string) (*regexp.Regexp, error) {
	if ctx.Regexps == nil {
		return regexp.Compile(pattern)
	}
	return ctx.Regexps.GetOrCompute(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile(pattern)
	})
}
