package schemavalidator

// Option configures validation.
type Option func(*Options)

// Options holds all configuration for a validator.
type Options struct {
	// Draft selects the JSON Schema draft. Zero means auto-detect from the
	// schema's $schema keyword, defaulting to Draft7.
	Draft Draft

	// ValidateSchema validates the schema against its metaschema before any
	// instance validation. When the schema fails, engine.New returns a
	// SchemaError.
	ValidateSchema bool

	// Formats enables checking of known format values. Unknown format names
	// are always ignored.
	Formats bool

	// MaxErrors caps the number of errors collected into a Result.
	// Zero means unlimited. The lazy sequence is never capped; callers
	// consuming it directly stop whenever they choose.
	MaxErrors int

	// RegexCacheSize bounds the compiled-regex LRU shared by pattern,
	// patternProperties and the "regex" format checker.
	RegexCacheSize int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Formats:        true,
		MaxErrors:      0, // unlimited
		RegexCacheSize: 256,
	}
}

// WithDraft pins the draft instead of auto-detecting it.
func WithDraft(d Draft) Option {
	return func(o *Options) {
		o.Draft = d
	}
}

// WithValidateSchema enables schema self-validation against the metaschema.
func WithValidateSchema(enable bool) Option {
	return func(o *Options) {
		o.ValidateSchema = enable
	}
}

// WithFormats enables or disables format checking.
func WithFormats(enable bool) Option {
	return func(o *Options) {
		o.Formats = enable
	}
}

// WithMaxErrors caps the number of errors collected into a Result.
// Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithRegexCacheSize sets the compiled-regex cache capacity.
func WithRegexCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.RegexCacheSize = size
		}
	}
}

// StrictOptions enables everything that can reject a document: schema
// self-validation and format checking.
func StrictOptions() []Option {
	return []Option{
		WithValidateSchema(true),
		WithFormats(true),
	}
}

// FastOptions favors cheap validation: no schema self-validation, no format
// checking, first error only.
func FastOptions() []Option {
	return []Option{
		WithValidateSchema(false),
		WithFormats(false),
		WithMaxErrors(1),
	}
}
