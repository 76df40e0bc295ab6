package yamlcore

import "github.com/yamlcore-go/yamlcore/internal/emit"

// config accumulates the settings Options apply, following the functional
// options pattern yaml-go-yaml's internal/option/option.go establishes for
// this family of libraries.
type config struct {
	version       Version
	indentWidth   int
	explicitStart bool
	explicitEnd   bool
}

func newConfig() *config {
	return &config{version: V1_2, indentWidth: 2}
}

func (c *config) emitOptions() emit.Options {
	return emit.Options{
		IndentWidth:   c.indentWidth,
		ExplicitStart: c.explicitStart,
		ExplicitEnd:   c.explicitEnd,
	}
}

// Option configures a Deserialize or Serialize call.
type Option func(*config)

// WithVersion sets the core-schema version assumed for documents that
// carry no %YAML directive of their own. Only deserialization uses it;
// serialization ignores it, and the emitter quotes any string that would
// read back as a non-string under either version.
func WithVersion(v Version) Option {
	return func(c *config) { c.version = v }
}

// WithIndentWidth sets the number of spaces used per block nesting level
// on serialization. The default is 2.
func WithIndentWidth(n int) Option {
	return func(c *config) { c.indentWidth = n }
}

// WithExplicitDocumentMarkers forces a leading "---" and trailing "..."
// around a single serialized document; multi-document output always
// carries both regardless of this option.
func WithExplicitDocumentMarkers(start, end bool) Option {
	return func(c *config) { c.explicitStart, c.explicitEnd = start, end }
}

func applyOptions(opts []Option) *config {
	c := newConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
