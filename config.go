package jiter

// defaultRecursionLimit is the soft container-depth guard from spec.md §4.7:
// checked on every frame push so a deeply nested document raises
// RecursionLimitExceeded instead of exhausting the goroutine stack.
const defaultRecursionLimit = 200

// Config holds the parse-time knobs threaded through the parser, value
// builder, and typed cursor. Built via functional options, mirroring the
// teacher's ParsedJson option constructors.
type Config struct {
	AllowInfNaN    bool
	Partial        PartialMode
	RecursionLimit int
	// AllowDuplicateKeys, true by default, lets an object carry repeated
	// keys: the builder simply appends every pair and leaves first/last
	// resolution to the consumer via lazyMap's iterUnique/last-wins
	// machinery (spec.md §3.1). Set to false to opt into strict detection:
	// the builder then tracks keys seen per open object and fails with
	// DuplicateKey on a repeat (spec.md §4.8).
	AllowDuplicateKeys bool
	// Cache, if set, is consulted by the cursor's string accessors to
	// intern decoded strings through the §5 external-collaborator hook
	// instead of allocating a fresh Go string per occurrence.
	Cache *StringCache
}

// Option configures a Config. Grounded on the teacher's functional-options
// constructor pattern for ParsedJson.
type Option func(*Config)

func WithAllowInfNaN(allow bool) Option {
	return func(c *Config) { c.AllowInfNaN = allow }
}

func WithPartialMode(mode PartialMode) Option {
	return func(c *Config) { c.Partial = mode }
}

func WithRecursionLimit(limit int) Option {
	return func(c *Config) { c.RecursionLimit = limit }
}

// WithAllowDuplicateKeys toggles whether the value builder rejects a
// repeated object key. Pass false to opt into detection (spec.md §4.8);
// the default, unset or true, leaves duplicate keys in place for the
// consumer to resolve.
func WithAllowDuplicateKeys(allow bool) Option {
	return func(c *Config) { c.AllowDuplicateKeys = allow }
}

// WithStringCache wires in a string-interning hook (spec.md §5). Passing nil
// disables interning, which is also the default.
func WithStringCache(cache *StringCache) Option {
	return func(c *Config) { c.Cache = cache }
}

func defaultConfig() Config {
	return Config{RecursionLimit: defaultRecursionLimit, AllowDuplicateKeys: true}
}

func newConfig(opts ...Option) Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
