package jiter

// Parse builds a single Value tree from a complete JSON document, requiring
// the whole input (aside from trailing whitespace) be consumed. The Value it
// returns is what batson.EncodeFromJSON takes as input before compacting it
// into its binary form.
func Parse(data []byte, opts ...Option) (Value, error) {
	return buildValue(data, newConfig(opts...))
}
