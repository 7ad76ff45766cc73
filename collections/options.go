package collections

// OptionFunc allows customizing the Options with functions.
type OptionFunc func(*Options)

// Options configures a collection wrapper.
type Options struct {
	// MaxReplicationWriteLag is the maximum number of writes a collection
	// may accumulate before it's forced to refresh (swap) and expose them
	// to readers.
	MaxReplicationWriteLag int
}

// WithMaxReplicationWriteLag sets MaxReplicationWriteLag.
func WithMaxReplicationWriteLag(writes int) OptionFunc {
	return func(options *Options) {
		options.MaxReplicationWriteLag = writes
	}
}
