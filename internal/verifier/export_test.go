package verifier

// WithMaxChecks overrides the number of directory entries verified concurrently.
func WithMaxChecks(n int) Options {
	return func(o *options) {
		o.maxChecks = n
	}
}
