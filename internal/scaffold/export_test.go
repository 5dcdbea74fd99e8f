package scaffold

import "time"

// ReadStamp reads the stamp file at path.
var ReadStamp = readStamp

type MockTimeProvider struct {
	CurrentTime int64
}

func (m MockTimeProvider) Now() time.Time {
	return time.Unix(m.CurrentTime, 0).UTC()
}

// WithTimeProvider overrides the default time provider.
func WithTimeProvider(tp timeProvider) Options {
	return func(o *options) {
		o.timeProvider = tp
	}
}

// WithRunIDGenerator overrides the default run id generator.
func WithRunIDGenerator(f func() string) Options {
	return func(o *options) {
		o.newRunID = f
	}
}
