package repository

import "time"

// Option configures a store.
type Option func(*options)

type options struct {
	now    func() time.Time
	pretty bool
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the clock used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPretty indents file records. Ignored by MemoryStore.
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}
