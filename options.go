package delayqueue

import (
	"log/slog"

	"k8s.io/utils/clock"
)

// Option configures a DelayQueue.
type Option func(*options)

// WithClock sets the clock used to measure delays
// Mostly useful for testing
func WithClock(clk clock.WithTicker) Option {
	return func(o *options) { o.clock = clk }
}

// WithLogger sets the instance of the slog logger
// The queue only emits debug-level records
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

type options struct {
	clock  clock.WithTicker
	logger *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.clock == nil {
		o.clock = clock.RealClock{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}
