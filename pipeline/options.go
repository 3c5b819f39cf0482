package pipeline

import "log/slog"

// DefaultBandHeight is the number of rows shaded per work item.
const DefaultBandHeight = 16

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	workers    int
	bandHeight int
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:    0, // GOMAXPROCS
		bandHeight: DefaultBandHeight,
	}
}

// WithWorkers sets the number of shading goroutines. Values of 0 or less
// use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBandHeight sets how many rows one work item shades. Values of 0 or
// less keep DefaultBandHeight.
func WithBandHeight(rows int) Option {
	return func(o *options) {
		if rows > 0 {
			o.bandHeight = rows
		}
	}
}

// WithLogger overrides the logger. By default the pipeline logs through
// shading.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
