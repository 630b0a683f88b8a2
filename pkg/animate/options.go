package animate

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Controller or the instances built by WithAnimation.
type Option func(*options)

type options struct {
	defaults  Config
	scheduler Scheduler
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	ctx       context.Context
	now       func() time.Time
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		tracer: defaultTracer(),
		ctx:    context.Background(),
		now:    time.Now,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.scheduler == nil {
		o.scheduler = NewLoopScheduler(nil)
	}
	return o
}

// WithDefaults sets the configuration that props are overlaid on.
func WithDefaults(cfg Config) Option {
	return func(o *options) {
		o.defaults = cfg
	}
}

// WithStrategy selects the completion strategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.defaults.Strategy = s
	}
}

// WithPrecompute enables style precomputation.
func WithPrecompute(enabled bool) Option {
	return func(o *options) {
		o.defaults.Precompute = enabled
	}
}

// WithScheduler sets the scheduler used by the timer strategy.
// Default: a LoopScheduler without a loop.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records lifecycle counters into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer for animation cycle spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithContext sets the parent context for animation cycle spans.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithClock sets the wall clock used for duration metrics.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
