package animate

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// EndReason records why an animation left the animating state.
type EndReason string

const (
	ReasonTimer    EndReason = "timer"
	ReasonSignal   EndReason = "signal"
	ReasonStopped  EndReason = "stopped"
	ReasonDisposed EndReason = "disposed"
)

// Phase is the wrapper state.
type Phase uint8

const (
	Idle Phase = iota
	Animating
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Animating {
		return "Animating"
	}
	return "Idle"
}

// State is a snapshot of a Controller.
type State struct {
	// Animating is true between a successful Start and the end transition.
	Animating bool

	// Pending is true while a completion callback is scheduled.
	Pending bool

	// Mounted and Disposed track the instance lifecycle.
	Mounted  bool
	Disposed bool
}

// Phase returns the state machine phase of s.
func (s State) Phase() Phase {
	if s.Animating {
		return Animating
	}
	return Idle
}

// Controller owns the animating flag and its pending completion.
//
// The lifecycle hooks OnMount and OnDispose are called by the host; Start,
// End, and Stop are the only transitions. A Controller is safe for
// concurrent use, though hosts normally drive it from one event loop.
type Controller struct {
	mu sync.Mutex

	cfg        Config
	completion Completion
	scheduler  Scheduler

	animating bool
	pending   CancelFunc
	gen       uint64
	mounted   bool
	disposed  bool
	startedAt time.Time
	span      trace.Span

	observers map[uint64]func(animating bool)
	nextObs   uint64

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	ctx     context.Context
	now     func() time.Time
}

// NewController creates an idle Controller for cfg. Options supply the
// scheduler, logger, metrics, and tracer; WithDefaults is ignored here.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	o := applyOptions(opts)
	return newController(cfg, o)
}

func newController(cfg Config, o options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	return &Controller{
		cfg:        cfg,
		completion: newCompletion(cfg, o.scheduler),
		scheduler:  o.scheduler,
		observers:  make(map[uint64]func(bool)),
		logger:     o.logger.With("component", "animate", "class", cfg.ClassName),
		metrics:    o.metrics,
		tracer:     o.tracer,
		ctx:        o.ctx,
		now:        o.now,
	}, nil
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Animating: c.animating,
		Pending:   c.pending != nil,
		Mounted:   c.mounted,
		Disposed:  c.disposed,
	}
}

// IsAnimating reports whether an animation is in progress.
func (c *Controller) IsAnimating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animating
}

// Start begins an animation. It returns false without side effects when
// already animating or disposed.
func (c *Controller) Start() bool {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		c.logger.Warn("start ignored on disposed instance")
		return false
	}
	if c.animating {
		c.mu.Unlock()
		return false
	}

	// At most one completion is outstanding: drop the old one before
	// registering the next.
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}

	c.animating = true
	c.gen++
	gen := c.gen
	c.startedAt = c.now()
	c.span = startCycleSpan(c.ctx, c.tracer, c.cfg)
	c.pending = c.completion.Begin(func() { c.finish(ReasonTimer, gen) })
	strategy := c.cfg.Strategy
	durationMs := c.cfg.Duration.Milliseconds()
	c.mu.Unlock()

	c.metrics.recordStart(strategy)
	c.logger.Debug("animation started", "strategy", strategy, "duration_ms", durationMs)
	c.notify(true)
	return true
}

// End ends the current animation in response to the completion signal.
// It is a no-op when idle.
func (c *Controller) End() bool {
	return c.finish(ReasonSignal, 0)
}

// Stop force-stops the current animation under either strategy, cancelling
// any pending timer. It is a no-op when idle.
func (c *Controller) Stop() bool {
	return c.finish(ReasonStopped, 0)
}

// finish performs the Animating -> Idle transition. A non-zero gen limits
// the transition to the cycle that scheduled it.
func (c *Controller) finish(reason EndReason, gen uint64) bool {
	c.mu.Lock()
	if c.disposed || !c.animating || (gen != 0 && gen != c.gen) {
		c.mu.Unlock()
		return false
	}
	c.animating = false
	pending := c.pending
	c.pending = nil
	span := c.span
	c.span = nil
	elapsed := c.now().Sub(c.startedAt)
	strategy := c.cfg.Strategy
	c.mu.Unlock()

	if pending != nil && reason != ReasonTimer {
		pending()
	}
	endCycleSpan(span, reason)
	c.metrics.recordEnd(strategy, reason, elapsed)
	c.logger.Debug("animation ended", "reason", reason, "elapsed", elapsed)
	c.notify(false)
	return true
}

// OnMount runs the mount hook: with AnimateOnMount it starts the animation
// once, before the first decoration is computed. Later calls do nothing.
func (c *Controller) OnMount() {
	c.mu.Lock()
	if c.mounted || c.disposed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	onMount := c.cfg.AnimateOnMount
	c.mu.Unlock()

	if onMount {
		c.Start()
	}
}

// OnDispose cancels any pending completion and leaves the controller Idle.
// Transitions requested afterwards, including late timer callbacks, are
// ignored. Safe to call repeatedly.
func (c *Controller) OnDispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	wasAnimating := c.animating
	c.animating = false
	c.gen++
	pending := c.pending
	c.pending = nil
	span := c.span
	c.span = nil
	elapsed := c.now().Sub(c.startedAt)
	strategy := c.cfg.Strategy
	c.observers = nil
	c.mu.Unlock()

	if pending != nil {
		pending()
	}
	if wasAnimating {
		endCycleSpan(span, ReasonDisposed)
		c.metrics.recordEnd(strategy, ReasonDisposed, elapsed)
	}
	c.logger.Debug("instance disposed", "was_animating", wasAnimating)
}

// Reconfigure replaces the configuration. A running animation keeps its
// pending completion; the new duration and strategy apply from the next
// Start.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.completion = newCompletion(cfg, c.scheduler)
	return nil
}

// OnChange registers fn to be called after every transition with the new
// value of the animating flag. It returns a function that unregisters fn.
func (c *Controller) OnChange(fn func(animating bool)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || fn == nil {
		return func() {}
	}
	c.nextObs++
	id := c.nextObs
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Controller) notify(animating bool) {
	c.mu.Lock()
	ids := make([]uint64, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	fns := make([]func(bool), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, c.observers[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(animating)
	}
}
