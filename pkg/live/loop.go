package live

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/animate"
)

// DefaultQueueSize is the dispatch queue capacity used when LoopConfig
// leaves QueueSize unset.
const DefaultQueueSize = 256

// LoopConfig configures a Loop.
type LoopConfig struct {
	// QueueSize is the capacity of the dispatch queue.
	// Work dispatched while the queue is full is discarded.
	QueueSize int

	// Logger receives queue and panic diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Loop runs queued functions one at a time on a single goroutine.
// It is safe for concurrent use.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	stopped   chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	logger    *slog.Logger
}

var _ animate.Dispatcher = (*Loop)(nil)

// NewLoop creates a Loop and starts its goroutine.
func NewLoop(config LoopConfig) *Loop {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	l := &Loop{
		queue:   make(chan func(), config.QueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  config.Logger.With("component", "loop"),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case fn := <-l.queue:
			l.exec(fn)
		case <-l.done:
			return
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic in loop callback",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Dispatch queues fn to run on the loop goroutine. It never blocks: after
// Close, or when the queue is full, fn is discarded.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil || l.closed.Load() {
		return
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
	}
}

// Do runs fn on the loop goroutine and waits for it to return. Unlike
// Dispatch it waits for queue space. Do must not be called from the loop
// goroutine itself.
func (l *Loop) Do(fn func()) error {
	if l.closed.Load() {
		return errors.New("A022")
	}
	ran := make(chan struct{})
	wrapped := func() {
		defer close(ran)
		fn()
	}
	select {
	case l.queue <- wrapped:
	case <-l.done:
		return errors.New("A022")
	}
	select {
	case <-ran:
		return nil
	case <-l.stopped:
		// The loop may have picked the callback up just before stopping.
		select {
		case <-ran:
			return nil
		default:
			return errors.New("A022")
		}
	}
}

// Close stops the loop. Queued work that has not started is discarded.
// Close blocks until the callback currently running, if any, returns, so
// it must not be called from the loop goroutine.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
	<-l.stopped
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}
