package animate

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it more than once, or
// after the callback ran, is a no-op.
type CancelFunc func()

// Scheduler runs a callback once after a delay.
//
// AfterFunc must not call fn synchronously.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// Dispatcher queues work onto a host event loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// LoopScheduler schedules callbacks with time.AfterFunc and runs them on a
// host event loop. A callback cancelled before the loop gets to it is
// dropped, so cancelling from the loop always wins.
//
// With a nil Dispatcher the callback runs on the timer goroutine.
type LoopScheduler struct {
	loop Dispatcher
}

// NewLoopScheduler creates a LoopScheduler dispatching onto loop.
func NewLoopScheduler(loop Dispatcher) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	var done atomic.Bool
	run := func() {
		if done.CompareAndSwap(false, true) {
			fn()
		}
	}
	timer := time.AfterFunc(d, func() {
		if done.Load() {
			return
		}
		if s.loop == nil {
			run()
			return
		}
		s.loop.Dispatch(run)
	})

	return func() {
		done.Store(true)
		timer.Stop()
	}
}

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing fires
// until Advance is called. It is meant for tests and for hosts that step
// time explicitly.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// NewManualScheduler creates a ManualScheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.remove(t)
	}
}

// Advance moves the clock forward by d, firing due callbacks in deadline
// order. It returns the number of callbacks fired. Callbacks run without
// the scheduler lock held and may schedule or cancel timers; a timer they
// schedule within the window fires in the same call.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}
		s.remove(next)
		s.now = next.at
		s.mu.Unlock()

		next.fn()
		fired++
	}
}

// Pending returns the number of scheduled callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// nextDue returns the earliest timer due at or before target.
// Callers must hold s.mu.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.Slice(s.timers, func(i, j int) bool {
		if s.timers[i].at != s.timers[j].at {
			return s.timers[i].at < s.timers[j].at
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	if s.timers[0].at > target {
		return nil
	}
	return s.timers[0]
}

// remove drops t from the timer list. Callers must hold s.mu.
func (s *ManualScheduler) remove(t *manualTimer) {
	for i, cur := range s.timers {
		if cur == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}
