package animate

import "time"

// Completion is the mechanism that ends an animation.
type Completion interface {
	// Begin starts waiting for the current animation to finish and arranges
	// for end to be called when it does. The returned CancelFunc, if non-nil,
	// abandons the wait.
	Begin(end func()) CancelFunc

	// Strategy reports which strategy this completion implements.
	Strategy() Strategy
}

// TimerCompletion ends an animation after a fixed duration.
type TimerCompletion struct {
	Scheduler Scheduler
	Duration  time.Duration
}

// Begin implements Completion.
func (t TimerCompletion) Begin(end func()) CancelFunc {
	return t.Scheduler.AfterFunc(t.Duration, end)
}

// Strategy implements Completion.
func (TimerCompletion) Strategy() Strategy { return StrategyTimer }

// SignalCompletion waits for an external animationend signal. Nothing is
// scheduled; the host calls Controller.End when the signal arrives.
type SignalCompletion struct{}

// Begin implements Completion.
func (SignalCompletion) Begin(func()) CancelFunc { return nil }

// Strategy implements Completion.
func (SignalCompletion) Strategy() Strategy { return StrategySignal }

// newCompletion builds the completion for cfg.
func newCompletion(cfg Config, sched Scheduler) Completion {
	if cfg.Strategy == StrategySignal {
		return SignalCompletion{}
	}
	return TimerCompletion{Scheduler: sched, Duration: cfg.Duration}
}
