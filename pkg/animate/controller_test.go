package animate

import (
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/animate/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(t *testing.T, cfg Config, opts ...Option) (*Controller, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	opts = append([]Option{WithScheduler(sched), WithLogger(testLogger())}, opts...)
	c, err := NewController(cfg, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, sched
}

// recordingScheduler hands out cancel funcs that do nothing, so callbacks
// stay callable after cancellation.
type recordingScheduler struct {
	fns []func()
}

func (s *recordingScheduler) AfterFunc(_ time.Duration, fn func()) CancelFunc {
	s.fns = append(s.fns, fn)
	return func() {}
}

func TestControllerStartsIdle(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash"})

	st := c.State()
	if st.Animating || st.Pending || st.Phase() != Idle {
		t.Errorf("initial state = %+v, want idle", st)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", sched.Pending())
	}
	if got := c.Config().Duration; got != DefaultDuration {
		t.Errorf("Duration = %v, want %v", got, DefaultDuration)
	}
}

func TestControllerStartIsIdempotent(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: 500 * time.Millisecond})

	if !c.Start() {
		t.Fatal("first Start should transition")
	}
	if !c.IsAnimating() {
		t.Fatal("should be animating after Start")
	}
	if sched.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", sched.Pending())
	}

	if c.Start() {
		t.Error("second Start should be a no-op")
	}
	if sched.Pending() != 1 {
		t.Errorf("pending timers after second Start = %d, want 1", sched.Pending())
	}
	if !c.IsAnimating() {
		t.Error("still expected animating")
	}
}

func TestControllerTimerCompletion(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: 500 * time.Millisecond})
	c.Start()

	if fired := sched.Advance(499 * time.Millisecond); fired != 0 {
		t.Fatalf("fired %d timers before the deadline", fired)
	}
	if !c.IsAnimating() {
		t.Fatal("should still be animating before the deadline")
	}

	if fired := sched.Advance(time.Millisecond); fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	st := c.State()
	if st.Animating || st.Pending {
		t.Errorf("state after timer = %+v, want idle with no pending timer", st)
	}

	// The instance persists through repeated cycles.
	if !c.Start() {
		t.Error("Start after completion should transition again")
	}
	if sched.Pending() != 1 {
		t.Errorf("pending timers = %d, want 1", sched.Pending())
	}
}

func TestControllerStopCancelsTimer(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: time.Second})
	c.Start()

	if !c.Stop() {
		t.Fatal("Stop should end a running animation")
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers after Stop = %d, want 0", sched.Pending())
	}
	if c.Stop() {
		t.Error("Stop while idle should be a no-op")
	}
	if c.End() {
		t.Error("End while idle should be a no-op")
	}
}

func TestControllerStaleTimerIgnored(t *testing.T) {
	sched := &recordingScheduler{}
	c, err := NewController(Config{ClassName: "flash"}, WithScheduler(sched), WithLogger(testLogger()))
	if err != nil {
		t.Fatal(err)
	}

	c.Start()
	c.Stop()
	c.Start()
	if len(sched.fns) != 2 {
		t.Fatalf("scheduled %d callbacks, want 2", len(sched.fns))
	}

	sched.fns[0]()
	if !c.IsAnimating() {
		t.Fatal("callback from an earlier cycle must not end the current one")
	}

	sched.fns[1]()
	if c.IsAnimating() {
		t.Error("callback from the current cycle should end it")
	}
}

func TestControllerSignalStrategy(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Strategy: StrategySignal})

	c.Start()
	if sched.Pending() != 0 {
		t.Errorf("signal strategy scheduled %d timers, want 0", sched.Pending())
	}
	sched.Advance(time.Hour)
	if !c.IsAnimating() {
		t.Fatal("signal strategy must not end on its own")
	}

	if !c.End() {
		t.Fatal("End should finish the animation")
	}
	if c.IsAnimating() {
		t.Error("expected idle after End")
	}
}

func TestControllerDisposeCancelsPendingTimer(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: time.Second})
	c.Start()
	c.OnDispose()

	if sched.Pending() != 0 {
		t.Errorf("pending timers after dispose = %d, want 0", sched.Pending())
	}
	sched.Advance(time.Hour)

	st := c.State()
	if st.Animating || !st.Disposed {
		t.Errorf("state after dispose = %+v", st)
	}
	if c.Start() {
		t.Error("Start after dispose should be ignored")
	}

	// Safe to call again, and with nothing pending.
	c.OnDispose()
	idle, _ := newTestController(t, Config{ClassName: "flash"})
	idle.OnDispose()
}

func TestControllerDisposeIgnoresLateCallback(t *testing.T) {
	sched := &recordingScheduler{}
	c, err := NewController(Config{ClassName: "flash"}, WithScheduler(sched), WithLogger(testLogger()))
	if err != nil {
		t.Fatal(err)
	}

	changes := 0
	c.OnChange(func(bool) { changes++ })
	c.Start()
	c.OnDispose()
	sched.fns[0]()

	if changes != 1 {
		t.Errorf("observer calls = %d, want 1 (start only)", changes)
	}
	if st := c.State(); st.Animating {
		t.Errorf("late callback mutated a disposed controller: %+v", st)
	}
}

func TestControllerAnimateOnMount(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", AnimateOnMount: true})

	if c.IsAnimating() {
		t.Fatal("should not animate before mount")
	}
	c.OnMount()
	if !c.IsAnimating() {
		t.Fatal("animateOnMount should start on mount")
	}
	if sched.Pending() != 1 {
		t.Errorf("pending timers = %d, want 1", sched.Pending())
	}

	c.Stop()
	c.OnMount()
	if c.IsAnimating() {
		t.Error("a second OnMount must not restart the animation")
	}
}

func TestControllerMountWithoutAnimateOnMount(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash"})
	c.OnMount()
	if c.IsAnimating() || sched.Pending() != 0 {
		t.Error("mount without animateOnMount should stay idle")
	}
	if !c.State().Mounted {
		t.Error("Mounted should be recorded")
	}
}

func TestControllerOnChange(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: 10 * time.Millisecond})

	var seen []bool
	unsubscribe := c.OnChange(func(animating bool) { seen = append(seen, animating) })

	c.Start()
	c.Start()
	sched.Advance(10 * time.Millisecond)

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("transitions = %v, want [true false]", seen)
	}

	unsubscribe()
	c.Start()
	if len(seen) != 2 {
		t.Errorf("observer called after unsubscribe: %v", seen)
	}
}

func TestControllerReconfigure(t *testing.T) {
	c, sched := newTestController(t, Config{ClassName: "flash", Duration: time.Second})

	if err := c.Reconfigure(Config{ClassName: "flash", Duration: 200 * time.Millisecond}); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	c.Start()
	sched.Advance(200 * time.Millisecond)
	if c.IsAnimating() {
		t.Error("new duration should apply to the next Start")
	}

	if err := c.Reconfigure(Config{}); !stderrors.Is(err, errors.New("A001")) {
		t.Errorf("Reconfigure with empty class = %v, want A001", err)
	}
}

func TestNewControllerValidates(t *testing.T) {
	_, err := NewController(Config{})
	if !stderrors.Is(err, errors.New("A001")) {
		t.Errorf("err = %v, want A001", err)
	}
}

func TestControllerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	clock := time.Unix(0, 0)
	now := func() time.Time { return clock }

	c, sched := newTestController(t, Config{ClassName: "flash", Duration: time.Second},
		WithMetrics(m), WithClock(now))

	c.Start()
	if got := testutil.ToFloat64(m.active); got != 1 {
		t.Errorf("active = %v, want 1", got)
	}
	clock = clock.Add(time.Second)
	sched.Advance(time.Second)

	c.Start()
	c.Stop()
	c.Start()
	c.OnDispose()

	if got := testutil.ToFloat64(m.started.WithLabelValues("timer")); got != 3 {
		t.Errorf("started = %v, want 3", got)
	}
	for reason, want := range map[EndReason]float64{ReasonTimer: 1, ReasonStopped: 1, ReasonDisposed: 1} {
		if got := testutil.ToFloat64(m.completed.WithLabelValues("timer", string(reason))); got != want {
			t.Errorf("completed{%s} = %v, want %v", reason, got, want)
		}
	}
	if got := testutil.ToFloat64(m.active); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.recordStart(StrategyTimer)
	m.recordEnd(StrategyTimer, ReasonTimer, time.Second)
}

func TestPhaseString(t *testing.T) {
	if Idle.String() != "Idle" || Animating.String() != "Animating" {
		t.Errorf("phase names = %q, %q", Idle, Animating)
	}
}
