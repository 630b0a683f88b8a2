package animate

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/vdom"
)

func newTestFactory(sched Scheduler, opts ...Option) Factory {
	opts = append([]Option{WithScheduler(sched), WithLogger(testLogger())}, opts...)
	return Container(opts...)
}

func TestWrappedIdleDecoration(t *testing.T) {
	sched := NewManualScheduler()
	inst, err := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.ClassNameKey:       "card",
		vdom.StyleKey:           vdom.Style{"color": "red"},
		"id":                    "hero",
	}, vdom.Text("hello"))
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	inst.Mount()

	node := inst.Render()
	if node.Props.String(vdom.ClassNameKey) != "card" {
		t.Errorf("className = %q, want %q", node.Props.String(vdom.ClassNameKey), "card")
	}
	style := node.Props.Style()
	if style["color"] != "red" {
		t.Errorf("color = %v, want red", style["color"])
	}
	if style[AnimationDurationStyle] != nil {
		t.Errorf("animationDuration = %v, want nil", style[AnimationDurationStyle])
	}
	if node.Props["id"] != "hero" {
		t.Error("id not forwarded")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "hello" {
		t.Errorf("children = %v, want the hello text node", node.Children)
	}
	if _, ok := node.Props[PropAnimationClassName]; ok {
		t.Error("wrapper prop leaked to the inner component")
	}
	if sched.Pending() != 0 {
		t.Errorf("pending = %d, want 0", sched.Pending())
	}
}

func TestWrappedAnimationCycle(t *testing.T) {
	sched := NewManualScheduler()
	inst, err := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.ClassNameKey:       "card",
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()

	if !inst.Start() {
		t.Fatal("Start should transition")
	}
	node := inst.Render()
	if got := node.Props.String(vdom.ClassNameKey); got != "card flash" {
		t.Errorf("className = %q, want %q", got, "card flash")
	}
	if got := node.Props.Style()[AnimationDurationStyle]; got != "500ms" {
		t.Errorf("animationDuration = %v, want 500ms", got)
	}

	sched.Advance(500 * time.Millisecond)

	node = inst.Render()
	if got := node.Props.String(vdom.ClassNameKey); got != "card" {
		t.Errorf("className after completion = %q, want %q", got, "card")
	}
	if got := node.Props.Style()[AnimationDurationStyle]; got != nil {
		t.Errorf("animationDuration after completion = %v, want nil", got)
	}
}

func TestWrappedAnimateOnMount(t *testing.T) {
	sched := NewManualScheduler()
	inst, err := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName: "flash",
		PropAnimateOnMount:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()

	if !inst.IsAnimating() {
		t.Fatal("should be animating right after mount")
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", sched.Pending())
	}
	if got := inst.Render().Props.String(vdom.ClassNameKey); got != "flash" {
		t.Errorf("className = %q, want flash", got)
	}
	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != "3000ms" {
		t.Errorf("animationDuration = %v, want default 3000ms", got)
	}
}

func TestWrappedDisposeCancelsTimer(t *testing.T) {
	sched := NewManualScheduler()
	ref := vdom.NewElementRef()
	inst, err := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName: "flash",
		PropInstanceRef:        ref,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()
	ref.Set(inst.Render())

	inst.Dispose()
	if sched.Pending() != 0 {
		t.Errorf("pending after dispose = %d, want 0", sched.Pending())
	}
	sched.Advance(time.Hour)
	if inst.IsAnimating() {
		t.Error("disposed instance should be idle")
	}
	if ref.IsSet() {
		t.Error("dispose should detach the instance ref")
	}
}

func TestWrappedInstanceRef(t *testing.T) {
	ref := vdom.NewElementRef()
	inst, err := newTestFactory(NewManualScheduler())(vdom.Props{
		PropAnimationClassName: "flash",
		PropInstanceRef:        ref,
	})
	if err != nil {
		t.Fatal(err)
	}
	if inst.Ref() != ref {
		t.Error("Ref() should return the caller's ref")
	}
	if got := inst.Render().Props[vdom.RefKey]; got != ref {
		t.Errorf("rendered ref = %v, want caller ref", got)
	}

	own, _ := newTestFactory(NewManualScheduler())(vdom.Props{PropAnimationClassName: "flash"})
	if own.Ref() == nil {
		t.Error("instance should create its own ref when none is given")
	}
}

func TestWrappedSignalStrategy(t *testing.T) {
	sched := NewManualScheduler()
	var callerCalls int
	inst, err := newTestFactory(sched, WithStrategy(StrategySignal))(vdom.Props{
		PropAnimationClassName: "flash",
		vdom.EventAnimationEnd: func() { callerCalls++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()
	if sched.Pending() != 0 {
		t.Errorf("signal strategy scheduled %d timers", sched.Pending())
	}

	handlers, ok := inst.Render().Props[vdom.EventAnimationEnd].([]any)
	if !ok {
		t.Fatalf("animationend handler = %T, want merged handlers", inst.Render().Props[vdom.EventAnimationEnd])
	}
	for _, h := range handlers {
		h.(func())()
	}

	if inst.IsAnimating() {
		t.Error("animationend should end the animation")
	}
	if callerCalls != 1 {
		t.Errorf("caller handler calls = %d, want 1", callerCalls)
	}
}

func TestWrappedSignalStrategyLeavesStyle(t *testing.T) {
	base := vdom.Style{"color": "red"}
	inst, err := newTestFactory(NewManualScheduler(), WithStrategy(StrategySignal))(vdom.Props{
		PropAnimationClassName: "flash",
		vdom.StyleKey:          base,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()

	style := inst.Render().Props.Style()
	if _, ok := style[AnimationDurationStyle]; ok {
		t.Errorf("style = %v, want no animationDuration without a duration prop", style)
	}
	if style["color"] != "red" {
		t.Errorf("color = %v, want red", style["color"])
	}

	explicit, err := newTestFactory(NewManualScheduler(), WithStrategy(StrategySignal))(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 800,
	})
	if err != nil {
		t.Fatal(err)
	}
	explicit.Mount()
	explicit.Start()
	if got := explicit.Render().Props.Style()[AnimationDurationStyle]; got != "800ms" {
		t.Errorf("animationDuration = %v, want 800ms", got)
	}
}

func TestWrappedZeroDuration(t *testing.T) {
	sched := NewManualScheduler()
	inst, err := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()

	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != "0ms" {
		t.Errorf("animationDuration = %v, want 0ms", got)
	}
	if fired := sched.Advance(0); fired != 1 {
		t.Errorf("Advance(0) fired %d, want 1", fired)
	}
	if inst.IsAnimating() {
		t.Error("zero duration animation should end on Advance(0)")
	}
}

func TestWrappedFractionalDuration(t *testing.T) {
	inst, err := newTestFactory(NewManualScheduler())(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()
	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != "1.5ms" {
		t.Errorf("animationDuration = %v, want 1.5ms", got)
	}
}

func TestContainerRendersDiv(t *testing.T) {
	inst, err := Container(WithScheduler(NewManualScheduler()), WithLogger(testLogger()))(vdom.Props{
		PropAnimationClassName: "flash",
		vdom.ClassNameKey:      "box",
		"id":                   "panel",
	}, vdom.Text("hi"))
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()
	inst.Start()

	node := inst.Render()
	if node.Tag != "div" {
		t.Errorf("tag = %q, want div", node.Tag)
	}
	if got := node.Props.String(vdom.ClassNameKey); got != "box flash" {
		t.Errorf("className = %q, want %q", got, "box flash")
	}
	if node.Props["id"] != "panel" {
		t.Error("id not forwarded")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "hi" {
		t.Errorf("children = %v, want the hi text node", node.Children)
	}
}

func TestWrappedTimerStrategyHasNoEndHandler(t *testing.T) {
	inst, err := newTestFactory(NewManualScheduler())(vdom.Props{PropAnimationClassName: "flash"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := inst.Render().Props[vdom.EventAnimationEnd]; ok {
		t.Error("timer strategy should not bind animationend")
	}
}

func TestWrappedStop(t *testing.T) {
	sched := NewManualScheduler()
	inst, _ := newTestFactory(sched)(vdom.Props{PropAnimationClassName: "flash"})
	inst.Start()
	if !inst.Stop() {
		t.Fatal("Stop should end the animation")
	}
	if sched.Pending() != 0 || inst.State().Pending {
		t.Error("Stop should cancel the pending timer")
	}
}

func TestWithAnimationErrors(t *testing.T) {
	_, err := WithAnimation(nil)(vdom.Props{PropAnimationClassName: "flash"})
	if !stderrors.Is(err, errors.New("A004")) {
		t.Errorf("nil inner = %v, want A004", err)
	}

	_, err = WithAnimation(containerDiv)(vdom.Props{})
	if !stderrors.Is(err, errors.New("A001")) {
		t.Errorf("missing class = %v, want A001", err)
	}

	_, err = WithAnimation(containerDiv)(vdom.Props{PropAnimationClassName: "flash", PropInstanceRef: "nope"})
	if !stderrors.Is(err, errors.New("A005")) {
		t.Errorf("bad ref = %v, want A005", err)
	}
}

func TestWrappedUpdate(t *testing.T) {
	sched := NewManualScheduler()
	inst, _ := newTestFactory(sched)(vdom.Props{
		PropAnimationClassName: "flash",
		vdom.ClassNameKey:      "card",
	})

	err := inst.Update(vdom.Props{
		PropAnimationClassName:  "pulse",
		PropAnimationDurationMs: 100,
		vdom.ClassNameKey:       "tile",
	}, vdom.Text("new"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	inst.Start()
	node := inst.Render()
	if got := node.Props.String(vdom.ClassNameKey); got != "tile pulse" {
		t.Errorf("className = %q, want %q", got, "tile pulse")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "new" {
		t.Error("children not replaced")
	}
	sched.Advance(100 * time.Millisecond)
	if inst.IsAnimating() {
		t.Error("updated duration should drive the timer")
	}

	if err := inst.Update(vdom.Props{}); !stderrors.Is(err, errors.New("A001")) {
		t.Errorf("Update without class = %v, want A001", err)
	}
}

func TestPrecomputeRecomputesOnTransitionsOnly(t *testing.T) {
	sched := NewManualScheduler()
	style := vdom.Style{"color": "red"}
	inst, err := newTestFactory(sched, WithPrecompute(true))(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.StyleKey:           style,
	})
	if err != nil {
		t.Fatal(err)
	}
	inst.Mount()

	inst.Render()
	inst.Render()
	if inst.cache.recomputes != 1 {
		t.Errorf("recomputes after two renders = %d, want 1", inst.cache.recomputes)
	}

	inst.Start()
	if inst.cache.recomputes != 2 {
		t.Errorf("recomputes after start = %d, want 2", inst.cache.recomputes)
	}
	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != "500ms" {
		t.Errorf("animationDuration = %v, want 500ms", got)
	}
	if inst.cache.recomputes != 2 {
		t.Errorf("render after start recomputed: %d", inst.cache.recomputes)
	}

	sched.Advance(500 * time.Millisecond)
	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != nil {
		t.Errorf("animationDuration after end = %v, want nil", got)
	}
}

func TestPrecomputeOnConfigChange(t *testing.T) {
	style := vdom.Style{"color": "red"}
	props := vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.StyleKey:           style,
	}
	inst, err := newTestFactory(NewManualScheduler(), WithPrecompute(true))(props)
	if err != nil {
		t.Fatal(err)
	}
	inst.Render()
	base := inst.cache.recomputes

	// Same map, same duration: nothing to do.
	if err := inst.Update(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.StyleKey:           style,
	}); err != nil {
		t.Fatal(err)
	}
	if inst.cache.recomputes != base {
		t.Errorf("same identity recomputed: %d -> %d", base, inst.cache.recomputes)
	}

	// Equal contents, new map: identity changed.
	if err := inst.Update(vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 500,
		vdom.StyleKey:           vdom.Style{"color": "red"},
	}); err != nil {
		t.Fatal(err)
	}
	if inst.cache.recomputes != base+1 {
		t.Errorf("new style map should recompute: %d -> %d", base, inst.cache.recomputes)
	}

	// Duration change.
	next := vdom.Props{
		PropAnimationClassName:  "flash",
		PropAnimationDurationMs: 900,
		vdom.StyleKey:           vdom.Style{"color": "red"},
	}
	if err := inst.Update(next); err != nil {
		t.Fatal(err)
	}
	if inst.cache.recomputes != base+2 {
		t.Errorf("duration change should recompute: %d -> %d", base, inst.cache.recomputes)
	}

	inst.Start()
	if got := inst.Render().Props.Style()[AnimationDurationStyle]; got != "900ms" {
		t.Errorf("animationDuration = %v, want 900ms", got)
	}
}

func TestOnConfigChangeWithoutPrecompute(t *testing.T) {
	inst, _ := newTestFactory(NewManualScheduler())(vdom.Props{PropAnimationClassName: "flash"})
	if inst.OnConfigChange(vdom.Props{}, vdom.Props{vdom.StyleKey: vdom.Style{}}) {
		t.Error("OnConfigChange should only act for precomputing instances")
	}
}

func TestStyleIdentity(t *testing.T) {
	a := vdom.Style{"x": 1}
	b := vdom.Style{"x": 1}
	if styleIdentity(a) == styleIdentity(b) {
		t.Error("distinct maps should have distinct identity")
	}
	if styleIdentity(a) != styleIdentity(a) {
		t.Error("identity should be stable")
	}
	if styleIdentity(nil) != 0 {
		t.Error("nil style identity should be zero")
	}
}
