package vtest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/animate/pkg/animate"
	"github.com/vango-dev/animate/pkg/vdom"
	"github.com/vango-dev/animate/pkg/vtest"
)

func card(props vdom.Props, children []*vdom.VNode) *vdom.VNode {
	return vdom.Element("div", props, children...)
}

func flashProps() vdom.Props {
	return vdom.Props{
		animate.PropAnimationClassName:  "flash",
		animate.PropAnimationDurationMs: 500,
		animate.PropAnimateOnMount:      true,
		vdom.ClassNameKey:               "card",
	}
}

func TestHarnessTimerCycle(t *testing.T) {
	h := vtest.New(t, card, flashProps())

	h.ExpectAnimating(true)
	h.ExpectAttribute("class", "card")
	h.ExpectAttribute("class", "flash")
	h.ExpectAttribute("style", "animation-duration: 500ms")

	if fired := h.Advance(499 * time.Millisecond); fired != 0 {
		t.Errorf("fired %d timers before the deadline", fired)
	}
	h.ExpectAnimating(true)

	if fired := h.Advance(time.Millisecond); fired != 1 {
		t.Errorf("fired %d timers at the deadline, want 1", fired)
	}
	h.ExpectAnimating(false)
	h.ExpectNoAttributeValue("class", "flash")
	h.ExpectNotContains("animation-duration")

	changes := h.Changes()
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("Changes() = %v, want [true false]", changes)
	}
}

func TestHarnessSignal(t *testing.T) {
	h := vtest.New(t, card, flashProps(), animate.WithStrategy(animate.StrategySignal))

	if !h.HasHandler("animationend") {
		t.Fatal("signal strategy should register an animationend handler")
	}
	h.Fire("animationend")
	h.ExpectAnimating(false)

	if h.Clock().Pending() != 0 {
		t.Errorf("signal strategy should not schedule timers, pending = %d", h.Clock().Pending())
	}
}

func TestHarnessTimerHasNoHandler(t *testing.T) {
	h := vtest.New(t, card, flashProps())
	if h.HasHandler("animationend") {
		t.Error("timer strategy without a caller handler should not register animationend")
	}
}

func TestHarnessRestart(t *testing.T) {
	h := vtest.New(t, card, flashProps())
	h.Advance(200 * time.Millisecond)
	if h.Instance().Start() {
		t.Error("Start while animating should be a no-op")
	}
	h.Instance().Stop()
	if !h.Instance().Start() {
		t.Fatal("Start after Stop should begin a new cycle")
	}
	h.Advance(400 * time.Millisecond)
	h.ExpectAnimating(true)
	h.Advance(100 * time.Millisecond)
	h.ExpectAnimating(false)
}

func TestHarnessLogs(t *testing.T) {
	h := vtest.New(t, card, flashProps())
	h.Advance(time.Second)
	if !strings.Contains(h.Logs(), "animation") {
		t.Errorf("expected lifecycle logs, got %q", h.Logs())
	}
}

func TestRenderAssertions(t *testing.T) {
	node := vdom.Div(vdom.Class("greeting"), "Welcome")
	vtest.ExpectContains(t, node, "Welcome")
	vtest.ExpectNotContains(t, node, "Error")

	if got := vtest.RenderToString(node); got != `<div class="greeting">Welcome</div>` {
		t.Errorf("RenderToString = %q", got)
	}
}
