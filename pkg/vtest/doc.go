// Package vtest provides testing helpers for animated components.
//
// A Harness mounts one wrapped instance on a manual clock, so tests step
// time explicitly and never sleep.
//
// # Quick Start
//
//	func TestCardFlashes(t *testing.T) {
//	    h := vtest.New(t, Card, vdom.Props{
//	        "animationClassName":  "flash",
//	        "animationDurationMs": 500,
//	        "animateOnMount":      true,
//	    })
//	    h.ExpectAnimating(true)
//	    h.ExpectAttribute("class", "flash")
//
//	    h.Advance(500 * time.Millisecond)
//	    h.ExpectAnimating(false)
//	}
//
// # Events
//
// Fire delivers a DOM event to the element the instance rendered, using
// the handlers collected by the last render:
//
//	h := vtest.New(t, Card, props, animate.WithStrategy(animate.StrategySignal))
//	h.Fire("animationend")
//
// # Render Assertions
//
// The package-level helpers assert on any VNode:
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Error")
package vtest
