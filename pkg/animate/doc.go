// Package animate wraps a vdom component with a timed "animating" state.
//
// WithAnimation takes an inner component and returns a Factory. Each
// Instance it builds tracks whether an animation is in progress, appends
// the animation class to the caller's className while it is, sets the
// animationDuration inline style, and forwards every other prop and child
// to the inner component unchanged.
//
//	card := animate.WithAnimation(func(props vdom.Props, children []*vdom.VNode) *vdom.VNode {
//	    return vdom.Element("div", props, children...)
//	})
//
//	inst, err := card(vdom.Props{
//	    "animationClassName":  "flash",
//	    "animationDurationMs": 500,
//	    "className":           "card",
//	})
//	inst.Mount()
//	inst.Start() // <div class="card flash" style="animation-duration: 500ms">
//
// # Completion strategies
//
// An animation ends in one of two ways, chosen per factory with WithStrategy:
//
//   - StrategyTimer schedules a completion after the configured duration
//     through a Scheduler. Starting again first cancels any pending timer.
//   - StrategySignal waits for the host to deliver the element's native
//     animationend event, which the wrapper binds to End.
//
// Stop ends an animation early under either strategy.
//
// # Threading
//
// Hosts drive an Instance from a single event loop (see LoopScheduler). The
// Controller still serializes its own state, and every completion carries
// the generation it was scheduled for, so a timer that fires after Stop,
// a restart, or Dispose never touches the state.
package animate
