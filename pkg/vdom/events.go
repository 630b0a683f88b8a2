package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// Prop keys for the animation events.
const (
	EventAnimationStart     = "onanimationstart"
	EventAnimationEnd       = "onanimationend"
	EventAnimationIteration = "onanimationiteration"
	EventAnimationCancel    = "onanimationcancel"
)

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnAnimationStart handles animationstart events.
func OnAnimationStart(handler any) EventHandler { return event("animationstart", handler) }

// OnAnimationEnd handles animationend events.
func OnAnimationEnd(handler any) EventHandler { return event("animationend", handler) }

// OnAnimationIteration handles animationiteration events.
func OnAnimationIteration(handler any) EventHandler { return event("animationiteration", handler) }

// OnAnimationCancel handles animationcancel events.
func OnAnimationCancel(handler any) EventHandler { return event("animationcancel", handler) }

// OnTransitionEnd handles transitionend events.
func OnTransitionEnd(handler any) EventHandler { return event("transitionend", handler) }
