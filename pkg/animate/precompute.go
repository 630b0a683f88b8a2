package animate

import (
	"reflect"
	"time"

	"github.com/vango-dev/animate/pkg/vdom"
)

// styleCache holds the decorated style between renders. It is keyed on the
// identity of the base style map, not its contents: a new map with equal
// contents is a miss.
type styleCache struct {
	valid     bool
	baseID    uintptr
	duration  time.Duration
	animating bool
	style     vdom.Style

	recomputes int
}

// styleIdentity returns the reference identity of s. All nil maps share
// identity zero.
func styleIdentity(s vdom.Style) uintptr {
	if s == nil {
		return 0
	}
	return reflect.ValueOf(s).Pointer()
}

// stale reports whether the cached style was computed for different inputs.
func (c *styleCache) stale(base vdom.Style, animating bool, d time.Duration) bool {
	return !c.valid ||
		c.baseID != styleIdentity(base) ||
		c.duration != d ||
		c.animating != animating
}

// recompute refreshes the cached style unconditionally.
func (c *styleCache) recompute(base vdom.Style, animating bool, d time.Duration) vdom.Style {
	c.valid = true
	c.baseID = styleIdentity(base)
	c.duration = d
	c.animating = animating
	c.style = ComposeStyle(base, animating, d)
	c.recomputes++
	return c.style
}

// get returns the cached style, recomputing it only when stale.
func (c *styleCache) get(base vdom.Style, animating bool, d time.Duration) vdom.Style {
	if c.stale(base, animating, d) {
		return c.recompute(base, animating, d)
	}
	return c.style
}

// invalidate forces the next get to recompute.
func (c *styleCache) invalidate() {
	c.valid = false
}
