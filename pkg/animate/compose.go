package animate

import (
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/animate/pkg/vdom"
)

// AnimationDurationStyle is the style property carrying the duration.
const AnimationDurationStyle = "animationDuration"

// consumedProps are wrapper props that are never forwarded.
var consumedProps = map[string]bool{
	PropAnimationClassName:  true,
	PropAnimationDurationMs: true,
	PropAnimateOnMount:      true,
	PropInstanceRef:         true,
	vdom.ClassNameKey:       true,
	vdom.StyleKey:           true,
}

// ComposeClassName returns base followed by animationClass while animating,
// joined by a single space. When not animating base is returned unchanged.
func ComposeClassName(base string, animating bool, animationClass string) string {
	if !animating {
		return base
	}
	base = strings.TrimSpace(base)
	animationClass = strings.TrimSpace(animationClass)
	switch {
	case base == "":
		return animationClass
	case animationClass == "":
		return base
	}
	return base + " " + animationClass
}

// ComposeStyle returns a shallow copy of base with the animationDuration
// property set to "{ms}ms" while animating and explicitly cleared (nil)
// otherwise, so it overrides a previously applied duration.
func ComposeStyle(base vdom.Style, animating bool, d time.Duration) vdom.Style {
	out := base.Clone()
	if animating {
		out[AnimationDurationStyle] = FormatDuration(d)
	} else {
		out[AnimationDurationStyle] = nil
	}
	return out
}

// FormatDuration renders d as a CSS millisecond time value.
func FormatDuration(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64) + "ms"
}

// ComposeProps builds the props handed to the inner component: every
// incoming prop except the wrapper's own, className and style replaced by
// the derived values, the element ref attached, and onEnd bound to the
// animationend event when non-nil. A caller-supplied animationend handler
// is kept and runs after onEnd.
func ComposeProps(in vdom.Props, className string, style vdom.Style, ref *vdom.ElementRef, onEnd func()) vdom.Props {
	out := make(vdom.Props, len(in)+3)
	for k, v := range in {
		if consumedProps[k] {
			continue
		}
		out[k] = v
	}

	if className != "" {
		out[vdom.ClassNameKey] = className
	}
	if style != nil {
		out[vdom.StyleKey] = style
	}
	if ref != nil {
		out[vdom.RefKey] = ref
	}
	if onEnd != nil {
		out[vdom.EventAnimationEnd] = mergeHandlers(onEnd, out[vdom.EventAnimationEnd])
	}
	return out
}

// mergeHandlers combines ours with an existing handler value the way
// repeated hook handlers are merged: a single value becomes a slice.
func mergeHandlers(ours func(), existing any) any {
	switch v := existing.(type) {
	case nil:
		return ours
	case []any:
		return append([]any{ours}, v...)
	default:
		return []any{ours, v}
	}
}
