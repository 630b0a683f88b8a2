package vtest

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/animate/pkg/animate"
	"github.com/vango-dev/animate/pkg/render"
	"github.com/vango-dev/animate/pkg/vdom"
)

// Harness drives a single wrapped instance on a manual clock.
type Harness struct {
	t        testing.TB
	inst     *animate.Instance
	clock    *animate.ManualScheduler
	renderer *render.Renderer
	html     string
	changes  []bool
	logs     bytes.Buffer
}

// New wraps inner, builds an instance from props, and mounts it. The
// scheduler and logger options are supplied by the harness; opts may add
// anything else. The instance is disposed when the test ends.
func New(t testing.TB, inner animate.Inner, props vdom.Props, opts ...animate.Option) *Harness {
	t.Helper()
	h := &Harness{
		t:        t,
		clock:    animate.NewManualScheduler(),
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
	opts = append([]animate.Option{
		animate.WithScheduler(h.clock),
		animate.WithLogger(slog.New(slog.NewTextHandler(&h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	}, opts...)

	inst, err := animate.WithAnimation(inner, opts...)(props)
	if err != nil {
		t.Fatalf("vtest: build instance: %v", err)
	}
	h.inst = inst
	inst.OnChange(func(animating bool) { h.changes = append(h.changes, animating) })
	t.Cleanup(inst.Dispose)

	inst.Mount()
	return h
}

// Instance returns the instance under test.
func (h *Harness) Instance() *animate.Instance { return h.inst }

// Clock returns the manual scheduler driving the timer strategy.
func (h *Harness) Clock() *animate.ManualScheduler { return h.clock }

// Changes returns the animating values reported to observers so far.
func (h *Harness) Changes() []bool {
	return append([]bool(nil), h.changes...)
}

// Logs returns everything the instance logged.
func (h *Harness) Logs() string { return h.logs.String() }

// Render renders the instance and returns the HTML. The handlers collected
// during this render are the ones Fire uses.
func (h *Harness) Render() string {
	h.t.Helper()
	h.renderer.Reset()
	html, err := h.renderer.RenderToString(h.inst.Render())
	if err != nil {
		h.t.Fatalf("vtest: render: %v", err)
	}
	h.html = html
	return html
}

// Advance moves the manual clock forward and returns how many timers fired.
func (h *Harness) Advance(d time.Duration) int {
	return h.clock.Advance(d)
}

// Fire delivers event ("animationend", "click", ...) to the element
// rendered for the instance. It renders first, so the handler registry
// reflects the current state. Fire fails the test when no handler exists.
func (h *Harness) Fire(event string) {
	h.t.Helper()
	h.Render()
	hid := h.inst.Ref().HID()
	if hid == "" {
		h.t.Fatalf("vtest: instance element has no hydration ID")
	}
	handler, ok := h.renderer.Handler(hid, event)
	if !ok {
		h.t.Fatalf("vtest: no %s handler on %s", event, hid)
	}
	if !render.CallHandler(handler, nil) {
		h.t.Fatalf("vtest: unsupported handler type %T", handler)
	}
}

// HasHandler reports whether the current render registers a handler for
// event on the instance element.
func (h *Harness) HasHandler(event string) bool {
	h.t.Helper()
	h.Render()
	hid := h.inst.Ref().HID()
	if hid == "" {
		return false
	}
	_, ok := h.renderer.Handler(hid, event)
	return ok
}

// ExpectAnimating asserts the animating flag.
func (h *Harness) ExpectAnimating(want bool) {
	h.t.Helper()
	if got := h.inst.IsAnimating(); got != want {
		h.t.Errorf("animating = %v, want %v", got, want)
	}
}

// ExpectContains asserts that a fresh render contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.Render(); !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that a fresh render does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.Render(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the attribute attr of the first rendered
// element contains value. For class the match is per class name.
func (h *Harness) ExpectAttribute(attr, value string) {
	h.t.Helper()
	got, ok := firstAttr(h.Render(), attr)
	if !ok || !attrHas(attr, got, value) {
		h.t.Errorf("expected attribute %s to contain %q, got %q", attr, value, got)
	}
}

// ExpectNoAttributeValue asserts that attr of the first rendered element
// does not contain value.
func (h *Harness) ExpectNoAttributeValue(attr, value string) {
	h.t.Helper()
	got, ok := firstAttr(h.Render(), attr)
	if ok && attrHas(attr, got, value) {
		h.t.Errorf("expected attribute %s to not contain %q, got %q", attr, value, got)
	}
}

func attrHas(attr, got, value string) bool {
	if attr == "class" {
		for _, c := range strings.Fields(got) {
			if c == value {
				return true
			}
		}
		return false
	}
	return strings.Contains(got, value)
}

// firstAttr extracts the value of attr from the first tag in html.
func firstAttr(html, attr string) (string, bool) {
	end := strings.IndexByte(html, '>')
	if end < 0 {
		return "", false
	}
	tag := html[:end]
	needle := " " + attr + `="`
	i := strings.Index(tag, needle)
	if i < 0 {
		return "", false
	}
	rest := tag[i+len(needle):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// RenderToString renders a VNode and returns the HTML string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
