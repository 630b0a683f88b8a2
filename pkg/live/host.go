package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/render"
	"github.com/vango-dev/animate/pkg/vdom"
)

// HostConfig configures a Host.
type HostConfig struct {
	// Title is the document title of the page served at "/".
	Title string

	// CSS is inlined into the page head. Keyframes for the animation
	// classes used by the root component belong here.
	CSS string

	// Gatherer backs the /metrics endpoint.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer

	// CheckOrigin validates WebSocket upgrade requests.
	// Default: SameOriginCheck
	CheckOrigin func(r *http.Request) bool

	// WriteTimeout bounds each WebSocket write.
	// Default: 10s
	WriteTimeout time.Duration

	// SendBuffer is the number of outgoing frames buffered per client.
	// Default: 16
	SendBuffer int

	// Metrics records host activity. Nil disables host metrics.
	Metrics *Metrics

	// Tracer opens one span per client event.
	// Default: the global OpenTelemetry tracer provider
	Tracer trace.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Title == "" {
		c.Title = "animate"
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = SameOriginCheck
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 16
	}
	if c.Tracer == nil {
		c.Tracer = defaultTracer()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Host renders a root component on a Loop and fans the HTML out to
// subscribers.
type Host struct {
	loop     *Loop
	root     vdom.Component
	config   HostConfig
	logger   *slog.Logger
	renderer *render.Renderer // loop goroutine only

	pending atomic.Bool

	mu     sync.Mutex
	html   string
	subs   map[uint64]func(html string)
	nextID uint64
}

// NewHost creates a Host for root. All renders and event handlers run on
// loop.
func NewHost(loop *Loop, root vdom.Component, config HostConfig) *Host {
	config = config.withDefaults()
	return &Host{
		loop:     loop,
		root:     root,
		config:   config,
		logger:   config.Logger.With("component", "host"),
		renderer: render.NewRenderer(render.RendererConfig{}),
		subs:     make(map[uint64]func(string)),
	}
}

// Watch re-renders the host whenever c reports a change. It returns a
// function that stops watching.
func (h *Host) Watch(c interface {
	OnChange(fn func(animating bool)) func()
}) func() {
	return c.OnChange(func(bool) { h.Invalidate() })
}

// Invalidate schedules a re-render. Calls made before the render runs are
// coalesced into one.
func (h *Host) Invalidate() {
	if h.pending.CompareAndSwap(false, true) {
		h.loop.Dispatch(func() {
			h.pending.Store(false)
			h.render()
		})
	}
}

// Render renders the root component on the loop and returns the HTML.
// Subscribers receive the result as well.
func (h *Host) Render() (string, error) {
	var (
		html string
		err  error
	)
	if doErr := h.loop.Do(func() { html, err = h.render() }); doErr != nil {
		return "", doErr
	}
	return html, err
}

// HTML returns the most recently rendered HTML without rendering.
func (h *Host) HTML() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.html
}

// render must run on the loop goroutine.
func (h *Host) render() (string, error) {
	h.renderer.Reset()
	html, err := h.renderer.RenderToString(h.root.Render())
	if err != nil {
		err = errors.New("A021").Wrap(err)
		h.logger.Error("render failed", "error", err)
		return "", err
	}

	h.mu.Lock()
	h.html = html
	subs := make([]func(string), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(html)
	}
	return html, nil
}

// Subscribe registers fn to receive every rendered HTML string. fn runs on
// the loop goroutine and must not block.
func (h *Host) Subscribe(fn func(html string)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// HandleEvent runs the handler registered for hid and event during the
// last render. event may be given with or without the "on" prefix.
func (h *Host) HandleEvent(hid, event string) (err error) {
	event = strings.TrimPrefix(event, "on")
	span := startEventSpan(h.config.Tracer, hid, event)
	start := time.Now()
	defer func() {
		h.config.Metrics.recordEvent(event, err, time.Since(start))
		endEventSpan(span, err)
	}()

	doErr := h.loop.Do(func() {
		handler, ok := h.renderer.Handler(hid, event)
		if !ok {
			err = errors.New("A041").WithDetail("no " + event + " handler on " + hid)
			return
		}
		if !render.CallHandler(handler, nil) {
			err = errors.New("A041").WithDetail("unsupported handler type for " + event + " on " + hid)
		}
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// SameOriginCheck accepts WebSocket upgrades whose Origin header matches
// the request host. Requests without an Origin header are accepted.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && originURL.Host == r.Host
}
