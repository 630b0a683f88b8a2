package live

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/animate"
)

// Metrics holds the host collectors. A nil *Metrics records nothing.
type Metrics struct {
	eventsTotal       *prometheus.CounterVec
	eventDuration     *prometheus.HistogramVec
	framesSent        *prometheus.CounterVec
	activeConnections prometheus.Gauge
	wsErrors          *prometheus.CounterVec
}

// NewMetrics registers the host collectors. It accepts the same options as
// animate.NewMetrics; the subsystem defaults to "live".
//
// Metrics collected:
//   - vango_live_events_total: client events by event name and status
//   - vango_live_event_duration_seconds: handler run time by event name
//   - vango_live_frames_sent_total: frames queued to clients by type
//   - vango_live_active_connections: open WebSocket connections
//   - vango_live_websocket_errors_total: WebSocket errors by type
func NewMetrics(opts ...animate.MetricsOption) *Metrics {
	config := animate.MetricsConfig{
		Namespace: "vango",
		Subsystem: "live",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handler duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Total number of frames queued to clients",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		activeConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_connections",
			Help:        "Number of open WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

func (m *Metrics) recordEvent(event string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.eventDuration.WithLabelValues(event).Observe(elapsed.Seconds())
	m.eventsTotal.WithLabelValues(event, eventStatus(err)).Inc()
}

// eventStatus maps an event error to a low-cardinality label.
func eventStatus(err error) string {
	if err == nil {
		return "success"
	}
	switch {
	case stderrors.Is(err, errors.New("A041")):
		return "not_found"
	case stderrors.Is(err, errors.New("A022")):
		return "closed"
	default:
		return "error"
	}
}

func (m *Metrics) recordFrame(frameType string) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(frameType).Inc()
}

func (m *Metrics) connOpened() {
	if m == nil {
		return
	}
	m.activeConnections.Inc()
}

func (m *Metrics) connClosed() {
	if m == nil {
		return
	}
	m.activeConnections.Dec()
}

func (m *Metrics) recordWSError(errorType string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(errorType).Inc()
}
