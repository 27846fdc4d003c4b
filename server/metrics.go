package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
)

// metrics holds the server's Prometheus collectors. Each Server owns its
// own registry so several servers can coexist in one process.
type metrics struct {
	registry     *prometheus.Registry
	panelUpdates *prometheus.CounterVec
	emptyPanels  *prometheus.CounterVec
	sessions     prometheus.Gauge
	rateLimited  prometheus.Counter
	requests     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		panelUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "panel_updates_total",
			Help:      "Chart panels computed, on session start and after each control change.",
		}, []string{"panel"}),
		emptyPanels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "empty_panels_total",
			Help:      "Panel computations that produced a chart with no points.",
		}, []string{"panel"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "launchdash",
			Name:      "sessions_active",
			Help:      "Browser sessions currently held in memory.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
	m.registry.MustRegister(
		m.panelUpdates,
		m.emptyPanels,
		m.sessions,
		m.rateLimited,
		m.requests,
		collectors.NewGoCollector(),
	)
	return m
}

// observe is registered on every session with Session.OnRender.
func (m *metrics) observe(panel dashboard.PanelID, chart *engine.ChartConfig) {
	m.panelUpdates.WithLabelValues(string(panel)).Inc()
	if chart.PointCount() == 0 {
		m.emptyPanels.WithLabelValues(string(panel)).Inc()
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
