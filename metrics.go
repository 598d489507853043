package devtobadge

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "devtobadge"

// Render outcomes.
const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeUpstream = "upstream_error"
	outcomeError    = "error"
)

type metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	missingAssets  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "badge_renders_total",
				Help:      "Badge requests by outcome",
			},
			[]string{"outcome"},
		),
		renderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "badge_render_duration_seconds",
				Help:      "Time spent building a badge, upstream fetches included",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		missingAssets: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "badge_missing_assets_total",
				Help:      "Images that could not be embedded and were left out",
			},
			[]string{"asset"},
		),
	}
}

func (m *metrics) observe(outcome string, start time.Time) {
	m.renders.WithLabelValues(outcome).Inc()
	m.renderDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func (m *metrics) missing(assets []string) {
	for _, a := range assets {
		m.missingAssets.WithLabelValues(a).Inc()
	}
}
