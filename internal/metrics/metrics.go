// Package metrics holds the Prometheus instruments of the health-check and
// lineage endpoints. All methods are nil-safe so components can run without
// instrumentation in tests.
package metrics

import (
	"time"

	"datatrail/internal/domain/healthcheck"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "datatrail"

type Metrics struct {
	AuditsTotal       *prometheus.CounterVec
	AuditDuration     prometheus.Histogram
	UnhealthyJobs     *prometheus.GaugeVec
	MissingTimestamps *prometheus.GaugeVec
	DroppedJobs       *prometheus.GaugeVec
	CacheLookups      *prometheus.CounterVec
	HighlightedEdges  prometheus.Histogram
	WarmRunsTotal     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AuditsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "audits_total",
			Help:      "Completeness audits by outcome",
		}, []string{"result"}),
		AuditDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "audit_duration_seconds",
			Help:      "Duration of a completeness audit including observation lookups",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		UnhealthyJobs: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "unhealthy_jobs",
			Help:      "Jobs with at least one missing reporting window in the last audit",
		}, []string{"product"}),
		MissingTimestamps: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "missing_timestamps",
			Help:      "Missing reporting windows in the last audit",
		}, []string{"product", "frequency"}),
		DroppedJobs: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "dropped_jobs",
			Help:      "Jobs skipped by the last audit because of an unrecognized frequency",
		}, []string{"product"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "healthcheck",
			Name:      "cache_lookups_total",
			Help:      "Health-check cache lookups by result",
		}, []string{"result"}),
		HighlightedEdges: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lineage",
			Name:      "highlighted_edges",
			Help:      "Ancestor edges returned per highlight",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		WarmRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "warmer",
			Name:      "runs_total",
			Help:      "Background health-check warm runs by outcome",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveAudit(product string, report healthcheck.Report, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.AuditDuration.Observe(took.Seconds())
	if err != nil {
		m.AuditsTotal.WithLabelValues("error").Inc()
		return
	}
	m.AuditsTotal.WithLabelValues("ok").Inc()

	unhealthy := 0
	missing := map[healthcheck.Frequency]int{healthcheck.FrequencyDaily: 0, healthcheck.FrequencyHourly: 0}
	for _, r := range report.Results {
		if !r.Healthy() {
			unhealthy++
		}
		missing[r.Frequency] += len(r.MissingTimestamps)
	}
	m.UnhealthyJobs.WithLabelValues(product).Set(float64(unhealthy))
	for freq, n := range missing {
		m.MissingTimestamps.WithLabelValues(product, string(freq)).Set(float64(n))
	}
	m.DroppedJobs.WithLabelValues(product).Set(float64(report.DroppedJobs))
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveHighlight(edges int) {
	if m == nil {
		return
	}
	m.HighlightedEdges.Observe(float64(edges))
}

func (m *Metrics) ObserveWarmRun(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.WarmRunsTotal.WithLabelValues("error").Inc()
		return
	}
	m.WarmRunsTotal.WithLabelValues("ok").Inc()
}
