// Package metrics provides Prometheus metrics collection for the bench.
package metrics

import (
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the bench's Prometheus collectors; the engine updates the
// tick and bus-log collectors each tick. It implements core.MetricsRecorder so it can be wired into
// core.New via core.WithMetrics without core importing Prometheus directly.
type Recorder struct {
	TickDuration  prometheus.Histogram
	TicksTotal    prometheus.Counter
	BusLogLength  prometheus.Gauge
	FaultsTotal   *prometheus.CounterVec
	AEBTriggered  prometheus.Counter
	SecurityAlerts *prometheus.CounterVec
}

// New creates a Recorder registered against the default Prometheus registry.
func New(benchName string) *Recorder {
	return NewWithRegistry(benchName, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Recorder against a specific registry (tests use
// a throwaway prometheus.NewRegistry() to avoid collisions across runs).
func NewWithRegistry(benchName string, registerer prometheus.Registerer) *Recorder {
	r := &Recorder{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vvtb_tick_duration_seconds",
			Help:    "Wall-clock duration of one engine.Step() call",
			Buckets: prometheus.DefBuckets,
		}),
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vvtb_ticks_total",
			Help: "Total number of engine ticks executed",
		}),
		BusLogLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vvtb_bus_log_length",
			Help: "Current length of the bus ring log",
		}),
		FaultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vvtb_faults_applied_total",
			Help: "Total number of faults applied by kind",
		}, []string{"kind"}),
		AEBTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vvtb_aeb_triggered_total",
			Help: "Total number of AEB trigger events",
		}),
		SecurityAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vvtb_security_alerts_total",
			Help: "Total number of gateway security alerts by type",
		}, []string{"type"}),
	}

	if registerer != nil {
		registerer.MustRegister(
			r.TickDuration,
			r.TicksTotal,
			r.BusLogLength,
			r.FaultsTotal,
			r.AEBTriggered,
			r.SecurityAlerts,
		)
	}

	return r
}

// ObserveTick implements core.MetricsRecorder.
func (r *Recorder) ObserveTick(d time.Duration) {
	r.TickDuration.Observe(d.Seconds())
	r.TicksTotal.Inc()
}

// ObserveBusLog implements core.MetricsRecorder.
func (r *Recorder) ObserveBusLog(length int) {
	r.BusLogLength.Set(float64(length))
}

// RecordFault increments the fault counter for the given kind.
func (r *Recorder) RecordFault(kind string) {
	r.FaultsTotal.WithLabelValues(kind).Inc()
}

// RecordAEBTriggered increments the AEB trigger counter.
func (r *Recorder) RecordAEBTriggered() {
	r.AEBTriggered.Inc()
}

// RecordSecurityAlert increments the security alert counter for a type.
func (r *Recorder) RecordSecurityAlert(alertType string) {
	r.SecurityAlerts.WithLabelValues(alertType).Inc()
}

// Enabled returns whether Prometheus metrics should be exposed, driven by
// the METRICS_ENABLED environment variable (defaults to enabled).
func Enabled() bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("METRICS_ENABLED")))
	if raw == "" {
		return true
	}
	switch raw {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
