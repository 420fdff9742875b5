package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	evaluationsTotal *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	collectorErrors  prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dualinvest_evaluations_total",
				Help: "Total number of deal evaluations by suggested action",
			},
			[]string{"action"},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dualinvest_analysis_duration_seconds",
				Help:    "Duration of full analysis invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		collectorErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dualinvest_collector_errors_total",
				Help: "Total number of failed data-source fetches",
			},
		),
	}

	reg.MustRegister(r.evaluationsTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.collectorErrors)

	return r
}

// RecordEvaluation counts a completed evaluation by suggested action.
func (r *Registry) RecordEvaluation(action string) {
	r.evaluationsTotal.WithLabelValues(action).Inc()
}

// RecordAnalysisDuration observes one analysis invocation.
func (r *Registry) RecordAnalysisDuration(seconds float64) {
	r.analysisDuration.Observe(seconds)
}

// RecordCollectorError counts a failed fetch.
func (r *Registry) RecordCollectorError() {
	r.collectorErrors.Inc()
}
