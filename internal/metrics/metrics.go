// Package metrics exposes Prometheus instrumentation for solve runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the solve instrumentation for one registry.
type Metrics struct {
	Registry *prometheus.Registry

	SolvesTotal       *prometheus.CounterVec
	SolveDuration     prometheus.Histogram
	InfeasibleReports prometheus.Counter
}

// New creates a registry with the planner's collectors registered.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SolvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planopt_solves_total",
			Help: "Solve invocations by backend and normalized status.",
		}, []string{"solver", "status"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planopt_solve_duration_seconds",
			Help:    "Wall-clock time of solver backend searches.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		InfeasibleReports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planopt_infeasible_reports_total",
			Help: "Feasibility checks that reported an infeasible dataset.",
		}),
	}
	m.Registry.MustRegister(m.SolvesTotal, m.SolveDuration, m.InfeasibleReports)
	return m
}
