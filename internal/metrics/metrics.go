// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiftboard_http_requests_total",
		Help: "Total HTTP requests served, by method/path/status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shiftboard_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiftboard_schedule_runs_total",
		Help: "Total orchestrator runs, by outcome.",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shiftboard_schedule_run_duration_seconds",
		Help:    "Wall-clock duration of a full orchestrator run.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	generationsRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shiftboard_memetic_generations",
		Help:    "Generations consumed by the memetic loop per run.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 150, 200},
	})

	finalFitnessScore = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shiftboard_schedule_fitness_score",
		Help: "Fitness score of the most recently persisted schedule (0 is fully compliant).",
	})

	residualViolations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shiftboard_schedule_residual_violations",
		Help: "Count of residual violations in the most recently persisted schedule.",
	})
)

// Handler returns the HTTP handler that serves the Prometheus text
// exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, http.StatusText(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRun records the outcome of one orchestrator run.
func RecordRun(outcome string, duration time.Duration, generations int) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(duration.Seconds())
	generationsRun.Observe(float64(generations))
}

// SetFinalFitness publishes the most recently persisted schedule's
// fitness score and residual violation count.
func SetFinalFitness(score, violations int) {
	finalFitnessScore.Set(float64(score))
	residualViolations.Set(float64(violations))
}
