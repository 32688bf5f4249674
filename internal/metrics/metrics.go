// Package metrics exposes Prometheus instruments for the game core.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

var (
	generateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make24_generate_total",
		Help: "Puzzle generations by result",
	}, []string{"result"})

	generateAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "make24_generate_attempts",
		Help:    "Quadruples drawn before a solvable one was accepted",
		Buckets: []float64{1, 2, 3, 5, 10, 25, 100, 1000, 10000},
	})

	solvableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make24_solvability_checks_total",
		Help: "Solvability checks requested directly, by answer",
	}, []string{"solvable"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "make24_search_duration_seconds",
		Help:    "Wall time of a generation or solvability search",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	})

	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make24_evaluations_total",
		Help: "Expression evaluations by outcome",
	}, []string{"outcome"})

	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make24_checks_total",
		Help: "Answer checks by correctness",
	}, []string{"correct"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make24_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "code"})
)

// Generation results.
const (
	ResultOK        = "ok"
	ResultExhausted = "exhausted"
	ResultError     = "error"
)

func ObserveGenerate(result string, st ports.Stats) {
	generateTotal.WithLabelValues(result).Inc()
	if result == ResultOK {
		generateAttempts.Observe(float64(st.Attempts))
	}
	searchDuration.Observe(st.Duration.Seconds())
}

func ObserveSolvable(ok bool, st ports.Stats) {
	solvableTotal.WithLabelValues(strconv.FormatBool(ok)).Inc()
	searchDuration.Observe(st.Duration.Seconds())
}

func ObserveEvaluation(o domain.Outcome) {
	label := "valid"
	if !o.Valid {
		label = string(o.Reason)
	}
	evaluationsTotal.WithLabelValues(label).Inc()
}

func ObserveCheck(correct bool) {
	checksTotal.WithLabelValues(strconv.FormatBool(correct)).Inc()
}
