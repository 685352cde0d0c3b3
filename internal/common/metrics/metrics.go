// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TriageVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_verdicts_total",
			Help: "Total number of triage verdicts by level and source",
		},
		[]string{"level", "source"},
	)

	RuleOverrides = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_rule_overrides_total",
			Help: "Red-flag rule matches that bypassed model classification",
		},
		[]string{"rule"},
	)

	DroppedAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_dropped_answers_total",
			Help: "Answers discarded at ingestion",
		},
		[]string{"reason"},
	)

	ModelFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_model_fallbacks_total",
			Help: "Classifications that resolved to the precautionary fallback verdict",
		},
		[]string{"reason"},
	)

	ModelInferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_model_inference_duration_seconds",
			Help:    "Duration of generative model calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	ModelInferenceActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_model_inference_active",
			Help: "Number of in-flight model inferences",
		},
	)

	ClassificationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_classification_cache_total",
			Help: "Classification cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "triage_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route", "method", "status"},
	)
)
