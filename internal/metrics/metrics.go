package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_critique"

var (
	// CritiquesTotal counts finished critiques by provenance (generated or fallback).
	CritiquesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "critiques_total",
		Help:      "Number of critiques produced, by source.",
	}, []string{"source"})

	// GenerationFailuresTotal counts failed generation attempts.
	GenerationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_failures_total",
		Help:      "Number of failed generation attempts, by model and retryability.",
	}, []string{"model", "retryable"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Latency of one critique generation attempt.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 45, 90},
	}, []string{"model"})
)
