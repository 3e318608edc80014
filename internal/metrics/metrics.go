// Package metrics provides Prometheus metrics for intellidoc.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the document assistant.
type Metrics struct {
	// Session lifecycle
	SessionsCreated prometheus.Counter
	SessionsDeleted prometheus.Counter
	SessionsEvicted prometheus.Counter
	SessionsActive  prometheus.Gauge

	// Question answering
	QuestionsTotal  *prometheus.CounterVec
	FallbacksTotal  prometheus.Counter
	AnswerDuration  *prometheus.HistogramVec

	// Derived outputs
	SummariesTotal  *prometheus.CounterVec
	FlashcardsTotal prometheus.Counter
}

// New creates all collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in production; tests can use a
// fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{}

	m.SessionsCreated = factory.NewCounter(prometheus.CounterOpts{
		Name: "intellidoc_sessions_created_total",
		Help: "Total number of document sessions created",
	})

	m.SessionsDeleted = factory.NewCounter(prometheus.CounterOpts{
		Name: "intellidoc_sessions_deleted_total",
		Help: "Total number of document sessions deleted by request",
	})

	m.SessionsEvicted = factory.NewCounter(prometheus.CounterOpts{
		Name: "intellidoc_sessions_evicted_total",
		Help: "Total number of sessions evicted by the capacity bound",
	})

	m.SessionsActive = factory.NewGauge(prometheus.GaugeOpts{
		Name: "intellidoc_sessions_active",
		Help: "Number of sessions currently held in memory",
	})

	m.QuestionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "intellidoc_questions_total",
		Help: "Total number of questions answered",
	}, []string{"path", "status"})

	m.FallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "intellidoc_remote_fallbacks_total",
		Help: "Total number of remote answers that fell back to local retrieval",
	})

	m.AnswerDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intellidoc_answer_duration_seconds",
		Help:    "Duration of question answering in seconds",
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"path"})

	m.SummariesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "intellidoc_summaries_total",
		Help: "Total number of summaries produced",
	}, []string{"mode"})

	m.FlashcardsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "intellidoc_flashcards_total",
		Help: "Total number of flashcards generated",
	})

	return m
}

// RecordQuestion records an answered question with its retrieval path.
func (m *Metrics) RecordQuestion(path, status string, duration time.Duration) {
	m.QuestionsTotal.WithLabelValues(path, status).Inc()
	m.AnswerDuration.WithLabelValues(path).Observe(duration.Seconds())
}
