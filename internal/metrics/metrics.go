// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incident_commander"

var (
	// StageDuration - 단계별 소요 시간 (invoke + extract)
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of a single analysis stage.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 4, 9),
	}, []string{"stage"})

	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_failures_total",
		Help:      "Number of analyses aborted at a given stage.",
	}, []string{"stage"})

	// ExtractionLayer - 레코드를 복원한 추출 단계 (direct, fenced, fallback, failed)
	ExtractionLayer = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extraction_total",
		Help:      "Structured record extractions by winning layer.",
	}, []string{"layer"})

	Analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Completed analyses by outcome.",
	}, []string{"status"})

	activeBackend = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "llm_backend_active",
		Help:      "Backend selected at invoker construction (1 = active).",
	}, []string{"backend"})
)

// SetActiveBackend - 선택된 백엔드만 1로 표시
func SetActiveBackend(backend string) {
	activeBackend.Reset()
	activeBackend.WithLabelValues(backend).Set(1)
}
