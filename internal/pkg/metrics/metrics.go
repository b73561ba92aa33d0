package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счетчики и гистограммы КПП
type Metrics struct {
	// Решения КПП по исходу и причине
	CheckpointDecisions *prometheus.CounterVec

	// Длительность полного цикла распознавание + сопоставление
	CheckpointLatency prometheus.Histogram

	// Обращения к сервису распознавания по результату
	RecognizerCalls *prometheus.CounterVec
}

// New создает и регистрирует все метрики приложения
func New() *Metrics {
	return &Metrics{
		CheckpointDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crosspass_checkpoint_decisions_total",
			Help: "Total checkpoint decisions by outcome and reason",
		}, []string{"outcome", "reason"}),

		CheckpointLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crosspass_checkpoint_duration_seconds",
			Help:    "Duration of full checkpoint flow including plate recognition",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		RecognizerCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crosspass_recognizer_calls_total",
			Help: "Total plate recognizer API calls by result",
		}, []string{"result"}), // result: "ok", "no_plate", "error"
	}
}

// ObserveDecision записывает исход решения КПП
func (m *Metrics) ObserveDecision(approved bool, reason string) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if approved {
		outcome = "approved"
		reason = ""
	}
	m.CheckpointDecisions.WithLabelValues(outcome, reason).Inc()
}

// ObserveCheckpointLatency записывает длительность полного цикла КПП
func (m *Metrics) ObserveCheckpointLatency(d time.Duration) {
	if m != nil {
		m.CheckpointLatency.Observe(d.Seconds())
	}
}

// ObserveRecognizerCall записывает результат обращения к распознавателю
func (m *Metrics) ObserveRecognizerCall(result string) {
	if m != nil {
		m.RecognizerCalls.WithLabelValues(result).Inc()
	}
}
