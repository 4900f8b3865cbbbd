package instrumentation

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fmbench"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	TokenKindPrompt     = "prompt"
	TokenKindCompletion = "completion"
)

// Metrics holds the prediction and cost collectors of one process.
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	tokens      *prometheus.CounterVec
	cost        *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Number of predictions by backend, endpoint and outcome",
		}, []string{"backend", "endpoint", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_latency_seconds",
			Help:      "Latency of successful predictions",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"backend", "endpoint"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Number of prompt and completion tokens",
		}, []string{"backend", "endpoint", "kind"}),
		cost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_cost_dollars",
			Help:      "Last calculated cost of a benchmark run",
		}, []string{"backend", "endpoint"}),
	}
	registry.MustRegister(
		m.predictions,
		m.latency,
		m.tokens,
		m.cost,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObservePrediction(backend, endpoint string, latency time.Duration, promptTokens, completionTokens int64) {
	m.predictions.WithLabelValues(backend, endpoint, OutcomeSuccess).Inc()
	m.latency.WithLabelValues(backend, endpoint).Observe(latency.Seconds())
	m.tokens.WithLabelValues(backend, endpoint, TokenKindPrompt).Add(float64(promptTokens))
	m.tokens.WithLabelValues(backend, endpoint, TokenKindCompletion).Add(float64(completionTokens))
}

func (m *Metrics) ObserveFailure(backend, endpoint string) {
	m.predictions.WithLabelValues(backend, endpoint, OutcomeFailure).Inc()
}

func (m *Metrics) SetCost(backend, endpoint string, cost float64) {
	m.cost.WithLabelValues(backend, endpoint).Set(cost)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
