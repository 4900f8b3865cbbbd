package predictor

import (
	"context"
	"time"

	"opencsg.com/fmbench/builder/instrumentation"
	"opencsg.com/fmbench/common/log"
	"opencsg.com/fmbench/common/types"
)

var _ Predictor = (*instrumentedPredictor)(nil)

type instrumentedPredictor struct {
	Predictor
	metrics *instrumentation.Metrics
}

// NewInstrumentedPredictor reports the predictions and run cost of p to m.
func NewInstrumentedPredictor(p Predictor, m *instrumentation.Metrics) Predictor {
	return &instrumentedPredictor{Predictor: p, metrics: m}
}

func (p *instrumentedPredictor) Predict(ctx context.Context, payload types.PredictionPayload) types.PredictionResult {
	ctx = log.WithEndpoint(ctx, p.EndpointName())
	result := p.Predictor.Predict(ctx, payload)
	backend := string(p.Backend())
	resp, ok := result.Response()
	if !ok {
		p.metrics.ObserveFailure(backend, p.EndpointName())
		return result
	}
	p.metrics.ObservePrediction(backend, p.EndpointName(), resp.Latency, resp.PromptTokens, resp.CompletionTokens)
	return result
}

func (p *instrumentedPredictor) CalculateCost(ctx context.Context, instanceType string, pricing *types.PricingConfig, duration time.Duration, metrics types.RunMetrics) float64 {
	cost := p.Predictor.CalculateCost(ctx, instanceType, pricing, duration, metrics)
	p.metrics.SetCost(string(p.Backend()), p.EndpointName(), cost)
	return cost
}
