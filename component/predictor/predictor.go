package predictor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

// Backend names the service family that hosts an endpoint.
type Backend string

const (
	BackendSageMaker Backend = "sagemaker"
	BackendBedrock   Backend = "bedrock"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendSageMaker:
		return BackendSageMaker, nil
	case BackendBedrock:
		return BackendBedrock, nil
	default:
		return "", errorx.UnsupportedBackend(fmt.Errorf("unknown backend %q", s), errorx.Ctx().Set("backend", s))
	}
}

// Predictor sends prompts to one endpoint and prices benchmark runs against it.
type Predictor interface {
	// Predict never panics or returns an error for remote failures, the failure
	// reason is carried by the returned result.
	Predict(ctx context.Context, payload types.PredictionPayload) types.PredictionResult
	// CalculateCost returns 0 when pricing or metrics are missing or malformed.
	CalculateCost(ctx context.Context, instanceType string, pricing *types.PricingConfig, duration time.Duration, metrics types.RunMetrics) float64
	EndpointName() string
	Backend() Backend
}
