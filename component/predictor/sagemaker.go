package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/tokenizer"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

var _ Predictor = (*sageMakerPredictorImpl)(nil)

type sageMakerPredictorImpl struct {
	endpointName  string
	inferenceSpec *types.InferenceSpec
	// nil when the runtime client could not be created
	invoker   sagemaker.Invoker
	tokenizer tokenizer.Tokenizer
}

// NewSageMakerPredictor wraps an endpoint hosted on dedicated instances. A nil
// invoker leaves the predictor usable, every prediction then fails with
// ErrPredictorNotReady.
func NewSageMakerPredictor(endpointName string, spec *types.InferenceSpec, invoker sagemaker.Invoker, tok tokenizer.Tokenizer) Predictor {
	if tok == nil {
		tok = &tokenizer.WordTokenizer{}
	}
	return &sageMakerPredictorImpl{
		endpointName:  endpointName,
		inferenceSpec: spec,
		invoker:       invoker,
		tokenizer:     tok,
	}
}

func (p *sageMakerPredictorImpl) EndpointName() string {
	return p.endpointName
}

func (p *sageMakerPredictorImpl) Backend() Backend {
	return BackendSageMaker
}

func (p *sageMakerPredictorImpl) splitInputAndParameters() bool {
	return p.inferenceSpec != nil && p.inferenceSpec.SplitInputAndParameters
}

func (p *sageMakerPredictorImpl) Predict(ctx context.Context, payload types.PredictionPayload) types.PredictionResult {
	errCtx := errorx.Ctx().Set("endpoint_name", p.endpointName)
	inputs, ok := payload.Inputs()
	if !ok {
		slog.ErrorContext(ctx, "payload has no inputs", slog.String("endpoint_name", p.endpointName))
		return types.PredictionFailure(errorx.ErrMissingInputs)
	}
	if p.invoker == nil {
		slog.ErrorContext(ctx, "predictor is not ready", slog.String("endpoint_name", p.endpointName))
		return types.PredictionFailure(errorx.PredictorNotReady(nil, errCtx))
	}

	promptTokens, err := p.tokenizer.Encode(ctx, types.InputText(inputs))
	if err != nil {
		slog.ErrorContext(ctx, "failed to count prompt tokens", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return types.PredictionFailure(errorx.TokenizeFailed(err, errCtx))
	}

	var body []byte
	start := time.Now()
	if p.splitInputAndParameters() {
		body, err = p.invoker.Predict(ctx, inputs, payload.Parameters())
	} else {
		body, err = p.invoker.Predict(ctx, map[string]any(payload), nil)
	}
	latency := time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get prediction", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return types.PredictionFailure(errorx.InvokeFailed(err, errCtx))
	}

	respJSON, err := normalizeResponse(body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse prediction response", slog.String("endpoint_name", p.endpointName),
			slog.String("response", string(body)), slog.Any("error", err))
		return types.PredictionFailure(err)
	}
	text, ok := respJSON[types.ResponseGeneratedTextKey]
	if !ok || text == nil {
		slog.ErrorContext(ctx, "prediction response has no generated text", slog.String("endpoint_name", p.endpointName),
			slog.String("response", string(body)))
		return types.PredictionFailure(errorx.EmptyResponse(nil, errCtx))
	}
	generated := types.InputText(text)

	completionTokens, err := p.tokenizer.Encode(ctx, generated)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count completion tokens", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return types.PredictionFailure(errorx.TokenizeFailed(err, errCtx))
	}

	return types.PredictionSuccess(types.PredictionResponse{
		ResponseJSON:     respJSON,
		GeneratedText:    generated,
		Latency:          latency,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	})
}

// normalizeResponse parses an endpoint response. A list response is reduced to
// its first element and predicted_label is exposed as generated_text.
func normalizeResponse(body []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errorx.MalformedResponse(err, nil)
	}
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return nil, errorx.MalformedResponse(errors.New("response is an empty list"), nil)
		}
		raw = list[0]
	}
	respJSON, ok := raw.(map[string]any)
	if !ok {
		return nil, errorx.MalformedResponse(fmt.Errorf("unexpected response type %T", raw), nil)
	}
	if v, ok := respJSON[types.ResponseGeneratedTextKey]; !ok || v == nil {
		if label, ok := respJSON[types.ResponsePredictedLabelKey]; ok && label != nil {
			respJSON[types.ResponseGeneratedTextKey] = label
		}
	}
	return respJSON, nil
}

// CalculateCost prices the run by the hourly rate of instanceType.
func (p *sageMakerPredictorImpl) CalculateCost(ctx context.Context, instanceType string, pricing *types.PricingConfig, duration time.Duration, _ types.RunMetrics) float64 {
	hourlyRate, err := pricing.HourlyRate(instanceType)
	if err != nil {
		slog.WarnContext(ctx, "no hourly rate, cost is 0", slog.String("instance_type", instanceType), slog.Any("error", err))
		return 0
	}
	costPerSecond := hourlyRate / 3600
	slog.InfoContext(ctx, "instance pricing", slog.String("endpoint_name", p.endpointName), slog.String("instance_type", instanceType),
		slog.Float64("hourly_rate", hourlyRate), slog.Float64("cost_per_second", costPerSecond))
	return costPerSecond * duration.Seconds()
}
