package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"opencsg.com/fmbench/builder/bedrock"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

var _ Predictor = (*bedrockPredictorImpl)(nil)

type bedrockPredictorImpl struct {
	endpointName string
	// <service>/<endpoint>
	model         string
	kind          types.ModelKind
	inferenceSpec *types.InferenceSpec
	// nil when the runtime client could not be created
	client bedrock.ModelClient
}

// NewBedrockPredictor wraps a managed model. A nil client leaves the predictor
// usable, every prediction then fails with ErrPredictorNotReady.
func NewBedrockPredictor(serviceName, endpointName string, kind types.ModelKind, spec *types.InferenceSpec, client bedrock.ModelClient) Predictor {
	if serviceName == "" {
		serviceName = bedrock.DefaultServiceName
	}
	return &bedrockPredictorImpl{
		endpointName:  endpointName,
		model:         serviceName + "/" + endpointName,
		kind:          kind,
		inferenceSpec: spec,
		client:        client,
	}
}

func (p *bedrockPredictorImpl) EndpointName() string {
	return p.endpointName
}

func (p *bedrockPredictorImpl) Backend() Backend {
	return BackendBedrock
}

func (p *bedrockPredictorImpl) Kind() types.ModelKind {
	return p.kind
}

func (p *bedrockPredictorImpl) Predict(ctx context.Context, payload types.PredictionPayload) types.PredictionResult {
	errCtx := errorx.Ctx().Set("endpoint_name", p.endpointName)
	inputs, ok := payload.Inputs()
	if !ok {
		slog.ErrorContext(ctx, "payload has no inputs", slog.String("endpoint_name", p.endpointName))
		return types.PredictionFailure(errorx.ErrMissingInputs)
	}
	if p.client == nil {
		slog.ErrorContext(ctx, "predictor is not ready", slog.String("endpoint_name", p.endpointName))
		return types.PredictionFailure(errorx.PredictorNotReady(nil, errCtx))
	}

	slog.DebugContext(ctx, "invoking model", slog.String("model", p.model), slog.String("kind", p.kind.String()))
	switch p.kind {
	case types.ModelKindEmbedding:
		return p.predictEmbedding(ctx, types.InputText(inputs), errCtx)
	default:
		return p.predictCompletion(ctx, types.InputText(inputs), payload.Parameters(), errCtx)
	}
}

func (p *bedrockPredictorImpl) predictCompletion(ctx context.Context, prompt string, params map[string]any, errCtx map[string]any) types.PredictionResult {
	resp, err := p.client.Completion(ctx, bedrock.CompletionRequest{
		Model:      p.model,
		Prompt:     prompt,
		Parameters: params,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get completion", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return types.PredictionFailure(errorx.InvokeFailed(err, errCtx))
	}

	var generated string
	found := false
	for _, choice := range resp.Completion.Choices {
		if choice.Message.Content != "" {
			generated = choice.Message.Content
			found = true
			break
		}
	}
	if !found {
		slog.ErrorContext(ctx, "completion has no content", slog.String("endpoint_name", p.endpointName), slog.Int("choices", len(resp.Completion.Choices)))
		return types.PredictionFailure(errorx.EmptyResponse(nil, errCtx))
	}

	return types.PredictionSuccess(types.PredictionResponse{
		ResponseJSON:     map[string]any{types.ResponseGeneratedTextKey: generated},
		GeneratedText:    generated,
		Latency:          resp.Latency,
		PromptTokens:     resp.Completion.Usage.PromptTokens,
		CompletionTokens: resp.Completion.Usage.CompletionTokens,
	})
}

func (p *bedrockPredictorImpl) predictEmbedding(ctx context.Context, input string, errCtx map[string]any) types.PredictionResult {
	resp, err := p.client.Embedding(ctx, bedrock.EmbeddingRequest{
		Model: p.model,
		Input: input,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to get embedding", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return types.PredictionFailure(errorx.InvokeFailed(err, errCtx))
	}
	if len(resp.Embedding.Data) == 0 {
		return types.PredictionFailure(errorx.EmptyResponse(errors.New("no embedding returned"), errCtx))
	}

	vector, err := json.Marshal(resp.Embedding.Data[0].Embedding)
	if err != nil {
		return types.PredictionFailure(errorx.MalformedResponse(err, errCtx))
	}
	generated := string(vector)
	usage := resp.Embedding.Usage
	// embeddings have no completion, the total is reported in its place
	return types.PredictionSuccess(types.PredictionResponse{
		ResponseJSON:     map[string]any{types.ResponseGeneratedTextKey: generated},
		GeneratedText:    generated,
		Latency:          resp.Latency,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.TotalTokens,
	})
}

// CalculateCost prices the run per 1k prompt and completion tokens, summed over
// every pricing entry of instanceType.
func (p *bedrockPredictorImpl) CalculateCost(ctx context.Context, instanceType string, pricing *types.PricingConfig, _ time.Duration, metrics types.RunMetrics) float64 {
	promptTokens, completionTokens, err := metrics.TokenCounts()
	if err != nil {
		slog.WarnContext(ctx, "no token metrics, cost is 0", slog.String("endpoint_name", p.endpointName), slog.Any("error", err))
		return 0
	}
	rates, err := pricing.TokenRates(instanceType)
	if err != nil {
		slog.WarnContext(ctx, "no token pricing, cost is 0", slog.String("instance_type", instanceType), slog.Any("error", err))
		return 0
	}

	var inputCost, outputCost float64
	for _, rate := range rates {
		inputCost += promptTokens / 1000 * rate.InputPer1K
		outputCost += completionTokens / 1000 * rate.OutputPer1K
	}
	slog.InfoContext(ctx, "token pricing", slog.String("endpoint_name", p.endpointName), slog.String("instance_type", instanceType),
		slog.Float64("input_cost", inputCost), slog.Float64("output_cost", outputCost))
	return inputCost + outputCost
}
