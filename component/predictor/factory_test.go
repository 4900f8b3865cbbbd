package predictor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mockbedrock "opencsg.com/fmbench/_mocks/opencsg.com/fmbench/builder/bedrock"
	mocksm "opencsg.com/fmbench/_mocks/opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/bedrock"
	"opencsg.com/fmbench/builder/instrumentation"
	"opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/tokenizer"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
	"opencsg.com/fmbench/component/predictor"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Bedrock.ServiceName = "bedrock"
	cfg.SageMaker.ContentType = "application/json"
	cfg.SageMaker.Accept = "application/json"
	return cfg
}

func staticAWSConfig(ctx context.Context) (aws.Config, error) {
	return aws.Config{Region: "us-west-2"}, nil
}

func TestParseBackend(t *testing.T) {
	b, err := predictor.ParseBackend("SageMaker")
	require.NoError(t, err)
	require.Equal(t, predictor.BackendSageMaker, b)

	b, err = predictor.ParseBackend(" bedrock ")
	require.NoError(t, err)
	require.Equal(t, predictor.BackendBedrock, b)

	_, err = predictor.ParseBackend("vertex")
	require.ErrorIs(t, err, errorx.ErrUnsupportedBackend)
}

func TestFactory_Kind(t *testing.T) {
	f := predictor.NewFactory(testConfig())
	for _, m := range config.DefaultEmbeddingModels {
		require.Equal(t, types.ModelKindEmbedding, f.Kind(m))
	}
	require.Equal(t, types.ModelKindCompletion, f.Kind("anthropic.claude-v2"))
	require.Equal(t, types.ModelKindCompletion, f.Kind("meta.llama2-13b-chat-v1"))

	cfg := testConfig()
	cfg.Bedrock.EmbeddingModels = []string{"amazon.titan-embed-text-v2:0"}
	f = predictor.NewFactory(cfg)
	require.Equal(t, types.ModelKindEmbedding, f.Kind("amazon.titan-embed-text-v2:0"))
	require.Equal(t, types.ModelKindCompletion, f.Kind("amazon.titan-embed-text-v1"))
}

func TestFactory_CreateSageMaker(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)
	f := predictor.NewFactory(testConfig(),
		predictor.WithAWSConfigLoader(staticAWSConfig),
		predictor.WithTokenizer(&tokenizer.CharTokenizer{}),
		predictor.WithSageMakerRuntime(func(aws.Config) sagemaker.InvokeEndpointAPI { return api }),
	)

	p, err := f.Create(context.Background(), predictor.BackendSageMaker, "llama-ep", nil)
	require.NoError(t, err)
	require.Equal(t, "llama-ep", p.EndpointName())

	api.On("InvokeEndpoint", mock.Anything, mock.MatchedBy(func(in *sagemakerruntime.InvokeEndpointInput) bool {
		return *in.EndpointName == "llama-ep"
	})).Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`[{"generated_text":"ok"}]`)}, nil).Once()

	resp, ok := p.Predict(context.Background(), types.PredictionPayload{"inputs": "hi"}).Response()
	require.True(t, ok)
	require.Equal(t, "ok", resp.GeneratedText)
	require.Equal(t, int64(2), resp.PromptTokens)
}

func TestFactory_CreateBedrockEmbedding(t *testing.T) {
	api := mockbedrock.NewMockRuntimeAPI(t)
	f := predictor.NewFactory(testConfig(),
		predictor.WithAWSConfigLoader(staticAWSConfig),
		predictor.WithBedrockRuntime(func(aws.Config) bedrock.RuntimeAPI { return api }),
	)

	p, err := f.Create(context.Background(), predictor.BackendBedrock, "amazon.titan-embed-text-v1", nil)
	require.NoError(t, err)

	api.On("InvokeModel", mock.Anything, mock.MatchedBy(func(in *bedrockruntime.InvokeModelInput) bool {
		return *in.ModelId == "amazon.titan-embed-text-v1"
	}), mock.Anything).Return(&bedrockruntime.InvokeModelOutput{
		Body: []byte(`{"embedding":[1,2],"inputTextTokenCount":3}`),
	}, nil).Once()

	resp, ok := p.Predict(context.Background(), types.PredictionPayload{"inputs": "embed me please"}).Response()
	require.True(t, ok)
	require.Equal(t, "[1,2]", resp.GeneratedText)
	require.Equal(t, int64(3), resp.CompletionTokens)
}

func TestFactory_CreateFailSoft(t *testing.T) {
	f := predictor.NewFactory(testConfig(),
		predictor.WithAWSConfigLoader(func(ctx context.Context) (aws.Config, error) {
			return aws.Config{}, errors.New("no credentials")
		}),
	)

	for _, backend := range []predictor.Backend{predictor.BackendSageMaker, predictor.BackendBedrock} {
		p, err := f.Create(context.Background(), backend, "some-endpoint", nil)
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, "some-endpoint", p.EndpointName())
		require.ErrorIs(t, p.Predict(context.Background(), types.PredictionPayload{"inputs": "x"}).Err(), errorx.ErrPredictorNotReady)
	}

	_, err := f.Create(context.Background(), predictor.Backend("vertex"), "ep", nil)
	require.ErrorIs(t, err, errorx.ErrUnsupportedBackend)
}

func TestFactory_CreateInstrumented(t *testing.T) {
	metrics := instrumentation.NewMetrics()
	f := predictor.NewFactory(testConfig(),
		predictor.WithAWSConfigLoader(func(ctx context.Context) (aws.Config, error) {
			return aws.Config{}, errors.New("no credentials")
		}),
		predictor.WithMetrics(metrics),
	)

	p, err := f.Create(context.Background(), predictor.BackendSageMaker, "ep", nil)
	require.NoError(t, err)
	require.False(t, p.Predict(context.Background(), types.PredictionPayload{"inputs": "x"}).OK())
	require.Equal(t, predictor.BackendSageMaker, p.Backend())

	pricing := &types.PricingConfig{Pricing: map[string]any{"ml.g5.2xlarge": 36.0}}
	require.InDelta(t, 1.0, p.CalculateCost(context.Background(), "ml.g5.2xlarge", pricing, 100*time.Second, nil), 1e-9)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["fmbench_predictions_total"])
	require.True(t, names["fmbench_run_cost_dollars"])
}
