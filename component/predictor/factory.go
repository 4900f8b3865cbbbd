package predictor

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"opencsg.com/fmbench/builder/awsclient"
	"opencsg.com/fmbench/builder/bedrock"
	"opencsg.com/fmbench/builder/instrumentation"
	"opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/tokenizer"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

type (
	AWSConfigLoader       func(ctx context.Context) (aws.Config, error)
	SageMakerRuntimeMaker func(cfg aws.Config) sagemaker.InvokeEndpointAPI
	BedrockRuntimeMaker   func(cfg aws.Config) bedrock.RuntimeAPI
)

// Factory builds predictors by backend and endpoint name.
type Factory struct {
	config          *config.Config
	embeddingModels map[string]struct{}
	tokenizer       tokenizer.Tokenizer
	metrics         *instrumentation.Metrics

	loadAWSConfig   AWSConfigLoader
	newSageMakerAPI SageMakerRuntimeMaker
	newBedrockAPI   BedrockRuntimeMaker
}

type FactoryOption func(*Factory)

func WithAWSConfigLoader(loader AWSConfigLoader) FactoryOption {
	return func(f *Factory) {
		f.loadAWSConfig = loader
	}
}

func WithSageMakerRuntime(maker SageMakerRuntimeMaker) FactoryOption {
	return func(f *Factory) {
		f.newSageMakerAPI = maker
	}
}

func WithBedrockRuntime(maker BedrockRuntimeMaker) FactoryOption {
	return func(f *Factory) {
		f.newBedrockAPI = maker
	}
}

// WithMetrics wraps every created predictor with prometheus instrumentation.
func WithMetrics(m *instrumentation.Metrics) FactoryOption {
	return func(f *Factory) {
		f.metrics = m
	}
}

func WithTokenizer(t tokenizer.Tokenizer) FactoryOption {
	return func(f *Factory) {
		f.tokenizer = t
	}
}

func NewFactory(cfg *config.Config, opts ...FactoryOption) *Factory {
	f := &Factory{
		config:          cfg,
		embeddingModels: make(map[string]struct{}),
		tokenizer:       tokenizer.NewTokenizer(cfg.Tokenizer.Kind, cfg.Tokenizer.Endpoint, cfg.TGI.ModelName, cfg.TokenizerTimeout()),
	}
	f.loadAWSConfig = func(ctx context.Context) (aws.Config, error) {
		return awsclient.LoadConfig(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	}
	f.newSageMakerAPI = func(awsCfg aws.Config) sagemaker.InvokeEndpointAPI {
		return sagemakerruntime.NewFromConfig(awsCfg)
	}
	f.newBedrockAPI = func(awsCfg aws.Config) bedrock.RuntimeAPI {
		return bedrockruntime.NewFromConfig(awsCfg)
	}
	for _, m := range cfg.EmbeddingModels() {
		f.embeddingModels[m] = struct{}{}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Kind reports how a managed model is invoked, by the configured embedding model table.
func (f *Factory) Kind(endpointName string) types.ModelKind {
	if _, ok := f.embeddingModels[endpointName]; ok {
		return types.ModelKindEmbedding
	}
	return types.ModelKindCompletion
}

// Create returns a predictor for endpointName. Client construction failures are
// logged and yield a predictor whose predictions fail, never a nil predictor.
func (f *Factory) Create(ctx context.Context, backend Backend, endpointName string, spec *types.InferenceSpec) (Predictor, error) {
	var p Predictor
	switch backend {
	case BackendSageMaker:
		p = f.createSageMaker(ctx, endpointName, spec)
	case BackendBedrock:
		p = f.createBedrock(ctx, endpointName, spec)
	default:
		return nil, errorx.UnsupportedBackend(nil, errorx.Ctx().Set("backend", string(backend)))
	}
	if f.metrics != nil {
		p = NewInstrumentedPredictor(p, f.metrics)
	}
	return p, nil
}

func (f *Factory) createSageMaker(ctx context.Context, endpointName string, spec *types.InferenceSpec) Predictor {
	var invoker sagemaker.Invoker
	awsCfg, err := f.loadAWSConfig(ctx)
	if err == nil {
		var client *sagemaker.RuntimeClient
		client, err = sagemaker.NewRuntimeClient(f.newSageMakerAPI(awsCfg), endpointName,
			sagemaker.WithContentType(f.config.SageMaker.ContentType),
			sagemaker.WithAccept(f.config.SageMaker.Accept))
		if err == nil {
			invoker = client
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to create sagemaker predictor", slog.String("endpoint_name", endpointName), slog.Any("error", err))
	} else {
		slog.InfoContext(ctx, "created sagemaker predictor", slog.String("endpoint_name", endpointName), slog.String("region", awsCfg.Region))
	}
	return NewSageMakerPredictor(endpointName, spec, invoker, f.tokenizer)
}

func (f *Factory) createBedrock(ctx context.Context, endpointName string, spec *types.InferenceSpec) Predictor {
	kind := f.Kind(endpointName)
	var client bedrock.ModelClient
	awsCfg, err := f.loadAWSConfig(ctx)
	if err == nil {
		var c *bedrock.Client
		c, err = bedrock.NewClient(f.newBedrockAPI(awsCfg), awsCfg.Region,
			bedrock.WithServiceName(f.config.Bedrock.ServiceName),
			bedrock.WithCohereInputType(f.config.Bedrock.CohereInputType),
			bedrock.WithTokenizer(f.tokenizer))
		if err == nil {
			client = c
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to create bedrock predictor", slog.String("endpoint_name", endpointName), slog.Any("error", err))
	} else {
		slog.InfoContext(ctx, "created bedrock predictor", slog.String("endpoint_name", endpointName),
			slog.String("region", awsCfg.Region), slog.String("kind", kind.String()))
	}
	return NewBedrockPredictor(f.config.Bedrock.ServiceName, endpointName, kind, spec, client)
}
