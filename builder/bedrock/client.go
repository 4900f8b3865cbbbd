package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go/ptr"
	"github.com/openai/openai-go/v3"
	"github.com/spf13/cast"
	"opencsg.com/fmbench/builder/tokenizer"
)

const (
	DefaultServiceName     = "bedrock"
	DefaultCohereInputType = "search_document"
)

// RuntimeAPI is the subset of the bedrockruntime client used for inference.
type RuntimeAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// ModelClient runs chat completions and embeddings against managed models and
// returns OpenAI shaped responses.
type ModelClient interface {
	Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Embedding(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error)
}

var _ ModelClient = (*Client)(nil)

type Client struct {
	api             RuntimeAPI
	region          string
	serviceName     string
	cohereInputType string
	// counts embedding input tokens for models that do not report usage
	tokenizer tokenizer.Tokenizer
}

type ClientOption func(*Client)

func WithServiceName(name string) ClientOption {
	return func(c *Client) {
		if name != "" {
			c.serviceName = name
		}
	}
}

func WithCohereInputType(inputType string) ClientOption {
	return func(c *Client) {
		if inputType != "" {
			c.cohereInputType = inputType
		}
	}
}

func WithTokenizer(t tokenizer.Tokenizer) ClientOption {
	return func(c *Client) {
		c.tokenizer = t
	}
}

// NewClient creates a client bound to region. The region is passed to every
// call, so clients for different regions can share one RuntimeAPI.
func NewClient(api RuntimeAPI, region string, opts ...ClientOption) (*Client, error) {
	if api == nil {
		return nil, errors.New("bedrock runtime api is nil")
	}
	if region == "" {
		return nil, errors.New("bedrock region is empty")
	}
	c := &Client{
		api:             api,
		region:          region,
		serviceName:     DefaultServiceName,
		cohereInputType: DefaultCohereInputType,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Region() string {
	return c.region
}

func (c *Client) withRegion(o *bedrockruntime.Options) {
	o.Region = c.region
}

// ModelID strips the service prefix from a composite model id.
func (c *Client) ModelID(model string) string {
	return strings.TrimPrefix(model, c.serviceName+"/")
}

func (c *Client) Completion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	modelID := c.ModelID(req.Model)
	inferenceConfig, err := inferenceConfiguration(req.Parameters)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters for model %s: %w", modelID, err)
	}
	input := &bedrockruntime.ConverseInput{
		ModelId: ptr.String(modelID),
		Messages: []brtypes.Message{
			{
				Role:    brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: req.Prompt}},
			},
		},
		InferenceConfig: inferenceConfig,
	}

	start := time.Now()
	out, err := c.api.Converse(ctx, input, c.withRegion)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("failed to call converse, model:%s, region:%s, error: %w", modelID, c.region, err)
	}

	resp := &CompletionResponse{
		Completion: toChatCompletion(modelID, out),
		Latency:    elapsed,
	}
	if out.Metrics != nil && out.Metrics.LatencyMs != nil {
		resp.Latency = time.Duration(*out.Metrics.LatencyMs) * time.Millisecond
	}
	return resp, nil
}

func toChatCompletion(modelID string, out *bedrockruntime.ConverseOutput) openai.ChatCompletion {
	completion := openai.ChatCompletion{
		Model:   modelID,
		Created: time.Now().Unix(),
	}
	if msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage); ok {
		var sb strings.Builder
		for _, block := range msg.Value.Content {
			if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
				sb.WriteString(text.Value)
			}
		}
		completion.Choices = append(completion.Choices, openai.ChatCompletionChoice{
			Index:        0,
			FinishReason: string(out.StopReason),
			Message: openai.ChatCompletionMessage{
				Content: sb.String(),
			},
		})
	}
	if out.Usage != nil {
		completion.Usage = openai.CompletionUsage{
			PromptTokens:     int64(ptr.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int64(ptr.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int64(ptr.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return completion
}

// inferenceConfiguration maps text generation parameters onto the converse
// inference config. Unknown parameters are ignored.
func inferenceConfiguration(params map[string]any) (*brtypes.InferenceConfiguration, error) {
	if len(params) == 0 {
		return nil, nil
	}
	cfg := &brtypes.InferenceConfiguration{}
	set := false
	for _, key := range []string{"max_new_tokens", "max_tokens"} {
		if v, ok := params[key]; ok && v != nil {
			n, err := cast.ToInt32E(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			cfg.MaxTokens = ptr.Int32(n)
			set = true
			break
		}
	}
	if v, ok := params["temperature"]; ok && v != nil {
		f, err := cast.ToFloat32E(v)
		if err != nil {
			return nil, fmt.Errorf("temperature: %w", err)
		}
		cfg.Temperature = ptr.Float32(f)
		set = true
	}
	if v, ok := params["top_p"]; ok && v != nil {
		f, err := cast.ToFloat32E(v)
		if err != nil {
			return nil, fmt.Errorf("top_p: %w", err)
		}
		cfg.TopP = ptr.Float32(f)
		set = true
	}
	if v, ok := params["stop"]; ok && v != nil {
		stop, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil, fmt.Errorf("stop: %w", err)
		}
		cfg.StopSequences = stop
		set = true
	}
	if !set {
		return nil, nil
	}
	return cfg, nil
}

func (c *Client) Embedding(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	modelID := c.ModelID(req.Model)
	cohere := strings.HasPrefix(modelID, "cohere.")

	var body []byte
	var err error
	if cohere {
		body, err = json.Marshal(cohereEmbeddingReq{Texts: []string{req.Input}, InputType: c.cohereInputType})
	} else {
		body, err = json.Marshal(titanEmbeddingReq{InputText: req.Input})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	start := time.Now()
	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     ptr.String(modelID),
		Body:        body,
		ContentType: ptr.String("application/json"),
		Accept:      ptr.String("application/json"),
	}, c.withRegion)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model, model:%s, region:%s, error: %w", modelID, c.region, err)
	}

	embedding := openai.CreateEmbeddingResponse{Model: modelID}
	if cohere {
		var resp cohereEmbeddingResp
		if err := json.Unmarshal(out.Body, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cohere embedding response: %w", err)
		}
		for i, vec := range resp.Embeddings {
			embedding.Data = append(embedding.Data, openai.Embedding{Index: int64(i), Embedding: vec})
		}
	} else {
		var resp titanEmbeddingResp
		if err := json.Unmarshal(out.Body, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal titan embedding response: %w", err)
		}
		embedding.Data = append(embedding.Data, openai.Embedding{Embedding: resp.Embedding})
		embedding.Usage = openai.CreateEmbeddingResponseUsage{
			PromptTokens: resp.InputTextTokenCount,
			TotalTokens:  resp.InputTextTokenCount,
		}
	}

	if embedding.Usage.TotalTokens == 0 && c.tokenizer != nil {
		n, err := c.tokenizer.Encode(ctx, req.Input)
		if err != nil {
			slog.WarnContext(ctx, "failed to count embedding input tokens", slog.String("model", modelID), slog.Any("error", err))
		} else {
			embedding.Usage = openai.CreateEmbeddingResponseUsage{PromptTokens: n, TotalTokens: n}
		}
	}

	return &EmbeddingResponse{Embedding: embedding, Latency: elapsed}, nil
}
