package bedrock

import (
	"time"

	"github.com/openai/openai-go/v3"
)

type CompletionRequest struct {
	// model id, optionally prefixed with the service name, e.g. bedrock/anthropic.claude-v2
	Model      string
	Prompt     string
	Parameters map[string]any
}

type CompletionResponse struct {
	Completion openai.ChatCompletion
	// as reported by the service, or measured locally when the service omits it
	Latency time.Duration
}

type EmbeddingRequest struct {
	Model string
	Input string
}

type EmbeddingResponse struct {
	Embedding openai.CreateEmbeddingResponse
	Latency   time.Duration
}

type titanEmbeddingReq struct {
	InputText string `json:"inputText"`
}

type titanEmbeddingResp struct {
	Embedding           []float64 `json:"embedding"`
	InputTextTokenCount int64     `json:"inputTextTokenCount"`
}

type cohereEmbeddingReq struct {
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type cohereEmbeddingResp struct {
	ID         string      `json:"id"`
	Embeddings [][]float64 `json:"embeddings"`
}
