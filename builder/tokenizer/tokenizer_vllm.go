package tokenizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"opencsg.com/fmbench/builder/llm"
)

type vllmTokenizerImpl struct {
	endpoint string
	model    string
	hc       llm.TokenizeClient
}

func newVllmTokenizerImpl(endpoint, model string, hc llm.TokenizeClient) Tokenizer {
	return &vllmTokenizerImpl{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		hc:       hc,
	}
}

func (tk *vllmTokenizerImpl) Encode(ctx context.Context, text string) (int64, error) {
	const path = "/tokenize"
	if tk.endpoint == "" {
		return 0, errEmptyEndpoint
	}
	if text == "" {
		return 0, nil
	}
	req := &llm.VllmTokenizeReq{
		Model:  tk.model,
		Prompt: text,
	}
	tokenRespByte, err := tk.hc.Tokenize(ctx, tk.endpoint+path, req)
	if err != nil {
		slog.Error("call vllm tokenize api", slog.Any("error", err))
		return 0, err
	}
	var resp llm.VllmTokenizeResponse
	if err := json.Unmarshal(tokenRespByte, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode vllm tokenize response: %w", err)
	}
	return resp.Count, nil
}
