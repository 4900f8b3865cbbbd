package tokenizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"opencsg.com/fmbench/builder/llm"
)

type tgiTokenizerImpl struct {
	endpoint string
	hc       llm.TokenizeClient
}

func newTGITokenizerImpl(endpoint string, hc llm.TokenizeClient) Tokenizer {
	return &tgiTokenizerImpl{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		hc:       hc,
	}
}

func (tk *tgiTokenizerImpl) Encode(ctx context.Context, text string) (int64, error) {
	const path = "/tokenize"
	if tk.endpoint == "" {
		return 0, errEmptyEndpoint
	}
	if text == "" {
		return 0, nil
	}
	req := &llm.TGITokenizeReq{
		Inputs: text,
	}
	tokenRespByte, err := tk.hc.Tokenize(ctx, tk.endpoint+path, req)
	if err != nil {
		slog.Error("call tgi tokenize api", slog.Any("error", err))
		return 0, err
	}
	var resp llm.TGITokenizeResponse
	if err := json.Unmarshal(tokenRespByte, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode tgi tokenize response: %w", err)
	}
	return int64(len(resp)), nil
}
