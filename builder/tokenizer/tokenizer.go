package tokenizer

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"opencsg.com/fmbench/builder/llm"
)

var errEmptyEndpoint = errors.New("tokenizer endpoint is empty")

// Tokenizer counts the tokens of a piece of text.
type Tokenizer interface {
	Encode(ctx context.Context, text string) (int64, error)
}

// NewTokenizer picks a tokenizer by kind. Unknown kinds fall back to the word approximation.
func NewTokenizer(kind, endpoint, model string, timeout time.Duration) Tokenizer {
	switch strings.ToLower(kind) {
	case "tgi":
		return newTGITokenizerImpl(endpoint, llm.NewClient(timeout))
	case "vllm":
		return newVllmTokenizerImpl(endpoint, model, llm.NewClient(timeout))
	case "chars":
		return &CharTokenizer{}
	default:
		return &WordTokenizer{}
	}
}

var _ Tokenizer = (*WordTokenizer)(nil)

// WordTokenizer approximates token counts as 1000 tokens per 750 words.
type WordTokenizer struct{}

func (w *WordTokenizer) Encode(_ context.Context, text string) (int64, error) {
	words := len(strings.Fields(text))
	return int64(float64(words) / 0.75), nil
}

var _ Tokenizer = (*CharTokenizer)(nil)

// CharTokenizer counts one token per character, for tests.
type CharTokenizer struct{}

func (c *CharTokenizer) Encode(_ context.Context, text string) (int64, error) {
	return int64(utf8.RuneCountInString(text)), nil
}
