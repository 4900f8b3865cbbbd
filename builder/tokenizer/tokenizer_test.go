package tokenizer

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	os.Exit(m.Run())
}

func TestNewTokenizer(t *testing.T) {
	assert.IsType(t, &WordTokenizer{}, NewTokenizer("", "", "", time.Second))
	assert.IsType(t, &WordTokenizer{}, NewTokenizer("unknown", "", "", time.Second))
	assert.IsType(t, &CharTokenizer{}, NewTokenizer("chars", "", "", time.Second))
	assert.IsType(t, &tgiTokenizerImpl{}, NewTokenizer("TGI", "http://tgi.local", "", time.Second))
	assert.IsType(t, &vllmTokenizerImpl{}, NewTokenizer("vllm", "http://vllm.local", "llama", time.Second))
}

func TestWordTokenizer_Encode(t *testing.T) {
	tk := &WordTokenizer{}
	tests := []struct {
		text string
		want int64
	}{
		{"", 0},
		{"one two three", 4},
		{"  spaced   out  words ", 4},
		{"a b c d e f", 8},
	}
	for _, tt := range tests {
		got, err := tk.Encode(context.Background(), tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestCharTokenizer_Encode(t *testing.T) {
	got, err := (&CharTokenizer{}).Encode(context.Background(), "héllo")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)
}

func TestTGITokenizer_Encode(t *testing.T) {
	httpmock.RegisterResponder("POST", "http://tgi.local/tokenize",
		httpmock.NewStringResponder(200, `[{"id":1,"text":"Hello"},{"id":2,"text":","},{"id":3,"text":" world"}]`))

	tk := NewTokenizer("tgi", "http://tgi.local/", "", time.Second)
	got, err := tk.Encode(context.Background(), "Hello, world")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	got, err = tk.Encode(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestTGITokenizer_Errors(t *testing.T) {
	httpmock.RegisterResponder("POST", "http://tgi-broken.local/tokenize",
		httpmock.NewStringResponder(http.StatusOK, `{"not":"a list"}`))

	tk := NewTokenizer("tgi", "http://tgi-broken.local", "", time.Second)
	_, err := tk.Encode(context.Background(), "Hello")
	require.Error(t, err)

	tk = NewTokenizer("tgi", "", "", time.Second)
	_, err = tk.Encode(context.Background(), "Hello")
	require.ErrorIs(t, err, errEmptyEndpoint)
}

func TestVllmTokenizer_Encode(t *testing.T) {
	httpmock.RegisterResponder("POST", "http://vllm.local/tokenize",
		httpmock.NewStringResponder(200, `{"count":7,"max_model_len":4096,"tokens":[1,2,3,4,5,6,7]}`))

	tk := NewTokenizer("vllm", "http://vllm.local", "llama", time.Second)
	got, err := tk.Encode(context.Background(), "some prompt text")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}
