package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mocksm "opencsg.com/fmbench/_mocks/opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/tokenizer"
	"opencsg.com/fmbench/component/predictor"
)

func TestRun(t *testing.T) {
	invoker := mocksm.NewMockInvoker(t)
	p := predictor.NewSageMakerPredictor("llama-ep", nil, invoker, &tokenizer.CharTokenizer{})

	invoker.On("Predict", mock.Anything, mock.Anything, mock.Anything).Return([]byte(`{"generated_text":"ok"}`), nil).Once()

	in := strings.NewReader("{\"inputs\":\"hi\"}\n\n{\"parameters\":{}}\n")
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), p, in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var ok, failed result
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.Equal(t, "ok", *ok.GeneratedText)
	require.Equal(t, int64(2), *ok.PromptTokens)
	require.Empty(t, ok.Error)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))
	require.Nil(t, failed.GeneratedText)
	require.Nil(t, failed.LatencySeconds)
	require.Equal(t, "PRED-ERR-1", failed.ErrorCode)
}

func TestRunInvalidPayload(t *testing.T) {
	p := predictor.NewSageMakerPredictor("llama-ep", nil, nil, nil)
	err := run(context.Background(), p, strings.NewReader("not json\n"), &bytes.Buffer{})
	require.ErrorContains(t, err, "line 1")
}
