package instrumentation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObservePrediction(t *testing.T) {
	m := NewMetrics()

	m.ObservePrediction("sagemaker", "llama-ep", 1500*time.Millisecond, 20, 5)
	m.ObservePrediction("sagemaker", "llama-ep", 500*time.Millisecond, 10, 5)
	m.ObserveFailure("sagemaker", "llama-ep")

	require.Equal(t, 2.0, testutil.ToFloat64(m.predictions.WithLabelValues("sagemaker", "llama-ep", OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("sagemaker", "llama-ep", OutcomeFailure)))
	require.Equal(t, 30.0, testutil.ToFloat64(m.tokens.WithLabelValues("sagemaker", "llama-ep", TokenKindPrompt)))
	require.Equal(t, 10.0, testutil.ToFloat64(m.tokens.WithLabelValues("sagemaker", "llama-ep", TokenKindCompletion)))
	require.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.SetCost("bedrock", "anthropic.claude-v2", 0.009)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `fmbench_run_cost_dollars{backend="bedrock",endpoint="anthropic.claude-v2"} 0.009`))
}
