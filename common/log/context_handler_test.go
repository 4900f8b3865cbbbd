package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	jsonHandler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	logger := slog.New(&ContextHandler{Handler: jsonHandler})

	ctx := WithEndpoint(context.Background(), "llama2-70b-ep")
	ctx = WithExperiment(ctx, "llama2-70b-g5.48xl")
	logger.ErrorContext(ctx, "test message")

	var result map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	require.Equal(t, "test message", result["msg"])
	require.Equal(t, "llama2-70b-ep", result["endpoint_name"])
	require.Equal(t, "llama2-70b-g5.48xl", result["experiment"])
}

func TestContextHandler_NoValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ContextHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	logger.With(slog.String("backend", "bedrock")).InfoContext(context.Background(), "no context values")

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Equal(t, "bedrock", result["backend"])
	require.NotContains(t, result, "endpoint_name")
	require.NotContains(t, result, "experiment")
}

func TestNewLogger_Fanout(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "fmbench.log")

	logger, cleanup, err := newLogger(Config{Level: "debug", Format: "text", File: file}, &console)
	require.NoError(t, err)

	logger.DebugContext(WithEndpoint(context.Background(), "ep-1"), "fan out")
	cleanup()

	require.Contains(t, console.String(), "msg=\"fan out\"")
	require.Contains(t, console.String(), "endpoint_name=ep-1")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &result))
	require.Equal(t, "fan out", result["msg"])
	require.Equal(t, "ep-1", result["endpoint_name"])
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	var console bytes.Buffer
	logger, cleanup, err := newLogger(Config{Level: "verbose", Format: "json"}, &console)
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("shown")
	require.NotContains(t, console.String(), "hidden")
	require.Contains(t, console.String(), "shown")
}
