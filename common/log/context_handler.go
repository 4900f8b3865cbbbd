package log

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	endpointKey ctxKey = iota
	experimentKey
)

// ContextHandler is a slog.Handler that adds the endpoint name and experiment name to every log record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds the endpoint name and experiment name to the log record before passing it to the underlying handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if endpoint := EndpointFromContext(ctx); endpoint != "" {
		r.AddAttrs(slog.String("endpoint_name", endpoint))
	}
	if experiment := ExperimentFromContext(ctx); experiment != "" {
		r.AddAttrs(slog.String("experiment", experiment))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

func WithEndpoint(ctx context.Context, endpointName string) context.Context {
	return context.WithValue(ctx, endpointKey, endpointName)
}

func EndpointFromContext(ctx context.Context) string {
	v, _ := ctx.Value(endpointKey).(string)
	return v
}

func WithExperiment(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, experimentKey, name)
}

func ExperimentFromContext(ctx context.Context) string {
	v, _ := ctx.Value(experimentKey).(string)
	return v
}
