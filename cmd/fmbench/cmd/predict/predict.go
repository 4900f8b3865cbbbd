package predict

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"opencsg.com/fmbench/builder/instrumentation"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
	"opencsg.com/fmbench/component/predictor"
)

var (
	backend      string
	endpointName string
	payloadFile  string
	split        bool
	metricsAddr  string
)

var Cmd = &cobra.Command{
	Use:   "predict",
	Short: "send payloads to an endpoint, one json payload per line",
	Example: `  fmbench predict --backend sagemaker --endpoint llama-2-7b-g5xl-1700000000 --payloads payloads.jsonl
  echo '{"inputs":"What is Go?"}' | fmbench predict --backend bedrock --endpoint anthropic.claude-v2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		b, err := predictor.ParseBackend(backend)
		if err != nil {
			return err
		}

		var opts []predictor.FactoryOption
		addr := metricsAddr
		if addr == "" {
			addr = cfg.Metrics.ListenAddr
		}
		if addr != "" {
			metrics := instrumentation.NewMetrics()
			opts = append(opts, predictor.WithMetrics(metrics))
			stop := serveMetrics(addr, metrics)
			defer stop()
		}

		var spec *types.InferenceSpec
		if split {
			spec = &types.InferenceSpec{SplitInputAndParameters: true}
		}
		p, err := predictor.NewFactory(cfg, opts...).Create(cmd.Context(), b, endpointName, spec)
		if err != nil {
			return err
		}

		in := io.Reader(os.Stdin)
		if payloadFile != "" && payloadFile != "-" {
			f, err := os.Open(payloadFile)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return run(cmd.Context(), p, in, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&backend, "backend", "b", string(predictor.BackendSageMaker), "sagemaker or bedrock")
	Cmd.Flags().StringVarP(&endpointName, "endpoint", "e", "", "endpoint name, or model id for bedrock")
	Cmd.Flags().StringVarP(&payloadFile, "payloads", "p", "-", "json lines file of payloads, - reads stdin")
	Cmd.Flags().BoolVar(&split, "split-input-and-parameters", false, "invoke the endpoint with inputs as body and parameters as invoke arguments")
	Cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while predicting")
	_ = Cmd.MarkFlagRequired("endpoint")
}

type result struct {
	EndpointName     string         `json:"endpoint_name"`
	GeneratedText    *string        `json:"generated_text"`
	ResponseJSON     map[string]any `json:"response_json,omitempty"`
	LatencySeconds   *float64       `json:"latency"`
	PromptTokens     *int64         `json:"prompt_tokens"`
	CompletionTokens *int64         `json:"completion_tokens"`
	Error            string         `json:"error,omitempty"`
	ErrorCode        string         `json:"error_code,omitempty"`
}

func run(ctx context.Context, p predictor.Predictor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(out)
	var lineNo, total, failed int
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var payload types.PredictionPayload
		if err := json.Unmarshal(line, &payload); err != nil {
			return fmt.Errorf("invalid payload on line %d: %w", lineNo, err)
		}
		total++

		r := result{EndpointName: p.EndpointName()}
		res := p.Predict(ctx, payload)
		if resp, ok := res.Response(); ok {
			latency := resp.Latency.Seconds()
			r.GeneratedText = &resp.GeneratedText
			r.ResponseJSON = resp.ResponseJSON
			r.LatencySeconds = &latency
			r.PromptTokens = &resp.PromptTokens
			r.CompletionTokens = &resp.CompletionTokens
		} else {
			failed++
			r.Error = res.Err().Error()
			r.ErrorCode = errorx.CodeOf(res.Err())
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "predictions done", slog.String("endpoint_name", p.EndpointName()),
		slog.Int("total", total), slog.Int("failed", failed))
	return nil
}

func serveMetrics(addr string, metrics *instrumentation.Metrics) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("metrics server is running", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
