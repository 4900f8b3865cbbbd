package cost

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/types"
	"opencsg.com/fmbench/component/predictor"
)

var (
	backend          string
	endpointName     string
	instanceType     string
	pricingFile      string
	duration         time.Duration
	promptTokens     int64
	completionTokens int64
)

var Cmd = &cobra.Command{
	Use:   "cost",
	Short: "calculate the cost of a benchmark run",
	Example: `  fmbench cost --backend sagemaker --endpoint llama-ep --instance-type ml.g5.2xlarge --pricing pricing.yml --duration 30m
  fmbench cost --backend bedrock --endpoint anthropic.claude-v2 --pricing pricing.yml --prompt-tokens 2000 --completion-tokens 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		b, err := predictor.ParseBackend(backend)
		if err != nil {
			return err
		}
		pricing, err := config.LoadPricing(pricingFile)
		if err != nil {
			return err
		}

		// pricing needs no client
		var p predictor.Predictor
		f := predictor.NewFactory(cfg)
		switch b {
		case predictor.BackendBedrock:
			p = predictor.NewBedrockPredictor(cfg.Bedrock.ServiceName, endpointName, f.Kind(endpointName), nil, nil)
		default:
			p = predictor.NewSageMakerPredictor(endpointName, nil, nil, nil)
		}

		key := instanceType
		if key == "" {
			key = endpointName
		}
		metrics := types.RunMetrics{
			types.MetricAllPromptsTokenCount:     promptTokens,
			types.MetricAllCompletionsTokenCount: completionTokens,
		}
		cost := p.CalculateCost(cmd.Context(), key, pricing, duration, metrics)

		out, err := json.Marshal(map[string]any{
			"endpoint_name": endpointName,
			"instance_type": key,
			"cost":          cost,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&backend, "backend", "b", string(predictor.BackendSageMaker), "sagemaker or bedrock")
	Cmd.Flags().StringVarP(&endpointName, "endpoint", "e", "", "endpoint name, or model id for bedrock")
	Cmd.Flags().StringVarP(&instanceType, "instance-type", "i", "", "pricing key, defaults to the endpoint name")
	Cmd.Flags().StringVarP(&pricingFile, "pricing", "p", "", "path of the pricing yaml file")
	Cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "duration of the run")
	Cmd.Flags().Int64Var(&promptTokens, "prompt-tokens", 0, "total prompt tokens of the run")
	Cmd.Flags().Int64Var(&completionTokens, "completion-tokens", 0, "total completion tokens of the run")
	_ = Cmd.MarkFlagRequired("endpoint")
	_ = Cmd.MarkFlagRequired("pricing")
}
