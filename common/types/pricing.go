package types

import (
	"fmt"

	"github.com/spf13/cast"
	"opencsg.com/fmbench/common/errorx"
)

const (
	PricingInputPer1KKey  = "input-per-1k-tokens"
	PricingOutputPer1KKey = "output-per-1k-tokens"

	MetricAllPromptsTokenCount     = "all_prompts_token_count"
	MetricAllCompletionsTokenCount = "all_completions_token_count"
)

// PricingConfig maps an instance type (or model id) to either a flat hourly
// rate or a list of per-1k-token rates:
//
//	pricing:
//	  ml.g5.2xlarge: 1.515
//	  anthropic.claude-v2:
//	    - input-per-1k-tokens: 0.008
//	      output-per-1k-tokens: 0.024
type PricingConfig struct {
	Pricing map[string]any `json:"pricing" yaml:"pricing"`
}

type TokenPricing struct {
	InputPer1K  float64
	OutputPer1K float64
}

// HourlyRate returns the hourly price of instanceType.
func (p *PricingConfig) HourlyRate(instanceType string) (float64, error) {
	v, err := p.lookup(instanceType)
	if err != nil {
		return 0, err
	}
	rate, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errorx.MalformedPricing(err, errorx.Ctx().Set("instance_type", instanceType))
	}
	return rate, nil
}

// TokenRates returns the per-1k-token entries of instanceType. Missing rate
// keys in an entry count as zero.
func (p *PricingConfig) TokenRates(instanceType string) ([]TokenPricing, error) {
	v, err := p.lookup(instanceType)
	if err != nil {
		return nil, err
	}
	entries, err := cast.ToSliceE(v)
	if err != nil {
		return nil, errorx.MalformedPricing(err, errorx.Ctx().Set("instance_type", instanceType))
	}

	rates := make([]TokenPricing, 0, len(entries))
	for i, entry := range entries {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			return nil, errorx.MalformedPricing(fmt.Errorf("entry %d: %w", i, err), errorx.Ctx().Set("instance_type", instanceType))
		}
		var rate TokenPricing
		if rate.InputPer1K, err = optionalFloat(m, PricingInputPer1KKey); err != nil {
			return nil, errorx.MalformedPricing(err, errorx.Ctx().Set("instance_type", instanceType))
		}
		if rate.OutputPer1K, err = optionalFloat(m, PricingOutputPer1KKey); err != nil {
			return nil, errorx.MalformedPricing(err, errorx.Ctx().Set("instance_type", instanceType))
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func (p *PricingConfig) lookup(instanceType string) (any, error) {
	if p == nil || p.Pricing == nil {
		return nil, errorx.ErrPricingNotFound
	}
	v, ok := p.Pricing[instanceType]
	if !ok || v == nil {
		return nil, errorx.ErrPricingNotFound
	}
	return v, nil
}

func optionalFloat(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, nil
	}
	return cast.ToFloat64E(v)
}

// RunMetrics are the accumulated metrics of a benchmark run.
type RunMetrics map[string]any

// TokenCounts returns the prompt and completion token totals of the run.
func (m RunMetrics) TokenCounts() (prompt, completion float64, err error) {
	if len(m) == 0 {
		return 0, 0, errorx.ErrMissingMetrics
	}
	p, ok := m[MetricAllPromptsTokenCount]
	if !ok || p == nil {
		return 0, 0, errorx.ErrMissingMetrics
	}
	c, ok := m[MetricAllCompletionsTokenCount]
	if !ok || c == nil {
		return 0, 0, errorx.ErrMissingMetrics
	}
	if prompt, err = cast.ToFloat64E(p); err != nil {
		return 0, 0, fmt.Errorf("invalid %s: %w", MetricAllPromptsTokenCount, err)
	}
	if completion, err = cast.ToFloat64E(c); err != nil {
		return 0, 0, fmt.Errorf("invalid %s: %w", MetricAllCompletionsTokenCount, err)
	}
	return prompt, completion, nil
}
