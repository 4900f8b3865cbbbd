package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"opencsg.com/fmbench/common/errorx"
)

func TestPricingConfig_HourlyRate(t *testing.T) {
	p := &PricingConfig{Pricing: map[string]any{
		"ml.g5.2xlarge":   1.515,
		"ml.p4d.24xlarge": 37,
		"ml.bad":          "not-a-number",
	}}

	rate, err := p.HourlyRate("ml.g5.2xlarge")
	require.NoError(t, err)
	assert.Equal(t, 1.515, rate)

	rate, err = p.HourlyRate("ml.p4d.24xlarge")
	require.NoError(t, err)
	assert.Equal(t, 37.0, rate)

	_, err = p.HourlyRate("ml.g4dn.xlarge")
	require.ErrorIs(t, err, errorx.ErrPricingNotFound)

	_, err = p.HourlyRate("ml.bad")
	require.ErrorIs(t, err, errorx.ErrMalformedPricing)

	var nilPricing *PricingConfig
	_, err = nilPricing.HourlyRate("ml.g5.2xlarge")
	require.ErrorIs(t, err, errorx.ErrPricingNotFound)
}

func TestPricingConfig_TokenRates(t *testing.T) {
	p := &PricingConfig{Pricing: map[string]any{
		"anthropic.claude-v2": []any{
			map[string]any{"input-per-1k-tokens": 0.008, "output-per-1k-tokens": 0.024},
			map[string]any{"input-per-1k-tokens": 0.001},
		},
		"flat":      1.0,
		"bad-entry": []any{"x"},
	}}

	rates, err := p.TokenRates("anthropic.claude-v2")
	require.NoError(t, err)
	assert.Equal(t, []TokenPricing{
		{InputPer1K: 0.008, OutputPer1K: 0.024},
		{InputPer1K: 0.001, OutputPer1K: 0},
	}, rates)

	_, err = p.TokenRates("flat")
	require.ErrorIs(t, err, errorx.ErrMalformedPricing)

	_, err = p.TokenRates("bad-entry")
	require.ErrorIs(t, err, errorx.ErrMalformedPricing)

	_, err = p.TokenRates("missing")
	require.ErrorIs(t, err, errorx.ErrPricingNotFound)
}

func TestRunMetrics_TokenCounts(t *testing.T) {
	prompt, completion, err := RunMetrics{
		"all_prompts_token_count":     2000,
		"all_completions_token_count": "500",
	}.TokenCounts()
	require.NoError(t, err)
	assert.Equal(t, 2000.0, prompt)
	assert.Equal(t, 500.0, completion)

	_, _, err = RunMetrics{}.TokenCounts()
	require.ErrorIs(t, err, errorx.ErrMissingMetrics)

	_, _, err = RunMetrics{"all_prompts_token_count": 1}.TokenCounts()
	require.ErrorIs(t, err, errorx.ErrMissingMetrics)

	_, _, err = RunMetrics{"all_prompts_token_count": "x", "all_completions_token_count": 1}.TokenCounts()
	require.Error(t, err)
}
