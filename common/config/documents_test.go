package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

func TestLoadExperiment(t *testing.T) {
	exp, err := LoadExperiment("testdata/experiment.yml")
	require.NoError(t, err)

	require.Equal(t, "llama2-7b-g5.xlarge", exp.Name)
	require.Equal(t, "meta-textgeneration-llama-2-7b", exp.ModelID)
	require.Equal(t, "*", exp.ModelVersion)
	require.Equal(t, "llama-2-7b-g5xl", exp.EndpointName)
	require.Equal(t, "ml.g5.xlarge", exp.InstanceType)
	require.Equal(t, 1, exp.InstanceCount)
	require.NotNil(t, exp.AcceptEula)
	require.True(t, *exp.AcceptEula)
	require.NotNil(t, exp.InferenceSpec)
	require.True(t, exp.InferenceSpec.SplitInputAndParameters)

	n, err := exp.EnvInt(types.ExperimentEnvHealthCheckTimeout)
	require.NoError(t, err)
	require.Equal(t, 600, n)
}

func TestLoadExperiment_Errors(t *testing.T) {
	_, err := LoadExperiment("testdata/missing.yml")
	require.Error(t, err)

	_, err = LoadExperiment("testdata/no_name.yml")
	require.ErrorIs(t, err, errorx.ErrInvalidExperiment)
}

func TestLoadPricing(t *testing.T) {
	pricing, err := LoadPricing("testdata/pricing.yml")
	require.NoError(t, err)

	rate, err := pricing.HourlyRate("ml.p4d.24xlarge")
	require.NoError(t, err)
	require.Equal(t, 37.688, rate)

	rates, err := pricing.TokenRates("anthropic.claude-v2")
	require.NoError(t, err)
	require.Equal(t, []types.TokenPricing{{InputPer1K: 0.008, OutputPer1K: 0.024}}, rates)

	rates, err = pricing.TokenRates("amazon.titan-embed-text-v1")
	require.NoError(t, err)
	require.Equal(t, []types.TokenPricing{{InputPer1K: 0.0001}}, rates)
}
