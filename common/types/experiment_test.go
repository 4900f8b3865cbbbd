package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperiment_Env(t *testing.T) {
	e := &Experiment{Env: map[string]any{
		"NUMBER_OF_GPU":        8,
		"INSTANCE_COUNT":       "1",
		"HEALTH_CHECK_TIMEOUT": 600.0,
		"MODEL_NAME":           "llama",
		"BROKEN":               "many",
	}}

	n, err := e.EnvInt(ExperimentEnvNumberOfGPU)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = e.EnvInt(ExperimentEnvInstanceCount)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = e.EnvInt(ExperimentEnvHealthCheckTimeout)
	require.NoError(t, err)
	assert.Equal(t, 600, n)

	_, err = e.EnvInt("MISSING")
	require.Error(t, err)
	_, err = e.EnvInt("BROKEN")
	require.Error(t, err)

	env := e.EnvStrings()
	assert.Equal(t, "8", env["NUMBER_OF_GPU"])
	assert.Equal(t, "600", env["HEALTH_CHECK_TIMEOUT"])
	assert.Equal(t, "llama", env["MODEL_NAME"])
}
