package types

import (
	"fmt"

	"github.com/spf13/cast"
)

const (
	ExperimentEnvNumberOfGPU        = "NUMBER_OF_GPU"
	ExperimentEnvInstanceCount      = "INSTANCE_COUNT"
	ExperimentEnvHealthCheckTimeout = "HEALTH_CHECK_TIMEOUT"
)

// Experiment describes one model deployment of a benchmark run.
type Experiment struct {
	Name          string         `json:"name" yaml:"name"`
	ModelID       string         `json:"model_id" yaml:"model_id"`
	ModelVersion  string         `json:"model_version" yaml:"model_version"`
	ImageURI      string         `json:"image_uri" yaml:"image_uri"`
	Env           map[string]any `json:"env" yaml:"env"`
	Role          string         `json:"role" yaml:"role"`
	InstanceType  string         `json:"instance_type" yaml:"instance_type"`
	InstanceCount int            `json:"instance_count" yaml:"instance_count"`
	EndpointName  string         `json:"ep_name" yaml:"ep_name"`
	// nil means the experiment does not mention the EULA at all
	AcceptEula    *bool          `json:"accept_eula,omitempty" yaml:"accept_eula,omitempty"`
	InferenceSpec *InferenceSpec `json:"inference_spec,omitempty" yaml:"inference_spec,omitempty"`
}

// EnvInt reads an integer value from the experiment env.
func (e *Experiment) EnvInt(key string) (int, error) {
	v, ok := e.Env[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("env %s is not set", key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", key, err)
	}
	return n, nil
}

// EnvStrings renders the experiment env as container environment variables.
func (e *Experiment) EnvStrings() map[string]string {
	env := make(map[string]string, len(e.Env))
	for k, v := range e.Env {
		env[k] = cast.ToString(v)
	}
	return env
}

// DeployResult is returned by the deployment helpers.
type DeployResult struct {
	EndpointName   string `json:"endpoint_name"`
	ExperimentName string `json:"experiment_name"`
}
