package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/types"
)

// LoadExperiment reads an experiment definition from a YAML file.
func LoadExperiment(path string) (*types.Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file %s: %w", path, err)
	}
	var exp types.Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, errorx.InvalidExperiment(err, errorx.Ctx().Set("path", path))
	}
	if exp.Name == "" {
		return nil, errorx.InvalidExperiment(fmt.Errorf("experiment name is required"), errorx.Ctx().Set("path", path))
	}
	return &exp, nil
}

// LoadPricing reads the pricing table from a YAML file.
func LoadPricing(path string) (*types.PricingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}
	var pricing types.PricingConfig
	if err := yaml.Unmarshal(data, &pricing); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}
	return &pricing, nil
}
