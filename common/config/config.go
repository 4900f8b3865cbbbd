package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/naoina/toml"
	"github.com/sethvargo/go-envconfig"
)

var configFile = ""

// DefaultEmbeddingModels are the Bedrock model ids invoked through the embeddings API
// when no table is configured.
var DefaultEmbeddingModels = []string{
	"amazon.titan-embed-text-v1",
	"cohere.embed-english-v3",
	"cohere.embed-multilingual-v3",
}

type Config struct {
	AWS struct {
		// empty means the SDK default chain (AWS_REGION, shared config)
		Region  string `env:"FMBENCH_AWS_REGION" default:""`
		Profile string `env:"FMBENCH_AWS_PROFILE" default:""`
	}

	Bedrock struct {
		ServiceName string `env:"FMBENCH_BEDROCK_SERVICE_NAME" default:"bedrock"`
		// model ids served by the embeddings API, comma separated in env
		EmbeddingModels []string `env:"FMBENCH_BEDROCK_EMBEDDING_MODELS"`
		// input_type sent to cohere embedding models
		CohereInputType string `env:"FMBENCH_BEDROCK_COHERE_INPUT_TYPE" default:"search_document"`
	}

	SageMaker struct {
		ContentType string `env:"FMBENCH_SAGEMAKER_CONTENT_TYPE" default:"application/json"`
		Accept      string `env:"FMBENCH_SAGEMAKER_ACCEPT" default:"application/json"`
	}

	Deploy struct {
		PollIntervalSEC int `env:"FMBENCH_DEPLOY_POLL_INTERVAL_SEC" default:"60"`
		MaxWaitInMin    int `env:"FMBENCH_DEPLOY_MAX_WAIT_IN_MINUTES" default:"60"`
		// relative paths are resolved against the directory of the fmbench binary
		HubTokenFile string `env:"FMBENCH_DEPLOY_HUB_TOKEN_FILE" default:"hf_token.txt"`
		// JumpStart artifacts bucket, defaults to jumpstart-cache-prod-<region>
		JumpStartBucket string `env:"FMBENCH_DEPLOY_JUMPSTART_BUCKET" default:""`
	}

	TGI struct {
		ModelName           string `env:"FMBENCH_TGI_MODEL_NAME" default:"meta-llama/Llama-2-70b-chat-hf"`
		Image               string `env:"FMBENCH_TGI_IMAGE" default:""`
		MaxInputLength      int    `env:"FMBENCH_TGI_MAX_INPUT_LENGTH" default:"4090"`
		MaxTotalTokens      int    `env:"FMBENCH_TGI_MAX_TOTAL_TOKENS" default:"4096"`
		MaxBatchTotalTokens int    `env:"FMBENCH_TGI_MAX_BATCH_TOTAL_TOKENS" default:"8192"`
	}

	Tokenizer struct {
		// words, chars, tgi or vllm
		Kind     string `env:"FMBENCH_TOKENIZER_KIND" default:"words"`
		Endpoint string `env:"FMBENCH_TOKENIZER_ENDPOINT" default:""`
		// timeout of a remote tokenize call
		TimeoutSEC int `env:"FMBENCH_TOKENIZER_TIMEOUT_SEC" default:"5"`
	}

	Metrics struct {
		ListenAddr string `env:"FMBENCH_METRICS_LISTEN_ADDR" default:""`
	}
}

func SetConfigFile(file string) {
	configFile = file
}

func LoadConfig() (*Config, error) {
	defer slog.Debug("end load config")
	slog.Debug("start load config")
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	toml.DefaultConfig.MissingField = func(typ reflect.Type, key string) error {
		return nil
	}

	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		err = toml.NewDecoder(f).Decode(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", configFile, err)
		}
	}

	// Environment values take priority over the config file, missing values fall back to the default tag.
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:           cfg,
		DefaultOverwrite: true,
	})
	return cfg, err
}

func (c *Config) EmbeddingModels() []string {
	if len(c.Bedrock.EmbeddingModels) == 0 {
		return DefaultEmbeddingModels
	}
	return c.Bedrock.EmbeddingModels
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Deploy.PollIntervalSEC) * time.Second
}

func (c *Config) MaxWait() time.Duration {
	return time.Duration(c.Deploy.MaxWaitInMin) * time.Minute
}

func (c *Config) TokenizerTimeout() time.Duration {
	return time.Duration(c.Tokenizer.TimeoutSEC) * time.Second
}
