package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	awssm "github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"opencsg.com/fmbench/builder/awsclient"
	"opencsg.com/fmbench/builder/jumpstart"
	"opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/errorx"
	"opencsg.com/fmbench/common/log"
	"opencsg.com/fmbench/common/types"
)

// DeployComponent stands up endpoints from experiment configs and waits until
// they are in service.
type DeployComponent interface {
	// DeployJumpStart deploys a JumpStart model by model_id and model_version.
	DeployJumpStart(ctx context.Context, exp *types.Experiment, roleArn string) (*types.DeployResult, error)
	// DeployTGI deploys a hugging face model on the text generation inference container.
	DeployTGI(ctx context.Context, exp *types.Experiment, roleArn string) (*types.DeployResult, error)
}

type deployComponentImpl struct {
	config   *config.Config
	deployer *sagemaker.Deployer
	resolver *jumpstart.Resolver
	now      func() time.Time
}

func NewDeployComponent(cfg *config.Config, deployer *sagemaker.Deployer, resolver *jumpstart.Resolver) DeployComponent {
	return &deployComponentImpl{
		config:   cfg,
		deployer: deployer,
		resolver: resolver,
		now:      time.Now,
	}
}

// NewDeployComponentFromConfig creates the sagemaker and s3 clients from the aws config.
func NewDeployComponentFromConfig(ctx context.Context, cfg *config.Config) (DeployComponent, error) {
	awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		return nil, err
	}
	bucket := cfg.Deploy.JumpStartBucket
	if bucket == "" {
		bucket = jumpstart.DefaultBucket(awsCfg.Region)
	}
	resolver, err := jumpstart.NewResolver(s3.NewFromConfig(awsCfg), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create jumpstart resolver: %w", err)
	}
	deployer := sagemaker.NewDeployer(awssm.NewFromConfig(awsCfg),
		sagemaker.WithPollInterval(cfg.PollInterval()),
		sagemaker.WithMaxWait(cfg.MaxWait()))
	return NewDeployComponent(cfg, deployer, resolver), nil
}

func (c *deployComponentImpl) DeployJumpStart(ctx context.Context, exp *types.Experiment, roleArn string) (*types.DeployResult, error) {
	ctx = log.WithExperiment(ctx, exp.Name)
	if exp.ModelID == "" {
		return nil, errorx.InvalidExperiment(errors.New("model_id is empty"), errorx.Ctx().Set("experiment", exp.Name))
	}
	if exp.ImageURI == "" {
		return nil, errorx.InvalidExperiment(errors.New("image_uri is empty"), errorx.Ctx().Set("experiment", exp.Name))
	}

	model, err := c.resolver.Resolve(ctx, exp.ModelID, exp.ModelVersion)
	if err != nil {
		return nil, err
	}
	if model.Gated && (exp.AcceptEula == nil || !*exp.AcceptEula) {
		return nil, errorx.InvalidExperiment(fmt.Errorf("model %s requires accept_eula to be true", exp.ModelID),
			errorx.Ctx().Set("experiment", exp.Name))
	}

	env := model.Environment
	for k, v := range exp.EnvStrings() {
		env[k] = v
	}
	spec := sagemaker.ModelSpec{
		EndpointName:          UniqueEndpointName(exp.EndpointName, c.now()),
		ExecutionRoleArn:      role(exp, roleArn),
		Image:                 exp.ImageURI,
		Environment:           env,
		ModelDataURL:          model.ArtifactURI,
		ModelDataUncompressed: model.Uncompressed,
		AcceptEula:            exp.AcceptEula,
		InstanceType:          exp.InstanceType,
		InstanceCount:         int32(exp.InstanceCount),
	}
	slog.InfoContext(ctx, "deploying jumpstart model", slog.String("model_id", model.ModelID),
		slog.String("version", model.Version), slog.String("endpoint_name", spec.EndpointName))
	return c.deployAndWait(ctx, exp, spec)
}

func (c *deployComponentImpl) DeployTGI(ctx context.Context, exp *types.Experiment, roleArn string) (*types.DeployResult, error) {
	ctx = log.WithExperiment(ctx, exp.Name)
	errCtx := errorx.Ctx().Set("experiment", exp.Name)

	image := exp.ImageURI
	if image == "" {
		image = c.config.TGI.Image
	}
	if image == "" {
		return nil, errorx.InvalidExperiment(errors.New("image_uri is empty"), errCtx)
	}
	gpus, err := exp.EnvInt(types.ExperimentEnvNumberOfGPU)
	if err != nil {
		return nil, errorx.InvalidExperiment(err, errCtx)
	}
	instanceCount, err := exp.EnvInt(types.ExperimentEnvInstanceCount)
	if err != nil {
		return nil, errorx.InvalidExperiment(err, errCtx)
	}
	healthCheckTimeout, err := exp.EnvInt(types.ExperimentEnvHealthCheckTimeout)
	if err != nil {
		return nil, errorx.InvalidExperiment(err, errCtx)
	}
	token, err := ReadHubToken(c.config.Deploy.HubTokenFile)
	if err != nil {
		return nil, err
	}

	modelName := exp.ModelID
	if modelName == "" {
		modelName = c.config.TGI.ModelName
	}
	base := exp.EndpointName
	if base == "" {
		base = modelName
	}
	spec := sagemaker.ModelSpec{
		EndpointName:     UniqueEndpointName(base, c.now()),
		ExecutionRoleArn: role(exp, roleArn),
		Image:            image,
		Environment: map[string]string{
			"HF_MODEL_ID":            modelName,
			"SM_NUM_GPUS":            strconv.Itoa(gpus),
			"MAX_INPUT_LENGTH":       strconv.Itoa(c.config.TGI.MaxInputLength),
			"MAX_TOTAL_TOKENS":       strconv.Itoa(c.config.TGI.MaxTotalTokens),
			"MAX_BATCH_TOTAL_TOKENS": strconv.Itoa(c.config.TGI.MaxBatchTotalTokens),
			"HUGGING_FACE_HUB_TOKEN": token,
		},
		InstanceType:            exp.InstanceType,
		InstanceCount:           int32(instanceCount),
		HealthCheckTimeoutInSEC: int32(healthCheckTimeout),
	}
	slog.InfoContext(ctx, "deploying hugging face model", slog.String("model_name", modelName),
		slog.String("image", image), slog.String("endpoint_name", spec.EndpointName))
	return c.deployAndWait(ctx, exp, spec)
}

func (c *deployComponentImpl) deployAndWait(ctx context.Context, exp *types.Experiment, spec sagemaker.ModelSpec) (*types.DeployResult, error) {
	name, err := c.deployer.Deploy(ctx, spec)
	if err != nil {
		return nil, err
	}
	ctx = log.WithEndpoint(ctx, name)
	status, err := c.deployer.WaitForEndpoint(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "endpoint deployed", slog.String("status", string(status)))
	return &types.DeployResult{
		EndpointName:   name,
		ExperimentName: exp.Name,
	}, nil
}

func role(exp *types.Experiment, roleArn string) string {
	if roleArn != "" {
		return roleArn
	}
	return exp.Role
}

// ReadHubToken reads the hugging face hub token from path. Relative paths are
// resolved against the directory of the running binary.
func ReadHubToken(path string) (string, error) {
	if path == "" {
		return "", errorx.ErrHubTokenMissing
	}
	if !filepath.IsAbs(path) {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		path = filepath.Join(filepath.Dir(exe), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read hub token file %s: %w, %w", path, err, errorx.ErrHubTokenMissing)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", errorx.ErrHubTokenMissing
	}
	return token, nil
}
