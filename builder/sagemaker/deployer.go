package sagemaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	smtypes "github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go/ptr"
	"opencsg.com/fmbench/common/errorx"
)

const (
	DefaultPollInterval = 60 * time.Second
	DefaultMaxWait      = 60 * time.Minute
	defaultVariantName  = "AllTraffic"
)

// ControlAPI is the subset of the sagemaker client used to create and watch endpoints.
type ControlAPI interface {
	CreateModel(ctx context.Context, params *sagemaker.CreateModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateModelOutput, error)
	CreateEndpointConfig(ctx context.Context, params *sagemaker.CreateEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointConfigOutput, error)
	CreateEndpoint(ctx context.Context, params *sagemaker.CreateEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointOutput, error)
	DescribeEndpoint(ctx context.Context, params *sagemaker.DescribeEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error)
	DeleteModel(ctx context.Context, params *sagemaker.DeleteModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DeleteModelOutput, error)
	DeleteEndpointConfig(ctx context.Context, params *sagemaker.DeleteEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DeleteEndpointConfigOutput, error)
}

// ModelSpec describes the model, endpoint config and endpoint created by Deploy.
// All three resources share EndpointName.
type ModelSpec struct {
	EndpointName     string
	ExecutionRoleArn string
	Image            string
	Environment      map[string]string
	// s3 uri of the model artifacts, optional for images that download their own weights
	ModelDataURL string
	// ModelDataURL is an uncompressed S3 prefix rather than a model.tar.gz
	ModelDataUncompressed bool
	// set when the model requires an accepted EULA
	AcceptEula *bool

	InstanceType                  string
	InstanceCount                 int32
	HealthCheckTimeoutInSEC       int32
	ModelDataDownloadTimeoutInSEC int32
}

type Deployer struct {
	api          ControlAPI
	pollInterval time.Duration
	maxWait      time.Duration
}

type DeployerOption func(*Deployer)

func WithPollInterval(d time.Duration) DeployerOption {
	return func(dp *Deployer) {
		if d > 0 {
			dp.pollInterval = d
		}
	}
}

func WithMaxWait(d time.Duration) DeployerOption {
	return func(dp *Deployer) {
		if d > 0 {
			dp.maxWait = d
		}
	}
}

func NewDeployer(api ControlAPI, opts ...DeployerOption) *Deployer {
	d := &Deployer{
		api:          api,
		pollInterval: DefaultPollInterval,
		maxWait:      DefaultMaxWait,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy creates the model, the endpoint config and the endpoint. It returns as
// soon as the endpoint creation is accepted, use WaitForEndpoint to wait for it.
// When a later step fails, the resources created by the earlier steps are deleted.
func (d *Deployer) Deploy(ctx context.Context, spec ModelSpec) (string, error) {
	if err := spec.validate(); err != nil {
		return "", errorx.InvalidExperiment(err, errorx.Ctx().Set("endpoint_name", spec.EndpointName))
	}
	name := spec.EndpointName

	slog.InfoContext(ctx, "create sagemaker model", slog.String("model_name", name), slog.String("image", spec.Image))
	_, err := d.api.CreateModel(ctx, &sagemaker.CreateModelInput{
		ModelName:        ptr.String(name),
		ExecutionRoleArn: ptr.String(spec.ExecutionRoleArn),
		PrimaryContainer: spec.container(),
	})
	if err != nil {
		return "", errorx.CreateResourceFailed(err, errorx.Ctx().Set("model_name", name))
	}

	variant := smtypes.ProductionVariant{
		VariantName:          ptr.String(defaultVariantName),
		ModelName:            ptr.String(name),
		InstanceType:         smtypes.ProductionVariantInstanceType(spec.InstanceType),
		InitialInstanceCount: ptr.Int32(spec.InstanceCount),
	}
	if spec.HealthCheckTimeoutInSEC > 0 {
		variant.ContainerStartupHealthCheckTimeoutInSeconds = ptr.Int32(spec.HealthCheckTimeoutInSEC)
	}
	if spec.ModelDataDownloadTimeoutInSEC > 0 {
		variant.ModelDataDownloadTimeoutInSeconds = ptr.Int32(spec.ModelDataDownloadTimeoutInSEC)
	}
	_, err = d.api.CreateEndpointConfig(ctx, &sagemaker.CreateEndpointConfigInput{
		EndpointConfigName: ptr.String(name),
		ProductionVariants: []smtypes.ProductionVariant{variant},
	})
	if err != nil {
		d.rollback(ctx, name, false)
		return "", errorx.CreateResourceFailed(err, errorx.Ctx().Set("endpoint_config_name", name))
	}

	slog.InfoContext(ctx, "create sagemaker endpoint", slog.String("endpoint_name", name),
		slog.String("instance_type", spec.InstanceType), slog.Any("instance_count", spec.InstanceCount))
	_, err = d.api.CreateEndpoint(ctx, &sagemaker.CreateEndpointInput{
		EndpointName:       ptr.String(name),
		EndpointConfigName: ptr.String(name),
	})
	if err != nil {
		d.rollback(ctx, name, true)
		return "", errorx.CreateResourceFailed(err, errorx.Ctx().Set("endpoint_name", name))
	}
	return name, nil
}

// rollback deletes the model and, if created, the endpoint config of name.
// Failures are only logged, the create error is what the caller sees.
func (d *Deployer) rollback(ctx context.Context, name string, endpointConfigCreated bool) {
	if endpointConfigCreated {
		_, err := d.api.DeleteEndpointConfig(ctx, &sagemaker.DeleteEndpointConfigInput{
			EndpointConfigName: ptr.String(name),
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to delete endpoint config", slog.String("endpoint_config_name", name), slog.Any("error", err))
		}
	}
	_, err := d.api.DeleteModel(ctx, &sagemaker.DeleteModelInput{
		ModelName: ptr.String(name),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete sagemaker model", slog.String("model_name", name), slog.Any("error", err))
	}
}

func (s ModelSpec) validate() error {
	switch {
	case s.EndpointName == "":
		return errors.New("endpoint name is empty")
	case s.ExecutionRoleArn == "":
		return errors.New("execution role is empty")
	case s.Image == "":
		return errors.New("image uri is empty")
	case s.InstanceType == "":
		return errors.New("instance type is empty")
	case s.InstanceCount <= 0:
		return fmt.Errorf("invalid instance count %d", s.InstanceCount)
	}
	return nil
}

func (s ModelSpec) container() *smtypes.ContainerDefinition {
	c := &smtypes.ContainerDefinition{
		Image:       ptr.String(s.Image),
		Environment: s.Environment,
	}
	if s.ModelDataURL == "" {
		return c
	}
	// compressed artifacts without an EULA go through ModelDataUrl
	if !s.ModelDataUncompressed && s.AcceptEula == nil {
		c.ModelDataUrl = ptr.String(s.ModelDataURL)
		return c
	}

	src := &smtypes.S3ModelDataSource{
		S3Uri:           ptr.String(s.ModelDataURL),
		S3DataType:      smtypes.S3ModelDataTypeS3Object,
		CompressionType: smtypes.ModelCompressionTypeGzip,
	}
	if s.ModelDataUncompressed {
		src.S3DataType = smtypes.S3ModelDataTypeS3Prefix
		src.CompressionType = smtypes.ModelCompressionTypeNone
	}
	if s.AcceptEula != nil {
		src.ModelAccessConfig = &smtypes.ModelAccessConfig{AcceptEula: ptr.Bool(*s.AcceptEula)}
	}
	c.ModelDataSource = &smtypes.ModelDataSource{S3DataSource: src}
	return c
}

// EndpointStatus returns the current status of an endpoint and its failure reason, if any.
func (d *Deployer) EndpointStatus(ctx context.Context, endpointName string) (smtypes.EndpointStatus, string, error) {
	out, err := d.api.DescribeEndpoint(ctx, &sagemaker.DescribeEndpointInput{
		EndpointName: ptr.String(endpointName),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to describe endpoint %s: %w", endpointName, err)
	}
	return out.EndpointStatus, ptrValue(out.FailureReason), nil
}

var errEndpointCreating = errors.New("endpoint is still creating")

// WaitForEndpoint polls the endpoint status until it leaves the Creating state.
// It gives up with ErrDeployTimeout after the max wait, returns ErrEndpointFailed
// when the endpoint fails, and stops when ctx is cancelled.
func (d *Deployer) WaitForEndpoint(ctx context.Context, endpointName string) (smtypes.EndpointStatus, error) {
	waitCtx, cancel := context.WithTimeout(ctx, d.maxWait)
	defer cancel()

	var status smtypes.EndpointStatus
	err := retry.Do(
		func() error {
			s, reason, err := d.EndpointStatus(waitCtx, endpointName)
			if err != nil {
				// keep polling, the status api may be throttled
				slog.ErrorContext(ctx, "failed to get endpoint status", slog.String("endpoint_name", endpointName), slog.Any("error", err))
				return err
			}
			status = s
			switch s {
			case smtypes.EndpointStatusCreating:
				return errEndpointCreating
			case smtypes.EndpointStatusFailed:
				return retry.Unrecoverable(errorx.EndpointFailed(errors.New(reason), errorx.Ctx().Set("endpoint_name", endpointName)))
			default:
				return nil
			}
		},
		retry.Context(waitCtx),
		retry.Attempts(0),
		retry.Delay(d.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.InfoContext(ctx, "waiting for endpoint", slog.String("endpoint_name", endpointName),
				slog.String("status", string(status)), slog.Any("attempt", n))
		}),
	)
	if err == nil {
		slog.InfoContext(ctx, "endpoint ready", slog.String("endpoint_name", endpointName), slog.String("status", string(status)))
		return status, nil
	}

	if errors.Is(err, errorx.ErrEndpointFailed) {
		return status, err
	}
	if ctx.Err() != nil {
		return status, ctx.Err()
	}
	if waitCtx.Err() != nil {
		return status, errorx.DeployTimeout(fmt.Errorf("endpoint %s still %s after %s", endpointName, status, d.maxWait),
			errorx.Ctx().Set("endpoint_name", endpointName))
	}
	return status, err
}
