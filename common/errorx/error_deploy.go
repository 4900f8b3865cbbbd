package errorx

import "fmt"

const errDeployPrefix = "DEPLOY-ERR"

type errDeployCode int

type errDeploy struct {
	code errDeployCode
	msg  string
}

func (err errDeploy) Error() string {
	return err.Code() + ": " + err.msg
}

func (err errDeploy) Code() string {
	return errDeployPrefix + "-" + fmt.Sprintf("%d", err.code)
}

func (err errDeploy) CustomError() CustomError {
	return CustomError{
		Prefix: errDeployPrefix,
		Code:   int(err.code),
	}
}

const (
	// --- DEPLOY-ERR-xxx: endpoint deployment ---
	invalidExperiment errDeployCode = iota + 1
	deployTimeout
	endpointFailed
	modelNotFound
	hubTokenMissing
	createResourceFailed
)

var (
	ErrInvalidExperiment = errDeploy{code: invalidExperiment, msg: "invalid experiment config"}
	// endpoint did not leave the Creating state within the max wait
	ErrDeployTimeout = errDeploy{code: deployTimeout, msg: "timed out waiting for endpoint"}
	// endpoint reached the Failed state
	ErrEndpointFailed = errDeploy{code: endpointFailed, msg: "endpoint failed"}
	// model id/version has no JumpStart manifest entry
	ErrModelNotFound        = errDeploy{code: modelNotFound, msg: "model not found"}
	ErrHubTokenMissing      = errDeploy{code: hubTokenMissing, msg: "hub access token is missing"}
	ErrCreateResourceFailed = errDeploy{code: createResourceFailed, msg: "failed to create sagemaker resource"}
)

var errDeployMap = map[errDeployCode]errDeploy{
	invalidExperiment:    ErrInvalidExperiment,
	deployTimeout:        ErrDeployTimeout,
	endpointFailed:       ErrEndpointFailed,
	modelNotFound:        ErrModelNotFound,
	hubTokenMissing:      ErrHubTokenMissing,
	createResourceFailed: ErrCreateResourceFailed,
}

func InvalidExperiment(err error, ctx context) error {
	return wrap(err, ErrInvalidExperiment, ctx)
}

func DeployTimeout(err error, ctx context) error {
	return wrap(err, ErrDeployTimeout, ctx)
}

func EndpointFailed(err error, ctx context) error {
	return wrap(err, ErrEndpointFailed, ctx)
}

func ModelNotFound(err error, ctx context) error {
	return wrap(err, ErrModelNotFound, ctx)
}

func CreateResourceFailed(err error, ctx context) error {
	return wrap(err, ErrCreateResourceFailed, ctx)
}
