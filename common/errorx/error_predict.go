package errorx

import "fmt"

const errPredictPrefix = "PRED-ERR"

type errPredictCode int

type errPredict struct {
	code errPredictCode
	msg  string
}

func (err errPredict) Error() string {
	return err.Code() + ": " + err.msg
}

func (err errPredict) Code() string {
	return errPredictPrefix + "-" + fmt.Sprintf("%d", err.code)
}

func (err errPredict) CustomError() CustomError {
	return CustomError{
		Prefix: errPredictPrefix,
		Code:   int(err.code),
	}
}

const (
	// --- PRED-ERR-xxx: prediction failures ---
	missingInputs errPredictCode = iota + 1
	predictorNotReady
	invokeFailed
	malformedResponse
	emptyResponse
	tokenizeFailed
	unsupportedBackend
)

var (
	// payload has no "inputs" field
	ErrMissingInputs = errPredict{code: missingInputs, msg: "payload has no inputs"}
	// the predictor was constructed without a working client
	ErrPredictorNotReady = errPredict{code: predictorNotReady, msg: "predictor client is not initialized"}
	ErrInvokeFailed      = errPredict{code: invokeFailed, msg: "failed to invoke model"}
	// response body is not the expected JSON shape
	ErrMalformedResponse = errPredict{code: malformedResponse, msg: "malformed model response"}
	// response parsed but carries no generated text
	ErrEmptyResponse      = errPredict{code: emptyResponse, msg: "model response has no generated text"}
	ErrTokenizeFailed     = errPredict{code: tokenizeFailed, msg: "failed to count tokens"}
	ErrUnsupportedBackend = errPredict{code: unsupportedBackend, msg: "unsupported predictor backend"}
)

var errPredictMap = map[errPredictCode]errPredict{
	missingInputs:      ErrMissingInputs,
	predictorNotReady:  ErrPredictorNotReady,
	invokeFailed:       ErrInvokeFailed,
	malformedResponse:  ErrMalformedResponse,
	emptyResponse:      ErrEmptyResponse,
	tokenizeFailed:     ErrTokenizeFailed,
	unsupportedBackend: ErrUnsupportedBackend,
}

func InvokeFailed(err error, ctx context) error {
	return wrap(err, ErrInvokeFailed, ctx)
}

func MalformedResponse(err error, ctx context) error {
	return wrap(err, ErrMalformedResponse, ctx)
}

func TokenizeFailed(err error, ctx context) error {
	return wrap(err, ErrTokenizeFailed, ctx)
}

func UnsupportedBackend(err error, ctx context) error {
	return wrap(err, ErrUnsupportedBackend, ctx)
}

func EmptyResponse(err error, ctx context) error {
	return wrap(err, ErrEmptyResponse, ctx)
}

func PredictorNotReady(err error, ctx context) error {
	return wrap(err, ErrPredictorNotReady, ctx)
}
