package types

import (
	"encoding/json"
	"fmt"
	"time"

	"opencsg.com/fmbench/common/errorx"
)

const (
	PayloadInputsKey     = "inputs"
	PayloadParametersKey = "parameters"

	ResponseGeneratedTextKey  = "generated_text"
	ResponsePredictedLabelKey = "predicted_label"
)

// ModelKind selects how a managed-API model is invoked.
type ModelKind int

const (
	ModelKindCompletion ModelKind = iota
	ModelKindEmbedding
)

func (k ModelKind) String() string {
	switch k {
	case ModelKindCompletion:
		return "completion"
	case ModelKindEmbedding:
		return "embedding"
	default:
		return "unknown"
	}
}

// InferenceSpec holds per-predictor payload shaping directives.
type InferenceSpec struct {
	// invoke the endpoint with (inputs, parameters) instead of the whole payload
	SplitInputAndParameters bool `json:"split_input_and_parameters" yaml:"split_input_and_parameters"`
}

// PredictionPayload is one request, e.g. {"inputs": "...", "parameters": {"max_new_tokens": 100}}.
type PredictionPayload map[string]any

func (p PredictionPayload) Inputs() (any, bool) {
	v, ok := p[PayloadInputsKey]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (p PredictionPayload) Parameters() map[string]any {
	params, _ := p[PayloadParametersKey].(map[string]any)
	return params
}

// InputText renders payload inputs as prompt text. Structured inputs are rendered as JSON.
func InputText(inputs any) string {
	switch v := inputs.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

type PredictionResponse struct {
	// normalized response body, always carries generated_text
	ResponseJSON     map[string]any `json:"response_json"`
	GeneratedText    string         `json:"generated_text"`
	Latency          time.Duration  `json:"latency"`
	PromptTokens     int64          `json:"prompt_tokens"`
	CompletionTokens int64          `json:"completion_tokens"`
}

// PredictionResult is either a successful PredictionResponse or the reason the prediction failed.
type PredictionResult struct {
	response PredictionResponse
	err      error
}

func PredictionSuccess(resp PredictionResponse) PredictionResult {
	return PredictionResult{response: resp}
}

func PredictionFailure(err error) PredictionResult {
	if err == nil {
		err = errorx.ErrUnknown
	}
	return PredictionResult{err: err}
}

func (r PredictionResult) OK() bool {
	return r.err == nil
}

// Response returns the response and true on success, or a zero response and false on failure.
func (r PredictionResult) Response() (PredictionResponse, bool) {
	if r.err != nil {
		return PredictionResponse{}, false
	}
	return r.response, true
}

func (r PredictionResult) Err() error {
	return r.err
}
