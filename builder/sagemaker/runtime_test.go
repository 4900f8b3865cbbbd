package sagemaker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mocksm "opencsg.com/fmbench/_mocks/opencsg.com/fmbench/builder/sagemaker"
	"opencsg.com/fmbench/builder/sagemaker"
)

func TestRuntimeClient_New(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)

	_, err := sagemaker.NewRuntimeClient(nil, "ep")
	require.Error(t, err)
	_, err = sagemaker.NewRuntimeClient(api, "")
	require.Error(t, err)

	c, err := sagemaker.NewRuntimeClient(api, "ep")
	require.NoError(t, err)
	require.Equal(t, "ep", c.EndpointName())
}

func TestRuntimeClient_PredictWholePayload(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)
	c, err := sagemaker.NewRuntimeClient(api, "llama-ep", sagemaker.WithAccept("application/jsonlines"))
	require.NoError(t, err)

	payload := map[string]any{"inputs": "hi", "parameters": map[string]any{"max_new_tokens": 10}}
	api.On("InvokeEndpoint", mock.Anything, mock.MatchedBy(func(in *sagemakerruntime.InvokeEndpointInput) bool {
		var got map[string]any
		if err := json.Unmarshal(in.Body, &got); err != nil {
			return false
		}
		return *in.EndpointName == "llama-ep" &&
			*in.ContentType == "application/json" &&
			*in.Accept == "application/jsonlines" &&
			got["inputs"] == "hi"
	})).Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`[{"generated_text":"hello"}]`)}, nil)

	body, err := c.Predict(context.Background(), payload, nil)
	require.NoError(t, err)
	require.Equal(t, `[{"generated_text":"hello"}]`, string(body))
}

func TestRuntimeClient_PredictWithArgs(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)
	c, err := sagemaker.NewRuntimeClient(api, "ep")
	require.NoError(t, err)

	args := map[string]any{
		"CustomAttributes": "accept_eula=true",
		"TargetVariant":    "AllTraffic",
	}
	api.On("InvokeEndpoint", mock.Anything, mock.MatchedBy(func(in *sagemakerruntime.InvokeEndpointInput) bool {
		return string(in.Body) == "raw prompt" &&
			*in.CustomAttributes == "accept_eula=true" &&
			*in.TargetVariant == "AllTraffic"
	})).Return(&sagemakerruntime.InvokeEndpointOutput{Body: []byte(`{}`)}, nil)

	_, err = c.Predict(context.Background(), []byte("raw prompt"), args)
	require.NoError(t, err)
}

func TestRuntimeClient_PredictError(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)
	c, err := sagemaker.NewRuntimeClient(api, "ep")
	require.NoError(t, err)

	api.On("InvokeEndpoint", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	_, err = c.Predict(context.Background(), map[string]any{"inputs": "x"}, nil)
	require.ErrorContains(t, err, "throttled")

	_, err = c.Predict(context.Background(), map[string]any{"inputs": "x"}, map[string]any{"TargetModel": []string{"a"}})
	require.Error(t, err)
}

func TestRuntimeClient_PredictUnsupportedArgs(t *testing.T) {
	api := mocksm.NewMockInvokeEndpointAPI(t)
	c, err := sagemaker.NewRuntimeClient(api, "ep")
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), "hi", map[string]any{
		"TargetVariant":  "AllTraffic",
		"max_new_tokens": 100,
	})
	require.ErrorContains(t, err, "unsupported invoke argument max_new_tokens")
	api.AssertNotCalled(t, "InvokeEndpoint", mock.Anything, mock.Anything)
}
