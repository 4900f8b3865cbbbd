package sagemaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go/ptr"
	"github.com/spf13/cast"
)

const (
	DefaultContentType = "application/json"
	DefaultAccept      = "application/json"
)

// InvokeEndpointAPI is the subset of the sagemakerruntime client used to run inference.
type InvokeEndpointAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// Invoker sends data to one endpoint and returns the raw response body.
// args are extra InvokeEndpoint arguments (ContentType, CustomAttributes, TargetModel...), may be nil.
type Invoker interface {
	Predict(ctx context.Context, data any, args map[string]any) ([]byte, error)
	EndpointName() string
}

var _ Invoker = (*RuntimeClient)(nil)

type RuntimeClient struct {
	api          InvokeEndpointAPI
	endpointName string
	contentType  string
	accept       string
}

type RuntimeOption func(*RuntimeClient)

func WithContentType(contentType string) RuntimeOption {
	return func(c *RuntimeClient) {
		if contentType != "" {
			c.contentType = contentType
		}
	}
}

func WithAccept(accept string) RuntimeOption {
	return func(c *RuntimeClient) {
		if accept != "" {
			c.accept = accept
		}
	}
}

func NewRuntimeClient(api InvokeEndpointAPI, endpointName string, opts ...RuntimeOption) (*RuntimeClient, error) {
	if api == nil {
		return nil, errors.New("sagemaker runtime api is nil")
	}
	if endpointName == "" {
		return nil, errors.New("endpoint name is empty")
	}
	c := &RuntimeClient{
		api:          api,
		endpointName: endpointName,
		contentType:  DefaultContentType,
		accept:       DefaultAccept,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *RuntimeClient) EndpointName() string {
	return c.endpointName
}

func (c *RuntimeClient) Predict(ctx context.Context, data any, args map[string]any) ([]byte, error) {
	body, err := serialize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request for endpoint %s: %w", c.endpointName, err)
	}

	input := &sagemakerruntime.InvokeEndpointInput{
		EndpointName: ptr.String(c.endpointName),
		Body:         body,
		ContentType:  ptr.String(c.contentType),
		Accept:       ptr.String(c.accept),
	}
	if err := applyInvokeArgs(input, args); err != nil {
		return nil, err
	}

	out, err := c.api.InvokeEndpoint(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke endpoint %s: %w", c.endpointName, err)
	}
	return out.Body, nil
}

// serialize encodes data as JSON, raw bytes are sent as they are.
func serialize(data any) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(v)
	}
}

func applyInvokeArgs(input *sagemakerruntime.InvokeEndpointInput, args map[string]any) error {
	for k, v := range args {
		var target **string
		switch k {
		case "ContentType":
			target = &input.ContentType
		case "Accept":
			target = &input.Accept
		case "CustomAttributes":
			target = &input.CustomAttributes
		case "TargetModel":
			target = &input.TargetModel
		case "TargetVariant":
			target = &input.TargetVariant
		case "TargetContainerHostname":
			target = &input.TargetContainerHostname
		case "InferenceId":
			target = &input.InferenceId
		case "InferenceComponentName":
			target = &input.InferenceComponentName
		default:
			return fmt.Errorf("unsupported invoke argument %s for endpoint %s", k, ptrValue(input.EndpointName))
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("invalid invoke argument %s: %w", k, err)
		}
		*target = ptr.String(s)
	}
	return nil
}

func ptrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
