// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package sagemaker

import (
	context "context"

	sagemakerruntime "github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	mock "github.com/stretchr/testify/mock"
)

// MockInvokeEndpointAPI is a mock for InvokeEndpointAPI.
type MockInvokeEndpointAPI struct {
	mock.Mock
}

func (m *MockInvokeEndpointAPI) InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error) {
	_ca := []interface{}{ctx, params}
	for _, fn := range optFns {
		_ca = append(_ca, fn)
	}
	ret := m.Called(_ca...)
	var r0 *sagemakerruntime.InvokeEndpointOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemakerruntime.InvokeEndpointOutput)
	}
	return r0, ret.Error(1)
}

// NewMockInvokeEndpointAPI creates a new instance of MockInvokeEndpointAPI.
func NewMockInvokeEndpointAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvokeEndpointAPI {
	mockObj := &MockInvokeEndpointAPI{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
