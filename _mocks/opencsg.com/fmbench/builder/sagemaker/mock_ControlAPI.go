// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package sagemaker

import (
	context "context"

	sagemaker "github.com/aws/aws-sdk-go-v2/service/sagemaker"
	mock "github.com/stretchr/testify/mock"
)

// MockControlAPI is a mock for ControlAPI.
type MockControlAPI struct {
	mock.Mock
}

func (m *MockControlAPI) CreateModel(ctx context.Context, params *sagemaker.CreateModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateModelOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.CreateModelOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.CreateModelOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockControlAPI) CreateEndpointConfig(ctx context.Context, params *sagemaker.CreateEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointConfigOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.CreateEndpointConfigOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.CreateEndpointConfigOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockControlAPI) CreateEndpoint(ctx context.Context, params *sagemaker.CreateEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.CreateEndpointOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.CreateEndpointOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.CreateEndpointOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockControlAPI) DescribeEndpoint(ctx context.Context, params *sagemaker.DescribeEndpointInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DescribeEndpointOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.DescribeEndpointOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.DescribeEndpointOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockControlAPI) DeleteModel(ctx context.Context, params *sagemaker.DeleteModelInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DeleteModelOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.DeleteModelOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.DeleteModelOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockControlAPI) DeleteEndpointConfig(ctx context.Context, params *sagemaker.DeleteEndpointConfigInput, optFns ...func(*sagemaker.Options)) (*sagemaker.DeleteEndpointConfigOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *sagemaker.DeleteEndpointConfigOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sagemaker.DeleteEndpointConfigOutput)
	}
	return r0, ret.Error(1)
}

// NewMockControlAPI creates a new instance of MockControlAPI.
func NewMockControlAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockControlAPI {
	mockObj := &MockControlAPI{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
