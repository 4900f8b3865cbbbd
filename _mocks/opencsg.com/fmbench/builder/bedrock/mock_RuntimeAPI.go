// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package bedrock

import (
	context "context"

	bedrockruntime "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	mock "github.com/stretchr/testify/mock"
)

// MockRuntimeAPI is a mock for RuntimeAPI.
type MockRuntimeAPI struct {
	mock.Mock
}

func (m *MockRuntimeAPI) Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	_ca := []interface{}{ctx, params}
	for _, fn := range optFns {
		_ca = append(_ca, fn)
	}
	ret := m.Called(_ca...)
	var r0 *bedrockruntime.ConverseOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*bedrockruntime.ConverseOutput)
	}
	return r0, ret.Error(1)
}

func (m *MockRuntimeAPI) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	_ca := []interface{}{ctx, params}
	for _, fn := range optFns {
		_ca = append(_ca, fn)
	}
	ret := m.Called(_ca...)
	var r0 *bedrockruntime.InvokeModelOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*bedrockruntime.InvokeModelOutput)
	}
	return r0, ret.Error(1)
}

// NewMockRuntimeAPI creates a new instance of MockRuntimeAPI.
func NewMockRuntimeAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRuntimeAPI {
	mockObj := &MockRuntimeAPI{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
