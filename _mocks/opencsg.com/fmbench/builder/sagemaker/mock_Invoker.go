// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package sagemaker

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// MockInvoker is a mock for Invoker.
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Predict(ctx context.Context, data any, args map[string]any) ([]byte, error) {
	ret := m.Called(ctx, data, args)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (m *MockInvoker) EndpointName() string {
	ret := m.Called()
	return ret.String(0)
}

// NewMockInvoker creates a new instance of MockInvoker.
func NewMockInvoker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvoker {
	mockObj := &MockInvoker{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
