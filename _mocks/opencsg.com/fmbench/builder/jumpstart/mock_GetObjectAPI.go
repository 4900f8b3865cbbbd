// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package jumpstart

import (
	context "context"

	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	mock "github.com/stretchr/testify/mock"
)

// MockGetObjectAPI is a mock for GetObjectAPI.
type MockGetObjectAPI struct {
	mock.Mock
}

func (m *MockGetObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	ret := m.Called(ctx, params)
	var r0 *s3.GetObjectOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.GetObjectOutput)
	}
	return r0, ret.Error(1)
}

// NewMockGetObjectAPI creates a new instance of MockGetObjectAPI.
func NewMockGetObjectAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGetObjectAPI {
	mockObj := &MockGetObjectAPI{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
