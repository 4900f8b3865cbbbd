// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package bedrock

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	bedrock "opencsg.com/fmbench/builder/bedrock"
)

// MockModelClient is a mock for ModelClient.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Completion(ctx context.Context, req bedrock.CompletionRequest) (*bedrock.CompletionResponse, error) {
	ret := m.Called(ctx, req)
	var r0 *bedrock.CompletionResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*bedrock.CompletionResponse)
	}
	return r0, ret.Error(1)
}

func (m *MockModelClient) Embedding(ctx context.Context, req bedrock.EmbeddingRequest) (*bedrock.EmbeddingResponse, error) {
	ret := m.Called(ctx, req)
	var r0 *bedrock.EmbeddingResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*bedrock.EmbeddingResponse)
	}
	return r0, ret.Error(1)
}

// NewMockModelClient creates a new instance of MockModelClient.
func NewMockModelClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockModelClient {
	mockObj := &MockModelClient{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
