// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package tokenizer

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// MockTokenizer is a mock for Tokenizer.
type MockTokenizer struct {
	mock.Mock
}

func (m *MockTokenizer) Encode(ctx context.Context, text string) (int64, error) {
	ret := m.Called(ctx, text)
	var r0 int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int64)
	}
	return r0, ret.Error(1)
}

// NewMockTokenizer creates a new instance of MockTokenizer.
func NewMockTokenizer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenizer {
	mockObj := &MockTokenizer{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
