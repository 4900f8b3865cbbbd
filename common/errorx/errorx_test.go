package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorCode(t *testing.T) {
	tests := []struct {
		code string
		want CustomError
	}{
		{"PRED-ERR-1", CustomError{Prefix: errPredictPrefix, Code: 1}},
		{"DEPLOY-ERR-2", CustomError{Prefix: errDeployPrefix, Code: 2}},
		{"not-a-code", CustomError{Prefix: errUnknownPrefix, Code: 0}},
		{"pred-err-1", CustomError{Prefix: errUnknownPrefix, Code: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseErrorCode(tt.code))
		})
	}
}

func TestCustomError_Unwrap(t *testing.T) {
	t.Run("predict", func(t *testing.T) {
		err := ErrMissingInputs.CustomError()
		assert.True(t, errors.Is(err, ErrMissingInputs))
		assert.False(t, errors.Is(err, ErrEmptyResponse))
	})

	t.Run("deploy", func(t *testing.T) {
		err := ErrDeployTimeout.CustomError()
		assert.True(t, errors.Is(err, ErrDeployTimeout))
	})

	t.Run("unknown code", func(t *testing.T) {
		err := CustomError{Prefix: errPredictPrefix, Code: 999}
		assert.True(t, errors.Is(err, ErrUnknown))
	})
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := InvokeFailed(cause, Ctx().Set("endpoint_name", "llama-ep"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrInvokeFailed))
	assert.Equal(t, "PRED-ERR-3", CodeOf(err))

	var custom CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, "PRED-ERR-3 [endpoint_name:llama-ep]", custom.Detail())
}

func TestWrap_NilCause(t *testing.T) {
	err := DeployTimeout(nil, nil)
	assert.True(t, errors.Is(err, ErrDeployTimeout))
	assert.Equal(t, "DEPLOY-ERR-2", err.Error())
}

func TestCodeOf_Unknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN-ERR-0", CodeOf(errors.New("plain")))
}
