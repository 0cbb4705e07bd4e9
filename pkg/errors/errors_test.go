package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeDraftNotFound, http.StatusNotFound},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeLLMCallFailed, http.StatusBadGateway},
		{CodeLLMProviderError, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus)
		})
	}
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	base := ErrInvalidParam.WithDetail("topic is empty")
	wrapped := fmt.Errorf("generate: %w", base)

	assert.True(t, IsAppError(wrapped))
	got := AsAppError(wrapped)
	assert.Equal(t, CodeInvalidParam, got.Code)
	assert.Equal(t, "topic is empty", got.Detail)
	assert.True(t, stderrors.Is(wrapped, ErrInvalidParam))

	// 预定义错误不被 WithDetail 修改
	assert.Empty(t, ErrInvalidParam.Detail)
}

func TestAsAppErrorFallsBackToUnknown(t *testing.T) {
	got := AsAppError(stderrors.New("plain"))
	assert.Equal(t, CodeUnknown, got.Code)
	assert.EqualError(t, got.Unwrap(), "plain")
}
