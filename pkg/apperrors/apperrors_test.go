package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("upload: %w", ErrFileTooLarge)
	assert.True(t, errors.Is(wrapped, ErrFileTooLarge))
	assert.True(t, IsCode(wrapped, CodeLimitExceeded))

	assert.True(t, errors.Is(ErrSingletonDelete, &AppError{Code: CodeIntegrityViolation}))
	assert.False(t, errors.Is(ErrSingletonDelete, ErrSingletonExists), "same code, different message")
	assert.False(t, IsCode(errors.New("plain"), CodeNotFound))
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := errors.New("bucket offline")
	err := ErrStorageUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPCode)
	assert.Contains(t, err.Error(), "bucket offline")
}

func TestAppError_JSONHidesCause(t *testing.T) {
	err := ErrInvalidInput("media", "A valid http(s) URL is required", map[string]string{"url": "ftp://x"})
	err.Err = errors.New("secret")

	raw, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"INVALID_INPUT","domain":"media","message":"A valid http(s) URL is required","details":{"url":"ftp://x"}}`, string(raw))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(debug bool, err error) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		(&GinErrorHandler{Debug: debug}).HandleGinError(c, err)
		return rec
	}

	rec := serve(false, NotFound("project", "Project not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","domain":"project","message":"Project not found"}}`, rec.Body.String())

	rec = serve(false, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
