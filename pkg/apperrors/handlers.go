package apperrors

import (
	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/logger"
)

// ErrorResponse is the JSON envelope for every error reply
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode == 0 {
		appErr.HTTPCode = 500
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error",
			"code", appErr.Code,
			"error", appErr.Error(),
		)
	}

	if !h.Debug && appErr.Code == CodeInternalError {
		appErr = New(CodeInternalError, "system", "Internal server error", appErr.HTTPCode)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// Debug is switched off by the app outside development
var Debug = true

func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: Debug}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
