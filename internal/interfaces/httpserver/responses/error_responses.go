package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope returned by every endpoint. Only
// detail is guaranteed; code carries the error UUID when one was
// assigned.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// HandleError maps a domain error onto an HTTP response
func HandleError(reqCtx *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())

		detail := platformErr.Message
		if detail == "" {
			detail = message
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Detail: detail,
			Code:   platformErr.GetUUID(),
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: message})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	statusCode := platformerrors.ErrorTypeToHTTPStatus(errorType)
	reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{Detail: message})
}
