package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest         ErrorCode = "bad_request"
	errCodeValidationFailed   ErrorCode = "validation_failed"
	errCodePayloadTooLarge    ErrorCode = "payload_too_large"
	errCodeUnprocessableMedia ErrorCode = "unprocessable_media"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}
	if id, ok := logger.RequestID(c.Request.Context()); ok {
		response.Error.RequestID = id
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondPayloadTooLarge sends a 413 Request Entity Too Large response
func respondPayloadTooLarge(c *gin.Context, limit int64) {
	respondWithError(c, http.StatusRequestEntityTooLarge, errCodePayloadTooLarge, "File is too large", formatBytes(limit))
}

// respondUnprocessable sends a 422 Unprocessable Entity response
func respondUnprocessable(c *gin.Context, message string) {
	respondWithError(c, http.StatusUnprocessableEntity, errCodeUnprocessableMedia, message)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}
