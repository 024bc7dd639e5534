// Package api provides error handling utilities for HTTP APIs
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/logger"
	"github.com/mantonx/cinevault/internal/types"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error   ErrorDetails `json:"error"`
	Success bool         `json:"success"`
}

// ErrorDetails contains detailed error information
type ErrorDetails struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Violations []string               `json:"violations,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
}

// RespondWithError sends a structured error response
func RespondWithError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.NewInternalError("internal server error", err)
	}

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetails{
			Code:       string(appErr.Code),
			Message:    appErr.Message,
			Details:    appErr.Details,
			Violations: appErr.Violations,
			RequestID:  requestID,
		},
	}
	// Internal context can carry driver messages; keep it in the logs only.
	if appErr.HTTPStatus < http.StatusInternalServerError {
		response.Error.Context = appErr.Context
	}

	logError(c, appErr, requestID)

	status := appErr.HTTPStatus
	if status == 0 {
		status = types.HTTPStatusFromErrorCode(appErr.Code)
	}
	c.AbortWithStatusJSON(status, response)
}

// RespondWithValidationError sends a validation error response
func RespondWithValidationError(c *gin.Context, message string, violations ...string) {
	RespondWithError(c, types.NewValidationError(message, violations...))
}

// RespondWithNotFound sends a not found error response
func RespondWithNotFound(c *gin.Context, resource string, id string) {
	RespondWithError(c, types.NewNotFoundError(resource, id))
}

// logError logs the error with appropriate severity
func logError(c *gin.Context, err *types.AppError, requestID string) {
	fields := []interface{}{
		"error_code", err.Code,
		"error_message", err.Message,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if err.Cause != nil {
		fields = append(fields, "cause", err.Cause.Error())
	}

	switch err.Severity {
	case types.SeverityCritical, types.SeverityError:
		logger.Error("request failed", fields...)
	case types.SeverityWarning:
		logger.Warn("request rejected", fields...)
	default:
		logger.Debug("request rejected", fields...)
	}
}

// ErrorMiddleware is a middleware that recovers from panics and handles errors
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch v := r.(type) {
				case error:
					err = v
				case string:
					err = errors.New(v)
				default:
					err = errors.New("unknown panic")
				}

				appErr := types.NewInternalError("panic recovered", err)
				appErr.Severity = types.SeverityCritical

				RespondWithError(c, appErr)
			}
		}()

		c.Next()
	}
}

// NotFoundHandler answers unmatched routes with the error envelope
func NotFoundHandler(c *gin.Context) {
	RespondWithError(c, types.NewAppError(types.ErrorCodeNotFound, "route not found", http.StatusNotFound).
		WithContext("path", c.Request.URL.Path))
}
