package errors

import (
	"fmt"
	"net/http"

	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	MalformedPayloadError ErrorType = "MALFORMED_PAYLOAD"
	NotFoundError         ErrorType = "NOT_FOUND"
	ServerError           ErrorType = "SERVER_ERROR"
	UpstreamError         ErrorType = "UPSTREAM_DELIVERY_FAILED"
	MethodNotAllowedError ErrorType = "METHOD_NOT_ALLOWED"
	RateLimitError        ErrorType = "RATE_LIMITED"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// Unwrap exposes the underlying raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Helper functions for common errors

func MalformedPayload() *AppError {
	return &AppError{
		Type:       MalformedPayloadError,
		Message:    "Invalid request payload.",
		HTTPStatus: http.StatusBadRequest,
	}
}

func InvalidEmail() *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "Please provide a valid email address.",
		HTTPStatus: http.StatusBadRequest,
	}
}

func MessageTooLong(limit int) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    fmt.Sprintf("Message must be %d characters or fewer.", limit),
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// UpstreamDeliveryFailed wraps a failed forward to the upstream forms API.
// The operator-facing detail is logged; the client only ever sees message.
func UpstreamDeliveryFailed(err error, message string) *AppError {
	logger.GetLogger().Errorw("Upstream delivery failed", "error", err)
	return &AppError{
		Type:       UpstreamError,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func MethodNotAllowed() *AppError {
	return &AppError{
		Type:       MethodNotAllowedError,
		Message:    "Method not allowed.",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

func RateLimited(message string) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, MalformedPayloadError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case UpstreamError:
		return http.StatusBadGateway
	case MethodNotAllowedError:
		return http.StatusMethodNotAllowed
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
