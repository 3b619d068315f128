package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeCredentialsRequired ErrorCode = "CREDENTIALS_REQUIRED"
	ErrCodeInvalidEmailFormat  ErrorCode = "INVALID_EMAIL_FORMAT"
	ErrCodeRefreshTokenMissing ErrorCode = "REFRESH_TOKEN_MISSING"

	ErrCodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidRefreshToken ErrorCode = "INVALID_REFRESH_TOKEN"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeAdminRequired       ErrorCode = "ADMIN_PERMISSION_REQUIRED"

	ErrCodePostNotFound     ErrorCode = "POST_NOT_FOUND"
	ErrCodeInvalidPostTitle ErrorCode = "INVALID_POST_TITLE"
	ErrCodeInvalidPostBody  ErrorCode = "INVALID_POST_BODY"
	ErrCodeNotPostAuthor    ErrorCode = "NOT_POST_AUTHOR"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrCredentialsRequired  = NewValidationError("Email and password are required", ErrCodeCredentialsRequired)
	ErrInvalidEmailFormat   = NewValidationError("Invalid email format", ErrCodeInvalidEmailFormat)
	ErrRefreshTokenRequired = NewValidationError("Refresh token is required", ErrCodeRefreshTokenMissing)

	ErrInvalidCredentials  = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidRefreshToken = NewUnauthorizedError("Invalid or expired refresh token", ErrCodeInvalidRefreshToken)
	ErrUserNotFound        = NewUnauthorizedError("User not found", ErrCodeUserNotFound)
	ErrAdminRequired       = NewForbiddenError("Admin permission required", ErrCodeAdminRequired)

	ErrPostNotFound  = NewNotFoundError("Post not found", ErrCodePostNotFound)
	ErrNotPostAuthor = NewForbiddenError("Only the author can modify this post", ErrCodeNotPostAuthor)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
