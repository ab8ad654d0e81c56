package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/user-management-backend/internal/domain"
)

const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromDomain maps a domain sentinel to its HTTP representation. Messages are
// fixed strings so storage details never reach a client. Unknown errors are internal.
func FromDomain(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrEmailTaken):
		return &AppError{Code: CodeEmailTaken, Message: "email already registered", StatusCode: http.StatusConflict, Err: err}
	case errors.Is(err, domain.ErrWeakPassword):
		return &AppError{
			Code:       CodeWeakPassword,
			Message:    "password must be 8 to 72 characters and include a letter, a number and one of @$!%*?&",
			StatusCode: http.StatusBadRequest,
			Err:        err,
		}
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return &AppError{Code: CodeBadRequest, Message: "no fields to update", StatusCode: http.StatusBadRequest, Err: err}
	case errors.Is(err, domain.ErrInvalidInput):
		return &AppError{Code: CodeBadRequest, Message: "invalid input", StatusCode: http.StatusBadRequest, Err: err}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &AppError{Code: CodeInvalidCredentials, Message: "invalid email or password", StatusCode: http.StatusUnauthorized, Err: err}
	default:
		return Internal(err)
	}
}

func Is(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func StatusCode(err error) int {
	return FromDomain(err).StatusCode
}
