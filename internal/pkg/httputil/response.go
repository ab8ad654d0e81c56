package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
)

const RequestIDKey = "request_id"

type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		RequestID: GetRequestID(c),
	})
}

func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: GetRequestID(c),
	})
}

// ValidationError renders binding failures. Validator errors are listed per
// JSON field; anything else (malformed JSON, wrong types) gets a generic message.
func ValidationError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Error:     "invalid request body",
		Code:      apperror.CodeValidation,
		RequestID: GetRequestID(c),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Fields[jsonFieldName(fe)] = fieldMessage(fe)
		}
	}

	c.JSON(http.StatusBadRequest, resp)
}

func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     "internal server error",
		Code:      apperror.CodeInternal,
		RequestID: GetRequestID(c),
	})
}

// HandleError writes the response for err and records it on the context so the
// access log carries the underlying cause.
func HandleError(c *gin.Context, err error) {
	appErr := apperror.FromDomain(err)
	_ = c.Error(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		InternalError(c)
		return
	}

	ErrorWithCode(c, appErr.StatusCode, appErr.Code, appErr.Message)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func jsonFieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
