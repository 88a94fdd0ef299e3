package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Error renders err under statusCode. ozzo field errors become a
// field -> message map so forms can be re-rendered next to their inputs.
func Error(c *gin.Context, statusCode int, message string, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		ErrorWithDetails(c, statusCode, "VALIDATION_FAILED", message, FieldErrors(fieldErrs))
		return
	}
	ErrorResponse(c, statusCode, http.StatusText(statusCode), message)
}

// FieldErrors flattens ozzo errors into field -> message.
func FieldErrors(errs validation.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

func ValidationFailed(c *gin.Context, err error) {
	Error(c, http.StatusUnprocessableEntity, "Validation failed", err)
}

// BindFailed reports a request that could not be decoded into its form
// struct as a 422, naming the offending field when the decoder knows it.
func BindFailed(c *gin.Context, err error) {
	details := map[string]string{}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		details[typeErr.Field] = "must be a " + typeErr.Type.String()
	case errors.As(err, &syntaxErr):
		details["body"] = "malformed JSON"
	default:
		details["body"] = err.Error()
	}
	ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", details)
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
