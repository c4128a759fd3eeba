package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/valuegen/internal/errors"
)

// HttpError represents an HTTP error with a specific status code and message
type HttpError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates a new HttpError with the given status code and message
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewHttpErrorWithDetails creates a new HttpError with additional details
func NewHttpErrorWithDetails(statusCode int, message string, details any) *HttpError {
	return &HttpError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

// ErrUnprocessableEntityWithDetails creates a 422 Unprocessable Entity error with validation details
func ErrUnprocessableEntityWithDetails(message string, details any) *HttpError {
	return NewHttpErrorWithDetails(http.StatusUnprocessableEntity, message, details)
}

// ErrRequestEntityTooLarge creates a 413 Request Entity Too Large error
func ErrRequestEntityTooLarge(message string) *HttpError {
	return NewHttpError(http.StatusRequestEntityTooLarge, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message)
}

// ErrorDetail is one structured error in a response body
type ErrorDetail struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Line        int      `json:"line,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// fromError converts a generation failure into an HttpError. Descriptor
// problems are the client's fault; anything else is ours.
func fromError(err error) *HttpError {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	details := errorDetails(err)
	switch errors.CodeOf(err) {
	case errors.SyntaxErrorCode, errors.ValidationErrorCode:
		return ErrUnprocessableEntityWithDetails("invalid value type descriptor", details)
	default:
		return NewHttpErrorWithDetails(http.StatusInternalServerError, "builder generation failed", details)
	}
}

func errorDetails(err error) []ErrorDetail {
	var multiple *errors.MultipleErrors
	if errors.As(err, &multiple) {
		details := make([]ErrorDetail, 0, multiple.Count())
		for _, inner := range multiple.Errors {
			details = append(details, errorDetail(inner))
		}
		return details
	}

	var valuegenErr errors.ValuegenError
	if errors.As(err, &valuegenErr) {
		return []ErrorDetail{errorDetail(valuegenErr)}
	}
	return []ErrorDetail{{Code: errors.UnknownErrorCode.String(), Message: err.Error()}}
}

func errorDetail(err errors.ValuegenError) ErrorDetail {
	return ErrorDetail{
		Code:        err.ErrorCode().String(),
		Message:     err.Error(),
		Line:        err.Location().Line,
		Suggestions: err.Suggestions(),
	}
}

// errorHandler renders every error as a JSON HttpError carrying the request id
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *HttpError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &echoErr):
		httpErr = NewHttpError(echoErr.Code, fmt.Sprint(echoErr.Message))
	default:
		httpErr = fromError(err)
	}

	response := *httpErr
	response.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(response.StatusCode)
		return
	}
	_ = c.JSON(response.StatusCode, response)
}
