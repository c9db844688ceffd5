// Package envelope builds the uniform JSON wrapper applied to every API
// response, success or failure.
package envelope

import (
	"time"

	"github.com/elemental-io/elemental/pkg/apperr"
)

const (
	fallbackCode    = "INTERNAL_ERROR"
	fallbackMessage = "An unexpected error occurred."
)

// ErrorBody is the error half of an envelope. Details is always an object,
// never null.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// Envelope is the uniform response shape. Exactly one of Data/Error is
// non-null, determined solely by StatusCode.
type Envelope struct {
	Success    bool       `json:"success"`
	StatusCode int        `json:"status_code"`
	Path       string     `json:"path"`
	Method     string     `json:"method"`
	Timestamp  float64    `json:"timestamp"`
	Data       any        `json:"data"`
	Error      *ErrorBody `json:"error"`
}

// IsSuccess reports whether a status code counts as success.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// Build wraps a success payload. The status code decides the branch: a
// non-2xx code produces a failure envelope with fallback error fields, so
// callers cannot end up with data and error populated at once.
func Build(data any, statusCode int, path, method string) Envelope {
	if !IsSuccess(statusCode) {
		return BuildError(statusCode, path, method, "", "", nil)
	}
	return Envelope{
		Success:    true,
		StatusCode: statusCode,
		Path:       path,
		Method:     method,
		Timestamp:  now(),
		Data:       data,
	}
}

// BuildError wraps a failure. Empty code/message fall back to generic
// internal-error values; a 2xx status code is rejected by routing through
// Build, which discards the error fields entirely.
func BuildError(statusCode int, path, method, code, message string, details map[string]any) Envelope {
	if IsSuccess(statusCode) {
		return Build(nil, statusCode, path, method)
	}
	if code == "" {
		code = fallbackCode
	}
	if message == "" {
		message = fallbackMessage
	}
	if details == nil {
		details = map[string]any{}
	}
	return Envelope{
		Success:    false,
		StatusCode: statusCode,
		Path:       path,
		Method:     method,
		Timestamp:  now(),
		Error:      &ErrorBody{Code: code, Message: message, Details: details},
	}
}

// FromError wraps a typed application failure.
func FromError(err *apperr.Error, path, method string) Envelope {
	return BuildError(err.HTTPStatus(), path, method, err.CodeName(), err.Message, err.Details)
}

func now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
