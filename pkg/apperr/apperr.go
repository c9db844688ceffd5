// Package apperr defines the application failure type shared by every layer.
//
// A failure is a single concrete type carrying a Kind discriminant, an error
// code from the taxonomy, a human message and a structured details map.
// Instances are constructed at the point of failure and never mutated
// afterwards; severity and retriability are derived from the Kind by the
// match tables in classify.go, not stored on the value.
package apperr

import (
	"fmt"

	"github.com/elemental-io/elemental/pkg/codes"
)

// Kind discriminates failure families independently of the HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotAllowed
	KindNotFound
	KindDuplicate
	KindConflict
	KindAuthentication
	KindForbidden
	KindExternalService
	KindConfiguration
	KindRateLimit
)

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindValidation:      "validation",
	KindNotAllowed:      "not_allowed",
	KindNotFound:        "not_found",
	KindDuplicate:       "duplicate",
	KindConflict:        "conflict",
	KindAuthentication:  "authentication",
	KindForbidden:       "forbidden",
	KindExternalService: "external_service",
	KindConfiguration:   "configuration",
	KindRateLimit:       "rate_limit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "internal"
}

// Error is the one failure type of the application.
type Error struct {
	Kind    Kind
	Code    codes.ErrorCode
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Name, e.Message)
}

// HTTPStatus returns the status fixed by the error code.
func (e *Error) HTTPStatus() int { return e.Code.Status }

// CodeName returns the symbolic code name, e.g. "USER_NOT_FOUND".
func (e *Error) CodeName() string { return e.Code.Name }

// WithDetails returns a copy with one extra details entry. The receiver is
// left untouched so values already propagating stay immutable.
func (e *Error) WithDetails(key string, value any) *Error {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// New builds an Error. An empty message falls back to the code's default;
// a nil details map becomes an empty one.
func New(kind Kind, code codes.ErrorCode, message string, details map[string]any) *Error {
	if message == "" {
		message = code.Message
	}
	if details == nil {
		details = map[string]any{}
	}
	return &Error{Kind: kind, Code: code, Message: message, Details: details}
}

// FromCodeName rebuilds an Error from a symbolic code name that arrived
// without its original value, e.g. from another subsystem. Unknown names
// collapse to INTERNAL_SERVER_ERROR.
func FromCodeName(name, message string, details map[string]any) *Error {
	code, ok := codes.Lookup(name)
	if !ok {
		code = codes.InternalServerError
	}
	return New(kindForStatus(code.Status), code, message, details)
}

func kindForStatus(status int) Kind {
	switch status {
	case 400, 422:
		return KindValidation
	case 401:
		return KindAuthentication
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 429:
		return KindRateLimit
	case 502, 503, 504:
		return KindExternalService
	default:
		return KindInternal
	}
}

// --- fixed-code constructors (validation family) ---

// Validation builds a generic 422 failure.
func Validation(message string) *Error {
	return New(KindValidation, codes.ValidationError, message, nil)
}

// NotAllowedOp builds a 400 NOT_ALLOWED failure.
func NotAllowedOp(message string) *Error {
	return New(KindNotAllowed, codes.NotAllowed, message, nil)
}

// NotFound builds a 404 failure.
func NotFound(message string) *Error {
	return New(KindNotFound, codes.NotFound, message, nil)
}

// Duplicate builds a 409 DUPLICATE_ERROR failure.
func Duplicate(message string) *Error {
	return New(KindDuplicate, codes.DuplicateError, message, nil)
}

// Conflicted builds a 409 RESOURCE_STATE_CONFLICT failure.
func Conflicted(message string) *Error {
	return New(KindConflict, codes.ResourceStateConflict, message, nil)
}

// MissingField reports a required field absent from the input. Message and
// details are generated from the same field name so they never disagree.
func MissingField(field string) *Error {
	return New(KindValidation, codes.ValidationError,
		fmt.Sprintf("The required field '%s' is missing.", field),
		map[string]any{"field": field, "reason": "missing"})
}

// BadFormat reports a field whose value has the wrong shape.
func BadFormat(field, reason string) *Error {
	msg := fmt.Sprintf("The field '%s' has an invalid format.", field)
	if reason != "" {
		msg += fmt.Sprintf(" Reason: %s.", reason)
	}
	return New(KindValidation, codes.ValidationError, msg,
		map[string]any{"field": field, "reason": "invalid_format", "details": reason})
}

// BadLength reports a field value outside its length bounds. Either bound
// may be nil when unbounded on that side.
func BadLength(field string, minLen, maxLen *int) *Error {
	var expect string
	switch {
	case minLen != nil && maxLen != nil:
		expect = fmt.Sprintf("minimum length is %d and maximum length is %d", *minLen, *maxLen)
	case minLen != nil:
		expect = fmt.Sprintf("minimum length is %d", *minLen)
	case maxLen != nil:
		expect = fmt.Sprintf("maximum length is %d", *maxLen)
	}
	details := map[string]any{"field": field, "reason": "invalid_length"}
	if minLen != nil {
		details["min_length"] = *minLen
	}
	if maxLen != nil {
		details["max_length"] = *maxLen
	}
	return New(KindValidation, codes.ValidationError,
		fmt.Sprintf("The field '%s' has an invalid length. Expected: %s.", field, expect),
		details)
}

// BadChoice reports a value outside the allowed set for a field.
func BadChoice(field string, value any, allowed []any) *Error {
	return New(KindValidation, codes.ValidationError,
		fmt.Sprintf("The value '%v' is not a valid choice for field '%s'.", value, field),
		map[string]any{"field": field, "reason": "invalid_choice", "value": value, "allowed_choices": allowed})
}

// --- authentication family (401) ---

// Authentication builds a 401 failure with a caller-supplied code from the
// same status family (TOKEN_EXPIRED, INVALID_TOKEN, ...).
func Authentication(code codes.ErrorCode, message string) *Error {
	return New(KindAuthentication, code, message, nil)
}

// Unauthorized reports that no identity was established at all.
func Unauthorized(message string) *Error {
	return New(KindAuthentication, codes.Unauthorized, message, nil)
}

// ExpiredToken reports a valid signature whose expiry has passed.
func ExpiredToken() *Error {
	return New(KindAuthentication, codes.TokenExpired, "", nil)
}

// InvalidTokenErr reports any non-expiry token failure.
func InvalidTokenErr(message string) *Error {
	return New(KindAuthentication, codes.InvalidToken, message, nil)
}

// RevokedToken reports a token invalidated server-side.
func RevokedToken() *Error {
	return New(KindAuthentication, codes.TokenRevoked, "", nil)
}

// BadCredentials reports a failed login attempt.
func BadCredentials() *Error {
	return New(KindAuthentication, codes.InvalidCredentials, "", nil)
}

// --- forbidden family (403) ---

// Forbidden reports an authenticated identity lacking access.
func Forbidden(message string) *Error {
	return New(KindForbidden, codes.Forbidden, message, nil)
}

// DisabledAccount reports an inactive or suspended account.
func DisabledAccount() *Error {
	return New(KindForbidden, codes.AccountDisabled, "", nil)
}

// UnverifiedAccount reports an account pending verification.
func UnverifiedAccount() *Error {
	return New(KindForbidden, codes.AccountNotVerified, "", nil)
}

// --- external-service family (502/503/504) ---

// External builds a 502 EXTERNAL_SERVICE_ERROR failure.
func External(message string, details map[string]any) *Error {
	return New(KindExternalService, codes.ExternalServiceError, message, details)
}

// ExternalUnavailable reports an unreachable downstream dependency.
func ExternalUnavailable(message string) *Error {
	return New(KindExternalService, codes.ServiceUnavailable, message, nil)
}

// ExternalTimeout reports a downstream dependency that was too slow.
func ExternalTimeout(service string, timeoutSeconds float64) *Error {
	msg := fmt.Sprintf("Service '%s' did not respond in time.", service)
	if timeoutSeconds > 0 {
		msg += fmt.Sprintf(" (Timeout: %gs)", timeoutSeconds)
	}
	return New(KindExternalService, codes.GatewayTimeout, msg,
		map[string]any{"service": service, "timeout_seconds": timeoutSeconds})
}

// --- application family ---

// Configuration reports a fault in the application's own configuration.
func Configuration(message string) *Error {
	return New(KindConfiguration, codes.InternalServerError, message, nil)
}

// RateLimited reports a client exceeding its quota.
func RateLimited(message string) *Error {
	return New(KindRateLimit, codes.RateLimitError, message, nil)
}

// Internal builds an unclassified 500 failure.
func Internal(message string) *Error {
	return New(KindInternal, codes.InternalServerError, message, nil)
}
