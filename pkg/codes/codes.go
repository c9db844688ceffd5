// Package codes is the process-wide error taxonomy: every symbolic error
// code is bound to exactly one HTTP status and a default human message.
// The catalog is populated at init and read-only afterwards.
package codes

import "net/http"

// ErrorCode binds a symbolic name to an HTTP status and default message.
type ErrorCode struct {
	Name    string
	Status  int
	Message string
}

var (
	// --- 400 Bad Request ---
	InvalidInput          = ErrorCode{Name: "INVALID_INPUT", Status: http.StatusBadRequest, Message: "The data provided is invalid."}
	MissingRequiredField  = ErrorCode{Name: "MISSING_REQUIRED_FIELD", Status: http.StatusBadRequest, Message: "A required field in the payload is missing."}
	InvalidFormat         = ErrorCode{Name: "INVALID_FORMAT", Status: http.StatusBadRequest, Message: "The data has the right fields but the wrong format."}
	InvalidQueryParameter = ErrorCode{Name: "INVALID_QUERY_PARAMETER", Status: http.StatusBadRequest, Message: "There is an error in the URL query strings."}
	NotAllowed            = ErrorCode{Name: "NOT_ALLOWED", Status: http.StatusBadRequest, Message: "The requested operation is not allowed."}

	// --- 401 Unauthorized ---
	Unauthorized        = ErrorCode{Name: "UNAUTHORIZED", Status: http.StatusUnauthorized, Message: "User is not authenticated."}
	AuthenticationError = ErrorCode{Name: "AUTHENTICATION_ERROR", Status: http.StatusUnauthorized, Message: "Authentication failed."}
	TokenExpired        = ErrorCode{Name: "TOKEN_EXPIRED", Status: http.StatusUnauthorized, Message: "The provided token has expired."}
	InvalidToken        = ErrorCode{Name: "INVALID_TOKEN", Status: http.StatusUnauthorized, Message: "The provided token is invalid."}
	TokenRevoked        = ErrorCode{Name: "TOKEN_REVOKED", Status: http.StatusUnauthorized, Message: "The token has been revoked or is outdated."}
	InvalidCredentials  = ErrorCode{Name: "INVALID_CREDENTIALS", Status: http.StatusUnauthorized, Message: "Invalid email or password."}

	// --- 403 Forbidden ---
	Forbidden          = ErrorCode{Name: "FORBIDDEN", Status: http.StatusForbidden, Message: "Access to this resource is forbidden."}
	PermissionDenied   = ErrorCode{Name: "PERMISSION_DENIED", Status: http.StatusForbidden, Message: "You do not have the required permissions."}
	InsufficientScope  = ErrorCode{Name: "INSUFFICIENT_SCOPE", Status: http.StatusForbidden, Message: "The token does not have the required scope."}
	AccountDisabled    = ErrorCode{Name: "ACCOUNT_DISABLED", Status: http.StatusForbidden, Message: "Account is inactive or suspended."}
	AccountNotVerified = ErrorCode{Name: "ACCOUNT_NOT_VERIFIED", Status: http.StatusForbidden, Message: "Account has not been verified yet."}

	// --- 404 Not Found ---
	NotFound         = ErrorCode{Name: "NOT_FOUND", Status: http.StatusNotFound, Message: "The requested resource was not found."}
	ResourceNotFound = ErrorCode{Name: "RESOURCE_NOT_FOUND", Status: http.StatusNotFound, Message: "Resource not found."}
	UserNotFound     = ErrorCode{Name: "USER_NOT_FOUND", Status: http.StatusNotFound, Message: "The specified user does not exist."}
	EndpointNotFound = ErrorCode{Name: "ENDPOINT_NOT_FOUND", Status: http.StatusNotFound, Message: "The requested endpoint does not exist."}

	// --- 409 Conflict ---
	Conflict              = ErrorCode{Name: "CONFLICT", Status: http.StatusConflict, Message: "A conflict occurred with the current state of the resource."}
	DuplicateError        = ErrorCode{Name: "DUPLICATE_ERROR", Status: http.StatusConflict, Message: "The resource already exists."}
	ResourceAlreadyExists = ErrorCode{Name: "RESOURCE_ALREADY_EXISTS", Status: http.StatusConflict, Message: "This resource is already in use."}
	ResourceStateConflict = ErrorCode{Name: "RESOURCE_STATE_CONFLICT", Status: http.StatusConflict, Message: "Operation cannot be performed due to resource state."}

	// --- 422 Unprocessable Entity ---
	ValidationError    = ErrorCode{Name: "VALIDATION_ERROR", Status: http.StatusUnprocessableEntity, Message: "Validation failed for the provided data."}
	BusinessLogicError = ErrorCode{Name: "BUSINESS_LOGIC_ERROR", Status: http.StatusUnprocessableEntity, Message: "The operation violates a business rule."}

	// --- 429 Too Many Requests ---
	RateLimitError  = ErrorCode{Name: "RATE_LIMIT_ERROR", Status: http.StatusTooManyRequests, Message: "Too many requests. Please try again later."}
	TooManyRequests = ErrorCode{Name: "TOO_MANY_REQUESTS", Status: http.StatusTooManyRequests, Message: "Rate limit exceeded."}

	// --- 500 Internal Server Error ---
	InternalServerError = ErrorCode{Name: "INTERNAL_SERVER_ERROR", Status: http.StatusInternalServerError, Message: "An unexpected internal server error occurred."}

	// --- 502 Bad Gateway ---
	ExternalServiceError = ErrorCode{Name: "EXTERNAL_SERVICE_ERROR", Status: http.StatusBadGateway, Message: "An error occurred while communicating with an external service."}
	OAuthError           = ErrorCode{Name: "OAUTH_ERROR", Status: http.StatusBadGateway, Message: "The OAuth provider returned an error."}
	BadGateway           = ErrorCode{Name: "BAD_GATEWAY", Status: http.StatusBadGateway, Message: "Upstream server returned an invalid response."}

	// --- 503 Service Unavailable ---
	ServiceUnavailable         = ErrorCode{Name: "SERVICE_UNAVAILABLE", Status: http.StatusServiceUnavailable, Message: "The service is currently unavailable."}
	DatabaseConnectionFailed   = ErrorCode{Name: "DATABASE_CONNECTION_FAILED", Status: http.StatusServiceUnavailable, Message: "Could not connect to the database."}
	ExternalServiceUnavailable = ErrorCode{Name: "EXTERNAL_SERVICE_UNAVAILABLE", Status: http.StatusServiceUnavailable, Message: "Third-party service is down."}

	// --- 504 Gateway Timeout ---
	GatewayTimeout = ErrorCode{Name: "GATEWAY_TIMEOUT", Status: http.StatusGatewayTimeout, Message: "The upstream server took too long to respond."}
)

// Registry exposes the full catalog for validation or docs.
var Registry = []ErrorCode{
	InvalidInput,
	MissingRequiredField,
	InvalidFormat,
	InvalidQueryParameter,
	NotAllowed,
	Unauthorized,
	AuthenticationError,
	TokenExpired,
	InvalidToken,
	TokenRevoked,
	InvalidCredentials,
	Forbidden,
	PermissionDenied,
	InsufficientScope,
	AccountDisabled,
	AccountNotVerified,
	NotFound,
	ResourceNotFound,
	UserNotFound,
	EndpointNotFound,
	Conflict,
	DuplicateError,
	ResourceAlreadyExists,
	ResourceStateConflict,
	ValidationError,
	BusinessLogicError,
	RateLimitError,
	TooManyRequests,
	InternalServerError,
	ExternalServiceError,
	OAuthError,
	BadGateway,
	ServiceUnavailable,
	DatabaseConnectionFailed,
	ExternalServiceUnavailable,
	GatewayTimeout,
}

var byName map[string]ErrorCode

func init() {
	byName = make(map[string]ErrorCode, len(Registry))
	for _, c := range Registry {
		byName[c.Name] = c
	}
}

// Lookup resolves a code by its symbolic name.
func Lookup(name string) (ErrorCode, bool) {
	c, ok := byName[name]
	return c, ok
}

// StatusMap returns a fresh name-to-status mapping.
// Example: {"UNAUTHORIZED": 401, "NOT_FOUND": 404, ...}
func StatusMap() map[string]int {
	m := make(map[string]int, len(Registry))
	for _, c := range Registry {
		m[c.Name] = c.Status
	}
	return m
}
