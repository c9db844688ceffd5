package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elemental-io/elemental/pkg/codes"
)

func TestDefaultsFromCode(t *testing.T) {
	e := NotFound("")
	assert.Equal(t, 404, e.HTTPStatus())
	assert.Equal(t, "NOT_FOUND", e.CodeName())
	assert.Equal(t, codes.NotFound.Message, e.Message)
	assert.NotNil(t, e.Details)
	assert.Empty(t, e.Details)
}

func TestStatusFixedRegardlessOfMessage(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("anything at all"), 422},
		{NotFound("custom message"), 404},
		{Duplicate("user exists"), 409},
		{Unauthorized("nope"), 401},
		{Forbidden("nope"), 403},
		{External("boom", map[string]any{"service": "smtp"}), 502},
		{ExternalTimeout("payments", 2.5), 504},
		{Configuration("bad secret"), 500},
		{RateLimited(""), 429},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), "code %s", tc.err.CodeName())
	}
}

func TestMissingFieldDetails(t *testing.T) {
	e := MissingField("email")
	assert.Equal(t, "The required field 'email' is missing.", e.Message)
	assert.Equal(t, map[string]any{"field": "email", "reason": "missing"}, e.Details)
	assert.Equal(t, 422, e.HTTPStatus())
}

func TestBadLengthBounds(t *testing.T) {
	minLen := 8
	e := BadLength("password", &minLen, nil)
	assert.Contains(t, e.Message, "minimum length is 8")
	assert.Equal(t, 8, e.Details["min_length"])
	_, hasMax := e.Details["max_length"]
	assert.False(t, hasMax)
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	orig := InvalidTokenErr("bad")
	derived := orig.WithDetails("reason", "wrong alg")

	assert.Empty(t, orig.Details)
	assert.Equal(t, "wrong alg", derived.Details["reason"])
	assert.Equal(t, orig.Code, derived.Code)
}

func TestFromCodeName(t *testing.T) {
	e := FromCodeName("USER_NOT_FOUND", "", nil)
	assert.Equal(t, 404, e.HTTPStatus())
	assert.Equal(t, KindNotFound, e.Kind)

	unknown := FromCodeName("WHO_KNOWS", "", nil)
	assert.Equal(t, 500, unknown.HTTPStatus())
	assert.Equal(t, "INTERNAL_SERVER_ERROR", unknown.CodeName())
}

func TestSeverityTable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Severity
	}{
		{"validation", Validation(""), SeverityLow},
		{"not found", NotFound(""), SeverityLow},
		{"duplicate", Duplicate(""), SeverityMedium},
		{"auth", Unauthorized(""), SeverityMedium},
		{"forbidden", Forbidden(""), SeverityMedium},
		{"external", External("", nil), SeverityHigh},
		{"configuration", Configuration(""), SeverityCritical},
		{"rate limit", RateLimited(""), SeverityCritical},
		{"plain error", errors.New("boom"), SeverityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SeverityOf(tc.err))
		})
	}
}

func TestRetriable(t *testing.T) {
	assert.True(t, Retriable(External("", nil)))
	assert.True(t, Retriable(RateLimited("")))
	assert.True(t, Retriable(ExternalTimeout("svc", 1)))
	assert.False(t, Retriable(Validation("")))
	assert.False(t, Retriable(errors.New("boom")))
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("adapter: %w", ExpiredToken())

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "TOKEN_EXPIRED", e.CodeName())
	assert.Equal(t, SeverityMedium, SeverityOf(wrapped))
}
