package email

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elemental-io/elemental/pkg/apperr"
)

func TestMessageValidate(t *testing.T) {
	base := Message{From: "noreply@example.com", To: []string{"a@b.c"}, Subject: "hi", HTML: "<p>hi</p>"}

	t.Run("valid", func(t *testing.T) {
		msg := base
		assert.NoError(t, msg.validate())
	})

	t.Run("missing from", func(t *testing.T) {
		msg := base
		msg.From = ""
		assert.Error(t, msg.validate())
	})

	t.Run("no recipients", func(t *testing.T) {
		msg := base
		msg.To = nil
		assert.Error(t, msg.validate())
	})

	t.Run("bad recipient address", func(t *testing.T) {
		msg := base
		msg.To = []string{"not-an-address"}
		var appErr *apperr.Error
		require.ErrorAs(t, msg.validate(), &appErr)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus())
	})
}

func TestMessageBytes(t *testing.T) {
	t.Run("html only", func(t *testing.T) {
		msg := Message{From: "noreply@example.com", To: []string{"a@b.c", "d@e.f"}, Subject: "Welcome", HTML: "<p>hello</p>"}
		wire := string(msg.bytes())

		assert.Contains(t, wire, "From: noreply@example.com\r\n")
		assert.Contains(t, wire, "To: a@b.c, d@e.f\r\n")
		assert.Contains(t, wire, "Subject: Welcome\r\n")
		assert.Contains(t, wire, "Content-Type: text/html; charset=utf-8")
		assert.True(t, strings.Contains(wire, "<p>hello</p>"))
	})

	t.Run("multipart with text alternative", func(t *testing.T) {
		msg := Message{From: "a@b.c", To: []string{"d@e.f"}, Subject: "s", HTML: "<b>x</b>", Text: "x"}
		wire := string(msg.bytes())

		assert.Contains(t, wire, "multipart/alternative")
		assert.Contains(t, wire, "text/plain; charset=utf-8")
		assert.Contains(t, wire, "text/html; charset=utf-8")
	})
}

func TestSendFailureMapping(t *testing.T) {
	var appErr *apperr.Error

	require.ErrorAs(t, connectionError(), &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus())

	require.ErrorAs(t, senderRefused(), &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus())

	require.ErrorAs(t, recipientsRefused(), &appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus())

	require.ErrorAs(t, dataRefused(), &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
}
