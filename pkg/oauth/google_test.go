package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/config"
)

func testGoogle(t *testing.T) *Google {
	t.Helper()
	g, err := NewGoogle(config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8000/auth/google/callback",
	})
	require.NoError(t, err)
	return g
}

func TestNewGoogleRequiresCredentials(t *testing.T) {
	_, err := NewGoogle(config.GoogleOAuthConfig{ClientID: "only-id"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OAUTH_ERROR", appErr.CodeName())
}

func TestAuthorizationURL(t *testing.T) {
	g := testGoogle(t)

	u, err := url.Parse(g.AuthorizationURL("xyz"))
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "xyz", q.Get("state"))
}

func TestExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "the-code", r.PostForm.Get("code"))
			assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3599}`))
		}))
		defer srv.Close()

		g := testGoogle(t)
		g.tokenURL = srv.URL

		tok, err := g.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "at", tok.AccessToken)
		assert.Equal(t, 3599, tok.ExpiresIn)
	})

	t.Run("provider rejects code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		g := testGoogle(t)
		g.tokenURL = srv.URL

		_, err := g.ExchangeCode(context.Background(), "bad")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "OAUTH_ERROR", appErr.CodeName())
		assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
		assert.Equal(t, "google", appErr.Details["provider"])
	})

	t.Run("unreachable provider", func(t *testing.T) {
		g := testGoogle(t)
		g.tokenURL = "http://127.0.0.1:1/token"

		_, err := g.ExchangeCode(context.Background(), "code")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "OAUTH_ERROR", appErr.CodeName())
	})
}

func TestFetchUserInfo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"g-123","email":"ada@example.com","verified_email":true,"name":"Ada"}`))
		}))
		defer srv.Close()

		g := testGoogle(t)
		g.userInfoURL = srv.URL

		info, err := g.FetchUserInfo(context.Background(), "provider-token")
		require.NoError(t, err)
		assert.Equal(t, "g-123", info.ID)
		assert.Equal(t, "ada@example.com", info.Email)
		assert.True(t, info.VerifiedEmail)
	})

	t.Run("rejected token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer srv.Close()

		g := testGoogle(t)
		g.userInfoURL = srv.URL

		_, err := g.FetchUserInfo(context.Background(), "stale")
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TOKEN", appErr.CodeName())
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus())
	})
}

func TestRegistry(t *testing.T) {
	g := testGoogle(t)
	reg := NewRegistry(g)

	p, err := reg.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	_, err = reg.Get("github")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus())
}
