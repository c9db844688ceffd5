// Package oauth holds the third-party login adapters. Providers expose just
// the two calls the auth flow needs: exchanging an authorization code for
// tokens and resolving the user profile behind an access token.
package oauth

import (
	"context"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/codes"
)

// Token is a provider token response.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// UserInfo is the normalized profile of an external identity.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Provider is the contract every OAuth driver satisfies.
type Provider interface {
	// Name identifies the provider ("google", ...).
	Name() string
	// AuthorizationURL builds the consent-screen redirect for state.
	AuthorizationURL(state string) string
	// ExchangeCode trades an authorization code for provider tokens.
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	// FetchUserInfo resolves the profile behind a provider access token.
	FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// NotConfigured reports a provider missing credentials in settings.
func NotConfigured(provider string) error {
	return apperr.New(apperr.KindExternalService, codes.OAuthError,
		"OAuth provider '"+provider+"' is not properly configured on the server.", nil)
}

// ProviderNotFound reports a provider name the system does not know.
func ProviderNotFound(provider string) error {
	return apperr.NotFound("OAuth provider '" + provider + "' does not exist.")
}

// exchangeFailed reports a non-200 token endpoint response.
func exchangeFailed(provider string, status int) error {
	return apperr.New(apperr.KindExternalService, codes.OAuthError,
		"Failed to exchange code for token.",
		map[string]any{"status": status, "provider": provider})
}

// invalidProviderToken reports an access token the provider rejected.
func invalidProviderToken(provider string) error {
	return apperr.InvalidTokenErr("Failed to fetch user info from " + provider + ", token may be invalid.")
}

// Registry resolves providers by name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	reg := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		reg.providers[p.Name()] = p
	}
	return reg
}

// Get returns the named provider or a 404 taxonomy error.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ProviderNotFound(name)
	}
	return p, nil
}
