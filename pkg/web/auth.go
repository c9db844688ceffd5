package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/codes"
	"github.com/elemental-io/elemental/pkg/roles"
	"github.com/elemental-io/elemental/pkg/token"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the verified token claims stored by the auth
// middleware.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(token.Claims)
	return claims, ok
}

// ContextWithClaims injects claims, mainly useful in tests.
func ContextWithClaims(ctx context.Context, claims token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ExtractBearer pulls the token out of an Authorization header.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", apperr.Authentication(codes.AuthenticationError, "Missing authorization header.")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperr.Authentication(codes.AuthenticationError, "Invalid authorization scheme. Expected Bearer.")
	}
	return parts[1], nil
}

// AuthMiddleware verifies bearer access tokens and stores the claims on the
// request context. Paths registered via Skip pass through unauthenticated.
type AuthMiddleware struct {
	provider   *token.Provider
	dispatcher *Dispatcher
	blocklist  token.Blocklist
	versions   token.VersionStore
	skip       map[string]bool
}

// AuthOption tweaks an AuthMiddleware.
type AuthOption func(*AuthMiddleware)

// WithRevocation enables blocklist and version checks during verification.
func WithRevocation(blocklist token.Blocklist, versions token.VersionStore) AuthOption {
	return func(m *AuthMiddleware) {
		m.blocklist = blocklist
		m.versions = versions
	}
}

// WithSkipPaths exempts exact paths from authentication.
func WithSkipPaths(paths ...string) AuthOption {
	return func(m *AuthMiddleware) {
		for _, p := range paths {
			m.skip[p] = true
		}
	}
}

func NewAuthMiddleware(provider *token.Provider, dispatcher *Dispatcher, opts ...AuthOption) *AuthMiddleware {
	m := &AuthMiddleware{
		provider:   provider,
		dispatcher: dispatcher,
		skip:       map[string]bool{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handler wraps next with bearer verification.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skip[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authenticate(r)
		if err != nil {
			m.dispatcher.Fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (token.Claims, error) {
	raw, err := ExtractBearer(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}

	var claims token.Claims
	if m.blocklist != nil || m.versions != nil {
		claims, err = m.provider.VerifyWithRevocation(r.Context(), raw, m.blocklist, m.versions)
	} else {
		claims, err = m.provider.Verify(raw)
	}
	if err != nil {
		return nil, err
	}
	if claims.TokenType() != token.TypeAccess {
		return nil, apperr.InvalidTokenErr("Invalid token type.")
	}
	return claims, nil
}

// RequireRoles guards next so that only requests whose verified claims carry
// one of the allowed roles pass. It must sit below AuthMiddleware.
func RequireRoles(dispatcher *Dispatcher, allowed ...roles.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := ClaimsFromContext(r.Context())
			if _, err := roles.Require(claims, allowed...); err != nil {
				dispatcher.Fail(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
