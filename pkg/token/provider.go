// Package token issues and verifies the signed claim sets used for access,
// refresh and single-purpose tokens. Payloads are flat JSON objects with
// the reserved keys sub, type, exp, iat, version and jti; caller extras are
// merged underneath and can never shadow a reserved key.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/elemental-io/elemental/pkg/apperr"
)

// reservedKeys may never be overwritten by caller-supplied data. The id and
// token_type aliases are dropped from extras as well so payloads stay
// unambiguous.
var reservedKeys = map[string]bool{
	"sub":        true,
	"type":       true,
	"exp":        true,
	"iat":        true,
	"version":    true,
	"jti":        true,
	"id":         true,
	"token_type": true,
}

// Provider signs and verifies tokens with a single symmetric key. It holds
// no mutable state and is safe for concurrent use.
type Provider struct {
	cfg    Config
	method jwt.SigningMethod
}

// NewProvider validates the configuration and builds a provider.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, apperr.Configuration("unsupported jwt algorithm: " + cfg.Algorithm)
	}
	return &Provider{cfg: cfg, method: method}, nil
}

type issueOptions struct {
	ttl        TTL
	subjectKey string
}

// Option customizes a single Issue call.
type Option func(*issueOptions)

// WithTTL overrides the type's default lifetime. Any non-zero component
// activates the override.
func WithTTL(days, hours, minutes, seconds int) Option {
	return func(o *issueOptions) {
		o.ttl = TTL{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}
	}
}

// WithSubjectKey forces the subject to come from a specific key in data.
// Issue fails when the key is absent.
func WithSubjectKey(key string) Option {
	return func(o *issueOptions) { o.subjectKey = key }
}

// Issue signs a claim set of the given type over the caller data.
//
// Expiry: an explicit TTL wins; otherwise refresh tokens use the refresh
// default and every other type the access default. Subject: the explicit
// subject key when configured, else the first of id, sub, user_id; a data
// set with none of them is a hard construction failure, not a token with a
// bogus subject.
func (p *Provider) Issue(data map[string]any, typ Type, opts ...Option) (string, error) {
	if data == nil {
		return "", errors.New("token: data must not be nil")
	}
	var o issueOptions
	for _, opt := range opts {
		opt(&o)
	}

	sub, err := resolveSubject(data, o.subjectKey)
	if err != nil {
		return "", err
	}

	ttl := o.ttl
	if ttl.IsZero() {
		if typ == TypeRefresh {
			ttl = p.cfg.RefreshTTL
		} else {
			ttl = p.cfg.AccessTTL
		}
	}

	now := time.Now().UTC()
	payload := jwt.MapClaims{
		"sub":     sub,
		"type":    string(typ),
		"exp":     now.Add(ttl.Duration()).Unix(),
		"iat":     now.Unix(),
		"version": resolveVersion(data),
		"jti":     uuid.NewString(),
	}
	for k, v := range data {
		if reservedKeys[k] {
			continue
		}
		payload[k] = v
	}

	signed, err := jwt.NewWithClaims(p.method, payload).SignedString([]byte(p.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// IssueAccess signs an access token over data.
func (p *Provider) IssueAccess(data map[string]any) (string, error) {
	return p.Issue(data, TypeAccess)
}

// IssueRefresh signs a refresh token over data.
func (p *Provider) IssueRefresh(data map[string]any) (string, error) {
	return p.Issue(data, TypeRefresh)
}

// Verify checks signature and expiry and returns the decoded claim set.
// An expired-but-valid signature fails with TOKEN_EXPIRED; every other
// decoding or signature failure fails with INVALID_TOKEN.
func (p *Provider) Verify(tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{p.cfg.Algorithm}), jwt.WithLeeway(p.cfg.ClockSkew))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ExpiredToken()
		}
		return nil, apperr.InvalidTokenErr("Invalid or malformed JWT token")
	}
	if !parsed.Valid {
		return nil, apperr.InvalidTokenErr("Invalid or malformed JWT token")
	}
	return Claims(claims), nil
}

// VerifyType verifies and additionally enforces the type claim.
func (p *Provider) VerifyType(tokenStr string, typ Type) (Claims, error) {
	claims, err := p.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType() != typ {
		return nil, apperr.InvalidTokenErr("Invalid token type.")
	}
	return claims, nil
}

func resolveSubject(data map[string]any, subjectKey string) (string, error) {
	if subjectKey != "" {
		v, ok := data[subjectKey]
		if !ok {
			return "", fmt.Errorf("token: missing %q key in data", subjectKey)
		}
		return fmt.Sprintf("%v", v), nil
	}
	for _, k := range []string{"id", "sub", "user_id"} {
		if v, ok := data[k]; ok && v != nil {
			return fmt.Sprintf("%v", v), nil
		}
	}
	return "", errors.New("token: no subject found in data (need id, sub or user_id)")
}

func resolveVersion(data map[string]any) int64 {
	for _, k := range []string{"version", "token_version"} {
		switch v := data[k].(type) {
		case int:
			return int64(v)
		case int64:
			return v
		case float64:
			return int64(v)
		}
	}
	return 1
}
