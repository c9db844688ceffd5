package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/elemental-io/elemental/pkg/config"
	log "github.com/elemental-io/elemental/pkg/logger"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Google implements Provider against Google's OAuth2 endpoints.
type Google struct {
	cfg    config.GoogleOAuthConfig
	client *http.Client

	// endpoint overrides for tests
	tokenURL    string
	userInfoURL string
}

func NewGoogle(cfg config.GoogleOAuthConfig) (*Google, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, NotConfigured("google")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Google{
		cfg:         cfg,
		client:      &http.Client{Timeout: timeout},
		tokenURL:    googleTokenURL,
		userInfoURL: googleUserInfoURL,
	}, nil
}

func (g *Google) Name() string { return "google" }

// AuthorizationURL builds the consent-screen redirect with the standard
// openid/email/profile scopes.
func (g *Google) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", g.cfg.ClientID)
	q.Set("redirect_uri", g.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("access_type", "offline")
	if state != "" {
		q.Set("state", state)
	}
	return googleAuthURL + "?" + q.Encode()
}

func (g *Google) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", g.cfg.ClientID)
	form.Set("client_secret", g.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", g.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, exchangeFailed("google", 0)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Error("google token exchange request failed")
		return nil, exchangeFailed("google", 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.WithFields(log.Fields{"status": resp.StatusCode, "body": string(body)}).
			Error("google token exchange rejected")
		return nil, exchangeFailed("google", resp.StatusCode)
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, exchangeFailed("google", resp.StatusCode)
	}
	return &tok, nil
}

func (g *Google) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, invalidProviderToken("google")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Error("google userinfo request failed")
		return nil, invalidProviderToken("google")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, invalidProviderToken("google")
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, invalidProviderToken("google")
	}
	return &info, nil
}
