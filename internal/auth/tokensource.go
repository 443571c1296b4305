// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/gebl/onenote-connector/internal/logging"
)

// TokenSource supplies a bearer token for Graph requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AuthStatus describes the authentication state without exposing tokens.
type AuthStatus struct {
	Authenticated         bool       `json:"authenticated"`
	AuthMethod            string     `json:"authMethod"`
	TokenExpiry           *time.Time `json:"tokenExpiry,omitempty"`
	TokenExpiresIn        string     `json:"tokenExpiresIn,omitempty"`
	RefreshTokenAvailable bool       `json:"refreshTokenAvailable"`
	LastRefresh           *time.Time `json:"lastRefresh,omitempty"`
	Message               string     `json:"message,omitempty"`
}

// StatusReporter is implemented by token sources that can describe themselves.
type StatusReporter interface {
	Status() AuthStatus
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNotAuthenticated
	}
	return string(s), nil
}

func (s StaticTokenSource) Status() AuthStatus {
	st := AuthStatus{Authenticated: s != "", AuthMethod: "static"}
	if !st.Authenticated {
		st.Message = "No access token configured"
	}
	return st
}

// FileTokenSource serves tokens from the token file and refreshes them through the
// OAuth2 refresh grant once they expire. Refreshed tokens are written back.
type FileTokenSource struct {
	mu          sync.Mutex
	cfg         *OAuth2Config
	path        string
	tokens      *TokenManager
	lastRefresh time.Time
}

// NewFileTokenSource loads path if it exists. A missing file is not an error:
// Token reports ErrNotAuthenticated until Reload finds one.
func NewFileTokenSource(cfg *OAuth2Config, path string) (*FileTokenSource, error) {
	s := &FileTokenSource{cfg: cfg, path: path}
	if err := s.Reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the token file, e.g. after a login in another process.
func (s *FileTokenSource) Reload() error {
	tm, err := LoadTokens(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tokens = tm
	s.mu.Unlock()
	return nil
}

func (s *FileTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens == nil || (s.tokens.AccessToken == "" && s.tokens.RefreshToken == "") {
		return "", ErrNotAuthenticated
	}
	if !s.tokens.IsExpired() {
		return s.tokens.AccessToken, nil
	}
	if s.tokens.RefreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available: %w", ErrReauthRequired)
	}

	refreshed, err := s.cfg.RefreshToken(ctx, s.tokens.RefreshToken)
	if err != nil {
		return "", err
	}
	s.tokens = refreshed
	s.lastRefresh = time.Now()

	if err := refreshed.SaveTokens(s.path); err != nil {
		logging.AuthLogger.Warn("Failed to save refreshed tokens", "path", s.path, "error", err)
	}
	logging.AuthLogger.Info("Access token refreshed", "expires_at", time.Unix(refreshed.Expiry, 0).Format(time.RFC3339))
	return refreshed.AccessToken, nil
}

func (s *FileTokenSource) Status() AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := AuthStatus{AuthMethod: "oauth2_pkce"}
	if s.tokens == nil || s.tokens.AccessToken == "" {
		st.RefreshTokenAvailable = s.tokens != nil && s.tokens.RefreshToken != ""
		st.Authenticated = st.RefreshTokenAvailable
		st.Message = "No access token found"
		return st
	}

	st.Authenticated = true
	st.RefreshTokenAvailable = s.tokens.RefreshToken != ""
	if s.tokens.Expiry > 0 {
		expiry := time.Unix(s.tokens.Expiry, 0)
		st.TokenExpiry = &expiry
		st.TokenExpiresIn = expiresIn(expiry)
	}
	if !s.lastRefresh.IsZero() {
		last := s.lastRefresh
		st.LastRefresh = &last
	}
	if s.tokens.IsExpired() {
		st.Message = "Token is expired but can be refreshed"
		if !st.RefreshTokenAvailable {
			st.Message = "Token is expired; run login again"
		}
	} else {
		st.Message = "Authentication is valid"
	}
	return st
}

// CredentialTokenSource adapts an azcore.TokenCredential. The azidentity credentials
// cache and refresh tokens themselves.
type CredentialTokenSource struct {
	Credential azcore.TokenCredential
	Scopes     []string
	Method     string

	mu     sync.Mutex
	expiry time.Time
}

func (s *CredentialTokenSource) Token(ctx context.Context) (string, error) {
	scopes := s.Scopes
	if len(scopes) == 0 {
		scopes = GraphScopes
	}
	tok, err := s.Credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		logging.AuthLogger.Error("Credential token request failed", "method", s.Method, "error", err)
		return "", fmt.Errorf("acquiring token (%s): %w", s.Method, err)
	}
	s.mu.Lock()
	s.expiry = tok.ExpiresOn
	s.mu.Unlock()
	return tok.Token, nil
}

func (s *CredentialTokenSource) Status() AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := AuthStatus{AuthMethod: s.Method}
	if s.expiry.IsZero() {
		st.Message = "No token acquired yet; the first Graph call will prompt"
		return st
	}
	expiry := s.expiry
	st.Authenticated = true
	st.TokenExpiry = &expiry
	st.TokenExpiresIn = expiresIn(expiry)
	st.Message = "Credential holds a token"
	return st
}

// NewDeviceCodeTokenSource prompts through prompt with the device code message.
func NewDeviceCodeTokenSource(clientID, tenantID string, prompt func(message string)) (*CredentialTokenSource, error) {
	cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		ClientID: clientID,
		TenantID: tenantID,
		UserPrompt: func(_ context.Context, msg azidentity.DeviceCodeMessage) error {
			prompt(msg.Message)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating device code credential: %w", err)
	}
	return &CredentialTokenSource{Credential: cred, Method: "device_code"}, nil
}

// NewBrowserTokenSource opens the system browser for sign-in on first use.
func NewBrowserTokenSource(clientID, tenantID, redirectURL string) (*CredentialTokenSource, error) {
	cred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		ClientID:    clientID,
		TenantID:    tenantID,
		RedirectURL: redirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating interactive browser credential: %w", err)
	}
	return &CredentialTokenSource{Credential: cred, Method: "browser"}, nil
}

func expiresIn(expiry time.Time) string {
	d := time.Until(expiry)
	if d <= 0 {
		return "expired"
	}
	return d.Round(time.Second).String()
}
