// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// auth.go - OAuth2 PKCE login and token persistence for Microsoft Graph.
//
// The delegated flow runs once through `onenote-connector -mode=login`: a local
// callback server receives the authorization code, the code is exchanged with the PKCE
// verifier, and the resulting tokens are written to the token file. FileTokenSource
// (tokensource.go) later refreshes them as they expire.
//
// Required delegated permissions: Notes.Read (listings, page content) and
// Files.ReadWrite (share links on the notebook's drive items).

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/gebl/onenote-connector/internal/logging"
)

// DefaultScopes are requested by the PKCE flow.
var DefaultScopes = []string{"offline_access", "Notes.Read", "Files.ReadWrite"}

// GraphScopes are the resource-qualified scopes used with azidentity credentials.
var GraphScopes = []string{
	"https://graph.microsoft.com/Notes.Read",
	"https://graph.microsoft.com/Files.ReadWrite",
}

// expiryBuffer treats tokens this close to expiry as already expired.
const expiryBuffer = 60 * time.Second

var (
	ErrNotAuthenticated = errors.New("not authenticated: run with -mode=login first")
	ErrReauthRequired   = errors.New("re-authentication required")
)

// OAuth2Config holds Microsoft identity platform settings for a public client.
type OAuth2Config struct {
	ClientID    string
	TenantID    string
	RedirectURI string
	Scopes      []string

	// Endpoint overrides the Azure AD endpoint derived from TenantID.
	Endpoint oauth2.Endpoint
}

// TokenManager is the on-disk token file format.
type TokenManager struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Expiry       int64  `json:"expiry"` // unix seconds
}

func NewOAuth2Config(clientID, tenantID, redirectURI string) *OAuth2Config {
	logging.AuthLogger.Debug("Initializing OAuth2 configuration",
		"client_id", maskSensitiveData(clientID),
		"tenant_id", tenantID,
		"redirect_uri", redirectURI)
	return &OAuth2Config{
		ClientID:    clientID,
		TenantID:    tenantID,
		RedirectURI: redirectURI,
	}
}

func (c *OAuth2Config) TenantIDOrCommon() string {
	if c.TenantID == "" {
		return "common"
	}
	return c.TenantID
}

func (c *OAuth2Config) oauth() *oauth2.Config {
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = microsoft.AzureADEndpoint(c.TenantIDOrCommon())
	}
	// Public clients have no secret; send client_id in the form body.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return &oauth2.Config{
		ClientID:    c.ClientID,
		Endpoint:    endpoint,
		RedirectURL: c.RedirectURI,
		Scopes:      scopes,
	}
}

// GenerateCodeVerifier returns a fresh PKCE code verifier.
func GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// GetAuthURL returns the consent URL carrying the S256 challenge for verifier.
func (c *OAuth2Config) GetAuthURL(state, verifier string) string {
	authURL := c.oauth().AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	logging.AuthLogger.Debug("Generated authorization URL",
		"tenant", c.TenantIDOrCommon(),
		"client_id", maskSensitiveData(c.ClientID))
	return authURL
}

// ExchangeCode trades an authorization code for tokens.
func (c *OAuth2Config) ExchangeCode(ctx context.Context, code, verifier string) (*TokenManager, error) {
	logging.AuthLogger.Info("Exchanging authorization code for tokens")
	tok, err := c.oauth().Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, classifyTokenError("token exchange", err)
	}
	return tokenManagerFrom(tok), nil
}

// RefreshToken obtains a new access token from refreshToken.
func (c *OAuth2Config) RefreshToken(ctx context.Context, refreshToken string) (*TokenManager, error) {
	logging.AuthLogger.Info("Refreshing access token")
	tok, err := c.oauth().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, classifyTokenError("token refresh", err)
	}
	tm := tokenManagerFrom(tok)
	if tm.RefreshToken == "" {
		tm.RefreshToken = refreshToken
	}
	return tm, nil
}

func classifyTokenError(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant", "invalid_client", "unauthorized_client", "invalid_scope", "access_denied":
			logging.AuthLogger.Error(op+" rejected", "error_code", re.ErrorCode, "description", re.ErrorDescription)
			return fmt.Errorf("%s: %w: %s", op, ErrReauthRequired, re.ErrorCode)
		}
	}
	logging.AuthLogger.Error(op+" failed", "error", err)
	return fmt.Errorf("%s failed: %w", op, err)
}

func tokenManagerFrom(tok *oauth2.Token) *TokenManager {
	tm := &TokenManager{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		tm.Expiry = tok.Expiry.Unix()
	}
	return tm
}

// IsExpired reports whether the access token is missing or within a minute of expiry.
// A zero Expiry means the expiry is unknown and the token is trusted as is.
func (tm *TokenManager) IsExpired() bool {
	if tm.AccessToken == "" {
		return true
	}
	if tm.Expiry == 0 {
		return false
	}
	return time.Now().Add(expiryBuffer).Unix() >= tm.Expiry
}

// SaveTokens writes the tokens to path with owner-only permissions.
func (tm *TokenManager) SaveTokens(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		logging.AuthLogger.Error("Failed to write token file", "path", path, "error", err)
		return err
	}
	logging.AuthLogger.Debug("Tokens saved",
		"path", path,
		"access_token", maskSensitiveData(tm.AccessToken),
		"expires_at", time.Unix(tm.Expiry, 0).Format(time.RFC3339))
	return nil
}

// LoadTokens reads a token file written by SaveTokens.
func LoadTokens(path string) (*TokenManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tm := &TokenManager{}
	if err := json.Unmarshal(data, tm); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", path, err)
	}
	logging.AuthLogger.Debug("Tokens loaded",
		"path", path,
		"access_token", maskSensitiveData(tm.AccessToken),
		"refresh_token_available", tm.RefreshToken != "")
	return tm, nil
}

// GetTokenPath returns configured, TOKEN_FILE, or defaultPath, in that order.
func GetTokenPath(configured, defaultPath string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("TOKEN_FILE"); env != "" {
		return env
	}
	return defaultPath
}

// StartLocalServer listens on the redirect URI's host and delivers the authorization
// code to the returned channel once a callback with the expected state arrives.
func StartLocalServer(redirectURI, state string) (*http.Server, <-chan string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redirect URI %q: %w", redirectURI, err)
	}
	if u.Host == "" {
		return nil, nil, fmt.Errorf("redirect URI %q has no host", redirectURI)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	ln, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, nil, fmt.Errorf("listening for OAuth callback on %s: %w", u.Host, err)
	}

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			logging.AuthLogger.Warn("Invalid state in OAuth callback")
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			logging.AuthLogger.Error("Authorization denied", "error", e, "description", q.Get("error_description"))
			http.Error(w, "Authorization failed: "+e, http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("Authentication successful. You may close this window."))
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.AuthLogger.Error("OAuth callback server stopped", "error", err)
		}
	}()
	logging.AuthLogger.Info("Waiting for OAuth callback", "addr", ln.Addr().String(), "path", path)
	return server, codeCh, nil
}

// Login runs the interactive PKCE flow and saves the tokens to tokenPath.
// prompt receives the URL the user must open.
func Login(ctx context.Context, cfg *OAuth2Config, tokenPath string, prompt func(authURL string)) (*TokenManager, error) {
	verifier := GenerateCodeVerifier()
	state, err := generateSecureState()
	if err != nil {
		return nil, err
	}

	server, codeCh, err := StartLocalServer(cfg.RedirectURI, state)
	if err != nil {
		return nil, err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.AuthLogger.Warn("Failed to shut down callback server", "error", err)
		}
	}()

	prompt(cfg.GetAuthURL(state, verifier))

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tm, err := cfg.ExchangeCode(ctx, code, verifier)
	if err != nil {
		return nil, err
	}
	if err := tm.SaveTokens(tokenPath); err != nil {
		return nil, fmt.Errorf("saving tokens: %w", err)
	}
	logging.AuthLogger.Info("Authentication complete", "token_file", tokenPath)
	return tm, nil
}

func generateSecureState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func maskSensitiveData(value string) string {
	if value == "" {
		return "<empty>"
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + "***" + value[len(value)-4:]
}

// IsAuthError reports whether err looks like a 401/403 or a token problem.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrReauthRequired) {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"401", "403", "unauthorized", "forbidden", "invalid_token", "expired_token"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
