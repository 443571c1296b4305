package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gebl/onenote-connector/internal/logging"
)

// Auth methods.
const (
	AuthMethodPKCE       = "pkce"
	AuthMethodDeviceCode = "device_code"
	AuthMethodBrowser    = "browser"
)

const (
	DefaultRedirectURI  = "http://localhost:8080/callback"
	DefaultGraphBaseURL = "https://graph.microsoft.com/v1.0"
	DefaultTenantID     = "common"
)

type MCPAuthConfig struct {
	Enabled     bool   `json:"enabled"`
	BearerToken string `json:"bearer_token"`
}

type Config struct {
	ClientID     string   `json:"client_id"`
	TenantID     string   `json:"tenant_id"`
	RedirectURI  string   `json:"redirect_uri"`
	AuthMethod   string   `json:"auth_method"`
	TokenFile    string   `json:"token_file"`
	NotebookName string   `json:"notebook_name"`
	Toolsets     []string `json:"toolsets"`
	GraphBaseURL string   `json:"graph_base_url"`

	// Share link defaults applied when a caller leaves them empty.
	LinkType  string `json:"link_type"`
	LinkScope string `json:"link_scope"`

	Stateless bool           `json:"stateless"`
	MCPAuth   *MCPAuthConfig `json:"mcp_auth,omitempty"`

	LogLevel        string `json:"log_level"`
	LogFormat       string `json:"log_format"`
	LogFile         string `json:"log_file"`
	ContentLogLevel string `json:"content_log_level"`
}

func (c *Config) GetLogLevel() string        { return c.LogLevel }
func (c *Config) GetLogFormat() string       { return c.LogFormat }
func (c *Config) GetLogFile() string         { return c.LogFile }
func (c *Config) GetContentLogLevel() string { return c.ContentLogLevel }

// Load builds the configuration from an optional .env file, the environment and an
// optional JSON file named by ONENOTE_CONFIG, in that order of precedence (later wins).
func Load() (*Config, error) {
	logging.ConfigLogger.Debug("Loading configuration")

	if err := godotenv.Load(); err != nil {
		logging.ConfigLogger.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{
		ClientID:        os.Getenv("ONENOTE_CLIENT_ID"),
		TenantID:        os.Getenv("ONENOTE_TENANT_ID"),
		RedirectURI:     os.Getenv("ONENOTE_REDIRECT_URI"),
		AuthMethod:      os.Getenv("ONENOTE_AUTH_METHOD"),
		TokenFile:       os.Getenv("TOKEN_FILE"),
		NotebookName:    os.Getenv("ONENOTE_DEFAULT_NOTEBOOK_NAME"),
		GraphBaseURL:    os.Getenv("ONENOTE_GRAPH_BASE_URL"),
		LinkType:        os.Getenv("ONENOTE_LINK_TYPE"),
		LinkScope:       os.Getenv("ONENOTE_LINK_SCOPE"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		LogFile:         os.Getenv("MCP_LOG_FILE"),
		ContentLogLevel: os.Getenv("CONTENT_LOG_LEVEL"),
	}

	if toolsets := os.Getenv("ONENOTE_TOOLSETS"); toolsets != "" {
		cfg.Toolsets = splitList(toolsets)
	}
	if v := os.Getenv("MCP_STATELESS"); v != "" {
		cfg.Stateless = parseBool(v)
	}
	if v := os.Getenv("MCP_AUTH_ENABLED"); v != "" {
		cfg.MCPAuth = &MCPAuthConfig{
			Enabled:     parseBool(v),
			BearerToken: os.Getenv("MCP_BEARER_TOKEN"),
		}
	}

	logging.ConfigLogger.Debug("Loaded from environment",
		"client_id", cfg.ClientID,
		"tenant_id", cfg.TenantID,
		"auth_method", cfg.AuthMethod,
		"notebook_name", cfg.NotebookName,
		"toolsets", cfg.Toolsets)

	if path := os.Getenv("ONENOTE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.ConfigLogger.Info("Configuration loaded",
		"auth_method", cfg.AuthMethod,
		"graph_base_url", cfg.GraphBaseURL,
		"notebook_name", cfg.NotebookName,
		"mcp_auth", cfg.MCPAuth != nil && cfg.MCPAuth.Enabled)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	logging.ConfigLogger.Debug("Loading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.TenantID == "" {
		c.TenantID = DefaultTenantID
	}
	if c.RedirectURI == "" {
		c.RedirectURI = DefaultRedirectURI
	}
	if c.AuthMethod == "" {
		c.AuthMethod = AuthMethodPKCE
	}
	if c.GraphBaseURL == "" {
		c.GraphBaseURL = DefaultGraphBaseURL
	}
	c.GraphBaseURL = strings.TrimRight(c.GraphBaseURL, "/")
}

// Validate checks the fields every mode needs.
func (c *Config) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("ONENOTE_CLIENT_ID is required"))
	}
	switch c.AuthMethod {
	case AuthMethodPKCE, AuthMethodDeviceCode, AuthMethodBrowser:
	default:
		errs = append(errs, fmt.Errorf("unsupported auth method %q (want %s, %s or %s)",
			c.AuthMethod, AuthMethodPKCE, AuthMethodDeviceCode, AuthMethodBrowser))
	}
	if c.MCPAuth != nil && c.MCPAuth.Enabled && c.MCPAuth.BearerToken == "" {
		errs = append(errs, errors.New("MCP_BEARER_TOKEN is required when MCP auth is enabled"))
	}
	return errors.Join(errs...)
}

// ToolsetEnabled reports whether name is listed, treating an empty list as "all".
func (c *Config) ToolsetEnabled(name string) bool {
	if len(c.Toolsets) == 0 {
		return true
	}
	for _, t := range c.Toolsets {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
