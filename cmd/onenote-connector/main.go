// main.go - Entry point for the OneNote connector.
//
// The connector addresses OneNote content by path ("Journal/2022/2022-05/2022-05-05")
// instead of by ID, streams page and section content, and creates share links.
// It is served to MCP clients over stdio or streamable HTTP, and can also be used
// directly from the shell.
//
// Modes:
//   stdio       MCP server on stdin/stdout (default)
//   streamable  MCP server over streamable HTTP on -port
//   login       interactive PKCE sign-in; writes the token file
//   cat         write a page (or with -section, a whole section) to stdout
//
// Configuration comes from the environment, an optional .env file and an optional
// JSON file named by ONENOTE_CONFIG. See internal/config.
//
// Usage:
//   go build -o onenote-connector ./cmd/onenote-connector
//   ./onenote-connector -mode=login
//   ./onenote-connector -mode=cat -notebook=Mine -path=Journal/2022/2022-05/2022-05-05
//   ./onenote-connector -mode=cat -section -path=Journal/2022/2022-05 -format=text
//   ./onenote-connector -mode=streamable -port=8081

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/config"
	"github.com/gebl/onenote-connector/internal/connector"
	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
	"github.com/gebl/onenote-connector/internal/notebooks"
)

// Version is the current version of the OneNote connector
const Version = "0.3.0"

const defaultTokenFile = "tokens.json"

func main() {
	logging.Initialize()
	logger := logging.MainLogger

	mode := flag.String("mode", "stdio", "Mode: stdio, streamable, login or cat")
	port := flag.String("port", "8080", "Port for HTTP server (used with streamable mode)")
	notebook := flag.String("notebook", "", "Notebook name for cat mode (defaults to ONENOTE_DEFAULT_NOTEBOOK_NAME)")
	path := flag.String("path", "", "Slash-separated section or page path for cat mode")
	section := flag.Bool("section", false, "In cat mode, treat -path as a section and print all its pages")
	format := flag.String("format", "html", "Output format for cat mode: html, markdown or text")
	flag.Parse()

	logger.Info("OneNote connector starting", "version", Version, "mode", *mode)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.InitializeFromConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokenPath := auth.GetTokenPath(cfg.TokenFile, defaultTokenFile)

	if *mode == "login" {
		if err := runLogin(ctx, cfg, tokenPath, os.Stderr); err != nil {
			logger.Error("Login failed", "error", err)
			os.Exit(1)
		}
		return
	}

	tokens, err := tokenSourceFor(cfg, tokenPath, os.Stderr)
	if err != nil {
		logger.Error("Failed to set up authentication", "error", err)
		os.Exit(1)
	}
	graphClient, err := graph.NewClient(tokens, graph.WithBaseURL(cfg.GraphBaseURL))
	if err != nil {
		logger.Error("Failed to create Graph client", "error", err)
		os.Exit(1)
	}
	conn := connector.NewFromGraph(graphClient)

	switch *mode {
	case "cat":
		req := catRequest{Notebook: *notebook, Path: *path, Section: *section, Format: *format}
		if err := runCat(ctx, conn, cfg, req, os.Stdout); err != nil {
			logger.Error("cat failed", "error", err)
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "stdio", "streamable":
		s := newMCPServer(&toolDeps{
			cfg:       cfg,
			conn:      conn,
			notebooks: notebooks.NewNotebookClient(graphClient),
			tokens:    tokens,
		})
		if err := serve(ctx, s, cfg, *mode, *port); err != nil {
			logger.Error("Server error", "mode", *mode, "error", err)
			os.Exit(1)
		}
	default:
		logger.Error("Invalid mode specified", "mode", *mode, "valid_modes", []string{"stdio", "streamable", "login", "cat"})
		os.Exit(2)
	}
}

// tokenSourceFor builds the token source for the configured auth method.
// Interactive prompts go to prompts, never to stdout, which may carry MCP traffic.
func tokenSourceFor(cfg *config.Config, tokenPath string, prompts io.Writer) (auth.TokenSource, error) {
	switch cfg.AuthMethod {
	case config.AuthMethodDeviceCode:
		return auth.NewDeviceCodeTokenSource(cfg.ClientID, cfg.TenantID, func(msg string) {
			fmt.Fprintln(prompts, msg)
		})
	case config.AuthMethodBrowser:
		return auth.NewBrowserTokenSource(cfg.ClientID, cfg.TenantID, cfg.RedirectURI)
	case config.AuthMethodPKCE, "":
		src, err := auth.NewFileTokenSource(auth.NewOAuth2Config(cfg.ClientID, cfg.TenantID, cfg.RedirectURI), tokenPath)
		if err != nil {
			return nil, err
		}
		if !src.Status().Authenticated {
			logging.MainLogger.Info("No usable tokens found; run with -mode=login", "token_file", tokenPath)
		}
		return src, nil
	}
	return nil, fmt.Errorf("unsupported auth method %q", cfg.AuthMethod)
}

func runLogin(ctx context.Context, cfg *config.Config, tokenPath string, out io.Writer) error {
	if cfg.AuthMethod != config.AuthMethodPKCE {
		return fmt.Errorf("login mode is for the %s auth method; %s signs in on first use", config.AuthMethodPKCE, cfg.AuthMethod)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	oauthCfg := auth.NewOAuth2Config(cfg.ClientID, cfg.TenantID, cfg.RedirectURI)
	_, err := auth.Login(ctx, oauthCfg, tokenPath, func(authURL string) {
		fmt.Fprintf(out, "Open this URL in your browser to sign in:\n\n%s\n\n", authURL)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Signed in. Tokens saved to %s\n", tokenPath)
	return nil
}

func newMCPServer(deps *toolDeps) *server.MCPServer {
	s := server.NewMCPServer("OneNote Connector", Version,
		server.WithToolCapabilities(true),
		server.WithRecovery())
	registerTools(s, deps)
	return s
}

func serve(ctx context.Context, s *server.MCPServer, cfg *config.Config, mode, port string) error {
	logger := logging.MainLogger
	if mode == "stdio" {
		logger.Info("Starting MCP server", "transport", "stdio")
		return server.ServeStdio(s)
	}

	streamable := server.NewStreamableHTTPServer(s, server.WithStateLess(cfg.Stateless))
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           applyMiddleware(streamable, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("Streamable HTTP server listening", "address", fmt.Sprintf("http://localhost:%s", port), "stateless", cfg.Stateless)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// applyMiddleware adds request logging and, when enabled, bearer token checks.
func applyMiddleware(handler http.Handler, cfg *config.Config) http.Handler {
	logger := logging.MainLogger

	if cfg.MCPAuth != nil && cfg.MCPAuth.Enabled {
		if cfg.MCPAuth.BearerToken == "" {
			logger.Warn("MCP authentication is enabled but no bearer token is configured",
				"recommendation", "set MCP_BEARER_TOKEN")
		} else {
			logger.Info("MCP authentication enabled for HTTP transport", "token_length", len(cfg.MCPAuth.BearerToken))
			handler = auth.BearerTokenMiddleware(cfg.MCPAuth.BearerToken)(handler)
		}
	} else {
		logger.Debug("MCP authentication disabled - HTTP endpoints are not protected")
	}

	return auth.RequestLoggingMiddleware()(handler)
}
