package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/config"
	"github.com/gebl/onenote-connector/internal/connector"
	"github.com/gebl/onenote-connector/internal/graph"
	"github.com/gebl/onenote-connector/internal/logging"
	"github.com/gebl/onenote-connector/internal/tools"
	"github.com/gebl/onenote-connector/internal/utils"
)

// NotebookLister lists the signed-in user's notebooks.
type NotebookLister interface {
	ListNotebooks(ctx context.Context) ([]graph.Notebook, error)
}

// toolDeps is everything the tool handlers need.
type toolDeps struct {
	cfg       *config.Config
	conn      *connector.Connector
	notebooks NotebookLister
	tokens    auth.TokenSource
}

// registerTools registers the tools of every enabled toolset
func registerTools(s *server.MCPServer, deps *toolDeps) *tools.ToolsetRegistry {
	logging.ToolsLogger.Debug("Starting tool registration", "toolsets", deps.cfg.Toolsets)

	registry := tools.NewToolsetRegistry(deps.cfg.Toolsets)
	for _, t := range contentTools(deps) {
		registry.RegisterTool(t)
	}
	for _, t := range shareTools(deps) {
		registry.RegisterTool(t)
	}
	for _, t := range notebookTools(deps) {
		registry.RegisterTool(t)
	}
	for _, t := range authTools(deps) {
		registry.RegisterTool(t)
	}
	registry.AddTo(s)
	return registry
}

// notebookName returns the requested notebook or the configured default.
func (d *toolDeps) notebookName(requested string) (string, error) {
	if name := strings.TrimSpace(requested); name != "" {
		return name, nil
	}
	if d.cfg.NotebookName != "" {
		return d.cfg.NotebookName, nil
	}
	return "", fmt.Errorf("%w: notebook is required (no default notebook configured)", graph.ErrInvalidArgument)
}

// readContent drains and closes src, then renders it in format.
func readContent(src io.ReadCloser, format utils.ContentFormat) (string, error) {
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	logging.LogContent(logging.ToolsLogger, slog.LevelDebug, "Content read", "bytes", len(data), "content", string(data))
	return utils.ConvertHTML(string(data), format)
}
