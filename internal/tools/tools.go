// Package tools groups MCP tools into toolsets that can be switched on and off
// with ONENOTE_TOOLSETS.
package tools

import (
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gebl/onenote-connector/internal/logging"
)

// Toolset names.
const (
	ToolsetContent   = "content"
	ToolsetSharing   = "sharing"
	ToolsetNotebooks = "notebooks"
	ToolsetAuth      = "auth"
)

// AllToolsets is used when no toolsets are configured.
var AllToolsets = []string{ToolsetContent, ToolsetSharing, ToolsetNotebooks, ToolsetAuth}

// Tool is a callable tool and the toolset it belongs to.
type Tool struct {
	Toolset    string
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

func (t Tool) Name() string { return t.Definition.Name }

// ToolsetRegistry manages enabled toolsets and their tools
type ToolsetRegistry struct {
	Enabled map[string]bool
	tools   map[string]Tool
}

// NewToolsetRegistry enables the named toolsets, or all of them when none are named.
func NewToolsetRegistry(toolsets []string) *ToolsetRegistry {
	if len(toolsets) == 0 {
		toolsets = AllToolsets
	}
	enabled := make(map[string]bool)
	for _, t := range toolsets {
		name := strings.ToLower(strings.TrimSpace(t))
		if !isKnown(name) {
			logging.ToolsLogger.Warn("Ignoring unknown toolset", "toolset", t, "known", AllToolsets)
			continue
		}
		enabled[name] = true
	}
	return &ToolsetRegistry{
		Enabled: enabled,
		tools:   make(map[string]Tool),
	}
}

func isKnown(name string) bool {
	for _, t := range AllToolsets {
		if t == name {
			return true
		}
	}
	return false
}

// RegisterTool adds a tool to the registry if its toolset is enabled and
// reports whether it was added.
func (r *ToolsetRegistry) RegisterTool(tool Tool) bool {
	if !r.Enabled[tool.Toolset] {
		logging.ToolsLogger.Debug("Skipping tool of disabled toolset", "tool", tool.Name(), "toolset", tool.Toolset)
		return false
	}
	r.tools[tool.Name()] = tool
	return true
}

// ListTools returns all registered tools sorted by name
func (r *ToolsetRegistry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// AddTo registers every tool with an MCP server.
func (r *ToolsetRegistry) AddTo(s *server.MCPServer) {
	for _, t := range r.ListTools() {
		s.AddTool(t.Definition, t.Handler)
	}
	logging.ToolsLogger.Info("Tools registered", "count", len(r.tools))
}
