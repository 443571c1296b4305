// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/resources"
	"github.com/gebl/onenote-connector/internal/tools"
	"github.com/gebl/onenote-connector/internal/utils"
)

// authTools returns the authentication status tool
func authTools(deps *toolDeps) []tools.Tool {
	getAuthStatus := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := utils.NewToolLogger("getAuthStatus")

		if deps.tokens == nil {
			return mcp.NewToolResultError("Authentication is not configured"), nil
		}

		var status auth.AuthStatus
		if reporter, ok := deps.tokens.(auth.StatusReporter); ok {
			status = reporter.Status()
		} else {
			_, err := deps.tokens.Token(ctx)
			status.Authenticated = err == nil
			if err != nil {
				status.Message = err.Error()
			}
		}
		if status.AuthMethod == "" {
			status.AuthMethod = deps.cfg.AuthMethod
		}

		logger.LogSuccess("authenticated", status.Authenticated)
		return utils.ToolResults.NewJSONResult("getAuthStatus", status), nil
	}

	return []tools.Tool{{
		Toolset:    tools.ToolsetAuth,
		Definition: mcp.NewTool("getAuthStatus", mcp.WithDescription(resources.MustGetToolDescription("getAuthStatus"))),
		Handler:    getAuthStatus,
	}}
}
