// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package main

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gebl/onenote-connector/internal/resources"
	"github.com/gebl/onenote-connector/internal/tools"
	"github.com/gebl/onenote-connector/internal/utils"
)

type notebookInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsConfigDefault bool   `json:"isConfigDefault"`
}

// notebookTools returns the notebook discovery tools
func notebookTools(deps *toolDeps) []tools.Tool {
	listNotebooks := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := utils.NewToolLogger("listNotebooks")

		list, err := deps.notebooks.ListNotebooks(ctx)
		if err != nil {
			logger.LogError(err)
			return utils.ToolResults.NewError("list notebooks", err), nil
		}

		out := make([]notebookInfo, 0, len(list))
		for _, nb := range list {
			out = append(out, notebookInfo{
				ID:              nb.ID,
				Name:            nb.DisplayName,
				IsConfigDefault: deps.cfg.NotebookName != "" && strings.EqualFold(nb.DisplayName, deps.cfg.NotebookName),
			})
		}

		logger.LogSuccess("count", len(out))
		return utils.ToolResults.NewJSONResult("listNotebooks", out), nil
	}

	return []tools.Tool{{
		Toolset:    tools.ToolsetNotebooks,
		Definition: mcp.NewTool("listNotebooks", mcp.WithDescription(resources.MustGetToolDescription("listNotebooks"))),
		Handler:    listNotebooks,
	}}
}
