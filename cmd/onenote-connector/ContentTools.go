// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gebl/onenote-connector/internal/resolve"
	"github.com/gebl/onenote-connector/internal/resources"
	"github.com/gebl/onenote-connector/internal/tools"
	"github.com/gebl/onenote-connector/internal/utils"
)

func pathTool(name string, pathHelp string, extra ...mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(resources.MustGetToolDescription(name)),
		mcp.WithString("path", mcp.Required(), mcp.Description(pathHelp)),
		mcp.WithString("notebook", mcp.Description("Notebook display name. Defaults to the configured default notebook.")),
	}
	return mcp.NewTool(name, append(opts, extra...)...)
}

func formatOption() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: html (default), markdown or text"),
		mcp.Enum(utils.ContentFormats...),
		mcp.DefaultString(string(utils.FormatHTML)))
}

// contentTools returns the tools that read page and section content
func contentTools(deps *toolDeps) []tools.Tool {
	getPageContent := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := utils.NewToolLogger("getPageContent")
		params := utils.NewParameterExtractor(req, logger)

		rawPath, err := params.RequireString("path")
		if err != nil {
			return utils.ToolResults.NewError("get page content", err), nil
		}
		path, notebook, format, err := contentArgs(deps, params, rawPath)
		if err != nil {
			logger.LogError(err)
			return utils.ToolResults.NewError("get page content", err), nil
		}

		src, err := deps.conn.GetPageContentStream(ctx, notebook, path)
		if err != nil {
			logger.LogError(err, "notebook", notebook, "path", path.String())
			return utils.ToolResults.NewError("get page content", err), nil
		}
		content, err := readContent(src, format)
		if err != nil {
			logger.LogError(err)
			return utils.ToolResults.NewError("get page content", err), nil
		}

		logger.LogSuccess("notebook", notebook, "path", path.String(), "format", format, "length", len(content))
		return mcp.NewToolResultText(content), nil
	}

	getSectionContent := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := utils.NewToolLogger("getSectionContent")
		params := utils.NewParameterExtractor(req, logger)

		rawPath, err := params.RequireString("path")
		if err != nil {
			return utils.ToolResults.NewError("get section content", err), nil
		}
		path, notebook, format, err := contentArgs(deps, params, rawPath)
		if err != nil {
			logger.LogError(err)
			return utils.ToolResults.NewError("get section content", err), nil
		}

		r, err := deps.conn.GetSectionContentStream(ctx, notebook, path)
		if err != nil {
			logger.LogError(err, "notebook", notebook, "path", path.String())
			return utils.ToolResults.NewError("get section content", err), nil
		}
		pageCount := r.Remaining()
		content, err := readContent(r, format)
		if err != nil {
			logger.LogError(err)
			return utils.ToolResults.NewError("get section content", err), nil
		}

		logger.LogSuccess("notebook", notebook, "path", path.String(), "pages", pageCount, "length", len(content))
		return mcp.NewToolResultText(content), nil
	}

	return []tools.Tool{
		{
			Toolset: tools.ToolsetContent,
			Definition: pathTool("getPageContent",
				"Section groups, section and page title separated by '/', e.g. Journal/2022/2022-05/2022-05-05",
				formatOption()),
			Handler: getPageContent,
		},
		{
			Toolset: tools.ToolsetContent,
			Definition: pathTool("getSectionContent",
				"Section groups and section separated by '/', e.g. Journal/2022/2022-05",
				formatOption()),
			Handler: getSectionContent,
		},
	}
}

func contentArgs(deps *toolDeps, params *utils.ToolParameterExtractor, rawPath string) (resolve.Path, string, utils.ContentFormat, error) {
	path, err := resolve.ParsePath(rawPath)
	if err != nil {
		return nil, "", "", err
	}
	notebook, err := deps.notebookName(params.OptionalString("notebook", ""))
	if err != nil {
		return nil, "", "", err
	}
	format, err := utils.ParseContentFormat(params.OptionalString("format", ""))
	if err != nil {
		return nil, "", "", err
	}
	return path, notebook, format, nil
}
